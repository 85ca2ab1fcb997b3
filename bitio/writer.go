// Package bitio provides the bit-level stream layer of the container format:
// a Writer that packs bits most-significant-bit-first into an underlying byte
// sink and a Reader that consumes them back in strict call order.
//
// The bit stream is a sequential, non-seekable protocol layer. Bits written
// across successive calls share bytes; nothing reaches the underlying sink at
// sub-byte granularity. The Writer accumulates up to 64 bits and emits whole
// 8-byte groups big-endian as the accumulator fills; Flush zero-pads the
// current partial byte and must be called before the byte sink is finalized
// or handed to another consumer.
//
// Exhaustion on the read side follows the standard io contracts: io.EOF when
// no bits remain at the start of an operation, io.ErrUnexpectedEOF when the
// source ends in the middle of a value.
package bitio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/seqio/cram/errs"
)

// Writer writes bits most-significant-bit-first to an underlying io.Writer.
//
// A Writer is owned by a single write session and is not safe for concurrent
// use. Errors from the underlying sink abort the session; the Writer performs
// no retries and keeps no recovery state.
type Writer struct {
	dst      io.Writer
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
	scratch  [8]byte
}

// NewWriter returns a Writer emitting to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteBit writes the low bit of bit into the stream.
func (w *Writer) WriteBit(bit uint8) error {
	w.bitBuf = w.bitBuf<<1 | uint64(bit&1)
	w.bitCount++

	if w.bitCount == 64 {
		return w.Flush()
	}

	return nil
}

// WriteBool writes a single bit: 1 for true, 0 for false.
func (w *Writer) WriteBool(bit bool) error {
	if bit {
		return w.WriteBit(1)
	}

	return w.WriteBit(0)
}

// WriteBits writes the low numBits bits of value, most significant first,
// byte-packing across calls. numBits outside [0, 64] is rejected with
// errs.ErrInvalidBitCount; numBits == 0 writes nothing.
func (w *Writer) WriteBits(value uint64, numBits int) error {
	if numBits < 0 || numBits > 64 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, numBits)
	}
	if numBits == 0 {
		return nil
	}

	// Mask value to only include the specified number of bits.
	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	available := 64 - w.bitCount
	if numBits <= available {
		// All bits fit in the current accumulator.
		w.bitBuf = w.bitBuf<<numBits | value
		w.bitCount += numBits

		if w.bitCount == 64 {
			return w.Flush()
		}

		return nil
	}

	// Split across the accumulator boundary: emit the high bits that fit,
	// keep the rest pending.
	highBits := numBits - available
	w.bitBuf = w.bitBuf<<available | value>>highBits
	w.bitCount = 64
	if err := w.Flush(); err != nil {
		return err
	}

	w.bitBuf = value & (1<<highBits - 1)
	w.bitCount = highBits

	return nil
}

// Flush pads the current partial byte with zero bits and emits all pending
// bytes to the underlying sink. Flushing an empty accumulator is a no-op, so
// calling Flush repeatedly is safe.
//
// Flush is required before the underlying byte sink is finalized or before a
// byte-level consumer takes over; until then the tail of the stream may still
// sit in the accumulator.
func (w *Writer) Flush() error {
	if w.bitCount == 0 {
		return nil
	}

	numBytes := (w.bitCount + 7) / 8

	// Left-align so the oldest bit lands in the most significant position,
	// then emit big-endian: most significant byte first.
	aligned := w.bitBuf << (64 - w.bitCount)
	binary.BigEndian.PutUint64(w.scratch[:], aligned)

	w.bitBuf = 0
	w.bitCount = 0

	if _, err := w.dst.Write(w.scratch[:numBytes]); err != nil {
		return err
	}

	return nil
}

package bitio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/seqio/cram/errs"
)

// Reader reads bits most-significant-bit-first from an underlying io.Reader,
// mirroring Writer exactly: the n-th bit read is the n-th bit written.
//
// A Reader is owned by a single read session and is not safe for concurrent
// use. It buffers at most 64 bits ahead of the consumer.
type Reader struct {
	src      io.Reader
	bitBuf   uint64 // pending bits, left-aligned at bit 63
	bitCount int    // number of valid bits in bitBuf
	scratch  [8]byte
}

// NewReader returns a Reader consuming from src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// ReadBit reads a single bit. It returns io.EOF when the stream is exhausted.
func (r *Reader) ReadBit() (uint8, error) {
	if r.bitCount == 0 {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}

	bit := uint8(r.bitBuf >> 63)
	r.bitBuf <<= 1
	r.bitCount--

	return bit, nil
}

// ReadBool reads a single bit as a boolean.
func (r *Reader) ReadBool() (bool, error) {
	bit, err := r.ReadBit()

	return bit == 1, err
}

// ReadBits reads numBits bits and returns them right-aligned, the exact
// inverse of Writer.WriteBits.
//
// Returns io.EOF when no bits remain at the start of the call and
// io.ErrUnexpectedEOF when the stream ends mid-value. numBits outside
// [0, 64] is rejected with errs.ErrInvalidBitCount; numBits == 0 reads
// nothing and returns 0.
func (r *Reader) ReadBits(numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidBitCount, numBits)
	}
	if numBits == 0 {
		return 0, nil
	}

	if numBits <= r.bitCount {
		// Fast path: everything is already buffered.
		result := r.bitBuf >> (64 - numBits)
		r.bitBuf <<= numBits
		r.bitCount -= numBits

		return result, nil
	}

	var result uint64
	remaining := numBits
	for remaining > 0 {
		if r.bitCount == 0 {
			if err := r.fill(); err != nil {
				if err == io.EOF && remaining < numBits {
					err = io.ErrUnexpectedEOF
				}

				return 0, err
			}
		}

		take := remaining
		if take > r.bitCount {
			take = r.bitCount
		}

		chunk := r.bitBuf >> (64 - take)
		result = result<<take | chunk

		r.bitBuf <<= take
		r.bitCount -= take
		remaining -= take
	}

	return result, nil
}

// fill refills the bit buffer from the byte source, left-aligning whatever
// arrives so extraction always starts at bit 63.
func (r *Reader) fill() error {
	for {
		n, err := r.src.Read(r.scratch[:])
		if n > 0 {
			if n == 8 {
				r.bitBuf = binary.BigEndian.Uint64(r.scratch[:8])
			} else {
				var v uint64
				for i := 0; i < n; i++ {
					v = v<<8 | uint64(r.scratch[i])
				}
				r.bitBuf = v << ((8 - n) * 8)
			}
			r.bitCount = n * 8

			return nil
		}
		if err != nil {
			return err
		}
		// Read returned (0, nil); retry per the io.Reader contract.
	}
}

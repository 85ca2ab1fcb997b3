// Package cram implements the CRAM encoding subsystem: self-describing value
// codecs that split their output between a shared bit stream and per-id external
// byte blocks.
//
// A field's on-disk representation is chosen by an encoding descriptor, a small
// binary blob of the form [kind tag][param length][params]. Parsing a descriptor
// yields a codec; the codec reads and writes values against a bit stream
// (bitio.Reader / bitio.Writer) and, for external kinds, against byte channels
// resolved by block id.
//
// # Core Features
//
//   - ITF8/LTF8 variable-length integers (varint) for all descriptor parameters
//   - MSB-first bit stream I/O with explicit flush padding (bitio)
//   - Bit-packed integer codes: Beta, Gamma, Golomb, Golomb-Rice,
//     Subexponential, canonical Huffman (encoding)
//   - External byte channels with pass-through, stop-byte delimited, and
//     length-prefixed byte array codecs (encoding)
//   - Self-describing recursive descriptors for every kind (encoding)
//   - Block accumulation, compression (None, Zstd, S2, LZ4) and xxHash64
//     payload verification (block, compress)
//
// # Basic Usage
//
// Encoding length-prefixed byte arrays, lengths in the bit stream and bytes in
// external block 0:
//
//	import "github.com/seqio/cram"
//
//	def := encoding.ByteArrayLen{
//	    LengthEncoding: encoding.Beta{Offset: 0, BitLimit: 32},
//	    ValuesEncoding: encoding.External{BlockID: 0},
//	}
//	desc, _ := encoding.Descriptor(def)
//
//	set, _ := block.NewWriteSet(block.WithCompression(format.CompressionZstd))
//	set.Block(0) // allocate the channel the descriptor names
//	enc, _ := cram.ByteArrayEncoderFromDescriptor(desc, set.Sinks())
//
//	var core bytes.Buffer
//	w := bitio.NewWriter(&core)
//	enc.Write(w, []byte("ACGT"))
//	w.Flush()
//	blocks, _ := set.Seal()
//
// Decoding reverses the wiring:
//
//	sources, _ := block.Sources(blocks)
//	dec, _ := cram.ByteArrayDecoderFromDescriptor(desc, sources)
//	r := bitio.NewReader(bytes.NewReader(core.Bytes()))
//	value, _ := dec.Read(r)
//
// # Package Structure
//
// This package provides one-shot helpers that go from a serialized descriptor
// straight to a ready codec. For fine-grained control (building Definition
// values directly, reusing contexts across many fields), use the encoding
// package; for block lifecycle control, use the block package.
package cram

import (
	"io"

	"github.com/seqio/cram/encoding"
)

// IntEncoderFromDescriptor parses a serialized encoding descriptor and returns
// an int32-domain value encoder bound to the given external sinks.
func IntEncoderFromDescriptor(desc []byte, sinks map[uint8]io.Writer) (encoding.ValueEncoder[int64], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewIntEncoder(def, encoding.NewWriteContext(sinks))
}

// IntDecoderFromDescriptor parses a serialized encoding descriptor and returns
// an int32-domain value decoder bound to the given external sources.
func IntDecoderFromDescriptor(desc []byte, sources map[uint8]io.Reader) (encoding.ValueDecoder[int64], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewIntDecoder(def, encoding.NewReadContext(sources))
}

// LongEncoderFromDescriptor parses a serialized encoding descriptor and returns
// a full int64-domain value encoder bound to the given external sinks.
func LongEncoderFromDescriptor(desc []byte, sinks map[uint8]io.Writer) (encoding.ValueEncoder[int64], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewLongEncoder(def, encoding.NewWriteContext(sinks))
}

// LongDecoderFromDescriptor parses a serialized encoding descriptor and returns
// a full int64-domain value decoder bound to the given external sources.
func LongDecoderFromDescriptor(desc []byte, sources map[uint8]io.Reader) (encoding.ValueDecoder[int64], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewLongDecoder(def, encoding.NewReadContext(sources))
}

// ByteArrayEncoderFromDescriptor parses a serialized encoding descriptor and
// returns a byte array encoder bound to the given external sinks.
func ByteArrayEncoderFromDescriptor(desc []byte, sinks map[uint8]io.Writer) (encoding.ValueEncoder[[]byte], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewByteArrayEncoder(def, encoding.NewWriteContext(sinks))
}

// ByteArrayDecoderFromDescriptor parses a serialized encoding descriptor and
// returns a byte array decoder bound to the given external sources.
func ByteArrayDecoderFromDescriptor(desc []byte, sources map[uint8]io.Reader) (encoding.ValueDecoder[[]byte], error) {
	def, err := encoding.ParseDescriptor(desc)
	if err != nil {
		return nil, err
	}

	return encoding.NewByteArrayDecoder(def, encoding.NewReadContext(sources))
}

// Package encoding implements the field encodings of the container format:
// self-describing encoding descriptors, the codecs they define, and the
// session contexts that bind codecs to their data channels.
//
// # Two Channels
//
// A decoding session owns two kinds of channel. The core bit stream is a
// single MSB-first bit sequence shared by every bit-packed field; external
// blocks are per-ID byte channels holding raw values. Each encoding kind
// commits to one side of that split, except the length-prefixed byte-array
// kind, which deliberately straddles it: lengths on the bit stream, bytes in
// an external block. No wire-level marker correlates the channels. Values
// line up purely by call order, so encoders and decoders for one field must
// be invoked in exactly the same sequence on both sides.
//
// # Definitions and Descriptors
//
// Definition is a closed sum over the supported kinds:
//
//	External       raw bytes or ITF8/LTF8 integers in an external block
//	Golomb         unary quotient plus truncated-binary remainder
//	Huffman        canonical Huffman over an explicit code book
//	ByteArrayLen   length through one encoding, bytes through another
//	ByteArrayStop  stop-byte delimited bytes in an external block
//	Beta           fixed-width binary with an offset
//	Subexponential unary-selected width, k fixed low bits
//	GolombRice     Golomb with a power-of-two modulus
//	Gamma          Elias gamma with an offset
//
// Descriptor serializes a Definition to its wire form, a recursive
// [kind tag][ITF8 parameter length][parameters] triple; ParseDescriptor
// reverses it. Composite kinds nest complete descriptors inside their
// parameter bytes, so a descriptor fully describes its own decoding tree.
//
// # Codecs
//
// Codecs are built from a Definition plus a session context:
//
//	NewIntEncoder / NewIntDecoder             32-bit integer fields
//	NewLongEncoder / NewLongDecoder           64-bit integer fields
//	NewByteArrayEncoder / NewByteArrayDecoder byte-array fields
//
// WriteContext maps block IDs to sinks for one write session; ReadContext
// maps them to sources for one read session. Building a codec whose
// definition names an absent block fails with errs.ErrUnknownBlockID rather
// than at first use.
//
// Decoders expose two read shapes. Read decodes the next value from the
// session streams alone; ReadN is the explicit-length escape hatch for raw
// external byte arrays, the one kind with no length or delimiter of its own.
// Each codec supports exactly the shapes its wire format can honor and
// rejects the other with errs.ErrUsageViolation.
//
// # Failure Semantics
//
// Codecs fail loudly rather than mask data. A value outside what its
// encoding can represent fails the write with errs.ErrValueOutOfRange; no
// codec silently truncates. Exhaustion on read follows the io conventions:
// io.EOF exactly at a value boundary, io.ErrUnexpectedEOF once any part of a
// value was consumed. Malformed descriptor bytes fail parsing with
// errs.ErrMalformedDescriptor; structurally sound descriptors carrying
// impossible parameters fail with errs.ErrInvalidDefinition.
package encoding

package encoding

import (
	"fmt"

	"github.com/seqio/cram/errs"
	"github.com/seqio/cram/format"
	"github.com/seqio/cram/varint"
)

// Definition is the in-memory form of one encoding descriptor.
//
// The set of implementations is closed: exactly one parameter struct exists
// per supported encoding kind, and every consumer dispatches over that fixed
// set. Definitions are plain immutable values; they carry configuration only
// and are bound to streams later, when a codec is built against a session
// context.
type Definition interface {
	// Kind returns the wire tag identifying this encoding kind.
	Kind() format.EncodingKind

	// appendParams appends the kind-specific parameter blob to dst. It
	// assumes the definition already passed validate.
	appendParams(dst []byte) []byte

	// validate checks the parameters against their legal domain.
	validate() error
}

// Beta is fixed-width binary coding: a value v is stored as v-Offset in
// exactly BitLimit bits on the core bit stream.
//
// Parameter blob: ITF8(Offset) ITF8(BitLimit).
type Beta struct {
	Offset   int32
	BitLimit uint32
}

func (Beta) Kind() format.EncodingKind { return format.KindBeta }

func (b Beta) appendParams(dst []byte) []byte {
	dst = varint.AppendITF8(dst, b.Offset)
	return varint.AppendITF8(dst, int32(b.BitLimit))
}

func (b Beta) validate() error {
	if b.BitLimit > 64 {
		return fmt.Errorf("%w: beta bit limit %d exceeds 64", errs.ErrInvalidDefinition, b.BitLimit)
	}

	return nil
}

// External routes raw values to the external block channel identified by
// BlockID, bypassing the core bit stream entirely.
//
// Parameter blob: the single raw id byte.
type External struct {
	BlockID uint8
}

func (External) Kind() format.EncodingKind { return format.KindExternal }

func (e External) appendParams(dst []byte) []byte {
	return append(dst, e.BlockID)
}

func (External) validate() error { return nil }

// ByteArrayLen is the composite byte-array encoding: the array length travels
// through LengthEncoding on the core bit stream while the raw array bytes
// travel through ValuesEncoding on an external block channel. The two halves
// are correlated by call order only; no delimiter is ever stored.
//
// Parameter blob: the two serialized descriptors concatenated, length
// encoding first. Each nested descriptor carries its own tag and parameter
// length, so the blob parses back into exactly two definitions or fails as
// malformed.
type ByteArrayLen struct {
	LengthEncoding Definition
	ValuesEncoding Definition
}

func (ByteArrayLen) Kind() format.EncodingKind { return format.KindByteArrayLen }

func (b ByteArrayLen) appendParams(dst []byte) []byte {
	dst = appendDescriptor(dst, b.LengthEncoding)
	return appendDescriptor(dst, b.ValuesEncoding)
}

func (b ByteArrayLen) validate() error {
	if b.LengthEncoding == nil {
		return fmt.Errorf("%w: byte-array-len missing length encoding", errs.ErrInvalidDefinition)
	}
	if b.ValuesEncoding == nil {
		return fmt.Errorf("%w: byte-array-len missing values encoding", errs.ErrInvalidDefinition)
	}
	if err := b.LengthEncoding.validate(); err != nil {
		return err
	}

	return b.ValuesEncoding.validate()
}

// ByteArrayStop is stop-byte delimited byte-array coding: the raw array bytes
// followed by StopByte travel through the external block channel identified
// by BlockID. Values must not contain the stop byte.
//
// Parameter blob: the raw stop byte followed by ITF8(BlockID).
type ByteArrayStop struct {
	StopByte byte
	BlockID  uint8
}

func (ByteArrayStop) Kind() format.EncodingKind { return format.KindByteArrayStop }

func (b ByteArrayStop) appendParams(dst []byte) []byte {
	dst = append(dst, b.StopByte)
	return varint.AppendITF8(dst, int32(b.BlockID))
}

func (ByteArrayStop) validate() error { return nil }

// Gamma is Elias gamma coding of v-Offset on the core bit stream. The stored
// value must be at least 1, so Offset is typically chosen one below the
// smallest value in the field's domain.
//
// Parameter blob: ITF8(Offset).
type Gamma struct {
	Offset int32
}

func (Gamma) Kind() format.EncodingKind { return format.KindGamma }

func (g Gamma) appendParams(dst []byte) []byte {
	return varint.AppendITF8(dst, g.Offset)
}

func (Gamma) validate() error { return nil }

// Golomb is Golomb coding of v-Offset with modulus M on the core bit stream:
// a unary quotient followed by a truncated-binary remainder.
//
// Parameter blob: ITF8(Offset) ITF8(M).
type Golomb struct {
	Offset int32
	M      int32
}

func (Golomb) Kind() format.EncodingKind { return format.KindGolomb }

func (g Golomb) appendParams(dst []byte) []byte {
	dst = varint.AppendITF8(dst, g.Offset)
	return varint.AppendITF8(dst, g.M)
}

func (g Golomb) validate() error {
	if g.M < 2 {
		return fmt.Errorf("%w: golomb modulus %d below 2", errs.ErrInvalidDefinition, g.M)
	}

	return nil
}

// GolombRice is the power-of-two special case of Golomb coding: modulus
// 2^Log2M, so the remainder is a plain fixed-width field of Log2M bits.
//
// Parameter blob: ITF8(Offset) ITF8(Log2M).
type GolombRice struct {
	Offset int32
	Log2M  int32
}

func (GolombRice) Kind() format.EncodingKind { return format.KindGolombRice }

func (g GolombRice) appendParams(dst []byte) []byte {
	dst = varint.AppendITF8(dst, g.Offset)
	return varint.AppendITF8(dst, g.Log2M)
}

func (g GolombRice) validate() error {
	if g.Log2M < 0 || g.Log2M > 30 {
		return fmt.Errorf("%w: golomb-rice log2 modulus %d outside [0, 30]", errs.ErrInvalidDefinition, g.Log2M)
	}

	return nil
}

// Subexponential is subexponential coding of v-Offset with parameter K: a
// unary bucket prefix followed by a binary mantissa. Small values cost K+1
// bits; the cost grows logarithmically beyond 2^K.
//
// Parameter blob: ITF8(Offset) ITF8(K).
type Subexponential struct {
	Offset int32
	K      int32
}

func (Subexponential) Kind() format.EncodingKind { return format.KindSubexp }

func (s Subexponential) appendParams(dst []byte) []byte {
	dst = varint.AppendITF8(dst, s.Offset)
	return varint.AppendITF8(dst, s.K)
}

func (s Subexponential) validate() error {
	if s.K < 0 || s.K > 62 {
		return fmt.Errorf("%w: subexponential parameter k %d outside [0, 62]", errs.ErrInvalidDefinition, s.K)
	}

	return nil
}

// Huffman is canonical Huffman coding on the core bit stream. The code book
// is fully determined by the value set and per-value code bit lengths: codes
// are assigned in (bit length, value) order, so no code table is persisted.
//
// A single-value book with bit length 0 is the degenerate constant encoding:
// it writes and reads no bits at all.
//
// Parameter blob: ITF8(n) n*ITF8(value) ITF8(n) n*ITF8(bitLength).
type Huffman struct {
	Values     []int32
	BitLengths []uint8
}

func (Huffman) Kind() format.EncodingKind { return format.KindHuffman }

func (h Huffman) appendParams(dst []byte) []byte {
	dst = varint.AppendITF8(dst, int32(len(h.Values)))
	for _, v := range h.Values {
		dst = varint.AppendITF8(dst, v)
	}
	dst = varint.AppendITF8(dst, int32(len(h.BitLengths)))
	for _, l := range h.BitLengths {
		dst = varint.AppendITF8(dst, int32(l))
	}

	return dst
}

func (h Huffman) validate() error {
	if len(h.Values) == 0 {
		return fmt.Errorf("%w: empty huffman book", errs.ErrInvalidDefinition)
	}
	if len(h.Values) != len(h.BitLengths) {
		return fmt.Errorf("%w: huffman book with %d values but %d bit lengths",
			errs.ErrInvalidDefinition, len(h.Values), len(h.BitLengths))
	}

	seen := make(map[int32]struct{}, len(h.Values))
	for i, v := range h.Values {
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: duplicate huffman value %d", errs.ErrInvalidDefinition, v)
		}
		seen[v] = struct{}{}

		length := h.BitLengths[i]
		if length > 64 {
			return fmt.Errorf("%w: huffman bit length %d exceeds 64", errs.ErrInvalidDefinition, length)
		}
		if length == 0 && len(h.Values) > 1 {
			return fmt.Errorf("%w: zero-bit huffman code in multi-value book", errs.ErrInvalidDefinition)
		}
	}

	return nil
}

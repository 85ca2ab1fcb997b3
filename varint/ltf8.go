package varint

import (
	"io"
	"math/bits"
)

// MaxLenLTF8 is the maximum encoded length of an LTF8 value in bytes.
const MaxLenLTF8 = 9

// AppendLTF8 appends the LTF8 encoding of v to dst and returns the extended
// slice.
//
// Unlike ITF8, every continuation byte carries a full 8 payload bits: the
// 8-byte form starts with 0xFE and the 9-byte form with 0xFF followed by the
// complete big-endian value.
func AppendLTF8(dst []byte, v int64) []byte {
	u := uint64(v)
	switch {
	case u < 1<<7:
		return append(dst, byte(u))
	case u < 1<<14:
		return append(dst, byte(u>>8)|0x80, byte(u))
	case u < 1<<21:
		return append(dst, byte(u>>16)|0xC0, byte(u>>8), byte(u))
	case u < 1<<28:
		return append(dst, byte(u>>24)|0xE0, byte(u>>16), byte(u>>8), byte(u))
	case u < 1<<35:
		return append(dst, byte(u>>32)|0xF0, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	case u < 1<<42:
		return append(dst, byte(u>>40)|0xF8, byte(u>>32), byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	case u < 1<<49:
		return append(dst, byte(u>>48)|0xFC, byte(u>>40), byte(u>>32), byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	case u < 1<<56:
		return append(dst, 0xFE, byte(u>>48), byte(u>>40), byte(u>>32), byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	default:
		return append(dst, 0xFF, byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32), byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
	}
}

// DecodeLTF8 decodes one LTF8 value from the front of data, returning the
// value and the unconsumed remainder.
func DecodeLTF8(data []byte) (int64, []byte, error) {
	if len(data) == 0 {
		return 0, nil, io.EOF
	}

	b0 := data[0]
	extra := bits.LeadingZeros8(^b0)
	if len(data) < 1+extra {
		return 0, nil, io.ErrUnexpectedEOF
	}

	u := ltf8FirstBits(b0, extra)
	for i := 1; i <= extra; i++ {
		u = u<<8 | uint64(data[i])
	}

	return int64(u), data[1+extra:], nil
}

// ReadLTF8 reads one LTF8 value from r.
func ReadLTF8(r io.ByteReader) (int64, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	extra := bits.LeadingZeros8(^b0)
	u := ltf8FirstBits(b0, extra)
	for i := 0; i < extra; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return 0, err
		}
		u = u<<8 | uint64(b)
	}

	return int64(u), nil
}

// ltf8FirstBits extracts the payload bits of the first byte given the number
// of leading one bits. With 8 leading ones (0xFF) the first byte carries no
// payload and the shift below masks everything away.
func ltf8FirstBits(b0 byte, extra int) uint64 {
	return uint64(b0) & (0xFF >> (extra + 1))
}

// Package varint implements the variable-length integer wire formats used by
// the container format: ITF8 for 32-bit values and LTF8 for 64-bit values.
//
// Both formats store the number of continuation bytes as leading one bits in
// the first byte, so small magnitudes cost a single byte while the full
// integer range stays representable (5 bytes for ITF8, 9 for LTF8). Signed
// values travel as their two's complement bit pattern; a negative number
// always takes the maximum length.
//
// Two call shapes are provided per format: slice-based Append/Decode for
// building and parsing in-memory structures such as encoding descriptors, and
// ReadITF8/ReadLTF8 over io.ByteReader for pulling values off a forward-only
// byte channel.
package varint

import "io"

// MaxLenITF8 is the maximum encoded length of an ITF8 value in bytes.
const MaxLenITF8 = 5

// AppendITF8 appends the ITF8 encoding of v to dst and returns the extended
// slice.
//
// The 5-byte form splits the value 4+8+8+8+4: the first byte carries bits
// 28-31 under the 0xF0 prefix and only the low nibble of the final byte is
// significant to decoders.
func AppendITF8(dst []byte, v int32) []byte {
	u := uint32(v)
	switch {
	case u < 0x80:
		return append(dst, byte(u))
	case u < 0x4000:
		return append(dst, byte(u>>8)|0x80, byte(u))
	case u < 0x200000:
		return append(dst, byte(u>>16)|0xC0, byte(u>>8), byte(u))
	case u < 0x10000000:
		return append(dst, byte(u>>24)|0xE0, byte(u>>16), byte(u>>8), byte(u))
	default:
		return append(dst, byte(u>>28)|0xF0, byte(u>>20), byte(u>>12), byte(u>>4), byte(u))
	}
}

// DecodeITF8 decodes one ITF8 value from the front of data.
//
// Returns:
//   - int32: The decoded value
//   - []byte: The remainder of data after the consumed bytes
//   - error: io.EOF when data is empty, io.ErrUnexpectedEOF when data holds a
//     truncated value
func DecodeITF8(data []byte) (int32, []byte, error) {
	if len(data) == 0 {
		return 0, nil, io.EOF
	}

	b0 := data[0]
	size := itf8Size(b0)
	if len(data) < size {
		return 0, nil, io.ErrUnexpectedEOF
	}

	var u uint32
	switch size {
	case 1:
		u = uint32(b0)
	case 2:
		u = uint32(b0&0x7F)<<8 | uint32(data[1])
	case 3:
		u = uint32(b0&0x3F)<<16 | uint32(data[1])<<8 | uint32(data[2])
	case 4:
		u = uint32(b0&0x1F)<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	default:
		u = uint32(b0&0x0F)<<28 | uint32(data[1])<<20 | uint32(data[2])<<12 | uint32(data[3])<<4 | uint32(data[4]&0x0F)
	}

	return int32(u), data[size:], nil
}

// ReadITF8 reads one ITF8 value from r.
//
// A missing first byte surfaces as io.EOF; running out of input inside a
// multi-byte value surfaces as io.ErrUnexpectedEOF.
func ReadITF8(r io.ByteReader) (int32, error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	size := itf8Size(b0)
	var rest [MaxLenITF8 - 1]byte
	for i := 1; i < size; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}

			return 0, err
		}
		rest[i-1] = b
	}

	var u uint32
	switch size {
	case 1:
		u = uint32(b0)
	case 2:
		u = uint32(b0&0x7F)<<8 | uint32(rest[0])
	case 3:
		u = uint32(b0&0x3F)<<16 | uint32(rest[0])<<8 | uint32(rest[1])
	case 4:
		u = uint32(b0&0x1F)<<24 | uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2])
	default:
		u = uint32(b0&0x0F)<<28 | uint32(rest[0])<<20 | uint32(rest[1])<<12 | uint32(rest[2])<<4 | uint32(rest[3]&0x0F)
	}

	return int32(u), nil
}

// itf8Size returns the total encoded length implied by the first byte.
func itf8Size(b0 byte) int {
	switch {
	case b0&0x80 == 0:
		return 1
	case b0&0x40 == 0:
		return 2
	case b0&0x20 == 0:
		return 3
	case b0&0x10 == 0:
		return 4
	default:
		return 5
	}
}

package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqio/cram/errs"
)

// === Wire layout ===

func TestDescriptor_WireLayout(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want []byte
	}{
		{
			name: "external is tag, length 1, raw id byte",
			def:  External{BlockID: 5},
			want: []byte{0x01, 0x01, 0x05},
		},
		{
			name: "beta offset 0 limit 32",
			def:  Beta{Offset: 0, BitLimit: 32},
			want: []byte{0x06, 0x02, 0x00, 0x20},
		},
		{
			name: "gamma offset 1",
			def:  Gamma{Offset: 1},
			want: []byte{0x09, 0x01, 0x01},
		},
		{
			name: "gamma negative offset takes five itf8 bytes",
			def:  Gamma{Offset: -1},
			want: []byte{0x09, 0x05, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
		{
			name: "golomb offset 0 modulus 10",
			def:  Golomb{Offset: 0, M: 10},
			want: []byte{0x02, 0x02, 0x00, 0x0A},
		},
		{
			name: "golomb-rice offset 0 log2 modulus 3",
			def:  GolombRice{Offset: 0, Log2M: 3},
			want: []byte{0x08, 0x02, 0x00, 0x03},
		},
		{
			name: "subexponential offset 0 k 2",
			def:  Subexponential{Offset: 0, K: 2},
			want: []byte{0x07, 0x02, 0x00, 0x02},
		},
		{
			name: "byte-array-stop raw stop byte then itf8 id",
			def:  ByteArrayStop{StopByte: 0x00, BlockID: 1},
			want: []byte{0x05, 0x02, 0x00, 0x01},
		},
		{
			name: "constant huffman book",
			def:  Huffman{Values: []int32{65}, BitLengths: []uint8{0}},
			want: []byte{0x03, 0x04, 0x01, 0x41, 0x01, 0x00},
		},
		{
			name: "composite nests both descriptors without extra framing",
			def: ByteArrayLen{
				LengthEncoding: Beta{Offset: 0, BitLimit: 32},
				ValuesEncoding: External{BlockID: 0},
			},
			want: []byte{0x04, 0x07, 0x06, 0x02, 0x00, 0x20, 0x01, 0x01, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Descriptor(tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// === Round trips ===

func TestDescriptor_ParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"external", External{BlockID: 255}},
		{"beta", Beta{Offset: -100, BitLimit: 17}},
		{"gamma", Gamma{Offset: -1}},
		{"golomb", Golomb{Offset: 3, M: 1000}},
		{"golomb-rice", GolombRice{Offset: -5, Log2M: 12}},
		{"subexponential", Subexponential{Offset: 0, K: 62}},
		{"byte-array-stop", ByteArrayStop{StopByte: '\t', BlockID: 9}},
		{"huffman", Huffman{Values: []int32{-1, 0, 130000}, BitLengths: []uint8{1, 2, 2}}},
		{
			"composite",
			ByteArrayLen{
				LengthEncoding: Gamma{Offset: -1},
				ValuesEncoding: External{BlockID: 31},
			},
		},
		{
			// The descriptor layer is schema-agnostic: nesting depth is
			// unrestricted even where codec construction is stricter.
			"deeply nested composite",
			ByteArrayLen{
				LengthEncoding: Huffman{Values: []int32{4}, BitLengths: []uint8{0}},
				ValuesEncoding: ByteArrayLen{
					LengthEncoding: Beta{Offset: 0, BitLimit: 8},
					ValuesEncoding: External{BlockID: 2},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Descriptor(tt.def)
			require.NoError(t, err)

			parsed, err := ParseDescriptor(data)
			require.NoError(t, err)
			assert.Equal(t, tt.def, parsed)
		})
	}
}

func TestDescriptor_ParseRoundTrip_MultiByteParamLength(t *testing.T) {
	// 150 eight-bit codes push the parameter blob past 127 bytes, so the
	// parameter length itself needs the two-byte ITF8 form.
	values := make([]int32, 150)
	lengths := make([]uint8, 150)
	for i := range values {
		values[i] = int32(i)
		lengths[i] = 8
	}
	def := Huffman{Values: values, BitLengths: lengths}

	data, err := Descriptor(def)
	require.NoError(t, err)
	require.Greater(t, len(data), 128)

	parsed, err := ParseDescriptor(data)
	require.NoError(t, err)
	assert.Equal(t, def, parsed)
}

// === Serialization errors ===

func TestDescriptor_NilDefinition(t *testing.T) {
	_, err := Descriptor(nil)
	require.ErrorIs(t, err, errs.ErrInvalidDefinition)
}

func TestDescriptor_InvalidDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"beta bit limit above 64", Beta{BitLimit: 65}},
		{"golomb modulus below 2", Golomb{M: 1}},
		{"golomb-rice log2 modulus above 30", GolombRice{Log2M: 31}},
		{"subexponential k above 62", Subexponential{K: 63}},
		{"empty huffman book", Huffman{}},
		{"huffman count mismatch", Huffman{Values: []int32{1, 2}, BitLengths: []uint8{1}}},
		{"huffman duplicate value", Huffman{Values: []int32{7, 7}, BitLengths: []uint8{1, 1}}},
		{"huffman zero-bit code in multi-value book", Huffman{Values: []int32{1, 2}, BitLengths: []uint8{0, 1}}},
		{"composite missing length encoding", ByteArrayLen{ValuesEncoding: External{}}},
		{"composite missing values encoding", ByteArrayLen{LengthEncoding: Beta{BitLimit: 8}}},
		{"composite with invalid child", ByteArrayLen{LengthEncoding: Beta{BitLimit: 99}, ValuesEncoding: External{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Descriptor(tt.def)
			require.ErrorIs(t, err, errs.ErrInvalidDefinition)
		})
	}
}

// === Parse errors ===

func TestParseDescriptor_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"missing parameter length", []byte{0x06}},
		{"truncated parameter length", []byte{0x06, 0x81}},
		{"parameter blob shorter than declared", []byte{0x06, 0x05, 0x00}},
		{"trailing bytes after descriptor", []byte{0x01, 0x01, 0x05, 0xFF}},
		{"retired null kind tag", []byte{0x00, 0x00}},
		{"unknown kind tag", []byte{0x0A, 0x00}},
		{"external with no parameter bytes", []byte{0x01, 0x00}},
		{"external with two parameter bytes", []byte{0x01, 0x02, 0x05, 0x05}},
		{"beta missing bit limit", []byte{0x06, 0x01, 0x00}},
		{"gamma with leftover parameter bytes", []byte{0x09, 0x02, 0x00, 0x00}},
		{"golomb missing modulus", []byte{0x02, 0x01, 0x00}},
		{"byte-array-stop missing stop byte", []byte{0x05, 0x00}},
		{"byte-array-stop missing block id", []byte{0x05, 0x01, 0x00}},
		{"composite with empty parameter blob", []byte{0x04, 0x00}},
		{"composite with one nested descriptor", []byte{0x04, 0x03, 0x01, 0x01, 0x00}},
		{"composite with truncated nested descriptor", []byte{0x04, 0x05, 0x06, 0x02, 0x00, 0x20, 0x01}},
		{"composite with leftover parameter bytes", []byte{0x04, 0x08, 0x06, 0x02, 0x00, 0x20, 0x01, 0x01, 0x00, 0xEE}},
		{"huffman value count beyond blob", []byte{0x03, 0x02, 0x7F, 0x00}},
		{"huffman bit length count mismatch", []byte{0x03, 0x05, 0x02, 0x01, 0x02, 0x01, 0x01}},
		{"huffman negative value count", []byte{0x03, 0x06, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDescriptor(tt.data)
			require.ErrorIs(t, err, errs.ErrMalformedDescriptor)
			assert.Nil(t, def)
		})
	}
}

func TestParseDescriptor_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"beta negative bit limit", []byte{0x06, 0x06, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"beta bit limit above 64", []byte{0x06, 0x02, 0x00, 0x41}},
		{"golomb modulus below 2", []byte{0x02, 0x02, 0x00, 0x01}},
		{"golomb-rice log2 modulus above 30", []byte{0x08, 0x02, 0x00, 0x1F}},
		{"subexponential k above 62", []byte{0x07, 0x02, 0x00, 0x3F}},
		{"huffman bit length above 64", []byte{0x03, 0x04, 0x01, 0x41, 0x01, 0x41}},
		{"byte-array-stop block id above 255", []byte{0x05, 0x03, 0x00, 0x81, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDescriptor(tt.data)
			require.ErrorIs(t, err, errs.ErrInvalidDefinition)
			assert.Nil(t, def)
		})
	}
}

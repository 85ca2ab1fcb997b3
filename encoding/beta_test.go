package encoding

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

func TestBetaCodec_WireFormat(t *testing.T) {
	tests := []struct {
		name   string
		def    Beta
		values []int64
		want   []byte
	}{
		{
			name:   "eight-bit fields are plain bytes",
			def:    Beta{Offset: 0, BitLimit: 8},
			values: []int64{0x41, 0x42, 0x43},
			want:   []byte{0x41, 0x42, 0x43},
		},
		{
			name:   "thirty-two bit field big-endian",
			def:    Beta{Offset: 0, BitLimit: 32},
			values: []int64{3},
			want:   []byte{0x00, 0x00, 0x00, 0x03},
		},
		{
			name:   "offset shifts the stored value",
			def:    Beta{Offset: 100, BitLimit: 8},
			values: []int64{100, 355},
			want:   []byte{0x00, 0xFF},
		},
		{
			name:   "sub-byte fields pack across values",
			def:    Beta{Offset: 0, BitLimit: 3},
			values: []int64{0b101, 0b011, 0b110},
			want:   []byte{0b10101111, 0b00000000}, // 101 011 110 + pad
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewIntEncoder(tt.def, NewWriteContext(nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, writeInts(t, enc, tt.values...))
		})
	}
}

func TestBetaCodec_RoundTrip(t *testing.T) {
	roundTripInts(t, Beta{Offset: 0, BitLimit: 8}, 0, 1, 127, 255)
	roundTripInts(t, Beta{Offset: -128, BitLimit: 8}, -128, -1, 0, 127)
	roundTripInts(t, Beta{Offset: 0, BitLimit: 1}, 1, 0, 1, 1, 0)
	roundTripInts(t, Beta{Offset: 0, BitLimit: 64}, 0, 1, int64(^uint64(0)>>1))
}

func TestBetaCodec_ZeroWidthEncodesConstant(t *testing.T) {
	def := Beta{Offset: 42, BitLimit: 0}

	enc, err := NewIntEncoder(def, NewWriteContext(nil))
	require.NoError(t, err)
	stream := writeInts(t, enc, 42, 42, 42)
	assert.Empty(t, stream)

	dec, err := NewIntDecoder(def, NewReadContext(nil))
	require.NoError(t, err)

	// Reads never touch the stream, so even an empty one yields the offset.
	r := bitio.NewReader(bytes.NewReader(nil))
	for i := 0; i < 3; i++ {
		v, err := dec.Read(r)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	}
}

func TestBetaCodec_WriteRejectsOutOfRange(t *testing.T) {
	enc, err := NewIntEncoder(Beta{Offset: 10, BitLimit: 4}, NewWriteContext(nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)

	// Below the offset.
	err = enc.Write(w, 9)
	assert.ErrorIs(t, err, errs.ErrValueOutOfRange)

	// Shifted value needs more than four bits.
	err = enc.Write(w, 26)
	assert.ErrorIs(t, err, errs.ErrValueOutOfRange)

	// Boundaries of the representable range stay writable.
	assert.NoError(t, enc.Write(w, 10))
	assert.NoError(t, enc.Write(w, 25))

	// Nothing from the rejected writes leaked into the stream.
	require.NoError(t, w.Flush())
	assert.Equal(t, []byte{0x0F}, buf.Bytes()) // 0000 1111
}

func TestBetaCodec_ReadExhaustion(t *testing.T) {
	dec, err := NewIntDecoder(Beta{Offset: 0, BitLimit: 16}, NewReadContext(nil))
	require.NoError(t, err)

	// Empty stream: clean boundary.
	_, err = dec.Read(bitio.NewReader(bytes.NewReader(nil)))
	assert.ErrorIs(t, err, io.EOF)

	// One byte left for a sixteen-bit field: truncated mid-value.
	_, err = dec.Read(bitio.NewReader(bytes.NewReader([]byte{0xAA})))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

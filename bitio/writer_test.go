package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqio/cram/errs"
)

func TestWriter_WriteBits_SingleByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// 101 then 01, packed MSB-first and zero-padded: 10101000.
	require.NoError(t, w.WriteBits(0b101, 3))
	require.NoError(t, w.WriteBits(0b01, 2))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0xA8}, buf.Bytes())
}

func TestWriter_WriteBits_CrossesByteBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(0xABCD, 16))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0xAB, 0xCD}, buf.Bytes())
}

func TestWriter_WriteBits_32BitField(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(3, 32))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x03}, buf.Bytes())
}

func TestWriter_WriteBits_MasksHighBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// Only the low 4 bits of the value participate.
	require.NoError(t, w.WriteBits(0xFFF5, 4))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0x50}, buf.Bytes())
}

func TestWriter_WriteBit_Sequence(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for _, bit := range []uint8{1, 1, 0, 1, 0, 0, 1, 0} {
		require.NoError(t, w.WriteBit(bit))
	}
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0xD2}, buf.Bytes())
}

func TestWriter_WriteBool(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteBool(false))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0xA0}, buf.Bytes())
}

func TestWriter_WriteBits_AccumulatorBoundarySplit(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// 60 bits then 16 bits forces a split across the 64-bit accumulator.
	require.NoError(t, w.WriteBits(0x0FFFFFFFFFFFFFFF, 60))
	require.NoError(t, w.WriteBits(0x1234, 16))
	require.NoError(t, w.Flush())

	// 60 ones, then 0001001000110100, then 4 pad bits:
	// FF FF FF FF FF FF FF F1 23 40
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xF1, 0x23, 0x40}, buf.Bytes())
}

func TestWriter_Flush_EmptyIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Flush())
	require.NoError(t, w.Flush())
	require.Zero(t, buf.Len())
}

func TestWriter_Flush_RealignsToByteBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(0xF, 4))
	require.NoError(t, w.Flush())
	require.NoError(t, w.WriteBits(0xF, 4))
	require.NoError(t, w.Flush())

	// Each flush pads its own partial byte; writes after a flush start a
	// fresh byte.
	require.Equal(t, []byte{0xF0, 0xF0}, buf.Bytes())
}

func TestWriter_WriteBits_ZeroBitsWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(0xFF, 0))
	require.NoError(t, w.Flush())
	require.Zero(t, buf.Len())
}

func TestWriter_WriteBits_InvalidBitCount(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})

	require.ErrorIs(t, w.WriteBits(0, -1), errs.ErrInvalidBitCount)
	require.ErrorIs(t, w.WriteBits(0, 65), errs.ErrInvalidBitCount)
}

func TestWriter_WriteBits_FullWidth(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteBits(0x0123456789ABCDEF, 64))
	require.NoError(t, w.Flush())

	require.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}, buf.Bytes())
}

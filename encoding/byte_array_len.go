package encoding

import (
	"fmt"
	"io"
	"math"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// The length-prefixed byte-array codec splits one logical value across both
// session channels: the byte count goes through the length encoding on the
// core bit stream, the bytes themselves through the values encoding's
// external block. Nothing on the wire ties the two halves together; the only
// correlation is call order, so the nth length read must line up with the
// nth span of block bytes. Inserting any per-value delimiter or length echo
// on the block side would break byte compatibility.

// checkByteArrayLenParts enforces the channel split at build time: the
// length encoding must live on the bit stream, and the values encoding must
// be an external block pass-through, the only byte-array kind that can serve
// an explicit-length read.
func checkByteArrayLenParts(def ByteArrayLen) (External, error) {
	if def.LengthEncoding.Kind().UsesExternalBlock() {
		return External{}, fmt.Errorf("%w: %s cannot carry the length", errs.ErrInvalidLengthEncoding, def.LengthEncoding.Kind())
	}

	values, ok := def.ValuesEncoding.(External)
	if !ok {
		return External{}, fmt.Errorf("%w: %s cannot carry the values of a length-prefixed array", errs.ErrUnsupportedEncoding, def.ValuesEncoding.Kind())
	}

	return values, nil
}

type byteArrayLenEncoder struct {
	length ValueEncoder[int64]
	sink   io.Writer
}

func newByteArrayLenEncoder(def ByteArrayLen, ctx *WriteContext) (*byteArrayLenEncoder, error) {
	values, err := checkByteArrayLenParts(def)
	if err != nil {
		return nil, err
	}

	length, err := newIntBitCodec(def.LengthEncoding)
	if err != nil {
		return nil, err
	}

	sink, err := ctx.sink(values.BlockID)
	if err != nil {
		return nil, err
	}

	return &byteArrayLenEncoder{length: length, sink: sink}, nil
}

// Write sends len(value) through the bit stream and the raw bytes to the
// block sink. The length goes first so a length encoding that cannot
// represent the count fails before any bytes reach the block.
func (e *byteArrayLenEncoder) Write(w *bitio.Writer, value []byte) error {
	if err := e.length.Write(w, int64(len(value))); err != nil {
		return err
	}

	_, err := e.sink.Write(value)

	return err
}

type byteArrayLenDecoder struct {
	length ValueDecoder[int64]
	src    byteSource
}

func newByteArrayLenDecoder(def ByteArrayLen, ctx *ReadContext) (*byteArrayLenDecoder, error) {
	values, err := checkByteArrayLenParts(def)
	if err != nil {
		return nil, err
	}

	length, err := newIntBitCodec(def.LengthEncoding)
	if err != nil {
		return nil, err
	}

	src, err := ctx.source(values.BlockID)
	if err != nil {
		return nil, err
	}

	return &byteArrayLenDecoder{length: length, src: src}, nil
}

// Read decodes the next length from the bit stream, then takes exactly that
// many bytes from the block channel. A zero length touches the block channel
// not at all. A block that ends early yields io.ErrUnexpectedEOF: the length
// was already consumed, so the value is truncated, not absent.
func (d *byteArrayLenDecoder) Read(r *bitio.Reader) ([]byte, error) {
	n, err := d.length.Read(r)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > math.MaxInt32 {
		return nil, fmt.Errorf("%w: decoded length %d", errs.ErrValueOutOfRange, n)
	}

	value := make([]byte, n)
	if _, err := io.ReadFull(d.src, value); err != nil {
		return nil, mapMidValueEOF(err)
	}

	return value, nil
}

// ReadN always fails: the length of a length-prefixed array originates from
// the bit stream, never from the caller. Accepting an explicit length here
// would desynchronize the two channels for every later value.
func (d *byteArrayLenDecoder) ReadN(_ *bitio.Reader, _ int) ([]byte, error) {
	return nil, fmt.Errorf("%w: length-prefixed arrays take their length from the bit stream", errs.ErrUsageViolation)
}

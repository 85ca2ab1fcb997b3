package encoding

import (
	"fmt"
	"io"
	"math"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
	"github.com/seqio/cram/varint"
)

// The external codecs bypass the bit stream entirely: every value travels
// through the block channel the definition names. Integer values are
// self-delimiting on the channel (ITF8 or LTF8); byte arrays are not, which
// is why their decoder only supports the explicit-length read.

type externalIntEncoder struct {
	sink    io.Writer
	scratch [varint.MaxLenITF8]byte
}

func (e *externalIntEncoder) Write(_ *bitio.Writer, value int64) error {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return fmt.Errorf("%w: value %d outside the 32-bit range", errs.ErrValueOutOfRange, value)
	}

	buf := varint.AppendITF8(e.scratch[:0], int32(value))
	_, err := e.sink.Write(buf)

	return err
}

type externalIntDecoder struct {
	singleValueRead

	src byteSource
}

func (d *externalIntDecoder) Read(_ *bitio.Reader) (int64, error) {
	v, err := varint.ReadITF8(d.src)
	if err != nil {
		return 0, err
	}

	return int64(v), nil
}

type externalLongEncoder struct {
	sink    io.Writer
	scratch [varint.MaxLenLTF8]byte
}

func (e *externalLongEncoder) Write(_ *bitio.Writer, value int64) error {
	buf := varint.AppendLTF8(e.scratch[:0], value)
	_, err := e.sink.Write(buf)

	return err
}

type externalLongDecoder struct {
	singleValueRead

	src byteSource
}

func (d *externalLongDecoder) Read(_ *bitio.Reader) (int64, error) {
	return varint.ReadLTF8(d.src)
}

type externalByteArrayEncoder struct {
	sink io.Writer
}

func (e *externalByteArrayEncoder) Write(_ *bitio.Writer, value []byte) error {
	_, err := e.sink.Write(value)

	return err
}

type externalByteArrayDecoder struct {
	src byteSource
}

// Read always fails: raw external bytes carry no length or delimiter of
// their own, so the codec cannot know where one value ends.
func (d *externalByteArrayDecoder) Read(_ *bitio.Reader) ([]byte, error) {
	return nil, fmt.Errorf("%w: external byte arrays are not self-delimiting; use ReadN", errs.ErrUsageViolation)
}

// ReadN reads exactly length raw bytes from the block channel. A channel
// that ends before length bytes arrive yields io.ErrUnexpectedEOF, or io.EOF
// when it was already empty.
func (d *externalByteArrayDecoder) ReadN(_ *bitio.Reader, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", errs.ErrUsageViolation, length)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(d.src, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

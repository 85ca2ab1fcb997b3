package encoding

import (
	"bytes"
	"fmt"
	"io"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// byteArrayStopEncoder writes raw bytes to the block channel followed by the
// stop byte. Values containing the stop byte cannot round-trip, so Write
// rejects them instead of producing a value that would read back short.
type byteArrayStopEncoder struct {
	stop    byte
	sink    io.Writer
	scratch [1]byte
}

func (e *byteArrayStopEncoder) Write(_ *bitio.Writer, value []byte) error {
	if i := bytes.IndexByte(value, e.stop); i >= 0 {
		return fmt.Errorf("%w: value contains stop byte 0x%02x at index %d", errs.ErrValueOutOfRange, e.stop, i)
	}

	if _, err := e.sink.Write(value); err != nil {
		return err
	}

	e.scratch[0] = e.stop
	_, err := e.sink.Write(e.scratch[:])

	return err
}

type byteArrayStopDecoder struct {
	stop byte
	src  byteSource
}

// Read consumes channel bytes up to and excluding the next stop byte. An
// empty channel yields io.EOF; a channel that ends after some bytes but
// before the stop byte yields io.ErrUnexpectedEOF.
func (d *byteArrayStopDecoder) Read(_ *bitio.Reader) ([]byte, error) {
	value := make([]byte, 0, 16)
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			if len(value) > 0 {
				err = mapMidValueEOF(err)
			}

			return nil, err
		}
		if b == d.stop {
			return value, nil
		}

		value = append(value, b)
	}
}

func (d *byteArrayStopDecoder) ReadN(_ *bitio.Reader, _ int) ([]byte, error) {
	return nil, fmt.Errorf("%w: stop-byte arrays delimit themselves; use Read", errs.ErrUsageViolation)
}

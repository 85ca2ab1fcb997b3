package encoding

import (
	"fmt"
	"math/bits"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// gammaCodec stores value-offset in Elias gamma form: for a shifted value of
// bit length N it writes N-1 zero bits followed by the value itself in N bits,
// leading one included. The shifted value must be at least 1, so the code is
// self-terminating.
type gammaCodec struct {
	singleValueRead

	offset int64
}

func (c *gammaCodec) Write(w *bitio.Writer, value int64) error {
	if value <= c.offset {
		return fmt.Errorf("%w: value %d must exceed offset %d", errs.ErrValueOutOfRange, value, c.offset)
	}

	stored := uint64(value) - uint64(c.offset)
	n := bits.Len64(stored)

	if err := w.WriteBits(0, n-1); err != nil {
		return err
	}

	return w.WriteBits(stored, n)
}

func (c *gammaCodec) Read(r *bitio.Reader) (int64, error) {
	zeros := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			if zeros > 0 {
				err = mapMidValueEOF(err)
			}

			return 0, err
		}
		if bit == 1 {
			break
		}

		zeros++
		if zeros > 63 {
			return 0, fmt.Errorf("%w: unary prefix longer than 64 bits", errs.ErrValueOutOfRange)
		}
	}

	low, err := r.ReadBits(zeros)
	if err != nil {
		return 0, mapMidValueEOF(err)
	}

	stored := uint64(1)<<zeros | low

	return int64(stored) + c.offset, nil
}

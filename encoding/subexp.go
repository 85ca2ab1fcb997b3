package encoding

import (
	"fmt"
	"math/bits"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// subexponentialCodec stores value-offset with a unary-selected width: shifted
// values below 2^k go as a zero bit plus k fixed bits, larger values as u one
// bits selecting the width b = u+k-1, a zero terminator, and the low b bits of
// the value (its leading one is implied by the width).
type subexponentialCodec struct {
	singleValueRead

	offset int64
	k      int
}

func newSubexponentialCodec(def Subexponential) *subexponentialCodec {
	return &subexponentialCodec{offset: int64(def.Offset), k: int(def.K)}
}

func (c *subexponentialCodec) Write(w *bitio.Writer, value int64) error {
	if value < c.offset {
		return fmt.Errorf("%w: value %d below offset %d", errs.ErrValueOutOfRange, value, c.offset)
	}

	stored := uint64(value) - uint64(c.offset)

	b := c.k
	u := 0
	if stored >= uint64(1)<<c.k {
		b = bits.Len64(stored) - 1
		u = b - c.k + 1
	}

	for ; u > 0; u-- {
		if err := w.WriteBit(1); err != nil {
			return err
		}
	}
	if err := w.WriteBit(0); err != nil {
		return err
	}

	return w.WriteBits(stored, b)
}

func (c *subexponentialCodec) Read(r *bitio.Reader) (int64, error) {
	u := 0
	first := true
	for {
		bit, err := r.ReadBit()
		if err != nil {
			if !first {
				err = mapMidValueEOF(err)
			}

			return 0, err
		}
		first = false

		if bit == 0 {
			break
		}

		u++
		if u+c.k-1 > 63 {
			return 0, fmt.Errorf("%w: width prefix exceeds the 64-bit range", errs.ErrValueOutOfRange)
		}
	}

	if u == 0 {
		low, err := r.ReadBits(c.k)
		if err != nil {
			return 0, mapMidValueEOF(err)
		}

		return int64(low) + c.offset, nil
	}

	b := u + c.k - 1
	low, err := r.ReadBits(b)
	if err != nil {
		return 0, mapMidValueEOF(err)
	}

	stored := uint64(1)<<b | low

	return int64(stored) + c.offset, nil
}

package encoding

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// golombCodec splits value-offset against the modulus M: the quotient travels
// in unary as one bits closed by a zero, the remainder in truncated binary so
// that small remainders save a bit when M is not a power of two.
type golombCodec struct {
	singleValueRead

	offset int64
	m      uint64
	rbits  int    // full remainder width, ceil(log2(M))
	cutoff uint64 // remainders below this use rbits-1 bits
}

func newGolombCodec(def Golomb) *golombCodec {
	m := uint64(def.M)
	rbits := bits.Len64(m - 1)

	return &golombCodec{
		offset: int64(def.Offset),
		m:      m,
		rbits:  rbits,
		cutoff: uint64(1)<<rbits - m,
	}
}

func (c *golombCodec) Write(w *bitio.Writer, value int64) error {
	if value < c.offset {
		return fmt.Errorf("%w: value %d below offset %d", errs.ErrValueOutOfRange, value, c.offset)
	}

	stored := uint64(value) - uint64(c.offset)
	quotient := stored / c.m
	remainder := stored % c.m

	for ; quotient > 0; quotient-- {
		if err := w.WriteBit(1); err != nil {
			return err
		}
	}
	if err := w.WriteBit(0); err != nil {
		return err
	}

	if remainder < c.cutoff {
		return w.WriteBits(remainder, c.rbits-1)
	}

	return w.WriteBits(remainder+c.cutoff, c.rbits)
}

func (c *golombCodec) Read(r *bitio.Reader) (int64, error) {
	var quotient uint64
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

		quotient++
		if quotient > math.MaxInt64/c.m {
			return 0, fmt.Errorf("%w: quotient overflows the 64-bit range", errs.ErrValueOutOfRange)
		}
	}

	// Truncated binary: rbits-1 bits cover remainders below the cutoff, one
	// extra bit disambiguates the rest.
	remainder, err := r.ReadBits(c.rbits - 1)
	if err != nil {
		return 0, mapMidValueEOF(err)
	}
	if remainder >= c.cutoff {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, mapMidValueEOF(err)
		}

		remainder = remainder<<1 | uint64(bit)
		remainder -= c.cutoff
	}

	stored := quotient*c.m + remainder

	return int64(stored) + c.offset, nil
}

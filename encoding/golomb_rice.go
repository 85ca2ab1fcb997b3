package encoding

import (
	"fmt"
	"math"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// golombRiceCodec is the power-of-two Golomb special case: with M = 2^log2m
// the quotient is a shift and the remainder a mask, and the remainder always
// takes exactly log2m bits.
type golombRiceCodec struct {
	singleValueRead

	offset int64
	log2m  int
	mask   uint64
}

func newGolombRiceCodec(def GolombRice) *golombRiceCodec {
	return &golombRiceCodec{
		offset: int64(def.Offset),
		log2m:  int(def.Log2M),
		mask:   uint64(1)<<def.Log2M - 1,
	}
}

func (c *golombRiceCodec) Write(w *bitio.Writer, value int64) error {
	if value < c.offset {
		return fmt.Errorf("%w: value %d below offset %d", errs.ErrValueOutOfRange, value, c.offset)
	}

	stored := uint64(value) - uint64(c.offset)

	for quotient := stored >> c.log2m; quotient > 0; quotient-- {
		if err := w.WriteBit(1); err != nil {
			return err
		}
	}
	if err := w.WriteBit(0); err != nil {
		return err
	}

	return w.WriteBits(stored&c.mask, c.log2m)
}

func (c *golombRiceCodec) Read(r *bitio.Reader) (int64, error) {
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
		if quotient > uint64(math.MaxInt64)>>c.log2m {
			return 0, fmt.Errorf("%w: quotient overflows the 64-bit range", errs.ErrValueOutOfRange)
		}
	}

	remainder, err := r.ReadBits(c.log2m)
	if err != nil {
		return 0, mapMidValueEOF(err)
	}

	stored := quotient<<c.log2m | remainder

	return int64(stored) + c.offset, nil
}

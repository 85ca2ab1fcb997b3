package encoding

import (
	"fmt"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// betaCodec stores value-offset as a fixed-width big-endian bit field.
//
// A width of zero is legal and encodes a constant: no bits move in either
// direction and every read yields the offset.
type betaCodec struct {
	singleValueRead

	offset   int64
	bitLimit int
}

func newBetaCodec(def Beta) *betaCodec {
	return &betaCodec{offset: int64(def.Offset), bitLimit: int(def.BitLimit)}
}

// Write rejects values the field cannot hold instead of silently truncating
// them: below-offset values and values whose shifted form does not fit in
// bitLimit bits both fail with errs.ErrValueOutOfRange before any bits are
// written.
func (c *betaCodec) Write(w *bitio.Writer, value int64) error {
	if value < c.offset {
		return fmt.Errorf("%w: value %d below offset %d", errs.ErrValueOutOfRange, value, c.offset)
	}

	stored := uint64(value) - uint64(c.offset)
	if c.bitLimit < 64 && stored>>c.bitLimit != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", errs.ErrValueOutOfRange, value, c.bitLimit)
	}

	return w.WriteBits(stored, c.bitLimit)
}

func (c *betaCodec) Read(r *bitio.Reader) (int64, error) {
	stored, err := r.ReadBits(c.bitLimit)
	if err != nil {
		return 0, err
	}

	return int64(stored) + c.offset, nil
}

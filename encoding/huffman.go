package encoding

import (
	"fmt"
	"slices"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// huffmanCodec implements canonical Huffman coding: the descriptor carries
// only values and code lengths, and both sides rebuild identical code words
// by assigning consecutive codes in (length, value) order.
//
// A single-value book with code length zero is the degenerate constant case:
// writes and reads touch no bits at all.
type huffmanCodec struct {
	singleValueRead

	codes  map[int64]huffCode
	groups []huffGroup

	constant      bool
	constantValue int64
}

type huffCode struct {
	bits   uint64
	length int
}

// huffGroup indexes the decode side by code length: canonical codes of one
// length are consecutive, so a symbol is found by offsetting from the first
// code of its length group.
type huffGroup struct {
	length    int
	firstCode uint64
	values    []int64
}

type huffEntry struct {
	value  int32
	length int
}

func newHuffmanCodec(def Huffman) (*huffmanCodec, error) {
	if len(def.Values) == 1 && def.BitLengths[0] == 0 {
		return &huffmanCodec{constant: true, constantValue: int64(def.Values[0])}, nil
	}

	entries := make([]huffEntry, len(def.Values))
	for i, v := range def.Values {
		entries[i] = huffEntry{value: v, length: int(def.BitLengths[i])}
	}
	slices.SortFunc(entries, func(a, b huffEntry) int {
		if a.length != b.length {
			return a.length - b.length
		}

		return int(a.value) - int(b.value)
	})

	c := &huffmanCodec{codes: make(map[int64]huffCode, len(entries))}

	code := int64(-1)
	prevLen := 0
	for _, e := range entries {
		code++
		if e.length > prevLen {
			code <<= e.length - prevLen
			prevLen = e.length
		}

		if uint64(code)>>e.length != 0 {
			return nil, fmt.Errorf("%w: code lengths oversubscribe the code space", errs.ErrInvalidDefinition)
		}

		c.codes[int64(e.value)] = huffCode{bits: uint64(code), length: e.length}

		last := len(c.groups) - 1
		if last < 0 || c.groups[last].length != e.length {
			c.groups = append(c.groups, huffGroup{length: e.length, firstCode: uint64(code)})
			last++
		}
		c.groups[last].values = append(c.groups[last].values, int64(e.value))
	}

	return c, nil
}

func (c *huffmanCodec) Write(w *bitio.Writer, value int64) error {
	if c.constant {
		if value != c.constantValue {
			return fmt.Errorf("%w: value %d not in the code book", errs.ErrValueOutOfRange, value)
		}

		return nil
	}

	code, ok := c.codes[value]
	if !ok {
		return fmt.Errorf("%w: value %d not in the code book", errs.ErrValueOutOfRange, value)
	}

	return w.WriteBits(code.bits, code.length)
}

func (c *huffmanCodec) Read(r *bitio.Reader) (int64, error) {
	if c.constant {
		return c.constantValue, nil
	}

	var code uint64
	prevLen := 0
	for _, g := range c.groups {
		chunk, err := r.ReadBits(g.length - prevLen)
		if err != nil {
			if prevLen > 0 {
				err = mapMidValueEOF(err)
			}

			return 0, err
		}

		code = code<<(g.length-prevLen) | chunk
		prevLen = g.length

		if code >= g.firstCode && code-g.firstCode < uint64(len(g.values)) {
			return g.values[code-g.firstCode], nil
		}
	}

	return 0, fmt.Errorf("%w: bit pattern matches no code word", errs.ErrValueOutOfRange)
}

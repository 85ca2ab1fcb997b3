package block

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/seqio/cram/compress"
	"github.com/seqio/cram/errs"
	"github.com/seqio/cram/format"
	"github.com/seqio/cram/internal/hash"
	"github.com/seqio/cram/internal/options"
	"github.com/seqio/cram/internal/pool"
)

// Writer accumulates the raw payload of one external block during a write
// session. It is the sink handed to codecs through encoding.NewWriteContext;
// codecs only ever append bytes.
//
// A Writer belongs to exactly one WriteSet and becomes immutable when the set
// is sealed: later writes fail with errs.ErrBlockSealed.
type Writer struct {
	id     uint8
	buf    *pool.ByteBuffer
	sealed bool
}

// ID returns the block id values of this block are routed by.
func (w *Writer) ID() uint8 { return w.id }

// Len returns the number of raw payload bytes accumulated so far.
func (w *Writer) Len() int {
	if w.buf == nil {
		return 0
	}

	return w.buf.Len()
}

// Write appends p to the block payload. It implements io.Writer and never
// fails before the block is sealed.
func (w *Writer) Write(p []byte) (int, error) {
	if w.sealed {
		return 0, fmt.Errorf("%w: block %d", errs.ErrBlockSealed, w.id)
	}

	return w.buf.Write(p)
}

// WriteByte appends a single byte to the block payload.
func (w *Writer) WriteByte(b byte) error {
	if w.sealed {
		return fmt.Errorf("%w: block %d", errs.ErrBlockSealed, w.id)
	}

	return w.buf.WriteByte(b)
}

// seal compresses the accumulated payload and returns the immutable Block.
// The pooled buffer goes back to the pool, so the payload is copied whenever
// the codec may alias its input.
func (w *Writer) seal(method format.CompressionType) (Block, error) {
	w.sealed = true

	codec, err := compress.GetCodec(method)
	if err != nil {
		return Block{}, fmt.Errorf("block %d: %w", w.id, err)
	}

	raw := w.buf.Bytes()
	digest := hash.Digest(raw)

	payload, err := codec.Compress(raw)
	if err != nil {
		return Block{}, fmt.Errorf("block %d: %w", w.id, err)
	}
	if method == format.CompressionNone {
		// The no-op codec returns the input unchanged; detach from the
		// pooled buffer before it is recycled.
		payload = bytes.Clone(payload)
	}

	rawSize := len(raw)
	pool.PutBlockBuffer(w.buf)
	w.buf = nil

	return Block{
		ID:          w.id,
		Compression: method,
		RawSize:     rawSize,
		Digest:      digest,
		payload:     payload,
	}, nil
}

// WriteSet owns the external block writers of one write session.
//
// Codecs address blocks by id, so the typical flow is: create one Writer per
// block id the field definitions name, hand Sinks() to
// encoding.NewWriteContext, run the write session, then Seal.
type WriteSet struct {
	writers     map[uint8]*Writer
	defaultComp format.CompressionType
	perBlock    map[uint8]format.CompressionType
	sealed      bool
}

// NewWriteSet creates an empty write set. Without options every block seals
// uncompressed.
func NewWriteSet(opts ...options.Option[*WriteSet]) (*WriteSet, error) {
	s := &WriteSet{
		writers:     make(map[uint8]*Writer),
		defaultComp: format.CompressionNone,
		perBlock:    make(map[uint8]format.CompressionType),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// WithCompression sets the compression method applied to every block at seal
// time, unless overridden per block.
func WithCompression(method format.CompressionType) options.Option[*WriteSet] {
	return options.New(func(s *WriteSet) error {
		if _, err := compress.GetCodec(method); err != nil {
			return err
		}
		s.defaultComp = method

		return nil
	})
}

// WithBlockCompression overrides the compression method for a single block
// id. Useful when one channel holds already-compressed or high-entropy data
// that should seal uncompressed while the rest of the session compresses.
func WithBlockCompression(id uint8, method format.CompressionType) options.Option[*WriteSet] {
	return options.New(func(s *WriteSet) error {
		if _, err := compress.GetCodec(method); err != nil {
			return err
		}
		s.perBlock[id] = method

		return nil
	})
}

// Block returns the writer for id, creating it on first use.
func (s *WriteSet) Block(id uint8) *Writer {
	if w, ok := s.writers[id]; ok {
		return w
	}

	w := &Writer{id: id, sealed: s.sealed}
	if !s.sealed {
		w.buf = pool.GetBlockBuffer()
	}
	s.writers[id] = w

	return w
}

// Sinks returns the block id to sink mapping for encoding.NewWriteContext.
// Only writers already created through Block appear.
func (s *WriteSet) Sinks() map[uint8]io.Writer {
	sinks := make(map[uint8]io.Writer, len(s.writers))
	for id, w := range s.writers {
		sinks[id] = w
	}

	return sinks
}

// Len returns the number of blocks in the set.
func (s *WriteSet) Len() int { return len(s.writers) }

func (s *WriteSet) compressionFor(id uint8) format.CompressionType {
	if method, ok := s.perBlock[id]; ok {
		return method
	}

	return s.defaultComp
}

// Seal finalizes the write session: every block payload is compressed with
// its configured method and wrapped into an immutable Block carrying the raw
// size and payload digest. Blocks come back sorted by id.
//
// Sealing is terminal. The set and all its writers reject further writes,
// and a second Seal fails with errs.ErrBlockSealed.
func (s *WriteSet) Seal() ([]Block, error) {
	if s.sealed {
		return nil, fmt.Errorf("%w: write set already sealed", errs.ErrBlockSealed)
	}
	s.sealed = true

	blocks := make([]Block, 0, len(s.writers))
	for id, w := range s.writers {
		blk, err := w.seal(s.compressionFor(id))
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
	}
	slices.SortFunc(blocks, func(a, b Block) int {
		return int(a.ID) - int(b.ID)
	})

	return blocks, nil
}

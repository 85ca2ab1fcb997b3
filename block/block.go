// Package block implements the external block store of a codec session: the
// per-id byte sinks values are written to, the sealed immutable blocks they
// become, and the forward-only readers a decode session pulls from.
//
// The package deliberately stops at the session boundary. How sealed blocks
// are framed, persisted or shipped is the surrounding container's concern;
// here a block is just an id, a compressed payload, and enough metadata to
// restore and verify the raw bytes.
package block

import (
	"bytes"
	"fmt"
	"io"

	"github.com/seqio/cram/compress"
	"github.com/seqio/cram/errs"
	"github.com/seqio/cram/format"
	"github.com/seqio/cram/internal/hash"
)

// Block is one sealed external block: the compressed payload plus the
// metadata needed to restore and verify it. Blocks are immutable values;
// copying them is cheap and safe.
type Block struct {
	// ID is the block id codecs route values by.
	ID uint8

	// Compression is the method the payload was sealed with.
	Compression format.CompressionType

	// RawSize is the uncompressed payload length in bytes.
	RawSize int

	// Digest is the xxhash64 of the uncompressed payload.
	Digest uint64

	payload []byte
}

// NewBlock wraps an already-compressed payload into a Block, for callers
// restoring blocks from their own storage. The digest must cover the
// uncompressed bytes.
func NewBlock(id uint8, method format.CompressionType, rawSize int, digest uint64, payload []byte) Block {
	return Block{
		ID:          id,
		Compression: method,
		RawSize:     rawSize,
		Digest:      digest,
		payload:     payload,
	}
}

// Size returns the compressed payload length in bytes.
func (b Block) Size() int { return len(b.payload) }

// Payload returns the compressed payload. The slice is the block's backing
// store; callers must not modify it.
func (b Block) Payload() []byte { return b.payload }

// Open decompresses the payload, verifies it against RawSize and Digest, and
// returns a forward-only reader over the raw bytes. Corruption anywhere in
// the pipeline surfaces as errs.ErrBlockDigestMismatch before a single byte
// is served.
//
// Each call yields an independent reader over the same raw payload.
func (b Block) Open() (*Reader, error) {
	codec, err := compress.GetCodec(b.Compression)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", b.ID, err)
	}

	raw, err := codec.Decompress(b.payload)
	if err != nil {
		return nil, fmt.Errorf("block %d: %w", b.ID, err)
	}
	if len(raw) != b.RawSize {
		return nil, fmt.Errorf("%w: block %d restored %d bytes, expected %d",
			errs.ErrBlockDigestMismatch, b.ID, len(raw), b.RawSize)
	}
	if hash.Digest(raw) != b.Digest {
		return nil, fmt.Errorf("%w: block %d", errs.ErrBlockDigestMismatch, b.ID)
	}

	return &Reader{r: bytes.NewReader(raw)}, nil
}

// Reader is a forward-only reader over one opened block payload. It
// implements io.Reader and io.ByteReader, the contract
// encoding.NewReadContext expects from a block source.
type Reader struct {
	r *bytes.Reader
}

func (r *Reader) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *Reader) ReadByte() (byte, error) { return r.r.ReadByte() }

// Len returns the number of unread payload bytes.
func (r *Reader) Len() int { return r.r.Len() }

// Sources opens every block and returns the block id to source mapping for
// encoding.NewReadContext. Two blocks with the same id fail with
// errs.ErrDuplicateBlockID: silently keeping one of them would desynchronize
// any field reading that channel.
func Sources(blocks []Block) (map[uint8]io.Reader, error) {
	sources := make(map[uint8]io.Reader, len(blocks))
	for _, b := range blocks {
		if _, dup := sources[b.ID]; dup {
			return nil, fmt.Errorf("%w: %d", errs.ErrDuplicateBlockID, b.ID)
		}

		r, err := b.Open()
		if err != nil {
			return nil, err
		}
		sources[b.ID] = r
	}

	return sources, nil
}

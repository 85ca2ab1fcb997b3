package encoding

import (
	"fmt"
	"io"

	"github.com/seqio/cram/errs"
)

// byteSource is the read-side channel contract: external codecs pull both
// byte runs and single bytes (varint fields, stop-byte scans) from a block
// source.
type byteSource interface {
	io.Reader
	io.ByteReader
}

// readerByteSource adapts a plain io.Reader into a byteSource with one-byte
// reads, without introducing any read-ahead buffering: bytes leave the
// underlying source only when a codec asks for them.
type readerByteSource struct {
	io.Reader
}

func (r readerByteSource) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r.Reader, buf[:]); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// WriteContext is the write half of a codec session: a mapping from external
// block ids to their byte sinks. A context serves exactly one direction; the
// read direction uses ReadContext.
//
// The caller owns the underlying sinks and their lifetime. Codecs built
// against the context only ever append bytes to them.
type WriteContext struct {
	sinks map[uint8]io.Writer
}

// NewWriteContext creates a write session context over the given block sinks.
// The map is copied; later mutation by the caller does not affect the context.
func NewWriteContext(sinks map[uint8]io.Writer) *WriteContext {
	ctx := &WriteContext{sinks: make(map[uint8]io.Writer, len(sinks))}
	for id, w := range sinks {
		ctx.sinks[id] = w
	}

	return ctx
}

// sink resolves a block id to its registered byte sink.
func (c *WriteContext) sink(id uint8) (io.Writer, error) {
	w, ok := c.sinks[id]
	if !ok || w == nil {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownBlockID, id)
	}

	return w, nil
}

// ReadContext is the read half of a codec session: a mapping from external
// block ids to their byte sources.
//
// Sources that implement io.ByteReader (such as block.Reader or
// bytes.Reader) are used directly; others are adapted with strict one-byte
// reads so no source data is consumed ahead of codec demand.
type ReadContext struct {
	sources map[uint8]byteSource
}

// NewReadContext creates a read session context over the given block sources.
// The map is copied; later mutation by the caller does not affect the context.
func NewReadContext(sources map[uint8]io.Reader) *ReadContext {
	ctx := &ReadContext{sources: make(map[uint8]byteSource, len(sources))}
	for id, r := range sources {
		if r == nil {
			continue
		}
		if bs, ok := r.(byteSource); ok {
			ctx.sources[id] = bs
		} else {
			ctx.sources[id] = readerByteSource{Reader: r}
		}
	}

	return ctx
}

// source resolves a block id to its registered byte source.
func (c *ReadContext) source(id uint8) (byteSource, error) {
	r, ok := c.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownBlockID, id)
	}

	return r, nil
}

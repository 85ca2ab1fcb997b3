package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/seqio/cram/bitio"
	"github.com/seqio/cram/errs"
)

// ValueEncoder writes values of one field through its configured encoding.
//
// Bit-stream encodings pack bits into the shared bit writer; external
// encodings ignore it and append bytes to their block sink. One encoder
// serves one write session, and calls must happen in record order: call
// order is the only correlation between the bit stream and the block
// channels.
type ValueEncoder[T any] interface {
	Write(w *bitio.Writer, value T) error
}

// ValueDecoder reads values of one field through its configured encoding.
//
// Read decodes the next value using only the session streams. ReadN is the
// explicit-length path for byte arrays whose length the caller already
// knows; codecs whose contract derives the length from the streams
// themselves reject ReadN with errs.ErrUsageViolation.
type ValueDecoder[T any] interface {
	Read(r *bitio.Reader) (T, error)
	ReadN(r *bitio.Reader, length int) (T, error)
}

// intCodec is the direction-agnostic bit-stream codec shared by the integer
// factories: the wire format of a bit-stream kind does not depend on the
// session direction.
type intCodec interface {
	ValueEncoder[int64]
	ValueDecoder[int64]
}

// singleValueRead rejects the explicit-length path on behalf of every
// single-value integer decoder.
type singleValueRead struct{}

func (singleValueRead) ReadN(_ *bitio.Reader, _ int) (int64, error) {
	return 0, fmt.Errorf("%w: integer codecs define no explicit-length read", errs.ErrUsageViolation)
}

// mapMidValueEOF converts a clean end-of-stream into the mid-value signal.
// Multi-part codes use it on every read after the first: once any bit of a
// value was consumed, running out of input is a truncation, not a boundary.
func mapMidValueEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}

func checkDefinition(def Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", errs.ErrInvalidDefinition)
	}

	return def.validate()
}

// newIntBitCodec builds the bit-stream codec for an integer-capable kind.
func newIntBitCodec(def Definition) (intCodec, error) {
	switch d := def.(type) {
	case Beta:
		return newBetaCodec(d), nil
	case Gamma:
		return &gammaCodec{offset: int64(d.Offset)}, nil
	case Golomb:
		return newGolombCodec(d), nil
	case GolombRice:
		return newGolombRiceCodec(d), nil
	case Subexponential:
		return newSubexponentialCodec(d), nil
	case Huffman:
		return newHuffmanCodec(d)
	default:
		return nil, fmt.Errorf("%w: %s cannot carry integer values", errs.ErrUnsupportedEncoding, def.Kind())
	}
}

// NewIntEncoder builds an integer encoder from a definition and a write
// session context. External definitions serialize values as ITF8 onto their
// block sink and are limited to the 32-bit range; every other supported kind
// writes to the shared bit stream and covers int64.
func NewIntEncoder(def Definition, ctx *WriteContext) (ValueEncoder[int64], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	if d, ok := def.(External); ok {
		sink, err := ctx.sink(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalIntEncoder{sink: sink}, nil
	}

	codec, err := newIntBitCodec(def)
	if err != nil {
		return nil, err
	}

	return codec, nil
}

// NewIntDecoder builds the integer decoder matching NewIntEncoder.
func NewIntDecoder(def Definition, ctx *ReadContext) (ValueDecoder[int64], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	if d, ok := def.(External); ok {
		src, err := ctx.source(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalIntDecoder{src: src}, nil
	}

	codec, err := newIntBitCodec(def)
	if err != nil {
		return nil, err
	}

	return codec, nil
}

// NewLongEncoder builds a 64-bit integer encoder. It differs from
// NewIntEncoder only for External definitions, which serialize values as
// LTF8 and cover the full int64 range; bit-stream kinds share one wire
// format across both factories.
func NewLongEncoder(def Definition, ctx *WriteContext) (ValueEncoder[int64], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	if d, ok := def.(External); ok {
		sink, err := ctx.sink(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalLongEncoder{sink: sink}, nil
	}

	codec, err := newIntBitCodec(def)
	if err != nil {
		return nil, err
	}

	return codec, nil
}

// NewLongDecoder builds the 64-bit integer decoder matching NewLongEncoder.
func NewLongDecoder(def Definition, ctx *ReadContext) (ValueDecoder[int64], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	if d, ok := def.(External); ok {
		src, err := ctx.source(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalLongDecoder{src: src}, nil
	}

	codec, err := newIntBitCodec(def)
	if err != nil {
		return nil, err
	}

	return codec, nil
}

// NewByteArrayEncoder builds a byte-array encoder from a definition and a
// write session context. Supported kinds: External (raw pass-through to the
// block sink), ByteArrayStop (raw bytes plus stop byte), and ByteArrayLen
// (length through the bit stream, bytes through the block sink).
func NewByteArrayEncoder(def Definition, ctx *WriteContext) (ValueEncoder[[]byte], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	switch d := def.(type) {
	case External:
		sink, err := ctx.sink(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalByteArrayEncoder{sink: sink}, nil
	case ByteArrayStop:
		sink, err := ctx.sink(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &byteArrayStopEncoder{stop: d.StopByte, sink: sink}, nil
	case ByteArrayLen:
		return newByteArrayLenEncoder(d, ctx)
	default:
		return nil, fmt.Errorf("%w: %s cannot carry byte arrays", errs.ErrUnsupportedEncoding, def.Kind())
	}
}

// NewByteArrayDecoder builds the byte-array decoder matching
// NewByteArrayEncoder.
func NewByteArrayDecoder(def Definition, ctx *ReadContext) (ValueDecoder[[]byte], error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	switch d := def.(type) {
	case External:
		src, err := ctx.source(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &externalByteArrayDecoder{src: src}, nil
	case ByteArrayStop:
		src, err := ctx.source(d.BlockID)
		if err != nil {
			return nil, err
		}

		return &byteArrayStopDecoder{stop: d.StopByte, src: src}, nil
	case ByteArrayLen:
		return newByteArrayLenDecoder(d, ctx)
	default:
		return nil, fmt.Errorf("%w: %s cannot carry byte arrays", errs.ErrUnsupportedEncoding, def.Kind())
	}
}

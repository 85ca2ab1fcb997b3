package encoding

import (
	"fmt"

	"github.com/seqio/cram/errs"
	"github.com/seqio/cram/format"
	"github.com/seqio/cram/varint"
)

// Descriptor serializes a definition into its self-describing wire form:
// [kindTag:1][ITF8 paramLen][paramBytes]. Composite definitions embed the
// full descriptors of their sub-encodings inside their parameter blob, so an
// encoding tree of any depth serializes into one flat byte sequence without
// an external schema.
func Descriptor(def Definition) ([]byte, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", errs.ErrInvalidDefinition)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}

	return appendDescriptor(nil, def), nil
}

// appendDescriptor appends the full serialized descriptor of def to dst.
// The caller must have validated def.
func appendDescriptor(dst []byte, def Definition) []byte {
	params := def.appendParams(nil)
	dst = append(dst, byte(def.Kind()))
	dst = varint.AppendITF8(dst, int32(len(params)))

	return append(dst, params...)
}

// ParseDescriptor reconstructs a definition from descriptor bytes.
//
// The parser is an explicit recursive descent over the closed kind set. It
// consumes the input exactly: truncated input, trailing bytes, unknown kind
// tags and nested parameter blobs of the wrong shape all fail with
// errs.ErrMalformedDescriptor. Structurally valid parameters outside their
// legal domain (e.g. a beta bit limit above 64) fail with
// errs.ErrInvalidDefinition.
func ParseDescriptor(data []byte) (Definition, error) {
	def, rest, err := parseDescriptor(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes after descriptor", errs.ErrMalformedDescriptor, len(rest))
	}

	return def, nil
}

// parseDescriptor parses one descriptor from the front of data and returns
// the unconsumed remainder, so nested descriptors can be read in sequence
// from a composite parameter blob.
func parseDescriptor(data []byte) (Definition, []byte, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty input", errs.ErrMalformedDescriptor)
	}

	kind := format.EncodingKind(data[0])
	paramLen, rest, err := varint.DecodeITF8(data[1:])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: truncated parameter length", errs.ErrMalformedDescriptor)
	}
	if paramLen < 0 {
		return nil, nil, fmt.Errorf("%w: negative parameter length %d", errs.ErrMalformedDescriptor, paramLen)
	}
	if int(paramLen) > len(rest) {
		return nil, nil, fmt.Errorf("%w: parameter blob needs %d bytes, have %d",
			errs.ErrMalformedDescriptor, paramLen, len(rest))
	}

	params := rest[:paramLen]
	rest = rest[paramLen:]

	var def Definition
	switch kind {
	case format.KindExternal:
		def, err = parseExternalParams(params)
	case format.KindBeta:
		def, err = parseBetaParams(params)
	case format.KindByteArrayLen:
		def, err = parseByteArrayLenParams(params)
	case format.KindByteArrayStop:
		def, err = parseByteArrayStopParams(params)
	case format.KindGamma:
		def, err = parseGammaParams(params)
	case format.KindGolomb:
		def, err = parseGolombParams(params)
	case format.KindGolombRice:
		def, err = parseGolombRiceParams(params)
	case format.KindSubexp:
		def, err = parseSubexponentialParams(params)
	case format.KindHuffman:
		def, err = parseHuffmanParams(params)
	case format.KindNull:
		return nil, nil, fmt.Errorf("%w: retired kind tag %d (%s)", errs.ErrMalformedDescriptor, data[0], kind)
	default:
		return nil, nil, fmt.Errorf("%w: unknown kind tag %d", errs.ErrMalformedDescriptor, data[0])
	}
	if err != nil {
		return nil, nil, err
	}
	if err = def.validate(); err != nil {
		return nil, nil, err
	}

	return def, rest, nil
}

// paramITF8 decodes one ITF8 field of a parameter blob, mapping truncation to
// a malformed-descriptor error naming the field.
func paramITF8(params []byte, field string) (int32, []byte, error) {
	v, rest, err := varint.DecodeITF8(params)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: truncated %s", errs.ErrMalformedDescriptor, field)
	}

	return v, rest, nil
}

// paramsConsumed rejects parameter blobs with bytes left over after all
// fields of the kind were read.
func paramsConsumed(params []byte, kind format.EncodingKind) error {
	if len(params) != 0 {
		return fmt.Errorf("%w: %d unconsumed %s parameter bytes", errs.ErrMalformedDescriptor, len(params), kind)
	}

	return nil
}

func parseExternalParams(params []byte) (Definition, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("%w: external parameters must be the single id byte, got %d bytes",
			errs.ErrMalformedDescriptor, len(params))
	}

	return External{BlockID: params[0]}, nil
}

func parseBetaParams(params []byte) (Definition, error) {
	offset, rest, err := paramITF8(params, "beta offset")
	if err != nil {
		return nil, err
	}
	bitLimit, rest, err := paramITF8(rest, "beta bit limit")
	if err != nil {
		return nil, err
	}
	if bitLimit < 0 {
		return nil, fmt.Errorf("%w: negative beta bit limit %d", errs.ErrInvalidDefinition, bitLimit)
	}
	if err := paramsConsumed(rest, format.KindBeta); err != nil {
		return nil, err
	}

	return Beta{Offset: offset, BitLimit: uint32(bitLimit)}, nil
}

func parseByteArrayLenParams(params []byte) (Definition, error) {
	lengthDef, rest, err := parseDescriptor(params)
	if err != nil {
		return nil, err
	}
	valuesDef, rest, err := parseDescriptor(rest)
	if err != nil {
		return nil, err
	}
	if err := paramsConsumed(rest, format.KindByteArrayLen); err != nil {
		return nil, err
	}

	return ByteArrayLen{LengthEncoding: lengthDef, ValuesEncoding: valuesDef}, nil
}

func parseByteArrayStopParams(params []byte) (Definition, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: byte-array-stop parameters missing stop byte", errs.ErrMalformedDescriptor)
	}
	stop := params[0]
	id, rest, err := paramITF8(params[1:], "byte-array-stop block id")
	if err != nil {
		return nil, err
	}
	if id < 0 || id > 255 {
		return nil, fmt.Errorf("%w: byte-array-stop block id %d outside [0, 255]", errs.ErrInvalidDefinition, id)
	}
	if err := paramsConsumed(rest, format.KindByteArrayStop); err != nil {
		return nil, err
	}

	return ByteArrayStop{StopByte: stop, BlockID: uint8(id)}, nil
}

func parseGammaParams(params []byte) (Definition, error) {
	offset, rest, err := paramITF8(params, "gamma offset")
	if err != nil {
		return nil, err
	}
	if err := paramsConsumed(rest, format.KindGamma); err != nil {
		return nil, err
	}

	return Gamma{Offset: offset}, nil
}

func parseGolombParams(params []byte) (Definition, error) {
	offset, rest, err := paramITF8(params, "golomb offset")
	if err != nil {
		return nil, err
	}
	m, rest, err := paramITF8(rest, "golomb modulus")
	if err != nil {
		return nil, err
	}
	if err := paramsConsumed(rest, format.KindGolomb); err != nil {
		return nil, err
	}

	return Golomb{Offset: offset, M: m}, nil
}

func parseGolombRiceParams(params []byte) (Definition, error) {
	offset, rest, err := paramITF8(params, "golomb-rice offset")
	if err != nil {
		return nil, err
	}
	log2m, rest, err := paramITF8(rest, "golomb-rice log2 modulus")
	if err != nil {
		return nil, err
	}
	if err := paramsConsumed(rest, format.KindGolombRice); err != nil {
		return nil, err
	}

	return GolombRice{Offset: offset, Log2M: log2m}, nil
}

func parseSubexponentialParams(params []byte) (Definition, error) {
	offset, rest, err := paramITF8(params, "subexponential offset")
	if err != nil {
		return nil, err
	}
	k, rest, err := paramITF8(rest, "subexponential parameter k")
	if err != nil {
		return nil, err
	}
	if err := paramsConsumed(rest, format.KindSubexp); err != nil {
		return nil, err
	}

	return Subexponential{Offset: offset, K: k}, nil
}

func parseHuffmanParams(params []byte) (Definition, error) {
	n, rest, err := paramITF8(params, "huffman value count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative huffman value count %d", errs.ErrMalformedDescriptor, n)
	}
	// Every ITF8 value occupies at least one byte, so a count beyond the
	// remaining blob cannot be satisfied; reject before allocating.
	if int(n) > len(rest) {
		return nil, fmt.Errorf("%w: huffman value count %d exceeds parameter blob", errs.ErrMalformedDescriptor, n)
	}

	values := make([]int32, n)
	for i := range values {
		values[i], rest, err = paramITF8(rest, "huffman value")
		if err != nil {
			return nil, err
		}
	}

	m, rest, err := paramITF8(rest, "huffman bit length count")
	if err != nil {
		return nil, err
	}
	if m != n {
		return nil, fmt.Errorf("%w: huffman bit length count %d does not match value count %d",
			errs.ErrMalformedDescriptor, m, n)
	}

	lengths := make([]uint8, n)
	for i := range lengths {
		var l int32
		l, rest, err = paramITF8(rest, "huffman bit length")
		if err != nil {
			return nil, err
		}
		if l < 0 || l > 64 {
			return nil, fmt.Errorf("%w: huffman bit length %d outside [0, 64]", errs.ErrInvalidDefinition, l)
		}
		lengths[i] = uint8(l)
	}
	if err := paramsConsumed(rest, format.KindHuffman); err != nil {
		return nil, err
	}

	return Huffman{Values: values, BitLengths: lengths}, nil
}

// Package errs defines the sentinel error values shared across the cram module.
//
// Every failure surfaced by cram wraps one of these sentinels via fmt.Errorf
// with the %w verb so callers can classify failures with errors.Is while
// still receiving call-site context in the message. Stream exhaustion is
// deliberately not represented here: bit streams, varints and external block
// channels signal it with io.EOF and io.ErrUnexpectedEOF, the standard
// contracts for running out of input.
package errs

import "errors"

// Descriptor errors.
var (
	// ErrMalformedDescriptor indicates encoding descriptor bytes that do not
	// parse into a valid tagged structure: truncated input, trailing garbage,
	// an unknown kind tag, or a nested parameter-length mismatch.
	ErrMalformedDescriptor = errors.New("malformed encoding descriptor")

	// ErrInvalidDefinition indicates an encoding definition whose parameters
	// are outside their legal domain, e.g. a beta bit limit above 64 or a
	// huffman book with mismatched value and length counts. Raised both for
	// definitions constructed in code and for parameter values decoded from a
	// structurally valid descriptor.
	ErrInvalidDefinition = errors.New("invalid encoding definition")

	// ErrInvalidLengthEncoding indicates a byte-array-len definition whose
	// length sub-encoding does not read from the core bit stream.
	ErrInvalidLengthEncoding = errors.New("invalid length sub-encoding")

	// ErrUnsupportedEncoding indicates an encoding kind that cannot serve the
	// requested value type, e.g. building an integer codec from a
	// byte-array-len definition.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// Codec errors.
var (
	// ErrUsageViolation indicates a call outside a codec's contract, such as
	// an explicit-length read on the byte-array-len codec. These are caller
	// bugs, never data errors, and fail immediately.
	ErrUsageViolation = errors.New("codec usage violation")

	// ErrValueOutOfRange indicates a value that does not fit the configured
	// encoding parameters, e.g. a beta value outside its bit width or a
	// huffman value missing from the code book. Values are never masked or
	// truncated to fit.
	ErrValueOutOfRange = errors.New("value out of encoding range")

	// ErrInvalidBitCount indicates a bit-stream operation with a bit count
	// outside the supported [0, 64] range.
	ErrInvalidBitCount = errors.New("invalid bit count")

	// ErrUnknownBlockID indicates a codec build referencing an external block
	// id absent from the session context.
	ErrUnknownBlockID = errors.New("unknown external block id")
)

// External block errors.
var (
	// ErrBlockSealed indicates a write to an external block writer after
	// Seal.
	ErrBlockSealed = errors.New("external block already sealed")

	// ErrBlockDigestMismatch indicates a sealed block whose payload digest no
	// longer matches its content, i.e. corruption between seal and open.
	ErrBlockDigestMismatch = errors.New("block digest mismatch")

	// ErrDuplicateBlockID indicates two sealed blocks sharing one id within a
	// single read session.
	ErrDuplicateBlockID = errors.New("duplicate external block id")
)

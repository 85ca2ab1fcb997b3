package compress

import (
	"fmt"

	"github.com/seqio/cram/format"
)

// Compressor compresses sealed block payloads.
//
// The input is the complete uncompressed payload of one block: the
// accumulated side-channel bytes of a single field across a container slice.
// Payload sizes typically land between a few KB and a few MB.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller, except
	//     for the no-op codec which returns the input unchanged
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a block payload compressed by the matching Compressor.
//
// Separate interfaces allow asymmetric implementations where compression and
// decompression have different resource requirements; readers typically only
// ever need this half.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original payload.
	//
	// The input must have been produced by the same algorithm. Corrupted or
	// mismatched input yields an error rather than garbage output for the
	// framed formats (zstd, s2); LZ4 block data without framing relies on the
	// caller's payload digest for final verification.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller, except
	//     for the no-op codec which returns the input unchanged
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a new Codec for the specified compression type.
//
// The target string names the usage site and appears in error messages, e.g.
// "block 3 payload".
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

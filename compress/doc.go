// Package compress provides compression and decompression codecs for sealed
// block payloads.
//
// Blocks carry the raw side-channel bytes produced by external-style field
// codecs (read names, quality strings, auxiliary tags). Those payloads are
// written once per container slice and read back many times, so the package
// favors codecs with cheap decompression.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are selected by format.CompressionType and obtained through GetCodec,
// which returns shared, concurrency-safe instances.
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone)
//
// Pass-through. Use for payloads that are already dense (packed bit streams,
// quality data that was delta-transformed upstream) or when CPU matters more
// than size. Compress and Decompress return the input unchanged and never
// allocate.
//
// **Zstandard** (format.CompressionZstd)
//
// Best ratio of the set, moderate speed. Two interchangeable backends ship
// behind build tags:
//   - default: github.com/klauspost/compress/zstd, pure Go, no cgo needed
//   - -tags cgozstd: github.com/valyala/gozstd, binds libzstd for higher
//     throughput where cgo is acceptable
//
// Both produce standard zstd frames, so payloads sealed by one backend open
// with the other.
//
// **S2** (format.CompressionS2)
//
// Snappy-compatible successor from klauspost/compress. Balanced speed and
// ratio; a good default for tag payloads with mixed entropy.
//
// **LZ4** (format.CompressionLZ4)
//
// Block-format LZ4 via pierrec/lz4. Fastest decompression of the set; suited
// to payloads on the read hot path such as per-record name blocks.
//
// # Selection Guide
//
//	Payload               | Recommended | Reason
//	----------------------|-------------|--------------------------------
//	Read names            | LZ4         | decode-heavy, moderate entropy
//	Quality strings       | Zstd        | large, highly repetitive
//	Auxiliary tags        | S2          | mixed entropy, balanced cost
//	Packed bit streams    | None        | already near-random
//
// # Thread Safety
//
// All codecs are safe for concurrent use. The zstd and LZ4 backends pool
// their encoder and decoder state internally, so sharing one Codec across
// goroutines is the intended usage.
package compress

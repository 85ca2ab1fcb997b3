package compress

// ZstdCompressor compresses block payloads with Zstandard.
//
// Zstd offers the best compression ratio of the built-in codecs and is the
// usual choice for large repetitive payloads such as quality strings.
//
// Two backends implement Compress/Decompress behind build tags:
//   - default: pure-Go klauspost/compress/zstd, no cgo required
//   - cgozstd: valyala/gozstd binding libzstd, for deployments that accept
//     cgo in exchange for throughput
//
// Both emit standard zstd frames, so data is portable across backends.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

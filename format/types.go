package format

type (
	// EncodingKind identifies one encoding scheme in the container format.
	// The numeric values are kind tags persisted in encoding descriptors and
	// must match the reference corpus exactly; never renumber them.
	EncodingKind uint8

	// CompressionType identifies the compression applied to a sealed external
	// block payload. Unlike encoding kind tags these values are local to this
	// module and never persisted inside descriptors.
	CompressionType uint8
)

const (
	KindNull          EncodingKind = 0 // KindNull is the retired "do not encode" kind; recognized but rejected.
	KindExternal      EncodingKind = 1 // KindExternal routes raw values to an external block.
	KindGolomb        EncodingKind = 2 // KindGolomb is Golomb coding with arbitrary modulus.
	KindHuffman       EncodingKind = 3 // KindHuffman is canonical Huffman coding.
	KindByteArrayLen  EncodingKind = 4 // KindByteArrayLen pairs a length encoding with a values encoding.
	KindByteArrayStop EncodingKind = 5 // KindByteArrayStop is stop-byte delimited external bytes.
	KindBeta          EncodingKind = 6 // KindBeta is fixed-width binary with an offset.
	KindSubexp        EncodingKind = 7 // KindSubexp is subexponential coding.
	KindGolombRice    EncodingKind = 8 // KindGolombRice is Golomb coding with a power-of-two modulus.
	KindGamma         EncodingKind = 9 // KindGamma is Elias gamma coding with an offset.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k EncodingKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindExternal:
		return "External"
	case KindGolomb:
		return "Golomb"
	case KindHuffman:
		return "Huffman"
	case KindByteArrayLen:
		return "ByteArrayLen"
	case KindByteArrayStop:
		return "ByteArrayStop"
	case KindBeta:
		return "Beta"
	case KindSubexp:
		return "Subexponential"
	case KindGolombRice:
		return "GolombRice"
	case KindGamma:
		return "Gamma"
	default:
		return "Unknown"
	}
}

// UsesExternalBlock reports whether values of this kind travel through an
// external block channel instead of (or in addition to) the core bit stream.
func (k EncodingKind) UsesExternalBlock() bool {
	switch k {
	case KindExternal, KindByteArrayLen, KindByteArrayStop:
		return true
	default:
		return false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

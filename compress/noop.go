package compress

// NoOpCompressor is a pass-through codec that stores block payloads verbatim.
//
// It is the right choice for payloads that are already dense, such as packed
// bit streams or pre-transformed quality data, where a real codec would burn
// CPU for no size win.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data unchanged, without copying.
//
// The returned slice shares the input's underlying memory; callers that
// retain the result while mutating the input must copy it themselves.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data unchanged, without copying.
//
// The returned slice shares the input's underlying memory; callers that
// retain the result while mutating the input must copy it themselves.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

package compression

import "github.com/klauspost/compress/s2"

// S2 compresses buffers with klauspost/compress's S2 (Snappy-compatible,
// higher throughput) format: a balance between LZ4's speed and Zstd's
// ratio.
type S2 struct{}

var _ Codec = S2{}

// Compress compresses data with S2.
func (S2) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 data.
func (S2) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

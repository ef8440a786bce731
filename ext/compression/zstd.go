package compression

// Zstd compresses buffers with Zstandard: the best ratio of the four
// algorithms, at higher CPU cost. See zstd_pure.go and zstd_cgo.go for the
// two alternate backends.
type Zstd struct{}

var _ Codec = Zstd{}

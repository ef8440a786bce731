//go:build nobuild

package compression

// This cgo-backed Zstd implementation (valyala/gozstd) is kept as the
// cgo-available alternative to zstd_pure.go, gated behind a "nobuild" tag
// to keep a cgo dependency out of default builds. Building with
// -tags nobuild compiles this file in place of zstd_pure.go, for
// environments where cgo and libzstd are available and the extra
// throughput is worth the build complexity.
import (
	"github.com/valyala/gozstd"
)

// Compress compresses data using gozstd at level 3.
func (Zstd) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses gozstd-compressed data.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}

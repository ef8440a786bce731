// Package compression adapts general-purpose byte-compression algorithms
// into an opt-in codec extension: a *value.Buffer wrapped in
// CompressedBuffer is reduced to a small record carrying the chosen
// algorithm tag and the compressed bytes, and restored on decode to a
// CompressedBuffer wrapping an equivalent *value.Buffer.
//
// This is deliberately NOT a new wire tag: the core format stays exactly
// what it already is for Buffer, and compression is layered on top
// through the extension protocol so a decoder without this extension
// registered still fails cleanly (errs.ErrIncompatibleCodec) instead of
// silently misreading compressed bytes as raw ones.
package compression

import (
	"fmt"

	"github.com/ashgrove-oss/valuewire/ext"
	"github.com/ashgrove-oss/valuewire/value"
)

// Algorithm identifies one of the supported general-purpose compressors.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmLZ4
	AlgorithmS2
	AlgorithmZstd
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmLZ4:
		return "lz4"
	case AlgorithmS2:
		return "s2"
	case AlgorithmZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Compressor compresses a byte slice and returns the compressed result.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte slice previously produced by a matching
// Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the built-in Codec for algo.
func NewCodec(algo Algorithm) (Codec, error) {
	switch algo {
	case AlgorithmNone:
		return NoOp{}, nil
	case AlgorithmLZ4:
		return LZ4{}, nil
	case AlgorithmS2:
		return S2{}, nil
	case AlgorithmZstd:
		return Zstd{}, nil
	default:
		return nil, fmt.Errorf("compression: unsupported algorithm %v", algo)
	}
}

// CompressedBuffer marks a *value.Buffer for compressed-buffer reduction.
// A caller opts a specific buffer into compression by wrapping it:
//
//	codec.Encode(compression.CompressedBuffer{Buffer: buf})
//
// instead of encoding the *value.Buffer directly.
type CompressedBuffer struct {
	Buffer *value.Buffer
}

// Extension name under which the compressed-buffer reduction is
// registered.
const ExtensionName = "dev.valuewire.compressedBuffer"

// NewExtension builds the ext.Extension that reduces CompressedBuffer
// values using algo, and restores them on decode as a CompressedBuffer
// wrapping a fresh *value.Buffer.
// The reduced wire representation is a value.Record with two fields:
// "algo" (the Algorithm as a small integer Number) and "data" (a
// *value.Buffer holding the compressed bytes); this keeps the reduction
// itself expressible entirely in terms of the built-in value universe, as
// every ToReduced return value must be.
func NewExtension(algo Algorithm) (ext.Extension, error) {
	codec, err := NewCodec(algo)
	if err != nil {
		return ext.Extension{}, err
	}

	return ext.Extension{
		Name: ExtensionName,
		Accepts: func(v any) bool {
			_, ok := v.(CompressedBuffer)
			return ok
		},
		ToReduced: func(v any, _ ext.Context) (value.Value, error) {
			cb := v.(CompressedBuffer)

			compressed, err := codec.Compress(cb.Buffer.Data)
			if err != nil {
				return nil, fmt.Errorf("compression: compress with %v: %w", algo, err)
			}

			rec := value.NewRecord()
			rec.Set("algo", value.Number(algo))
			rec.Set("data", value.NewBuffer(compressed))

			return rec, nil
		},
		FromReduced: func(reduced value.Value, _ ext.Context) (any, error) {
			rec, ok := reduced.(*value.Record)
			if !ok {
				return nil, fmt.Errorf("compression: reduced value is %T, want *value.Record", reduced)
			}

			algoVal, ok := rec.Get("algo")
			if !ok {
				return nil, fmt.Errorf("compression: reduced record missing %q", "algo")
			}
			dataVal, ok := rec.Get("data")
			if !ok {
				return nil, fmt.Errorf("compression: reduced record missing %q", "data")
			}

			algoNum, ok := algoVal.(value.Number)
			if !ok {
				return nil, fmt.Errorf("compression: %q field is %T, want value.Number", "algo", algoVal)
			}
			buf, ok := dataVal.(*value.Buffer)
			if !ok {
				return nil, fmt.Errorf("compression: %q field is %T, want *value.Buffer", "data", dataVal)
			}

			decodeCodec, err := NewCodec(Algorithm(algoNum))
			if err != nil {
				return nil, err
			}

			original, err := decodeCodec.Decompress(buf.Data)
			if err != nil {
				return nil, fmt.Errorf("compression: decompress with %v: %w", Algorithm(algoNum), err)
			}

			return CompressedBuffer{Buffer: value.NewBuffer(original)}, nil
		},
	}, nil
}

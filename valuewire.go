// Package valuewire implements a self-describing binary codec for
// structured values: primitives, containers, errors, and binary buffers,
// including cyclic and shared-reference graphs.
//
// Encode and Decode are the package-level entry points for one-off calls;
// NewCodec builds a reusable Codec when the same extension set and
// context should back many calls without re-registering extensions each
// time.
package valuewire

import (
	"context"
	"log/slog"

	"github.com/ashgrove-oss/valuewire/codec"
	"github.com/ashgrove-oss/valuewire/ext"
	"github.com/ashgrove-oss/valuewire/internal/telemetry"
)

// settings accumulates CodecOption values before a Codec is built.
type settings struct {
	extensions *ext.Registry
	context    ext.Context
	smallInts  bool
	logger     *telemetry.Logger
	logCtx     context.Context
}

// CodecOption configures a Codec at construction time. The interface is
// kept narrow (one unexported method) so the only way to build one is
// through a WithXxx constructor below.
type CodecOption interface {
	apply(*settings) error
}

// codecOptionFunc adapts a plain function to CodecOption.
type codecOptionFunc func(*settings) error

func (f codecOptionFunc) apply(s *settings) error { return f(s) }

// applyCodecOptions runs opts against s in order, stopping at the first
// error.
func applyCodecOptions(s *settings, opts ...CodecOption) error {
	for _, opt := range opts {
		if err := opt.apply(s); err != nil {
			return err
		}
	}

	return nil
}

// WithExtension registers spec on the codec being built. Registration
// order determines predicate priority among extensions.
func WithExtension(spec ext.Extension) CodecOption {
	return codecOptionFunc(func(s *settings) error {
		return s.extensions.Register(spec)
	})
}

// WithContext sets the opaque per-call context threaded to every
// extension callback.
func WithContext(ctx ext.Context) CodecOption {
	return codecOptionFunc(func(s *settings) error {
		s.context = ctx
		return nil
	})
}

// WithSmallInts enables or disables the encoder-side small-integer
// optimization. Decoding always accepts both wire forms regardless of
// this setting.
func WithSmallInts(enabled bool) CodecOption {
	return codecOptionFunc(func(s *settings) error {
		s.smallInts = enabled
		return nil
	})
}

// WithLogger attaches a *slog.Logger for opt-in debug-level correlation
// logging of encode/decode calls. Never affects wire bytes. A nil logger
// disables logging, the default.
func WithLogger(l *slog.Logger) CodecOption {
	return codecOptionFunc(func(s *settings) error {
		s.logger = telemetry.NewLogger(l)
		return nil
	})
}

// WithLogContext sets the context.Context passed to Logger calls.
// Defaults to context.Background() if not set.
func WithLogContext(ctx context.Context) CodecOption {
	return codecOptionFunc(func(s *settings) error {
		s.logCtx = ctx
		return nil
	})
}

// Codec is a reusable encoder/decoder built from a fixed extension set,
// context, and small-int policy. It is safe for concurrent use: every
// Encode/Decode call allocates its own mutable encode/decode state.
type Codec struct {
	cfg codec.Config
}

// NewCodec builds a Codec from opts.
func NewCodec(opts ...CodecOption) (*Codec, error) {
	s := &settings{extensions: ext.NewRegistry(), smallInts: true}
	if err := applyCodecOptions(s, opts...); err != nil {
		return nil, err
	}

	return &Codec{
		cfg: codec.Config{
			Extensions: s.extensions,
			Context:    s.context,
			SmallInts:  s.smallInts,
			Logger:     s.logger,
			LogCtx:     s.logCtx,
		},
	}, nil
}

// Encode serializes v into a self-contained byte buffer.
func (c *Codec) Encode(v any) ([]byte, error) {
	return codec.Encode(c.cfg, v)
}

// Decode reconstructs a value from data, which must have been produced by
// Encode (or a compatible Codec) with the same extensions registered.
//
// The return type is `any` rather than a single concrete type: once
// extensions are registered, the value universe is open-ended — a
// decoded value may be a built-in type from package value, or whatever
// type an extension's FromReduced reconstructs.
func (c *Codec) Decode(data []byte) (any, error) {
	return codec.Decode(c.cfg, data)
}

// DefineExtension is a convenience identity function: it exists so call
// sites can build an ext.Extension value inline and pass it straight to
// WithExtension without an intermediate variable, while keeping the
// construction visually distinct from other options.
func DefineExtension(spec ext.Extension) ext.Extension {
	return spec
}

// Encode builds a one-off Codec from opts and encodes v. Prefer NewCodec
// directly when making many calls with the same extensions.
func Encode(v any, opts ...CodecOption) ([]byte, error) {
	c, err := NewCodec(opts...)
	if err != nil {
		return nil, err
	}

	return c.Encode(v)
}

// Decode builds a one-off Codec from opts and decodes data. Prefer
// NewCodec directly when making many calls with the same extensions.
func Decode(data []byte, opts ...CodecOption) (any, error) {
	c, err := NewCodec(opts...)
	if err != nil {
		return nil, err
	}

	return c.Decode(data)
}

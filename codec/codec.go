// Package codec implements the recursive encoder/decoder: the tag
// dispatcher, the reference-table discipline that gives cycles and shared
// references stable back-references, and the glue between the built-in
// value universe (package value) and user-registered extensions (package
// ext).
package codec

import (
	"context"
	"fmt"

	"github.com/ashgrove-oss/valuewire/endian"
	"github.com/ashgrove-oss/valuewire/ext"
	"github.com/ashgrove-oss/valuewire/internal/pool"
	"github.com/ashgrove-oss/valuewire/internal/reftable"
	"github.com/ashgrove-oss/valuewire/internal/telemetry"
)

// Config bundles everything a single Encode or Decode call needs beyond
// the value/bytes being processed. A zero-value Config is usable: an
// empty extension registry, a nil context, small-int encoding disabled,
// and no diagnostic logging.
type Config struct {
	// Extensions is consulted for any value outside the built-in universe.
	// A nil Extensions behaves like an empty registry.
	Extensions *ext.Registry

	// Context is the opaque per-call value threaded to every extension
	// callback.
	Context ext.Context

	// SmallInts enables the encoder-side optimization of emitting
	// non-negative exact integers in [0, 2^31-1] with the small-integer
	// tag. The decoder always accepts both forms regardless of this
	// setting.
	SmallInts bool

	// Logger, if non-nil, receives debug-level correlation logging for
	// this call. Never affects wire bytes.
	Logger *telemetry.Logger

	// LogCtx is passed to Logger calls. Defaults to context.Background()
	// if nil.
	LogCtx context.Context
}

func (c Config) extensions() *ext.Registry {
	if c.Extensions == nil {
		return ext.NewRegistry()
	}

	return c.Extensions
}

func (c Config) logCtx() context.Context {
	if c.LogCtx == nil {
		return context.Background()
	}

	return c.LogCtx
}

// Encode serializes v into a self-contained byte buffer.
func Encode(cfg Config, v any) (out []byte, err error) {
	bb := pool.Get()
	defer pool.Put(bb)

	e := &Encoder{
		cfg:    cfg,
		buf:    bb,
		refs:   reftable.NewEncodeTable(),
		endian: endian.GetBigEndianEngine(),
	}

	corrID := ""
	if cfg.Logger != nil {
		corrID = telemetry.CorrelationID("encode", 0)
		cfg.Logger.EncodeStart(cfg.logCtx(), corrID, fmt.Sprintf("%T", v))
	}

	err = e.encodeValue(v)

	if cfg.Logger != nil {
		cfg.Logger.EncodeDone(cfg.logCtx(), corrID, bb.Len(), err)
	}

	if err != nil {
		return nil, err
	}

	out = make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out, nil
}

// Decode reconstructs a value from data, which must have been produced by
// Encode using a compatible Config (same extension names registered).
func Decode(cfg Config, data []byte) (v any, err error) {
	d := &Decoder{
		cfg:    cfg,
		data:   data,
		refs:   reftable.NewDecodeTable(),
		endian: endian.GetBigEndianEngine(),
	}

	corrID := ""
	if cfg.Logger != nil {
		corrID = telemetry.CorrelationID("decode", len(data))
		cfg.Logger.DecodeStart(cfg.logCtx(), corrID, len(data))
	}

	v, err = d.decodeValue()

	if cfg.Logger != nil {
		cfg.Logger.DecodeDone(cfg.logCtx(), corrID, err)
	}

	return v, err
}

// Encoder holds the mutable state of a single Encode call: the output
// buffer, the reference table, and the byte-order engine. Never shared
// across concurrent calls.
type Encoder struct {
	cfg    Config
	buf    *pool.ByteBuffer
	refs   *reftable.EncodeTable
	endian endian.EndianEngine
}

// Decoder holds the mutable state of a single Decode call: the input
// slice, the read cursor, the reference table, and the byte-order engine.
type Decoder struct {
	cfg    Config
	data   []byte
	pos    int
	refs   *reftable.DecodeTable
	endian endian.EndianEngine
}

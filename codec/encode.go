package codec

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/ashgrove-oss/valuewire/errs"
	"github.com/ashgrove-oss/valuewire/value"
	"github.com/ashgrove-oss/valuewire/wire"
)

// encodeValue is the central dispatcher: it switches on the concrete Go
// type of v, mirroring the host runtime's constructor-based type dispatch.
func (e *Encoder) encodeValue(v any) error {
	switch x := v.(type) {
	case nil:
		e.buf.MustWriteByte(byte(wire.TagNull))
		return nil
	case value.Null:
		e.buf.MustWriteByte(byte(wire.TagNull))
		return nil
	case value.Undefined:
		e.buf.MustWriteByte(byte(wire.TagUndefined))
		return nil
	case value.Bool:
		if x {
			e.buf.MustWriteByte(byte(wire.TagTrue))
		} else {
			e.buf.MustWriteByte(byte(wire.TagFalse))
		}
		return nil
	case value.Number:
		return e.encodeNumber(float64(x))
	case value.Date:
		e.buf.MustWriteByte(byte(wire.TagDate))
		return e.encodeFloat64(float64(x))
	case value.String:
		return e.encodeTaggedString(string(x))
	case value.Regexp:
		e.buf.MustWriteByte(byte(wire.TagRegexp))
		if err := e.encodeTaggedString(x.Source); err != nil {
			return err
		}
		return e.encodeTaggedString(x.Flags)
	case value.BigInt:
		return e.encodeBigInt(x)
	case *value.Sequence:
		return e.encodeSequence(x)
	case *value.Record:
		return e.encodeRecord(x)
	case *value.Set:
		return e.encodeSet(x)
	case *value.Map:
		return e.encodeMap(x)
	case *value.Error:
		return e.encodeError(x)
	case *value.Buffer:
		return e.encodeBuffer(x)
	case *value.View:
		return e.encodeView(x)
	default:
		return e.encodeExtension(v)
	}
}

// encodeNumber writes a float64 either as a tagged small integer (if
// enabled and the value qualifies) or as the standard 8-byte form.
func (e *Encoder) encodeNumber(f float64) error {
	if e.cfg.SmallInts && isSmallInt(f) {
		e.buf.MustWriteByte(byte(wire.TagSmallInt))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(f))
		return nil
	}

	e.buf.MustWriteByte(byte(wire.TagNumber))
	return e.encodeFloat64(f)
}

// isSmallInt reports whether f is a non-negative exact integer that fits
// the small-integer tag's range, [0, 2^31-1].
func isSmallInt(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if f != math.Trunc(f) {
		return false
	}
	if f < 0 || f > float64(math.MaxInt32) {
		return false
	}
	if f == 0 && math.Signbit(f) {
		// Negative zero must keep its sign, which the varint form cannot.
		return false
	}

	return true
}

func (e *Encoder) encodeFloat64(f float64) error {
	var tmp [8]byte
	e.endian.PutUint64(tmp[:], math.Float64bits(f))
	e.buf.MustWrite(tmp[:])

	return nil
}

// encodeTaggedString writes the full tagged form: tag, varint byte
// length, UTF-8 bytes.
func (e *Encoder) encodeTaggedString(s string) error {
	e.buf.MustWriteByte(byte(wire.TagString))
	e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(s)))
	e.buf.MustWrite([]byte(s))

	return nil
}

// encodeBigInt writes the sign tag, the one-byte chunk count, then each
// 64-bit chunk big-endian, least-significant chunk first.
func (e *Encoder) encodeBigInt(b value.BigInt) error {
	chunks := b.ChunkCount()
	if chunks > 255 {
		return &errs.BigIntTooLargeError{Chunks: chunks}
	}

	if b.Neg {
		e.buf.MustWriteByte(byte(wire.TagBigIntNeg))
	} else {
		e.buf.MustWriteByte(byte(wire.TagBigIntPos))
	}
	e.buf.MustWriteByte(byte(chunks))

	mag := new(big.Int).Set(b.Mag)
	mask := new(big.Int).SetUint64(^uint64(0))
	var tmp [8]byte
	for i := 0; i < chunks; i++ {
		chunk := new(big.Int).And(mag, mask).Uint64()
		e.endian.PutUint64(tmp[:], chunk)
		e.buf.MustWrite(tmp[:])
		mag.Rsh(mag, 64)
	}

	return nil
}

// identityKey returns v itself when v has pointer identity (and is
// therefore safe to use as a map key for reference-table dedup), or
// (nil, false) for values with no stable, comparable identity (e.g. a
// slice- or map-backed extension value).
func identityKey(v any) (any, bool) {
	if v == nil {
		return nil, false
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Ptr, reflect.Chan, reflect.Func:
		return v, true
	default:
		return nil, false
	}
}

// encodeReferrable checks the reference table for v (by identityKey) and
// either writes a back-reference or reserves a new table slot and calls
// body to write the rest of the value. It returns (true, err) when a
// back-reference was written (body must not be called by the caller in
// that case) and (false, err) when body ran.
func (e *Encoder) encodeReferrable(v any, body func() error) (wroteBackRef bool, err error) {
	key, ok := identityKey(v)
	if ok {
		if idx, found := e.refs.Lookup(key); found {
			e.buf.MustWriteByte(byte(wire.TagBackRef))
			e.buf.B = wire.AppendUvarint(e.buf.B, uint64(idx))
			return true, nil
		}

		e.refs.Reserve(key)
	}

	return false, body()
}

func (e *Encoder) encodeSequence(s *value.Sequence) error {
	_, err := e.encodeReferrable(s, func() error {
		e.buf.MustWriteByte(byte(wire.TagSequence))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(s.Items)))
		for _, item := range s.Items {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}

		return nil
	})

	return err
}

func (e *Encoder) encodeRecord(r *value.Record) error {
	_, err := e.encodeReferrable(r, func() error {
		e.buf.MustWriteByte(byte(wire.TagRecord))
		keys := r.Keys()
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(keys)))
		for _, key := range keys {
			// Spec.md §9 open question 1: keys are written as full tagged
			// strings even though the decoder only ever skips one byte
			// before reading the length. Preserved for wire compatibility.
			if err := e.encodeTaggedString(key); err != nil {
				return err
			}
			val, _ := r.Get(key)
			if err := e.encodeValue(val); err != nil {
				return err
			}
		}

		return nil
	})

	return err
}

func (e *Encoder) encodeSet(s *value.Set) error {
	_, err := e.encodeReferrable(s, func() error {
		e.buf.MustWriteByte(byte(wire.TagSet))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(s.Items)))
		for _, item := range s.Items {
			if err := e.encodeValue(item); err != nil {
				return err
			}
		}

		return nil
	})

	return err
}

func (e *Encoder) encodeMap(m *value.Map) error {
	_, err := e.encodeReferrable(m, func() error {
		e.buf.MustWriteByte(byte(wire.TagMap))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(m.Len()))
		for i := 0; i < m.Len(); i++ {
			if err := e.encodeValue(m.Keys[i]); err != nil {
				return err
			}
			if err := e.encodeValue(m.Values[i]); err != nil {
				return err
			}
		}

		return nil
	})

	return err
}

func errorTag(kind value.ErrorKind) wire.Tag {
	switch kind {
	case value.ErrorEval:
		return wire.TagErrorEval
	case value.ErrorRange:
		return wire.TagErrorRange
	case value.ErrorReference:
		return wire.TagErrorReference
	case value.ErrorSyntax:
		return wire.TagErrorSyntax
	case value.ErrorType:
		return wire.TagErrorType
	case value.ErrorURI:
		return wire.TagErrorURI
	default:
		return wire.TagErrorBase
	}
}

func (e *Encoder) encodeError(err *value.Error) error {
	_, encErr := e.encodeReferrable(err, func() error {
		e.buf.MustWriteByte(byte(errorTag(err.ErrKind)))
		if encErr := e.encodeTaggedString(err.Message); encErr != nil {
			return encErr
		}
		if encErr := e.encodeTaggedString(err.Stack); encErr != nil {
			return encErr
		}

		if !err.HasCause {
			e.buf.MustWriteByte(byte(wire.TagUndefined))
			return nil
		}

		return e.encodeValue(err.Cause)
	})

	return encErr
}

func (e *Encoder) encodeBuffer(b *value.Buffer) error {
	_, err := e.encodeReferrable(b, func() error {
		e.buf.MustWriteByte(byte(wire.TagBuffer))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(b.Data)))
		e.buf.MustWrite(b.Data)

		return nil
	})

	return err
}

func viewTag(t value.ElementType) (wire.Tag, error) {
	switch t {
	case value.ElementBytes:
		return wire.TagViewBytes, nil
	case value.ElementInt8:
		return wire.TagViewInt8, nil
	case value.ElementUint8:
		return wire.TagViewUint8, nil
	case value.ElementUint8Clamped:
		return wire.TagViewUint8Clamped, nil
	case value.ElementInt16:
		return wire.TagViewInt16, nil
	case value.ElementUint16:
		return wire.TagViewUint16, nil
	case value.ElementInt32:
		return wire.TagViewInt32, nil
	case value.ElementUint32:
		return wire.TagViewUint32, nil
	case value.ElementFloat32:
		return wire.TagViewFloat32, nil
	case value.ElementFloat64:
		return wire.TagViewFloat64, nil
	case value.ElementInt64:
		return wire.TagViewInt64, nil
	case value.ElementUint64:
		return wire.TagViewUint64, nil
	default:
		return 0, fmt.Errorf("codec: unknown element type %d", t)
	}
}

// encodeView writes the view's own tag/offset/count header followed by
// the FULL underlying buffer bytes: the backing buffer is not separately
// referrable-tagged here, by design.
func (e *Encoder) encodeView(v *value.View) error {
	_, err := e.encodeReferrable(v, func() error {
		tag, err := viewTag(v.Type)
		if err != nil {
			return err
		}

		var bufData []byte
		if v.Backing != nil {
			bufData = v.Backing.Data
		}

		e.buf.MustWriteByte(byte(tag))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(len(bufData)))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(v.ByteOffset))
		e.buf.B = wire.AppendUvarint(e.buf.B, uint64(v.ElementCount))
		e.buf.MustWrite(bufData)

		return nil
	})

	return err
}

// encodeExtension handles any value not a member of the built-in universe
// by consulting the registered extensions.
func (e *Encoder) encodeExtension(v any) error {
	registry := e.cfg.extensions()

	found, ok := registry.FindAccepting(v)
	if !ok {
		return &errs.NotSerializableError{Value: v}
	}

	_, err := e.encodeReferrable(v, func() error {
		e.buf.MustWriteByte(byte(wire.TagExtension))
		if err := e.encodeTaggedString(found.Name); err != nil {
			return err
		}

		reduced, err := found.ToReduced(v, e.cfg.Context)
		if err != nil {
			return err
		}

		return e.encodeValue(reduced)
	})

	return err
}

package codec

import (
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/ashgrove-oss/valuewire/errs"
	"github.com/ashgrove-oss/valuewire/value"
	"github.com/ashgrove-oss/valuewire/wire"
)

// readByte consumes and returns one byte at the cursor.
func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, &errs.CorruptInputError{Reason: "unexpected end of input", Offset: d.pos}
	}

	b := d.data[d.pos]
	d.pos++

	return b, nil
}

// readBytes consumes and returns the next n bytes, copied so the result
// does not alias the input slice's lifetime.
func (d *Decoder) readBytes(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.data) {
		return nil, &errs.CorruptInputError{Reason: "payload length exceeds available bytes", Offset: d.pos}
	}

	out := make([]byte, n)
	copy(out, d.data[d.pos:d.pos+n])
	d.pos += n

	return out, nil
}

func (d *Decoder) readUvarint() (uint64, error) {
	v, n, err := wire.ReadUvarint(d.data[d.pos:])
	if err != nil {
		return 0, &errs.CorruptInputError{Reason: err.Error(), Offset: d.pos}
	}
	d.pos += n

	return v, nil
}

func (d *Decoder) readFloat64() (float64, error) {
	raw, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(d.endian.Uint64(raw)), nil
}

// readTaggedString reads a full tagged string: a string tag byte, a
// varint byte length, then that many UTF-8 bytes.
func (d *Decoder) readTaggedString() (string, error) {
	tagByte, err := d.readByte()
	if err != nil {
		return "", err
	}
	if wire.Tag(tagByte) != wire.TagString {
		return "", &errs.CorruptInputError{Reason: "expected string tag", Offset: d.pos - 1}
	}

	return d.readStringBody()
}

// readRecordKeyString advances past one byte (the would-be string tag)
// without validating it, then reads the varint length as usual. This
// mirrors the encoder always writing a full tagged string for record keys.
func (d *Decoder) readRecordKeyString() (string, error) {
	if _, err := d.readByte(); err != nil {
		return "", err
	}

	return d.readStringBody()
}

func (d *Decoder) readStringBody() (string, error) {
	n, err := d.readUvarint()
	if err != nil {
		return "", err
	}

	start := d.pos
	raw, err := d.readBytes(int(n))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", &errs.CorruptInputError{Reason: "invalid UTF-8", Offset: start}
	}

	return string(raw), nil
}

func errorKindFromTag(t wire.Tag) value.ErrorKind {
	switch t {
	case wire.TagErrorEval:
		return value.ErrorEval
	case wire.TagErrorRange:
		return value.ErrorRange
	case wire.TagErrorReference:
		return value.ErrorReference
	case wire.TagErrorSyntax:
		return value.ErrorSyntax
	case wire.TagErrorType:
		return value.ErrorType
	case wire.TagErrorURI:
		return value.ErrorURI
	default:
		return value.ErrorBase
	}
}

func elementTypeFromTag(t wire.Tag) value.ElementType {
	switch t {
	case wire.TagViewBytes:
		return value.ElementBytes
	case wire.TagViewInt8:
		return value.ElementInt8
	case wire.TagViewUint8:
		return value.ElementUint8
	case wire.TagViewUint8Clamped:
		return value.ElementUint8Clamped
	case wire.TagViewInt16:
		return value.ElementInt16
	case wire.TagViewUint16:
		return value.ElementUint16
	case wire.TagViewInt32:
		return value.ElementInt32
	case wire.TagViewUint32:
		return value.ElementUint32
	case wire.TagViewFloat32:
		return value.ElementFloat32
	case wire.TagViewFloat64:
		return value.ElementFloat64
	case wire.TagViewInt64:
		return value.ElementInt64
	case wire.TagViewUint64:
		return value.ElementUint64
	default:
		return value.ElementBytes
	}
}

// decodeValue is the central dispatcher, mirroring encodeValue's switch.
func (d *Decoder) decodeValue() (any, error) {
	tagByte, err := d.readByte()
	if err != nil {
		return nil, err
	}
	tag := wire.Tag(tagByte)

	switch tag {
	case wire.TagNull:
		return value.Null{}, nil
	case wire.TagUndefined:
		return value.Undefined{}, nil
	case wire.TagTrue:
		return value.Bool(true), nil
	case wire.TagFalse:
		return value.Bool(false), nil
	case wire.TagBackRef:
		return d.decodeBackRef()
	case wire.TagNumber:
		f, err := d.readFloat64()
		return value.Number(f), err
	case wire.TagSmallInt:
		n, err := d.readUvarint()
		return value.Number(float64(n)), err
	case wire.TagDate:
		f, err := d.readFloat64()
		return value.Date(f), err
	case wire.TagRegexp:
		return d.decodeRegexp()
	case wire.TagString:
		s, err := d.readStringBody()
		return value.String(s), err
	case wire.TagBigIntNeg, wire.TagBigIntPos:
		return d.decodeBigInt(tag == wire.TagBigIntNeg)
	case wire.TagSequence:
		return d.decodeSequence()
	case wire.TagRecord:
		return d.decodeRecord()
	case wire.TagSet:
		return d.decodeSet()
	case wire.TagMap:
		return d.decodeMap()
	case wire.TagExtension:
		return d.decodeExtension()
	default:
		if tag.IsError() {
			return d.decodeError(tag)
		}
		if tag.IsBuffer() {
			return d.decodeBuffer(tag)
		}

		return nil, &errs.CorruptInputError{Reason: "unrecognized tag byte", Offset: d.pos - 1}
	}
}

func (d *Decoder) decodeBackRef() (any, error) {
	idx, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	v, ok := d.refs.Get(int(idx))
	if !ok {
		return nil, &errs.CorruptInputError{Reason: "back-reference index out of range", Offset: d.pos}
	}

	return v, nil
}

func (d *Decoder) decodeRegexp() (any, error) {
	source, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}

	flags, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}

	return value.Regexp{Source: source, Flags: flags}, nil
}

func (d *Decoder) decodeBigInt(neg bool) (any, error) {
	n, err := d.readByte()
	if err != nil {
		return nil, err
	}

	chunks := make([]uint64, n)
	for i := 0; i < int(n); i++ {
		raw, err := d.readBytes(8)
		if err != nil {
			return nil, err
		}
		chunks[i] = d.endian.Uint64(raw)
	}

	mag := new(big.Int)
	for i := int(n) - 1; i >= 0; i-- {
		mag.Lsh(mag, 64)
		mag.Or(mag, new(big.Int).SetUint64(chunks[i]))
	}

	return value.BigInt{Neg: neg, Mag: mag}, nil
}

func (d *Decoder) decodeSequence() (any, error) {
	shell := &value.Sequence{}
	d.refs.Append(shell)

	count, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	items := make([]any, count)
	for i := range items {
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	shell.Items = items

	return shell, nil
}

func (d *Decoder) decodeRecord() (any, error) {
	shell := value.NewRecord()
	d.refs.Append(shell)

	count, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	for i := uint64(0); i < count; i++ {
		key, err := d.readRecordKeyString()
		if err != nil {
			return nil, err
		}

		val, err := d.decodeValue()
		if err != nil {
			return nil, err
		}

		shell.Set(key, val)
	}

	return shell, nil
}

func (d *Decoder) decodeSet() (any, error) {
	shell := &value.Set{}
	d.refs.Append(shell)

	count, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	items := make([]any, count)
	for i := range items {
		v, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	shell.Items = items

	return shell, nil
}

func (d *Decoder) decodeMap() (any, error) {
	shell := value.NewMap()
	d.refs.Append(shell)

	count, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	for i := uint64(0); i < count; i++ {
		key, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		val, err := d.decodeValue()
		if err != nil {
			return nil, err
		}
		shell.Set(key, val)
	}

	return shell, nil
}

func (d *Decoder) decodeError(tag wire.Tag) (any, error) {
	shell := value.NewError(errorKindFromTag(tag), "")
	d.refs.Append(shell)

	message, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}
	stack, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}

	shell.Message = message
	shell.Stack = stack

	cause, err := d.decodeValue()
	if err != nil {
		return nil, err
	}

	if _, isUndefined := cause.(value.Undefined); !isUndefined {
		shell.Cause = cause
		shell.HasCause = true
	}

	return shell, nil
}

func (d *Decoder) decodeBuffer(tag wire.Tag) (any, error) {
	if tag == wire.TagBuffer {
		shell := &value.Buffer{}
		d.refs.Append(shell)

		n, err := d.readUvarint()
		if err != nil {
			return nil, err
		}

		data, err := d.readBytes(int(n))
		if err != nil {
			return nil, err
		}
		shell.Data = data

		return shell, nil
	}

	return d.decodeView(tag)
}

func (d *Decoder) decodeView(tag wire.Tag) (any, error) {
	shell := &value.View{}
	d.refs.Append(shell)

	bufLen, err := d.readUvarint()
	if err != nil {
		return nil, err
	}
	byteOffset, err := d.readUvarint()
	if err != nil {
		return nil, err
	}
	elementCount, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	bufData, err := d.readBytes(int(bufLen))
	if err != nil {
		return nil, err
	}

	shell.Backing = value.NewBuffer(bufData)
	shell.Type = elementTypeFromTag(tag)
	shell.ByteOffset = int(byteOffset)
	shell.ElementCount = int(elementCount)

	return shell, nil
}

// decodeExtension handles the 0x80 tag: a tagged name string, then the
// reduced value recursively decoded.
//
// Unlike the built-in composites, an extension value has no empty shell
// to append before decoding its reduced payload — FromReduced only
// produces a value once the payload is fully known — so a cycle running
// through an extension value's own reduced content cannot resolve; this
// is a documented limitation, not an oversight (see DESIGN.md).
func (d *Decoder) decodeExtension() (any, error) {
	name, err := d.readTaggedString()
	if err != nil {
		return nil, err
	}

	registry := d.cfg.extensions()
	found, ok := registry.ByName(name)
	if !ok {
		return nil, &errs.IncompatibleCodecError{Name: name}
	}

	reducedAny, err := d.decodeValue()
	if err != nil {
		return nil, err
	}

	reduced, ok := reducedAny.(value.Value)
	if !ok {
		return nil, &errs.CorruptInputError{Reason: "extension reduced payload is not a built-in value", Offset: d.pos}
	}

	v, err := found.FromReduced(reduced, d.cfg.Context)
	if err != nil {
		return nil, err
	}

	d.refs.Append(v)

	return v, nil
}

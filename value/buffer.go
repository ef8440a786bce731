package value

// ElementType identifies the fixed-width element layout a View interprets
// its backing Buffer's bytes as: the eleven typed-array variants plus the
// neutral byte view.
type ElementType uint8

const (
	ElementBytes ElementType = iota // neutral view: one byte per element
	ElementInt8
	ElementUint8
	ElementUint8Clamped
	ElementInt16
	ElementUint16
	ElementInt32
	ElementUint32
	ElementFloat32
	ElementFloat64
	ElementInt64
	ElementUint64
)

// Size returns the fixed byte width of one element. ElementBytes reports 1
// (its "element" is a single raw byte); it stays a distinct ElementType so
// callers can tell a neutral view from a genuine Uint8 view if they need
// to.
func (e ElementType) Size() int {
	switch e {
	case ElementBytes, ElementInt8, ElementUint8, ElementUint8Clamped:
		return 1
	case ElementInt16, ElementUint16:
		return 2
	case ElementInt32, ElementUint32, ElementFloat32:
		return 4
	case ElementFloat64, ElementInt64, ElementUint64:
		return 8
	default:
		return 1
	}
}

// Buffer is a referrable, mutable, fixed-length raw byte store, analogous
// to the host runtime's ArrayBuffer. Multiple Views may share the same
// underlying Buffer pointer, and a Buffer may be referenced directly as a
// value in its own right.
type Buffer struct {
	Data []byte
}

// Kind implements Value.
func (*Buffer) Kind() Kind { return KindBuffer }

func (*Buffer) referrable() {}

// NewBuffer wraps data directly (no copy); callers that need an
// independent buffer should copy first.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{Data: data}
}

// Len returns the buffer's byte length.
func (b *Buffer) Len() int {
	return len(b.Data)
}

// View is a referrable typed window over a byte range of a Buffer,
// analogous to the host runtime's typed-array/DataView family. ByteOffset
// and ElementCount describe the window; the actual bytes always live in
// Backing.
type View struct {
	Backing      *Buffer
	Type         ElementType
	ByteOffset   int
	ElementCount int
}

// Kind implements Value.
func (*View) Kind() Kind { return KindView }

func (*View) referrable() {}

// NewView builds a View over backing starting at byteOffset, spanning
// elementCount elements of the given type.
func NewView(backing *Buffer, typ ElementType, byteOffset, elementCount int) *View {
	return &View{Backing: backing, Type: typ, ByteOffset: byteOffset, ElementCount: elementCount}
}

// ByteLength returns the number of bytes the view spans.
func (v *View) ByteLength() int {
	return v.ElementCount * v.Type.Size()
}

// Bytes returns the byte slice of the backing buffer the view covers.
// It aliases the backing buffer's storage; callers must copy before
// mutating if they need an independent slice.
func (v *View) Bytes() []byte {
	start := v.ByteOffset
	end := start + v.ByteLength()
	if v.Backing == nil || start < 0 || end > len(v.Backing.Data) {
		return nil
	}

	return v.Backing.Data[start:end]
}

// Package value defines the tagged value universe that package codec
// encodes and decodes: the built-in primitives, containers, errors, and
// binary buffer kinds.
//
// Scalars (Null, Undefined, Bool, Number, BigInt, String, Date, Regexp) are
// Go value types: they carry no object identity and are always encoded
// inline. Referrable composites (Sequence, Record, Set, Map, Error, Buffer,
// View) are always used through a pointer; two occurrences of the same
// pointer are the same object and must be encoded as a back-reference after
// the first occurrence.
//
// A value outside this universe may still be encodable if a registered
// extension (see package ext) accepts it; such values are plain Go `any`,
// not members of this package.
package value

// Kind identifies which concrete type a Value is, mirroring the host
// runtime's constructor-identity dispatch with an explicit enum instead.
type Kind uint8

const (
	KindNull Kind = iota
	KindUndefined
	KindBool
	KindNumber
	KindBigInt
	KindString
	KindDate
	KindRegexp
	KindSequence
	KindRecord
	KindSet
	KindMap
	KindError
	KindBuffer
	KindView
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindRegexp:
		return "regexp"
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindError:
		return "error"
	case KindBuffer:
		return "buffer"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// Value is implemented by every built-in member of the codec's value
// universe. It is a closed set; external types plug in through package ext
// instead of implementing this interface.
type Value interface {
	Kind() Kind
}

// Referrable is implemented by the pointer types among Value's
// implementations: the ones with object identity, eligible for
// deduplication through the reference table.
type Referrable interface {
	Value
	referrable()
}

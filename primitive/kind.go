package primitive

import (
	"math"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

// KindEnum classifies the value types a text cell can be converted into.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (unsupported) value for KindEnum

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over any integer or string, e.g. type Element string

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// Bits returns the bit size handed to strconv when parsing text of kind k.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have a meaningful bit size, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// FromReflectType returns the kind of rtype, or zero if values of rtype
// cannot be parsed from text by the built-in converters.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// well-known named types first, they share reflect kinds with primitives
	switch rtype {
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	named := rtype.PkgPath() != ""

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int:
		return orEnum(named, KindInt)
	case reflect.Int8:
		return orEnum(named, KindInt8)
	case reflect.Int16:
		return orEnum(named, KindInt16)
	case reflect.Int32:
		return orEnum(named, KindInt32)
	case reflect.Int64:
		return orEnum(named, KindInt64)
	case reflect.Uint:
		return orEnum(named, KindUint)
	case reflect.Uint8:
		return orEnum(named, KindUint8)
	case reflect.Uint16:
		return orEnum(named, KindUint16)
	case reflect.Uint32:
		return orEnum(named, KindUint32)
	case reflect.Uint64:
		return orEnum(named, KindUint64)
	case reflect.Float32:
		if named {
			return 0
		}
		return KindFloat32
	case reflect.Float64:
		if named {
			return 0
		}
		return KindFloat64
	case reflect.Bool:
		if named {
			return 0
		}
		return KindBool
	case reflect.String:
		return orEnum(named, KindString)
	}
}

// Underlying returns the kind of the type a primitive enum is declared over.
// For every other type it is the same as FromReflectType.
func Underlying(rtype reflect.Type) KindEnum {
	kind := FromReflectType(rtype)
	if kind != KindPrimitiveEnum {
		return kind
	}

	switch rtype.Kind() {
	case reflect.String:
		return KindString
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	default:
		return KindUint64
	}
}

func orEnum(named bool, kind KindEnum) KindEnum {
	if named {
		return KindPrimitiveEnum
	}

	return kind
}

package types

// Primitive is a non-aggregate scalar type: void, bool, char, the signed and
// unsigned fixed-width integers, the two float widths, and the Error
// recovery sentinel.
type Primitive struct {
	base
}

var (
	voidType    = &Primitive{base{KindVoid}}
	boolType    = &Primitive{base{KindBool}}
	charType    = &Primitive{base{KindChar}}
	int8Type    = &Primitive{base{KindInt8}}
	int16Type   = &Primitive{base{KindInt16}}
	int32Type   = &Primitive{base{KindInt32}}
	int64Type   = &Primitive{base{KindInt64}}
	uint8Type   = &Primitive{base{KindUInt8}}
	uint16Type  = &Primitive{base{KindUInt16}}
	uint32Type  = &Primitive{base{KindUInt32}}
	uint64Type  = &Primitive{base{KindUInt64}}
	float32Type = &Primitive{base{KindFloat32}}
	float64Type = &Primitive{base{KindFloat64}}
	errorType   = &Primitive{base{KindError}}
)

// Void returns the shared Void type.
func Void() Type { return voidType }

// Bool returns the shared Bool type.
func Bool() Type { return boolType }

// Char returns the shared Char type.
func Char() Type { return charType }

// Int returns the signed or unsigned fixed-width integer type of the given
// bit width (8, 16, 32 or 64).
func Int(bits int, signed bool) Type {
	switch {
	case bits == 8 && signed:
		return int8Type
	case bits == 16 && signed:
		return int16Type
	case bits == 32 && signed:
		return int32Type
	case bits == 64 && signed:
		return int64Type
	case bits == 8:
		return uint8Type
	case bits == 16:
		return uint16Type
	case bits == 32:
		return uint32Type
	case bits == 64:
		return uint64Type
	default:
		panic(mismatchPanic("Int", Kind(bits)))
	}
}

// Float returns the 32- or 64-bit float type.
func Float(bits int) Type {
	if bits == 32 {
		return float32Type
	}
	return float64Type
}

// Error returns the shared cascade-suppression sentinel type.
func Error() Type { return errorType }

func (p *Primitive) String() string {
	switch p.kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUInt8:
		return "uint8"
	case KindUInt16:
		return "uint16"
	case KindUInt32:
		return "uint32"
	case KindUInt64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindError:
		return "<error>"
	default:
		return "?"
	}
}

func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.kind == p.kind
}

func (p *Primitive) IsInteger() bool {
	switch p.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUInt8, KindUInt16, KindUInt32, KindUInt64, KindChar, KindBool:
		return true
	default:
		return false
	}
}

func (p *Primitive) IsFloat() bool {
	return p.kind == KindFloat32 || p.kind == KindFloat64
}

func (p *Primitive) IsArithmetic() bool {
	return p.IsInteger() || p.IsFloat()
}

// BitWidth returns the storage width in bits of a primitive type, used by
// pkg/consteval's sizeof/alignof evaluation.
func (p *Primitive) BitWidth() uint {
	switch p.kind {
	case KindBool, KindChar, KindInt8, KindUInt8:
		return 8
	case KindInt16, KindUInt16:
		return 16
	case KindInt32, KindUInt32, KindFloat32:
		return 32
	case KindInt64, KindUInt64, KindFloat64:
		return 64
	default:
		return 0
	}
}

// IsSigned reports whether the primitive is a signed integer type.
func (p *Primitive) IsSigned() bool {
	switch p.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsUnsigned reports whether the primitive is an unsigned integer type.
func (p *Primitive) IsUnsigned() bool {
	switch p.kind {
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		return true
	default:
		return false
	}
}

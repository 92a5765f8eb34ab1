package npy

// Kind identifies one of the supported array element types.
type Kind int

// The element kinds this package can read and write. Each corresponds to one
// little-endian NumPy dtype.
const (
	KindInvalid Kind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

// Element constrains the Go types that map onto the supported kinds.
type Element interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// KindOf returns the Kind that stores element type T.
func KindOf[T Element]() Kind {
	var v T
	switch any(v).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return KindInvalid
}

// Size returns the element width in bytes, or 0 for KindInvalid.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	}
	return 0
}

// Dtype returns the canonical NumPy dtype descriptor, for example "<f4" for
// Float32. One-byte kinds use the byte-order-free '|' marker.
func (k Kind) Dtype() string {
	switch k {
	case Int8:
		return "|i1"
	case Int16:
		return "<i2"
	case Int32:
		return "<i4"
	case Int64:
		return "<i8"
	case Uint8:
		return "|u1"
	case Uint16:
		return "<u2"
	case Uint32:
		return "<u4"
	case Uint64:
		return "<u8"
	case Float32:
		return "<f4"
	case Float64:
		return "<f8"
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "invalid"
}

// kindOf maps a dtype descriptor's type letter and byte width to a Kind.
func kindOf(letter byte, width int) Kind {
	switch letter {
	case 'i':
		switch width {
		case 1:
			return Int8
		case 2:
			return Int16
		case 4:
			return Int32
		case 8:
			return Int64
		}
	case 'u':
		switch width {
		case 1:
			return Uint8
		case 2:
			return Uint16
		case 4:
			return Uint32
		case 8:
			return Uint64
		}
	case 'f':
		switch width {
		case 4:
			return Float32
		case 8:
			return Float64
		}
	}
	return KindInvalid
}

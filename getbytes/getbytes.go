// Package getbytes reinterprets numeric slices as raw little-endian bytes and
// back without copying, using unsafe.Slice.
package getbytes

import (
	"unsafe"
)

// Numeric restricts conversions to the fixed-width kinds whose in-memory
// layout equals their on-disk little-endian layout on the supported targets.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// FromSlice views the numeric slice d as raw bytes. The result aliases d's
// backing array and stays valid only as long as d does.
func FromSlice[T Numeric](d []T) []byte {
	if len(d) == 0 {
		return []byte{}
	}
	outlength := uintptr(len(d)) * unsafe.Sizeof(d[0])
	return unsafe.Slice((*byte)(unsafe.Pointer(&d[0])), outlength)
}

// ToSlice views the byte slice b as a slice of T. The result aliases b's
// backing array. Panics if len(b) is not a multiple of T's size.
func ToSlice[T Numeric](b []byte) []T {
	var v T
	size := unsafe.Sizeof(v)
	if uintptr(len(b))%size != 0 {
		panic("getbytes: byte count is not a multiple of the element size")
	}
	if len(b) == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), uintptr(len(b))/size)
}

// From converts a single value to its raw bytes.
func From[T Numeric](d T) []byte {
	return FromSlice([]T{d})
}

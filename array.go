package npy

import "github.com/Near-ring/npy-utils/getbytes"

// Array holds one NumPy array: its header plus the raw payload bytes. The
// payload is shared, not copied: typed views obtained through Data and raw
// views obtained through Bytes alias the same backing store, so writes
// through any view are seen by all holders.
type Array struct {
	Header
	data []byte
}

// NewArray allocates a zeroed array with the given shape, element kind and
// storage order.
func NewArray(shape []int, kind Kind, fortran bool) *Array {
	h := Header{Kind: kind, Shape: shape, Fortran: fortran}
	return &Array{Header: h, data: make([]byte, h.NumBytes())}
}

// Bytes returns the raw payload. The slice aliases the array's backing
// store.
func (a *Array) Bytes() []byte {
	return a.data
}

// Data returns the payload viewed as a slice of T without copying. Writes
// through the slice mutate the array. Matching T to the array's Kind is the
// caller's contract; Data panics if the payload length is not a multiple of
// T's size.
func Data[T Element](a *Array) []T {
	return getbytes.ToSlice[T](a.data)
}

// AsSlice returns a fresh copy of the payload as a slice of T.
func AsSlice[T Element](a *Array) []T {
	src := getbytes.ToSlice[T](a.data)
	out := make([]T, len(src))
	copy(out, src)
	return out
}

package npy

import "fmt"

// Matrix is a dense rank-2 container of element type T, produced by
// LoadMatrix and StackFolder. Data holds the elements linearized per
// Fortran: column-major when true, row-major otherwise.
type Matrix[T Element] struct {
	Rows, Cols int
	Fortran    bool
	Data       []T
}

// NewMatrix allocates a zeroed rows x cols matrix in the given order.
func NewMatrix[T Element](rows, cols int, fortran bool) *Matrix[T] {
	return &Matrix[T]{
		Rows:    rows,
		Cols:    cols,
		Fortran: fortran,
		Data:    make([]T, rows*cols),
	}
}

// At returns the element at row i, column j.
func (m *Matrix[T]) At(i, j int) T {
	return m.Data[m.index(i, j)]
}

// Set stores v at row i, column j.
func (m *Matrix[T]) Set(i, j int, v T) {
	m.Data[m.index(i, j)] = v
}

func (m *Matrix[T]) index(i, j int) int {
	if m.Fortran {
		return j*m.Rows + i
	}
	return i*m.Cols + j
}

// LoadMatrix reads a rank-2 npy file into a row-major Matrix of element type
// T. Column-major payloads are transposed element by element during the
// copy; row-major payloads are copied directly. The file's element width
// must equal T's, but signedness and integer-versus-float distinctions are
// not checked.
func LoadMatrix[T Element](path string) (*Matrix[T], error) {
	arr, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(arr.Shape) != 2 {
		return nil, fmt.Errorf("%s: %w: rank %d, want 2", path, ErrRank, len(arr.Shape))
	}
	if want, got := KindOf[T]().Size(), arr.Kind.Size(); want != got {
		return nil, fmt.Errorf("%s: %w: file has %s (%d bytes), want width %d",
			path, ErrKindMismatch, arr.Kind, got, want)
	}
	rows, cols := arr.Shape[0], arr.Shape[1]
	m := NewMatrix[T](rows, cols, false)
	src := Data[T](arr)
	if arr.Fortran {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				m.Data[i*cols+j] = src[j*rows+i]
			}
		}
	} else {
		copy(m.Data, src)
	}
	return m, nil
}

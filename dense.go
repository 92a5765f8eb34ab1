package npy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LoadDense reads a rank-2 float64 npy file into a gonum dense matrix.
// Column-major files are transposed into gonum's row-major layout.
func LoadDense(path string) (*mat.Dense, error) {
	m, err := LoadMatrix[float64](path)
	if err != nil {
		return nil, err
	}
	if m.Rows == 0 || m.Cols == 0 {
		return nil, fmt.Errorf("%s: npy: %dx%d matrix not representable as mat.Dense", path, m.Rows, m.Cols)
	}
	return mat.NewDense(m.Rows, m.Cols, m.Data), nil
}

// SaveDense writes m to path as a rank-2 '<f8' npy file in row-major order.
func SaveDense(path string, m *mat.Dense) error {
	rm := m.RawMatrix()
	if rm.Stride == rm.Cols {
		return SaveMatrix(path, rm.Data[:rm.Rows*rm.Cols], rm.Rows, rm.Cols, false)
	}
	// A view with a wider stride is compacted row by row.
	data := make([]float64, rm.Rows*rm.Cols)
	for i := 0; i < rm.Rows; i++ {
		copy(data[i*rm.Cols:(i+1)*rm.Cols], rm.Data[i*rm.Stride:i*rm.Stride+rm.Cols])
	}
	return SaveMatrix(path, data, rm.Rows, rm.Cols, false)
}

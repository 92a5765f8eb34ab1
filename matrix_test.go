package npy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMatrixColumnMajor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fortran.npy")
	// Column-major linearization of [[1,2,3],[4,5,6]].
	colMajor := []int32{1, 4, 2, 5, 3, 6}
	if err := SaveMatrix(path, colMajor, 2, 3, true); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file back: %v", err)
	}
	off := payloadOffset(t, raw)
	var want bytes.Buffer
	for _, v := range colMajor {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		want.Write(b[:])
	}
	if !bytes.Equal(raw[off:], want.Bytes()) {
		t.Errorf("payload is % x, want % x", raw[off:], want.Bytes())
	}

	m, err := LoadMatrix[int32](path)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	if m.Fortran {
		t.Errorf("loaded matrix is column-major, want row-major")
	}
	if !reflect.DeepEqual(m.Data, []int32{1, 2, 3, 4, 5, 6}) {
		t.Errorf("transposed data is %v, want [1 2 3 4 5 6]", m.Data)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if want := colMajor[j*2+i]; m.At(i, j) != want {
				t.Errorf("At(%d, %d) = %d, want %d", i, j, m.At(i, j), want)
			}
		}
	}
}

func TestLoadMatrixRankMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vec.npy")
	if err := SaveArray(path, []float32{1, 2, 3}); err != nil {
		t.Fatalf("SaveArray failed: %v", err)
	}
	_, err := LoadMatrix[float32](path)
	if !errors.Is(err, ErrRank) {
		t.Errorf("LoadMatrix of a rank-1 file returned %v, want %v", err, ErrRank)
	}
}

func TestLoadMatrixWidthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2.npy")
	if err := SaveMatrix(path, []int16{1, 2, 3, 4}, 2, 2, false); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	_, err := LoadMatrix[int32](path)
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("LoadMatrix with mismatched width returned %v, want %v", err, ErrKindMismatch)
	}
}

func TestLoadMatrixSameWidth(t *testing.T) {
	// Only the element width is checked, so a uint32 file may be viewed as
	// int32.
	path := filepath.Join(t.TempDir(), "u4.npy")
	if err := SaveMatrix(path, []uint32{1, 2, 3, 4, 5, 6}, 3, 2, false); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	m, err := LoadMatrix[int32](path)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	if !reflect.DeepEqual(m.Data, []int32{1, 2, 3, 4, 5, 6}) {
		t.Errorf("loaded data %v, want [1 2 3 4 5 6]", m.Data)
	}
}

func TestMatrixIndexing(t *testing.T) {
	rm := NewMatrix[float64](2, 3, false)
	rm.Set(1, 2, 42)
	if rm.Data[1*3+2] != 42 {
		t.Errorf("row-major Set(1, 2) landed at the wrong linear offset")
	}
	if rm.At(1, 2) != 42 {
		t.Errorf("row-major At(1, 2) = %v, want 42", rm.At(1, 2))
	}

	cm := NewMatrix[float64](2, 3, true)
	cm.Set(1, 2, 7)
	if cm.Data[2*2+1] != 7 {
		t.Errorf("column-major Set(1, 2) landed at the wrong linear offset")
	}
	if cm.At(1, 2) != 7 {
		t.Errorf("column-major At(1, 2) = %v, want 7", cm.At(1, 2))
	}
}

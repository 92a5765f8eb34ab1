package npy_test

// Cross-checks against the sbinet/npyio codec: files written by this package
// must be readable there and vice versa.

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	npy "github.com/Near-ring/npy-utils"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

func TestNpyioReadsVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vec.npy")
	want := []float32{1, 2.5, -3}
	if err := npy.SaveArray(path, want); err != nil {
		t.Fatalf("SaveArray failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()
	var got []float32
	if err := npyio.Read(f, &got); err != nil {
		t.Fatalf("npyio.Read failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("npyio read %v, want %v", got, want)
	}
}

func TestNpyioReadsMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.npy")
	data := []int32{1, 2, 3, 4, 5, 6}
	if err := npy.SaveMatrix(path, data, 2, 3, false); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()
	r, err := npyio.NewReader(f)
	if err != nil {
		t.Fatalf("npyio.NewReader failed: %v", err)
	}
	if r.Header.Major != 2 {
		t.Errorf("npyio sees version %d, want 2", r.Header.Major)
	}
	if r.Header.Descr.Type != "<i4" {
		t.Errorf("npyio sees dtype %q, want <i4", r.Header.Descr.Type)
	}
	if !reflect.DeepEqual(r.Header.Descr.Shape, []int{2, 3}) {
		t.Errorf("npyio sees shape %v, want [2 3]", r.Header.Descr.Shape)
	}
	if r.Header.Descr.Fortran {
		t.Errorf("npyio sees fortran_order true, want false")
	}
	got := make([]int32, len(data))
	if err := r.Read(&got); err != nil {
		t.Fatalf("npyio read failed: %v", err)
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("npyio read %v, want %v", got, data)
	}
}

func TestLoadNpyioVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vec.npy")
	want := []int64{-9, 0, 1 << 40}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := npyio.Write(f, want); err != nil {
		t.Fatalf("npyio.Write failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	arr, err := npy.Load(path)
	if err != nil {
		t.Fatalf("Load of an npyio file failed: %v", err)
	}
	if arr.Kind != npy.Int64 {
		t.Errorf("loaded kind %s, want int64", arr.Kind)
	}
	if got := npy.AsSlice[int64](arr); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded %v, want %v", got, want)
	}
}

func TestLoadNpyioDense(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dense.npy")
	want := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := npyio.Write(f, want); err != nil {
		t.Fatalf("npyio.Write failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	got, err := npy.LoadDense(path)
	if err != nil {
		t.Fatalf("LoadDense of an npyio file failed: %v", err)
	}
	if !mat.Equal(want, got) {
		t.Errorf("loaded matrix differs:\ngot  %v\nwant %v", mat.Formatted(got), mat.Formatted(want))
	}
}

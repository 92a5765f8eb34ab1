package npy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Near-ring/npy-utils/getbytes"
)

// StackFolder reads the consecutively numbered rank-2 files
// folder/prefix{i}suffix for i = start, start+1, ... and stacks their
// payloads vertically into one matrix of fileCount*rows rows. Probing stops
// at the first index whose file does not exist, so a hole in the numbering
// terminates the sequence.
//
// The first file fixes rows, cols and the expected layout: it must have rank
// 2, an element width equal to T's, and a storage order matching fortran.
// Later files are assumed to match; their headers are skipped, not
// validated, and exactly rows*cols elements are read from each.
//
// Each payload is copied verbatim into its slot. For column-major inputs the
// result is therefore a stack of column-major blocks rather than one
// column-major matrix, exactly as if the files were concatenated.
func StackFolder[T Element](folder, prefix string, start int, suffix string, fortran bool) (*Matrix[T], error) {
	first := stackFileName(folder, prefix, start, suffix)
	hdr, err := peekHeader(first)
	if err != nil {
		return nil, err
	}
	if len(hdr.Shape) != 2 {
		return nil, fmt.Errorf("%s: %w: rank %d, want 2", first, ErrRank, len(hdr.Shape))
	}
	if want, got := KindOf[T]().Size(), hdr.Kind.Size(); want != got {
		return nil, fmt.Errorf("%s: %w: file has %s (%d bytes), want width %d",
			first, ErrKindMismatch, hdr.Kind, got, want)
	}
	if hdr.Fortran != fortran {
		return nil, fmt.Errorf("%s: %w: file fortran_order is %t", first, ErrOrder, hdr.Fortran)
	}
	rows, cols := hdr.Shape[0], hdr.Shape[1]

	fileCount := 1
	for {
		if _, err := os.Stat(stackFileName(folder, prefix, start+fileCount, suffix)); err != nil {
			break
		}
		fileCount++
	}

	out := NewMatrix[T](fileCount*rows, cols, fortran)
	slot := rows * cols
	for k := 0; k < fileCount; k++ {
		name := stackFileName(folder, prefix, start+k, suffix)
		dst := getbytes.FromSlice(out.Data[k*slot : (k+1)*slot])
		if err := readFileInto(name, dst); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func stackFileName(folder, prefix string, i int, suffix string) string {
	return filepath.Join(folder, fmt.Sprintf("%s%d%s", prefix, i, suffix))
}

// peekHeader parses just the header of the file at path.
func peekHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	hdr, err := ParseHeader(f)
	if err != nil {
		return Header{}, fmt.Errorf("%s: %w", path, err)
	}
	return hdr, nil
}

// readFileInto skips the header of the file at path and reads exactly
// len(dst) payload bytes into dst.
func readFileInto(path string, dst []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := ParseHeader(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := readPayload(f, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

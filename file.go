package npy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Near-ring/npy-utils/getbytes"
)

// Load reads the npy file at path into a newly allocated Array. The payload
// is kept in the file's own storage order; consult Header.Fortran before
// indexing it as a matrix, or use LoadMatrix to normalize the order.
func Load(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdr, err := ParseHeader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	arr := &Array{Header: hdr, data: make([]byte, hdr.NumBytes())}
	if err := readPayload(f, arr.data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return arr, nil
}

// readPayload fills dst from r, mapping a truncated stream to ErrShortRead.
func readPayload(r io.Reader, dst []byte) error {
	n, err := io.ReadFull(r, dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: got %d of %d payload bytes", ErrShortRead, n, len(dst))
	default:
		return fmt.Errorf("reading payload: %w", err)
	}
}

// SaveArray writes data to path as a rank-1 npy file.
func SaveArray[T Element](path string, data []T) error {
	hdr := Header{Kind: KindOf[T](), Shape: []int{len(data)}}
	return writeFile(path, hdr, getbytes.FromSlice(data))
}

// SaveMatrix writes a rows x cols matrix to path as a rank-2 npy file. The
// elements of data must be linearized in the order given by fortran:
// column-major when true, row-major otherwise.
func SaveMatrix[T Element](path string, data []T, rows, cols int, fortran bool) error {
	if len(data) != rows*cols {
		return fmt.Errorf("npy: matrix payload has %d elements, want %d x %d", len(data), rows, cols)
	}
	hdr := Header{Kind: KindOf[T](), Shape: []int{rows, cols}, Fortran: fortran}
	return writeFile(path, hdr, getbytes.FromSlice(data))
}

// writeFile creates path and writes the encoded header followed by the
// payload. The header is validated before the file is touched, so an
// unencodable header leaves no partial file behind.
func writeFile(path string, hdr Header, payload []byte) error {
	head, err := EncodeHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(f, 32768)
	if _, err := w.Write(head); err != nil {
		f.Close()
		return fmt.Errorf("%s: writing header: %w", path, err)
	}
	if _, err := w.Write(payload); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w: %v", path, ErrShortWrite, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w: %v", path, ErrShortWrite, err)
	}
	return f.Close()
}

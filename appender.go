package npy

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Near-ring/npy-utils/getbytes"
)

// appenderHeaderSize is the fixed length reserved for an Appender's header,
// a multiple of both 16 and 64. The shape tuple is rewritten in place inside
// this region as elements are appended, so the header never moves.
const appenderHeaderSize = 128

// An Appender writes an npy file whose length is not known up front. Each
// Append or AppendRow call extends the payload; the shape recorded in the
// header is patched by RefreshHeader and Close. The file holds rank-1 data
// until the first AppendRow call, which switches it to rank-2 with a fixed
// row width.
type Appender[T Element] struct {
	file   *os.File
	kind   Kind
	rows   int
	rowLen int // 0 until the file becomes rank-2
}

// NewAppender creates (or truncates) the file at path and writes a header
// describing an empty rank-1 array of T.
func NewAppender[T Element](path string) (*Appender[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	a := &Appender[T]{file: f, kind: KindOf[T]()}
	if err := a.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return a, nil
}

// SetRowLength fixes the row width, making the file rank-2 with shape
// (0, n). It must be called before the first append.
func (a *Appender[T]) SetRowLength(n int) error {
	if a.rows > 0 {
		return fmt.Errorf("npy: cannot set row length after %d appends", a.rows)
	}
	if n <= 0 {
		return fmt.Errorf("npy: row length must be positive, have %d", n)
	}
	a.rowLen = n
	return nil
}

// Append adds one element to a rank-1 file.
func (a *Appender[T]) Append(v T) error {
	if a.rowLen > 0 {
		return fmt.Errorf("%w: scalar append on a rank-2 appender", ErrRank)
	}
	if _, err := a.file.Write(getbytes.From(v)); err != nil {
		return fmt.Errorf("%w: %v", ErrShortWrite, err)
	}
	a.rows++
	return nil
}

// AppendRow adds one row to a rank-2 file. The first call fixes the row
// width if SetRowLength has not set it already.
func (a *Appender[T]) AppendRow(row []T) error {
	if a.rowLen == 0 {
		if a.rows > 0 {
			return fmt.Errorf("%w: row append on a rank-1 appender", ErrRank)
		}
		if len(row) == 0 {
			return fmt.Errorf("npy: empty row cannot fix the row length")
		}
		a.rowLen = len(row)
	}
	if len(row) != a.rowLen {
		return fmt.Errorf("npy: row has %d elements, want %d", len(row), a.rowLen)
	}
	if _, err := a.file.Write(getbytes.FromSlice(row)); err != nil {
		return fmt.Errorf("%w: %v", ErrShortWrite, err)
	}
	a.rows++
	return nil
}

// RefreshHeader rewrites the header so that the shape matches the data
// appended so far. A reader opening the file after a refresh sees a
// complete, loadable array even while more appends follow.
func (a *Appender[T]) RefreshHeader() error {
	return a.writeHeader()
}

// Tell returns the current file size in bytes, or 0 if the file cannot be
// stat'ed.
func (a *Appender[T]) Tell() int64 {
	fi, err := a.file.Stat()
	if err != nil {
		return 0
	}
	return fi.Size()
}

// Close patches the final shape into the header and closes the file.
func (a *Appender[T]) Close() error {
	if err := a.writeHeader(); err != nil {
		a.file.Close()
		return err
	}
	return a.file.Close()
}

// writeHeader formats a version 1.0 header for the current shape into the
// fixed reserved region and patches it at offset 0, leaving the write cursor
// at the end of the file.
func (a *Appender[T]) writeHeader() error {
	shape := fmt.Sprintf("(%d,)", a.rows)
	if a.rowLen > 0 {
		shape = fmt.Sprintf("(%d, %d)", a.rows, a.rowLen)
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }",
		a.kind.Dtype(), shape)
	const preamble = 10 // magic + version + 2 byte length field
	if preamble+len(dict)+1 > appenderHeaderSize {
		return fmt.Errorf("%w: header exceeds the %d byte reserved region", ErrHeader, appenderHeaderSize)
	}

	buf := make([]byte, 0, appenderHeaderSize)
	buf = append(buf, Magic[:]...)
	buf = append(buf, 1, 0)
	var lenField [2]byte
	binary.LittleEndian.PutUint16(lenField[:], uint16(appenderHeaderSize-preamble))
	buf = append(buf, lenField[:]...)
	buf = append(buf, dict...)
	for len(buf) < appenderHeaderSize-1 {
		buf = append(buf, ' ')
	}
	buf = append(buf, '\n')

	if _, err := a.file.WriteAt(buf, 0); err != nil {
		return err
	}
	_, err := a.file.Seek(0, io.SeekEnd)
	return err
}

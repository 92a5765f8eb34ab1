package npy

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header describes the contents of an npy file: the element kind, the array
// shape, and whether the payload is stored in column-major (Fortran) order.
type Header struct {
	Kind    Kind
	Shape   []int
	Fortran bool
}

// NumElems returns the number of elements implied by the shape, the product
// of all dimensions. Any zero dimension makes it zero.
func (h Header) NumElems() int {
	n := 1
	for _, d := range h.Shape {
		n *= d
	}
	return n
}

// NumBytes returns the payload size in bytes.
func (h Header) NumBytes() int {
	return h.NumElems() * h.Kind.Size()
}

// ParseHeader reads an npy header from r, consuming exactly the magic, the
// version, the length field and the header dictionary. The reader is left
// positioned at the first payload byte.
func ParseHeader(r io.Reader) (Header, error) {
	var hdr Header
	var pre [8]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return hdr, fmt.Errorf("%w: truncated file preamble: %v", ErrHeader, err)
	}
	if !bytes.Equal(pre[:6], Magic[:]) {
		return hdr, ErrMagic
	}
	major, minor := pre[6], pre[7]

	var hlen int
	switch major {
	case 1:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return hdr, fmt.Errorf("%w: truncated header length field: %v", ErrHeader, err)
		}
		hlen = int(binary.LittleEndian.Uint16(b[:]))
	case 2:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return hdr, fmt.Errorf("%w: truncated header length field: %v", ErrHeader, err)
		}
		hlen = int(binary.LittleEndian.Uint32(b[:]))
	default:
		return hdr, fmt.Errorf("%w %d.%d", ErrVersion, major, minor)
	}

	dict := make([]byte, hlen)
	if _, err := io.ReadFull(r, dict); err != nil {
		return hdr, fmt.Errorf("%w: truncated header dictionary: %v", ErrHeader, err)
	}
	if hlen == 0 || dict[hlen-1] != '\n' {
		return hdr, fmt.Errorf("%w: header dictionary does not end in newline", ErrHeader)
	}
	return parseDict(string(dict))
}

// parseDict extracts descr, fortran_order and shape from the Python literal
// dict written by NumPy. The three keys may appear in any order.
func parseDict(s string) (Header, error) {
	var hdr Header

	descr, err := quotedValue(s, "'descr'")
	if err != nil {
		return hdr, err
	}
	if len(descr) < 3 {
		return hdr, fmt.Errorf("%w: bad descr %q", ErrHeader, descr)
	}
	switch descr[0] {
	case '<', '|':
	case '>':
		return hdr, fmt.Errorf("%w: %q", ErrEndianness, descr)
	default:
		return hdr, fmt.Errorf("%w: bad descr %q", ErrHeader, descr)
	}
	width, err := strconv.Atoi(descr[2:])
	if err != nil {
		return hdr, fmt.Errorf("%w: bad descr %q", ErrHeader, descr)
	}
	hdr.Kind = kindOf(descr[1], width)
	if hdr.Kind == KindInvalid {
		return hdr, fmt.Errorf("%w %q", ErrDtype, descr)
	}

	loc := strings.Index(s, "'fortran_order'")
	if loc < 0 {
		return hdr, fmt.Errorf("%w: missing key 'fortran_order'", ErrHeader)
	}
	order := strings.TrimLeft(s[loc+len("'fortran_order'"):], ": ")
	switch {
	case strings.HasPrefix(order, "True"):
		hdr.Fortran = true
	case strings.HasPrefix(order, "False"):
		hdr.Fortran = false
	default:
		return hdr, fmt.Errorf("%w: fortran_order is neither True nor False", ErrHeader)
	}

	loc = strings.Index(s, "'shape'")
	if loc < 0 {
		return hdr, fmt.Errorf("%w: missing key 'shape'", ErrHeader)
	}
	lp := strings.Index(s[loc:], "(")
	rp := strings.Index(s[loc:], ")")
	if lp < 0 || rp < 0 || rp < lp {
		return hdr, fmt.Errorf("%w: shape is not a tuple", ErrHeader)
	}
	inner := s[loc+lp+1 : loc+rp]
	for i := 0; i < len(inner); {
		if inner[i] < '0' || inner[i] > '9' {
			i++
			continue
		}
		j := i
		for j < len(inner) && inner[j] >= '0' && inner[j] <= '9' {
			j++
		}
		d, err := strconv.Atoi(inner[i:j])
		if err != nil {
			return hdr, fmt.Errorf("%w: bad shape dimension %q", ErrHeader, inner[i:j])
		}
		hdr.Shape = append(hdr.Shape, d)
		i = j
	}
	if len(hdr.Shape) == 0 {
		return hdr, fmt.Errorf("%w: rank-0 arrays are not supported", ErrHeader)
	}
	return hdr, nil
}

// quotedValue returns the single-quoted string following key in s.
func quotedValue(s, key string) (string, error) {
	loc := strings.Index(s, key)
	if loc < 0 {
		return "", fmt.Errorf("%w: missing key %s", ErrHeader, key)
	}
	rest := s[loc+len(key):]
	q1 := strings.IndexByte(rest, '\'')
	if q1 < 0 {
		return "", fmt.Errorf("%w: unquoted value for %s", ErrHeader, key)
	}
	q2 := strings.IndexByte(rest[q1+1:], '\'')
	if q2 < 0 {
		return "", fmt.Errorf("%w: unterminated value for %s", ErrHeader, key)
	}
	return rest[q1+1 : q1+1+q2], nil
}

// EncodeHeader renders h as a version 2.0 npy header, padded so that the
// total length is a multiple of 16 bytes.
func EncodeHeader(h Header) ([]byte, error) {
	return encodeHeader(h, 2)
}

func encodeHeader(h Header, major byte) ([]byte, error) {
	if len(h.Shape) == 0 {
		return nil, fmt.Errorf("%w: empty shape", ErrHeader)
	}
	for _, d := range h.Shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative shape dimension %d", ErrHeader, d)
		}
	}
	descr := h.Kind.Dtype()
	if descr == "" {
		return nil, fmt.Errorf("%w: kind %d", ErrDtype, h.Kind)
	}
	order := "False"
	if h.Fortran {
		order = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }",
		descr, order, shapeString(h.Shape))

	preamble := 12 // magic + version + 4 byte length field
	if major == 1 {
		preamble = 10
	}
	pad := (16 - (preamble+len(dict)+1)%16) % 16
	dict += strings.Repeat(" ", pad) + "\n"
	if major == 1 && len(dict) > 0xffff {
		return nil, fmt.Errorf("%w: dictionary too large for a version 1 header", ErrHeader)
	}

	buf := bytes.NewBuffer(make([]byte, 0, preamble+len(dict)))
	buf.Write(Magic[:])
	buf.WriteByte(major)
	buf.WriteByte(0)
	if major == 1 {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(len(dict)))
		buf.Write(b[:])
	} else {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(len(dict)))
		buf.Write(b[:])
	}
	buf.WriteString(dict)
	return buf.Bytes(), nil
}

func shapeString(shape []int) string {
	if len(shape) == 1 {
		return fmt.Sprintf("(%d,)", shape[0])
	}
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

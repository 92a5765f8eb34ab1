// Package npy reads and writes files in NumPy's .npy binary format and
// stacks folders of same-shaped .npy files into one contiguous matrix.
//
// A .npy file is a short header followed by the raw array payload:
//
//	bytes      meaning
//	0-5        magic "\x93NUMPY"
//	6          major version (1 and 2 accepted, 2 written)
//	7          minor version
//	8-9 or 8-11  header length, little endian (2 bytes for v1, 4 for v2)
//	...        ASCII dict with keys 'descr', 'fortran_order' and 'shape',
//	           space padded and terminated by a single '\n'
//	...        contiguous little-endian payload, C or Fortran order
//
// Headers written by this package pad the dictionary so that the payload
// starts on a 16 byte boundary, matching the NumPy reference writer. Only
// little-endian numeric dtypes are supported; see Kind for the full set.
package npy

import "errors"

// Magic is the six-byte signature at the start of every .npy file.
var Magic = [6]byte{'\x93', 'N', 'U', 'M', 'P', 'Y'}

// Errors reported by the codec and the file operations. Failures to open or
// create a file are returned as the underlying *os.PathError instead.
var (
	ErrMagic        = errors.New("npy: not a NumPy data file")
	ErrVersion      = errors.New("npy: unsupported format version")
	ErrHeader       = errors.New("npy: malformed header")
	ErrEndianness   = errors.New("npy: unsupported endianness")
	ErrDtype        = errors.New("npy: unsupported dtype")
	ErrShortRead    = errors.New("npy: short payload read")
	ErrShortWrite   = errors.New("npy: short payload write")
	ErrRank         = errors.New("npy: rank mismatch")
	ErrKindMismatch = errors.New("npy: element kind mismatch")
	ErrOrder        = errors.New("npy: storage order mismatch")
)

// Npz maps array names to their contents the way NumPy's multi-array .npz
// archives do. Reading and writing the zip container is not implemented.
type Npz map[string]*Array

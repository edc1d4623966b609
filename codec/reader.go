package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/lixenwraith/fxworld/vmath"
)

// ErrNegativeLength is recorded when a string length prefix is negative
var ErrNegativeLength = errors.New("codec: negative string length")

// Reader is a forward-only big-endian reader
// The first four bytes are consumed as the format version on construction
//
// Two surfaces are provided: explicit (value, error) reads, and the legacy
// sentinel reads (ReadU8, ReadInt32, ReadUTF, ReadVec2) that never fail and
// return -1 / false on I/O errors. The first error seen is kept in Err.
type Reader struct {
	r       io.Reader
	one     [1]byte
	version int32
	err     error
}

// NewReader wraps r and consumes the version header
func NewReader(r io.Reader) *Reader {
	rd := &Reader{r: r}
	rd.version = rd.ReadInt32()
	return rd
}

// Version returns the header read at construction
func (r *Reader) Version() int32 { return r.version }

// Err returns the first I/O error observed, nil if none
func (r *Reader) Err() error { return r.err }

// Exhausted reports whether the underlying stream has failed
func (r *Reader) Exhausted() bool { return r.err != nil }

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// --- Explicit reads ---

// Byte reads one raw byte
func (r *Reader) Byte() (byte, error) {
	if br, ok := r.r.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err != nil {
			r.fail(err)
			return 0, err
		}
		return b, nil
	}
	if _, err := io.ReadFull(r.r, r.one[:]); err != nil {
		r.fail(err)
		return 0, err
	}
	return r.one[0], nil
}

// Int32 reads a big-endian int32, failing on the first short byte
func (r *Reader) Int32() (int32, error) {
	var v int32
	for i := 0; i < 4; i++ {
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		v = v<<8 | int32(b)
	}
	return v, nil
}

// UTF reads a length-prefixed UTF-8 string
func (r *Reader) UTF() (string, error) {
	n, err := r.Int32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		r.fail(ErrNegativeLength)
		return "", ErrNegativeLength
	}
	if n == 0 {
		return "", nil
	}

	// Grow with the data actually present instead of trusting the prefix
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r.r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		err = fmt.Errorf("codec: string of %d bytes: %w", n, err)
		r.fail(err)
		return "", err
	}
	return buf.String(), nil
}

// Vec2 reads two FX scalars as x then y
func (r *Reader) Vec2() (vmath.Vec2FX, error) {
	x, err := r.Int32()
	if err != nil {
		return vmath.Vec2FX{}, err
	}
	y, err := r.Int32()
	if err != nil {
		return vmath.Vec2FX{}, err
	}
	return vmath.Vec2FX{X: x, Y: y}, nil
}

// --- Legacy sentinel reads ---

// ReadU8 returns the next byte as 0..255, or -1 on failure
func (r *Reader) ReadU8() int {
	b, err := r.Byte()
	if err != nil {
		return -1
	}
	return int(b)
}

// ReadInt32 combines four ReadU8 results big-endian
// A failed byte contributes -1 and the value is still assembled, so any
// failure in the low byte yields -1 overall
func (r *Reader) ReadInt32() int32 {
	b0 := int32(r.ReadU8())
	b1 := int32(r.ReadU8())
	b2 := int32(r.ReadU8())
	b3 := int32(r.ReadU8())
	return b0<<24 | b1<<16 | b2<<8 | b3
}

// ReadFX reads one FX scalar; alias of ReadInt32 for call-site clarity
func (r *Reader) ReadFX() int32 { return r.ReadInt32() }

// ReadBool reads one byte, non-zero is true; failure reads as true (-1)
func (r *Reader) ReadBool() bool { return r.ReadU8() != 0 }

// ReadUTF reads a length-prefixed string; ok is false where the legacy
// format yields null
func (r *Reader) ReadUTF() (s string, ok bool) {
	s, err := r.UTF()
	return s, err == nil
}

// ReadVec2 reads two ReadInt32 values as x then y
func (r *Reader) ReadVec2() vmath.Vec2FX {
	x := r.ReadInt32()
	y := r.ReadInt32()
	return vmath.Vec2FX{X: x, Y: y}
}

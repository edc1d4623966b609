package codec

import (
	"encoding/binary"
	"io"

	"github.com/lixenwraith/fxworld/vmath"
)

// Writer mirrors Reader: big-endian, forward-only
// The first write error is latched; later writes are skipped and Err reports it
type Writer struct {
	w   io.Writer
	buf [4]byte
	n   int64
	err error
}

// NewWriter wraps w and emits the version header
func NewWriter(w io.Writer, version int32) *Writer {
	wr := &Writer{w: w}
	wr.WriteInt32(version)
	return wr
}

// Err returns the first write error, nil if none
func (w *Writer) Err() error { return w.err }

// Written returns the number of bytes emitted so far
func (w *Writer) Written() int64 { return w.n }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = err
	}
}

// WriteU8 emits one byte
func (w *Writer) WriteU8(b byte) {
	w.buf[0] = b
	w.write(w.buf[:1])
}

// WriteBool emits 1 or 0
func (w *Writer) WriteBool(b bool) {
	if b {
		w.WriteU8(1)
		return
	}
	w.WriteU8(0)
}

// WriteInt32 emits four big-endian bytes
func (w *Writer) WriteInt32(v int32) {
	binary.BigEndian.PutUint32(w.buf[:], uint32(v))
	w.write(w.buf[:4])
}

// WriteFX emits one FX scalar
func (w *Writer) WriteFX(v int32) { w.WriteInt32(v) }

// WriteFloat is the legacy float path and always encodes zero
//
// Deprecated: no reader decodes floats; kept for layout compatibility only.
func (w *Writer) WriteFloat(_ float32) {
	w.WriteInt32(0)
}

// WriteUTF emits a 4-byte length followed by the UTF-8 bytes
func (w *Writer) WriteUTF(s string) {
	w.WriteInt32(int32(len(s)))
	if len(s) > 0 {
		w.write([]byte(s))
	}
}

// WriteVec2 emits x then y
func (w *Writer) WriteVec2(v vmath.Vec2FX) {
	w.WriteInt32(v.X)
	w.WriteInt32(v.Y)
}

package encoding

import (
	"github.com/arloliu/rmeta/internal/pool"
)

// Writer appends variable-length integers and raw bytes in the format read by Cursor.
//
// Writer is used by the reference encoder and by tests; the runtime only reads.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter creates a new Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetBlobBuffer()}
}

// WriteU1 appends one byte.
func (w *Writer) WriteU1(b uint8) {
	w.buf.MustWrite([]byte{b})
}

// WriteUV appends an unsigned variable-length integer.
func (w *Writer) WriteUV(val uint32) {
	w.buf.Grow(maxVarintLen32)
	for val >= 0x80 {
		w.buf.MustWrite([]byte{byte(val) | 0x80})
		val >>= 7
	}
	w.buf.MustWrite([]byte{byte(val)})
}

// WriteSV appends a zigzag-encoded signed variable-length integer.
func (w *Writer) WriteSV(val int32) {
	// -1 becomes 1, -2 becomes 3, 0 stays 0, 1 becomes 2, etc.
	w.WriteUV(uint32(val<<1) ^ uint32(val>>31)) //nolint:gosec
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.MustWrite(b)
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns a copy of the written bytes.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	return out
}

// Reset returns the buffer to the pool. The writer must not be used afterwards.
func (w *Writer) Reset() {
	if w.buf != nil {
		pool.PutBlobBuffer(w.buf)
		w.buf = nil
	}
}

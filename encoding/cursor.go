package encoding

import (
	"fmt"

	"github.com/arloliu/rmeta/errs"
)

// maxVarintLen32 is the longest encoding of a 32-bit value.
const maxVarintLen32 = 5

// Cursor reads variable-length integers and raw bytes from a metadata blob.
//
// Unsigned integers use base-128 little-endian groups with the high bit of each
// byte as continuation flag. Signed integers are zigzag-mapped first, so -1
// becomes 1, 1 becomes 2 and so on.
//
// Reading past the end of the data panics with an error wrapping
// errs.ErrTruncated. The blob is produced together with the decoder, so a
// truncated read is a format mismatch, not a data error.
//
// Note: a Cursor is NOT thread-safe. Create one per decode call.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor over data positioned at pos.
func NewCursor(data []byte, pos int) *Cursor {
	if pos < 0 || pos > len(data) {
		panic(fmt.Errorf("%w: start offset %d, blob length %d", errs.ErrTruncated, pos, len(data)))
	}

	return &Cursor{data: data, pos: pos}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// SetPos moves the read position.
func (c *Cursor) SetPos(pos int) {
	if pos < 0 || pos > len(c.data) {
		panic(fmt.Errorf("%w: position %d, blob length %d", errs.ErrTruncated, pos, len(c.data)))
	}
	c.pos = pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// ReadU1 reads one unsigned byte.
func (c *Cursor) ReadU1() uint8 {
	if c.pos >= len(c.data) {
		panic(fmt.Errorf("%w: u1 at offset %d", errs.ErrTruncated, c.pos))
	}
	b := c.data[c.pos]
	c.pos++

	return b
}

// ReadS1 reads one signed byte.
func (c *Cursor) ReadS1() int8 {
	return int8(c.ReadU1()) //nolint:gosec
}

// ReadUV reads an unsigned variable-length integer.
func (c *Cursor) ReadUV() uint32 {
	start := c.pos
	var result uint64
	for shift := uint(0); ; shift += 7 {
		if c.pos-start == maxVarintLen32 {
			panic(fmt.Errorf("%w: at offset %d", errs.ErrVarintOverflow, start))
		}
		if c.pos >= len(c.data) {
			panic(fmt.Errorf("%w: varint at offset %d", errs.ErrTruncated, start))
		}

		b := c.data[c.pos]
		c.pos++
		result |= uint64(b&0x7F) << shift

		if b&0x80 == 0 {
			break
		}
	}

	if result > 0xFFFFFFFF {
		panic(fmt.Errorf("%w: at offset %d", errs.ErrVarintOverflow, start))
	}

	return uint32(result)
}

// ReadSV reads a zigzag-encoded signed variable-length integer.
func (c *Cursor) ReadSV() int32 {
	u := c.ReadUV()

	return int32(u>>1) ^ -int32(u&1) //nolint:gosec
}

// ReadBytes returns the next n bytes. The returned slice aliases the blob.
func (c *Cursor) ReadBytes(n int) []byte {
	if n < 0 || n > c.Remaining() {
		panic(fmt.Errorf("%w: %d bytes at offset %d, have %d", errs.ErrTruncated, n, c.pos, c.Remaining()))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b
}

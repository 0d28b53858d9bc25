package blob

import (
	"fmt"

	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
	"go.uber.org/zap"
)

// readIndex reads a signed side table index and resolves error indices.
func (d *Decoder) readIndex(c *encoding.Cursor) (section.Index, error) {
	idx := section.ClassifyIndex(c.ReadSV())
	if idx.IsError() {
		return idx, d.deferredError(idx)
	}

	return idx, nil
}

// deferredError returns the error stored in the object table for an error index.
// The stored value must implement error.
func (d *Decoder) deferredError(idx section.Index) error {
	obj := d.tables.Object(idx.Value())

	err, ok := obj.(error)
	if !ok || err == nil {
		panic(fmt.Errorf("%w: object %d has type %T", errs.ErrNotAnError, idx.Value(), obj))
	}

	if ce := d.logger.Check(zap.DebugLevel, "raising deferred metadata error"); ce != nil {
		ce.Write(zap.Int("objectIndex", idx.Value()), zap.Error(err))
	}

	return err
}

// decodeName reads an interned member name. ok is false when the name is absent.
func (d *Decoder) decodeName(c *encoding.Cursor) (string, bool, error) {
	idx, err := d.readIndex(c)
	if err != nil || idx.IsAbsent() {
		return "", false, err
	}

	return d.tables.String(idx.Value()), true, nil
}

// decodeString reads an auxiliary string such as a signature; absent is "".
func (d *Decoder) decodeString(c *encoding.Cursor) (string, error) {
	s, _, err := d.decodeName(c)
	return s, err
}

// decodeType reads a class reference; absent is nil.
func (d *Decoder) decodeType(c *encoding.Cursor) (introspect.Type, error) {
	idx, err := d.readIndex(c)
	if err != nil || idx.IsAbsent() {
		return nil, err
	}

	return d.tables.Class(idx.Value()), nil
}

// decodeTypeElement adapts decodeType to class arrays, dropping absent classes.
func (d *Decoder) decodeTypeElement(c *encoding.Cursor) (introspect.Type, bool, error) {
	t, err := d.decodeType(c)
	if err != nil {
		return nil, false, err
	}

	return t, t != nil, nil
}

// decodeStringElement adapts decodeString to name arrays.
func (d *Decoder) decodeStringElement(c *encoding.Cursor) (string, bool, error) {
	s, err := d.decodeString(c)
	if err != nil {
		return "", false, err
	}

	return s, true, nil
}

// decodeObject reads a heap object reference; absent is nil.
func (d *Decoder) decodeObject(c *encoding.Cursor) (any, error) {
	idx, err := d.readIndex(c)
	if err != nil || idx.IsAbsent() {
		return nil, err
	}

	return d.tables.Object(idx.Value()), nil
}

// decodeByteArray reads an unsigned length and that many bytes. The
// NullArrayLength sentinel yields nil; zero yields an empty, non-nil slice.
// The bytes are copied so results never alias the blob.
func (d *Decoder) decodeByteArray(c *encoding.Cursor) []byte {
	length := c.ReadUV()
	if length == section.NullArrayLength {
		return nil
	}

	src := c.ReadBytes(int(length))
	out := make([]byte, len(src))
	copy(out, src)

	return out
}

package blob

import (
	"fmt"

	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/section"
)

// elementDecoder decodes one array element. A false ok drops the element.
type elementDecoder[T any] func(c *encoding.Cursor) (value T, ok bool, err error)

// decodeArray reads a signed length followed by that many elements.
//
// An error index in place of the length returns the deferred error before any
// element is decoded. An absent length yields a nil slice. Dropped elements
// are compacted out, so the result length is the number of kept elements, in
// encoding order. An error from any element discards the whole array.
func decodeArray[T any](d *Decoder, c *encoding.Cursor, elem elementDecoder[T]) ([]T, error) {
	start := c.Pos()
	idx := section.ClassifyIndex(c.ReadSV())

	switch idx.Kind() {
	case section.IndexError:
		return nil, d.deferredError(idx)
	case section.IndexAbsent:
		return nil, nil
	case section.IndexValue:
	}

	length := idx.Value()
	// Every element occupies at least one byte.
	if length > c.Remaining() {
		panic(fmt.Errorf("%w: length %d at offset %d exceeds remaining %d bytes",
			errs.ErrInvalidLength, length, start, c.Remaining()))
	}

	result := make([]T, 0, length)
	for i := 0; i < length; i++ {
		v, ok, err := elem(c)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, v)
		}
	}

	return result, nil
}

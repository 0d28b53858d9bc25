// Package table provides in-memory side tables for the metadata decoder.
//
// A Tables value holds the three arrays an image carries next to the metadata
// blob: classes, strings and heap objects. It is immutable once built and safe
// for concurrent use. Strings are interned on read.
package table

import (
	"fmt"

	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/internal/intern"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
)

// Tables is an immutable set of side tables.
type Tables struct {
	classes []introspect.Type
	strings []string
	objects []any
	interns *intern.Pool
}

// New creates Tables from existing slices. The slices must not be modified afterwards.
func New(classes []introspect.Type, strings []string, objects []any) *Tables {
	return &Tables{
		classes: classes,
		strings: strings,
		objects: objects,
		interns: intern.NewPool(),
	}
}

// Class returns the class at index i. Entries may be nil for classes that
// are not present in the image.
func (t *Tables) Class(i int) introspect.Type {
	checkIndex("class", i, len(t.classes))
	return t.classes[i]
}

// String returns the interned string at index i.
func (t *Tables) String(i int) string {
	checkIndex("string", i, len(t.strings))
	return t.interns.Intern(t.strings[i])
}

// Object returns the heap object at index i.
func (t *Tables) Object(i int) any {
	checkIndex("object", i, len(t.objects))
	return t.objects[i]
}

// ClassCount returns the size of the class table.
func (t *Tables) ClassCount() int { return len(t.classes) }

// StringCount returns the size of the string table.
func (t *Tables) StringCount() int { return len(t.strings) }

// ObjectCount returns the size of the object table.
func (t *Tables) ObjectCount() int { return len(t.objects) }

func checkIndex(table string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: %s index %d, table size %d", errs.ErrInvalidIndex, table, i, n))
	}
}

// Builder assembles Tables, deduplicating classes and strings.
//
// Note: a Builder is NOT thread-safe.
type Builder struct {
	classes     []introspect.Type
	classIndex  map[introspect.Type]int
	strings     []string
	stringIndex map[string]int
	objects     []any
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		classIndex:  make(map[introspect.Type]int),
		stringIndex: make(map[string]int),
	}
}

// AddClass returns the index of c, appending it if needed. A nil class
// yields section.NoData.
func (b *Builder) AddClass(c introspect.Type) int32 {
	if c == nil {
		return section.NoData
	}
	if i, ok := b.classIndex[c]; ok {
		return int32(i) //nolint:gosec
	}

	i := len(b.classes)
	b.classes = append(b.classes, c)
	b.classIndex[c] = i

	return int32(i) //nolint:gosec
}

// AddString returns the index of s, appending it if needed.
func (b *Builder) AddString(s string) int32 {
	if i, ok := b.stringIndex[s]; ok {
		return int32(i) //nolint:gosec
	}

	i := len(b.strings)
	b.strings = append(b.strings, s)
	b.stringIndex[s] = i

	return int32(i) //nolint:gosec
}

// AddObject appends o and returns its index. A nil object yields section.NoData.
func (b *Builder) AddObject(o any) int32 {
	if o == nil {
		return section.NoData
	}

	i := len(b.objects)
	b.objects = append(b.objects, o)

	return int32(i) //nolint:gosec
}

// AddError stores err in the object table and returns its error index.
func (b *Builder) AddError(err error) int32 {
	i := len(b.objects)
	b.objects = append(b.objects, err)

	return section.ErrorIndex(i)
}

// Build returns the assembled Tables.
func (b *Builder) Build() *Tables {
	return New(
		append([]introspect.Type(nil), b.classes...),
		append([]string(nil), b.strings...),
		append([]any(nil), b.objects...),
	)
}

package section

import "fmt"

// IndexKind classifies a signed value read where a side table index or an
// array length is expected.
type IndexKind uint8

const (
	IndexValue  IndexKind = iota // an ordinary table index or length
	IndexAbsent                  // the NoData sentinel
	IndexError                   // a deferred error stored in the object table
)

func (k IndexKind) String() string {
	switch k {
	case IndexValue:
		return "Value"
	case IndexAbsent:
		return "Absent"
	case IndexError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Index is a classified signed index. The error index arithmetic lives only
// in ClassifyIndex and ErrorIndex.
type Index struct {
	kind  IndexKind
	value int
}

// ClassifyIndex classifies a raw encoded value.
func ClassifyIndex(v int32) Index {
	switch {
	case v == NoData:
		return Index{kind: IndexAbsent}
	case v < NoData:
		return Index{kind: IndexError, value: int(FirstErrorIndex) - int(v)}
	default:
		return Index{kind: IndexValue, value: int(v)}
	}
}

// ErrorIndex returns the encoding of the error stored at objectIndex.
func ErrorIndex(objectIndex int) int32 {
	if objectIndex < 0 || int64(objectIndex) > int64(FirstErrorIndex)-(-1<<31) {
		panic(fmt.Sprintf("section: object index %d cannot be encoded as an error index", objectIndex))
	}

	return FirstErrorIndex - int32(objectIndex) //nolint:gosec
}

// Kind returns the classification.
func (i Index) Kind() IndexKind {
	return i.kind
}

// Value returns the table index, the length, or for error indices the
// object table index of the stored error. It is zero for absent indices.
func (i Index) Value() int {
	return i.value
}

// IsAbsent reports whether the index is the NoData sentinel.
func (i Index) IsAbsent() bool {
	return i.kind == IndexAbsent
}

// IsError reports whether the index denotes a deferred error.
func (i Index) IsError() bool {
	return i.kind == IndexError
}

func (i Index) String() string {
	switch i.kind {
	case IndexAbsent:
		return "absent"
	case IndexError:
		return fmt.Sprintf("error(%d)", i.value)
	default:
		return fmt.Sprintf("%d", i.value)
	}
}

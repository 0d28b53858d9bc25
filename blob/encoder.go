package blob

import (
	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
	"github.com/arloliu/rmeta/table"
)

// FieldRecord describes one field record for the Encoder.
type FieldRecord struct {
	Variant   section.Variant
	Modifiers introspect.Modifiers
	Name      string

	// Type is written for complete and hiding records.
	Type            introspect.Type
	TrustedFinal    bool
	Signature       string
	Annotations     []byte
	TypeAnnotations []byte
	Offset          int32
	DeletedReason   string

	// Object is the heap-resident field of a heap record. HeapComplete
	// additionally sets the complete bit, making the field visible to
	// reflective queries.
	Object       *introspect.Field
	HeapComplete bool

	// TypeErr, when set, is stored in place of the type.
	TypeErr error
}

// ExecutableRecord describes one method or constructor record for the Encoder.
type ExecutableRecord struct {
	Variant   section.Variant
	Modifiers introspect.Modifiers
	// Name is ignored for constructors.
	Name string

	// ParameterTypes is written for complete, hiding and negative records,
	// ParameterTypeNames for reachable records. When ParameterTypeNames is
	// empty the names of ParameterTypes are used.
	ParameterTypes     []introspect.Type
	ParameterTypeNames []string
	ReturnType         introspect.Type

	ExceptionTypes       []introspect.Type
	Signature            string
	Annotations          []byte
	ParameterAnnotations []byte
	// AnnotationDefault is written only for methods of annotation types.
	AnnotationDefault []byte
	TypeAnnotations   []byte
	ReflectParameters []byte
	Accessor          any

	Object       *introspect.Executable
	HeapComplete bool

	// ParameterTypesErr, when set, is stored in place of the parameter array length.
	ParameterTypesErr error
}

// RecordComponentRecord describes one record component for the Encoder.
type RecordComponentRecord struct {
	Name            string
	Type            introspect.Type
	Signature       string
	Accessor        any
	Annotations     []byte
	TypeAnnotations []byte
}

// ParameterRecord describes one call-site parameter.
type ParameterRecord struct {
	Name      string
	Modifiers introspect.Modifiers
}

// Encoder writes metadata blobs in the format read by Decoder.
//
// The runtime only decodes; Encoder exists for image builders, tools and
// tests. Side table entries are added to the table.Builder passed at
// creation. Every Write method returns the blob offset of what it wrote,
// which is the index to pass to the matching Decoder Parse method.
//
// Note: an Encoder is NOT thread-safe.
type Encoder struct {
	w      *encoding.Writer
	tables *table.Builder
}

// NewEncoder creates an encoder that registers side table entries in tables.
func NewEncoder(tables *table.Builder) *Encoder {
	return &Encoder{
		w:      encoding.NewWriter(),
		tables: tables,
	}
}

// Offset returns the current blob length.
func (e *Encoder) Offset() int {
	return e.w.Len()
}

// Bytes returns a copy of the blob written so far.
func (e *Encoder) Bytes() []byte {
	return e.w.Bytes()
}

// Reset releases the encoder's buffer. The encoder must not be used afterwards.
func (e *Encoder) Reset() {
	e.w.Reset()
}

// WriteFields writes a fields array.
func (e *Encoder) WriteFields(records []FieldRecord) int {
	start := e.Offset()
	e.writeLength(len(records))

	for i := range records {
		e.writeField(&records[i])
	}

	return start
}

// WriteExecutables writes a methods or constructors array of declaring.
func (e *Encoder) WriteExecutables(declaring introspect.Type, kind introspect.ExecutableKind, records []ExecutableRecord) int {
	start := e.Offset()
	e.writeLength(len(records))

	for i := range records {
		e.writeExecutable(declaring, kind, &records[i])
	}

	return start
}

// WriteRecordComponents writes a record components array.
func (e *Encoder) WriteRecordComponents(records []RecordComponentRecord) int {
	start := e.Offset()
	e.writeLength(len(records))

	for _, r := range records {
		e.w.WriteSV(e.tables.AddString(r.Name))
		e.w.WriteSV(e.tables.AddClass(r.Type))
		e.writeString(r.Signature)
		e.w.WriteSV(e.tables.AddObject(r.Accessor))
		e.writeByteArray(r.Annotations)
		e.writeByteArray(r.TypeAnnotations)
	}

	return start
}

// WriteClasses writes a class array. Nil entries are stored as absent.
func (e *Encoder) WriteClasses(classes []introspect.Type) int {
	start := e.Offset()
	e.writeClassArray(classes)

	return start
}

// WriteObjects writes an object array. Nil entries are stored as absent.
func (e *Encoder) WriteObjects(objects []any) int {
	start := e.Offset()
	e.writeLength(len(objects))

	for _, o := range objects {
		e.w.WriteSV(e.tables.AddObject(o))
	}

	return start
}

// WriteByteArray writes a byte array. A nil slice is stored as absent.
func (e *Encoder) WriteByteArray(b []byte) int {
	start := e.Offset()
	e.writeByteArray(b)

	return start
}

// WriteEnclosingMethod writes an enclosing method link.
func (e *Encoder) WriteEnclosingMethod(declaring introspect.Type, name, descriptor string) int {
	start := e.Offset()
	e.w.WriteSV(e.tables.AddClass(declaring))
	e.w.WriteSV(e.tables.AddString(name))
	e.writeString(descriptor)

	return start
}

// WriteErrorArray writes an error index in place of an array length. Any
// array Parse method reading it returns err.
func (e *Encoder) WriteErrorArray(err error) int {
	start := e.Offset()
	e.w.WriteSV(e.tables.AddError(err))

	return start
}

// EncodeReflectParameters encodes call-site parameters into the bytes stored
// in ExecutableRecord.ReflectParameters.
func (e *Encoder) EncodeReflectParameters(params []ParameterRecord) []byte {
	w := encoding.NewWriter()
	defer w.Reset()

	w.WriteSV(int32(len(params))) //nolint:gosec
	for _, p := range params {
		w.WriteSV(e.stringIndex(p.Name))
		w.WriteSV(int32(uint32(p.Modifiers))) //nolint:gosec
	}

	return w.Bytes()
}

func (e *Encoder) writeField(r *FieldRecord) {
	if r.Variant == section.VariantHeap {
		e.writeHeapFlag(r.Object.Modifiers, r.HeapComplete)
		e.w.WriteSV(e.tables.AddObject(r.Object))

		return
	}

	e.w.WriteUV(uint32(section.NewMemberFlag(uint32(r.Modifiers), r.Variant)))
	e.w.WriteSV(e.tables.AddString(r.Name))

	switch r.Variant {
	case section.VariantComplete:
		e.writeTypeOrError(r.Type, r.TypeErr)
		if r.TrustedFinal {
			e.w.WriteU1(1)
		} else {
			e.w.WriteU1(0)
		}
		e.writeString(r.Signature)
		e.writeByteArray(r.Annotations)
		e.writeByteArray(r.TypeAnnotations)
		e.w.WriteSV(r.Offset)
		e.writeString(r.DeletedReason)
	case section.VariantHiding:
		e.writeTypeOrError(r.Type, r.TypeErr)
	case section.VariantNegative, section.VariantReachable, section.VariantHeap:
	}
}

func (e *Encoder) writeExecutable(declaring introspect.Type, kind introspect.ExecutableKind, r *ExecutableRecord) {
	if r.Variant == section.VariantHeap {
		e.writeHeapFlag(r.Object.Modifiers, r.HeapComplete)
		e.w.WriteSV(e.tables.AddObject(r.Object))

		return
	}

	isMethod := kind == introspect.KindMethod

	e.w.WriteUV(uint32(section.NewMemberFlag(uint32(r.Modifiers), r.Variant)))
	if isMethod {
		e.w.WriteSV(e.tables.AddString(r.Name))
	}

	switch {
	case r.ParameterTypesErr != nil:
		e.w.WriteSV(e.tables.AddError(r.ParameterTypesErr))
	case r.Variant == section.VariantReachable:
		names := r.ParameterTypeNames
		if len(names) == 0 {
			for _, t := range r.ParameterTypes {
				names = append(names, t.Name())
			}
		}
		e.writeLength(len(names))
		for _, n := range names {
			e.w.WriteSV(e.stringIndex(n))
		}
	default:
		e.writeClassArray(r.ParameterTypes)
	}

	if isMethod && (r.Variant == section.VariantComplete || r.Variant == section.VariantHiding) {
		e.w.WriteSV(e.tables.AddClass(r.ReturnType))
	}

	if r.Variant != section.VariantComplete {
		return
	}

	e.writeClassArray(r.ExceptionTypes)
	e.writeString(r.Signature)
	e.writeByteArray(r.Annotations)
	e.writeByteArray(r.ParameterAnnotations)
	if isMethod && declaring != nil && declaring.IsAnnotation() {
		e.writeByteArray(r.AnnotationDefault)
	}
	e.writeByteArray(r.TypeAnnotations)
	e.writeByteArray(r.ReflectParameters)
	e.w.WriteSV(e.tables.AddObject(r.Accessor))
}

func (e *Encoder) writeHeapFlag(modifiers introspect.Modifiers, complete bool) {
	flag := uint32(section.NewMemberFlag(uint32(modifiers.Plain()), section.VariantHeap))
	if complete {
		flag |= section.CompleteMask
	}
	e.w.WriteUV(flag)
}

func (e *Encoder) writeTypeOrError(t introspect.Type, err error) {
	if err != nil {
		e.w.WriteSV(e.tables.AddError(err))
		return
	}
	e.w.WriteSV(e.tables.AddClass(t))
}

func (e *Encoder) writeClassArray(classes []introspect.Type) {
	e.writeLength(len(classes))
	for _, c := range classes {
		e.w.WriteSV(e.tables.AddClass(c))
	}
}

func (e *Encoder) writeLength(n int) {
	e.w.WriteSV(int32(n)) //nolint:gosec
}

// writeString writes an auxiliary string; "" is stored as absent.
func (e *Encoder) writeString(s string) {
	e.w.WriteSV(e.stringIndex(s))
}

func (e *Encoder) stringIndex(s string) int32 {
	if s == "" {
		return section.NoData
	}

	return e.tables.AddString(s)
}

func (e *Encoder) writeByteArray(b []byte) {
	if b == nil {
		e.w.WriteUV(section.NullArrayLength)
		return
	}
	e.w.WriteUV(uint32(len(b))) //nolint:gosec
	e.w.WriteBytes(b)
}

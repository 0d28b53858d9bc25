package blob

import (
	"errors"
	"testing"

	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
	"github.com/arloliu/rmeta/table"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

var (
	pointType  = introspect.NewClass("demo.Point")
	intType    = introspect.NewClass("int")
	stringType = introspect.NewClass("java.lang.String")
	ioErrType  = introspect.NewClass("java.io.IOException")
	markerType = introspect.NewAnnotationClass("demo.Marker")
)

var cmpMembers = []cmp.Option{
	cmp.AllowUnexported(introspect.Field{}, introspect.Executable{}),
	cmpopts.EquateEmpty(),
}

// fixture pairs an Encoder with the table builder it registers entries in.
type fixture struct {
	builder *table.Builder
	enc     *Encoder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	builder := table.NewBuilder()
	enc := NewEncoder(builder)
	t.Cleanup(enc.Reset)

	return &fixture{builder: builder, enc: enc}
}

// decoder builds the side tables and a decoder over everything written so far.
func (f *fixture) decoder(t *testing.T, opts ...DecoderOption) *Decoder {
	t.Helper()

	d, err := NewDecoder(f.enc.Bytes(), f.builder.Build(), opts...)
	require.NoError(t, err)

	return d
}

func fieldNames(fields []*introspect.Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return names
}

func newHeapField(name string, modifiers introspect.Modifiers) *introspect.Field {
	return introspect.DefaultFactory{}.NewField(introspect.FieldSpec{
		DeclaringType: pointType,
		Name:          name,
		Type:          intType,
		Modifiers:     modifiers,
		Offset:        24,
		Complete:      true,
	})
}

func newHeapMethod(name string, modifiers introspect.Modifiers) *introspect.Executable {
	return introspect.DefaultFactory{}.NewExecutable(introspect.ExecutableSpec{
		Kind:           introspect.KindMethod,
		DeclaringType:  pointType,
		Name:           name,
		ParameterTypes: []introspect.Type{intType},
		ReturnType:     stringType,
		Modifiers:      modifiers,
		Accessor:       "accessor:" + name,
		Complete:       true,
	})
}

func TestNewDecoder_Options(t *testing.T) {
	_, err := NewDecoder(nil, table.New(nil, nil, nil), WithFactory(nil))
	require.Error(t, err)

	d, err := NewDecoder([]byte{0}, table.New(nil, nil, nil), WithLogger(nil))
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	require.NotNil(t, d.logger)
}

func TestDecoder_PublicOnlyFields(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "x", Type: intType, Offset: 0},
		{Variant: section.VariantComplete, Modifiers: introspect.Private, Name: "y", Type: intType, Offset: 16},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, true)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, fieldNames(fields))
	require.True(t, fields[0].IsAccessible())
	require.Equal(t, int32(0), fields[0].Offset)

	fields, err = d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, fieldNames(fields))
	require.Equal(t, int32(16), fields[1].Offset)
	require.Equal(t, introspect.Private, fields[1].Modifiers)
	require.True(t, fields[1].IsAccessible())
}

func TestDecoder_PublicOnlyMethodsMasked(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Protected, Name: "hidden", ReturnType: intType},
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "visible", ReturnType: intType},
	})
	d := f.decoder(t)

	methods, err := d.ParseMethods(pointType, off, true)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.Equal(t, "visible", methods[0].Name)
}

func TestDecoder_HeapNonPublicMethodPublicOnly(t *testing.T) {
	method := newHeapMethod("secret", introspect.Private)

	f := newFixture(t)
	off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{
		{Variant: section.VariantHeap, Object: method, HeapComplete: true},
	})
	d := f.decoder(t)

	methods, err := d.ParseMethods(pointType, off, true)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	negative := methods[0]
	require.NotSame(t, method, negative)
	require.True(t, negative.IsNegative())
	require.Same(t, pointType, negative.DeclaringType)
	require.Equal(t, "secret", negative.Name)
	require.True(t, introspect.IsUnknown(negative.ReturnType))
	require.False(t, negative.IsInvocable())

	// Without publicOnly the heap object itself is returned.
	methods, err = d.ParseMethods(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.Same(t, method, methods[0])
	require.True(t, methods[0].IsInvocable())

	descriptors, err := d.ParseReachableMethods(pointType, off)
	require.NoError(t, err)
	require.Equal(t, []introspect.ExecutableDescriptor{{
		Kind:               introspect.KindMethod,
		DeclaringType:      pointType,
		Name:               "secret",
		ParameterTypeNames: []string{"int"},
	}}, descriptors)
}

func TestDecoder_HeapNonPublicFieldPublicOnly(t *testing.T) {
	field := newHeapField("count", introspect.Static)

	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{{Variant: section.VariantHeap, Object: field, HeapComplete: true}})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, true)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.True(t, fields[0].IsNegative())
	require.True(t, introspect.IsUnknown(fields[0].Type))
	require.Equal(t, section.FieldOffsetNone, fields[0].Offset)
	require.False(t, fields[0].IsAccessible())
	require.Equal(t, introspect.Static|introspect.Negative, fields[0].Modifiers)
}

func TestDecoder_AbsentByteArray(t *testing.T) {
	f := newFixture(t)
	absent := f.enc.WriteByteArray(nil)
	empty := f.enc.WriteByteArray([]byte{})
	data := f.enc.WriteByteArray([]byte{0xCA, 0xFE})
	d := f.decoder(t)

	require.Nil(t, d.ParseByteArray(absent))

	got := d.ParseByteArray(empty)
	require.NotNil(t, got)
	require.Empty(t, got)

	require.Equal(t, []byte{0xCA, 0xFE}, d.ParseByteArray(data))
}

func TestDecoder_AbsentAnnotationsOnField(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "a", Type: intType, TypeAnnotations: []byte{}},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Nil(t, fields[0].Annotations)
	require.NotNil(t, fields[0].TypeAnnotations)
	require.Empty(t, fields[0].TypeAnnotations)
}

func TestDecoder_ByteArrayDoesNotAliasBlob(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteByteArray([]byte{1, 2, 3})
	d := f.decoder(t)

	got := d.ParseByteArray(off)
	got[0] = 0xFF
	require.Equal(t, []byte{1, 2, 3}, d.ParseByteArray(off))
}

func TestDecoder_FieldFilteringLaw(t *testing.T) {
	tests := []struct {
		name       string
		record     FieldRecord
		reflective int
		reachable  int
	}{
		{
			name:       "reachable",
			record:     FieldRecord{Variant: section.VariantReachable, Modifiers: introspect.Public, Name: "r"},
			reflective: 0,
			reachable:  1,
		},
		{
			name:       "hiding",
			record:     FieldRecord{Variant: section.VariantHiding, Modifiers: introspect.Public, Name: "h", Type: intType},
			reflective: 1,
			reachable:  0,
		},
		{
			name:       "negative",
			record:     FieldRecord{Variant: section.VariantNegative, Modifiers: introspect.Public, Name: "n"},
			reflective: 1,
			reachable:  0,
		},
		{
			name:       "complete",
			record:     FieldRecord{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "c", Type: intType},
			reflective: 1,
			reachable:  1,
		},
		{
			name:       "heap complete",
			record:     FieldRecord{Variant: section.VariantHeap, Object: newHeapField("hc", introspect.Public), HeapComplete: true},
			reflective: 1,
			reachable:  1,
		},
		{
			name:       "heap reachable only",
			record:     FieldRecord{Variant: section.VariantHeap, Object: newHeapField("hr", introspect.Public)},
			reflective: 0,
			reachable:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			off := f.enc.WriteFields([]FieldRecord{tt.record})
			d := f.decoder(t)

			fields, err := d.ParseFields(pointType, off, false)
			require.NoError(t, err)
			require.Len(t, fields, tt.reflective)

			descriptors, err := d.ParseReachableFields(pointType, off)
			require.NoError(t, err)
			require.Len(t, descriptors, tt.reachable)
		})
	}
}

func TestDecoder_ExecutableFilteringLaw(t *testing.T) {
	tests := []struct {
		name       string
		record     ExecutableRecord
		reflective int
		reachable  int
	}{
		{
			name: "reachable",
			record: ExecutableRecord{
				Variant: section.VariantReachable, Modifiers: introspect.Public, Name: "r",
				ParameterTypeNames: []string{"demo.Missing"},
			},
			reflective: 0,
			reachable:  1,
		},
		{
			name: "hiding",
			record: ExecutableRecord{
				Variant: section.VariantHiding, Modifiers: introspect.Public, Name: "h",
				ParameterTypes: []introspect.Type{intType}, ReturnType: intType,
			},
			reflective: 1,
			reachable:  0,
		},
		{
			name:       "negative",
			record:     ExecutableRecord{Variant: section.VariantNegative, Name: "n", ParameterTypes: []introspect.Type{intType}},
			reflective: 1,
			reachable:  0,
		},
		{
			name:       "complete",
			record:     ExecutableRecord{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "c", ReturnType: intType},
			reflective: 1,
			reachable:  1,
		},
		{
			name:       "heap reachable only",
			record:     ExecutableRecord{Variant: section.VariantHeap, Object: newHeapMethod("hr", introspect.Public)},
			reflective: 0,
			reachable:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{tt.record})
			d := f.decoder(t)

			methods, err := d.ParseMethods(pointType, off, false)
			require.NoError(t, err)
			require.Len(t, methods, tt.reflective)

			descriptors, err := d.ParseReachableMethods(pointType, off)
			require.NoError(t, err)
			require.Len(t, descriptors, tt.reachable)
		})
	}
}

func TestDecoder_PlaceholderFields(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantHiding, Modifiers: introspect.Public | introspect.Static, Name: "h", Type: stringType},
		{Variant: section.VariantNegative, Modifiers: introspect.Public, Name: "n"},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	hiding := fields[0]
	require.True(t, hiding.IsHiding())
	require.Same(t, stringType, hiding.Type)
	require.Equal(t, section.FieldOffsetNone, hiding.Offset)
	require.False(t, hiding.IsAccessible())

	negative := fields[1]
	require.True(t, negative.IsNegative())
	require.True(t, introspect.IsUnknown(negative.Type))
	require.False(t, negative.IsComplete())
}

func TestDecoder_ReachableExecutableDescriptors(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteExecutables(pointType, introspect.KindConstructor, []ExecutableRecord{
		{Variant: section.VariantReachable, ParameterTypeNames: []string{"int", "demo.Missing"}},
		{Variant: section.VariantComplete, Modifiers: introspect.Public, ParameterTypes: []introspect.Type{intType}},
	})
	d := f.decoder(t)

	descriptors, err := d.ParseReachableConstructors(pointType, off)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	require.Equal(t, []string{"int", "demo.Missing"}, descriptors[0].ParameterTypeNames)
	require.Equal(t, introspect.ConstructorName, descriptors[0].MemberName())
	require.Equal(t, []string{"int"}, descriptors[1].ParameterTypeNames)

	constructors, err := d.ParseConstructors(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, constructors, 1)
	require.True(t, constructors[0].IsConstructor())
}

func TestDecoder_FieldRoundTrip(t *testing.T) {
	f := newFixture(t)
	record := FieldRecord{
		Variant:         section.VariantComplete,
		Modifiers:       introspect.Public | introspect.Final,
		Name:            "label",
		Type:            stringType,
		TrustedFinal:    true,
		Signature:       "Ljava/lang/String;",
		Annotations:     []byte{1, 2, 3},
		TypeAnnotations: []byte{4},
		Offset:          40,
		DeletedReason:   "",
	}
	off := f.enc.WriteFields([]FieldRecord{record})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)

	want := []*introspect.Field{introspect.DefaultFactory{}.NewField(introspect.FieldSpec{
		DeclaringType:   pointType,
		Name:            record.Name,
		Type:            record.Type,
		Modifiers:       record.Modifiers,
		TrustedFinal:    record.TrustedFinal,
		Signature:       record.Signature,
		Annotations:     record.Annotations,
		TypeAnnotations: record.TypeAnnotations,
		Offset:          record.Offset,
		Complete:        true,
	})}
	require.Empty(t, cmp.Diff(want, fields, cmpMembers...))

	descriptors, err := d.ParseReachableFields(pointType, off)
	require.NoError(t, err)
	require.Equal(t, []introspect.FieldDescriptor{{DeclaringType: pointType, Name: "label"}}, descriptors)
}

func TestDecoder_DeletedField(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "gone", Type: intType, DeletedReason: "field was substituted"},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "field was substituted", fields[0].DeletedReason)
	require.False(t, fields[0].IsAccessible())
}

func TestDecoder_ExecutableRoundTrip(t *testing.T) {
	f := newFixture(t)
	params := f.enc.EncodeReflectParameters([]ParameterRecord{
		{Name: "value", Modifiers: introspect.Final},
	})
	record := ExecutableRecord{
		Variant:              section.VariantComplete,
		Modifiers:            introspect.Public | introspect.Abstract,
		Name:                 "value",
		ParameterTypes:       []introspect.Type{intType},
		ReturnType:           stringType,
		ExceptionTypes:       []introspect.Type{ioErrType},
		Signature:            "(I)Ljava/lang/String;",
		Annotations:          []byte{9},
		ParameterAnnotations: []byte{8, 7},
		AnnotationDefault:    []byte{6},
		TypeAnnotations:      []byte{5},
		ReflectParameters:    params,
		Accessor:             "accessor:value",
	}
	off := f.enc.WriteExecutables(markerType, introspect.KindMethod, []ExecutableRecord{record})
	d := f.decoder(t)

	methods, err := d.ParseMethods(markerType, off, false)
	require.NoError(t, err)

	want := []*introspect.Executable{introspect.DefaultFactory{}.NewExecutable(introspect.ExecutableSpec{
		Kind:                 introspect.KindMethod,
		DeclaringType:        markerType,
		Name:                 record.Name,
		ParameterTypes:       record.ParameterTypes,
		ReturnType:           record.ReturnType,
		ExceptionTypes:       record.ExceptionTypes,
		Modifiers:            record.Modifiers,
		Signature:            record.Signature,
		Annotations:          record.Annotations,
		ParameterAnnotations: record.ParameterAnnotations,
		AnnotationDefault:    record.AnnotationDefault,
		TypeAnnotations:      record.TypeAnnotations,
		ReflectParameters:    record.ReflectParameters,
		Accessor:             record.Accessor,
		Complete:             true,
	})}
	require.Empty(t, cmp.Diff(want, methods, cmpMembers...))
	require.True(t, methods[0].IsInvocable())

	parameters, err := d.ParseReflectParameters(methods[0])
	require.NoError(t, err)
	require.Len(t, parameters, 1)
	require.Same(t, methods[0], parameters[0].Executable)
	require.Equal(t, 0, parameters[0].Index)
	require.Equal(t, "value", parameters[0].Name)
	require.Equal(t, introspect.Final, parameters[0].Modifiers)
}

func TestDecoder_AnnotationDefaultOnlyForAnnotationTypes(t *testing.T) {
	f := newFixture(t)
	record := ExecutableRecord{
		Variant:           section.VariantComplete,
		Modifiers:         introspect.Public,
		Name:              "size",
		ReturnType:        intType,
		AnnotationDefault: []byte{1},
		TypeAnnotations:   []byte{2},
	}
	off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{record})
	d := f.decoder(t)

	methods, err := d.ParseMethods(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.Nil(t, methods[0].AnnotationDefault)
	require.Equal(t, []byte{2}, methods[0].TypeAnnotations)
}

func TestDecoder_ReflectParameters(t *testing.T) {
	f := newFixture(t)
	params := f.enc.EncodeReflectParameters([]ParameterRecord{
		{Name: "x", Modifiers: introspect.Final},
		{Name: "", Modifiers: introspect.Synthetic},
		{Name: "y"},
	})
	off := f.enc.WriteExecutables(pointType, introspect.KindConstructor, []ExecutableRecord{{
		Variant:           section.VariantComplete,
		Modifiers:         introspect.Public,
		ParameterTypes:    []introspect.Type{intType, intType, intType},
		ReflectParameters: params,
	}})
	d := f.decoder(t)

	constructors, err := d.ParseConstructors(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, constructors, 1)

	parameters, err := d.ParseReflectParameters(constructors[0])
	require.NoError(t, err)
	require.Len(t, parameters, 3)
	for i, p := range parameters {
		require.Equal(t, i, p.Index)
	}
	require.Equal(t, "", parameters[1].Name)
	require.Equal(t, introspect.Synthetic, parameters[1].Modifiers)

	noParams := &introspect.Executable{Kind: introspect.KindConstructor, DeclaringType: pointType}
	parameters, err = d.ParseReflectParameters(noParams)
	require.NoError(t, err)
	require.Nil(t, parameters)
}

func TestDecoder_RecordComponents(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteRecordComponents([]RecordComponentRecord{
		{Name: "x", Type: intType, Accessor: "accessor:x", Annotations: []byte{1}},
		{Name: "label", Type: stringType, Signature: "Ljava/lang/String;"},
	})
	d := f.decoder(t)

	components, err := d.ParseRecordComponents(pointType, off)
	require.NoError(t, err)

	want := []*introspect.RecordComponent{
		{DeclaringType: pointType, Name: "x", Type: intType, Accessor: "accessor:x", Annotations: []byte{1}},
		{DeclaringType: pointType, Name: "label", Type: stringType, Signature: "Ljava/lang/String;"},
	}
	require.Empty(t, cmp.Diff(want, components, cmpMembers...))
}

func TestDecoder_EnclosingMethod(t *testing.T) {
	f := newFixture(t)
	present := f.enc.WriteEnclosingMethod(pointType, "run", "()V")
	absent := f.enc.WriteEnclosingMethod(nil, "run", "()V")
	d := f.decoder(t)

	em, ok, err := d.ParseEnclosingMethod(present)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, introspect.EnclosingMethod{DeclaringType: pointType, Name: "run", Descriptor: "()V"}, em)

	_, ok, err = d.ParseEnclosingMethod(absent)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecoder_ClassAndObjectCompaction(t *testing.T) {
	objA, objB := &struct{ id int }{1}, &struct{ id int }{2}

	f := newFixture(t)
	classes := f.enc.WriteClasses([]introspect.Type{intType, nil, stringType, nil})
	objects := f.enc.WriteObjects([]any{nil, objA, nil, objB})
	empty := f.enc.WriteClasses(nil)
	d := f.decoder(t)

	gotClasses, err := d.ParseClasses(classes)
	require.NoError(t, err)
	require.Equal(t, []introspect.Type{intType, stringType}, gotClasses)

	gotObjects, err := d.ParseObjects(objects)
	require.NoError(t, err)
	require.Len(t, gotObjects, 2)
	require.Same(t, objA, gotObjects[0])
	require.Same(t, objB, gotObjects[1])

	gotClasses, err = d.ParseClasses(empty)
	require.NoError(t, err)
	require.NotNil(t, gotClasses)
	require.Empty(t, gotClasses)
}

func TestDecoder_MixedCompactionPreservesOrder(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantReachable, Name: "r1"},
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "a", Type: intType},
		{Variant: section.VariantReachable, Name: "r2"},
		{Variant: section.VariantHiding, Name: "b", Type: intType},
		{Variant: section.VariantHeap, Object: newHeapField("skip", introspect.Public)},
		{Variant: section.VariantNegative, Name: "c"},
		{Variant: section.VariantReachable, Name: "r3"},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, fieldNames(fields))

	descriptors, err := d.ParseReachableFields(pointType, off)
	require.NoError(t, err)
	names := make([]string, len(descriptors))
	for i, desc := range descriptors {
		names[i] = desc.Name
	}
	require.Equal(t, []string{"r1", "a", "r2", "skip", "r3"}, names)
}

func TestDecoder_ParameterTypeCompaction(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{{
		Variant:        section.VariantComplete,
		Modifiers:      introspect.Public,
		Name:           "m",
		ParameterTypes: []introspect.Type{intType, nil, stringType},
		ReturnType:     intType,
	}})
	d := f.decoder(t)

	methods, err := d.ParseMethods(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	require.Equal(t, []introspect.Type{intType, stringType}, methods[0].ParameterTypes)
}

func TestDecoder_ArrayErrorSkipsElementDecoder(t *testing.T) {
	want := errors.New("class demo.Missing not registered")

	f := newFixture(t)
	f.builder.AddObject("padding")
	f.builder.AddObject("more padding")
	off := f.enc.WriteErrorArray(want)
	d := f.decoder(t)

	called := false
	got, err := decodeArray(d, d.cursor(off), func(*encoding.Cursor) (int, bool, error) {
		called = true
		return 0, true, nil
	})
	require.False(t, called, "element decoder must not run for an error length")
	require.Nil(t, got)
	require.Same(t, want, err)

	// The stored object sits at FirstErrorIndex - length.
	raw := d.cursor(off).ReadSV()
	idx := section.ClassifyIndex(raw)
	require.True(t, idx.IsError())
	require.Equal(t, 2, idx.Value())
	require.Equal(t, int(section.FirstErrorIndex-raw), idx.Value())
}

func TestDecoder_ArrayErrorFromEntryPoints(t *testing.T) {
	want := errors.New("linkage error")

	f := newFixture(t)
	off := f.enc.WriteErrorArray(want)
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, off, false)
	require.Same(t, want, err)
	require.Nil(t, fields)

	_, err = d.ParseReachableMethods(pointType, off)
	require.Same(t, want, err)

	_, err = d.ParseConstructors(pointType, off, true)
	require.Same(t, want, err)

	_, err = d.ParseRecordComponents(pointType, off)
	require.Same(t, want, err)

	_, err = d.ParseClasses(off)
	require.Same(t, want, err)

	_, err = d.ParseObjects(off)
	require.Same(t, want, err)
}

func TestDecoder_ElementErrorDiscardsArray(t *testing.T) {
	typeErr := errors.New("field type not found")
	paramErr := errors.New("parameter type not found")

	f := newFixture(t)
	fieldsOff := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "ok", Type: intType},
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "bad", TypeErr: typeErr},
	})
	methodsOff := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "bad", ParameterTypesErr: paramErr, ReturnType: intType},
	})
	d := f.decoder(t)

	fields, err := d.ParseFields(pointType, fieldsOff, false)
	require.Same(t, typeErr, err)
	require.Nil(t, fields)

	methods, err := d.ParseMethods(pointType, methodsOff, false)
	require.Same(t, paramErr, err)
	require.Nil(t, methods)
}

func TestDecoder_Idempotent(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "x", Type: intType, Annotations: []byte{1}},
		{Variant: section.VariantHiding, Name: "y", Type: stringType},
	})
	d := f.decoder(t)

	first, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	second, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(first, second, cmpMembers...))
	require.NotSame(t, first[0], second[0])
	require.Equal(t, first[0].Name, second[0].Name)
}

func TestDecoder_ConcurrentParse(t *testing.T) {
	f := newFixture(t)
	off := f.enc.WriteExecutables(pointType, introspect.KindMethod, []ExecutableRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "a", ReturnType: intType, ParameterTypes: []introspect.Type{stringType}},
		{Variant: section.VariantNegative, Name: "b"},
		{Variant: section.VariantReachable, Name: "c", ParameterTypeNames: []string{"int"}},
	})
	d := f.decoder(t)

	want, err := d.ParseMethods(pointType, off, false)
	require.NoError(t, err)

	const workers = 16
	results := make([][]*introspect.Executable, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			methods, err := d.ParseMethods(pointType, off, false)
			if err != nil {
				return err
			}
			results[i] = methods

			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < workers; i++ {
		require.Empty(t, cmp.Diff(want, results[i], cmpMembers...))
	}
}

func TestDecoder_CustomFactory(t *testing.T) {
	factory := &countingFactory{}

	f := newFixture(t)
	off := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantComplete, Modifiers: introspect.Public, Name: "a", Type: intType},
		{Variant: section.VariantNegative, Name: "b"},
	})
	d := f.decoder(t, WithFactory(factory))

	fields, err := d.ParseFields(pointType, off, false)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	require.Equal(t, 2, factory.fields)
}

func TestDecoder_DebugLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	want := errors.New("deferred")

	f := newFixture(t)
	fieldsOff := f.enc.WriteFields([]FieldRecord{
		{Variant: section.VariantReachable, Name: "r"},
		{Variant: section.VariantComplete, Modifiers: introspect.Private, Name: "p", Type: intType},
	})
	errOff := f.enc.WriteErrorArray(want)
	d := f.decoder(t, WithLogger(zap.New(core)))

	fields, err := d.ParseFields(pointType, fieldsOff, true)
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, 1, logs.FilterMessage("metadata record filtered").Len())
	require.Equal(t, 1, logs.FilterMessage("non-public metadata record masked").Len())

	_, err = d.ParseClasses(errOff)
	require.Same(t, want, err)

	entries := logs.FilterMessage("raising deferred metadata error").All()
	require.Len(t, entries, 1)
	require.Equal(t, "deferred", entries[0].ContextMap()["error"])
}

type countingFactory struct {
	introspect.DefaultFactory
	fields int
}

func (c *countingFactory) NewField(spec introspect.FieldSpec) *introspect.Field {
	c.fields++
	return c.DefaultFactory.NewField(spec)
}

package introspect

import (
	"fmt"

	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/section"
)

// FieldSpec carries the decoded scalar fields of a field record.
type FieldSpec struct {
	DeclaringType   Type
	Name            string
	Type            Type
	Modifiers       Modifiers
	TrustedFinal    bool
	Signature       string
	Annotations     []byte
	TypeAnnotations []byte
	Offset          int32
	DeletedReason   string
	// Complete is set for fields decoded from a complete record.
	Complete bool
}

// ExecutableSpec carries the decoded scalar fields of an executable record.
type ExecutableSpec struct {
	Kind                 ExecutableKind
	DeclaringType        Type
	Name                 string
	ParameterTypes       []Type
	ReturnType           Type
	ExceptionTypes       []Type
	Modifiers            Modifiers
	Signature            string
	Annotations          []byte
	ParameterAnnotations []byte
	AnnotationDefault    []byte
	TypeAnnotations      []byte
	ReflectParameters    []byte
	Accessor             any
	Complete             bool
}

// RecordComponentSpec carries the decoded fields of a record component.
type RecordComponentSpec struct {
	DeclaringType   Type
	Name            string
	Type            Type
	Signature       string
	Accessor        any
	Annotations     []byte
	TypeAnnotations []byte
}

// DefaultFactory builds the objects of this package.
//
// Every constructor checks the fields its record variant requires and panics
// with an error wrapping errs.ErrMissingField when one is missing. A missing
// field means the encoder emitted a record the decoder cannot represent.
type DefaultFactory struct{}

// NewField builds a field. Negative placeholders carry the Unknown type.
func (DefaultFactory) NewField(spec FieldSpec) *Field {
	requireDeclaring(spec.DeclaringType, "field")
	if spec.Name == "" {
		missing("field", "name")
	}
	if spec.Type == nil {
		missing("field "+spec.Name, "type")
	}

	offset := spec.Offset
	if !spec.Complete {
		offset = section.FieldOffsetNone
	}

	return &Field{
		DeclaringType:   spec.DeclaringType,
		Name:            spec.Name,
		Type:            spec.Type,
		Modifiers:       spec.Modifiers,
		TrustedFinal:    spec.TrustedFinal,
		Signature:       spec.Signature,
		Annotations:     spec.Annotations,
		TypeAnnotations: spec.TypeAnnotations,
		Offset:          offset,
		DeletedReason:   spec.DeletedReason,
		complete:        spec.Complete,
	}
}

// NewExecutable builds a method or constructor. Methods need a name and a
// return type; negative methods use Unknown as their return type.
func (DefaultFactory) NewExecutable(spec ExecutableSpec) *Executable {
	what := spec.Kind.String()
	requireDeclaring(spec.DeclaringType, what)

	if spec.Kind == KindMethod {
		if spec.Name == "" {
			missing(what, "name")
		}
		if spec.ReturnType == nil {
			missing("method "+spec.Name, "return type")
		}
	}

	for i, t := range spec.ParameterTypes {
		if t == nil {
			missing(what, fmt.Sprintf("parameter type %d", i))
		}
	}

	return &Executable{
		Kind:                 spec.Kind,
		DeclaringType:        spec.DeclaringType,
		Name:                 spec.Name,
		ParameterTypes:       spec.ParameterTypes,
		ReturnType:           spec.ReturnType,
		ExceptionTypes:       spec.ExceptionTypes,
		Modifiers:            spec.Modifiers,
		Signature:            spec.Signature,
		Annotations:          spec.Annotations,
		ParameterAnnotations: spec.ParameterAnnotations,
		AnnotationDefault:    spec.AnnotationDefault,
		TypeAnnotations:      spec.TypeAnnotations,
		ReflectParameters:    spec.ReflectParameters,
		Accessor:             spec.Accessor,
		complete:             spec.Complete,
	}
}

// NewNegativeField derives a negative copy of a heap field: declaring type and
// name are kept, the type is blanked and the negative bit is set.
func (f DefaultFactory) NewNegativeField(field *Field) *Field {
	return f.NewField(FieldSpec{
		DeclaringType: field.DeclaringType,
		Name:          field.Name,
		Type:          Unknown,
		Modifiers:     field.Modifiers | Negative,
		Offset:        section.FieldOffsetNone,
	})
}

// NewNegativeExecutable derives a negative copy of a heap executable.
func (f DefaultFactory) NewNegativeExecutable(exec *Executable) *Executable {
	var ret Type
	if exec.Kind == KindMethod {
		ret = Unknown
	}

	return f.NewExecutable(ExecutableSpec{
		Kind:           exec.Kind,
		DeclaringType:  exec.DeclaringType,
		Name:           exec.Name,
		ParameterTypes: exec.ParameterTypes,
		ReturnType:     ret,
		Modifiers:      exec.Modifiers | Negative,
	})
}

// NewFieldDescriptor builds a reachability descriptor for a field.
func (DefaultFactory) NewFieldDescriptor(declaring Type, name string) FieldDescriptor {
	requireDeclaring(declaring, "field descriptor")
	if name == "" {
		missing("field descriptor", "name")
	}

	return FieldDescriptor{DeclaringType: declaring, Name: name}
}

// NewExecutableDescriptor builds a reachability descriptor for an executable.
func (DefaultFactory) NewExecutableDescriptor(kind ExecutableKind, declaring Type, name string, parameterTypeNames []string) ExecutableDescriptor {
	requireDeclaring(declaring, kind.String()+" descriptor")
	if kind == KindMethod && name == "" {
		missing("method descriptor", "name")
	}

	return ExecutableDescriptor{
		Kind:               kind,
		DeclaringType:      declaring,
		Name:               name,
		ParameterTypeNames: parameterTypeNames,
	}
}

// NewRecordComponent builds a record component.
func (DefaultFactory) NewRecordComponent(spec RecordComponentSpec) *RecordComponent {
	requireDeclaring(spec.DeclaringType, "record component")
	if spec.Name == "" {
		missing("record component", "name")
	}
	if spec.Type == nil {
		missing("record component "+spec.Name, "type")
	}

	return &RecordComponent{
		DeclaringType:   spec.DeclaringType,
		Name:            spec.Name,
		Type:            spec.Type,
		Signature:       spec.Signature,
		Accessor:        spec.Accessor,
		Annotations:     spec.Annotations,
		TypeAnnotations: spec.TypeAnnotations,
	}
}

// NewParameter builds the index-th parameter of exec.
func (DefaultFactory) NewParameter(exec *Executable, index int, name string, modifiers Modifiers) *Parameter {
	if exec == nil {
		missing("parameter", "executable")
	}

	return &Parameter{Executable: exec, Index: index, Name: name, Modifiers: modifiers}
}

func requireDeclaring(t Type, what string) {
	if t == nil {
		missing(what, "declaring type")
	}
}

func missing(what, field string) {
	panic(fmt.Errorf("%w: %s requires %s", errs.ErrMissingField, what, field))
}

package introspect

// Field is a decoded field.
type Field struct {
	DeclaringType   Type
	Name            string
	Type            Type
	Modifiers       Modifiers
	TrustedFinal    bool
	Signature       string
	Annotations     []byte
	TypeAnnotations []byte
	// Offset is the static offset of the field, or section.FieldOffsetNone.
	Offset        int32
	DeletedReason string

	complete bool
}

func (f *Field) Declaring() Type    { return f.DeclaringType }
func (f *Field) MemberName() string { return f.Name }

// IsNegative reports whether the field is a negative placeholder.
func (f *Field) IsNegative() bool { return f.Modifiers.IsNegative() }

// IsHiding reports whether the field is a hiding placeholder.
func (f *Field) IsHiding() bool { return f.Modifiers.IsHiding() }

// IsComplete reports whether the field was built from a complete record.
func (f *Field) IsComplete() bool { return f.complete }

// IsAccessible reports whether the field supports reflective access.
func (f *Field) IsAccessible() bool {
	return f.complete && !f.IsNegative() && f.DeletedReason == ""
}

// Descriptor returns the reachability descriptor of the field.
func (f *Field) Descriptor() FieldDescriptor {
	return FieldDescriptor{DeclaringType: f.DeclaringType, Name: f.Name}
}

// Executable is a decoded method or constructor.
type Executable struct {
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
	// ReflectParameters is the encoded parameter array, see blob.Decoder.ParseReflectParameters.
	ReflectParameters []byte
	Accessor          any

	complete bool
}

func (e *Executable) Declaring() Type { return e.DeclaringType }

func (e *Executable) MemberName() string {
	if e.Kind == KindConstructor {
		return ConstructorName
	}

	return e.Name
}

// IsMethod reports whether e is a method.
func (e *Executable) IsMethod() bool { return e.Kind == KindMethod }

// IsConstructor reports whether e is a constructor.
func (e *Executable) IsConstructor() bool { return e.Kind == KindConstructor }

// IsNegative reports whether e is a negative placeholder.
func (e *Executable) IsNegative() bool { return e.Modifiers.IsNegative() }

// IsHiding reports whether e is a hiding placeholder.
func (e *Executable) IsHiding() bool { return e.Modifiers.IsHiding() }

// IsComplete reports whether e was built from a complete record.
func (e *Executable) IsComplete() bool { return e.complete }

// IsInvocable reports whether e can be invoked reflectively.
func (e *Executable) IsInvocable() bool {
	return e.complete && !e.IsNegative() && e.Accessor != nil
}

// Descriptor returns the reachability descriptor of e.
func (e *Executable) Descriptor() ExecutableDescriptor {
	names := make([]string, len(e.ParameterTypes))
	for i, t := range e.ParameterTypes {
		names[i] = t.Name()
	}

	return ExecutableDescriptor{
		Kind:               e.Kind,
		DeclaringType:      e.DeclaringType,
		Name:               e.Name,
		ParameterTypeNames: names,
	}
}

// FieldDescriptor records that a field exists without supporting introspection.
type FieldDescriptor struct {
	DeclaringType Type
	Name          string
}

func (d FieldDescriptor) Declaring() Type    { return d.DeclaringType }
func (d FieldDescriptor) MemberName() string { return d.Name }

// ExecutableDescriptor records that a method or constructor exists without
// supporting introspection. Parameter types are kept as names because the
// types themselves may not be present in the image.
type ExecutableDescriptor struct {
	Kind               ExecutableKind
	DeclaringType      Type
	Name               string
	ParameterTypeNames []string
}

func (d ExecutableDescriptor) Declaring() Type { return d.DeclaringType }

func (d ExecutableDescriptor) MemberName() string {
	if d.Kind == KindConstructor {
		return ConstructorName
	}

	return d.Name
}

// RecordComponent is a decoded record component.
type RecordComponent struct {
	DeclaringType   Type
	Name            string
	Type            Type
	Signature       string
	Accessor        any
	Annotations     []byte
	TypeAnnotations []byte
}

func (r *RecordComponent) Declaring() Type    { return r.DeclaringType }
func (r *RecordComponent) MemberName() string { return r.Name }

// Parameter is a decoded call-site parameter of an executable.
type Parameter struct {
	Executable *Executable
	Index      int
	Name       string
	Modifiers  Modifiers
}

// EnclosingMethod links a local or anonymous type to the method enclosing it.
type EnclosingMethod struct {
	DeclaringType Type
	Name          string
	Descriptor    string
}

var (
	_ Member = (*Field)(nil)
	_ Member = (*Executable)(nil)
	_ Member = FieldDescriptor{}
	_ Member = ExecutableDescriptor{}
	_ Member = (*RecordComponent)(nil)
)

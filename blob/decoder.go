package blob

import (
	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/format"
	"github.com/arloliu/rmeta/internal/options"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
	"go.uber.org/zap"
)

// Accessor resolves side table indices. Implementations must be safe for
// concurrent use; table.Tables is the in-memory implementation.
type Accessor interface {
	// Class returns the type at index i, or nil when the type is not in the image.
	Class(i int) introspect.Type
	// String returns the string at index i, interned.
	String(i int) string
	// Object returns the heap object at index i.
	Object(i int) any
}

// Factory builds introspection objects from decoded scalar fields.
// introspect.DefaultFactory is the default implementation.
type Factory interface {
	NewField(spec introspect.FieldSpec) *introspect.Field
	NewNegativeField(field *introspect.Field) *introspect.Field
	NewExecutable(spec introspect.ExecutableSpec) *introspect.Executable
	NewNegativeExecutable(exec *introspect.Executable) *introspect.Executable
	NewFieldDescriptor(declaring introspect.Type, name string) introspect.FieldDescriptor
	NewExecutableDescriptor(kind introspect.ExecutableKind, declaring introspect.Type, name string, parameterTypeNames []string) introspect.ExecutableDescriptor
	NewRecordComponent(spec introspect.RecordComponentSpec) *introspect.RecordComponent
	NewParameter(exec *introspect.Executable, index int, name string, modifiers introspect.Modifiers) *introspect.Parameter
}

// Decoder reconstructs introspection objects from a metadata blob.
//
// A Decoder is immutable after creation and safe for concurrent use: every
// Parse call reads through its own Cursor and allocates only its result.
// Nothing is cached; callers that decode the same offset repeatedly should
// cache the results themselves.
//
// Errors returned by Parse methods are deferred errors: errors the encoder
// stored in the object table because a lookup must fail at run time. They are
// returned unchanged. Format mismatches between encoder and decoder panic.
type Decoder struct {
	data    []byte
	tables  Accessor
	factory Factory
	logger  *zap.Logger
}

// NewDecoder creates a decoder over blob data with the given side tables.
//
// Parameters:
//   - data: The metadata blob (see DecodeSection for loading it from a section)
//   - tables: Side table accessor
//   - opts: Optional configuration (WithFactory, WithLogger)
//
// Returns:
//   - *Decoder: The decoder
//   - error: An option error
func NewDecoder(data []byte, tables Accessor, opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		data:    data,
		tables:  tables,
		factory: introspect.DefaultFactory{},
		logger:  Logger(),
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Len returns the blob size in bytes.
func (d *Decoder) Len() int {
	return len(d.data)
}

func (d *Decoder) cursor(index int) *encoding.Cursor {
	return encoding.NewCursor(d.data, index)
}

// ParseFields decodes the fields array at index for reflective use.
//
// With publicOnly, non-public fields stored in the blob are left out and
// non-public heap fields come back as negative copies, which are not
// accessible.
func (d *Decoder) ParseFields(declaring introspect.Type, index int, publicOnly bool) ([]*introspect.Field, error) {
	c := d.cursor(index)

	return decodeArray(d, c, func(c *encoding.Cursor) (*introspect.Field, bool, error) {
		m, ok, err := d.decodeField(c, declaring, publicOnly, section.PolicyReflective)
		if !ok || err != nil {
			return nil, ok, err
		}

		return m.(*introspect.Field), true, nil
	})
}

// ParseReachableFields decodes the fields array at index for reachability queries.
func (d *Decoder) ParseReachableFields(declaring introspect.Type, index int) ([]introspect.FieldDescriptor, error) {
	c := d.cursor(index)

	return decodeArray(d, c, func(c *encoding.Cursor) (introspect.FieldDescriptor, bool, error) {
		m, ok, err := d.decodeField(c, declaring, false, section.PolicyReachability)
		if !ok || err != nil {
			return introspect.FieldDescriptor{}, ok, err
		}

		return m.(introspect.FieldDescriptor), true, nil
	})
}

// ParseMethods decodes the methods array at index for reflective use.
func (d *Decoder) ParseMethods(declaring introspect.Type, index int, publicOnly bool) ([]*introspect.Executable, error) {
	return d.parseExecutables(introspect.KindMethod, declaring, index, publicOnly)
}

// ParseReachableMethods decodes the methods array at index for reachability queries.
func (d *Decoder) ParseReachableMethods(declaring introspect.Type, index int) ([]introspect.ExecutableDescriptor, error) {
	return d.parseReachableExecutables(introspect.KindMethod, declaring, index)
}

// ParseConstructors decodes the constructors array at index for reflective use.
func (d *Decoder) ParseConstructors(declaring introspect.Type, index int, publicOnly bool) ([]*introspect.Executable, error) {
	return d.parseExecutables(introspect.KindConstructor, declaring, index, publicOnly)
}

// ParseReachableConstructors decodes the constructors array at index for reachability queries.
func (d *Decoder) ParseReachableConstructors(declaring introspect.Type, index int) ([]introspect.ExecutableDescriptor, error) {
	return d.parseReachableExecutables(introspect.KindConstructor, declaring, index)
}

func (d *Decoder) parseExecutables(kind introspect.ExecutableKind, declaring introspect.Type, index int, publicOnly bool) ([]*introspect.Executable, error) {
	c := d.cursor(index)

	return decodeArray(d, c, func(c *encoding.Cursor) (*introspect.Executable, bool, error) {
		m, ok, err := d.decodeExecutable(c, kind, declaring, publicOnly, section.PolicyReflective)
		if !ok || err != nil {
			return nil, ok, err
		}

		return m.(*introspect.Executable), true, nil
	})
}

func (d *Decoder) parseReachableExecutables(kind introspect.ExecutableKind, declaring introspect.Type, index int) ([]introspect.ExecutableDescriptor, error) {
	c := d.cursor(index)

	return decodeArray(d, c, func(c *encoding.Cursor) (introspect.ExecutableDescriptor, bool, error) {
		m, ok, err := d.decodeExecutable(c, kind, declaring, false, section.PolicyReachability)
		if !ok || err != nil {
			return introspect.ExecutableDescriptor{}, ok, err
		}

		return m.(introspect.ExecutableDescriptor), true, nil
	})
}

// ParseRecordComponents decodes the record components array at index.
func (d *Decoder) ParseRecordComponents(declaring introspect.Type, index int) ([]*introspect.RecordComponent, error) {
	c := d.cursor(index)

	return decodeArray(d, c, func(c *encoding.Cursor) (*introspect.RecordComponent, bool, error) {
		rc, err := d.decodeRecordComponent(c, declaring)
		if err != nil {
			return nil, false, err
		}

		return rc, true, nil
	})
}

// ParseClasses decodes a class array at index. Classes missing from the
// image are dropped.
func (d *Decoder) ParseClasses(index int) ([]introspect.Type, error) {
	return decodeArray(d, d.cursor(index), d.decodeTypeElement)
}

// ParseObjects decodes an object array at index. Absent objects are dropped.
func (d *Decoder) ParseObjects(index int) ([]any, error) {
	return decodeArray(d, d.cursor(index), func(c *encoding.Cursor) (any, bool, error) {
		obj, err := d.decodeObject(c)
		if err != nil {
			return nil, false, err
		}

		return obj, obj != nil, nil
	})
}

// ParseByteArray decodes the byte array at index. It returns nil for an
// absent array and a non-nil empty slice for an empty one.
func (d *Decoder) ParseByteArray(index int) []byte {
	return d.decodeByteArray(d.cursor(index))
}

// ParseReflectParameters decodes the call-site parameters stored in the
// ReflectParameters bytes of exec. It returns nil when none were recorded.
func (d *Decoder) ParseReflectParameters(exec *introspect.Executable) ([]*introspect.Parameter, error) {
	if exec.ReflectParameters == nil {
		return nil, nil
	}

	c := encoding.NewCursor(exec.ReflectParameters, 0)
	position := 0

	return decodeArray(d, c, func(c *encoding.Cursor) (*introspect.Parameter, bool, error) {
		name, err := d.decodeString(c)
		if err != nil {
			return nil, false, err
		}
		modifiers := introspect.Modifiers(uint32(c.ReadSV())) //nolint:gosec

		p := d.factory.NewParameter(exec, position, name, modifiers)
		position++

		return p, true, nil
	})
}

// ParseEnclosingMethod decodes the enclosing method link at index. The
// boolean result is false when the enclosing class is not in the image.
func (d *Decoder) ParseEnclosingMethod(index int) (introspect.EnclosingMethod, bool, error) {
	c := d.cursor(index)

	declaring, err := d.decodeType(c)
	if err != nil {
		return introspect.EnclosingMethod{}, false, err
	}
	if declaring == nil {
		return introspect.EnclosingMethod{}, false, nil
	}

	name, _, err := d.decodeName(c)
	if err != nil {
		return introspect.EnclosingMethod{}, false, err
	}

	descriptor, err := d.decodeString(c)
	if err != nil {
		return introspect.EnclosingMethod{}, false, err
	}

	return introspect.EnclosingMethod{DeclaringType: declaring, Name: name, Descriptor: descriptor}, true, nil
}

// logFiltered records a dropped record at debug level.
func (d *Decoder) logFiltered(kind format.EntityKind, variant section.Variant, policy section.Policy) {
	if ce := d.logger.Check(zap.DebugLevel, "metadata record filtered"); ce != nil {
		ce.Write(
			zap.Stringer("kind", kind),
			zap.Stringer("variant", variant),
			zap.Stringer("policy", policy),
		)
	}
}

// logMasked records a non-public complete record dropped from a public-only query.
func (d *Decoder) logMasked(kind format.EntityKind, name string) {
	if ce := d.logger.Check(zap.DebugLevel, "non-public metadata record masked"); ce != nil {
		ce.Write(zap.Stringer("kind", kind), zap.String("name", name))
	}
}

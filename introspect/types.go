// Package introspect defines the introspection objects produced by the metadata
// decoder: fields, methods, constructors, record components, parameters and
// their reachability descriptors.
//
// Objects are created through a Factory so that the decoder's construction
// contracts (which fields each record variant must carry) are checked in one
// place. DefaultFactory is the implementation used unless a decoder is
// configured otherwise.
package introspect

import (
	"strings"

	"github.com/arloliu/rmeta/section"
)

// Type is a runtime type reference resolved from the class side table.
type Type interface {
	// Name returns the fully qualified type name.
	Name() string
	// IsAnnotation reports whether the type is an annotation interface.
	IsAnnotation() bool
}

// Unknown is the blank type placeholder stored in negative records in place
// of a real type reference.
var Unknown Type = unknownType{}

type unknownType struct{}

func (unknownType) Name() string       { return "<unknown>" }
func (unknownType) IsAnnotation() bool { return false }

// IsUnknown reports whether t is the Unknown placeholder.
func IsUnknown(t Type) bool {
	_, ok := t.(unknownType)
	return ok
}

// Class is a plain Type implementation used by in-memory side tables.
type Class struct {
	TypeName   string
	Annotation bool
}

// NewClass creates a Class.
func NewClass(name string) *Class {
	return &Class{TypeName: name}
}

// NewAnnotationClass creates a Class describing an annotation interface.
func NewAnnotationClass(name string) *Class {
	return &Class{TypeName: name, Annotation: true}
}

// Name implements Type.
func (c *Class) Name() string { return c.TypeName }

// IsAnnotation implements Type.
func (c *Class) IsAnnotation() bool { return c.Annotation }

func (c *Class) String() string { return c.TypeName }

// Modifiers is a member's modifier word. Bits 0-27 use the usual access and
// property flag values; the hiding and negative record bits stay set on
// placeholder objects.
type Modifiers uint32

const (
	Public       Modifiers = 0x0001
	Private      Modifiers = 0x0002
	Protected    Modifiers = 0x0004
	Static       Modifiers = 0x0008
	Final        Modifiers = 0x0010
	Synchronized Modifiers = 0x0020
	Volatile     Modifiers = 0x0040
	Transient    Modifiers = 0x0080
	Native       Modifiers = 0x0100
	Interface    Modifiers = 0x0200
	Abstract     Modifiers = 0x0400
	Strict       Modifiers = 0x0800
	Synthetic    Modifiers = 0x1000

	Negative = Modifiers(section.NegativeMask)
	Hiding   = Modifiers(section.HidingMask)
)

var modifierNames = []struct {
	bit  Modifiers
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Strict, "strictfp"},
	{Interface, "interface"},
}

// IsPublic reports whether the public bit is set.
func (m Modifiers) IsPublic() bool { return m&Public != 0 }

// IsStatic reports whether the static bit is set.
func (m Modifiers) IsStatic() bool { return m&Static != 0 }

// IsFinal reports whether the final bit is set.
func (m Modifiers) IsFinal() bool { return m&Final != 0 }

// IsNegative reports whether the modifiers belong to a negative record.
func (m Modifiers) IsNegative() bool { return m&Negative != 0 }

// IsHiding reports whether the modifiers belong to a hiding record.
func (m Modifiers) IsHiding() bool { return m&Hiding != 0 }

// Plain returns the modifiers without record variant bits.
func (m Modifiers) Plain() Modifiers {
	return m & Modifiers(section.ModifierMask)
}

func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.bit != 0 {
			parts = append(parts, mn.name)
		}
	}

	return strings.Join(parts, " ")
}

// ExecutableKind tells methods and constructors apart.
type ExecutableKind uint8

const (
	KindMethod ExecutableKind = iota
	KindConstructor
)

func (k ExecutableKind) String() string {
	if k == KindConstructor {
		return "constructor"
	}

	return "method"
}

// Member is implemented by every object the member decoders produce.
type Member interface {
	// Declaring returns the type declaring the member.
	Declaring() Type
	// MemberName returns the member name; constructors return "<init>".
	MemberName() string
}

// ConstructorName is the member name reported for constructors.
const ConstructorName = "<init>"

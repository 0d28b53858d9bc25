package blob

import (
	"fmt"

	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/format"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
)

func entityKind(kind introspect.ExecutableKind) format.EntityKind {
	if kind == introspect.KindConstructor {
		return format.EntityConstructor
	}

	return format.EntityMethod
}

// decodeExecutable decodes one method or constructor record. The kind is
// fixed by the caller; only methods carry a name and a return type.
//
// The result is a *introspect.Executable for PolicyReflective and an
// introspect.ExecutableDescriptor for PolicyReachability.
func (d *Decoder) decodeExecutable(c *encoding.Cursor, kind introspect.ExecutableKind, declaring introspect.Type, publicOnly bool, policy section.Policy) (introspect.Member, bool, error) {
	flag, variant := readMemberFlag(c)

	if variant == section.VariantHeap {
		return d.decodeHeapExecutable(c, kind, flag, publicOnly, policy)
	}

	isMethod := kind == introspect.KindMethod
	modifiers := introspect.Modifiers(flag.Modifiers())

	var name string
	if isMethod {
		var err error
		if name, _, err = d.decodeName(c); err != nil {
			return nil, false, err
		}
	}

	// Reachable-only records carry parameter type names because the
	// parameter classes themselves may not be in the image.
	var (
		parameterTypes []introspect.Type
		parameterNames []string
		err            error
	)
	if variant == section.VariantReachable {
		parameterNames, err = decodeArray(d, c, d.decodeStringElement)
	} else {
		parameterTypes, err = decodeArray(d, c, d.decodeTypeElement)
	}
	if err != nil {
		return nil, false, err
	}

	var returnType introspect.Type
	if isMethod && (variant == section.VariantComplete || variant == section.VariantHiding) {
		if returnType, err = d.decodeType(c); err != nil {
			return nil, false, err
		}
	}

	switch variant {
	case section.VariantComplete:
		return d.decodeCompleteExecutable(c, kind, declaring, name, modifiers, parameterTypes, returnType, publicOnly, policy)

	case section.VariantHiding, section.VariantNegative, section.VariantReachable:
		if !policy.Admits(variant) {
			d.logFiltered(entityKind(kind), variant, policy)
			return nil, false, nil
		}

		if policy == section.PolicyReachability {
			return d.factory.NewExecutableDescriptor(kind, declaring, name, parameterNames), true, nil
		}

		if variant == section.VariantNegative && isMethod {
			returnType = introspect.Unknown
		}

		return d.factory.NewExecutable(introspect.ExecutableSpec{
			Kind:           kind,
			DeclaringType:  declaring,
			Name:           name,
			ParameterTypes: parameterTypes,
			ReturnType:     returnType,
			Modifiers:      modifiers,
		}), true, nil

	case section.VariantHeap:
	}

	panic(fmt.Errorf("%w: unhandled %s variant %s", errs.ErrInvalidMemberFlag, kind, variant))
}

func (d *Decoder) decodeHeapExecutable(c *encoding.Cursor, kind introspect.ExecutableKind, flag section.MemberFlag, publicOnly bool, policy section.Policy) (introspect.Member, bool, error) {
	obj, err := d.decodeObject(c)
	if err != nil {
		return nil, false, err
	}

	exec, ok := obj.(*introspect.Executable)
	if !ok || exec.Kind != kind {
		panic(fmt.Errorf("%w: expected %s, got %T", errs.ErrUnexpectedObject, kind, obj))
	}

	if publicOnly && !exec.Modifiers.IsPublic() {
		exec = d.factory.NewNegativeExecutable(exec)
	}

	if policy == section.PolicyReachability {
		desc := exec.Descriptor()
		return d.factory.NewExecutableDescriptor(kind, desc.DeclaringType, desc.Name, desc.ParameterTypeNames), true, nil
	}

	if !flag.IsComplete() {
		d.logFiltered(entityKind(kind), section.VariantHeap, policy)
		return nil, false, nil
	}

	return exec, true, nil
}

func (d *Decoder) decodeCompleteExecutable(
	c *encoding.Cursor,
	kind introspect.ExecutableKind,
	declaring introspect.Type,
	name string,
	modifiers introspect.Modifiers,
	parameterTypes []introspect.Type,
	returnType introspect.Type,
	publicOnly bool,
	policy section.Policy,
) (introspect.Member, bool, error) {
	exceptionTypes, err := decodeArray(d, c, d.decodeTypeElement)
	if err != nil {
		return nil, false, err
	}

	signature, err := d.decodeString(c)
	if err != nil {
		return nil, false, err
	}

	annotations := d.decodeByteArray(c)
	parameterAnnotations := d.decodeByteArray(c)

	var annotationDefault []byte
	if kind == introspect.KindMethod && declaring != nil && declaring.IsAnnotation() {
		annotationDefault = d.decodeByteArray(c)
	}

	typeAnnotations := d.decodeByteArray(c)
	reflectParameters := d.decodeByteArray(c)

	accessor, err := d.decodeObject(c)
	if err != nil {
		return nil, false, err
	}

	masked := publicOnly && !modifiers.IsPublic()
	if masked {
		modifiers |= introspect.Negative
	}

	exec := d.factory.NewExecutable(introspect.ExecutableSpec{
		Kind:                 kind,
		DeclaringType:        declaring,
		Name:                 name,
		ParameterTypes:       parameterTypes,
		ReturnType:           returnType,
		ExceptionTypes:       exceptionTypes,
		Modifiers:            modifiers,
		Signature:            signature,
		Annotations:          annotations,
		ParameterAnnotations: parameterAnnotations,
		AnnotationDefault:    annotationDefault,
		TypeAnnotations:      typeAnnotations,
		ReflectParameters:    reflectParameters,
		Accessor:             accessor,
		Complete:             true,
	})

	if policy == section.PolicyReachability {
		desc := exec.Descriptor()
		return d.factory.NewExecutableDescriptor(kind, desc.DeclaringType, desc.Name, desc.ParameterTypeNames), true, nil
	}

	if masked {
		d.logMasked(entityKind(kind), exec.Name)
		return nil, false, nil
	}

	return exec, true, nil
}

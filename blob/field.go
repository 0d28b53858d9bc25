package blob

import (
	"fmt"

	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/format"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/section"
)

// readMemberFlag reads a flag word and decodes its variant, panicking on
// an invalid combination of variant bits.
func readMemberFlag(c *encoding.Cursor) (section.MemberFlag, section.Variant) {
	start := c.Pos()
	flag := section.MemberFlag(c.ReadUV())

	variant, err := flag.Variant()
	if err != nil {
		panic(fmt.Errorf("%w at offset %d", err, start))
	}

	return flag, variant
}

// decodeField decodes one field record.
//
// The result is a *introspect.Field for PolicyReflective and an
// introspect.FieldDescriptor for PolicyReachability. ok is false when the
// record is filtered out for the policy.
func (d *Decoder) decodeField(c *encoding.Cursor, declaring introspect.Type, publicOnly bool, policy section.Policy) (introspect.Member, bool, error) {
	flag, variant := readMemberFlag(c)

	if variant == section.VariantHeap {
		return d.decodeHeapField(c, flag, publicOnly, policy)
	}

	modifiers := introspect.Modifiers(flag.Modifiers())

	name, _, err := d.decodeName(c)
	if err != nil {
		return nil, false, err
	}

	switch variant {
	case section.VariantComplete:
		return d.decodeCompleteField(c, declaring, name, modifiers, publicOnly, policy)

	case section.VariantHiding, section.VariantNegative, section.VariantReachable:
		var typ introspect.Type
		if variant == section.VariantHiding {
			if typ, err = d.decodeType(c); err != nil {
				return nil, false, err
			}
		}

		if !policy.Admits(variant) {
			d.logFiltered(format.EntityField, variant, policy)
			return nil, false, nil
		}

		if policy == section.PolicyReachability {
			return d.factory.NewFieldDescriptor(declaring, name), true, nil
		}

		if variant == section.VariantNegative {
			typ = introspect.Unknown
		}

		return d.factory.NewField(introspect.FieldSpec{
			DeclaringType: declaring,
			Name:          name,
			Type:          typ,
			Modifiers:     modifiers,
			Offset:        section.FieldOffsetNone,
		}), true, nil

	case section.VariantHeap:
	}

	panic(fmt.Errorf("%w: unhandled field variant %s", errs.ErrInvalidMemberFlag, variant))
}

func (d *Decoder) decodeHeapField(c *encoding.Cursor, flag section.MemberFlag, publicOnly bool, policy section.Policy) (introspect.Member, bool, error) {
	obj, err := d.decodeObject(c)
	if err != nil {
		return nil, false, err
	}

	field, ok := obj.(*introspect.Field)
	if !ok {
		panic(fmt.Errorf("%w: expected *introspect.Field, got %T", errs.ErrUnexpectedObject, obj))
	}

	if publicOnly && !field.Modifiers.IsPublic() {
		field = d.factory.NewNegativeField(field)
	}

	if policy == section.PolicyReachability {
		return d.factory.NewFieldDescriptor(field.DeclaringType, field.Name), true, nil
	}

	// Heap objects registered only for reachability stay invisible to reflection.
	if !flag.IsComplete() {
		d.logFiltered(format.EntityField, section.VariantHeap, policy)
		return nil, false, nil
	}

	return field, true, nil
}

func (d *Decoder) decodeCompleteField(c *encoding.Cursor, declaring introspect.Type, name string, modifiers introspect.Modifiers, publicOnly bool, policy section.Policy) (introspect.Member, bool, error) {
	typ, err := d.decodeType(c)
	if err != nil {
		return nil, false, err
	}

	trustedFinal := c.ReadU1() != 0

	signature, err := d.decodeString(c)
	if err != nil {
		return nil, false, err
	}

	annotations := d.decodeByteArray(c)
	typeAnnotations := d.decodeByteArray(c)
	offset := c.ReadSV()

	deletedReason, err := d.decodeString(c)
	if err != nil {
		return nil, false, err
	}

	masked := publicOnly && !modifiers.IsPublic()
	if masked {
		modifiers |= introspect.Negative
	}

	field := d.factory.NewField(introspect.FieldSpec{
		DeclaringType:   declaring,
		Name:            name,
		Type:            typ,
		Modifiers:       modifiers,
		TrustedFinal:    trustedFinal,
		Signature:       signature,
		Annotations:     annotations,
		TypeAnnotations: typeAnnotations,
		Offset:          offset,
		DeletedReason:   deletedReason,
		Complete:        true,
	})

	if policy == section.PolicyReachability {
		return d.factory.NewFieldDescriptor(field.DeclaringType, field.Name), true, nil
	}

	// Public enumeration never lists blob-resident non-public members.
	if masked {
		d.logMasked(format.EntityField, field.Name)
		return nil, false, nil
	}

	return field, true, nil
}

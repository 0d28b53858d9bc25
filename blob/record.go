package blob

import (
	"github.com/arloliu/rmeta/encoding"
	"github.com/arloliu/rmeta/introspect"
)

// decodeRecordComponent decodes one record component. Components carry no
// flag word: name, type, signature, accessor, annotations, type annotations.
func (d *Decoder) decodeRecordComponent(c *encoding.Cursor, declaring introspect.Type) (*introspect.RecordComponent, error) {
	name, _, err := d.decodeName(c)
	if err != nil {
		return nil, err
	}

	typ, err := d.decodeType(c)
	if err != nil {
		return nil, err
	}

	signature, err := d.decodeString(c)
	if err != nil {
		return nil, err
	}

	accessor, err := d.decodeObject(c)
	if err != nil {
		return nil, err
	}

	annotations := d.decodeByteArray(c)
	typeAnnotations := d.decodeByteArray(c)

	return d.factory.NewRecordComponent(introspect.RecordComponentSpec{
		DeclaringType:   declaring,
		Name:            name,
		Type:            typ,
		Signature:       signature,
		Accessor:        accessor,
		Annotations:     annotations,
		TypeAnnotations: typeAnnotations,
	}), nil
}

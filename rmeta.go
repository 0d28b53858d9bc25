// Package rmeta decodes the reflection metadata of an ahead-of-time compiled
// image into introspection objects.
//
// An image stores, for every type registered for reflection, a compact
// metadata blob describing its fields, methods, constructors and record
// components, plus three side tables (classes, strings and heap objects) the
// blob refers to by index. rmeta reconstructs the objects on demand.
//
// # Basic Usage
//
// Opening a metadata section and decoding the fields of a type:
//
//	import "github.com/arloliu/rmeta"
//
//	tables := rmeta.NewTables(classes, strings, objects)
//	decoder, err := rmeta.OpenSection(sectionBytes, tables)
//	if err != nil {
//	    return err
//	}
//
//	fields, err := decoder.ParseFields(declaring, fieldsOffset, false)
//	if err != nil {
//	    return err // deferred build-time error, returned unchanged
//	}
//
// Reachability queries use the ParseReachable* methods and return
// descriptors instead of full objects:
//
//	methods, err := decoder.ParseReachableMethods(declaring, methodsOffset)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the blob and
// table packages. For the reference encoder, custom factories or section
// options, use those packages directly.
package rmeta

import (
	"github.com/arloliu/rmeta/blob"
	"github.com/arloliu/rmeta/format"
	"github.com/arloliu/rmeta/introspect"
	"github.com/arloliu/rmeta/table"
)

var defaultSectionOptions = []blob.SectionOption{
	blob.WithSectionCompression(format.CompressionLZ4),
}

// NewTables creates in-memory side tables. The slices must not be modified afterwards.
func NewTables(classes []introspect.Type, strings []string, objects []any) *table.Tables {
	return table.New(classes, strings, objects)
}

// NewDecoder creates a decoder over a raw metadata blob.
//
// Parameters:
//   - data: The raw metadata blob
//   - tables: Side table accessor
//   - opts: Optional configuration (blob.WithFactory, blob.WithLogger)
//
// Returns:
//   - *blob.Decoder: The decoder, safe for concurrent use
//   - error: An error if an option is invalid
func NewDecoder(data []byte, tables blob.Accessor, opts ...blob.DecoderOption) (*blob.Decoder, error) {
	return blob.NewDecoder(data, tables, opts...)
}

// OpenSection validates a metadata section and creates a decoder over its blob.
//
// Returns:
//   - *blob.Decoder: The decoder
//   - error: A section error (errs.ErrChecksumMismatch, errs.ErrInvalidSectionMagic, ...)
//     or an option error
func OpenSection(section []byte, tables blob.Accessor, opts ...blob.DecoderOption) (*blob.Decoder, error) {
	data, err := blob.DecodeSection(section)
	if err != nil {
		return nil, err
	}

	return blob.NewDecoder(data, tables, opts...)
}

// EncodeSection wraps a metadata blob in a section with the given options.
func EncodeSection(data []byte, opts ...blob.SectionOption) ([]byte, error) {
	return blob.EncodeSection(data, opts...)
}

// EncodeDefaultSection wraps a metadata blob in a section with recommended
// settings: little-endian header and LZ4 payload compression, which favours
// decode speed at image start-up.
func EncodeDefaultSection(data []byte) ([]byte, error) {
	return blob.EncodeSection(data, defaultSectionOptions...)
}

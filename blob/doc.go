// Package blob decodes reflection metadata blobs into introspection objects.
//
// A metadata blob is a compact byte sequence written at image build time. It
// refers to three side tables (classes, strings and heap objects) by signed
// index, and describes the fields, methods, constructors and record
// components each type exposes to reflection. The runtime reconstructs those
// objects lazily, one array at a time, with a Decoder.
//
// # Core Types
//
//   - Decoder: Parses arrays at blob offsets; immutable and safe for concurrent use
//   - Accessor: Side table lookup (table.Tables is the in-memory implementation)
//   - Factory: Builds introspection objects (introspect.DefaultFactory by default)
//   - Encoder: Writes blobs in the decoder's format, for builders and tests
//
// # Decoding Workflow
//
//	data, err := blob.DecodeSection(section)
//	if err != nil {
//	    return err
//	}
//
//	decoder, err := blob.NewDecoder(data, tables)
//	if err != nil {
//	    return err
//	}
//
//	fields, err := decoder.ParseFields(declaring, fieldsOffset, false)
//	if err != nil {
//	    // a deferred error recorded at build time, returned unchanged
//	    return err
//	}
//
// # Record Variants
//
// Every field and executable record starts with a flag word. Its high bits
// select one of five variants:
//
//	Variant    | Flag bits          | Reflective | Reachability
//	-----------|--------------------|------------|-------------
//	Heap       | IN_HEAP            | see below  | yes
//	Complete   | COMPLETE           | yes        | yes
//	Hiding     | HIDING             | yes        | no
//	Negative   | NEGATIVE           | yes        | no
//	Reachable  | (none)             | no         | yes
//
// Heap records are visible to reflective queries only when COMPLETE is set
// together with IN_HEAP. Records a query does not admit are dropped, and the returned array is
// compacted.
//
// # Errors
//
// Parse methods return only deferred errors: errors the builder stored in the
// object table because the lookup must fail at run time (for example a
// missing class in a signature). They are returned unchanged so callers can
// compare them by identity.
//
// Any other inconsistency (reading past the end of the blob, an invalid flag
// word, a factory call missing a required field) means the blob and the
// decoder disagree about the format. These panic with an error wrapping a
// sentinel from package errs.
//
// # Sections
//
// EncodeSection and DecodeSection wrap a blob in a small container with a
// checksum and optional compression (see package compress). Decoders always
// work on the raw blob.
package blob

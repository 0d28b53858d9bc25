// Package section defines the low-level binary structures and constants of
// reflection metadata.
//
// # Member Flag Words
//
// Every field and executable record in a metadata blob starts with a flag
// word. The low 28 bits hold the member's modifiers, the high four bits select
// the record variant:
//
//	Bit | Mask         | Meaning
//	----|--------------|------------------------------------------------
//	31  | CompleteMask | full introspection record
//	30  | InHeapMask   | record references a pre-built heap object
//	29  | HidingMask   | member shadowed by a subtype member
//	28  | NegativeMask | query that found nothing
//
// MemberFlag.Variant decodes the word once into a Variant and rejects invalid
// combinations; Policy.Admits holds the variant filtering table.
//
// # Side Table Indices
//
// Names, types, objects and array lengths are signed indices. NoData (-1)
// marks an absent value and every value below it is an error index referring
// to a deferred error in the object table. ClassifyIndex is the only place
// that maps between the two.
//
// # Section Container
//
// A metadata section wraps a blob for storage:
//
//	┌───────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                      │
//	│  - Flag (4 bytes): magic, byte order, codec   │
//	│  - BlobSize, PayloadSize (8 bytes)            │
//	│  - Checksum (8 bytes, xxHash64 of the blob)   │
//	├───────────────────────────────────────────────┤
//	│ Payload (PayloadSize bytes)                   │
//	└───────────────────────────────────────────────┘
//
// See Header for the exact byte layout.
package section

package section

import "math"

// Member flag word bits. The low 28 bits carry the ordinary modifiers of the
// member; the high four bits select the record variant.
const (
	CompleteMask = uint32(1) << 31 // Mask for the complete record bit (bit 31)
	InHeapMask   = uint32(1) << 30 // Mask for the heap-backed record bit (bit 30)
	HidingMask   = uint32(1) << 29 // Mask for the hiding record bit (bit 29)
	NegativeMask = uint32(1) << 28 // Mask for the negative record bit (bit 28)

	VariantMask  = CompleteMask | InHeapMask | HidingMask | NegativeMask
	ModifierMask = ^VariantMask
)

// Side table sentinels.
const (
	// NoData marks an absent name, type, object or array.
	NoData = int32(-1)
	// FirstErrorIndex is the encoding of the error stored at object index 0.
	// Every value below NoData is an error index.
	FirstErrorIndex = NoData - 1
	// NullArrayLength is the unsigned length of an absent byte array.
	NullArrayLength = uint32(math.MaxUint32)
	// FieldOffsetNone is stored for fields without a static offset.
	FieldOffsetNone = int32(-1)
)

// Metadata section container layout.
const (
	// Section option word bit masks
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1), 0=little, 1=big
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicMetadataV1Opt = 0xEC10 // Version 1 magic number for reflection metadata sections.

	HeaderSize     = 32                 // fixed section header size in bytes
	MaxPayloadSize = math.MaxUint32 - 1 // largest blob a section can describe
)

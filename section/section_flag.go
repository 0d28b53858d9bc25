package section

import (
	"fmt"

	"github.com/arloliu/rmeta/endian"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/format"
)

// SectionFlag is the packed flag field at the start of a metadata section header.
type SectionFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 2-3 are reserved, must be set to 0.
	// Bits 4-15 are the magic number identifying the section format:
	//   - 0xEC10 (0b1110_1100_0001_0000): reflection metadata section v1
	Options uint16

	// PayloadCompression indicates the compression applied to the blob payload.
	PayloadCompression uint8

	// Reserved must be zero.
	Reserved uint8
}

// NewSectionFlag creates a SectionFlag with little-endian byte order and no compression.
func NewSectionFlag() SectionFlag {
	return SectionFlag{
		Options:            MagicMetadataV1Opt,
		PayloadCompression: uint8(format.CompressionNone),
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f SectionFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsLittleEndian returns whether the header is little-endian.
func (f SectionFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the header is big-endian.
func (f SectionFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *SectionFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *SectionFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetPayloadCompression returns the payload compression type.
func (f SectionFlag) GetPayloadCompression() format.CompressionType {
	return format.CompressionType(f.PayloadCompression)
}

// SetPayloadCompression sets the payload compression type.
func (f *SectionFlag) SetPayloadCompression(compression format.CompressionType) {
	f.PayloadCompression = uint8(compression)
}

// Validate checks the magic number, reserved bits and compression type.
func (f SectionFlag) Validate() error {
	if f.GetMagicNumber() != MagicMetadataV1Opt {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidSectionMagic, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 || f.Reserved != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidSectionFlags)
	}

	if !f.GetPayloadCompression().IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, f.PayloadCompression)
	}

	return nil
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f SectionFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

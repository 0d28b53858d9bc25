package section

import (
	"fmt"

	"github.com/arloliu/rmeta/endian"
	"github.com/arloliu/rmeta/errs"
)

// Header is the fixed-size header of a metadata section.
//
//	Bytes  | Field       | Type   | Description
//	-------|-------------|--------|----------------------------------------
//	0-1    | Options     | uint16 | magic number and endianness
//	2      | Compression | uint8  | payload compression type
//	3      | Reserved    | uint8  | must be zero
//	4-7    | BlobSize    | uint32 | uncompressed blob size in bytes
//	8-11   | PayloadSize | uint32 | stored payload size in bytes
//	12-15  | Reserved    |        | must be zero
//	16-23  | Checksum    | uint64 | xxHash64 of the uncompressed blob
//	24-31  | Reserved    |        | must be zero
//
// The Options field is always stored little-endian so the endianness bit can
// be read before the engine is chosen.
type Header struct {
	Flag        SectionFlag
	BlobSize    uint32
	PayloadSize uint32
	Checksum    uint64
}

// NewHeader creates a header with default flags.
func NewHeader() *Header {
	return &Header{Flag: NewSectionFlag()}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidSectionHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.PayloadCompression = data[2]
	h.Flag.Reserved = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.BlobSize = engine.Uint32(data[4:8])
	h.PayloadSize = engine.Uint32(data[8:12])
	h.Checksum = engine.Uint64(data[16:24])

	for _, b := range data[12:16] {
		if b != 0 {
			return fmt.Errorf("%w: reserved header bytes set", errs.ErrInvalidSectionFlags)
		}
	}
	for _, b := range data[24:32] {
		if b != 0 {
			return fmt.Errorf("%w: reserved header bytes set", errs.ErrInvalidSectionFlags)
		}
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.PayloadCompression
	b[3] = h.Flag.Reserved
	engine.PutUint32(b[4:8], h.BlobSize)
	engine.PutUint32(b[8:12], h.PayloadSize)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// GetEndianEngine returns the engine matching the header flags.
func (h *Header) GetEndianEngine() endian.EndianEngine {
	return h.Flag.GetEndianEngine()
}

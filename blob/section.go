package blob

import (
	"errors"
	"fmt"

	"github.com/arloliu/rmeta/compress"
	"github.com/arloliu/rmeta/errs"
	"github.com/arloliu/rmeta/format"
	"github.com/arloliu/rmeta/internal/hash"
	"github.com/arloliu/rmeta/internal/options"
	"github.com/arloliu/rmeta/section"
	"go.uber.org/zap"
)

// sectionConfig holds the settings of one EncodeSection call.
type sectionConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// SectionOption is a functional option for EncodeSection.
type SectionOption = options.Option[*sectionConfig]

// WithSectionCompression sets the payload compression. Default is None.
func WithSectionCompression(compression format.CompressionType) SectionOption {
	return options.New(func(cfg *sectionConfig) error {
		if !compression.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compression)
		}
		cfg.compression = compression

		return nil
	})
}

// WithSectionBigEndian writes the header integers in big-endian byte order.
func WithSectionBigEndian() SectionOption {
	return options.NoError(func(cfg *sectionConfig) {
		cfg.bigEndian = true
	})
}

// EncodeSection packages a metadata blob into a section: a fixed header
// followed by the payload.
//
// When the chosen codec does not shrink the blob the payload is stored
// uncompressed and the header records CompressionNone.
//
// Parameters:
//   - data: The raw metadata blob
//   - opts: Optional configuration (WithSectionCompression, WithSectionBigEndian)
//
// Returns:
//   - []byte: Header and payload
//   - error: An option, size or compression error
func EncodeSection(data []byte, opts ...SectionOption) ([]byte, error) {
	cfg := &sectionConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if uint64(len(data)) > section.MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrBlobTooLarge, len(data))
	}

	compression := cfg.compression
	payload := data

	if compression != format.CompressionNone {
		codec, err := compress.GetCodec(compression)
		if err != nil {
			return nil, err
		}

		compressed, err := codec.Compress(data)
		switch {
		case errors.Is(err, compress.ErrIncompressible):
			compression = format.CompressionNone
		case err != nil:
			return nil, fmt.Errorf("compress metadata section: %w", err)
		case len(compressed) >= len(data):
			compression = format.CompressionNone
		default:
			payload = compressed
		}
	}

	header := section.NewHeader()
	if cfg.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetPayloadCompression(compression)
	header.BlobSize = uint32(len(data))      //nolint:gosec
	header.PayloadSize = uint32(len(payload)) //nolint:gosec
	header.Checksum = hash.Checksum(data)

	out := make([]byte, 0, section.HeaderSize+len(payload))
	out = append(out, header.Bytes()...)
	out = append(out, payload...)

	if ce := Logger().Check(zap.DebugLevel, "encoded metadata section"); ce != nil {
		ce.Write(
			zap.Stringer("compression", compression),
			zap.Int("blobSize", len(data)),
			zap.Int("payloadSize", len(payload)),
		)
	}

	return out, nil
}

// DecodeSection validates a metadata section and returns the raw blob.
//
// The header magic, flags and sizes are checked before the payload is
// decompressed, and the blob checksum after. Trailing bytes after the
// payload are rejected. For uncompressed sections the returned blob aliases
// data.
func DecodeSection(data []byte) ([]byte, error) {
	if len(data) < section.HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidSectionHeaderSize, len(data))
	}

	header := section.NewHeader()
	if err := header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	payload := data[section.HeaderSize:]
	if uint64(len(payload)) != uint64(header.PayloadSize) {
		return nil, fmt.Errorf("%w: payload size %d, header says %d",
			errs.ErrInvalidSectionPayload, len(payload), header.PayloadSize)
	}

	compression := header.Flag.GetPayloadCompression()
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	blob, err := codec.Decompress(payload, int(header.BlobSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSectionPayload, err)
	}

	if uint64(len(blob)) != uint64(header.BlobSize) {
		return nil, fmt.Errorf("%w: blob size %d, header says %d",
			errs.ErrInvalidSectionPayload, len(blob), header.BlobSize)
	}

	if sum := hash.Checksum(blob); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	if ce := Logger().Check(zap.DebugLevel, "decoded metadata section"); ce != nil {
		ce.Write(
			zap.Stringer("compression", compression),
			zap.Uint32("blobSize", header.BlobSize),
			zap.Uint32("payloadSize", header.PayloadSize),
		)
	}

	return blob, nil
}

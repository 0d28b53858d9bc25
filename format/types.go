package format

type (
	CompressionType uint8
	EntityKind      uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the blob as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	EntityField           EntityKind = 0x1
	EntityMethod          EntityKind = 0x2
	EntityConstructor     EntityKind = 0x3
	EntityRecordComponent EntityKind = 0x4
	EntityParameter       EntityKind = 0x5
	EntityEnclosingMethod EntityKind = 0x6
	EntityClass           EntityKind = 0x7
	EntityObject          EntityKind = 0x8
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (k EntityKind) String() string {
	switch k {
	case EntityField:
		return "field"
	case EntityMethod:
		return "method"
	case EntityConstructor:
		return "constructor"
	case EntityRecordComponent:
		return "record component"
	case EntityParameter:
		return "parameter"
	case EntityEnclosingMethod:
		return "enclosing method"
	case EntityClass:
		return "class"
	case EntityObject:
		return "object"
	default:
		return "unknown"
	}
}

package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// ErrIncompressible is returned by LZ4Compressor.Compress when the block
// would not be smaller than its input. Callers store the data uncompressed.
var ErrIncompressible = errors.New("lz4: data is incompressible")

// maxLZ4Growth bounds the output buffer when no size hint is available.
const maxLZ4Growth = 128 * 1024 * 1024

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: ErrIncompressible, or another compression error
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrIncompressible
	}

	return dst[:n], nil
}

// Decompress decompresses an LZ4 block.
//
// LZ4 blocks do not record their decoded size. With a positive sizeHint the
// output buffer is allocated once; otherwise the buffer starts at 4x the
// compressed size and doubles on ErrInvalidSourceShortBuffer up to 128MB.
func (c LZ4Compressor) Decompress(data []byte, sizeHint int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if sizeHint > 0 {
		buf := make([]byte, sizeHint)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			return nil, err
		}

		return buf[:n], nil
	}

	bufSize := len(data) * 4
	for bufSize <= maxLZ4Growth {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxLZ4Growth {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

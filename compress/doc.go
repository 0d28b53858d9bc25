// Package compress provides the payload codecs of metadata sections.
//
// A metadata section stores the blob either as-is or compressed with one of
// the supported algorithms:
//   - None: No compression, the payload is the blob
//   - Zstd: Best ratio, suited to images where size matters most
//   - S2: Balanced compression and speed
//   - LZ4: Fastest decompression, suited to start-up sensitive images
//
// The decoder itself never sees compressed data: blob.DecodeSection
// decompresses the payload once and hands the raw blob to blob.NewDecoder.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Compress(raw)
//	...
//	raw, err = codec.Decompress(payload, len(raw))
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// keep pooled encoder state internally.
package compress

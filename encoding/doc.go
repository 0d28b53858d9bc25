// Package encoding provides the low-level byte codec of reflection metadata blobs.
//
// A blob is a flat byte sequence written by the image builder. Every integer in
// it is variable-length, so the package has exactly two primitives:
//
//   - Cursor reads values at a position in an immutable blob
//   - Writer appends values in the same format (used by the encoder and tests)
//
// Most users should use the blob package, which decodes complete entity
// arrays on top of Cursor.
//
// # Wire Format
//
// Unsigned integers (UV) use base-128 little-endian groups where the MSB of
// each byte signals continuation:
//
//	Value 0-127:     0xxxxxxx                    (1 byte)
//	Value 128-16383: 1xxxxxxx 0xxxxxxx           (2 bytes)
//	Value 16384+:    1xxxxxxx 1xxxxxxx 0xxxxxxx  (3+ bytes)
//
// A 32-bit value needs at most 5 bytes. Longer encodings, and 5-byte
// encodings whose value exceeds 32 bits, are rejected.
//
// Signed integers (SV) are zigzag-mapped before UV encoding so that small
// negative values stay short. Side table indices and array lengths are SV
// because -1 marks absent data and smaller values mark deferred errors:
//
//	Positive: 0 → 0, 1 → 2, 2 → 4, 3 → 6
//	Negative: -1 → 1, -2 → 3, -3 → 5
//
// Single bytes (U1, S1) and raw byte runs are stored as-is.
//
// # Faults
//
// The decoder and the blob are generated together, so malformed input is a
// programming error rather than a recoverable condition. Cursor panics with
// an error wrapping errs.ErrTruncated or errs.ErrVarintOverflow instead of
// returning one.
//
// # Thread Safety
//
// Cursor and Writer are not thread-safe. A blob may be read by any number of
// cursors concurrently.
package encoding

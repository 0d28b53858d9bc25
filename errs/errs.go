// Package errs defines the sentinel errors shared by the rmeta packages.
//
// Data errors (a malformed section container, a checksum mismatch) are returned
// wrapped with fmt.Errorf("%w: ...") so callers can test them with errors.Is.
//
// Implementation faults (reading past the end of the blob, an invalid member
// flag word, a factory call with a missing field) are never returned. The
// decoder panics with an error wrapping one of the fault sentinels below,
// since they mean the encoder and decoder disagree about the format.
package errs

import "errors"

// Section container errors.
var (
	ErrInvalidSectionHeaderSize = errors.New("invalid metadata section header size")
	ErrInvalidSectionMagic      = errors.New("invalid metadata section magic number")
	ErrInvalidSectionFlags      = errors.New("invalid metadata section flags")
	ErrInvalidSectionPayload    = errors.New("invalid metadata section payload")
	ErrChecksumMismatch         = errors.New("metadata section checksum mismatch")
	ErrBlobTooLarge             = errors.New("metadata blob too large")
	ErrInvalidCompression       = errors.New("invalid compression type")
)

// Faults raised by panics inside the decode engine.
var (
	ErrTruncated         = errors.New("read past end of metadata blob")
	ErrVarintOverflow    = errors.New("variable-length integer overflows 32 bits")
	ErrInvalidMemberFlag = errors.New("invalid member flag word")
	ErrInvalidLength     = errors.New("invalid encoded array length")
	ErrInvalidIndex      = errors.New("side table index out of range")
	ErrNotAnError        = errors.New("error index does not reference an error object")
	ErrUnexpectedObject  = errors.New("unexpected heap object type")
	ErrMissingField      = errors.New("required field missing for entity construction")
)

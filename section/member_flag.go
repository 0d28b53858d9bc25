package section

import (
	"fmt"

	"github.com/arloliu/rmeta/errs"
)

// MemberFlag is the flag word that starts every field and executable record.
//
// Bits 28-31 select the record variant and bits 0-27 hold the member's
// modifiers. When InHeapMask is set the remaining bits are the modifiers of
// the heap-resident object and no other variant bit is interpreted.
type MemberFlag uint32

// IsComplete reports whether the complete record bit is set.
func (f MemberFlag) IsComplete() bool {
	return uint32(f)&CompleteMask != 0
}

// IsInHeap reports whether the record references a heap object.
func (f MemberFlag) IsInHeap() bool {
	return uint32(f)&InHeapMask != 0
}

// IsHiding reports whether the record describes a hiding member.
func (f MemberFlag) IsHiding() bool {
	return uint32(f)&HidingMask != 0
}

// IsNegative reports whether the record describes a negative query result.
func (f MemberFlag) IsNegative() bool {
	return uint32(f)&NegativeMask != 0
}

// Modifiers returns the modifiers exposed to callers. The complete bit is a
// decode-time signal and is always stripped; the hiding and negative bits stay
// visible so that placeholders can be recognized later.
func (f MemberFlag) Modifiers() uint32 {
	return uint32(f) &^ (CompleteMask | InHeapMask)
}

// Validate checks the mutual exclusion rules of the variant bits.
// Heap-backed flag words are always valid.
func (f MemberFlag) Validate() error {
	if f.IsInHeap() {
		return nil
	}

	if f.IsComplete() && f.IsHiding() {
		return fmt.Errorf("%w: complete and hiding both set (0x%08x)", errs.ErrInvalidMemberFlag, uint32(f))
	}

	if f.IsNegative() && (f.IsComplete() || f.IsHiding()) {
		return fmt.Errorf("%w: negative combined with complete or hiding (0x%08x)", errs.ErrInvalidMemberFlag, uint32(f))
	}

	return nil
}

// Variant decodes the record variant selected by the flag word.
func (f MemberFlag) Variant() (Variant, error) {
	if f.IsInHeap() {
		return VariantHeap, nil
	}

	if err := f.Validate(); err != nil {
		return 0, err
	}

	switch {
	case f.IsComplete():
		return VariantComplete, nil
	case f.IsHiding():
		return VariantHiding, nil
	case f.IsNegative():
		return VariantNegative, nil
	default:
		return VariantReachable, nil
	}
}

// NewMemberFlag builds a flag word from modifiers and a variant.
func NewMemberFlag(modifiers uint32, variant Variant) MemberFlag {
	f := modifiers & ModifierMask

	switch variant {
	case VariantHeap:
		f |= InHeapMask
	case VariantComplete:
		f |= CompleteMask
	case VariantHiding:
		f |= HidingMask
	case VariantNegative:
		f |= NegativeMask
	case VariantReachable:
	}

	return MemberFlag(f)
}

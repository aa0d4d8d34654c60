package sema

import "github.com/bits-and-blooms/bitset"

// InitSet is a per-scope definite-initialization tracker: one bit per local
// variable slot, flipped on assignment and tested on read (spec.md §4.7).
// It is a thin wrapper over bits-and-blooms/bitset so Scope doesn't deal
// with the library's uint-indexed API directly.
type InitSet struct {
	bits *bitset.BitSet
}

// NewInitSet constructs an empty definite-init tracker.
func NewInitSet() *InitSet {
	return &InitSet{bits: bitset.New(8)}
}

// Set marks slot as definitely initialized.
func (s *InitSet) Set(slot int) {
	s.bits.Set(uint(slot))
}

// Clear marks slot as not (or no longer) definitely initialized.
func (s *InitSet) Clear(slot int) {
	s.bits.Clear(uint(slot))
}

// Test reports whether slot is currently marked definitely initialized.
func (s *InitSet) Test(slot int) bool {
	return s.bits.Test(uint(slot))
}

// NullSet tracks, within one conditional branch, which nullable-reference
// slots are currently known non-null by flow narrowing (SPEC_FULL.md §4
// domain-stack entry: a second bitset backing checkNullabilityDeref's
// per-branch narrowing, spec.md §9 Open Question — this implementation
// takes the per-branch-narrowing option).
type NullSet struct {
	bits *bitset.BitSet
}

// NewNullSet constructs an empty narrowed-non-null tracker.
func NewNullSet() *NullSet {
	return &NullSet{bits: bitset.New(8)}
}

// Clone returns an independent copy, used when entering the two branches of
// a conditional so narrowing in one branch never leaks into the other.
func (s *NullSet) Clone() *NullSet {
	return &NullSet{bits: s.bits.Clone()}
}

// MarkNonNull records that slot is known non-null in this branch.
func (s *NullSet) MarkNonNull(slot int) {
	s.bits.Set(uint(slot))
}

// IsNonNull reports whether slot is currently known non-null.
func (s *NullSet) IsNonNull(slot int) bool {
	return s.bits.Test(uint(slot))
}

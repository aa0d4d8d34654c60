package types

// AssignmentCompatible implements the assignment_compatible(from, to)
// predicate of spec.md §4.2. SafeC is strict: implicit integer widening is
// rejected everywhere except the handful of carve-outs spec.md names
// explicitly.
func AssignmentCompatible(from, to Type) bool {
	// error on either side is silently compatible (cascade suppression).
	if from.IsError() || to.IsError() {
		return true
	}
	// exact structural equality.
	if from.Equals(to) {
		return true
	}
	// bool <-> integer.
	if (from.IsBool() && to.IsInteger()) || (from.IsInteger() && to.IsBool()) {
		return true
	}
	// 8-bit types (char, int8, uint8, bool) are mutually assignable.
	if isEightBit(from) && isEightBit(to) {
		return true
	}
	// raw void* -> any raw pointer.
	if fp, ok := from.(*Pointer); ok && fp.Elem.IsVoid() {
		if _, ok := to.(*Pointer); ok {
			return true
		}
	}
	// raw pointer -> safe reference is never compatible.
	if _, ok := from.(*Pointer); ok {
		if _, ok := to.(*Reference); ok {
			return false
		}
	}
	// reference -> reference.
	if fr, ok := from.(*Reference); ok {
		if tr, ok := to.(*Reference); ok {
			return referenceCompatible(fr, tr)
		}
	}
	return false
}

// isEightBit reports whether t is one of the four types spec.md §4.2 groups
// as mutually assignable regardless of signedness.
func isEightBit(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.kind {
	case KindChar, KindInt8, KindUInt8, KindBool:
		return true
	default:
		return false
	}
}

// referenceCompatible implements the reference-to-reference rule: same
// base, same region, source at least as non-null as target (widening
// non-null -> nullable is allowed; narrowing nullable -> non-null is
// forbidden), and compatible mutability (a mutable source may flow into an
// immutable-binding target, but not vice versa).
func referenceCompatible(from, to *Reference) bool {
	if !from.Elem.Equals(to.Elem) {
		return false
	}
	if from.RegionOf != to.RegionOf {
		return false
	}
	if from.RegionOf == RegionArena && from.ArenaName != to.ArenaName {
		return false
	}
	if !from.Nullable && to.Nullable {
		// widening: ok.
	} else if from.Nullable && !to.Nullable {
		// narrowing: forbidden.
		return false
	}
	if !from.Mutable && to.Mutable {
		return false
	}
	return true
}

package sema

// nullCtx carries the set of nullable-reference symbols currently known
// non-null by flow narrowing within the branch being checked (spec.md §9
// Open Question: this implementation takes the per-branch-narrowing option,
// not the conservative "type is nullable" check). It is cloned, not shared,
// whenever checking forks into independent branches, so narrowing learned
// in one arm of an if/match never leaks into a sibling arm.
type nullCtx struct {
	ns *NullSet
}

// newNullCtx constructs an empty narrowing context, used at function entry.
func newNullCtx() nullCtx {
	return nullCtx{ns: NewNullSet()}
}

// clone returns an independent copy for a sibling branch.
func (c nullCtx) clone() nullCtx {
	return nullCtx{ns: c.ns.Clone()}
}

// markNonNull records that sym is known non-null for the remainder of this
// branch.
func (c nullCtx) markNonNull(sym *Symbol) {
	if sym == nil {
		return
	}
	c.ns.MarkNonNull(sym.NullSlot)
}

// isNonNull reports whether sym is currently known non-null by narrowing.
func (c nullCtx) isNonNull(sym *Symbol) bool {
	if sym == nil {
		return false
	}
	return c.ns.IsNonNull(sym.NullSlot)
}


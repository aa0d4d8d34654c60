package types

import "strings"

// Tuple is a fixed-arity product type, written (T1, T2, ...).
type Tuple struct {
	base
	Elements []Type
}

// NewTuple constructs a tuple type.
func NewTuple(elems []Type) Type {
	return &Tuple{base{KindTuple}, elems}
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) Equals(other Type) bool {
	o, ok := other.(*Tuple)
	if !ok || len(o.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !o.Elements[i].Equals(t.Elements[i]) {
			return false
		}
	}
	return true
}

// Optional is `?T`, lowering to {value, present_bit}.
type Optional struct {
	base
	Inner Type
}

// NewOptional constructs an optional-wrapped type.
func NewOptional(inner Type) Type {
	return &Optional{base{KindOptional}, inner}
}

func (o *Optional) String() string { return "?" + o.Inner.String() }

func (o *Optional) Equals(other Type) bool {
	p, ok := other.(*Optional)
	return ok && p.Inner.Equals(o.Inner)
}

// Slice is `[]T`, lowering to {pointer, length}.
type Slice struct {
	base
	Elem Type
}

// NewSlice constructs a slice type.
func NewSlice(elem Type) Type {
	return &Slice{base{KindSlice}, elem}
}

func (s *Slice) String() string { return "[]" + s.Elem.String() }

func (s *Slice) Equals(other Type) bool {
	o, ok := other.(*Slice)
	return ok && o.Elem.Equals(s.Elem)
}

// Generic is an unbound generic type parameter placeholder, e.g. `T` inside
// `generic<T: Numeric>`.
type Generic struct {
	base
	Name       string
	Constraint string
}

// NewGeneric constructs a generic parameter placeholder.
func NewGeneric(name, constraint string) Type {
	return &Generic{base{KindGeneric}, name, constraint}
}

func (g *Generic) String() string { return g.Name }

func (g *Generic) Equals(other Type) bool {
	o, ok := other.(*Generic)
	return ok && o.Name == g.Name
}

// Newtype is a nominally distinct wrapper over a base type; two Newtypes are
// equal only by identity (same pointer), never structurally, per spec.md
// §3/§4.2.
type Newtype struct {
	base
	Name string
	Elem Type
}

// NewNewtype constructs a newtype wrapper.
func NewNewtype(name string, elem Type) *Newtype {
	return &Newtype{base{KindNewtype}, name, elem}
}

func (n *Newtype) String() string { return n.Name }

func (n *Newtype) Equals(other Type) bool {
	return other == Type(n)
}

// Typeof is a placeholder resolved by Sema once the wrapped expression has
// been type-checked (spec.md §3, §9 "Typeof resolution"). Expr is stored as
// the small Resolved interface to avoid an import cycle with pkg/ast; Sema
// type-asserts it back to ast.Expr.
type Typeof struct {
	base
	Expr Resolved
}

// Resolved is satisfied by every ast.Expr; declared here (rather than imported)
// to keep pkg/types free of a dependency on pkg/ast, mirroring the
// TypeofType.expr void* back-pointer in original_source/compiler/include/safec/Type.h.
type Resolved interface {
	ResolvedType() Type
}

// NewTypeof constructs an unresolved typeof(expr) placeholder.
func NewTypeof(expr Resolved) Type {
	return &Typeof{base{KindTypeof}, expr}
}

func (t *Typeof) String() string { return "typeof(...)" }

func (t *Typeof) Equals(other Type) bool { return false }

package types

// Pointer is a raw C pointer, accessible only inside an unsafe scope
// (spec.md §3).
type Pointer struct {
	base
	Elem    Type
	IsConst bool
}

// NewPointer constructs a raw pointer type.
func NewPointer(elem Type, isConst bool) Type {
	return &Pointer{base{KindPointer}, elem, isConst}
}

func (p *Pointer) String() string {
	if p.IsConst {
		return p.Elem.String() + " const *"
	}
	return p.Elem.String() + " *"
}

func (p *Pointer) Equals(other Type) bool {
	o, ok := other.(*Pointer)
	return ok && o.IsConst == p.IsConst && o.Elem.Equals(p.Elem)
}

// Reference is a SafeC safe pointer: region-qualified, optionally nullable,
// optionally mutable. It lowers to a plain machine pointer with attributes
// but is checked entirely at compile time (spec.md §3).
type Reference struct {
	base
	Elem      Type
	RegionOf  Region
	Nullable  bool
	Mutable   bool
	ArenaName string // meaningful only when RegionOf == RegionArena
}

// NewReference constructs a safe reference type.
func NewReference(elem Type, region Region, nullable, mutable bool, arenaName string) Type {
	return &Reference{base{KindReference}, elem, region, nullable, mutable, arenaName}
}

func (r *Reference) String() string {
	prefix := "&"
	if r.Nullable {
		prefix = "?&"
	}
	region := r.RegionOf.String()
	if r.RegionOf == RegionArena {
		region = "arena<" + r.ArenaName + ">"
	}
	mut := ""
	if !r.Mutable {
		mut = "const "
	}
	return prefix + region + " " + mut + r.Elem.String()
}

func (r *Reference) Equals(other Type) bool {
	o, ok := other.(*Reference)
	if !ok {
		return false
	}
	return o.RegionOf == r.RegionOf && o.Nullable == r.Nullable &&
		o.Mutable == r.Mutable && o.ArenaName == r.ArenaName && o.Elem.Equals(r.Elem)
}

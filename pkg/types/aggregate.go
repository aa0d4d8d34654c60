package types

import (
	"fmt"
	"strings"
)

// Array is a fixed- or unsized array type; Size < 0 means unsized (the
// pointer-decay compatible form), per spec.md §3.
type Array struct {
	base
	Elem Type
	Size int64
}

// NewArray constructs an array type. Pass size < 0 for an unsized array.
func NewArray(elem Type, size int64) Type {
	return &Array{base{KindArray}, elem, size}
}

func (a *Array) String() string {
	if a.Size < 0 {
		return a.Elem.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", a.Elem.String(), a.Size)
}

func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	return ok && o.Size == a.Size && o.Elem.Equals(a.Elem)
}

func (a *Array) IsAggregate() bool { return true }

// Field is one member of a Struct type.
type Field struct {
	Name  string
	Type  Type
	Index int
}

// Struct is a struct, union or tagged-union type. Equality is nominal: two
// Struct values are equal iff they share a Name (spec.md §4.2).
type Struct struct {
	base
	Name            string
	Fields          []Field
	IsUnion         bool
	IsPacked        bool
	IsTaggedUnion   bool
	MaxPayloadSize  int
	Defined         bool
}

// NewStruct constructs a struct/union type shell; fields are filled in by
// Sema's collection pass once every member type has been resolved.
func NewStruct(name string, isUnion bool) *Struct {
	return &Struct{base: base{KindStruct}, Name: name, IsUnion: isUnion}
}

func (s *Struct) String() string { return s.Name }

func (s *Struct) Equals(other Type) bool {
	o, ok := other.(*Struct)
	return ok && o.Name == s.Name
}

func (s *Struct) IsAggregate() bool { return true }

// FindField looks up a member by name, returning nil if absent.
func (s *Struct) FindField(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// Enumerator is one (name, value) pair of an Enum type.
type Enumerator struct {
	Name  string
	Value int64
}

// Enum is an enumeration type with an explicit underlying bit width and
// signedness (spec.md §3).
type Enum struct {
	base
	Name        string
	Enumerators []Enumerator
	BitWidth    int
	Signed      bool
}

// NewEnum constructs an enum type shell.
func NewEnum(name string) *Enum {
	return &Enum{base: base{KindEnum}, Name: name, BitWidth: 32, Signed: true}
}

func (e *Enum) String() string { return e.Name }

func (e *Enum) Equals(other Type) bool {
	o, ok := other.(*Enum)
	return ok && o.Name == e.Name
}

// FindEnumerator looks up an enumerator by name.
func (e *Enum) FindEnumerator(name string) (int64, bool) {
	for _, m := range e.Enumerators {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// Function is a function type: return type, parameter types, and whether it
// is variadic.
type Function struct {
	base
	Return   Type
	Params   []Type
	Variadic bool
}

// NewFunction constructs a function type.
func NewFunction(ret Type, params []Type, variadic bool) Type {
	return &Function{base{KindFunction}, ret, params, variadic}
}

func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	variadic := ""
	if f.Variadic {
		variadic = ", ..."
	}
	return fmt.Sprintf("%s(%s%s)", f.Return.String(), strings.Join(parts, ", "), variadic)
}

func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || o.Variadic != f.Variadic || len(o.Params) != len(f.Params) || !o.Return.Equals(f.Return) {
		return false
	}
	for i := range f.Params {
		if !o.Params[i].Equals(f.Params[i]) {
			return false
		}
	}
	return true
}

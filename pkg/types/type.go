// Package types implements the SafeC Type sum type (spec.md §3, §4.2): a
// closed set of variants compared structurally (except Struct, which is
// nominal, and Newtype, which is compared by identity). Types are
// reference-counted only in the sense that Go's garbage collector shares
// them by pointer; there is no explicit arena here, matching the "sum-type
// dispatch... avoid open polymorphism" design note (spec.md §9) — every
// variant is an exhaustively-switchable concrete struct behind the Type
// interface, the same pattern go-corset's pkg/corset/ast.Type uses for its
// own type lattice (AnyType, IntType, ...).
package types

import "fmt"

// Kind tags which Type variant a value holds, letting callers type-switch
// without reflection when they only need the tag.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindFloat32
	KindFloat64
	KindError
	KindPointer
	KindReference
	KindArray
	KindStruct
	KindEnum
	KindFunction
	KindTuple
	KindOptional
	KindSlice
	KindGeneric
	KindNewtype
	KindTypeof
)

// Type is the sum type over every SafeC type variant.
type Type interface {
	Kind() Kind
	String() string
	Equals(other Type) bool

	IsVoid() bool
	IsBool() bool
	IsInteger() bool
	IsFloat() bool
	IsArithmetic() bool
	IsPointer() bool
	IsReference() bool
	IsAggregate() bool
	IsError() bool
}

// base is embedded by every concrete variant and supplies the default
// (false) answers to the predicate methods; each variant overrides only the
// predicates that apply to it.
type base struct{ kind Kind }

func (b base) Kind() Kind        { return b.kind }
func (b base) IsVoid() bool      { return b.kind == KindVoid }
func (b base) IsBool() bool      { return b.kind == KindBool }
func (b base) IsInteger() bool   { return false }
func (b base) IsFloat() bool     { return false }
func (b base) IsArithmetic() bool {
	return false
}
func (b base) IsPointer() bool   { return b.kind == KindPointer }
func (b base) IsReference() bool { return b.kind == KindReference }
func (b base) IsAggregate() bool { return b.kind == KindStruct || b.kind == KindArray }
func (b base) IsError() bool     { return b.kind == KindError }

// Region classifies the lifetime of a safe reference.
type Region int

const (
	RegionUnknown Region = iota
	RegionStack
	RegionStatic
	RegionHeap
	RegionArena
)

// String renders the region keyword.
func (r Region) String() string {
	switch r {
	case RegionStack:
		return "stack"
	case RegionStatic:
		return "static"
	case RegionHeap:
		return "heap"
	case RegionArena:
		return "arena"
	default:
		return "unknown"
	}
}

func mismatchPanic(fn string, k Kind) string {
	return fmt.Sprintf("types: %s called on unexpected kind %d", fn, k)
}

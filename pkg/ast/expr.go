package ast

import (
	"github.com/safec-org/safec/pkg/source"
	"github.com/safec-org/safec/pkg/types"
)

// Referent is implemented by every declaration an IdentExpr can resolve to:
// a local VarDeclStmt, a function Param, a FunctionDecl, or a GlobalVarDecl.
// Keeping this here (rather than depending on pkg/sema.Symbol) is what lets
// pkg/ast avoid importing pkg/sema.
type Referent interface {
	RefName() string
	RefType() types.Type
}

// Expr is the sum type over every expression variant. A freshly parsed
// Expr has Type() == nil and IsLValue() == false; Sema fills both in
// (spec.md §4.8).
type Expr interface {
	Loc() source.Location
	Type() types.Type
	SetType(types.Type)
	IsLValue() bool
	SetLValue(bool)
	// ResolvedType satisfies types.Resolved so a Typeof node can hold a
	// back-pointer to the expression it wraps.
	ResolvedType() types.Type
	exprNode()
}

// ExprBase is embedded by every concrete Expr variant.
type ExprBase struct {
	At     source.Location
	Typ    types.Type
	LValue bool
}

func (e *ExprBase) Loc() source.Location     { return e.At }
func (e *ExprBase) Type() types.Type         { return e.Typ }
func (e *ExprBase) SetType(t types.Type)     { e.Typ = t }
func (e *ExprBase) IsLValue() bool           { return e.LValue }
func (e *ExprBase) SetLValue(v bool)         { e.LValue = v }
func (e *ExprBase) ResolvedType() types.Type { return e.Typ }
func (*ExprBase) exprNode()                  {}

// IntLitExpr is an integer literal.
type IntLitExpr struct {
	ExprBase
	Value      int64
	IsUnsigned bool
	IsLongLong bool
}

// FloatLitExpr is a floating point literal.
type FloatLitExpr struct {
	ExprBase
	Value float64
}

// BoolLitExpr is `true` or `false`.
type BoolLitExpr struct {
	ExprBase
	Value bool
}

// StringLitExpr is a double-quoted string literal.
type StringLitExpr struct {
	ExprBase
	Value string
}

// CharLitExpr is a single-quoted character literal.
type CharLitExpr struct {
	ExprBase
	Value int64
}

// NullLitExpr is the `null` literal.
type NullLitExpr struct {
	ExprBase
}

// IdentExpr is an identifier; Resolved is nil until Sema resolves it to a
// variable or function.
type IdentExpr struct {
	ExprBase
	Name     string
	Resolved Referent
}

// UnaryExpr covers the prefix/postfix unary operators and increment/
// decrement. Address-of is not a UnaryOp: it is modeled by AddrOfExpr,
// kept separate because its result type computation differs materially.
type UnaryExpr struct {
	ExprBase
	Op      UnaryOp
	Operand Expr
}

// BinaryExpr is an infix binary operator application.
type BinaryExpr struct {
	ExprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

// CallExpr is a function call.
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// SubscriptExpr is `base[index]`.
type SubscriptExpr struct {
	ExprBase
	Base  Expr
	Index Expr
}

// MemberExpr is `base.field` or `base->field`.
type MemberExpr struct {
	ExprBase
	Base  Expr
	Field string
	Arrow bool
}

// CastExpr is an explicit `(T)expr` cast.
type CastExpr struct {
	ExprBase
	Target   types.Type
	Operand  Expr
}

// AssignExpr is a plain or compound assignment.
type AssignExpr struct {
	ExprBase
	Op     AssignOp
	Target Expr
	Value  Expr
}

// AddrOfExpr is `&expr`.
type AddrOfExpr struct {
	ExprBase
	Operand Expr
}

// DerefExpr is `*expr`.
type DerefExpr struct {
	ExprBase
	Operand Expr
}

// SizeofTypeExpr is `sizeof(T)`.
type SizeofTypeExpr struct {
	ExprBase
	Target types.Type
}

// SizeofExprExpr is `sizeof expr` / `sizeof(expr)`.
type SizeofExprExpr struct {
	ExprBase
	Operand Expr
}

// AlignofExpr is `alignof(T)`.
type AlignofExpr struct {
	ExprBase
	Target types.Type
}

// FieldcountExpr is `fieldcount(T)`.
type FieldcountExpr struct {
	ExprBase
	Target types.Type
}

// CompoundInitExpr is a `{...}` compound initializer.
type CompoundInitExpr struct {
	ExprBase
	Elements []Expr
}

// TupleLitExpr is a `(e1, e2, ...)` tuple literal.
type TupleLitExpr struct {
	ExprBase
	Elements []Expr
}

// NewExpr is `new<Region> Type`, an arena allocation.
type NewExpr struct {
	ExprBase
	RegionName string
	Target     types.Type
}

// ArenaResetExpr is `arena_reset<Region>()`.
type ArenaResetExpr struct {
	ExprBase
	RegionName string
}

// SpawnExpr is `spawn(fn, arg)`, a source-language task fork that the
// front-end only type-checks (spec.md §5).
type SpawnExpr struct {
	ExprBase
	Fn  Expr
	Arg Expr
}

// JoinExpr is `join(handle)`.
type JoinExpr struct {
	ExprBase
	Handle Expr
}

// TryExpr is `try expr`: unwrap an optional or propagate its emptiness.
type TryExpr struct {
	ExprBase
	Operand Expr
}

// SelfExpr is the implicit receiver inside a method body.
type SelfExpr struct {
	ExprBase
}

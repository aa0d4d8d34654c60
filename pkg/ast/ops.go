// Package ast defines the SafeC typed AST: Expr, Stmt and Decl sum types
// plus the TranslationUnit that owns them (spec.md §3). The tree is an
// owning tree of concrete structs behind narrow interfaces, with every node
// carrying its SourceLocation — the same "owning tree of sum-type nodes"
// design spec.md §9 calls for, expressed the way go-corset's
// pkg/corset/ast.Node tree is: a closed set of concrete structs switched
// over by callers rather than an open visitor hierarchy.
package ast

// UnaryOp enumerates the prefix and postfix unary operators.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryBitNot
	UnaryPreInc
	UnaryPreDec
	UnaryPostInc
	UnaryPostDec
)

// BinaryOp enumerates the infix binary operators (arithmetic, bitwise,
// comparison, logical).
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinLogAnd
	BinLogOr
	BinEq
	BinNe
	BinLt
	BinGt
	BinLe
	BinGe
)

// methodNames maps an overloadable binary operator to the `operatorX` method
// name Sema looks for on a struct operand (SPEC_FULL.md §5, "operator
// overload method naming").
var methodNames = map[BinaryOp]string{
	BinAdd: "operator+", BinSub: "operator-", BinMul: "operator*", BinDiv: "operator/",
	BinMod: "operator%", BinBitAnd: "operator&", BinBitOr: "operator|", BinBitXor: "operator^",
	BinShl: "operator<<", BinShr: "operator>>",
	BinEq: "operator==", BinNe: "operator!=",
	BinLt: "operator<", BinGt: "operator>", BinLe: "operator<=", BinGe: "operator>=",
}

// MethodName returns the operator-overload method name Sema resolves a
// struct-operand binary expression against.
func (op BinaryOp) MethodName() string { return methodNames[op] }

// AssignOp enumerates plain and compound assignment operators.
type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignAnd
	AssignOr
	AssignXor
	AssignShl
	AssignShr
)

package clone

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/source"
)

// Expr deep-copies e, substituting generic types per subst. Resolved
// back-pointers on IdentExpr are dropped; Sema re-resolves the clone.
func Expr(e ast.Expr, subst Subst) ast.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.IntLitExpr:
		return &ast.IntLitExpr{ExprBase: base(n.At), Value: n.Value, IsUnsigned: n.IsUnsigned, IsLongLong: n.IsLongLong}
	case *ast.FloatLitExpr:
		return &ast.FloatLitExpr{ExprBase: base(n.At), Value: n.Value}
	case *ast.BoolLitExpr:
		return &ast.BoolLitExpr{ExprBase: base(n.At), Value: n.Value}
	case *ast.StringLitExpr:
		return &ast.StringLitExpr{ExprBase: base(n.At), Value: n.Value}
	case *ast.CharLitExpr:
		return &ast.CharLitExpr{ExprBase: base(n.At), Value: n.Value}
	case *ast.NullLitExpr:
		return &ast.NullLitExpr{ExprBase: base(n.At)}
	case *ast.IdentExpr:
		return &ast.IdentExpr{ExprBase: base(n.At), Name: n.Name}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{ExprBase: base(n.At), Op: n.Op, Operand: Expr(n.Operand, subst)}
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{ExprBase: base(n.At), Op: n.Op, Left: Expr(n.Left, subst), Right: Expr(n.Right, subst)}
	case *ast.TernaryExpr:
		return &ast.TernaryExpr{ExprBase: base(n.At), Cond: Expr(n.Cond, subst), Then: Expr(n.Then, subst), Else: Expr(n.Else, subst)}
	case *ast.CallExpr:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Expr(a, subst)
		}
		return &ast.CallExpr{ExprBase: base(n.At), Callee: Expr(n.Callee, subst), Args: args}
	case *ast.SubscriptExpr:
		return &ast.SubscriptExpr{ExprBase: base(n.At), Base: Expr(n.Base, subst), Index: Expr(n.Index, subst)}
	case *ast.MemberExpr:
		return &ast.MemberExpr{ExprBase: base(n.At), Base: Expr(n.Base, subst), Field: n.Field, Arrow: n.Arrow}
	case *ast.CastExpr:
		return &ast.CastExpr{ExprBase: base(n.At), Target: substType(n.Target, subst), Operand: Expr(n.Operand, subst)}
	case *ast.AssignExpr:
		return &ast.AssignExpr{ExprBase: base(n.At), Op: n.Op, Target: Expr(n.Target, subst), Value: Expr(n.Value, subst)}
	case *ast.AddrOfExpr:
		return &ast.AddrOfExpr{ExprBase: base(n.At), Operand: Expr(n.Operand, subst)}
	case *ast.DerefExpr:
		return &ast.DerefExpr{ExprBase: base(n.At), Operand: Expr(n.Operand, subst)}
	case *ast.SizeofTypeExpr:
		return &ast.SizeofTypeExpr{ExprBase: base(n.At), Target: substType(n.Target, subst)}
	case *ast.SizeofExprExpr:
		return &ast.SizeofExprExpr{ExprBase: base(n.At), Operand: Expr(n.Operand, subst)}
	case *ast.AlignofExpr:
		return &ast.AlignofExpr{ExprBase: base(n.At), Target: substType(n.Target, subst)}
	case *ast.FieldcountExpr:
		return &ast.FieldcountExpr{ExprBase: base(n.At), Target: substType(n.Target, subst)}
	case *ast.CompoundInitExpr:
		elems := make([]ast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Expr(el, subst)
		}
		return &ast.CompoundInitExpr{ExprBase: base(n.At), Elements: elems}
	case *ast.TupleLitExpr:
		elems := make([]ast.Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = Expr(el, subst)
		}
		return &ast.TupleLitExpr{ExprBase: base(n.At), Elements: elems}
	case *ast.NewExpr:
		return &ast.NewExpr{ExprBase: base(n.At), RegionName: n.RegionName, Target: substType(n.Target, subst)}
	case *ast.ArenaResetExpr:
		return &ast.ArenaResetExpr{ExprBase: base(n.At), RegionName: n.RegionName}
	case *ast.SpawnExpr:
		return &ast.SpawnExpr{ExprBase: base(n.At), Fn: Expr(n.Fn, subst), Arg: Expr(n.Arg, subst)}
	case *ast.JoinExpr:
		return &ast.JoinExpr{ExprBase: base(n.At), Handle: Expr(n.Handle, subst)}
	case *ast.TryExpr:
		return &ast.TryExpr{ExprBase: base(n.At), Operand: Expr(n.Operand, subst)}
	case *ast.SelfExpr:
		return &ast.SelfExpr{ExprBase: base(n.At)}
	default:
		panic("clone: unhandled Expr variant")
	}
}

func base(loc source.Location) ast.ExprBase {
	return ast.ExprBase{At: loc}
}

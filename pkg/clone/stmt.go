package clone

import (
	"github.com/safec-org/safec/pkg/ast"
	"github.com/safec-org/safec/pkg/source"
)

// Stmt deep-copies s, substituting generic types per subst.
func Stmt(s ast.Stmt, subst Subst) ast.Stmt {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ast.CompoundStmt:
		stmts := make([]ast.Stmt, len(n.Stmts))
		for i, c := range n.Stmts {
			stmts[i] = Stmt(c, subst)
		}
		return &ast.CompoundStmt{StmtBase: sbase(n.At), Stmts: stmts}
	case *ast.ExprStmt:
		return &ast.ExprStmt{StmtBase: sbase(n.At), Expr: Expr(n.Expr, subst)}
	case *ast.IfStmt:
		return &ast.IfStmt{StmtBase: sbase(n.At), Cond: Expr(n.Cond, subst), Then: Stmt(n.Then, subst), Else: Stmt(n.Else, subst)}
	case *ast.IfConstStmt:
		return &ast.IfConstStmt{StmtBase: sbase(n.At), Cond: Expr(n.Cond, subst), Then: Stmt(n.Then, subst), Else: Stmt(n.Else, subst)}
	case *ast.WhileStmt:
		return &ast.WhileStmt{StmtBase: sbase(n.At), Cond: Expr(n.Cond, subst), Body: Stmt(n.Body, subst)}
	case *ast.DoWhileStmt:
		return &ast.DoWhileStmt{StmtBase: sbase(n.At), Body: Stmt(n.Body, subst), Cond: Expr(n.Cond, subst)}
	case *ast.ForStmt:
		return &ast.ForStmt{
			StmtBase: sbase(n.At), Init: Stmt(n.Init, subst), Cond: Expr(n.Cond, subst),
			Post: Expr(n.Post, subst), Body: Stmt(n.Body, subst),
		}
	case *ast.ReturnStmt:
		return &ast.ReturnStmt{StmtBase: sbase(n.At), Value: Expr(n.Value, subst)}
	case *ast.BreakStmt:
		return &ast.BreakStmt{StmtBase: sbase(n.At), Label: n.Label}
	case *ast.ContinueStmt:
		return &ast.ContinueStmt{StmtBase: sbase(n.At), Label: n.Label}
	case *ast.GotoStmt:
		return &ast.GotoStmt{StmtBase: sbase(n.At), Label: n.Label}
	case *ast.LabelStmt:
		return &ast.LabelStmt{StmtBase: sbase(n.At), Name: n.Name, Stmt: Stmt(n.Stmt, subst)}
	case *ast.VarDeclStmt:
		return &ast.VarDeclStmt{
			StmtBase: sbase(n.At), Name: n.Name, DeclaredType: substType(n.DeclaredType, subst),
			Init: Expr(n.Init, subst), IsConst: n.IsConst, IsStatic: n.IsStatic,
		}
	case *ast.UnsafeStmt:
		return &ast.UnsafeStmt{StmtBase: sbase(n.At), Body: Stmt(n.Body, subst).(*ast.CompoundStmt)}
	case *ast.StaticAssertStmt:
		return &ast.StaticAssertStmt{StmtBase: sbase(n.At), Cond: Expr(n.Cond, subst), Message: n.Message}
	case *ast.DeferStmt:
		return &ast.DeferStmt{StmtBase: sbase(n.At), Inner: Stmt(n.Inner, subst), IsErrDefer: n.IsErrDefer}
	case *ast.MatchStmt:
		arms := make([]ast.MatchArm, len(n.Arms))
		for i, a := range n.Arms {
			arms[i] = ast.MatchArm{Patterns: a.Patterns, Body: Stmt(a.Body, subst)}
		}
		return &ast.MatchStmt{StmtBase: sbase(n.At), Subject: Expr(n.Subject, subst), Arms: arms}
	case *ast.AsmStmt:
		return &ast.AsmStmt{StmtBase: sbase(n.At), Text: n.Text}
	default:
		panic("clone: unhandled Stmt variant")
	}
}

func sbase(loc source.Location) ast.StmtBase {
	return ast.StmtBase{At: loc}
}

package emit

import (
	"strings"

	"github.com/teranos/castxml/ast"
)

// exprPrinter renders default arguments and initializers. Casts spell
// their canonical target type and declaration references are fully
// qualified, so the text stays unambiguous outside its original scope.
type exprPrinter struct {
	ctx    *ast.Context
	policy ast.PrintingPolicy
}

func (p exprPrinter) HandleExpr(x *ast.Expr, b *strings.Builder) bool {
	switch x.Kind {
	case ast.CStyleCastExpr:
		b.WriteString("(")
		b.WriteString(ast.TypeString(p.ctx.Canonical(x.Type), p.policy))
		b.WriteString(")")
		ast.PrintExpr(b, x.Sub(), p, p.policy)
		return true
	case ast.NamedCastExpr:
		b.WriteString(x.Value)
		b.WriteString("<")
		b.WriteString(ast.TypeString(p.ctx.Canonical(x.Type), p.policy))
		b.WriteString(">(")
		ast.PrintExpr(b, x.Sub(), p, p.policy)
		b.WriteString(")")
		return true
	case ast.DeclRefExpr:
		if x.Decl != nil {
			b.WriteString(ast.QualifiedName(x.Decl))
			return true
		}
	}
	return false
}

func (e *emitter) exprString(x *ast.Expr) string {
	return ast.ExprString(x, exprPrinter{ctx: e.tu.Context, policy: e.policy}, e.policy)
}

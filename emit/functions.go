package emit

import (
	"github.com/teranos/castxml/ast"
)

type fnFlags uint8

const (
	fnReturns fnFlags = 1 << iota
	fnStatic
	fnExplicit
	fnConst
	fnVirtual
	fnPure
)

func methodFlags(d *ast.Decl) fnFlags {
	var f fnFlags
	if d.IsConstMethod() {
		f |= fnConst
	}
	if d.Virtual {
		f |= fnVirtual
	}
	if d.Pure {
		f |= fnPure
	}
	return f
}

func (e *emitter) outputFunction(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	flags := fnReturns
	if d.Storage == ast.StorageStatic {
		flags |= fnStatic
	}
	switch {
	case d.Operator != "":
		e.function(d, n, "OperatorFunction", flags, d.Operator, true)
	case d.Identifier() != "":
		e.function(d, n, "Function", flags, d.Identifier(), true)
	default:
		e.unimplementedDecl(d, n)
	}
}

func (e *emitter) outputMethod(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	flags := fnReturns | methodFlags(d)
	if d.Storage == ast.StorageStatic {
		flags |= fnStatic
	}
	switch {
	case d.Operator != "":
		e.function(d, n, "OperatorMethod", flags, d.Operator, true)
	case d.Identifier() != "":
		e.function(d, n, "Method", flags, d.Identifier(), true)
	default:
		e.unimplementedDecl(d, n)
	}
}

func (e *emitter) outputConverter(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	e.function(d, n, "Converter", fnReturns|methodFlags(d), "", false)
}

// recordName names constructors and destructors after their class.
func recordName(d *ast.Decl) string {
	if d.Parent != nil && d.Parent.IsRecord() {
		return d.Parent.Name
	}
	return ""
}

func (e *emitter) outputConstructor(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	var flags fnFlags
	if d.Explicit {
		flags |= fnExplicit
	}
	e.function(d, n, "Constructor", flags, recordName(d), true)
}

func (e *emitter) outputDestructor(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	e.function(d, n, "Destructor", methodFlags(d)&^fnConst, recordName(d), true)
}

// function writes any function-like element with its Argument children.
func (e *emitter) function(d *ast.Decl, n *node, tag string, flags fnFlags, name string, named bool) {
	e.w.open(tag)
	e.w.idAttr("id", n.id)
	if named {
		e.nameAttr(name)
	}
	if flags&fnReturns != 0 {
		e.typeAttr("returns", d.ReturnType(), n.complete)
	}
	e.contextAttr(d, ast.AccessNone)
	e.locationAttr(d)

	e.w.flag("static", flags&fnStatic != 0)
	e.w.flag("explicit", flags&fnExplicit != 0)
	e.w.flag("const", flags&fnConst != 0)
	e.w.flag("virtual", flags&fnVirtual != 0)
	e.w.flag("pure_virtual", flags&fnPure != 0)
	e.w.flag("inline", d.Inlined)
	e.w.flag("extern", d.Storage == ast.StorageExtern)
	e.w.flag("artificial", d.Implicit)

	if d.Kind != ast.FunctionDecl && len(d.Overrides) > 0 {
		var ids []ID
		for _, o := range d.Overrides {
			if id := e.declID(o, false); id.Valid() {
				ids = append(ids, id)
			}
		}
		e.idList("overrides", ids)
	}

	var attrs []string
	if p := ast.FunctionProtoOf(d.Type); p != nil {
		e.throwAttr(p, n.complete)
		if d.Kind != ast.CXXConstructorDecl && d.Kind != ast.CXXDestructorDecl {
			e.mangledAttr(d)
		}
		attrs = callConvAttributes(p, attrs)
	}
	e.attributesAttr(declAttributes(d, attrs))

	if len(d.Params) == 0 {
		e.w.closeEmpty()
		return
	}
	e.w.closeStart()
	// Default arguments accumulate over redeclarations; the most recent
	// declaration has all of them.
	latest := d.MostRecent()
	for i, p := range d.Params {
		var def *ast.Expr
		if i < len(latest.Params) {
			lp := latest.Params[i]
			def = lp.Init
			if def == nil {
				def = lp.UninstantiatedDefault
			}
		}
		e.argument(p, n.complete, def)
	}
	if d.IsVariadic() {
		e.w.child("Ellipsis")
		e.w.closeEmpty()
	}
	e.w.end(tag)
}

func (e *emitter) argument(p *ast.Decl, complete bool, def *ast.Expr) {
	e.w.child("Argument")
	if p.Name != "" {
		e.nameAttr(p.Name)
	}
	e.typeAttr("type", p.Type, complete)
	e.locationAttr(p)
	if def != nil {
		e.w.attr("default", e.exprString(def))
	}
	e.declAttributesAttr(p)
	e.w.closeEmpty()
}

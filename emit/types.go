package emit

import (
	"strconv"

	"github.com/teranos/castxml/ast"
)

// gccxmlBuiltinNames holds the spellings gccxml used where they differ
// from the compiler's.
var gccxmlBuiltinNames = map[string]string{
	"short":              "short int",
	"unsigned short":     "short unsigned int",
	"long":               "long int",
	"unsigned long":      "long unsigned int",
	"long long":          "long long int",
	"unsigned long long": "long long unsigned int",
}

func (e *emitter) outputFundamental(t *ast.Type, n *node) {
	name := t.Name
	if alt, ok := gccxmlBuiltinNames[name]; ok {
		name = alt
	}
	e.w.open("FundamentalType")
	e.w.idAttr("id", n.id)
	e.nameAttr(name)
	e.sizeAttrs(t.Size, t.Align)
	e.w.closeEmpty()
}

func (e *emitter) outputArray(t *ast.Type, n *node) {
	e.w.open("ArrayType")
	e.w.idAttr("id", n.id)
	bound := ""
	if t.Class == ast.ConstantArrayType {
		bound = strconv.FormatInt(int64(t.ArraySize)-1, 10)
	}
	e.w.str(` min="0" max="` + bound + `"`)
	e.typeAttr("type", t.Elem, n.complete)
	e.w.closeEmpty()
}

func (e *emitter) outputFunctionType(t *ast.Type, n *node) {
	e.functionType(t, n, "FunctionType", nil)
}

func (e *emitter) outputMethodType(t *ast.Type, class *ast.Type, n *node) {
	if t.Class != ast.FunctionProtoType {
		e.unimplementedType(t, n)
		return
	}
	e.functionType(t, n, "MethodType", class)
}

func (e *emitter) functionType(t *ast.Type, n *node, tag string, class *ast.Type) {
	e.w.open(tag)
	e.w.idAttr("id", n.id)
	if class != nil {
		e.typeAttr("basetype", ast.QualType{Type: class}, n.complete)
	}
	e.typeAttr("returns", t.Result, n.complete)
	e.w.flag("const", t.MethodQuals.IsConst())
	e.w.flag("volatile", t.MethodQuals.IsVolatile())
	e.w.flag("restrict", t.MethodQuals.IsRestrict())
	e.attributesAttr(callConvAttributes(t, nil))
	if len(t.Params) == 0 {
		e.w.closeEmpty()
		return
	}
	e.w.closeStart()
	for _, p := range t.Params {
		e.w.child("Argument")
		e.typeAttr("type", p, n.complete)
		e.w.closeEmpty()
	}
	if t.Variadic {
		e.w.child("Ellipsis")
		e.w.closeEmpty()
	}
	e.w.end(tag)
}

func (e *emitter) outputReference(t *ast.Type, n *node) {
	e.w.open("ReferenceType")
	e.w.idAttr("id", n.id)
	e.typeAttr("type", t.Elem, false)
	e.sizeAttrs(t.Size, t.Align)
	e.w.closeEmpty()
}

func (e *emitter) outputPointer(t *ast.Type, n *node) {
	e.w.open("PointerType")
	e.w.idAttr("id", n.id)
	e.typeAttr("type", t.Elem, false)
	e.sizeAttrs(t.Size, t.Align)
	e.w.closeEmpty()
}

// outputMemberPointer writes a pointer to data member as an OffsetType and
// a pointer to member function as a pointer to its class's MethodType.
func (e *emitter) outputMemberPointer(t *ast.Type, n *node) {
	if !ast.IsFunctionType(t.Elem) {
		e.w.open("OffsetType")
		e.w.idAttr("id", n.id)
		e.typeAttr("basetype", ast.QualType{Type: t.MemberOf}, n.complete)
		e.typeAttr("type", t.Elem, n.complete)
		e.w.closeEmpty()
		return
	}
	e.w.open("PointerType")
	e.w.idAttr("id", n.id)
	if id := e.typeID(t.Elem, t.MemberOf, false); id.Valid() {
		e.w.idAttr("type", id)
	}
	e.w.closeEmpty()
}

func (e *emitter) outputElaborated(t *ast.Type, n *node) {
	e.w.open("ElaboratedType")
	e.w.idAttr("id", n.id)
	e.typeAttr("type", t.Elem, false)
	e.w.closeEmpty()
}

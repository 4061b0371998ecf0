package emit

import (
	"github.com/teranos/castxml/ast"
)

func (e *emitter) outputTranslationUnit(d *ast.Decl, n *node) {
	e.w.open("Namespace")
	e.w.idAttr("id", n.id)
	e.nameAttr("::")
	if n.complete {
		members := idSet{}
		e.addContextMembers(d, members)
		e.membersAttr(members)
	}
	e.w.closeEmpty()
}

func (e *emitter) outputNamespace(d *ast.Decl, n *node) {
	e.w.open("Namespace")
	e.w.idAttr("id", n.id)
	if d.Name != "" {
		e.nameAttr(d.Name)
	}
	e.contextAttr(d, ast.AccessNone)
	if n.complete {
		members := idSet{}
		for _, r := range d.Redecls() {
			e.addContextMembers(r, members)
		}
		e.membersAttr(members)
	}
	e.w.closeEmpty()
}

func recordTag(d *ast.Decl) string {
	switch d.Tag {
	case ast.TagClass:
		return "Class"
	case ast.TagUnion:
		return "Union"
	case ast.TagStruct:
		return "Struct"
	}
	return ""
}

func (e *emitter) outputCXXRecord(d *ast.Decl, n *node) {
	if d.DescribedTemplate != nil {
		e.unimplementedDecl(d, n)
		return
	}
	e.outputRecord(d, n)
}

func (e *emitter) outputRecord(d *ast.Decl, n *node) {
	tag := recordTag(d)
	if tag == "" {
		// __interface and enum tags have no record element.
		e.unimplementedDecl(d, n)
		return
	}

	e.w.open(tag)
	e.w.idAttr("id", n.id)
	if !d.AnonymousRecord && !d.Lambda {
		e.nameAttr(d.NameForDiagnostic())
	}
	// Access of an instantiation is that of its template.
	alt := ast.AccessNone
	if d.Kind == ast.ClassTemplateSpecializationDecl && d.SpecializedTemplate != nil {
		alt = d.SpecializedTemplate.Access
	}
	e.contextAttr(d, alt)
	e.locationAttr(d)

	withBases := false
	if d.Definition() != nil {
		e.w.flag("abstract", d.IsCXXRecord() && d.Abstract)
		if n.complete && !d.Invalid && !d.Lambda {
			members := idSet{}
			e.addContextMembers(d, members)
			e.membersAttr(members)
			withBases = d.IsCXXRecord() && len(d.Bases) > 0
			if withBases {
				e.basesAttr(d)
			}
			e.befriendingAttr(d)
		}
	} else {
		e.w.flag("incomplete", true)
	}
	if d.IsCompleteType() {
		e.sizeAttrs(d.Size, d.Align)
	}
	e.declAttributesAttr(d)

	if !withBases {
		e.w.closeEmpty()
		return
	}
	e.w.closeStart()
	for _, b := range d.Bases {
		e.w.child("Base")
		e.typeAttr("type", e.tu.Context.Canonical(b.Type), true)
		e.accessAttr(b.Access)
		if b.Virtual {
			e.w.str(` virtual="1"`)
		} else {
			e.w.str(` virtual="0"`)
			e.w.intAttr("offset", b.Offset)
		}
		e.w.closeEmpty()
	}
	e.w.end(tag)
}

// isFloat128Shim reports the compatibility typedef castxml predefines for
// targets without a native __float128.
func isFloat128Shim(d *ast.Decl) bool {
	return d.Name == "__castxml__float128" &&
		d.Parent != nil && d.Parent.Kind == ast.TranslationUnitDecl &&
		d.Loc.Builtin && d.Loc.File == nil
}

func (e *emitter) outputTypedef(d *ast.Decl, n *node) {
	if d.Kind == ast.TypedefDecl && isFloat128Shim(d) {
		e.w.open("FundamentalType")
		e.w.idAttr("id", n.id)
		e.w.str(` name="__float128" size="128" align="128"`)
		e.w.closeEmpty()
		return
	}

	e.w.open("Typedef")
	e.w.idAttr("id", n.id)
	e.nameAttr(d.Name)
	e.typeAttr("type", d.Underlying, n.complete)
	e.contextAttr(d, ast.AccessNone)
	e.locationAttr(d)
	e.declAttributesAttr(d)
	e.w.closeEmpty()
}

func (e *emitter) outputEnum(d *ast.Decl, n *node) {
	name := d.Name
	if name == "" && d.TypedefForAnon != nil {
		name = d.TypedefForAnon.Name
	}

	e.w.open("Enumeration")
	e.w.idAttr("id", n.id)
	e.nameAttr(name)
	e.contextAttr(d, ast.AccessNone)
	e.locationAttr(d)
	def := d.Definition()
	if def != nil {
		e.sizeAttrs(def.Size, def.Align)
	}
	e.declAttributesAttr(d)
	if def == nil || len(def.Enumerators) == 0 {
		e.w.closeEmpty()
		return
	}
	e.w.closeStart()
	for _, c := range def.Enumerators {
		e.w.child("EnumValue")
		e.nameAttr(c.Name)
		e.w.intAttr("init", c.Value)
		e.declAttributesAttr(c)
		e.w.closeEmpty()
	}
	e.w.end("Enumeration")
}

func (e *emitter) outputField(d *ast.Decl, n *node) {
	e.w.open("Field")
	e.w.idAttr("id", n.id)
	e.nameAttr(d.Name)
	e.typeAttr("type", d.Type, n.complete)
	if d.BitField {
		e.w.uintAttr("bits", uint64(d.BitWidth))
	}
	e.contextAttr(d, ast.AccessNone)
	e.locationAttr(d)
	e.w.uintAttr("offset", d.Offset)
	e.w.flag("mutable", d.Mutable)
	e.declAttributesAttr(d)
	e.w.closeEmpty()
}

func (e *emitter) outputVariable(d *ast.Decl, n *node) {
	e.w.open("Variable")
	e.w.idAttr("id", n.id)
	e.nameAttr(d.Name)
	e.typeAttr("type", d.Type, n.complete)
	if d.Init != nil {
		e.w.attr("init", e.exprString(d.Init))
	}
	e.contextAttr(d, ast.AccessNone)
	e.locationAttr(d)
	e.w.flag("static", d.Storage == ast.StorageStatic)
	e.w.flag("extern", d.Storage == ast.StorageExtern)
	e.mangledAttr(d)
	e.declAttributesAttr(d)
	e.w.closeEmpty()
}

package emit

import (
	"github.com/teranos/castxml/ast"
)

// canonicalDecl picks the declaration that stands for d's entity, or nil
// when the entity cannot be represented. Records are represented by their
// definition, everything else by its first declaration. forType relaxes
// the invalid-decl rule for records and enums reached through a type.
func (e *emitter) canonicalDecl(d *ast.Decl, forType bool) *ast.Decl {
	for d != nil {
		d = d.Canonical()
		if d.IsRecord() {
			if def := d.Definition(); def != nil {
				d = def
			}
		}
		switch d.Kind {
		case ast.UsingShadowDecl:
			d = d.Target
			continue
		case ast.LinkageSpecDecl:
			d = d.Parent
			continue
		}
		break
	}
	if d == nil {
		return nil
	}
	if d.Invalid && !forType {
		return nil
	}
	if e.rejected(d) {
		return nil
	}
	return d
}

// rejected reports declarations the output formats cannot express.
func (e *emitter) rejected(d *ast.Decl) bool {
	switch {
	case d.IsFunction():
		if d.Deleted || d.LiteralOperator {
			return true
		}
		if p := ast.FunctionProtoOf(d.Type); p != nil {
			if ast.IsRValueReference(p.Result) {
				return true
			}
			for _, pt := range p.Params {
				if ast.IsRValueReference(pt) {
					return true
				}
			}
		}
	case d.Kind == ast.TypeAliasTemplateDecl:
		return true
	case d.Kind == ast.TypedefDecl:
		return ast.IsRValueReference(d.Underlying)
	case d.Kind == ast.TypeAliasDecl:
		return e.opts.Format == FormatGCCXML || ast.IsRValueReference(d.Underlying)
	}
	return false
}

// declID returns the id of d's entity, or the zero ID if it is rejected.
func (e *emitter) declID(d *ast.Decl, complete bool) ID {
	return e.declIDFor(d, complete, false)
}

func (e *emitter) declIDFor(d *ast.Decl, complete, forType bool) ID {
	c := e.canonicalDecl(d, forType)
	if c == nil {
		return ID{}
	}
	return e.table.declNode(c, complete)
}

// typeID returns the id of q. Sugar is peeled until a type that is
// identified on its own is reached; local qualifiers met on the way are
// collected into a cv-qualified wrapper. class is the owning class when q
// is the pointee of a pointer to member function.
func (e *emitter) typeID(q ast.QualType, class *ast.Type, complete bool) ID {
	var quals ast.Qualifiers
	for {
		quals |= q.Quals
		t := q.Type
		if t == nil {
			return ID{}
		}

		var next ast.QualType
		switch t.Class {
		case ast.AdjustedType, ast.AttributedType, ast.DecayedType, ast.ParenType, ast.SubstTemplateTypeParmType:
			next = t.Elem
		case ast.AutoType, ast.TemplateSpecializationType:
			if t.IsSugared() {
				next = t.Elem
			}
		case ast.ElaboratedType:
			if e.opts.Format == FormatGCCXML || !t.IsElaboratedTypeSpecifier() {
				next = t.Elem
			}
		case ast.RecordType, ast.EnumType:
			return e.qualify(e.declIDFor(t.Decl, complete, true), quals)
		case ast.TypedefType:
			if !t.Dependent && inClassTemplate(t.Decl) {
				next = t.Decl.Underlying
				break
			}
			if id := e.declIDFor(t.Decl, complete, true); id.Valid() {
				return e.qualify(id, quals)
			}
			if ast.IsRValueReference(t.Decl.Underlying) {
				return ID{}
			}
			// A gccxml-mode alias cannot be written; use what it names.
			next = t.Decl.Underlying
		}
		if next.Type == nil {
			return e.qualify(e.table.typeNode(dumpType{t: t, class: class}, complete), quals)
		}
		q = next
	}
}

func (e *emitter) qualify(id ID, quals ast.Qualifiers) ID {
	if !id.Valid() || quals == 0 {
		return id
	}
	return e.table.qualNode(id, quals)
}

// inClassTemplate reports whether a typedef is a member of an
// uninstantiated class template, directly or through nested classes. Such
// a typedef would need the template as its context.
func inClassTemplate(d *ast.Decl) bool {
	for p := d.Parent; p != nil && p.IsCXXRecord(); p = p.Parent {
		if p.DescribedTemplate != nil || p.Kind == ast.ClassTemplatePartialSpecializationDecl {
			return true
		}
	}
	return false
}

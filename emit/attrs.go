package emit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/internal/xmlutil"
)

const float128Record = "__castxml__float128_s"

func (e *emitter) nameAttr(name string) {
	e.w.attr("name", strings.ReplaceAll(name, float128Record, "__float128"))
}

// typeAttr writes a type reference. Types whose every spelling is
// rejected produce no attribute.
func (e *emitter) typeAttr(attr string, q ast.QualType, complete bool) {
	if id := e.typeID(q, nil, complete); id.Valid() {
		e.w.idAttr(attr, id)
	}
}

func (e *emitter) accessAttr(a ast.Access) {
	if s := a.String(); s != "" {
		e.w.attr("access", s)
	}
}

// contextAttr writes the enclosing scope, skipping inline namespaces, and
// the access of class members. alt stands in for a missing access.
func (e *emitter) contextAttr(d *ast.Decl, alt ast.Access) {
	dc := d.Parent
	if dc == nil {
		return
	}
	for dc.IsInlineNamespace() && dc.Parent != nil {
		dc = dc.Parent
	}
	id := e.declID(dc, false)
	if !id.Valid() {
		return
	}
	e.w.idAttr("context", id)
	if d.Parent.IsRecord() {
		a := d.Access
		if a == ast.AccessNone {
			a = alt
		}
		e.accessAttr(a)
	}
}

// locationAttr writes file and line. Implicit declarations without a
// source file point at the builtin pseudo-file f0.
func (e *emitter) locationAttr(d *ast.Decl) {
	if f := d.Loc.File; f != nil {
		id := "f" + strconv.FormatUint(uint64(e.files.id(f)), 10)
		line := strconv.FormatUint(uint64(d.Loc.Line), 10)
		e.w.str(` location="` + id + ":" + line + `" file="` + id + `" line="` + line + `"`)
		return
	}
	if d.Implicit {
		e.files.builtin = true
		e.w.str(` location="f0:0" file="f0" line="0"`)
	}
}

func (e *emitter) mangledAttr(d *ast.Decl) {
	s := d.Mangled
	if !e.tu.Target.HasFloat128 && strings.Contains(s, "__float128") {
		s = ""
	}
	s = strings.TrimPrefix(s, "\x01")
	e.w.attr("mangled", s)
}

func (e *emitter) sizeAttrs(size, align uint64) {
	e.w.uintAttr("size", size)
	e.w.uintAttr("align", align)
}

// declAttributes lists the source attributes of d.
func declAttributes(d *ast.Decl, attrs []string) []string {
	for _, a := range d.Annotations {
		attrs = append(attrs, "annotate("+a+")")
	}
	if d.Deprecated {
		attrs = append(attrs, "deprecated")
	}
	if d.DLLExport {
		attrs = append(attrs, "dllexport")
	}
	if d.DLLImport {
		attrs = append(attrs, "dllimport")
	}
	return attrs
}

// callConvAttributes lists the calling convention of a prototype.
func callConvAttributes(p *ast.Type, attrs []string) []string {
	switch p.CallConv {
	case ast.CallStd:
		attrs = append(attrs, "__stdcall__")
	case ast.CallFast:
		attrs = append(attrs, "__fastcall__")
	case ast.CallThis:
		attrs = append(attrs, "__thiscall__")
	}
	return attrs
}

func (e *emitter) attributesAttr(attrs []string) {
	if len(attrs) == 0 {
		return
	}
	for i, a := range attrs {
		attrs[i] = xmlutil.Attr(a)
	}
	e.w.str(` attributes="` + strings.Join(attrs, " ") + `"`)
}

func (e *emitter) declAttributesAttr(d *ast.Decl) {
	e.attributesAttr(declAttributes(d, nil))
}

// idList writes a space separated id list attribute.
func (e *emitter) idList(attr string, ids []ID) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	e.w.str(" " + attr + `="` + strings.Join(parts, " ") + `"`)
}

// idSet collects member ids; it is written sorted and without duplicates.
type idSet map[ID]struct{}

func (s idSet) add(id ID) {
	if id.Valid() {
		s[id] = struct{}{}
	}
}

func (s idSet) sorted() []ID {
	ids := make([]ID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

func (e *emitter) membersAttr(members idSet) {
	if len(members) > 0 {
		e.idList("members", members.sorted())
	}
}

// basesAttr lists base classes, prefixing non-public ones with their access.
func (e *emitter) basesAttr(d *ast.Decl) {
	parts := make([]string, 0, len(d.Bases))
	for _, b := range d.Bases {
		prefix := ""
		switch b.Access {
		case ast.AccessPrivate:
			prefix = "private:"
		case ast.AccessProtected:
			prefix = "protected:"
		}
		id := e.typeID(e.tu.Context.Canonical(b.Type), nil, true)
		parts = append(parts, prefix+id.String())
	}
	e.w.str(` bases="` + strings.Join(parts, " ") + `"`)
}

// befriendingAttr lists friend functions and classes. Friend templates
// are skipped.
func (e *emitter) befriendingAttr(d *ast.Decl) {
	if !d.IsCXXRecord() || len(d.Friends) == 0 {
		return
	}
	var ids []ID
	for _, f := range d.Friends {
		switch {
		case f.Decl != nil:
			if f.Decl.IsTemplate() {
				continue
			}
			if id := e.declID(f.Decl, false); id.Valid() {
				ids = append(ids, id)
			}
		case f.Type.Type != nil:
			if id := e.typeID(f.Type, nil, false); id.Valid() {
				ids = append(ids, id)
			}
		}
	}
	e.idList("befriending", ids)
}

// throwAttr lists the types of a dynamic exception specification.
func (e *emitter) throwAttr(p *ast.Type, complete bool) {
	if p == nil || !p.DynamicException {
		return
	}
	var ids []ID
	for _, t := range p.Exceptions {
		if id := e.typeID(t, nil, complete); id.Valid() {
			ids = append(ids, id)
		}
	}
	e.idList("throw", ids)
}

package astdoc

import (
	"strings"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/errors"
)

// resolver turns document ids into AST nodes. Declarations are allocated
// first so that types may point at them; types are then built depth first
// through the uniquing context.
type resolver struct {
	doc *Document
	tu  *ast.TranslationUnit

	fileByID  map[string]*ast.File
	declByID  map[string]*ast.Decl
	specByID  map[string]*DeclSpec
	typeSpecs map[string]*TypeSpec
	typeByID  map[string]*ast.Type
	building  map[string]bool
}

func newResolver(doc *Document) *resolver {
	return &resolver{
		doc:       doc,
		tu:        ast.NewTranslationUnit(),
		fileByID:  make(map[string]*ast.File),
		declByID:  make(map[string]*ast.Decl),
		specByID:  make(map[string]*DeclSpec),
		typeSpecs: make(map[string]*TypeSpec),
		typeByID:  make(map[string]*ast.Type),
		building:  make(map[string]bool),
	}
}

func unknownRef(owner, field, id string) error {
	err := errors.Wrapf(errors.ErrUnknownReference, "%s: %s %q", owner, field, id)
	return errors.WithDetail(err, "every referenced id must be defined in files, types or decls")
}

func (r *resolver) target() error {
	t := r.doc.Target
	r.tu.Target = ast.TargetInfo{Triple: t.Triple, HasFloat128: t.Float128}
	switch strings.ToLower(t.Language) {
	case "", "c++", "cxx", "cpp":
		r.tu.CPlusPlus = true
	case "c":
		r.tu.CPlusPlus = false
	default:
		return errors.NewInvalidDocumentError("target: unknown language %q", t.Language)
	}
	if t.PointerSize != 0 {
		r.tu.Context.PointerSize = t.PointerSize
		r.tu.Context.PointerAlign = t.PointerSize
	}
	if t.PointerAlign != 0 {
		r.tu.Context.PointerAlign = t.PointerAlign
	}
	return nil
}

func (r *resolver) files() error {
	for _, f := range r.doc.Files {
		if f.ID == "" || f.Name == "" {
			return errors.NewInvalidDocumentError("file entry needs both id and name")
		}
		if _, dup := r.fileByID[f.ID]; dup {
			return errors.NewInvalidDocumentError("file id %q defined twice", f.ID)
		}
		r.fileByID[f.ID] = r.tu.File(f.Name)
	}
	return nil
}

func (r *resolver) decl(owner, field, id string) (*ast.Decl, error) {
	if id == "" {
		return nil, nil
	}
	d, ok := r.declByID[id]
	if !ok {
		return nil, unknownRef(owner, field, id)
	}
	return d, nil
}

func (r *resolver) declList(owner, field string, ids []string) ([]*ast.Decl, error) {
	out := make([]*ast.Decl, 0, len(ids))
	for _, id := range ids {
		d, err := r.decl(owner, field, id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// allocateDecls creates every declaration with its scalar fields.
func (r *resolver) allocateDecls() error {
	for i := range r.doc.Decls {
		s := &r.doc.Decls[i]
		if s.ID == "" {
			return errors.NewInvalidDocumentError("decl #%d has no id", i)
		}
		if _, dup := r.specByID[s.ID]; dup {
			return errors.NewInvalidDocumentError("decl id %q defined twice", s.ID)
		}
		d, err := r.newDecl(s)
		if err != nil {
			return err
		}
		r.specByID[s.ID] = s
		r.declByID[s.ID] = d
	}
	return nil
}

func (r *resolver) newDecl(s *DeclSpec) (*ast.Decl, error) {
	if s.Kind == "" {
		return nil, errors.NewInvalidDocumentError("decl %s has no kind", s.ID)
	}
	d := &ast.Decl{
		Kind:              ast.ParseDeclKind(s.Kind),
		Name:              s.Name,
		Implicit:          s.Implicit,
		Invalid:           s.Invalid,
		Annotations:       s.Annotations,
		Deprecated:        s.Deprecated,
		DLLExport:         s.DLLExport,
		DLLImport:         s.DLLImport,
		Inline:            s.Inline,
		Anonymous:         s.Anonymous,
		IsDefinition:      s.Definition,
		Abstract:          s.Abstract,
		Lambda:            s.Lambda,
		AnonymousRecord:   s.AnonymousRecord,
		InjectedClassName: s.InjectedClassName,
		Size:              s.Size,
		Align:             s.Align,
		TemplateArgs:      s.TemplateArgs,
		Scoped:            s.Scoped,
		Offset:            s.Offset,
		Mutable:           s.Mutable,
		Mangled:           s.Mangled,
		Deleted:           s.Deleted,
		Inlined:           s.Inlined,
		Explicit:          s.Explicit,
		Virtual:           s.Virtual,
		Pure:              s.Pure,
		Operator:          s.Operator,
		LiteralOperator:   s.LiteralOperator,
	}
	if d.Kind == ast.OtherDecl {
		d.KindName = s.Kind
	}
	if s.BitWidth != nil {
		d.BitField, d.BitWidth = true, *s.BitWidth
	}

	var err error
	if d.Access, err = parseAccess(s.Access); err != nil {
		return nil, errors.Wrapf(err, "decl %s", s.ID)
	}
	if d.Tag, err = parseTag(s.Tag, d.Kind); err != nil {
		return nil, errors.Wrapf(err, "decl %s", s.ID)
	}
	if d.Storage, err = parseStorage(s.Storage); err != nil {
		return nil, errors.Wrapf(err, "decl %s", s.ID)
	}

	switch {
	case s.File != "":
		f, ok := r.fileByID[s.File]
		if !ok {
			return nil, unknownRef("decl "+s.ID, "file", s.File)
		}
		d.Loc = ast.Location{File: f, Line: s.Line}
	case s.Builtin:
		d.Loc = ast.Location{Builtin: true}
	}

	for _, e := range s.Enumerators {
		ec := &ast.Decl{
			Kind:        ast.EnumConstantDecl,
			Name:        e.Name,
			Value:       e.Value,
			Parent:      d,
			Deprecated:  e.Deprecated,
			Annotations: e.Annotations,
		}
		if d.Loc.File != nil {
			ec.Loc = ast.Location{File: d.Loc.File, Line: e.Line}
		}
		d.Enumerators = append(d.Enumerators, ec)
	}
	return d, nil
}

func (r *resolver) linkRedecls() error {
	for _, s := range r.doc.Decls {
		if s.RedeclOf == "" {
			continue
		}
		prev, err := r.decl("decl "+s.ID, "redecl_of", s.RedeclOf)
		if err != nil {
			return err
		}
		d := r.declByID[s.ID]
		if prev == d {
			return errors.NewInvalidDocumentError("decl %s redeclares itself", s.ID)
		}
		if prev.Canonical() == d.Canonical() {
			return errors.NewInvalidDocumentError("decl %s: redecl_of chain loops back through %s", s.ID, s.RedeclOf)
		}
		prev.AddRedecl(d)
	}
	return nil
}

// linkDecls wires declaration-to-declaration references.
func (r *resolver) linkDecls() error {
	for _, s := range r.doc.Decls {
		d := r.declByID[s.ID]
		owner := "decl " + s.ID

		members, err := r.declList(owner, "member", s.Members)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.Parent != nil && m.Parent != d {
				return errors.NewInvalidDocumentError("%s: member %s already belongs to another context", owner, m.Name)
			}
			d.AddMember(m)
		}

		if d.Params, err = r.declList(owner, "param", s.Params); err != nil {
			return err
		}
		for _, p := range d.Params {
			p.Parent = d
		}

		refs := []struct {
			field string
			id    string
			dst   **ast.Decl
		}{
			{"pattern", s.Pattern, &d.Pattern},
			{"described_template", s.DescribedTemplate, &d.DescribedTemplate},
			{"specialized_template", s.SpecializedTemplate, &d.SpecializedTemplate},
			{"typedef_for_anon", s.TypedefForAnon, &d.TypedefForAnon},
			{"target", s.Target, &d.Target},
		}
		for _, ref := range refs {
			if *ref.dst, err = r.decl(owner, ref.field, ref.id); err != nil {
				return err
			}
		}
		if d.Specializations, err = r.declList(owner, "specialization", s.Specializations); err != nil {
			return err
		}
		if d.Overrides, err = r.declList(owner, "override", s.Overrides); err != nil {
			return err
		}
		if d.Shadows, err = r.declList(owner, "shadow", s.Shadows); err != nil {
			return err
		}
	}

	// Explicit parents only place declarations no context lists.
	for _, s := range r.doc.Decls {
		if s.Parent == "" {
			continue
		}
		d := r.declByID[s.ID]
		p, err := r.decl("decl "+s.ID, "parent", s.Parent)
		if err != nil {
			return err
		}
		if d.Parent == nil {
			d.Parent = p
		}
	}
	return nil
}

// checkDeclLoops rejects declaration links that never reach an end: a
// parent chain that returns to where it started, or a using-shadow target
// that leads back to itself through targets, definitions and linkage
// specifications.
func (r *resolver) checkDeclLoops() error {
	for _, s := range r.doc.Decls {
		d := r.declByID[s.ID]
		seen := map[*ast.Decl]bool{d: true}
		for p := d.Parent; p != nil; p = p.Parent {
			if seen[p] {
				return errors.NewInvalidDocumentError("decl %s: parent chain loops", s.ID)
			}
			seen[p] = true
		}
	}
	for _, s := range r.doc.Decls {
		d := r.declByID[s.ID]
		if d.Kind != ast.UsingShadowDecl {
			continue
		}
		seen := make(map[*ast.Decl]bool)
		for d != nil {
			d = d.Canonical()
			if d.IsRecord() {
				if def := d.Definition(); def != nil {
					d = def
				}
			}
			if seen[d] {
				return errors.NewInvalidDocumentError("decl %s: target chain loops", s.ID)
			}
			seen[d] = true
			switch d.Kind {
			case ast.UsingShadowDecl:
				d = d.Target
			case ast.LinkageSpecDecl:
				d = d.Parent
			default:
				d = nil
			}
		}
	}
	return nil
}

// typeDecls fills the declaration fields that refer to types and
// expressions.
func (r *resolver) typeDecls() error {
	for _, s := range r.doc.Decls {
		d := r.declByID[s.ID]
		owner := "decl " + s.ID
		var err error
		if d.Type, err = r.optQual(owner, s.Type); err != nil {
			return err
		}
		if d.Underlying, err = r.optQual(owner, s.Underlying); err != nil {
			return err
		}
		for _, b := range s.Bases {
			q, err := r.qual(owner, b.Type)
			if err != nil {
				return err
			}
			a, err := parseAccess(b.Access)
			if err != nil {
				return errors.Wrapf(err, "%s base", owner)
			}
			d.Bases = append(d.Bases, ast.Base{Type: q, Access: a, Virtual: b.Virtual, Offset: b.Offset})
		}
		for _, f := range s.Friends {
			var fr ast.Friend
			if fr.Decl, err = r.decl(owner, "friend", f.Decl); err != nil {
				return err
			}
			if fr.Type, err = r.optQual(owner, f.Type); err != nil {
				return err
			}
			if fr.Decl == nil && fr.Type.IsNull() {
				return errors.NewInvalidDocumentError("%s: friend names neither a decl nor a type", owner)
			}
			d.Friends = append(d.Friends, fr)
		}
		if d.Init, err = r.expr(owner, s.Init); err != nil {
			return err
		}
		if d.UninstantiatedDefault, err = r.expr(owner, s.UninstantiatedDefault); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) expr(owner string, s *ExprSpec) (*ast.Expr, error) {
	if s == nil {
		return nil, nil
	}
	kind, ok := ast.ParseExprKind(s.Kind)
	if !ok {
		return nil, errors.NewInvalidDocumentError("%s: unknown expression kind %q", owner, s.Kind)
	}
	e := &ast.Expr{Kind: kind, Value: s.Value, Postfix: s.Postfix, Arrow: s.Arrow}
	var err error
	if e.Decl, err = r.decl(owner, "expression decl", s.Decl); err != nil {
		return nil, err
	}
	if e.Type, err = r.optQual(owner, s.Type); err != nil {
		return nil, err
	}
	for i := range s.Args {
		arg, err := r.expr(owner, &s.Args[i])
		if err != nil {
			return nil, err
		}
		e.Args = append(e.Args, arg)
	}
	return e, nil
}

func (r *resolver) root() error {
	if r.doc.Root == "" {
		return errors.NewInvalidDocumentError("missing root declaration")
	}
	d, err := r.decl("document", "root", r.doc.Root)
	if err != nil {
		return err
	}
	if d.Kind != ast.TranslationUnitDecl {
		return errors.NewInvalidDocumentError("root %s is a %s, not a TranslationUnit", r.doc.Root, d.Kind)
	}
	r.tu.Root = d
	return nil
}

func parseAccess(s string) (ast.Access, error) {
	switch s {
	case "", "none":
		return ast.AccessNone, nil
	case "public":
		return ast.AccessPublic, nil
	case "protected":
		return ast.AccessProtected, nil
	case "private":
		return ast.AccessPrivate, nil
	}
	return 0, errors.NewInvalidDocumentError("unknown access %q", s)
}

func parseTag(s string, kind ast.DeclKind) (ast.TagKind, error) {
	switch s {
	case "":
		if kind == ast.EnumDecl {
			return ast.TagEnum, nil
		}
		return ast.TagStruct, nil
	case "struct":
		return ast.TagStruct, nil
	case "class":
		return ast.TagClass, nil
	case "union":
		return ast.TagUnion, nil
	case "__interface", "interface":
		return ast.TagInterface, nil
	case "enum":
		return ast.TagEnum, nil
	}
	return 0, errors.NewInvalidDocumentError("unknown tag %q", s)
}

func parseStorage(s string) (ast.StorageClass, error) {
	switch s {
	case "", "none":
		return ast.StorageNone, nil
	case "static":
		return ast.StorageStatic, nil
	case "extern":
		return ast.StorageExtern, nil
	}
	return 0, errors.NewInvalidDocumentError("unknown storage class %q", s)
}

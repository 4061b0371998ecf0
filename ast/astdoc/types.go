package astdoc

import (
	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/errors"
)

func (r *resolver) buildTypes() error {
	for i := range r.doc.Types {
		s := &r.doc.Types[i]
		if s.ID == "" {
			return errors.NewInvalidDocumentError("type #%d has no id", i)
		}
		if _, dup := r.typeSpecs[s.ID]; dup {
			return errors.NewInvalidDocumentError("type id %q defined twice", s.ID)
		}
		r.typeSpecs[s.ID] = s
	}
	for _, s := range r.doc.Types {
		if _, err := r.typ("types", s.ID); err != nil {
			return err
		}
	}
	return nil
}

// typ builds the type with the given id. Types are built depth first, so
// a reference back to a type under construction is a cycle that no
// declaration breaks.
func (r *resolver) typ(owner, id string) (*ast.Type, error) {
	if t, ok := r.typeByID[id]; ok {
		return t, nil
	}
	s, ok := r.typeSpecs[id]
	if !ok {
		return nil, unknownRef(owner, "type", id)
	}
	if r.building[id] {
		err := errors.NewInvalidDocumentError("type %s refers to itself", id)
		return nil, errors.WithHint(err, "recursive types must go through a record or enum declaration")
	}
	r.building[id] = true
	defer delete(r.building, id)

	t, err := r.newType(s)
	if err != nil {
		return nil, err
	}
	r.typeByID[id] = t
	return t, nil
}

func (r *resolver) qual(owner string, ref TypeRef) (ast.QualType, error) {
	t, err := r.typ(owner, ref.Type)
	if err != nil {
		return ast.QualType{}, err
	}
	q := ast.QualType{Type: t}
	if ref.Const {
		q.Quals |= ast.Const
	}
	if ref.Volatile {
		q.Quals |= ast.Volatile
	}
	if ref.Restrict {
		q.Quals |= ast.Restrict
	}
	return q, nil
}

func (r *resolver) optQual(owner string, ref *TypeRef) (ast.QualType, error) {
	if ref == nil {
		return ast.QualType{}, nil
	}
	return r.qual(owner, *ref)
}

func (r *resolver) newType(s *TypeSpec) (*ast.Type, error) {
	ctx := r.tu.Context
	owner := "type " + s.ID
	if s.Class == "" {
		return nil, errors.NewInvalidDocumentError("%s has no class", owner)
	}
	class := ast.ParseTypeClass(s.Class)

	elem := func() (ast.QualType, error) {
		if s.Elem == nil {
			return ast.QualType{}, errors.NewInvalidDocumentError("%s: %s needs elem", owner, s.Class)
		}
		return r.qual(owner, *s.Elem)
	}
	decl := func() (*ast.Decl, error) {
		if s.Decl == "" {
			return nil, errors.NewInvalidDocumentError("%s: %s needs decl", owner, s.Class)
		}
		return r.decl(owner, "decl", s.Decl)
	}

	switch class {
	case ast.BuiltinType:
		if s.Name == "" {
			return nil, errors.NewInvalidDocumentError("%s: Builtin needs name", owner)
		}
		return ctx.Builtin(s.Name, s.Size, s.Align), nil

	case ast.PointerType, ast.LValueReferenceType, ast.RValueReferenceType, ast.ParenType,
		ast.IncompleteArrayType, ast.ConstantArrayType, ast.DecayedType:
		e, err := elem()
		if class == ast.DecayedType {
			if s.Orig == nil {
				return nil, errors.NewInvalidDocumentError("%s: Decayed needs orig", owner)
			}
			e, err = r.qual(owner, *s.Orig)
		}
		if err != nil {
			return nil, err
		}
		switch class {
		case ast.PointerType:
			return ctx.Pointer(e), nil
		case ast.LValueReferenceType:
			return ctx.LValueReference(e), nil
		case ast.RValueReferenceType:
			return ctx.RValueReference(e), nil
		case ast.ParenType:
			return ctx.Paren(e), nil
		case ast.IncompleteArrayType:
			return ctx.IncompleteArray(e), nil
		case ast.ConstantArrayType:
			return ctx.ConstantArray(e, s.Count), nil
		default:
			return ctx.Decayed(e), nil
		}

	case ast.MemberPointerType:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		if s.MemberOf == "" {
			return nil, errors.NewInvalidDocumentError("%s: MemberPointer needs member_of", owner)
		}
		cls, err := r.qual(owner, TypeRef{Type: s.MemberOf})
		if err != nil {
			return nil, err
		}
		return ctx.MemberPointer(e, cls.Type), nil

	case ast.FunctionProtoType:
		return r.functionProto(owner, s)

	case ast.FunctionNoProtoType:
		if s.Result == nil {
			return nil, errors.NewInvalidDocumentError("%s: FunctionNoProto needs result", owner)
		}
		res, err := r.qual(owner, *s.Result)
		if err != nil {
			return nil, err
		}
		return ctx.FunctionNoProto(res), nil

	case ast.TypedefType, ast.RecordType, ast.EnumType:
		d, err := decl()
		if err != nil {
			return nil, err
		}
		switch {
		case class == ast.RecordType:
			return ctx.Record(d), nil
		case class == ast.EnumType:
			return ctx.Enum(d), nil
		case s.Dependent:
			return ctx.DependentTypedef(d), nil
		}
		return ctx.Typedef(d), nil

	case ast.ElaboratedType:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		return ctx.Elaborated(e, s.Keyword, s.Qualifier), nil

	case ast.AdjustedType, ast.AttributedType:
		e, err := elem()
		if err != nil {
			return nil, err
		}
		if s.Orig == nil {
			return nil, errors.NewInvalidDocumentError("%s: %s needs orig", owner, s.Class)
		}
		orig, err := r.qual(owner, *s.Orig)
		if err != nil {
			return nil, err
		}
		if class == ast.AdjustedType {
			return ctx.Adjusted(orig, e), nil
		}
		return ctx.Attributed(orig, e, s.Name), nil

	case ast.AutoType, ast.SubstTemplateTypeParmType, ast.TemplateSpecializationType:
		// The sugared type is optional for auto and template specializations.
		var e ast.QualType
		if s.Elem != nil || class == ast.SubstTemplateTypeParmType {
			var err error
			if e, err = elem(); err != nil {
				return nil, err
			}
		}
		switch class {
		case ast.AutoType:
			return ctx.Auto(e), nil
		case ast.SubstTemplateTypeParmType:
			return ctx.SubstTemplateTypeParm(e, s.Name), nil
		}
		return ctx.TemplateSpecialization(s.Name, s.Args, e), nil
	}
	return ctx.Opaque(s.Class, s.Name), nil
}

func (r *resolver) functionProto(owner string, s *TypeSpec) (*ast.Type, error) {
	if s.Result == nil {
		return nil, errors.NewInvalidDocumentError("%s: FunctionProto needs result", owner)
	}
	p := ast.FunctionProto{Variadic: s.Variadic, DynamicException: s.DynamicException}
	var err error
	if p.Result, err = r.qual(owner, *s.Result); err != nil {
		return nil, err
	}
	for _, ref := range s.Params {
		q, err := r.qual(owner, ref)
		if err != nil {
			return nil, err
		}
		p.Params = append(p.Params, q)
	}
	for _, ref := range s.Throw {
		q, err := r.qual(owner, ref)
		if err != nil {
			return nil, err
		}
		p.Exceptions = append(p.Exceptions, q)
	}
	if len(p.Exceptions) > 0 {
		p.DynamicException = true
	}
	for _, c := range s.MethodQuals {
		switch c {
		case 'c':
			p.MethodQuals |= ast.Const
		case 'v':
			p.MethodQuals |= ast.Volatile
		case 'r':
			p.MethodQuals |= ast.Restrict
		default:
			return nil, errors.NewInvalidDocumentError("%s: unknown method qualifier %q", owner, c)
		}
	}
	switch s.CallConv {
	case "", "c", "cdecl":
		p.CallConv = ast.CallC
	case "stdcall":
		p.CallConv = ast.CallStd
	case "fastcall":
		p.CallConv = ast.CallFast
	case "thiscall":
		p.CallConv = ast.CallThis
	default:
		p.CallConv = ast.CallOther
	}
	return r.tu.Context.FunctionProto(p), nil
}

package ast

// Builder assembles a translation unit programmatically. Every declaration
// it creates is placed on the next line of the builder's current file.
type Builder struct {
	TU   *TranslationUnit
	File *File
	line uint
}

// NewBuilder starts a C++ translation unit whose declarations live in fileName.
func NewBuilder(fileName string) *Builder {
	tu := NewTranslationUnit()
	return &Builder{TU: tu, File: tu.File(fileName)}
}

// Ctx returns the unit's type context.
func (b *Builder) Ctx() *Context { return b.TU.Context }

// Root returns the translation unit declaration.
func (b *Builder) Root() *Decl { return b.TU.Root }

// Loc returns the next source location.
func (b *Builder) Loc() Location {
	b.line++
	return Location{File: b.File, Line: b.line}
}

// Builtin returns an unqualified fundamental type.
func (b *Builder) Builtin(name string, size, align uint64) QualType {
	return QualType{Type: b.Ctx().Builtin(name, size, align)}
}

// Int returns int.
func (b *Builder) Int() QualType { return b.Builtin("int", 32, 32) }

// Char returns char.
func (b *Builder) Char() QualType { return b.Builtin("char", 8, 8) }

// Void returns void.
func (b *Builder) Void() QualType { return b.Builtin("void", 0, 8) }

// PointerTo returns an unqualified pointer to q.
func (b *Builder) PointerTo(q QualType) QualType { return QualType{Type: b.Ctx().Pointer(q)} }

func (b *Builder) add(parent *Decl, d *Decl) *Decl {
	if parent == nil {
		parent = b.TU.Root
	}
	d.Loc = b.Loc()
	if parent.IsRecord() && d.Access == AccessNone {
		if parent.Tag == TagClass {
			d.Access = AccessPrivate
		} else {
			d.Access = AccessPublic
		}
	}
	return parent.AddMember(d)
}

// Namespace declares namespace name in parent.
func (b *Builder) Namespace(parent *Decl, name string) *Decl {
	return b.add(parent, &Decl{Kind: NamespaceDecl, Name: name})
}

// Record declares a C++ class type. Definitions get the given layout.
func (b *Builder) Record(parent *Decl, tag TagKind, name string, definition bool) *Decl {
	d := &Decl{Kind: CXXRecordDecl, Tag: tag, Name: name, IsDefinition: definition}
	if definition {
		d.Size, d.Align = 8, 8
	}
	return b.add(parent, d)
}

// Struct declares or defines struct name.
func (b *Builder) Struct(parent *Decl, name string, definition bool) *Decl {
	return b.Record(parent, TagStruct, name, definition)
}

// Redeclare adds a redeclaration of d in parent, e.g. the definition
// following a forward declaration.
func (b *Builder) Redeclare(parent *Decl, d *Decl, definition bool) *Decl {
	r := &Decl{Kind: d.Kind, Tag: d.Tag, Name: d.Name, IsDefinition: definition, Inline: d.Inline}
	if definition {
		r.Size, r.Align = d.Size, d.Align
		if r.Size == 0 {
			r.Size, r.Align = 8, 8
		}
	}
	d.AddRedecl(r)
	return b.add(parent, r)
}

// RecordType returns the type of record d.
func (b *Builder) RecordType(d *Decl) QualType { return QualType{Type: b.Ctx().Record(d)} }

// Enum defines enum name with the given enumerators numbered from zero.
func (b *Builder) Enum(parent *Decl, name string, enumerators ...string) *Decl {
	d := b.add(parent, &Decl{Kind: EnumDecl, Tag: TagEnum, Name: name, IsDefinition: true, Size: 32, Align: 32})
	for i, e := range enumerators {
		ec := &Decl{Kind: EnumConstantDecl, Name: e, Value: int64(i), Parent: d, Loc: b.Loc()}
		d.Enumerators = append(d.Enumerators, ec)
	}
	return d
}

// Typedef declares typedef underlying name.
func (b *Builder) Typedef(parent *Decl, name string, underlying QualType) *Decl {
	return b.add(parent, &Decl{Kind: TypedefDecl, Name: name, Underlying: underlying})
}

// TypedefType returns the sugar type naming typedef d.
func (b *Builder) TypedefType(d *Decl) QualType { return QualType{Type: b.Ctx().Typedef(d)} }

// Var declares a variable.
func (b *Builder) Var(parent *Decl, name string, t QualType) *Decl {
	return b.add(parent, &Decl{Kind: VarDecl, Name: name, Type: t, Mangled: name})
}

// Field declares a data member at the given bit offset.
func (b *Builder) Field(record *Decl, name string, t QualType, offset uint64) *Decl {
	return b.add(record, &Decl{Kind: FieldDecl, Name: name, Type: t, Offset: offset})
}

// Param creates a function parameter.
func (b *Builder) Param(name string, t QualType) *Decl {
	return &Decl{Kind: ParmVarDecl, Name: name, Type: t, Loc: Location{File: b.File, Line: b.line}}
}

// FunctionType builds the prototype for result and parameters.
func (b *Builder) FunctionType(result QualType, variadic bool, params ...*Decl) QualType {
	p := FunctionProto{Result: result, Variadic: variadic}
	for _, pd := range params {
		p.Params = append(p.Params, pd.Type)
	}
	return QualType{Type: b.Ctx().FunctionProto(p)}
}

// Function declares a function of the given kind (FunctionDecl, CXXMethodDecl, ...).
func (b *Builder) Function(parent *Decl, kind DeclKind, name string, result QualType, params ...*Decl) *Decl {
	d := &Decl{Kind: kind, Name: name, Type: b.FunctionType(result, false, params...), Params: params}
	if kind != CXXConstructorDecl && kind != CXXDestructorDecl {
		d.Mangled = mangleHint(name)
	}
	b.add(parent, d)
	for _, p := range params {
		p.Parent = d
	}
	return d
}

func mangleHint(name string) string { return "_Z" + uitoa(uint64(len(name))) + name }

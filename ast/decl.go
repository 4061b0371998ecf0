package ast

// DeclKind enumerates declaration kinds. String() yields the kind name
// written into Unimplemented elements.
type DeclKind int

const (
	TranslationUnitDecl DeclKind = iota
	NamespaceDecl
	NamespaceAliasDecl
	LinkageSpecDecl
	RecordDecl
	CXXRecordDecl
	ClassTemplateSpecializationDecl
	ClassTemplatePartialSpecializationDecl
	ClassTemplateDecl
	FunctionTemplateDecl
	VarTemplateDecl
	TypeAliasTemplateDecl
	TypedefDecl
	TypeAliasDecl
	EnumDecl
	EnumConstantDecl
	FieldDecl
	IndirectFieldDecl
	VarDecl
	ParmVarDecl
	FunctionDecl
	CXXMethodDecl
	CXXConstructorDecl
	CXXDestructorDecl
	CXXConversionDecl
	UsingDecl
	UsingShadowDecl
	UsingDirectiveDecl
	AccessSpecDecl
	FriendDecl
	EmptyDecl
	StaticAssertDecl
	OtherDecl
)

var declKindNames = map[DeclKind]string{
	TranslationUnitDecl:                    "TranslationUnit",
	NamespaceDecl:                          "Namespace",
	NamespaceAliasDecl:                     "NamespaceAlias",
	LinkageSpecDecl:                        "LinkageSpec",
	RecordDecl:                             "Record",
	CXXRecordDecl:                          "CXXRecord",
	ClassTemplateSpecializationDecl:        "ClassTemplateSpecialization",
	ClassTemplatePartialSpecializationDecl: "ClassTemplatePartialSpecialization",
	ClassTemplateDecl:                      "ClassTemplate",
	FunctionTemplateDecl:                   "FunctionTemplate",
	VarTemplateDecl:                        "VarTemplate",
	TypeAliasTemplateDecl:                  "TypeAliasTemplate",
	TypedefDecl:                            "Typedef",
	TypeAliasDecl:                          "TypeAlias",
	EnumDecl:                               "Enum",
	EnumConstantDecl:                       "EnumConstant",
	FieldDecl:                              "Field",
	IndirectFieldDecl:                      "IndirectField",
	VarDecl:                                "Var",
	ParmVarDecl:                            "ParmVar",
	FunctionDecl:                           "Function",
	CXXMethodDecl:                          "CXXMethod",
	CXXConstructorDecl:                     "CXXConstructor",
	CXXDestructorDecl:                      "CXXDestructor",
	CXXConversionDecl:                      "CXXConversion",
	UsingDecl:                              "Using",
	UsingShadowDecl:                        "UsingShadow",
	UsingDirectiveDecl:                     "UsingDirective",
	AccessSpecDecl:                         "AccessSpec",
	FriendDecl:                             "Friend",
	EmptyDecl:                              "Empty",
	StaticAssertDecl:                       "StaticAssert",
}

func (k DeclKind) String() string {
	if n, ok := declKindNames[k]; ok {
		return n
	}
	return "Other"
}

// ParseDeclKind maps a kind name back to its DeclKind.
// Unknown names map to OtherDecl.
func ParseDeclKind(name string) DeclKind {
	for k, n := range declKindNames {
		if n == name {
			return k
		}
	}
	return OtherDecl
}

// TagKind is the keyword a record or enum was declared with.
type TagKind int

const (
	TagStruct TagKind = iota
	TagClass
	TagUnion
	TagInterface
	TagEnum
)

// Access is a class member access specifier.
type Access int

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return ""
}

// StorageClass is a declared storage class.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageStatic
	StorageExtern
)

// File is a source file. Identity is by pointer.
type File struct {
	Name string
}

// Location is a declaration's expansion location. A nil File with Builtin
// set denotes a valid location inside the compiler's predefines buffer.
type Location struct {
	File    *File
	Line    uint
	Builtin bool
}

// Valid reports whether the location points anywhere at all.
func (l Location) Valid() bool { return l.File != nil || l.Builtin }

// Base is one base-class specifier of a record.
type Base struct {
	Type    QualType
	Access  Access
	Virtual bool
	// Offset in bytes of a non-virtual base within the derived class.
	Offset int64
}

// Friend is one friend declaration: either a declaration or a type.
type Friend struct {
	Decl *Decl
	Type QualType
}

// Decl is a declaration node. It is a tagged union over DeclKind; the
// fields that apply depend on Kind.
type Decl struct {
	Kind DeclKind
	// KindName names the kind of an OtherDecl node.
	KindName string

	Name     string
	Parent   *Decl
	Loc      Location
	Implicit bool
	Invalid  bool
	Access   Access

	Annotations []string
	Deprecated  bool
	DLLExport   bool
	DLLImport   bool

	// Members in declaration order, for declaration contexts.
	Members []*Decl

	// Namespace.
	Inline    bool
	Anonymous bool

	// Records and enums.
	Tag               TagKind
	IsDefinition      bool
	Abstract          bool
	Lambda            bool
	AnonymousRecord   bool
	InjectedClassName bool
	Bases             []Base
	Friends           []Friend
	Size, Align       uint64
	TemplateArgs      string
	Enumerators       []*Decl
	TypedefForAnon    *Decl
	Scoped            bool

	// Templates: the templated pattern, its template, and instantiations.
	Pattern             *Decl
	DescribedTemplate   *Decl
	SpecializedTemplate *Decl
	Specializations     []*Decl

	// Typedef and TypeAlias.
	Underlying QualType

	// Type of fields, variables, parameters and functions.
	Type QualType

	// EnumConstant value.
	Value int64

	// Field.
	BitField bool
	BitWidth uint
	Offset   uint64
	Mutable  bool

	// Variables, parameters and functions.
	Init                  *Expr
	UninstantiatedDefault *Expr
	Storage               StorageClass
	Mangled               string

	// Functions.
	Params          []*Decl
	Deleted         bool
	Inlined         bool
	Explicit        bool
	Virtual         bool
	Pure            bool
	Operator        string
	LiteralOperator bool
	Overrides       []*Decl

	// Using, UsingShadow, UsingDirective and NamespaceAlias targets.
	Shadows []*Decl
	Target  *Decl

	first   *Decl
	redecls []*Decl
}

// AddRedecl links r as a redeclaration of d's entity.
func (d *Decl) AddRedecl(r *Decl) {
	c := d.Canonical()
	if len(c.redecls) == 0 {
		c.redecls = []*Decl{c}
	}
	r.first = c
	c.redecls = append(c.redecls, r)
}

// Canonical returns the first declaration of the entity.
func (d *Decl) Canonical() *Decl {
	if d.first != nil {
		return d.first
	}
	return d
}

// Redecls lists every declaration of the entity, first one first.
func (d *Decl) Redecls() []*Decl {
	c := d.Canonical()
	if len(c.redecls) == 0 {
		return []*Decl{c}
	}
	return c.redecls
}

// MostRecent returns the last declaration of the entity.
func (d *Decl) MostRecent() *Decl {
	r := d.Redecls()
	return r[len(r)-1]
}

// IsRecord reports whether d declares a struct, class or union.
func (d *Decl) IsRecord() bool {
	switch d.Kind {
	case RecordDecl, CXXRecordDecl, ClassTemplateSpecializationDecl, ClassTemplatePartialSpecializationDecl:
		return true
	}
	return false
}

// IsCXXRecord reports whether d is a C++ class declaration.
func (d *Decl) IsCXXRecord() bool {
	return d.IsRecord() && d.Kind != RecordDecl
}

// IsFunction reports whether d declares a function of any flavor.
func (d *Decl) IsFunction() bool {
	switch d.Kind {
	case FunctionDecl, CXXMethodDecl, CXXConstructorDecl, CXXDestructorDecl, CXXConversionDecl:
		return true
	}
	return false
}

// IsTemplate reports whether d is an uninstantiated template.
func (d *Decl) IsTemplate() bool {
	switch d.Kind {
	case ClassTemplateDecl, FunctionTemplateDecl, VarTemplateDecl, TypeAliasTemplateDecl:
		return true
	}
	return false
}

// IsDeclContext reports whether d can contain member declarations.
func (d *Decl) IsDeclContext() bool {
	switch d.Kind {
	case TranslationUnitDecl, NamespaceDecl, LinkageSpecDecl, EnumDecl:
		return true
	}
	return d.IsRecord()
}

// IsInlineNamespace reports whether d is an inline namespace.
func (d *Decl) IsInlineNamespace() bool {
	return d.Kind == NamespaceDecl && d.Canonical().Inline
}

// Definition returns the defining declaration of a record or enum, if any.
func (d *Decl) Definition() *Decl {
	for _, r := range d.Redecls() {
		if r.IsDefinition {
			return r
		}
	}
	return nil
}

// IsCompleteType reports whether a type declaration has a known layout.
func (d *Decl) IsCompleteType() bool {
	switch {
	case d.IsRecord(), d.Kind == EnumDecl:
		return d.Definition() != nil
	case d.Kind == TypedefDecl, d.Kind == TypeAliasDecl:
		return true
	}
	return false
}

// Identifier returns the plain identifier naming d, or "" for unnamed
// declarations and special names (operators, constructors, conversions).
func (d *Decl) Identifier() string {
	switch d.Kind {
	case CXXConstructorDecl, CXXDestructorDecl, CXXConversionDecl:
		return ""
	}
	if d.Operator != "" || d.LiteralOperator {
		return ""
	}
	return d.Name
}

// NameForDiagnostic is the record name with template arguments appended.
func (d *Decl) NameForDiagnostic() string {
	return d.Name + d.TemplateArgs
}

// AddMember appends m to d's members and sets its parent.
func (d *Decl) AddMember(m *Decl) *Decl {
	m.Parent = d
	d.Members = append(d.Members, m)
	return m
}

// IsVariadic reports whether a function declaration takes an ellipsis.
func (d *Decl) IsVariadic() bool {
	if p := FunctionProtoOf(d.Type); p != nil {
		return p.Variadic
	}
	return false
}

// IsConstMethod reports whether a method is const-qualified.
func (d *Decl) IsConstMethod() bool {
	if p := FunctionProtoOf(d.Type); p != nil {
		return p.MethodQuals.IsConst()
	}
	return false
}

// ReturnType is the declared result type of a function.
func (d *Decl) ReturnType() QualType {
	if p := FunctionProtoOf(d.Type); p != nil {
		return p.Result
	}
	d2 := Desugar(d.Type)
	if d2.Type != nil {
		return d2.Type.Result
	}
	return QualType{}
}

// IsTransparentContext reports whether names declared in d are visible in its parent.
func (d *Decl) IsTransparentContext() bool {
	switch d.Kind {
	case LinkageSpecDecl:
		return true
	case NamespaceDecl:
		return d.IsInlineNamespace()
	case EnumDecl:
		return !d.Scoped
	}
	return false
}

package ast

// TypeClass enumerates the type node classes the serializer understands.
// Classes it has no encoder for still round-trip through OtherType, which
// carries the class name for the Unimplemented fallback.
type TypeClass int

const (
	BuiltinType TypeClass = iota
	PointerType
	LValueReferenceType
	RValueReferenceType
	MemberPointerType
	ConstantArrayType
	IncompleteArrayType
	FunctionProtoType
	FunctionNoProtoType
	ParenType
	TypedefType
	ElaboratedType
	RecordType
	EnumType
	AdjustedType
	DecayedType
	AttributedType
	AutoType
	SubstTemplateTypeParmType
	TemplateSpecializationType
	OtherType
)

var typeClassNames = map[TypeClass]string{
	BuiltinType:                "Builtin",
	PointerType:                "Pointer",
	LValueReferenceType:        "LValueReference",
	RValueReferenceType:        "RValueReference",
	MemberPointerType:          "MemberPointer",
	ConstantArrayType:          "ConstantArray",
	IncompleteArrayType:        "IncompleteArray",
	FunctionProtoType:          "FunctionProto",
	FunctionNoProtoType:        "FunctionNoProto",
	ParenType:                  "Paren",
	TypedefType:                "Typedef",
	ElaboratedType:             "Elaborated",
	RecordType:                 "Record",
	EnumType:                   "Enum",
	AdjustedType:               "Adjusted",
	DecayedType:                "Decayed",
	AttributedType:             "Attributed",
	AutoType:                   "Auto",
	SubstTemplateTypeParmType:  "SubstTemplateTypeParm",
	TemplateSpecializationType: "TemplateSpecialization",
}

func (c TypeClass) String() string {
	if n, ok := typeClassNames[c]; ok {
		return n
	}
	return "Other"
}

// ParseTypeClass maps a class name back to its TypeClass.
// Unknown names map to OtherType.
func ParseTypeClass(name string) TypeClass {
	for c, n := range typeClassNames {
		if n == name {
			return c
		}
	}
	return OtherType
}

// Qualifiers holds local cv and restrict qualification bits.
type Qualifiers uint8

const (
	Const Qualifiers = 1 << iota
	Volatile
	Restrict
)

func (q Qualifiers) IsConst() bool    { return q&Const != 0 }
func (q Qualifiers) IsVolatile() bool { return q&Volatile != 0 }
func (q Qualifiers) IsRestrict() bool { return q&Restrict != 0 }

// Suffix renders the qualifiers as the c/v/r letters used in legacy ids.
func (q Qualifiers) Suffix() string {
	s := ""
	if q.IsConst() {
		s += "c"
	}
	if q.IsVolatile() {
		s += "v"
	}
	if q.IsRestrict() {
		s += "r"
	}
	return s
}

// Rank orders qualifier sets: const dominates volatile, volatile dominates restrict.
func (q Qualifiers) Rank() int {
	r := 0
	if q.IsConst() {
		r += 4
	}
	if q.IsVolatile() {
		r += 2
	}
	if q.IsRestrict() {
		r++
	}
	return r
}

// CallConv is a function type calling convention.
type CallConv int

const (
	CallC CallConv = iota
	CallStd
	CallFast
	CallThis
	CallOther
)

// QualType is a type with local qualifiers.
type QualType struct {
	Type  *Type
	Quals Qualifiers
}

// IsNull reports whether q refers to no type.
func (q QualType) IsNull() bool { return q.Type == nil }

// WithQuals adds qualifiers.
func (q QualType) WithQuals(extra Qualifiers) QualType {
	return QualType{Type: q.Type, Quals: q.Quals | extra}
}

// Unqualified drops local qualifiers.
func (q QualType) Unqualified() QualType { return QualType{Type: q.Type} }

// Type is one uniqued type node. Instances are created through Context so
// that structurally identical requests share a node.
type Type struct {
	Class TypeClass

	// ClassName names the class of an OtherType node.
	ClassName string

	// Builtin spelling and layout, also used for OtherType nodes with a known layout.
	Name        string
	Size, Align uint64

	// Elem is the pointee, element, inner, named, replacement, desugared,
	// adjusted, equivalent or deduced type depending on Class.
	Elem QualType
	// Orig is the type as written for Adjusted and Decayed nodes.
	Orig QualType
	// MemberOf is the class type of a MemberPointer.
	MemberOf *Type
	// ArraySize is the element count of a ConstantArray.
	ArraySize uint64

	// Function prototype.
	Result           QualType
	Params           []QualType
	Variadic         bool
	MethodQuals      Qualifiers
	CallConv         CallConv
	DynamicException bool
	Exceptions       []QualType

	// Decl is the declaration behind Typedef, Record and Enum types.
	Decl *Decl

	// Keyword is the written tag keyword of an Elaborated type ("struct",
	// "class", "union", "enum", "typename" or empty).
	Keyword string
	// Qualifier is the written nested-name-specifier of an Elaborated type.
	Qualifier string

	// TemplateName and TemplateArgs spell a TemplateSpecialization.
	TemplateName string
	TemplateArgs string

	// Dependent marks instantiation-dependent types.
	Dependent bool

	id uint64
}

// IsElaboratedTypeSpecifier reports whether an Elaborated type was written
// with a tag keyword.
func (t *Type) IsElaboratedTypeSpecifier() bool {
	switch t.Keyword {
	case "struct", "class", "union", "enum", "__interface":
		return true
	}
	return false
}

// IsSugared reports whether the node is sugar over another type.
func (t *Type) IsSugared() bool {
	switch t.Class {
	case ParenType, TypedefType, ElaboratedType, AdjustedType, DecayedType,
		AttributedType, SubstTemplateTypeParmType:
		return true
	case AutoType, TemplateSpecializationType:
		return t.Elem.Type != nil
	}
	return false
}

// SingleStepDesugar removes one layer of sugar. Non-sugar types are returned unchanged.
func (t *Type) SingleStepDesugar() QualType {
	switch t.Class {
	case TypedefType:
		if t.Decl != nil {
			return t.Decl.Underlying
		}
	case ParenType, ElaboratedType, AdjustedType, DecayedType, AttributedType,
		SubstTemplateTypeParmType, AutoType, TemplateSpecializationType:
		if t.Elem.Type != nil {
			return t.Elem
		}
	}
	return QualType{Type: t}
}

// Desugar strips all top-level sugar, accumulating qualifiers.
func Desugar(q QualType) QualType {
	for q.Type != nil && q.Type.IsSugared() {
		next := q.Type.SingleStepDesugar()
		q = next.WithQuals(q.Quals)
	}
	return q
}

// FunctionProtoOf returns the prototype behind q, looking through sugar.
func FunctionProtoOf(q QualType) *Type {
	d := Desugar(q)
	if d.Type != nil && d.Type.Class == FunctionProtoType {
		return d.Type
	}
	return nil
}

// IsRValueReference reports whether q is an rvalue reference after desugaring.
func IsRValueReference(q QualType) bool {
	d := Desugar(q)
	return d.Type != nil && d.Type.Class == RValueReferenceType
}

// IsFunctionType reports whether the canonical form of q is a function type.
func IsFunctionType(q QualType) bool {
	d := Desugar(q)
	return d.Type != nil && (d.Type.Class == FunctionProtoType || d.Type.Class == FunctionNoProtoType)
}

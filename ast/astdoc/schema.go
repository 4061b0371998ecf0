// Package astdoc loads a translation unit from an AST document: a YAML or
// JSON description of the declarations and types an external frontend
// produced. Entities reference each other by document id.
//
// A minimal document:
//
//	schema: "1.0"
//	files:
//	  - {id: f1, name: a.h}
//	types:
//	  - {id: t1, class: Builtin, name: int, size: 32, align: 32}
//	decls:
//	  - {id: d0, kind: TranslationUnit, members: [d1]}
//	  - {id: d1, kind: Var, name: x, type: t1, file: f1, line: 1}
//	root: d0
package astdoc

import (
	"gopkg.in/yaml.v3"

	"github.com/teranos/castxml/errors"
)

// SupportedSchema is the semver constraint document schemas must satisfy.
const SupportedSchema = "^1.0"

// Document is the decoded form of an AST document.
type Document struct {
	Schema string     `yaml:"schema"`
	Target TargetSpec `yaml:"target"`
	Files  []FileSpec `yaml:"files"`
	Types  []TypeSpec `yaml:"types"`
	Decls  []DeclSpec `yaml:"decls"`
	Root   string     `yaml:"root"`
}

// TargetSpec describes the compilation target.
type TargetSpec struct {
	Triple       string `yaml:"triple"`
	Float128     bool   `yaml:"float128"`
	Language     string `yaml:"language"`      // "c" or "c++" (default: c++)
	PointerSize  uint64 `yaml:"pointer_size"`  // Bits (default: 64)
	PointerAlign uint64 `yaml:"pointer_align"` // Bits (default: pointer_size)
}

type FileSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// TypeRef is a possibly qualified type reference. In a document it is
// either a bare id or a mapping with the id under "type".
type TypeRef struct {
	Type     string `yaml:"type"`
	Const    bool   `yaml:"const"`
	Volatile bool   `yaml:"volatile"`
	Restrict bool   `yaml:"restrict"`
}

// UnmarshalYAML accepts both reference forms.
func (r *TypeRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Type = value.Value
		return nil
	}
	type plain TypeRef
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Type == "" {
		return errors.NewInvalidDocumentError("line %d: qualified type reference without a type id", value.Line)
	}
	*r = TypeRef(p)
	return nil
}

// TypeSpec is one type node. Which fields apply depends on Class; class
// names without a dedicated node describe opaque types.
type TypeSpec struct {
	ID    string `yaml:"id"`
	Class string `yaml:"class"`

	Name  string `yaml:"name"`
	Size  uint64 `yaml:"size"`
	Align uint64 `yaml:"align"`

	Elem     *TypeRef `yaml:"elem"`
	Orig     *TypeRef `yaml:"orig"`
	MemberOf string   `yaml:"member_of"`
	Count    uint64   `yaml:"count"`

	Result           *TypeRef  `yaml:"result"`
	Params           []TypeRef `yaml:"params"`
	Variadic         bool      `yaml:"variadic"`
	MethodQuals      string    `yaml:"method_quals"` // Letters c, v and r
	CallConv         string    `yaml:"callconv"`     // stdcall, fastcall, thiscall (default: C)
	DynamicException bool      `yaml:"dynamic_exception"`
	Throw            []TypeRef `yaml:"throw"`

	Decl      string `yaml:"decl"`
	Dependent bool   `yaml:"dependent"`
	Keyword   string `yaml:"keyword"`
	Qualifier string `yaml:"qualifier"`
	Args      string `yaml:"args"`
}

type BaseSpec struct {
	Type    TypeRef `yaml:"type"`
	Access  string  `yaml:"access"`
	Virtual bool    `yaml:"virtual"`
	Offset  int64   `yaml:"offset"`
}

type FriendSpec struct {
	Decl string   `yaml:"decl"`
	Type *TypeRef `yaml:"type"`
}

// EnumeratorSpec is one enumerator of an enum declaration.
type EnumeratorSpec struct {
	Name        string   `yaml:"name"`
	Value       int64    `yaml:"value"`
	Line        uint     `yaml:"line"`
	Deprecated  bool     `yaml:"deprecated"`
	Annotations []string `yaml:"annotations"`
}

// ExprSpec is an expression tree for initializers and default arguments.
type ExprSpec struct {
	Kind    string     `yaml:"kind"`
	Value   string     `yaml:"value"`
	Decl    string     `yaml:"decl"`
	Type    *TypeRef   `yaml:"type"`
	Args    []ExprSpec `yaml:"args"`
	Postfix bool       `yaml:"postfix"`
	Arrow   bool       `yaml:"arrow"`
}

// DeclSpec is one declaration. Members and params set the parent of the
// declarations they list; parent is only needed for declarations listed
// nowhere else, such as template patterns and instantiations.
type DeclSpec struct {
	ID       string `yaml:"id"`
	Kind     string `yaml:"kind"`
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent"`
	RedeclOf string `yaml:"redecl_of"`

	File     string `yaml:"file"`
	Line     uint   `yaml:"line"`
	Builtin  bool   `yaml:"builtin"`
	Implicit bool   `yaml:"implicit"`
	Invalid  bool   `yaml:"invalid"`
	Access   string `yaml:"access"`

	Annotations []string `yaml:"annotations"`
	Deprecated  bool     `yaml:"deprecated"`
	DLLExport   bool     `yaml:"dllexport"`
	DLLImport   bool     `yaml:"dllimport"`

	Members []string `yaml:"members"`

	Inline    bool `yaml:"inline"`
	Anonymous bool `yaml:"anonymous"`

	Tag               string           `yaml:"tag"`
	Definition        bool             `yaml:"definition"`
	Abstract          bool             `yaml:"abstract"`
	Lambda            bool             `yaml:"lambda"`
	AnonymousRecord   bool             `yaml:"anonymous_record"`
	InjectedClassName bool             `yaml:"injected_class_name"`
	Bases             []BaseSpec       `yaml:"bases"`
	Friends           []FriendSpec     `yaml:"friends"`
	Size              uint64           `yaml:"size"`
	Align             uint64           `yaml:"align"`
	TemplateArgs      string           `yaml:"template_args"`
	Enumerators       []EnumeratorSpec `yaml:"enumerators"`
	TypedefForAnon    string           `yaml:"typedef_for_anon"`
	Scoped            bool             `yaml:"scoped"`

	Pattern             string   `yaml:"pattern"`
	DescribedTemplate   string   `yaml:"described_template"`
	SpecializedTemplate string   `yaml:"specialized_template"`
	Specializations     []string `yaml:"specializations"`

	Underlying *TypeRef `yaml:"underlying"`
	Type       *TypeRef `yaml:"type"`

	BitWidth *uint  `yaml:"bit_width"`
	Offset   uint64 `yaml:"offset"`
	Mutable  bool   `yaml:"mutable"`

	Init                  *ExprSpec `yaml:"init"`
	UninstantiatedDefault *ExprSpec `yaml:"uninstantiated_default"`
	Storage               string    `yaml:"storage"`
	Mangled               string    `yaml:"mangled"`

	Params          []string `yaml:"params"`
	Deleted         bool     `yaml:"deleted"`
	Inlined         bool     `yaml:"inlined"`
	Explicit        bool     `yaml:"explicit"`
	Virtual         bool     `yaml:"virtual"`
	Pure            bool     `yaml:"pure"`
	Operator        string   `yaml:"operator"`
	LiteralOperator bool     `yaml:"literal_operator"`
	Overrides       []string `yaml:"overrides"`

	Shadows []string `yaml:"shadows"`
	Target  string   `yaml:"target"`
}

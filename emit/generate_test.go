package emit

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/errors"
)

func TestGenerate_Golden(t *testing.T) {
	b := ast.NewBuilder("a.h")
	b.Var(nil, "x", b.Int())

	want := `<?xml version="1.0"?>
<CastXML format="1.1.4">
  <Namespace id="_1" name="::" members="_2"/>
  <Variable id="_2" name="x" type="_3" context="_1" location="f1:1" file="f1" line="1" mangled="x"/>
  <FundamentalType id="_3" name="int" size="32" align="32"/>
  <File id="f1" name="a.h"/>
</CastXML>
`
	assert.Equal(t, want, generate(t, b.TU, Options{}))
}

func TestGenerate_RootElements(t *testing.T) {
	b := ast.NewBuilder("a.h")

	gcc := generate(t, b.TU, Options{Format: FormatGCCXML})
	assert.True(t, strings.HasPrefix(gcc, "<?xml version=\"1.0\"?>\n<GCC_XML version=\"0.9.0\" cvs_revision=\"1.144\">\n"))
	assert.True(t, strings.HasSuffix(gcc, "</GCC_XML>\n"))

	epic := generate(t, b.TU, Options{EpicVersion: 2})
	assert.Contains(t, epic, `<CastXML format="2.1.4">`)
}

// struct Foo1; Foo1* s1; struct Foo1* s2;
func elaboratedUnit() *ast.TranslationUnit {
	b := ast.NewBuilder("Elaborated.cxx")
	foo := b.Struct(nil, "Foo1", false)
	b.Var(nil, "s1", b.PointerTo(b.RecordType(foo)))
	elab := b.Ctx().Elaborated(b.RecordType(foo), "struct", "")
	b.Var(nil, "s2", b.PointerTo(ast.QualType{Type: elab}))
	return b.TU
}

func TestGenerate_ElaboratedTypeSpecifier(t *testing.T) {
	t.Run("gccxml collapses the elaborated name", func(t *testing.T) {
		doc := generateDoc(t, elaboratedUnit(), Options{Format: FormatGCCXML})

		foo := doc.one(t, "Struct", "Foo1")
		assert.Equal(t, "1", foo.attr("incomplete"))
		p1 := doc.byID[doc.one(t, "Variable", "s1").attr("type")]
		p2 := doc.byID[doc.one(t, "Variable", "s2").attr("type")]
		assert.Equal(t, "PointerType", p1.Name)
		assert.Equal(t, "PointerType", p2.Name)
		assert.Equal(t, foo.attr("id"), p1.attr("type"))
		assert.Equal(t, foo.attr("id"), p2.attr("type"))
		assert.Zero(t, doc.count("ElaboratedType"))
	})

	t.Run("castxml keeps it over the same record", func(t *testing.T) {
		doc := generateDoc(t, elaboratedUnit(), Options{})

		foo := doc.one(t, "Struct", "Foo1")
		p1 := doc.byID[doc.one(t, "Variable", "s1").attr("type")]
		p2 := doc.byID[doc.one(t, "Variable", "s2").attr("type")]
		assert.Equal(t, foo.attr("id"), p1.attr("type"))
		elab := doc.byID[p2.attr("type")]
		assert.Equal(t, "ElaboratedType", elab.Name)
		assert.Equal(t, foo.attr("id"), elab.attr("type"))
	})
}

//	namespace start {
//	  class Base { public: Base(); virtual ~Base(); };
//	  class Derived : public Base { ... };
//	  Base* b(); Base const* bc(); typedef int Int;
//	  void f(Int = (Int)0, Base* = (Base*)0, Base* = static_cast<Base*>(0),
//	         Base* = reinterpret_cast<Base*>(0), Base* = const_cast<Base*>(bc()),
//	         Derived* = dynamic_cast<Derived*>(b()));
//	}
func TestGenerate_DefaultArgumentCasts(t *testing.T) {
	b := ast.NewBuilder("Function-Argument-default-cast.cxx")
	ctx := b.Ctx()
	start := b.Namespace(nil, "start")

	base := b.Record(start, ast.TagClass, "Base", true)
	ctor := b.Function(base, ast.CXXConstructorDecl, "Base", b.Void())
	ctor.Access = ast.AccessPublic
	dtor := b.Function(base, ast.CXXDestructorDecl, "~Base", b.Void())
	dtor.Access, dtor.Virtual = ast.AccessPublic, true

	derived := b.Record(start, ast.TagClass, "Derived", true)
	derived.Bases = []ast.Base{{Type: b.RecordType(base), Access: ast.AccessPublic}}

	// Written types are sugared: Base is spelled without its scope.
	writtenBase := ast.QualType{Type: ctx.Elaborated(b.RecordType(base), "", "")}
	writtenDerived := ast.QualType{Type: ctx.Elaborated(b.RecordType(derived), "", "")}
	basePtr := b.PointerTo(writtenBase)
	derivedPtr := b.PointerTo(writtenDerived)

	bFn := b.Function(start, ast.FunctionDecl, "b", basePtr)
	bcFn := b.Function(start, ast.FunctionDecl, "bc", b.PointerTo(writtenBase.WithQuals(ast.Const)))
	intT := b.TypedefType(b.Typedef(start, "Int", b.Int()))

	zero := func() *ast.Expr { return &ast.Expr{Kind: ast.IntegerLiteral, Value: "0"} }
	call := func(fn *ast.Decl) *ast.Expr {
		return &ast.Expr{Kind: ast.CallExpr, Args: []*ast.Expr{
			{Kind: ast.ImplicitCastExpr, Args: []*ast.Expr{{Kind: ast.DeclRefExpr, Decl: fn}}},
		}}
	}
	named := func(kw string, to ast.QualType, sub *ast.Expr) *ast.Expr {
		return &ast.Expr{Kind: ast.NamedCastExpr, Value: kw, Type: to, Args: []*ast.Expr{sub}}
	}
	param := func(t ast.QualType, def *ast.Expr) *ast.Decl {
		p := b.Param("", t)
		p.Init = def
		return p
	}
	b.Function(start, ast.FunctionDecl, "f", b.Void(),
		param(intT, &ast.Expr{Kind: ast.CStyleCastExpr, Type: intT, Args: []*ast.Expr{zero()}}),
		param(basePtr, &ast.Expr{Kind: ast.CStyleCastExpr, Type: basePtr, Args: []*ast.Expr{zero()}}),
		param(basePtr, named("static_cast", basePtr, zero())),
		param(basePtr, named("reinterpret_cast", basePtr, zero())),
		param(basePtr, named("const_cast", basePtr, call(bcFn))),
		param(derivedPtr, named("dynamic_cast", derivedPtr, call(bFn))),
	)

	doc := generateDoc(t, b.TU, Options{StartNames: []string{"start"}})
	f := doc.one(t, "Function", "f")
	require.Len(t, f.Children, 6)
	var defaults []string
	for _, arg := range f.Children {
		assert.Equal(t, "Argument", arg.Name)
		defaults = append(defaults, arg.attr("default"))
	}
	assert.Equal(t, []string{
		"(int)0",
		"(start::Base *)0",
		"static_cast<start::Base *>(0)",
		"reinterpret_cast<start::Base *>(0)",
		"const_cast<start::Base *>(start::bc())",
		"dynamic_cast<start::Derived *>(start::b())",
	}, defaults)

	raw := generate(t, b.TU, Options{StartNames: []string{"start"}})
	assert.Contains(t, raw, `default="static_cast&lt;start::Base *&gt;(0)"`)
}

// namespace D { namespace E { int z; } }
// namespace A { namespace B { int x; } namespace C { int y; } using namespace D; }
func startUnit() *ast.TranslationUnit {
	b := ast.NewBuilder("start.h")
	d := b.Namespace(nil, "D")
	e := b.Namespace(d, "E")
	b.Var(e, "z", b.Int())

	a := b.Namespace(nil, "A")
	nb := b.Namespace(a, "B")
	b.Var(nb, "x", b.Int())
	c := b.Namespace(a, "C")
	b.Var(c, "y", b.Int())
	a.AddMember(&ast.Decl{Kind: ast.UsingDirectiveDecl, Target: d})
	return b.TU
}

func TestGenerate_StartNames(t *testing.T) {
	t.Run("nested namespace only", func(t *testing.T) {
		doc := generateDoc(t, startUnit(), Options{StartNames: []string{"A::B"}})

		nb := doc.one(t, "Namespace", "B")
		x := doc.one(t, "Variable", "x")
		assert.Equal(t, x.attr("id"), nb.attr("members"))

		a := doc.one(t, "Namespace", "A")
		assert.Equal(t, a.attr("id"), nb.attr("context"))
		assert.Empty(t, a.attr("members"), "the enclosing scope is only a reference")

		for _, name := range []string{"C", "y", "D", "E", "z"} {
			assert.False(t, doc.hasName(name), "%s must not be written", name)
		}
	})

	t.Run("through a using-directive", func(t *testing.T) {
		doc := generateDoc(t, startUnit(), Options{StartNames: []string{"A::E"}})

		e := doc.one(t, "Namespace", "E")
		z := doc.one(t, "Variable", "z")
		assert.Equal(t, z.attr("id"), e.attr("members"))
		assert.Equal(t, doc.one(t, "Namespace", "D").attr("id"), e.attr("context"))
		assert.False(t, doc.hasName("B"))
		assert.False(t, doc.hasName("x"))
	})

	t.Run("unknown name writes an empty document", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		var buf bytes.Buffer
		_, err := Generate(&buf, startUnit(), Options{StartNames: []string{"A::nope"}, Logger: zap.New(core).Sugar()})
		require.NoError(t, err)
		assert.Equal(t, "<?xml version=\"1.0\"?>\n<CastXML format=\"1.1.4\">\n</CastXML>\n", buf.String())
		assert.Equal(t, 1, logs.FilterMessage("start name matched nothing").Len())
	})
}

func TestGenerate_StartNameUsingDirectiveCycle(t *testing.T) {
	b := ast.NewBuilder("cycle.h")
	p := b.Namespace(nil, "P")
	q := b.Namespace(nil, "Q")
	b.Var(q, "v", b.Int())
	p.AddMember(&ast.Decl{Kind: ast.UsingDirectiveDecl, Target: q})
	q.AddMember(&ast.Decl{Kind: ast.UsingDirectiveDecl, Target: p})

	doc := generateDoc(t, b.TU, Options{StartNames: []string{"P::v"}})
	doc.one(t, "Variable", "v")
}

// const int* p1; typedef const int* T1; typedef T1 T2; T2 p2;
func TestGenerate_QualifiedTypeSharedThroughTypedefs(t *testing.T) {
	b := ast.NewBuilder("qual.h")
	constInt := b.Int().WithQuals(ast.Const)
	b.Var(nil, "p1", b.PointerTo(constInt))
	t1 := b.Typedef(nil, "T1", b.PointerTo(constInt))
	t2 := b.Typedef(nil, "T2", b.TypedefType(t1))
	b.Var(nil, "p2", b.TypedefType(t2))

	doc := generateDoc(t, b.TU, Options{})
	require.Equal(t, 1, doc.count("PointerType"))
	require.Equal(t, 1, doc.count("CvQualifiedType"))

	ptr := doc.byID[doc.one(t, "Variable", "p1").attr("type")]
	assert.Equal(t, "PointerType", ptr.Name)
	assert.Equal(t, ptr.attr("id"), doc.one(t, "Typedef", "T1").attr("type"))
	assert.Equal(t, doc.one(t, "Typedef", "T1").attr("id"), doc.one(t, "Typedef", "T2").attr("type"))
	assert.Equal(t, doc.one(t, "Typedef", "T2").attr("id"), doc.one(t, "Variable", "p2").attr("type"))

	cv := doc.byID[ptr.attr("type")]
	assert.Equal(t, "CvQualifiedType", cv.Name)
	assert.Equal(t, "1", cv.attr("const"))
	intID := doc.one(t, "FundamentalType", "int").attr("id")
	assert.Equal(t, intID, cv.attr("type"))
	assert.Equal(t, intID+"c", cv.attr("id"))
}

func TestGenerate_NumericQualifiedIDs(t *testing.T) {
	b := ast.NewBuilder("qual.h")
	b.Var(nil, "cv", b.Int().WithQuals(ast.Const|ast.Volatile))

	doc := generateDoc(t, b.TU, Options{QualifiedIDs: QualNumeric})
	cv := doc.byID[doc.one(t, "Variable", "cv").attr("type")]
	require.Equal(t, "CvQualifiedType", cv.Name)
	assert.Regexp(t, regexp.MustCompile(`^_\d+$`), cv.attr("id"))
	assert.NotEqual(t, cv.attr("id"), cv.attr("type"))
	assert.Equal(t, "1", cv.attr("const"))
	assert.Equal(t, "1", cv.attr("volatile"))
	assert.Equal(t, doc.one(t, "FundamentalType", "int").attr("id"), cv.attr("type"))
}

// struct Node { Node* next; }; struct A; struct B { A* a; }; struct A { B* b; };
func TestGenerate_Cycles(t *testing.T) {
	b := ast.NewBuilder("cycle.h")
	n := b.Struct(nil, "Node", true)
	b.Field(n, "next", b.PointerTo(b.RecordType(n)), 0)

	fwdA := b.Struct(nil, "A", false)
	sb := b.Struct(nil, "B", true)
	b.Field(sb, "a", b.PointerTo(b.RecordType(fwdA)), 0)
	defA := b.Redeclare(nil, fwdA, true)
	b.Field(defA, "b", b.PointerTo(b.RecordType(sb)), 0)

	doc := generateDoc(t, b.TU, Options{})
	node := doc.one(t, "Struct", "Node")
	next := doc.one(t, "Field", "next")
	assert.Equal(t, next.attr("id"), node.attr("members"))
	assert.Equal(t, node.attr("id"), doc.byID[next.attr("type")].attr("type"))

	a := doc.one(t, "Struct", "A")
	sB := doc.one(t, "Struct", "B")
	assert.Empty(t, a.attr("incomplete"), "the definition stands for the forward declaration")
	assert.Equal(t, doc.one(t, "Field", "b").attr("id"), a.attr("members"))
	assert.Equal(t, a.attr("id"), doc.byID[doc.one(t, "Field", "a").attr("type")].attr("type"))
	assert.Equal(t, sB.attr("id"), doc.byID[doc.one(t, "Field", "b").attr("type")].attr("type"))
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, opts := range []Options{{}, {Format: FormatGCCXML}, {StartNames: []string{"A::B", "A::E"}}} {
		first := generate(t, startUnit(), opts)
		second := generate(t, startUnit(), opts)
		assert.Equal(t, first, second)
	}
	tu := elaboratedUnit()
	assert.Equal(t, generate(t, tu, Options{}), generate(t, tu, Options{}))
}

func TestGenerate_IncompletePlaceholders(t *testing.T) {
	b := ast.NewBuilder("inc.h")
	foo := b.Struct(nil, "Foo", true)
	b.Field(foo, "a", b.Int(), 0)
	b.Var(nil, "p", b.PointerTo(b.RecordType(foo)))

	text := generate(t, b.TU, Options{StartNames: []string{"p"}})
	doc := parse(t, text)
	requireNoDangling(t, doc)

	st := doc.one(t, "Struct", "Foo")
	assert.Empty(t, st.attr("members"))
	assert.Empty(t, st.attr("incomplete"), "Foo is defined, only not expanded")
	assert.Equal(t, "8", st.attr("size"))
	assert.False(t, doc.hasName("a"))

	// Placeholders follow everything written in full.
	assert.Less(t, strings.Index(text, `<PointerType`), strings.Index(text, `<Struct`))
}

func TestGenerate_Rejections(t *testing.T) {
	b := ast.NewBuilder("rej.h")
	ctx := b.Ctx()
	rref := ast.QualType{Type: ctx.RValueReference(b.Int())}

	gone := b.Function(nil, ast.FunctionDecl, "gone", b.Void())
	gone.Deleted = true
	b.Function(nil, ast.FunctionDecl, "take", b.Void(), b.Param("v", rref))
	b.Function(nil, ast.FunctionDecl, "give", rref)
	lit := b.Function(nil, ast.FunctionDecl, `operator""_km`, b.Int())
	lit.LiteralOperator = true
	b.Root().AddMember(&ast.Decl{Kind: ast.TypeAliasTemplateDecl, Name: "Alias"})
	rrefTD := b.Typedef(nil, "RRef", rref)
	b.Var(nil, "r", b.TypedefType(rrefTD))
	b.Function(nil, ast.FunctionDecl, "keep", b.Void())

	doc := generateDoc(t, b.TU, Options{})
	for _, name := range []string{"gone", "take", "give", `operator""_km`, "Alias", "RRef"} {
		assert.False(t, doc.hasName(name), "%s must be left out", name)
	}
	doc.one(t, "Function", "keep")

	r := doc.one(t, "Variable", "r")
	_, hasType := r.Attrs["type"]
	assert.False(t, hasType, "a rejected rvalue reference typedef leaves the reference out")
	for _, el := range doc.elems {
		assert.NotEqual(t, "RValueReference", el.attr("type_class"))
	}
}

func TestGenerate_TypeAliasByFormat(t *testing.T) {
	b := ast.NewBuilder("alias.h")
	alias := b.Root().AddMember(&ast.Decl{Kind: ast.TypeAliasDecl, Name: "Count", Underlying: b.Int(), Loc: b.Loc()})
	b.Var(nil, "n", b.TypedefType(alias))

	doc := generateDoc(t, b.TU, Options{})
	td := doc.one(t, "Typedef", "Count")
	assert.Equal(t, td.attr("id"), doc.one(t, "Variable", "n").attr("type"))

	gcc := generateDoc(t, b.TU, Options{Format: FormatGCCXML})
	assert.False(t, gcc.hasName("Count"))
	assert.Equal(t, gcc.one(t, "FundamentalType", "int").attr("id"), gcc.one(t, "Variable", "n").attr("type"))
}

func TestGenerate_Unimplemented(t *testing.T) {
	b := ast.NewBuilder("tmpl.h")
	root := b.Root()

	tmpl := root.AddMember(&ast.Decl{Kind: ast.ClassTemplateDecl, Name: "Box", Loc: b.Loc()})
	pattern := &ast.Decl{Kind: ast.CXXRecordDecl, Tag: ast.TagStruct, Name: "Box", IsDefinition: true, DescribedTemplate: tmpl, Parent: root}
	tmpl.Pattern = pattern
	valueType := pattern.AddMember(&ast.Decl{Kind: ast.TypedefDecl, Name: "value_type", Underlying: b.Int(), Loc: b.Loc()})

	spec := &ast.Decl{Kind: ast.ClassTemplateSpecializationDecl, Tag: ast.TagStruct, Name: "Box", TemplateArgs: "<int>",
		IsDefinition: true, Size: 32, Align: 32, SpecializedTemplate: tmpl, Parent: root, Loc: b.Loc()}
	b.Field(spec, "v", b.Int(), 0)
	tmpl.Specializations = []*ast.Decl{spec}

	root.AddMember(&ast.Decl{Kind: ast.StaticAssertDecl, Loc: b.Loc()})
	b.Var(nil, "raw", b.RecordType(pattern))
	b.Var(nil, "vec", ast.QualType{Type: b.Ctx().Opaque("Vector", "int __attribute__((vector_size(16)))")})
	b.Var(nil, "member_typedef", b.TypedefType(valueType))

	doc := generateDoc(t, b.TU, Options{})

	box := doc.one(t, "Struct", "Box<int>")
	assert.Equal(t, doc.one(t, "Field", "v").attr("id"), box.attr("members"))

	kinds := map[string]bool{}
	classes := map[string]bool{}
	for _, el := range doc.elems {
		if el.Name == "Unimplemented" {
			kinds[el.attr("kind")] = true
			classes[el.attr("type_class")] = true
		}
	}
	assert.True(t, kinds["StaticAssert"])
	assert.True(t, kinds["CXXRecord"], "an uninstantiated pattern has no encoder")
	assert.True(t, classes["Vector"])
	assert.Equal(t, doc.byID[doc.one(t, "Variable", "raw").attr("type")].attr("kind"), "CXXRecord")

	// A typedef inside a template would need the template as context.
	assert.False(t, doc.hasName("value_type"))
	assert.Equal(t, doc.one(t, "FundamentalType", "int").attr("id"), doc.one(t, "Variable", "member_typedef").attr("type"))
}

func TestGenerate_Classes(t *testing.T) {
	b := ast.NewBuilder("shapes.h")
	ctx := b.Ctx()
	double := b.Builtin("double", 64, 64)
	constMethod := ast.QualType{Type: ctx.FunctionProto(ast.FunctionProto{Result: double, MethodQuals: ast.Const})}

	shape := b.Record(nil, ast.TagClass, "Shape", true)
	shape.Abstract = true
	ctor := b.Function(shape, ast.CXXConstructorDecl, "Shape", b.Void())
	ctor.Access, ctor.Explicit = ast.AccessPublic, true
	dtor := b.Function(shape, ast.CXXDestructorDecl, "~Shape", b.Void())
	dtor.Access, dtor.Virtual = ast.AccessPublic, true
	area := b.Function(shape, ast.CXXMethodDecl, "area", double)
	area.Type = constMethod
	area.Access, area.Virtual, area.Pure = ast.AccessPublic, true, true

	inspect := b.Function(nil, ast.FunctionDecl, "inspect", b.Void())

	circle := b.Record(nil, ast.TagClass, "Circle", true)
	circle.Size, circle.Align = 128, 64
	circle.Bases = []ast.Base{{Type: b.RecordType(shape), Access: ast.AccessPublic}}
	circle.Friends = []ast.Friend{{Decl: inspect}}
	circle.AddMember(&ast.Decl{Kind: ast.FriendDecl})
	cArea := b.Function(circle, ast.CXXMethodDecl, "area", double)
	cArea.Type = constMethod
	cArea.Access, cArea.Virtual = ast.AccessPublic, true
	cArea.Overrides = []*ast.Decl{area}
	eq := b.Function(circle, ast.CXXMethodDecl, "", b.Builtin("bool", 8, 8), b.Param("other", b.RecordType(circle).WithQuals(ast.Const)))
	eq.Operator = "=="
	conv := b.Function(circle, ast.CXXConversionDecl, "", b.Builtin("bool", 8, 8))
	conv.Explicit = true
	b.Field(circle, "radius", double, 64)

	doc := generateDoc(t, b.TU, Options{})

	sh := doc.one(t, "Class", "Shape")
	assert.Equal(t, "1", sh.attr("abstract"))

	c := doc.one(t, "Constructor", "Shape")
	assert.Equal(t, "1", c.attr("explicit"))
	assert.Equal(t, "public", c.attr("access"))
	assert.Equal(t, sh.attr("id"), c.attr("context"))
	_, hasMangled := c.Attrs["mangled"]
	assert.False(t, hasMangled, "constructors carry no mangled name")
	assert.Empty(t, c.attr("returns"))

	d := doc.one(t, "Destructor", "Shape")
	assert.Equal(t, "1", d.attr("virtual"))

	methods := doc.named("Method", "area")
	require.Len(t, methods, 2)
	var base, override element
	for _, m := range methods {
		if m.attr("context") == sh.attr("id") {
			base = m
		} else {
			override = m
		}
	}
	assert.Equal(t, "1", base.attr("const"))
	assert.Equal(t, "1", base.attr("pure_virtual"))
	assert.Equal(t, base.attr("id"), override.attr("overrides"))
	assert.Equal(t, doc.one(t, "FundamentalType", "double").attr("id"), override.attr("returns"))

	ci := doc.one(t, "Class", "Circle")
	assert.Equal(t, sh.attr("id"), ci.attr("bases"))
	assert.Equal(t, doc.one(t, "Function", "inspect").attr("id"), ci.attr("befriending"))
	assert.Equal(t, "128", ci.attr("size"))
	require.Len(t, ci.Children, 1)
	assert.Equal(t, element{Name: "Base", Attrs: map[string]string{
		"type": sh.attr("id"), "access": "public", "virtual": "0", "offset": "0",
	}}, ci.Children[0])

	op := doc.one(t, "OperatorMethod", "==")
	require.Len(t, op.Children, 1)
	assert.Equal(t, "other", op.Children[0].attr("name"))
	assert.Equal(t, ci.attr("id")+"c", op.Children[0].attr("type"))

	var converters []element
	for _, el := range doc.elems {
		if el.Name == "Converter" {
			converters = append(converters, el)
		}
	}
	require.Len(t, converters, 1)
	_, named := converters[0].Attrs["name"]
	assert.False(t, named)

	radius := doc.one(t, "Field", "radius")
	assert.Equal(t, "64", radius.attr("offset"))
	assert.Equal(t, "private", radius.attr("access"), "class members default to private")
	assert.Len(t, strings.Fields(ci.attr("members")), 4, "friend declarations are not members")
}

func TestGenerate_EnumsFieldsVariables(t *testing.T) {
	b := ast.NewBuilder("misc.h")
	ctx := b.Ctx()

	en := b.Enum(nil, "", "Red", "Green")
	en.Enumerators[1].Value = 5
	en.Enumerators[1].Deprecated = true
	color := b.Typedef(nil, "Color", ast.QualType{Type: ctx.Enum(en)})
	en.TypedefForAnon = color

	flags := b.Struct(nil, "Flags", true)
	bits := b.Field(flags, "mode", b.Builtin("unsigned int", 32, 32), 0)
	bits.BitField, bits.BitWidth = true, 3
	m := b.Field(flags, "cache", b.Int(), 32)
	m.Mutable = true
	m.Annotations = []string{`key="v"`}

	v := b.Var(nil, "limit", b.Int().WithQuals(ast.Const))
	v.Storage = ast.StorageStatic
	v.Init = &ast.Expr{Kind: ast.BinaryOperator, Value: "<<", Args: []*ast.Expr{
		{Kind: ast.IntegerLiteral, Value: "1"}, {Kind: ast.IntegerLiteral, Value: "4"},
	}}
	ext := b.Var(nil, "shared", b.Builtin("long", 64, 64))
	ext.Storage, ext.Mangled, ext.DLLImport = ast.StorageExtern, "\x01?shared@@3JA", true

	b.Var(nil, "grid", ast.QualType{Type: ctx.ConstantArray(b.Int(), 3)})
	b.Var(nil, "open", ast.QualType{Type: ctx.IncompleteArray(b.Char())})
	packet := b.Struct(nil, "Packet", true)
	b.Field(packet, "tail", ast.QualType{Type: ctx.ConstantArray(b.Int(), 0)}, 0)

	doc := generateDoc(t, b.TU, Options{})

	e := doc.one(t, "Enumeration", "Color")
	assert.Equal(t, "32", e.attr("size"))
	require.Len(t, e.Children, 2)
	assert.Equal(t, "Red", e.Children[0].attr("name"))
	assert.Equal(t, "0", e.Children[0].attr("init"))
	assert.Equal(t, "5", e.Children[1].attr("init"))
	assert.Equal(t, "deprecated", e.Children[1].attr("attributes"))

	mode := doc.one(t, "Field", "mode")
	assert.Equal(t, "3", mode.attr("bits"))
	assert.Equal(t, "0", mode.attr("offset"))
	cache := doc.one(t, "Field", "cache")
	assert.Equal(t, "1", cache.attr("mutable"))
	assert.Equal(t, `annotate(key="v")`, cache.attr("attributes"))

	limit := doc.one(t, "Variable", "limit")
	assert.Equal(t, "1 << 4", limit.attr("init"))
	assert.Equal(t, "1", limit.attr("static"))

	shared := doc.one(t, "Variable", "shared")
	assert.Equal(t, "1", shared.attr("extern"))
	assert.Equal(t, "?shared@@3JA", shared.attr("mangled"))
	assert.Equal(t, "dllimport", shared.attr("attributes"))
	doc.one(t, "FundamentalType", "long int")

	grid := doc.byID[doc.one(t, "Variable", "grid").attr("type")]
	assert.Equal(t, "ArrayType", grid.Name)
	assert.Equal(t, "0", grid.attr("min"))
	assert.Equal(t, "2", grid.attr("max"))
	open := doc.byID[doc.one(t, "Variable", "open").attr("type")]
	assert.Equal(t, "", open.attr("max"))
	_, hasMax := open.Attrs["max"]
	assert.True(t, hasMax)
	tail := doc.byID[doc.one(t, "Field", "tail").attr("type")]
	assert.Equal(t, "ArrayType", tail.Name)
	assert.Equal(t, "0", tail.attr("min"))
	assert.Equal(t, "-1", tail.attr("max"))
}

func TestGenerate_OpaqueEnumDeclaredFirst(t *testing.T) {
	b := ast.NewBuilder("opaque.h")
	first := b.Root().AddMember(&ast.Decl{Kind: ast.EnumDecl, Tag: ast.TagEnum, Name: "Mode", Loc: b.Loc()})
	def := b.Enum(nil, "Mode", "Off", "On")
	first.AddRedecl(def)
	b.Var(nil, "m", ast.QualType{Type: b.Ctx().Enum(def)})

	doc := generateDoc(t, b.TU, Options{})
	en := doc.one(t, "Enumeration", "Mode")
	assert.Equal(t, "f1:1", en.attr("location"), "the first declaration stands for the enum")
	assert.Equal(t, "32", en.attr("size"))
	require.Len(t, en.Children, 2)
	assert.Equal(t, "On", en.Children[1].attr("name"))
	assert.Equal(t, en.attr("id"), doc.one(t, "Variable", "m").attr("type"))
}

func TestGenerate_MemberPointers(t *testing.T) {
	b := ast.NewBuilder("mp.h")
	ctx := b.Ctx()
	s := b.Struct(nil, "S", true)
	sType := b.RecordType(s).Type

	b.Var(nil, "pm", ast.QualType{Type: ctx.MemberPointer(b.Int(), sType)})
	fn := b.FunctionType(b.Void(), true, b.Param("", b.Int()))
	b.Var(nil, "pf", ast.QualType{Type: ctx.MemberPointer(fn, sType)})

	doc := generateDoc(t, b.TU, Options{})
	sID := doc.one(t, "Struct", "S").attr("id")

	off := doc.byID[doc.one(t, "Variable", "pm").attr("type")]
	assert.Equal(t, "OffsetType", off.Name)
	assert.Equal(t, sID, off.attr("basetype"))
	assert.Equal(t, doc.one(t, "FundamentalType", "int").attr("id"), off.attr("type"))

	ptr := doc.byID[doc.one(t, "Variable", "pf").attr("type")]
	assert.Equal(t, "PointerType", ptr.Name)
	mt := doc.byID[ptr.attr("type")]
	assert.Equal(t, "MethodType", mt.Name)
	assert.Equal(t, sID, mt.attr("basetype"))
	require.Len(t, mt.Children, 2)
	assert.Equal(t, "Argument", mt.Children[0].Name)
	assert.Equal(t, "Ellipsis", mt.Children[1].Name)
	assert.Zero(t, doc.count("FunctionType"), "the prototype is only used as a method type")
}

func TestGenerate_Float128Compatibility(t *testing.T) {
	b := ast.NewBuilder("f128.h")
	rec := b.Struct(nil, "__castxml__float128_s", true)
	rec.Size, rec.Align = 128, 128
	shim := b.Typedef(nil, "__castxml__float128", b.RecordType(rec))
	shim.Loc = ast.Location{Builtin: true}

	q := b.Var(nil, "q", b.TypedefType(shim))
	q.Mangled = "_Z1q__float128"
	b.Var(nil, "wrapped", b.PointerTo(b.RecordType(rec)))

	doc := generateDoc(t, b.TU, Options{})

	ft := doc.byID[doc.one(t, "Variable", "q").attr("type")]
	assert.Equal(t, element{Name: "FundamentalType", Attrs: map[string]string{
		"id": ft.attr("id"), "name": "__float128", "size": "128", "align": "128",
	}}, ft)
	assert.Equal(t, "", doc.one(t, "Variable", "q").attr("mangled"))
	doc.one(t, "Struct", "__float128")

	members := doc.one(t, "Namespace", "::").attr("members")
	assert.NotContains(t, strings.Fields(members), ft.attr("id"), "castxml's own declarations are not members")

	b.TU.Target.HasFloat128 = true
	again := generateDoc(t, b.TU, Options{})
	assert.Equal(t, "_Z1q__float128", again.one(t, "Variable", "q").attr("mangled"))
}

func TestGenerate_BuiltinFile(t *testing.T) {
	b := ast.NewBuilder("p.h")
	p := b.Struct(nil, "P", true)
	ctor := b.Function(p, ast.CXXConstructorDecl, "P", b.Void())
	ctor.Implicit = true
	ctor.Loc = ast.Location{}

	text := generate(t, b.TU, Options{})
	doc := parse(t, text)
	requireNoDangling(t, doc)

	c := doc.one(t, "Constructor", "P")
	assert.Equal(t, "f0:0", c.attr("location"))
	assert.Equal(t, "1", c.attr("artificial"))
	assert.Less(t, strings.Index(text, `<File id="f0" name="&lt;builtin&gt;"/>`), strings.Index(text, `<File id="f1" name="p.h"/>`))
}

func TestGenerate_LinkageSpecAndInlineNamespace(t *testing.T) {
	b := ast.NewBuilder("ctx.h")
	root := b.Root()
	ext := root.AddMember(&ast.Decl{Kind: ast.LinkageSpecDecl})
	cfn := b.Function(ext, ast.FunctionDecl, "c_api", b.Void())
	cfn.Mangled = "c_api"
	outer := b.Namespace(nil, "lib")
	v1 := b.Namespace(outer, "v1")
	v1.Inline = true
	b.Var(v1, "level", b.Int())

	doc := generateDoc(t, b.TU, Options{})
	tu := doc.one(t, "Namespace", "::")
	lib := doc.one(t, "Namespace", "lib")
	assert.Contains(t, strings.Fields(tu.attr("members")), doc.one(t, "Function", "c_api").attr("id"))
	assert.Equal(t, tu.attr("id"), doc.one(t, "Function", "c_api").attr("context"))

	level := doc.one(t, "Variable", "level")
	assert.Equal(t, level.attr("id"), lib.attr("members"))
	assert.Equal(t, lib.attr("id"), level.attr("context"))
	assert.False(t, doc.hasName("v1"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGenerate_WriteError(t *testing.T) {
	b := ast.NewBuilder("a.h")
	b.Var(nil, "x", b.Int())

	_, err := Generate(failingWriter{}, b.TU, Options{Logger: zap.NewNop().Sugar()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write XML document")
	assert.Contains(t, err.Error(), "disk full")
}

func TestGenerate_InvalidOptions(t *testing.T) {
	b := ast.NewBuilder("a.h")
	_, err := Generate(&bytes.Buffer{}, b.TU, Options{Format: FormatGCCXML, QualifiedIDs: QualNumeric})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	_, err = Generate(&bytes.Buffer{}, nil, Options{})
	require.Error(t, err)
}

func TestGenerate_Stats(t *testing.T) {
	b := ast.NewBuilder("a.h")
	b.Var(nil, "x", b.Int().WithQuals(ast.Const))

	core, logs := observer.New(zapcore.InfoLevel)
	stats, err := Generate(&bytes.Buffer{}, b.TU, Options{Logger: zap.New(core).Sugar()})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Nodes, "qualified wrappers share the number of their type")
	assert.Equal(t, 1, stats.Files)

	entries := logs.FilterMessage("document written").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "castxml", entries[0].ContextMap()["format"])
}

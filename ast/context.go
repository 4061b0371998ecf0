package ast

import (
	"fmt"
	"strings"
)

// Context owns type nodes and uniques them: structurally identical
// requests return the same *Type, so pointer identity is type identity.
type Context struct {
	// PointerSize and PointerAlign are the target's pointer layout in bits.
	PointerSize  uint64
	PointerAlign uint64

	types map[typeKey]*Type
	next  uint64
}

type typeKey struct {
	class  TypeClass
	elem   uint64
	elemQ  Qualifiers
	orig   uint64
	origQ  Qualifiers
	member uint64
	n      uint64
	decl   *Decl
	name   string
	sig    string
}

// NewContext creates a context for a 64-bit target.
func NewContext() *Context {
	return &Context{
		PointerSize:  64,
		PointerAlign: 64,
		types:        make(map[typeKey]*Type),
	}
}

func typeID(t *Type) uint64 {
	if t == nil {
		return 0
	}
	return t.id
}

func (c *Context) intern(k typeKey, build func() *Type) *Type {
	if t, ok := c.types[k]; ok {
		return t
	}
	t := build()
	c.next++
	t.id = c.next
	c.types[k] = t
	return t
}

// Len returns the number of distinct type nodes.
func (c *Context) Len() int { return len(c.types) }

// Builtin returns the fundamental type spelled name.
func (c *Context) Builtin(name string, size, align uint64) *Type {
	return c.intern(typeKey{class: BuiltinType, name: name}, func() *Type {
		return &Type{Class: BuiltinType, Name: name, Size: size, Align: align}
	})
}

// Opaque returns a type of a class the serializer has no encoder for.
func (c *Context) Opaque(className, spelling string) *Type {
	return c.intern(typeKey{class: OtherType, name: className + "\x00" + spelling}, func() *Type {
		return &Type{Class: OtherType, ClassName: className, Name: spelling}
	})
}

func (c *Context) wrap(class TypeClass, elem QualType) *Type {
	k := typeKey{class: class, elem: typeID(elem.Type), elemQ: elem.Quals}
	return c.intern(k, func() *Type {
		t := &Type{Class: class, Elem: elem}
		switch class {
		case PointerType, LValueReferenceType, RValueReferenceType:
			t.Size, t.Align = c.PointerSize, c.PointerAlign
		}
		return t
	})
}

// Pointer returns pointee *.
func (c *Context) Pointer(pointee QualType) *Type { return c.wrap(PointerType, pointee) }

// LValueReference returns pointee &.
func (c *Context) LValueReference(pointee QualType) *Type {
	return c.wrap(LValueReferenceType, pointee)
}

// RValueReference returns pointee &&.
func (c *Context) RValueReference(pointee QualType) *Type {
	return c.wrap(RValueReferenceType, pointee)
}

// Paren returns a parenthesized type.
func (c *Context) Paren(inner QualType) *Type { return c.wrap(ParenType, inner) }

// IncompleteArray returns elem [].
func (c *Context) IncompleteArray(elem QualType) *Type {
	return c.wrap(IncompleteArrayType, elem)
}

// ConstantArray returns elem [n].
func (c *Context) ConstantArray(elem QualType, n uint64) *Type {
	k := typeKey{class: ConstantArrayType, elem: typeID(elem.Type), elemQ: elem.Quals, n: n}
	return c.intern(k, func() *Type {
		return &Type{Class: ConstantArrayType, Elem: elem, ArraySize: n}
	})
}

// MemberPointer returns pointee class::*.
func (c *Context) MemberPointer(pointee QualType, class *Type) *Type {
	k := typeKey{class: MemberPointerType, elem: typeID(pointee.Type), elemQ: pointee.Quals, member: typeID(class)}
	return c.intern(k, func() *Type {
		return &Type{Class: MemberPointerType, Elem: pointee, MemberOf: class}
	})
}

func (c *Context) declType(class TypeClass, d *Decl) *Type {
	d = d.Canonical()
	return c.intern(typeKey{class: class, decl: d}, func() *Type {
		return &Type{Class: class, Decl: d}
	})
}

// Record returns the type declared by a record.
func (c *Context) Record(d *Decl) *Type { return c.declType(RecordType, d) }

// Enum returns the type declared by an enum.
func (c *Context) Enum(d *Decl) *Type { return c.declType(EnumType, d) }

// Typedef returns the sugar type naming a typedef or alias declaration.
func (c *Context) Typedef(d *Decl) *Type { return c.declType(TypedefType, d) }

// DependentTypedef returns the typedef sugar marked instantiation-dependent.
func (c *Context) DependentTypedef(d *Decl) *Type {
	d = d.Canonical()
	return c.intern(typeKey{class: TypedefType, decl: d, n: 1}, func() *Type {
		return &Type{Class: TypedefType, Decl: d, Dependent: true}
	})
}

// Elaborated returns named written with a keyword and/or qualifier.
func (c *Context) Elaborated(named QualType, keyword, qualifier string) *Type {
	k := typeKey{class: ElaboratedType, elem: typeID(named.Type), elemQ: named.Quals, name: keyword + "\x00" + qualifier}
	return c.intern(k, func() *Type {
		return &Type{Class: ElaboratedType, Elem: named, Keyword: keyword, Qualifier: qualifier}
	})
}

// Adjusted returns orig adjusted to adjusted.
func (c *Context) Adjusted(orig, adjusted QualType) *Type {
	k := typeKey{class: AdjustedType, elem: typeID(adjusted.Type), elemQ: adjusted.Quals, orig: typeID(orig.Type), origQ: orig.Quals}
	return c.intern(k, func() *Type {
		return &Type{Class: AdjustedType, Elem: adjusted, Orig: orig}
	})
}

// Decayed returns the decay of an array or function type to a pointer.
func (c *Context) Decayed(orig QualType) *Type {
	var decayed QualType
	d := Desugar(orig)
	switch {
	case d.Type != nil && (d.Type.Class == ConstantArrayType || d.Type.Class == IncompleteArrayType):
		decayed = QualType{Type: c.Pointer(d.Type.Elem)}
	default:
		decayed = QualType{Type: c.Pointer(orig)}
	}
	k := typeKey{class: DecayedType, elem: typeID(decayed.Type), orig: typeID(orig.Type), origQ: orig.Quals}
	return c.intern(k, func() *Type {
		return &Type{Class: DecayedType, Elem: decayed, Orig: orig}
	})
}

// Attributed returns modified carrying a type attribute whose semantic
// equivalent is equivalent.
func (c *Context) Attributed(modified, equivalent QualType, attr string) *Type {
	k := typeKey{class: AttributedType, elem: typeID(equivalent.Type), elemQ: equivalent.Quals, orig: typeID(modified.Type), origQ: modified.Quals, name: attr}
	return c.intern(k, func() *Type {
		return &Type{Class: AttributedType, Elem: equivalent, Orig: modified, Name: attr}
	})
}

// Auto returns an auto type; a null deduced type leaves it undeduced.
func (c *Context) Auto(deduced QualType) *Type { return c.wrap(AutoType, deduced) }

// SubstTemplateTypeParm returns a template parameter replaced by replacement.
func (c *Context) SubstTemplateTypeParm(replacement QualType, param string) *Type {
	k := typeKey{class: SubstTemplateTypeParmType, elem: typeID(replacement.Type), elemQ: replacement.Quals, name: param}
	return c.intern(k, func() *Type {
		return &Type{Class: SubstTemplateTypeParmType, Elem: replacement, Name: param}
	})
}

// TemplateSpecialization returns name<args>; a null desugared type marks
// a dependent, unsugared specialization.
func (c *Context) TemplateSpecialization(name, args string, desugared QualType) *Type {
	k := typeKey{class: TemplateSpecializationType, elem: typeID(desugared.Type), elemQ: desugared.Quals, name: name + "\x00" + args}
	return c.intern(k, func() *Type {
		return &Type{Class: TemplateSpecializationType, Elem: desugared, TemplateName: name, TemplateArgs: args}
	})
}

// FunctionProto describes a prototype to be uniqued by Context.FunctionProto.
type FunctionProto struct {
	Result           QualType
	Params           []QualType
	Variadic         bool
	MethodQuals      Qualifiers
	CallConv         CallConv
	DynamicException bool
	Exceptions       []QualType
}

func (p FunctionProto) signature() string {
	var b strings.Builder
	q := func(t QualType) { fmt.Fprintf(&b, "%d.%d,", typeID(t.Type), t.Quals) }
	q(p.Result)
	b.WriteString("(")
	for _, t := range p.Params {
		q(t)
	}
	fmt.Fprintf(&b, ")%t.%d.%d.%t(", p.Variadic, p.MethodQuals, p.CallConv, p.DynamicException)
	for _, t := range p.Exceptions {
		q(t)
	}
	b.WriteString(")")
	return b.String()
}

// FunctionProto returns the prototype type described by p.
func (c *Context) FunctionProto(p FunctionProto) *Type {
	return c.intern(typeKey{class: FunctionProtoType, sig: p.signature()}, func() *Type {
		return &Type{
			Class:            FunctionProtoType,
			Result:           p.Result,
			Params:           append([]QualType(nil), p.Params...),
			Variadic:         p.Variadic,
			MethodQuals:      p.MethodQuals,
			CallConv:         p.CallConv,
			DynamicException: p.DynamicException,
			Exceptions:       append([]QualType(nil), p.Exceptions...),
		}
	})
}

// FunctionNoProto returns an unprototyped C function type.
func (c *Context) FunctionNoProto(result QualType) *Type {
	k := typeKey{class: FunctionNoProtoType, elem: typeID(result.Type), elemQ: result.Quals}
	return c.intern(k, func() *Type {
		return &Type{Class: FunctionNoProtoType, Result: result}
	})
}

// Canonical strips all sugar from q at every level.
func (c *Context) Canonical(q QualType) QualType {
	t := q.Type
	if t == nil {
		return q
	}
	switch t.Class {
	case PointerType:
		return QualType{Type: c.Pointer(c.Canonical(t.Elem)), Quals: q.Quals}
	case LValueReferenceType:
		return QualType{Type: c.LValueReference(c.Canonical(t.Elem)), Quals: q.Quals}
	case RValueReferenceType:
		return QualType{Type: c.RValueReference(c.Canonical(t.Elem)), Quals: q.Quals}
	case MemberPointerType:
		cls := c.Canonical(QualType{Type: t.MemberOf}).Type
		return QualType{Type: c.MemberPointer(c.Canonical(t.Elem), cls), Quals: q.Quals}
	case ConstantArrayType:
		return QualType{Type: c.ConstantArray(c.Canonical(t.Elem), t.ArraySize), Quals: q.Quals}
	case IncompleteArrayType:
		return QualType{Type: c.IncompleteArray(c.Canonical(t.Elem)), Quals: q.Quals}
	case FunctionProtoType:
		p := FunctionProto{
			Result:           c.Canonical(t.Result),
			Variadic:         t.Variadic,
			MethodQuals:      t.MethodQuals,
			CallConv:         t.CallConv,
			DynamicException: t.DynamicException,
		}
		for _, pt := range t.Params {
			p.Params = append(p.Params, c.Canonical(pt))
		}
		for _, et := range t.Exceptions {
			p.Exceptions = append(p.Exceptions, c.Canonical(et))
		}
		return QualType{Type: c.FunctionProto(p), Quals: q.Quals}
	case FunctionNoProtoType:
		return QualType{Type: c.FunctionNoProto(c.Canonical(t.Result)), Quals: q.Quals}
	}
	if t.IsSugared() {
		return c.Canonical(t.SingleStepDesugar().WithQuals(q.Quals))
	}
	return q
}

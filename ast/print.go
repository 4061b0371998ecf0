package ast

import (
	"strings"
)

// PrintingPolicy controls C/C++ spelling of types and names.
type PrintingPolicy struct {
	CPlusPlus bool
}

// QualifiedName spells d with its enclosing scopes, omitting anonymous and
// inline namespaces, transparent contexts and unscoped enums.
func QualifiedName(d *Decl) string {
	var parts []string
	for p := d.Parent; p != nil; p = p.Parent {
		switch {
		case p.Kind == TranslationUnitDecl, p.Kind == LinkageSpecDecl:
			continue
		case p.Kind == NamespaceDecl && (p.IsInlineNamespace() || p.Name == ""):
			continue
		case p.Kind == EnumDecl && !p.Scoped:
			continue
		}
		parts = append(parts, scopeName(p))
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
		b.WriteString("::")
	}
	b.WriteString(declName(d))
	return b.String()
}

func scopeName(d *Decl) string {
	if d.IsRecord() {
		if d.Name == "" {
			return "(anonymous)"
		}
		return d.NameForDiagnostic()
	}
	return d.Name
}

func declName(d *Decl) string {
	if d.Operator != "" && d.Name == "" {
		return "operator" + d.Operator
	}
	if d.IsRecord() {
		return scopeName(d)
	}
	return d.Name
}

// TypeString spells q the way a C/C++ declarator would, e.g. "const int *"
// or "int (*)(char)".
func TypeString(q QualType, policy PrintingPolicy) string {
	return printType(q, "", policy)
}

func qualPrefix(q Qualifiers, policy PrintingPolicy) string {
	var parts []string
	if q.IsConst() {
		parts = append(parts, "const")
	}
	if q.IsVolatile() {
		parts = append(parts, "volatile")
	}
	if q.IsRestrict() {
		if policy.CPlusPlus {
			parts = append(parts, "__restrict")
		} else {
			parts = append(parts, "restrict")
		}
	}
	return strings.Join(parts, " ")
}

func join(base, inner string) string {
	if inner == "" {
		return base
	}
	return base + " " + inner
}

func printType(q QualType, inner string, policy PrintingPolicy) string {
	t := q.Type
	if t == nil {
		return join("<null>", inner)
	}
	quals := qualPrefix(q.Quals, policy)
	switch t.Class {
	case PointerType, LValueReferenceType, RValueReferenceType, MemberPointerType:
		var op string
		switch t.Class {
		case PointerType:
			op = "*"
		case LValueReferenceType:
			op = "&"
		case RValueReferenceType:
			op = "&&"
		default:
			op = printType(QualType{Type: t.MemberOf}, "", policy) + "::*"
		}
		if quals != "" {
			op += quals
		}
		if inner != "" {
			if quals != "" {
				op += " "
			}
			op += inner
		}
		if e := Desugar(t.Elem).Type; e != nil && isDeclaratorChunk(e) {
			op = "(" + op + ")"
		}
		return printType(t.Elem, op, policy)
	case ConstantArrayType, IncompleteArrayType:
		dim := "[]"
		if t.Class == ConstantArrayType {
			dim = "[" + uitoa(t.ArraySize) + "]"
		}
		return printType(t.Elem.WithQuals(q.Quals), inner+dim, policy)
	case FunctionProtoType, FunctionNoProtoType:
		var b strings.Builder
		b.WriteString(inner)
		b.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(TypeString(p, policy))
		}
		if t.Variadic {
			if len(t.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		} else if len(t.Params) == 0 && !policy.CPlusPlus && t.Class == FunctionProtoType {
			b.WriteString("void")
		}
		b.WriteString(")")
		if mq := qualPrefix(t.MethodQuals, policy); mq != "" {
			b.WriteString(" " + mq)
		}
		return printType(t.Result, b.String(), policy)
	case ParenType, AdjustedType, DecayedType:
		sub := t.Elem
		if t.Class != ParenType {
			sub = t.Orig
		}
		return printType(sub.WithQuals(q.Quals), inner, policy)
	case AttributedType:
		return printType(t.Orig.WithQuals(q.Quals), inner, policy)
	case SubstTemplateTypeParmType:
		return printType(t.Elem.WithQuals(q.Quals), inner, policy)
	}

	base := namedTypeSpelling(t, policy)
	if quals != "" {
		base = quals + " " + base
	}
	return join(base, inner)
}

func isDeclaratorChunk(t *Type) bool {
	switch t.Class {
	case FunctionProtoType, FunctionNoProtoType, ConstantArrayType, IncompleteArrayType:
		return true
	}
	return false
}

func namedTypeSpelling(t *Type, policy PrintingPolicy) string {
	switch t.Class {
	case BuiltinType, OtherType:
		return t.Name
	case RecordType, EnumType:
		d := t.Decl
		if d.IsRecord() {
			if def := d.Definition(); def != nil {
				d = def
			}
		}
		name := QualifiedName(d)
		if !policy.CPlusPlus {
			name = tagKeyword(d) + " " + name
		}
		return name
	case TypedefType:
		return t.Decl.Name
	case ElaboratedType:
		inner := TypeString(t.Elem, PrintingPolicy{CPlusPlus: true})
		if t.Elem.Type != nil {
			if e := t.Elem.Type; e.Class == RecordType || e.Class == EnumType || e.Class == TypedefType {
				inner = e.Decl.Name
				if e.Decl.IsRecord() {
					inner = e.Decl.NameForDiagnostic()
				}
			}
		}
		s := t.Qualifier + inner
		if t.Keyword != "" {
			s = t.Keyword + " " + s
		}
		return s
	case TemplateSpecializationType:
		return t.TemplateName + t.TemplateArgs
	case AutoType:
		if t.Elem.Type != nil {
			return TypeString(t.Elem, policy)
		}
		return "auto"
	}
	return t.Class.String()
}

func tagKeyword(d *Decl) string {
	if d.Kind == EnumDecl {
		return "enum"
	}
	switch d.Tag {
	case TagClass:
		return "class"
	case TagUnion:
		return "union"
	case TagInterface:
		return "__interface"
	}
	return "struct"
}

func uitoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// PrinterHelper lets a caller take over printing of selected expressions.
// HandleExpr returns false to fall back to the default rendering.
type PrinterHelper interface {
	HandleExpr(e *Expr, b *strings.Builder) bool
}

// ExprString pretty-prints e as C/C++ source text.
func ExprString(e *Expr, helper PrinterHelper, policy PrintingPolicy) string {
	var b strings.Builder
	PrintExpr(&b, e, helper, policy)
	return b.String()
}

// PrintExpr pretty-prints e into b, consulting helper for every node.
func PrintExpr(b *strings.Builder, e *Expr, helper PrinterHelper, policy PrintingPolicy) {
	if e == nil {
		return
	}
	if helper != nil && helper.HandleExpr(e, b) {
		return
	}
	sub := func(x *Expr) { PrintExpr(b, x, helper, policy) }
	switch e.Kind {
	case IntegerLiteral, FloatingLiteral, CharacterLiteral, StringLiteral, TextExpr:
		b.WriteString(e.Value)
	case BoolLiteral:
		if e.Value == "true" || e.Value == "1" {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case NullPtrLiteral:
		b.WriteString("nullptr")
	case DeclRefExpr:
		if e.Decl != nil {
			b.WriteString(e.Decl.Name)
		} else {
			b.WriteString(e.Value)
		}
	case CStyleCastExpr:
		b.WriteString("(")
		b.WriteString(TypeString(e.Type, policy))
		b.WriteString(")")
		sub(e.Sub())
	case NamedCastExpr:
		b.WriteString(e.Value)
		b.WriteString("<")
		b.WriteString(TypeString(e.Type, policy))
		b.WriteString(">(")
		sub(e.Sub())
		b.WriteString(")")
	case ImplicitCastExpr:
		sub(e.Sub())
	case ParenExpr:
		b.WriteString("(")
		sub(e.Sub())
		b.WriteString(")")
	case UnaryOperator:
		if e.Postfix {
			sub(e.Sub())
			b.WriteString(e.Value)
		} else {
			b.WriteString(e.Value)
			sub(e.Sub())
		}
	case BinaryOperator:
		if len(e.Args) == 2 {
			sub(e.Args[0])
			b.WriteString(" " + e.Value + " ")
			sub(e.Args[1])
		}
	case ConditionalOperator:
		if len(e.Args) == 3 {
			sub(e.Args[0])
			b.WriteString(" ? ")
			sub(e.Args[1])
			b.WriteString(" : ")
			sub(e.Args[2])
		}
	case CallExpr:
		sub(e.Sub())
		b.WriteString("(")
		printArgs(b, e.Args[min(1, len(e.Args)):], helper, policy)
		b.WriteString(")")
	case ConstructExpr:
		if e.Type.Type != nil {
			b.WriteString(TypeString(e.Type, policy))
			b.WriteString("(")
			printArgs(b, e.Args, helper, policy)
			b.WriteString(")")
		} else {
			printArgs(b, e.Args, helper, policy)
		}
	case MemberExpr:
		sub(e.Sub())
		if e.Arrow {
			b.WriteString("->")
		} else {
			b.WriteString(".")
		}
		if e.Decl != nil {
			b.WriteString(e.Decl.Name)
		} else {
			b.WriteString(e.Value)
		}
	case SizeOfExpr:
		if e.Type.Type != nil {
			b.WriteString("sizeof(")
			b.WriteString(TypeString(e.Type, policy))
			b.WriteString(")")
		} else {
			b.WriteString("sizeof ")
			sub(e.Sub())
		}
	case InitListExpr:
		b.WriteString("{")
		printArgs(b, e.Args, helper, policy)
		b.WriteString("}")
	}
}

func printArgs(b *strings.Builder, args []*Expr, helper PrinterHelper, policy PrintingPolicy) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		PrintExpr(b, a, helper, policy)
	}
}

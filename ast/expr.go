package ast

// ExprKind enumerates the expression forms kept for default arguments and
// variable initializers.
type ExprKind int

const (
	IntegerLiteral ExprKind = iota
	FloatingLiteral
	CharacterLiteral
	StringLiteral
	BoolLiteral
	NullPtrLiteral
	DeclRefExpr
	CStyleCastExpr
	NamedCastExpr
	ImplicitCastExpr
	ParenExpr
	UnaryOperator
	BinaryOperator
	ConditionalOperator
	CallExpr
	ConstructExpr
	MemberExpr
	SizeOfExpr
	InitListExpr
	TextExpr
)

var exprKindNames = map[ExprKind]string{
	IntegerLiteral:      "IntegerLiteral",
	FloatingLiteral:     "FloatingLiteral",
	CharacterLiteral:    "CharacterLiteral",
	StringLiteral:       "StringLiteral",
	BoolLiteral:         "BoolLiteral",
	NullPtrLiteral:      "NullPtrLiteral",
	DeclRefExpr:         "DeclRef",
	CStyleCastExpr:      "CStyleCast",
	NamedCastExpr:       "NamedCast",
	ImplicitCastExpr:    "ImplicitCast",
	ParenExpr:           "Paren",
	UnaryOperator:       "UnaryOperator",
	BinaryOperator:      "BinaryOperator",
	ConditionalOperator: "ConditionalOperator",
	CallExpr:            "Call",
	ConstructExpr:       "Construct",
	MemberExpr:          "Member",
	SizeOfExpr:          "SizeOf",
	InitListExpr:        "InitList",
	TextExpr:            "Text",
}

func (k ExprKind) String() string { return exprKindNames[k] }

// ParseExprKind maps a kind name back to its ExprKind.
func ParseExprKind(name string) (ExprKind, bool) {
	for k, n := range exprKindNames {
		if n == name {
			return k, true
		}
	}
	return TextExpr, false
}

// Expr is an expression tree node.
//
// Value holds the literal spelling, the operator, the named cast keyword
// (static_cast, ...) or the verbatim text of a TextExpr. Args holds
// operands in source order; for a CallExpr the callee comes first.
type Expr struct {
	Kind    ExprKind
	Value   string
	Decl    *Decl
	Type    QualType
	Args    []*Expr
	Postfix bool
	Arrow   bool
}

// Sub returns the first operand, or nil.
func (e *Expr) Sub() *Expr {
	if len(e.Args) == 0 {
		return nil
	}
	return e.Args[0]
}

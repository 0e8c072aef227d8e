package ts

import "strconv"

// Expr is the closed union of the expression subset needed for enum and
// constant evaluation.
type Expr interface {
	Tree
	tsExpr()
}

// ExprRef references another declaration by qualified name.
type ExprRef struct {
	Ref QIdent
}

func (*ExprRef) tsTree() {}
func (*ExprRef) tsExpr() {}

// ExprLiteral is a literal constant.
type ExprLiteral struct {
	Literal Lit
}

func (*ExprLiteral) tsTree() {}
func (*ExprLiteral) tsExpr() {}

// NumExpr builds a numeric literal expression.
func NumExpr(n int) *ExprLiteral {
	return &ExprLiteral{Literal: NumberLit(strconv.Itoa(n))}
}

// ExprCall is `fn(args)`.
type ExprCall struct {
	Function Expr
	Params   []Expr
}

func (*ExprCall) tsTree() {}
func (*ExprCall) tsExpr() {}

// ExprUnary is a prefix operator application.
type ExprUnary struct {
	Op   string
	Expr Expr
}

func (*ExprUnary) tsTree() {}
func (*ExprUnary) tsExpr() {}

// ExprBinaryOp is `one op two`.
type ExprBinaryOp struct {
	One Expr
	Op  string
	Two Expr
}

func (*ExprBinaryOp) tsTree() {}
func (*ExprBinaryOp) tsExpr() {}

// ExprCast is `expr as T`.
type ExprCast struct {
	Expr Expr
	To   Type
}

func (*ExprCast) tsTree() {}
func (*ExprCast) tsExpr() {}

// ExprArrayOf is `[expr]`.
type ExprArrayOf struct {
	Expr Expr
}

func (*ExprArrayOf) tsTree() {}
func (*ExprArrayOf) tsExpr() {}

// TypeOfExpr widens an expression to a type: literals keep their literal
// type, casts use the cast target, everything else falls back by operator
// shape. Used for enum member typing and const widening only.
func TypeOfExpr(e Expr) Type {
	switch v := e.(type) {
	case *ExprLiteral:
		return &TypeLiteral{Literal: v.Literal}
	case *ExprCast:
		return v.To
	case *ExprRef:
		return Ref(v.Ref)
	case *ExprBinaryOp:
		switch v.Op {
		case "+", "-", "*", "/", "<<", ">>", "&", "|":
			return Ref(NumberQIdent)
		default:
			return TypeAny()
		}
	case *ExprUnary:
		return Ref(NumberQIdent)
	case *ExprArrayOf:
		return Ref(QIdentOfStrings("Array"), TypeOfExpr(v.Expr))
	default:
		return TypeAny()
	}
}

// FoldNum folds an expression to an integer when it is a plain numeric
// literal, which is all enum inference needs.
func FoldNum(e Expr) (int, bool) {
	lit, ok := e.(*ExprLiteral)
	if !ok || lit.Literal.Kind != LitNumber {
		return 0, false
	}
	n, err := strconv.Atoi(lit.Literal.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

package ts

// Type is the closed union of type-position nodes.
type Type interface {
	Tree
	tsType()
}

// TypeRef is a reference `Name<TArgs>`.
type TypeRef struct {
	Comments Comments
	Name     QIdent
	TArgs    []Type
}

func (*TypeRef) tsTree() {}
func (*TypeRef) tsType() {}

func Ref(name QIdent, targs ...Type) *TypeRef {
	return &TypeRef{Name: name, TArgs: targs}
}

// Common keyword types.
func TypeAny() *TypeRef       { return Ref(AnyQIdent) }
func TypeNever() *TypeRef     { return Ref(NeverQIdent) }
func TypeUndefined() *TypeRef { return Ref(UndefinedQIdent) }

// IsAny reports whether t is exactly the `any` keyword type.
func IsAny(t Type) bool {
	ref, ok := t.(*TypeRef)
	return ok && len(ref.TArgs) == 0 && ref.Name.Equals(AnyQIdent)
}

// IsNever reports whether t is exactly the `never` keyword type.
func IsNever(t Type) bool {
	ref, ok := t.(*TypeRef)
	return ok && len(ref.TArgs) == 0 && ref.Name.Equals(NeverQIdent)
}

// LitKind discriminates literal values.
type LitKind int

const (
	LitString LitKind = iota
	LitNumber
	LitBool
)

// Lit is a literal value as written in source.
type Lit struct {
	Kind  LitKind
	Value string
}

func StringLit(v string) Lit { return Lit{Kind: LitString, Value: v} }
func NumberLit(v string) Lit { return Lit{Kind: LitNumber, Value: v} }
func BoolLit(v string) Lit   { return Lit{Kind: LitBool, Value: v} }

func (l Lit) String() string {
	if l.Kind == LitString {
		return "'" + l.Value + "'"
	}
	return l.Value
}

// TypeLiteral is the literal type `'a'` / `1` / `true`.
type TypeLiteral struct {
	Literal Lit
}

func (*TypeLiteral) tsTree() {}
func (*TypeLiteral) tsType() {}

// TypeObject is a structural type `{ members }`.
type TypeObject struct {
	Comments Comments
	Members  []Member
}

func (*TypeObject) tsTree() {}
func (*TypeObject) tsType() {}

// TypeFunction is `(params) => R`.
type TypeFunction struct {
	Signature *FunSig
}

func (*TypeFunction) tsTree() {}
func (*TypeFunction) tsType() {}

// TypeConstructor is `new (params) => R` (possibly `abstract new`).
type TypeConstructor struct {
	IsAbstract bool
	Signature  *FunSig
}

func (*TypeConstructor) tsTree() {}
func (*TypeConstructor) tsType() {}

// TypeUnion is `A | B | ...`.
type TypeUnion struct {
	Types []Type
}

func (*TypeUnion) tsTree() {}
func (*TypeUnion) tsType() {}

// UnionOf flattens nested unions and collapses the degenerate cases: an
// empty union becomes `never`, a one-element union the element itself.
func UnionOf(types ...Type) Type {
	var flat []Type
	for _, t := range types {
		if u, ok := t.(*TypeUnion); ok {
			flat = append(flat, u.Types...)
		} else if t != nil {
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return TypeNever()
	case 1:
		return flat[0]
	default:
		return &TypeUnion{Types: flat}
	}
}

// TypeIntersect is `A & B & ...`.
type TypeIntersect struct {
	Types []Type
}

func (*TypeIntersect) tsTree() {}
func (*TypeIntersect) tsType() {}

// IntersectOf flattens nested intersections and collapses degenerate cases
// the same way UnionOf does.
func IntersectOf(types ...Type) Type {
	var flat []Type
	for _, t := range types {
		if i, ok := t.(*TypeIntersect); ok {
			flat = append(flat, i.Types...)
		} else if t != nil {
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return TypeNever()
	case 1:
		return flat[0]
	default:
		return &TypeIntersect{Types: flat}
	}
}

// TupleElem is one element of a tuple type, optionally labelled.
type TupleElem struct {
	Label *Ident
	Type  Type
}

// TypeTuple is `[A, B, ...]`.
type TypeTuple struct {
	Elems []TupleElem
}

func (*TypeTuple) tsTree() {}
func (*TypeTuple) tsType() {}

// TypeKeyOf is `keyof T`.
type TypeKeyOf struct {
	Of Type
}

func (*TypeKeyOf) tsTree() {}
func (*TypeKeyOf) tsType() {}

// TypeLookup is the indexed access `T[K]`.
type TypeLookup struct {
	From Type
	Key  Type
}

func (*TypeLookup) tsTree() {}
func (*TypeLookup) tsType() {}

// TypeConditional is `Pred extends ? IfTrue : IfFalse`.
type TypeConditional struct {
	Pred    Type
	IfTrue  Type
	IfFalse Type
}

func (*TypeConditional) tsTree() {}
func (*TypeConditional) tsType() {}

// TypeQuery is `typeof X`.
type TypeQuery struct {
	Expr QIdent
}

func (*TypeQuery) tsTree() {}
func (*TypeQuery) tsType() {}

// TypeThis is the `this` type.
type TypeThis struct{}

func (*TypeThis) tsTree() {}
func (*TypeThis) tsType() {}

// TypeRepeated wraps a rest parameter's element type (`...xs: T[]`); the
// repeated-ness survives transformation of the underlying type.
type TypeRepeated struct {
	Underlying Type
}

func (*TypeRepeated) tsTree() {}
func (*TypeRepeated) tsType() {}

// TypeParam is a type parameter declaration `T extends U = D`.
type TypeParam struct {
	Comments   Comments
	Name       Ident
	UpperBound Type
	Default    Type
}

// FunParam is one value parameter. Optionality is normalized into the type
// (`| undefined`) before the tree reaches the pipeline.
type FunParam struct {
	Comments Comments
	Name     Ident
	Type     Type
}

// FunSig is a callable signature shared by functions, methods, constructors
// and function types.
type FunSig struct {
	Comments   Comments
	TParams    []TypeParam
	Params     []*FunParam
	ResultType Type
}

func (*FunSig) tsTree() {}

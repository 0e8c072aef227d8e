package ts

import "strings"

// IdentKind discriminates the identifier variants.
type IdentKind int

const (
	IdentSimple IdentKind = iota
	IdentModule
	IdentImport
)

// Ident is an immutable identifier value. Simple identifiers carry a Name;
// module identifiers carry an optional Scope plus path Fragments
// (e.g. "@types/node" -> Scope "types", Fragments ["node"]).
type Ident struct {
	Kind      IdentKind
	Name      string
	Scope     string
	Fragments []string
}

func SimpleIdent(name string) Ident {
	return Ident{Kind: IdentSimple, Name: name}
}

func ModuleIdent(scope string, fragments ...string) Ident {
	return Ident{Kind: IdentModule, Scope: scope, Fragments: fragments}
}

// Reserved identifiers. NamespacedIdent ("^") addresses the value side of a
// class/namespace or function/namespace merge.
var (
	GlobalIdent       = SimpleIdent("<global>")
	NamespacedIdent   = SimpleIdent("^")
	ApplyIdent        = SimpleIdent("<apply>")
	ConstructorIdent  = SimpleIdent("constructor")
	DestructuredIdent = SimpleIdent("<destructured>")
	ThisIdent         = SimpleIdent("this")
	WildcardIdent     = SimpleIdent("*")
	DummyIdent        = SimpleIdent("<dummy>")
)

func (i Ident) Value() string {
	switch i.Kind {
	case IdentModule:
		if i.Scope != "" {
			return "@" + i.Scope + "/" + strings.Join(i.Fragments, "/")
		}
		return strings.Join(i.Fragments, "/")
	default:
		return i.Name
	}
}

func (i Ident) String() string { return i.Value() }

func (i Ident) Equals(o Ident) bool {
	if i.Kind != o.Kind || i.Name != o.Name || i.Scope != o.Scope {
		return false
	}
	if len(i.Fragments) != len(o.Fragments) {
		return false
	}
	for n := range i.Fragments {
		if i.Fragments[n] != o.Fragments[n] {
			return false
		}
	}
	return true
}

// LibIdent identifies a library: plain ("react") or scoped ("@angular/core").
type LibIdent struct {
	Scope string
	Name  string
}

func Library(name string) LibIdent { return LibIdent{Name: name} }

func ScopedLibrary(scope, name string) LibIdent { return LibIdent{Scope: scope, Name: name} }

var (
	StdLib  = Library("std")
	NodeLib = Library("node")
	NoLib   = LibIdent{}
)

func (l LibIdent) IsZero() bool { return l.Scope == "" && l.Name == "" }

func (l LibIdent) String() string {
	if l.Scope != "" {
		return "@" + l.Scope + "/" + l.Name
	}
	return l.Name
}

// QIdent is a non-empty dotted path of identifiers (A.B.C).
type QIdent struct {
	Parts []Ident
}

func QIdentOf(parts ...Ident) QIdent { return QIdent{Parts: parts} }

// QIdentOfStrings builds a qualified name from simple identifier names.
func QIdentOfStrings(names ...string) QIdent {
	parts := make([]Ident, len(names))
	for i, n := range names {
		parts[i] = SimpleIdent(n)
	}
	return QIdent{Parts: parts}
}

func (q QIdent) IsEmpty() bool { return len(q.Parts) == 0 }

func (q QIdent) Head() Ident { return q.Parts[0] }

func (q QIdent) Tail() QIdent { return QIdent{Parts: q.Parts[1:]} }

func (q QIdent) Last() Ident { return q.Parts[len(q.Parts)-1] }

// Add returns a new qualified name extended with ident. The receiver is not
// modified; the parts slice is copied to keep values independent.
func (q QIdent) Add(ident Ident) QIdent {
	parts := make([]Ident, 0, len(q.Parts)+1)
	parts = append(parts, q.Parts...)
	parts = append(parts, ident)
	return QIdent{Parts: parts}
}

func (q QIdent) Concat(o QIdent) QIdent {
	parts := make([]Ident, 0, len(q.Parts)+len(o.Parts))
	parts = append(parts, q.Parts...)
	parts = append(parts, o.Parts...)
	return QIdent{Parts: parts}
}

func (q QIdent) Equals(o QIdent) bool {
	if len(q.Parts) != len(o.Parts) {
		return false
	}
	for i := range q.Parts {
		if !q.Parts[i].Equals(o.Parts[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether o is a (non-strict) leading subsequence of q.
func (q QIdent) HasPrefix(o QIdent) bool {
	if len(o.Parts) > len(q.Parts) {
		return false
	}
	for i := range o.Parts {
		if !q.Parts[i].Equals(o.Parts[i]) {
			return false
		}
	}
	return true
}

func (q QIdent) String() string {
	names := make([]string, len(q.Parts))
	for i, p := range q.Parts {
		names[i] = p.Value()
	}
	return strings.Join(names, ".")
}

// Well-known primitive qualified names.
var (
	AnyQIdent       = QIdentOfStrings("any")
	StringQIdent    = QIdentOfStrings("string")
	NumberQIdent    = QIdentOfStrings("number")
	BooleanQIdent   = QIdentOfStrings("boolean")
	ObjectQIdent    = QIdentOfStrings("object")
	SymbolQIdent    = QIdentOfStrings("symbol")
	VoidQIdent      = QIdentOfStrings("void")
	UndefinedQIdent = QIdentOfStrings("undefined")
	NullQIdent      = QIdentOfStrings("null")
	NeverQIdent     = QIdentOfStrings("never")
	UnknownQIdent   = QIdentOfStrings("unknown")
	BigIntQIdent    = QIdentOfStrings("bigint")
	FunctionQIdent  = QIdentOfStrings("Function")
)

var primitiveNames = map[string]bool{
	"any": true, "string": true, "number": true, "boolean": true,
	"object": true, "symbol": true, "void": true, "undefined": true,
	"null": true, "never": true, "unknown": true, "bigint": true,
}

// IsPrimitive reports whether q names a TypeScript primitive keyword type.
func (q QIdent) IsPrimitive() bool {
	return len(q.Parts) == 1 && q.Parts[0].Kind == IdentSimple && primitiveNames[q.Parts[0].Name]
}

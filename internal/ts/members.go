package ts

// Member is the closed union of class/interface/object-type members.
type Member interface {
	Tree
	tsMember()
}

// ProtectionLevel is a member's access modifier.
type ProtectionLevel int

const (
	Default ProtectionLevel = iota
	Private
	Protected
)

// MethodType distinguishes normal methods from accessors.
type MethodType int

const (
	Normal MethodType = iota
	Getter
	Setter
)

// MemberCall is a call signature `(params): R`.
type MemberCall struct {
	Comments  Comments
	Level     ProtectionLevel
	Signature *FunSig
}

func (*MemberCall) tsTree()   {}
func (*MemberCall) tsMember() {}

// MemberCtor is a construct signature `new (params): R`.
type MemberCtor struct {
	Comments  Comments
	Level     ProtectionLevel
	Signature *FunSig
}

func (*MemberCtor) tsTree()   {}
func (*MemberCtor) tsMember() {}

// MemberFunction is a named method (or accessor).
type MemberFunction struct {
	Comments   Comments
	Level      ProtectionLevel
	Name       Ident
	MethodType MethodType
	Signature  *FunSig
	IsStatic   bool
	IsReadOnly bool
}

func (*MemberFunction) tsTree()   {}
func (*MemberFunction) tsMember() {}

// MemberProperty is a named property.
type MemberProperty struct {
	Comments   Comments
	Level      ProtectionLevel
	Name       Ident
	Type       Type
	Expr       Expr
	IsStatic   bool
	IsReadOnly bool
}

func (*MemberProperty) tsTree()   {}
func (*MemberProperty) tsMember() {}

// Indexing is the key part of an index signature.
type Indexing interface {
	Tree
	tsIndexing()
}

// IndexingDict is `[key: string]`.
type IndexingDict struct {
	Name Ident
	Type Type
}

func (*IndexingDict) tsTree()     {}
func (*IndexingDict) tsIndexing() {}

// IndexingSingle is `[K.e]` (well-known symbol indexing).
type IndexingSingle struct {
	Name QIdent
}

func (*IndexingSingle) tsTree()     {}
func (*IndexingSingle) tsIndexing() {}

// MemberIndex is an index signature `[key: K]: V`.
type MemberIndex struct {
	Comments   Comments
	IsReadOnly bool
	Level      ProtectionLevel
	Indexing   Indexing
	ValueType  Type
}

func (*MemberIndex) tsTree()   {}
func (*MemberIndex) tsMember() {}

// ReadonlyModifier is the +/- readonly modifier of a mapped type.
type ReadonlyModifier int

const (
	ReadonlyNoop ReadonlyModifier = iota
	ReadonlyYes
	ReadonlyNo
)

// OptionalModifier is the +/- ? modifier of a mapped type.
type OptionalModifier int

const (
	OptionalNoop OptionalModifier = iota
	Optionalize
	Deoptionalize
)

// MemberTypeMapped is a mapped-type body `[K in keyof T]: V`.
type MemberTypeMapped struct {
	Comments    Comments
	Level       ProtectionLevel
	Readonly    ReadonlyModifier
	Key         Ident
	From        Type
	As          Type
	Optionalize OptionalModifier
	To          Type
}

func (*MemberTypeMapped) tsTree()   {}
func (*MemberTypeMapped) tsMember() {}

// MemberName returns the name of a named member, or false for call,
// construct, index and mapped members.
func MemberName(m Member) (Ident, bool) {
	switch v := m.(type) {
	case *MemberFunction:
		return v.Name, true
	case *MemberProperty:
		return v.Name, true
	default:
		return Ident{}, false
	}
}

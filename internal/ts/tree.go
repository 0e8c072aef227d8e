package ts

// Tree is the closed root of the declaration-tree node hierarchy. The
// concrete node set is fixed; traversal and transformation switch over it
// exhaustively.
type Tree interface {
	tsTree()
}

// Decl is anything a container may hold as a member: named declarations,
// nested containers, imports and exports.
type Decl interface {
	Tree
	tsDecl()
}

// NamedDecl is a declaration with a name and a code path.
type NamedDecl interface {
	Decl
	DeclName() Ident
	Path() CodePath
	WithName(Ident) NamedDecl
}

// Container is a node holding an ordered member list: parsed files,
// namespaces, modules, augmented modules and global blocks.
type Container interface {
	Decl
	ContainerMembers() []Decl
	WithMembers([]Decl) Container
	Path() CodePath
}

// ParsedFile is the root node produced by the parser for one source file.
type ParsedFile struct {
	Comments Comments
	Members  []Decl
	CodePath CodePath
}

func (*ParsedFile) tsTree() {}
func (*ParsedFile) tsDecl() {}

func (f *ParsedFile) ContainerMembers() []Decl { return f.Members }
func (f *ParsedFile) Path() CodePath           { return f.CodePath }
func (f *ParsedFile) WithMembers(ms []Decl) Container {
	c := *f
	c.Members = ms
	return &c
}

// DeclInterface is `interface Name<T> extends A, B { ... }`.
type DeclInterface struct {
	Comments    Comments
	Declared    bool
	Name        Ident
	TParams     []TypeParam
	Inheritance []*TypeRef
	Members     []Member
	CodePath    CodePath
}

func (*DeclInterface) tsTree() {}
func (*DeclInterface) tsDecl() {}

func (d *DeclInterface) DeclName() Ident { return d.Name }
func (d *DeclInterface) Path() CodePath  { return d.CodePath }
func (d *DeclInterface) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// DeclClass is `class Name<T> extends P implements I { ... }`.
type DeclClass struct {
	Comments   Comments
	Declared   bool
	IsAbstract bool
	Name       Ident
	TParams    []TypeParam
	Parent     *TypeRef
	Implements []*TypeRef
	Members    []Member
	CodePath   CodePath
}

func (*DeclClass) tsTree() {}
func (*DeclClass) tsDecl() {}

func (d *DeclClass) DeclName() Ident { return d.Name }
func (d *DeclClass) Path() CodePath  { return d.CodePath }
func (d *DeclClass) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// DeclEnum is `enum Name { ... }`. IsValue distinguishes a runtime enum from
// its type-only projection; ExportedFrom records a re-exported enum's origin.
type DeclEnum struct {
	Comments     Comments
	Declared     bool
	IsConst      bool
	Name         Ident
	Members      []*EnumMember
	IsValue      bool
	ExportedFrom *TypeRef
	CodePath     CodePath
}

func (*DeclEnum) tsTree() {}
func (*DeclEnum) tsDecl() {}

func (d *DeclEnum) DeclName() Ident { return d.Name }
func (d *DeclEnum) Path() CodePath  { return d.CodePath }
func (d *DeclEnum) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// EnumMember is one `Name = expr` entry; Expr is nil until assigned
// explicitly in source or inferred by the enum pass.
type EnumMember struct {
	Comments Comments
	Name     Ident
	Expr     Expr
}

func (*EnumMember) tsTree() {}

// DeclVar is `var|let|const name: Type = expr`.
type DeclVar struct {
	Comments Comments
	Declared bool
	ReadOnly bool
	Name     Ident
	Type     Type
	Expr     Expr
	CodePath CodePath
}

func (*DeclVar) tsTree() {}
func (*DeclVar) tsDecl() {}

func (d *DeclVar) DeclName() Ident { return d.Name }
func (d *DeclVar) Path() CodePath  { return d.CodePath }
func (d *DeclVar) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// DeclFunction is `function name(...): R`.
type DeclFunction struct {
	Comments  Comments
	Declared  bool
	Name      Ident
	Signature *FunSig
	CodePath  CodePath
}

func (*DeclFunction) tsTree() {}
func (*DeclFunction) tsDecl() {}

func (d *DeclFunction) DeclName() Ident { return d.Name }
func (d *DeclFunction) Path() CodePath  { return d.CodePath }
func (d *DeclFunction) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// DeclTypeAlias is `type Name<T> = Alias`.
type DeclTypeAlias struct {
	Comments Comments
	Declared bool
	Name     Ident
	TParams  []TypeParam
	Alias    Type
	CodePath CodePath
}

func (*DeclTypeAlias) tsTree() {}
func (*DeclTypeAlias) tsDecl() {}

func (d *DeclTypeAlias) DeclName() Ident { return d.Name }
func (d *DeclTypeAlias) Path() CodePath  { return d.CodePath }
func (d *DeclTypeAlias) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}

// DeclNamespace is `namespace Name { ... }`.
type DeclNamespace struct {
	Comments Comments
	Declared bool
	Name     Ident
	Members  []Decl
	CodePath CodePath
}

func (*DeclNamespace) tsTree() {}
func (*DeclNamespace) tsDecl() {}

func (d *DeclNamespace) DeclName() Ident { return d.Name }
func (d *DeclNamespace) Path() CodePath  { return d.CodePath }
func (d *DeclNamespace) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}
func (d *DeclNamespace) ContainerMembers() []Decl { return d.Members }
func (d *DeclNamespace) WithMembers(ms []Decl) Container {
	c := *d
	c.Members = ms
	return &c
}

// DeclModule is `declare module "name" { ... }`.
type DeclModule struct {
	Comments Comments
	Declared bool
	Name     Ident
	Members  []Decl
	CodePath CodePath
}

func (*DeclModule) tsTree() {}
func (*DeclModule) tsDecl() {}

func (d *DeclModule) DeclName() Ident { return d.Name }
func (d *DeclModule) Path() CodePath  { return d.CodePath }
func (d *DeclModule) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}
func (d *DeclModule) ContainerMembers() []Decl { return d.Members }
func (d *DeclModule) WithMembers(ms []Decl) Container {
	c := *d
	c.Members = ms
	return &c
}

// AugmentedModule is a `declare module "name"` block that augments an
// existing module rather than declaring it.
type AugmentedModule struct {
	Comments Comments
	Name     Ident
	Members  []Decl
	CodePath CodePath
}

func (*AugmentedModule) tsTree() {}
func (*AugmentedModule) tsDecl() {}

func (d *AugmentedModule) DeclName() Ident { return d.Name }
func (d *AugmentedModule) Path() CodePath  { return d.CodePath }
func (d *AugmentedModule) WithName(n Ident) NamedDecl {
	c := *d
	c.Name = n
	return &c
}
func (d *AugmentedModule) ContainerMembers() []Decl { return d.Members }
func (d *AugmentedModule) WithMembers(ms []Decl) Container {
	c := *d
	c.Members = ms
	return &c
}

// Global is a `declare global { ... }` block (or the synthetic one created
// when value declarations are hoisted out of a file's top level).
type Global struct {
	Comments Comments
	Declared bool
	Members  []Decl
	CodePath CodePath
}

func (*Global) tsTree() {}
func (*Global) tsDecl() {}

func (d *Global) ContainerMembers() []Decl { return d.Members }
func (d *Global) Path() CodePath           { return d.CodePath }
func (d *Global) WithMembers(ms []Decl) Container {
	c := *d
	c.Members = ms
	return &c
}

// ExportKind distinguishes `export {A}` / `export = A` / `export default A`.
type ExportKind int

const (
	ExportNamed ExportKind = iota
	ExportNamespaced
	ExportDefaulted
)

// Exportee is the payload of an export statement.
type Exportee interface {
	Tree
	tsExportee()
}

// ExportedName is one `A.B as C` entry in an export clause.
type ExportedName struct {
	QName QIdent
	Alias *Ident
}

// ExporteeNames is `export {A, B as C}` (optionally `from "mod"`).
type ExporteeNames struct {
	Names []ExportedName
	From  *Ident
}

func (*ExporteeNames) tsTree()     {}
func (*ExporteeNames) tsExportee() {}

// ExporteeStar is `export * from "mod"` (optionally `as name`).
type ExporteeStar struct {
	As   *Ident
	From Ident
}

func (*ExporteeStar) tsTree()     {}
func (*ExporteeStar) tsExportee() {}

// ExporteeTree is an inline `export <decl>`.
type ExporteeTree struct {
	Decl Decl
}

func (*ExporteeTree) tsTree()     {}
func (*ExporteeTree) tsExportee() {}

// Export is an export statement.
type Export struct {
	Comments Comments
	TypeOnly bool
	Kind     ExportKind
	Exported Exportee
}

func (*Export) tsTree() {}
func (*Export) tsDecl() {}

// Importee is the source of an import statement.
type Importee interface {
	Tree
	tsImportee()
}

// ImporteeFrom is `import ... from "mod"`.
type ImporteeFrom struct {
	From Ident
}

func (*ImporteeFrom) tsTree()     {}
func (*ImporteeFrom) tsImportee() {}

// ImporteeRequired is `import x = require("mod")`.
type ImporteeRequired struct {
	From Ident
}

func (*ImporteeRequired) tsTree()     {}
func (*ImporteeRequired) tsImportee() {}

// ImporteeLocal is `import x = A.B`.
type ImporteeLocal struct {
	QName QIdent
}

func (*ImporteeLocal) tsTree()     {}
func (*ImporteeLocal) tsImportee() {}

// Imported is one clause of an import statement.
type Imported interface {
	Tree
	tsImported()
}

// ImportedIdent is `import x` (default import or require binding).
type ImportedIdent struct {
	Ident Ident
}

func (*ImportedIdent) tsTree()     {}
func (*ImportedIdent) tsImported() {}

// ImportedDestructured is `import {a, b as c}`.
type ImportedDestructured struct {
	Names []ExportedName
}

func (*ImportedDestructured) tsTree()     {}
func (*ImportedDestructured) tsImported() {}

// ImportedStar is `import * as x`.
type ImportedStar struct {
	As *Ident
}

func (*ImportedStar) tsTree()     {}
func (*ImportedStar) tsImported() {}

// Import is an import statement.
type Import struct {
	Comments Comments
	TypeOnly bool
	Imported []Imported
	From     Importee
}

func (*Import) tsTree() {}
func (*Import) tsDecl() {}

// Package transform is the enter/leave tree-rewriting framework every pass
// is built on. A pass supplies the hooks it cares about and embeds Identity
// for the rest; the visitor handles recursive descent into containers,
// classes, interfaces and type positions, descending the scope at each step.
package transform

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/ts"
)

// Transformation is the full hook surface. Enter hooks run pre-order before
// descending into a node's children; Leave hooks run post-order. The batch
// hooks NewMembers/NewClassMembers see whole member lists at once, which
// per-node hooks cannot express (sibling collisions, overload splitting).
type Transformation interface {
	EnterParsedFile(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile
	LeaveParsedFile(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile

	EnterClass(s *scope.Scope, d *ts.DeclClass) ts.Decl
	EnterInterface(s *scope.Scope, d *ts.DeclInterface) ts.Decl
	EnterEnum(s *scope.Scope, d *ts.DeclEnum) ts.Decl
	EnterVar(s *scope.Scope, d *ts.DeclVar) ts.Decl
	EnterFunction(s *scope.Scope, d *ts.DeclFunction) ts.Decl
	EnterTypeAlias(s *scope.Scope, d *ts.DeclTypeAlias) ts.Decl
	EnterNamespace(s *scope.Scope, d *ts.DeclNamespace) ts.Decl
	EnterModule(s *scope.Scope, d *ts.DeclModule) *ts.DeclModule
	EnterAugmentedModule(s *scope.Scope, d *ts.AugmentedModule) ts.Decl
	EnterGlobal(s *scope.Scope, d *ts.Global) *ts.Global

	EnterType(s *scope.Scope, t ts.Type) ts.Type
	LeaveType(s *scope.Scope, t ts.Type) ts.Type
	EnterTypeRef(s *scope.Scope, t *ts.TypeRef) *ts.TypeRef

	EnterMember(s *scope.Scope, m ts.Member) ts.Member

	NewMembers(s *scope.Scope, c ts.Container, members []ts.Decl) []ts.Decl
	NewClassMembers(s *scope.Scope, owner ts.Tree, members []ts.Member) []ts.Member
}

// Identity implements every hook as a no-op. Passes embed it and override
// the hooks they need.
type Identity struct{}

func (Identity) EnterParsedFile(_ *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile { return f }
func (Identity) LeaveParsedFile(_ *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile { return f }

func (Identity) EnterClass(_ *scope.Scope, d *ts.DeclClass) ts.Decl               { return d }
func (Identity) EnterInterface(_ *scope.Scope, d *ts.DeclInterface) ts.Decl       { return d }
func (Identity) EnterEnum(_ *scope.Scope, d *ts.DeclEnum) ts.Decl                 { return d }
func (Identity) EnterVar(_ *scope.Scope, d *ts.DeclVar) ts.Decl                   { return d }
func (Identity) EnterFunction(_ *scope.Scope, d *ts.DeclFunction) ts.Decl         { return d }
func (Identity) EnterTypeAlias(_ *scope.Scope, d *ts.DeclTypeAlias) ts.Decl       { return d }
func (Identity) EnterNamespace(_ *scope.Scope, d *ts.DeclNamespace) ts.Decl       { return d }
func (Identity) EnterModule(_ *scope.Scope, d *ts.DeclModule) *ts.DeclModule      { return d }
func (Identity) EnterAugmentedModule(_ *scope.Scope, d *ts.AugmentedModule) ts.Decl {
	return d
}
func (Identity) EnterGlobal(_ *scope.Scope, d *ts.Global) *ts.Global { return d }

func (Identity) EnterType(_ *scope.Scope, t ts.Type) ts.Type          { return t }
func (Identity) LeaveType(_ *scope.Scope, t ts.Type) ts.Type          { return t }
func (Identity) EnterTypeRef(_ *scope.Scope, t *ts.TypeRef) *ts.TypeRef { return t }

func (Identity) EnterMember(_ *scope.Scope, m ts.Member) ts.Member { return m }

func (Identity) NewMembers(_ *scope.Scope, _ ts.Container, members []ts.Decl) []ts.Decl {
	return members
}
func (Identity) NewClassMembers(_ *scope.Scope, _ ts.Tree, members []ts.Member) []ts.Member {
	return members
}

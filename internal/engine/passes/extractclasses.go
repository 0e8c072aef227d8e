package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// BackupSuffix is appended when a synthesized class collides with an
// existing type-level declaration.
const BackupSuffix = "Cls"

// ExtractClasses promotes variable declarations whose type is a constructor
// type (or an interface bearing construct signatures) into proper class
// declarations, so downstream code generation can emit instantiable types.
func ExtractClasses(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(extractClasses{}, s, f)
}

type extractClasses struct{ transform.Identity }

func (extractClasses) NewMembers(s *scope.Scope, c ts.Container, members []ts.Decl) []ts.Decl {
	var out []ts.Decl
	changed := false
	for _, m := range members {
		v, ok := ts.Unwrapped(m).(*ts.DeclVar)
		if !ok || v.Expr != nil || v.Type == nil {
			out = append(out, m)
			continue
		}
		analyzed, ok := AnalyzeCtors(s, v.Type)
		if !ok {
			out = append(out, m)
			continue
		}

		name, wasBackup := FindAvailableName(members, v.Name)
		cls := analyzed.AsClass(name, v, c.Path())
		changed = true
		if wasBackup {
			out = append(out, m, cls)
		} else {
			out = append(out, rewrap(m, cls))
		}
	}
	if !changed {
		return members
	}
	return out
}

// AnalyzedCtors is the constructor shape recovered from a variable's type:
// the chosen type parameterization, the shared construction result, and the
// surviving construct signatures.
type AnalyzedCtors struct {
	TParams    []ts.TypeParam
	ResultType *ts.TypeRef
	Ctors      []*ts.FunSig
}

// AnalyzeCtors walks a type collecting every reachable construct signature,
// picks the group with the greatest type-parameter count (ties broken by
// encounter order) and keeps only signatures construction-compatible with
// the chosen one's result. Extraction is gated to results that are simple:
// an interface or class with zero type parameters resolvable in scope.
func AnalyzeCtors(s *scope.Scope, t ts.Type) (AnalyzedCtors, bool) {
	ctors := findCtors(s, scope.LoopDetector{}, t)
	if len(ctors) == 0 {
		return AnalyzedCtors{}, false
	}

	longest := ctors[0]
	for _, sig := range ctors[1:] {
		if len(sig.TParams) > len(longest.TParams) {
			longest = sig
		}
	}
	result, ok := longest.ResultType.(*ts.TypeRef)
	if !ok || !isSimpleType(s, result) {
		return AnalyzedCtors{}, false
	}

	var kept []*ts.FunSig
	for _, sig := range ctors {
		if ref, ok := sig.ResultType.(*ts.TypeRef); ok && ref.Name.Equals(result.Name) {
			kept = append(kept, sig)
		}
	}
	if len(kept) == 0 {
		return AnalyzedCtors{}, false
	}
	return AnalyzedCtors{TParams: longest.TParams, ResultType: result, Ctors: kept}, true
}

// AsClass materializes the synthesized class in place of (or next to) the
// variable it was extracted from.
func (a AnalyzedCtors) AsClass(name ts.Ident, v *ts.DeclVar, containerPath ts.CodePath) *ts.DeclClass {
	members := make([]ts.Member, len(a.Ctors))
	for i, sig := range a.Ctors {
		c := *sig
		c.TParams = nil
		c.ResultType = nil
		members[i] = &ts.MemberCtor{Comments: sig.Comments, Signature: &c}
	}
	cls := &ts.DeclClass{
		Comments: v.Comments,
		Declared: v.Declared,
		Name:     name,
		TParams:  a.TParams,
		Members:  members,
		CodePath: containerPath.Add(name),
	}
	if !a.ResultType.Name.Equals(ts.QIdentOf(name)) {
		cls.Implements = []*ts.TypeRef{a.ResultType}
	}
	return cls
}

// findCtors recursively collects construct signatures reachable through
// interface lookups, object-type members, intersection branches and direct
// constructor types, guarded against reference cycles.
func findCtors(s *scope.Scope, ld scope.LoopDetector, t ts.Type) []*ts.FunSig {
	switch v := t.(type) {
	case *ts.TypeConstructor:
		return []*ts.FunSig{v.Signature}
	case *ts.TypeObject:
		return ctorMembers(v.Members)
	case *ts.TypeIntersect:
		var out []*ts.FunSig
		for _, op := range v.Types {
			out = append(out, findCtors(s, ld, op)...)
		}
		return out
	case *ts.TypeRef:
		if len(v.TArgs) > 0 {
			return nil
		}
		ld, ok := ld.Including(v.Name, s)
		if !ok {
			return nil
		}
		var out []*ts.FunSig
		for _, r := range s.LookupIncludeScope(v.Name) {
			switch d := ts.Unwrapped(r.Decl).(type) {
			case *ts.DeclInterface:
				out = append(out, ctorMembers(d.Members)...)
				for _, parent := range d.Inheritance {
					out = append(out, findCtors(r.Scope, ld, parent)...)
				}
			case *ts.DeclTypeAlias:
				out = append(out, findCtors(r.Scope, ld, d.Alias)...)
			}
		}
		return out
	default:
		return nil
	}
}

func ctorMembers(members []ts.Member) []*ts.FunSig {
	var out []*ts.FunSig
	for _, m := range members {
		if ctor, ok := m.(*ts.MemberCtor); ok && ctor.Signature != nil && ctor.Signature.ResultType != nil {
			out = append(out, ctor.Signature)
		}
	}
	return out
}

func isSimpleType(s *scope.Scope, ref *ts.TypeRef) bool {
	if len(ref.TArgs) > 0 {
		return false
	}
	for _, d := range s.LookupType(ref.Name) {
		switch v := d.(type) {
		case *ts.DeclInterface:
			return len(v.TParams) == 0
		case *ts.DeclClass:
			return len(v.TParams) == 0
		}
	}
	return false
}

// FindAvailableName resolves naming collisions when inserting a synthesized
// class: a clash with another type-level declaration yields the backup name
// (suffix "Cls", wasBackup=true); a clash with only a same-named variable is
// allowed and keeps the requested name.
func FindAvailableName(members []ts.Decl, name ts.Ident) (ts.Ident, bool) {
	for _, m := range members {
		existing, ok := ts.NameOf(m)
		if !ok || !existing.Equals(name) {
			continue
		}
		switch ts.Unwrapped(m).(type) {
		case *ts.DeclClass, *ts.DeclInterface, *ts.DeclTypeAlias:
			return ts.SimpleIdent(name.Value() + BackupSuffix), true
		}
	}
	return name, false
}

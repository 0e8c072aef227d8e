package transform

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/ts"
)

// File applies a transformation to a parsed file, returning the rewritten
// tree. When nothing changes the input pointer is returned unchanged, which
// passes rely on to signal "not applicable".
func File(t Transformation, s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	f1 := t.EnterParsedFile(s, f)
	ss := s.Descend(f1)
	ms, changed := visitDecls(t, ss, f1.Members)
	if batch := t.NewMembers(ss, f1, ms); !sameDecls(batch, ms) {
		ms = batch
		changed = true
	}
	out := f1
	if changed {
		out = f1.WithMembers(ms).(*ts.ParsedFile)
	}
	return t.LeaveParsedFile(s, out)
}

// Decl applies a transformation to a single declaration subtree.
func Decl(t Transformation, s *scope.Scope, d ts.Decl) ts.Decl {
	return visitDecl(t, s, d)
}

// Type applies a transformation to a single type subtree.
func Type(t Transformation, s *scope.Scope, tpe ts.Type) ts.Type {
	return visitType(t, s, tpe)
}

func visitDecls(t Transformation, s *scope.Scope, ds []ts.Decl) ([]ts.Decl, bool) {
	out := make([]ts.Decl, len(ds))
	changed := false
	for i, d := range ds {
		out[i] = visitDecl(t, s, d)
		if out[i] != d {
			changed = true
		}
	}
	if !changed {
		return ds, false
	}
	return out, true
}

func visitDecl(t Transformation, s *scope.Scope, d ts.Decl) ts.Decl {
	var entered ts.Decl
	switch v := d.(type) {
	case *ts.DeclClass:
		entered = t.EnterClass(s, v)
	case *ts.DeclInterface:
		entered = t.EnterInterface(s, v)
	case *ts.DeclEnum:
		entered = t.EnterEnum(s, v)
	case *ts.DeclVar:
		entered = t.EnterVar(s, v)
	case *ts.DeclFunction:
		entered = t.EnterFunction(s, v)
	case *ts.DeclTypeAlias:
		entered = t.EnterTypeAlias(s, v)
	case *ts.DeclNamespace:
		entered = t.EnterNamespace(s, v)
	case *ts.DeclModule:
		entered = t.EnterModule(s, v)
	case *ts.AugmentedModule:
		entered = t.EnterAugmentedModule(s, v)
	case *ts.Global:
		entered = t.EnterGlobal(s, v)
	default:
		entered = d
	}
	return recurseDecl(t, s, entered)
}

func recurseDecl(t Transformation, s *scope.Scope, d ts.Decl) ts.Decl {
	switch v := d.(type) {
	case *ts.DeclClass:
		ss := s.Descend(v)
		tps, ch1 := visitTypeParams(t, ss, v.TParams)
		parent := v.Parent
		ch2 := false
		if parent != nil {
			if p := visitRef(t, ss, parent); p != parent {
				parent = p
				ch2 = true
			}
		}
		impls, ch3 := visitRefs(t, ss, v.Implements)
		ms, ch4 := visitMembers(t, ss, v.Members)
		if batch := t.NewClassMembers(ss, v, ms); !sameMembers(batch, ms) {
			ms = batch
			ch4 = true
		}
		if !(ch1 || ch2 || ch3 || ch4) {
			return v
		}
		c := *v
		c.TParams = tps
		c.Parent = parent
		c.Implements = impls
		c.Members = ms
		return &c

	case *ts.DeclInterface:
		ss := s.Descend(v)
		tps, ch1 := visitTypeParams(t, ss, v.TParams)
		inh, ch2 := visitRefs(t, ss, v.Inheritance)
		ms, ch3 := visitMembers(t, ss, v.Members)
		if batch := t.NewClassMembers(ss, v, ms); !sameMembers(batch, ms) {
			ms = batch
			ch3 = true
		}
		if !(ch1 || ch2 || ch3) {
			return v
		}
		c := *v
		c.TParams = tps
		c.Inheritance = inh
		c.Members = ms
		return &c

	case *ts.DeclVar:
		if v.Type == nil {
			return v
		}
		ss := s.Descend(v)
		if tpe := visitType(t, ss, v.Type); tpe != v.Type {
			c := *v
			c.Type = tpe
			return &c
		}
		return v

	case *ts.DeclFunction:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			c := *v
			c.Signature = sig
			return &c
		}
		return v

	case *ts.DeclTypeAlias:
		ss := s.Descend(v)
		tps, ch1 := visitTypeParams(t, ss, v.TParams)
		alias := visitType(t, ss, v.Alias)
		if !ch1 && alias == v.Alias {
			return v
		}
		c := *v
		c.TParams = tps
		c.Alias = alias
		return &c

	case *ts.DeclNamespace:
		return recurseContainer(t, s, v)
	case *ts.DeclModule:
		return recurseContainer(t, s, v)
	case *ts.AugmentedModule:
		return recurseContainer(t, s, v)
	case *ts.Global:
		return recurseContainer(t, s, v)

	case *ts.Export:
		tree, ok := v.Exported.(*ts.ExporteeTree)
		if !ok {
			return v
		}
		if inner := visitDecl(t, s, tree.Decl); inner != tree.Decl {
			c := *v
			c.Exported = &ts.ExporteeTree{Decl: inner}
			return &c
		}
		return v

	default:
		return d
	}
}

func recurseContainer(t Transformation, s *scope.Scope, c ts.Container) ts.Decl {
	ss := s.Descend(c)
	ms, changed := visitDecls(t, ss, c.ContainerMembers())
	if batch := t.NewMembers(ss, c, ms); !sameDecls(batch, ms) {
		ms = batch
		changed = true
	}
	if !changed {
		return c
	}
	return c.WithMembers(ms)
}

func visitType(t Transformation, s *scope.Scope, tpe ts.Type) ts.Type {
	if tpe == nil {
		return nil
	}
	t1 := t.EnterType(s, tpe)
	if ref, ok := t1.(*ts.TypeRef); ok {
		t1 = t.EnterTypeRef(s, ref)
	}
	t2 := rebuildType(t, s, t1)
	return t.LeaveType(s, t2)
}

func rebuildType(t Transformation, s *scope.Scope, tpe ts.Type) ts.Type {
	switch v := tpe.(type) {
	case *ts.TypeRef:
		ss := s.Descend(v)
		targs, changed := visitTypes(t, ss, v.TArgs)
		if !changed {
			return v
		}
		c := *v
		c.TArgs = targs
		return &c

	case *ts.TypeUnion:
		ss := s.Descend(v)
		types, changed := visitTypes(t, ss, v.Types)
		if !changed {
			return v
		}
		return ts.UnionOf(types...)

	case *ts.TypeIntersect:
		ss := s.Descend(v)
		types, changed := visitTypes(t, ss, v.Types)
		if !changed {
			return v
		}
		return ts.IntersectOf(types...)

	case *ts.TypeObject:
		ss := s.Descend(v)
		ms, changed := visitMembers(t, ss, v.Members)
		if batch := t.NewClassMembers(ss, v, ms); !sameMembers(batch, ms) {
			ms = batch
			changed = true
		}
		if !changed {
			return v
		}
		c := *v
		c.Members = ms
		return &c

	case *ts.TypeFunction:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			return &ts.TypeFunction{Signature: sig}
		}
		return v

	case *ts.TypeConstructor:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			return &ts.TypeConstructor{IsAbstract: v.IsAbstract, Signature: sig}
		}
		return v

	case *ts.TypeTuple:
		ss := s.Descend(v)
		changed := false
		elems := make([]ts.TupleElem, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = e
			if nt := visitType(t, ss, e.Type); nt != e.Type {
				elems[i].Type = nt
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &ts.TypeTuple{Elems: elems}

	case *ts.TypeKeyOf:
		ss := s.Descend(v)
		if of := visitType(t, ss, v.Of); of != v.Of {
			return &ts.TypeKeyOf{Of: of}
		}
		return v

	case *ts.TypeLookup:
		ss := s.Descend(v)
		from := visitType(t, ss, v.From)
		key := visitType(t, ss, v.Key)
		if from == v.From && key == v.Key {
			return v
		}
		return &ts.TypeLookup{From: from, Key: key}

	case *ts.TypeConditional:
		ss := s.Descend(v)
		pred := visitType(t, ss, v.Pred)
		ift := visitType(t, ss, v.IfTrue)
		iff := visitType(t, ss, v.IfFalse)
		if pred == v.Pred && ift == v.IfTrue && iff == v.IfFalse {
			return v
		}
		return &ts.TypeConditional{Pred: pred, IfTrue: ift, IfFalse: iff}

	case *ts.TypeRepeated:
		ss := s.Descend(v)
		if u := visitType(t, ss, v.Underlying); u != v.Underlying {
			return &ts.TypeRepeated{Underlying: u}
		}
		return v

	default:
		// Literal, query, this: no type children.
		return tpe
	}
}

// visitRef visits a reference in an inheritance position: the TypeRef hook
// applies but the general type hooks do not, so inheritance slots always
// stay references.
func visitRef(t Transformation, s *scope.Scope, ref *ts.TypeRef) *ts.TypeRef {
	r1 := t.EnterTypeRef(s, ref)
	ss := s.Descend(r1)
	targs, changed := visitTypes(t, ss, r1.TArgs)
	if !changed {
		return r1
	}
	c := *r1
	c.TArgs = targs
	return &c
}

func visitRefs(t Transformation, s *scope.Scope, refs []*ts.TypeRef) ([]*ts.TypeRef, bool) {
	out := make([]*ts.TypeRef, len(refs))
	changed := false
	for i, r := range refs {
		out[i] = visitRef(t, s, r)
		if out[i] != r {
			changed = true
		}
	}
	if !changed {
		return refs, false
	}
	return out, true
}

func visitTypes(t Transformation, s *scope.Scope, types []ts.Type) ([]ts.Type, bool) {
	out := make([]ts.Type, len(types))
	changed := false
	for i, tp := range types {
		out[i] = visitType(t, s, tp)
		if out[i] != tp {
			changed = true
		}
	}
	if !changed {
		return types, false
	}
	return out, true
}

func visitMembers(t Transformation, s *scope.Scope, ms []ts.Member) ([]ts.Member, bool) {
	out := make([]ts.Member, len(ms))
	changed := false
	for i, m := range ms {
		out[i] = visitMember(t, s, m)
		if out[i] != m {
			changed = true
		}
	}
	if !changed {
		return ms, false
	}
	return out, true
}

func visitMember(t Transformation, s *scope.Scope, m ts.Member) ts.Member {
	m1 := t.EnterMember(s, m)
	switch v := m1.(type) {
	case *ts.MemberProperty:
		if v.Type == nil {
			return v
		}
		ss := s.Descend(v)
		if tpe := visitType(t, ss, v.Type); tpe != v.Type {
			c := *v
			c.Type = tpe
			return &c
		}
		return v

	case *ts.MemberFunction:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			c := *v
			c.Signature = sig
			return &c
		}
		return v

	case *ts.MemberCall:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			c := *v
			c.Signature = sig
			return &c
		}
		return v

	case *ts.MemberCtor:
		ss := s.Descend(v)
		if sig := visitSig(t, ss, v.Signature); sig != v.Signature {
			c := *v
			c.Signature = sig
			return &c
		}
		return v

	case *ts.MemberIndex:
		ss := s.Descend(v)
		changed := false
		indexing := v.Indexing
		if dict, ok := indexing.(*ts.IndexingDict); ok {
			if tpe := visitType(t, ss, dict.Type); tpe != dict.Type {
				indexing = &ts.IndexingDict{Name: dict.Name, Type: tpe}
				changed = true
			}
		}
		value := v.ValueType
		if value != nil {
			if tpe := visitType(t, ss, value); tpe != value {
				value = tpe
				changed = true
			}
		}
		if !changed {
			return v
		}
		c := *v
		c.Indexing = indexing
		c.ValueType = value
		return &c

	case *ts.MemberTypeMapped:
		ss := s.Descend(v)
		from := visitType(t, ss, v.From)
		as := visitType(t, ss, v.As)
		to := visitType(t, ss, v.To)
		if from == v.From && as == v.As && to == v.To {
			return v
		}
		c := *v
		c.From = from
		c.As = as
		c.To = to
		return &c

	default:
		return m1
	}
}

func visitSig(t Transformation, s *scope.Scope, sig *ts.FunSig) *ts.FunSig {
	if sig == nil {
		return nil
	}
	ss := s.Descend(sig)
	tps, ch1 := visitTypeParams(t, ss, sig.TParams)
	params := make([]*ts.FunParam, len(sig.Params))
	ch2 := false
	for i, p := range sig.Params {
		params[i] = p
		if p.Type == nil {
			continue
		}
		if tpe := visitType(t, ss, p.Type); tpe != p.Type {
			c := *p
			c.Type = tpe
			params[i] = &c
			ch2 = true
		}
	}
	result := sig.ResultType
	ch3 := false
	if result != nil {
		if tpe := visitType(t, ss, result); tpe != result {
			result = tpe
			ch3 = true
		}
	}
	if !(ch1 || ch2 || ch3) {
		return sig
	}
	c := *sig
	c.TParams = tps
	c.Params = params
	c.ResultType = result
	return &c
}

func visitTypeParams(t Transformation, s *scope.Scope, tps []ts.TypeParam) ([]ts.TypeParam, bool) {
	out := make([]ts.TypeParam, len(tps))
	changed := false
	for i, tp := range tps {
		out[i] = tp
		if tp.UpperBound != nil {
			if b := visitType(t, s, tp.UpperBound); b != tp.UpperBound {
				out[i].UpperBound = b
				changed = true
			}
		}
		if tp.Default != nil {
			if d := visitType(t, s, tp.Default); d != tp.Default {
				out[i].Default = d
				changed = true
			}
		}
	}
	if !changed {
		return tps, false
	}
	return out, true
}

func sameDecls(a, b []ts.Decl) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameMembers(a, b []ts.Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

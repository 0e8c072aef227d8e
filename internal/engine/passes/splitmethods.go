package passes

import (
	"dtsforge/internal/engine/scope"
	"dtsforge/internal/engine/transform"
	"dtsforge/internal/ts"
)

// Blow-up guards for overload splitting. Empirically tuned; preserved as-is.
const (
	splitMaxParams       = 20
	splitMaxCombinations = 50
)

// SplitMethods expands methods, call signatures and constructors whose
// parameters are union-typed into the cartesian product of per-parameter
// alternatives, one overload per combination. Literal union members are
// grouped into a single alternative. Signatures over the parameter or
// combination caps are returned unsplit.
func SplitMethods(s *scope.Scope, f *ts.ParsedFile) *ts.ParsedFile {
	return transform.File(splitMethods{}, s, f)
}

type splitMethods struct{ transform.Identity }

func (splitMethods) NewClassMembers(_ *scope.Scope, _ ts.Tree, members []ts.Member) []ts.Member {
	var out []ts.Member
	changed := false
	for _, m := range members {
		switch v := m.(type) {
		case *ts.MemberFunction:
			if v.MethodType != ts.Normal {
				out = append(out, m)
				continue
			}
			sigs := splitSig(v.Signature)
			if sigs == nil {
				out = append(out, m)
				continue
			}
			changed = true
			for _, sig := range sigs {
				c := *v
				c.Signature = sig
				out = append(out, &c)
			}
		case *ts.MemberCall:
			sigs := splitSig(v.Signature)
			if sigs == nil {
				out = append(out, m)
				continue
			}
			changed = true
			for _, sig := range sigs {
				c := *v
				c.Signature = sig
				out = append(out, &c)
			}
		case *ts.MemberCtor:
			sigs := splitSig(v.Signature)
			if sigs == nil {
				out = append(out, m)
				continue
			}
			changed = true
			for _, sig := range sigs {
				c := *v
				c.Signature = sig
				out = append(out, &c)
			}
		default:
			out = append(out, m)
		}
	}
	if !changed {
		return members
	}
	return out
}

func (splitMethods) NewMembers(_ *scope.Scope, _ ts.Container, members []ts.Decl) []ts.Decl {
	var out []ts.Decl
	changed := false
	for _, m := range members {
		fn, ok := ts.Unwrapped(m).(*ts.DeclFunction)
		if !ok {
			out = append(out, m)
			continue
		}
		sigs := splitSig(fn.Signature)
		if sigs == nil {
			out = append(out, m)
			continue
		}
		changed = true
		for _, sig := range sigs {
			c := *fn
			c.Signature = sig
			out = append(out, rewrap(m, &c))
		}
	}
	if !changed {
		return members
	}
	return out
}

// splitSig returns the expanded overloads, or nil when the signature is not
// split (no unions, too many parameters, or product over the cap).
func splitSig(sig *ts.FunSig) []*ts.FunSig {
	if sig == nil || len(sig.Params) > splitMaxParams {
		return nil
	}

	alts := make([][]ts.Type, len(sig.Params))
	product := 1
	anyUnion := false
	for i, p := range sig.Params {
		alts[i] = paramAlternatives(p.Type)
		if len(alts[i]) > 1 {
			anyUnion = true
		}
		product *= len(alts[i])
		if product > splitMaxCombinations {
			return nil
		}
	}
	if !anyUnion {
		return nil
	}

	out := make([]*ts.FunSig, 0, product)
	indices := make([]int, len(sig.Params))
	for {
		params := make([]*ts.FunParam, len(sig.Params))
		for i, p := range sig.Params {
			c := *p
			c.Type = alts[i][indices[i]]
			params[i] = &c
		}
		c := *sig
		c.Comments = sig.Comments.Add(ts.MarkerExpanded)
		c.Params = params
		out = append(out, &c)

		// Advance odometer, last parameter fastest.
		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(alts[pos]) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// paramAlternatives lists the types a parameter splits into. Non-union
// parameters stay a single alternative; a rest parameter keeps its
// repeated-ness on each alternative; literal members of a union collapse
// into one grouped alternative at the position of the first literal.
func paramAlternatives(t ts.Type) []ts.Type {
	if t == nil {
		return []ts.Type{nil}
	}
	if rep, ok := t.(*ts.TypeRepeated); ok {
		inner := paramAlternatives(rep.Underlying)
		if len(inner) == 1 {
			return []ts.Type{t}
		}
		out := make([]ts.Type, len(inner))
		for i, alt := range inner {
			out[i] = &ts.TypeRepeated{Underlying: alt}
		}
		return out
	}
	union, ok := t.(*ts.TypeUnion)
	if !ok {
		return []ts.Type{t}
	}

	var out []ts.Type
	var literals []ts.Type
	literalSlot := -1
	for _, member := range union.Types {
		if _, ok := member.(*ts.TypeLiteral); ok {
			if literalSlot == -1 {
				literalSlot = len(out)
				out = append(out, nil) // placeholder
			}
			literals = append(literals, member)
			continue
		}
		out = append(out, member)
	}
	if literalSlot >= 0 {
		out[literalSlot] = ts.UnionOf(literals...)
	}
	return out
}

package ts

// Children returns a node's direct structural children in field declaration
// order. The table is maintained by hand so traversal stays total over the
// closed node set and never wanders into non-tree data.
func Children(n Tree) []Tree {
	var out []Tree
	add := func(t Tree) {
		if t != nil {
			out = append(out, t)
		}
	}
	addType := func(t Type) {
		if t != nil {
			out = append(out, t)
		}
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addSig := func(s *FunSig) {
		if s != nil {
			out = append(out, s)
		}
	}
	addTParams := func(tps []TypeParam) {
		for i := range tps {
			addType(tps[i].UpperBound)
			addType(tps[i].Default)
		}
	}

	switch v := n.(type) {
	case *ParsedFile:
		for _, m := range v.Members {
			add(m)
		}
	case *DeclInterface:
		addTParams(v.TParams)
		for _, p := range v.Inheritance {
			add(p)
		}
		for _, m := range v.Members {
			add(m)
		}
	case *DeclClass:
		addTParams(v.TParams)
		if v.Parent != nil {
			add(v.Parent)
		}
		for _, p := range v.Implements {
			add(p)
		}
		for _, m := range v.Members {
			add(m)
		}
	case *DeclEnum:
		for _, m := range v.Members {
			add(m)
		}
		if v.ExportedFrom != nil {
			add(v.ExportedFrom)
		}
	case *EnumMember:
		addExpr(v.Expr)
	case *DeclVar:
		addType(v.Type)
		addExpr(v.Expr)
	case *DeclFunction:
		addSig(v.Signature)
	case *DeclTypeAlias:
		addTParams(v.TParams)
		addType(v.Alias)
	case *DeclNamespace:
		for _, m := range v.Members {
			add(m)
		}
	case *DeclModule:
		for _, m := range v.Members {
			add(m)
		}
	case *AugmentedModule:
		for _, m := range v.Members {
			add(m)
		}
	case *Global:
		for _, m := range v.Members {
			add(m)
		}
	case *Export:
		add(v.Exported)
	case *ExporteeNames:
	case *ExporteeStar:
	case *ExporteeTree:
		add(v.Decl)
	case *Import:
		for _, i := range v.Imported {
			add(i)
		}
		add(v.From)
	case *ImportedIdent, *ImportedDestructured, *ImportedStar:
	case *ImporteeFrom, *ImporteeRequired, *ImporteeLocal:

	case *TypeRef:
		for _, a := range v.TArgs {
			add(a)
		}
	case *TypeLiteral:
	case *TypeObject:
		for _, m := range v.Members {
			add(m)
		}
	case *TypeFunction:
		addSig(v.Signature)
	case *TypeConstructor:
		addSig(v.Signature)
	case *TypeUnion:
		for _, t := range v.Types {
			add(t)
		}
	case *TypeIntersect:
		for _, t := range v.Types {
			add(t)
		}
	case *TypeTuple:
		for i := range v.Elems {
			addType(v.Elems[i].Type)
		}
	case *TypeKeyOf:
		addType(v.Of)
	case *TypeLookup:
		addType(v.From)
		addType(v.Key)
	case *TypeConditional:
		addType(v.Pred)
		addType(v.IfTrue)
		addType(v.IfFalse)
	case *TypeQuery:
	case *TypeThis:
	case *TypeRepeated:
		addType(v.Underlying)

	case *MemberCall:
		addSig(v.Signature)
	case *MemberCtor:
		addSig(v.Signature)
	case *MemberFunction:
		addSig(v.Signature)
	case *MemberProperty:
		addType(v.Type)
		addExpr(v.Expr)
	case *MemberIndex:
		add(v.Indexing)
		addType(v.ValueType)
	case *IndexingDict:
		addType(v.Type)
	case *IndexingSingle:
	case *MemberTypeMapped:
		addType(v.From)
		addType(v.As)
		addType(v.To)

	case *FunSig:
		addTParams(v.TParams)
		for _, p := range v.Params {
			addType(p.Type)
		}
		addType(v.ResultType)

	case *ExprRef:
	case *ExprLiteral:
	case *ExprCall:
		addExpr(v.Function)
		for _, p := range v.Params {
			addExpr(p)
		}
	case *ExprUnary:
		addExpr(v.Expr)
	case *ExprBinaryOp:
		addExpr(v.One)
		addExpr(v.Two)
	case *ExprCast:
		addExpr(v.Expr)
		addType(v.To)
	case *ExprArrayOf:
		addExpr(v.Expr)
	}
	return out
}

// Collect walks the tree rooted at n pre-order, depth-first, left-to-right
// and gathers every value the partial extraction function accepts. The same
// root instance is never descended into twice.
func Collect[T any](n Tree, extract func(Tree) (T, bool)) []T {
	var out []T
	seen := make(map[Tree]bool)
	var walk func(t Tree)
	walk = func(t Tree) {
		if t == nil || seen[t] {
			return
		}
		seen[t] = true
		if v, ok := extract(t); ok {
			out = append(out, v)
		}
		for _, c := range Children(t) {
			walk(c)
		}
	}
	walk(n)
	return out
}

// CollectAll applies Collect over several roots, concatenating in order.
func CollectAll[T any](roots []Tree, extract func(Tree) (T, bool)) []T {
	var out []T
	for _, r := range roots {
		out = append(out, Collect(r, extract)...)
	}
	return out
}

// RefsIn returns every type reference reachable from n, in traversal order.
func RefsIn(n Tree) []*TypeRef {
	return Collect(n, func(t Tree) (*TypeRef, bool) {
		ref, ok := t.(*TypeRef)
		return ref, ok
	})
}

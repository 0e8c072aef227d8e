package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"dtsforge/internal/ts"
)

// typeOf converts a type-position node. Constructs outside the model
// degrade to `any` with a warning comment.
func (e *extractor) typeOf(node *sitter.Node) ts.Type {
	if node == nil {
		return ts.TypeAny()
	}

	switch node.Kind() {
	case "predefined_type":
		return ts.Ref(ts.QIdentOfStrings(e.text(node)))

	case "type_identifier", "nested_type_identifier":
		return ts.Ref(qidentOf(e.text(node)))

	case "generic_type":
		return ts.Ref(qidentOf(e.text(node.ChildByFieldName("name"))),
			e.typeArgs(node.ChildByFieldName("type_arguments"))...)

	case "union_type":
		var parts []ts.Type
		for i := uint(0); i < node.NamedChildCount(); i++ {
			parts = append(parts, e.typeOf(node.NamedChild(i)))
		}
		return ts.UnionOf(parts...)

	case "intersection_type":
		var parts []ts.Type
		for i := uint(0); i < node.NamedChildCount(); i++ {
			parts = append(parts, e.typeOf(node.NamedChild(i)))
		}
		return ts.IntersectOf(parts...)

	case "parenthesized_type", "readonly_type":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if node.NamedChild(i).Kind() != "comment" {
				return e.typeOf(node.NamedChild(i))
			}
		}
		return ts.TypeAny()

	case "object_type":
		return &ts.TypeObject{Members: e.objectMembers(node)}

	case "array_type":
		var elem ts.Type = ts.TypeAny()
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if node.NamedChild(i).Kind() != "comment" {
				elem = e.typeOf(node.NamedChild(i))
				break
			}
		}
		return ts.Ref(ts.QIdentOfStrings("Array"), elem)

	case "tuple_type":
		var elems []ts.TupleElem
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "comment":
			case "optional_type":
				var inner ts.Type = ts.TypeAny()
				if child.NamedChildCount() > 0 {
					inner = e.typeOf(child.NamedChild(0))
				}
				elems = append(elems, ts.TupleElem{Type: ts.UnionOf(inner, ts.TypeUndefined())})
			case "rest_type":
				if child.NamedChildCount() > 0 {
					elems = append(elems, ts.TupleElem{Type: &ts.TypeRepeated{Underlying: e.typeOf(child.NamedChild(0))}})
				}
			default:
				elems = append(elems, ts.TupleElem{Type: e.typeOf(child)})
			}
		}
		return &ts.TypeTuple{Elems: elems}

	case "function_type":
		return &ts.TypeFunction{Signature: e.signature(node)}

	case "constructor_type":
		return &ts.TypeConstructor{
			IsAbstract: hasToken(node, "abstract"),
			Signature:  e.signature(node),
		}

	case "literal_type":
		return e.literalType(node)

	case "type_query":
		target := queryTargetText(e, node)
		if target == "" {
			return e.degrade(node, "unsupported typeof target")
		}
		return &ts.TypeQuery{Expr: qidentOf(target)}

	case "index_type_query":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if node.NamedChild(i).Kind() != "comment" {
				return &ts.TypeKeyOf{Of: e.typeOf(node.NamedChild(i))}
			}
		}
		return ts.TypeAny()

	case "lookup_type":
		var parts []ts.Type
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if node.NamedChild(i).Kind() != "comment" {
				parts = append(parts, e.typeOf(node.NamedChild(i)))
			}
		}
		if len(parts) == 2 {
			return &ts.TypeLookup{From: parts[0], Key: parts[1]}
		}
		return e.degrade(node, "unsupported lookup type")

	case "conditional_type":
		left := e.typeOf(node.ChildByFieldName("left"))
		right := e.typeOf(node.ChildByFieldName("right"))
		return &ts.TypeConditional{
			Pred:    ts.IntersectOf(left, right),
			IfTrue:  e.typeOf(node.ChildByFieldName("consequence")),
			IfFalse: e.typeOf(node.ChildByFieldName("alternative")),
		}

	case "this", "this_type":
		return &ts.TypeThis{}

	case "type_predicate", "type_predicate_annotation", "asserts", "asserts_annotation":
		// `x is T` and `asserts x` carry no structure worth keeping;
		// the caller sees a boolean-returning signature.
		return ts.Ref(ts.BooleanQIdent)

	default:
		return e.degrade(node, "unsupported type syntax")
	}
}

func (e *extractor) literalType(node *sitter.Node) ts.Type {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string":
			return &ts.TypeLiteral{Literal: ts.StringLit(strings.Trim(e.text(child), `"'`))}
		case "number":
			return &ts.TypeLiteral{Literal: ts.NumberLit(e.text(child))}
		case "true", "false":
			return &ts.TypeLiteral{Literal: ts.BoolLit(e.text(child))}
		case "null":
			return ts.Ref(ts.NullQIdent)
		case "undefined":
			return ts.TypeUndefined()
		case "unary_expression":
			return &ts.TypeLiteral{Literal: ts.NumberLit(e.text(child))}
		}
	}
	return e.degrade(node, "unsupported literal type")
}

func queryTargetText(e *extractor, node *sitter.Node) string {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "identifier", "nested_identifier", "member_expression":
			return e.text(child)
		}
	}
	return ""
}

// annotatedType unwraps a type_annotation node to its type.
func (e *extractor) annotatedType(node *sitter.Node) ts.Type {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() != "comment" {
			return e.typeOf(node.NamedChild(i))
		}
	}
	return nil
}

func (e *extractor) typeArgs(node *sitter.Node) []ts.Type {
	if node == nil {
		return nil
	}
	var args []ts.Type
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() != "comment" {
			args = append(args, e.typeOf(node.NamedChild(i)))
		}
	}
	return args
}

func (e *extractor) typeParams(node *sitter.Node) []ts.TypeParam {
	if node == nil {
		return nil
	}
	var params []ts.TypeParam
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "type_parameter" {
			continue
		}
		tp := ts.TypeParam{Name: ts.SimpleIdent(e.text(child.ChildByFieldName("name")))}
		if c := child.ChildByFieldName("constraint"); c != nil {
			for j := uint(0); j < c.NamedChildCount(); j++ {
				if c.NamedChild(j).Kind() != "comment" {
					tp.UpperBound = e.typeOf(c.NamedChild(j))
				}
			}
		}
		if d := child.ChildByFieldName("value"); d != nil {
			for j := uint(0); j < d.NamedChildCount(); j++ {
				if d.NamedChild(j).Kind() != "comment" {
					tp.Default = e.typeOf(d.NamedChild(j))
				}
			}
		}
		params = append(params, tp)
	}
	return params
}

// signature extracts the callable shape shared by functions, methods and
// function types. A missing return type means `any`.
func (e *extractor) signature(node *sitter.Node) *ts.FunSig {
	sig := &ts.FunSig{
		TParams: e.typeParams(node.ChildByFieldName("type_parameters")),
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.NamedChildCount(); i++ {
			child := params.NamedChild(i)
			switch child.Kind() {
			case "required_parameter", "optional_parameter":
				sig.Params = append(sig.Params, e.param(child, child.Kind() == "optional_parameter"))
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.ResultType = e.annotatedType(ret)
		if sig.ResultType == nil {
			sig.ResultType = e.typeOf(ret)
		}
	} else {
		sig.ResultType = ts.TypeAny()
	}
	return sig
}

// param converts one parameter. Optionality folds into the type as
// `| undefined`; rest parameters keep their repeated-ness in a wrapper.
func (e *extractor) param(node *sitter.Node, optional bool) *ts.FunParam {
	name := ts.DestructuredIdent
	rest := false

	if pattern := node.ChildByFieldName("pattern"); pattern != nil {
		switch pattern.Kind() {
		case "identifier", "this":
			name = ts.SimpleIdent(e.text(pattern))
		case "rest_pattern":
			rest = true
			for i := uint(0); i < pattern.NamedChildCount(); i++ {
				if pattern.NamedChild(i).Kind() == "identifier" {
					name = ts.SimpleIdent(e.text(pattern.NamedChild(i)))
				}
			}
		}
	}

	var tpe ts.Type
	if ann := node.ChildByFieldName("type"); ann != nil {
		tpe = e.annotatedType(ann)
	}
	if tpe == nil {
		tpe = ts.TypeAny()
	}
	if rest {
		tpe = &ts.TypeRepeated{Underlying: tpe}
	} else if optional {
		tpe = ts.UnionOf(tpe, ts.TypeUndefined())
	}

	return &ts.FunParam{Name: name, Type: tpe}
}

// objectMembers extracts interface and object-type bodies.
func (e *extractor) objectMembers(node *sitter.Node) []ts.Member {
	if node == nil {
		return nil
	}
	var members []ts.Member
	var pending ts.Comments

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "comment" {
			pending = pending.Add(ts.Raw{Text: e.text(child)})
			continue
		}
		if m := e.member(child, pending); m != nil {
			members = append(members, m)
		}
		pending = ts.NoComments()
	}
	return members
}

// classMembers extracts class bodies, which use different node kinds for
// fields and may carry access modifiers.
func (e *extractor) classMembers(node *sitter.Node) []ts.Member {
	return e.objectMembers(node)
}

func (e *extractor) member(node *sitter.Node, cs ts.Comments) ts.Member {
	switch node.Kind() {
	case "property_signature", "public_field_definition":
		return e.propertyMember(node, cs)

	case "method_signature", "method_definition", "abstract_method_signature":
		return e.methodMember(node, cs)

	case "call_signature":
		return &ts.MemberCall{Comments: cs, Signature: e.signature(node)}

	case "construct_signature":
		return &ts.MemberCtor{Comments: cs, Signature: e.signature(node)}

	case "index_signature":
		return e.indexMember(node, cs)

	default:
		e.warnings++
		e.logger.Debug("skipping unsupported member", "kind", node.Kind(),
			"line", node.StartPosition().Row+1)
		return nil
	}
}

func (e *extractor) propertyMember(node *sitter.Node, cs ts.Comments) ts.Member {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name, ok := e.memberName(nameNode)
	if !ok {
		e.warnings++
		e.logger.Debug("skipping computed property name", "line", node.StartPosition().Row+1)
		return nil
	}

	var tpe ts.Type
	if ann := node.ChildByFieldName("type"); ann != nil {
		tpe = e.annotatedType(ann)
	}
	if tpe == nil {
		tpe = ts.TypeAny()
	}
	if hasToken(node, "?") {
		tpe = ts.UnionOf(tpe, ts.TypeUndefined())
		cs = cs.Add(ts.MarkerCouldBeUndefined)
	}

	return &ts.MemberProperty{
		Comments:   cs,
		Level:      e.accessLevel(node),
		Name:       name,
		Type:       tpe,
		IsStatic:   hasToken(node, "static"),
		IsReadOnly: hasToken(node, "readonly"),
	}
}

func (e *extractor) methodMember(node *sitter.Node, cs ts.Comments) ts.Member {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name, ok := e.memberName(nameNode)
	if !ok {
		e.warnings++
		e.logger.Debug("skipping computed method name", "line", node.StartPosition().Row+1)
		return nil
	}

	if name.Equals(ts.ConstructorIdent) {
		return &ts.MemberCtor{Comments: cs, Level: e.accessLevel(node), Signature: e.signature(node)}
	}

	method := ts.Normal
	if hasToken(node, "get") {
		method = ts.Getter
	} else if hasToken(node, "set") {
		method = ts.Setter
	}

	sig := e.signature(node)
	if hasToken(node, "?") {
		cs = cs.Add(ts.MarkerCouldBeUndefined)
	}

	return &ts.MemberFunction{
		Comments:   cs,
		Level:      e.accessLevel(node),
		Name:       name,
		MethodType: method,
		Signature:  sig,
		IsStatic:   hasToken(node, "static"),
		IsReadOnly: hasToken(node, "readonly"),
	}
}

func (e *extractor) indexMember(node *sitter.Node, cs ts.Comments) ts.Member {
	// A mapped-type clause inside the brackets makes this a mapped member.
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "mapped_type_clause" {
			mapped := &ts.MemberTypeMapped{
				Comments: cs,
				Key:      ts.SimpleIdent(e.text(child.ChildByFieldName("name"))),
				From:     e.typeOf(child.ChildByFieldName("type")),
				To:       e.annotatedType(node.ChildByFieldName("type")),
			}
			if alias := child.ChildByFieldName("alias"); alias != nil {
				mapped.As = e.typeOf(alias)
			}
			if hasToken(node, "readonly") {
				mapped.Readonly = ts.ReadonlyYes
			}
			if hasToken(node, "?") {
				mapped.Optionalize = ts.Optionalize
			}
			if mapped.To == nil {
				mapped.To = ts.TypeAny()
			}
			return mapped
		}
	}

	value := e.annotatedType(node.ChildByFieldName("type"))
	if value == nil {
		value = ts.TypeAny()
	}

	var keyName ts.Ident
	var keyType ts.Type
	if n := node.ChildByFieldName("name"); n != nil {
		keyName = ts.SimpleIdent(e.text(n))
	}
	if t := node.ChildByFieldName("index_type"); t != nil {
		keyType = e.typeOf(t)
	}
	if keyType == nil {
		keyType = ts.Ref(ts.StringQIdent)
	}

	return &ts.MemberIndex{
		Comments:   cs,
		IsReadOnly: hasToken(node, "readonly"),
		Indexing:   &ts.IndexingDict{Name: keyName, Type: keyType},
		ValueType:  value,
	}
}

// memberName accepts identifier-like and literal member names; computed
// names are not representable.
func (e *extractor) memberName(node *sitter.Node) (ts.Ident, bool) {
	switch node.Kind() {
	case "property_identifier", "identifier":
		return ts.SimpleIdent(e.text(node)), true
	case "string":
		return ts.SimpleIdent(strings.Trim(e.text(node), `"'`)), true
	case "number":
		return ts.SimpleIdent(e.text(node)), true
	default:
		return ts.Ident{}, false
	}
}

func (e *extractor) accessLevel(node *sitter.Node) ts.ProtectionLevel {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "accessibility_modifier" {
			switch e.text(child) {
			case "private":
				return ts.Private
			case "protected":
				return ts.Protected
			}
		}
	}
	return ts.Default
}

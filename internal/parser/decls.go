package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"dtsforge/internal/ts"
)

// statements extracts the member list of a program or statement block.
// Comment nodes are buffered and attached to the declaration they precede.
func (e *extractor) statements(node *sitter.Node, owner ts.CodePath) []ts.Decl {
	var members []ts.Decl
	var pending ts.Comments

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "comment" {
			pending = pending.Add(ts.Raw{Text: e.text(child)})
			continue
		}

		ds := e.statement(child, owner, false)
		for j, d := range ds {
			if j == 0 && !pending.IsEmpty() {
				d = withComments(d, pending)
			}
			members = append(members, d)
		}
		pending = ts.NoComments()
	}
	return members
}

// statement extracts one top-level or block-level statement. Most map to a
// single declaration; dotted namespaces expand outward-in.
func (e *extractor) statement(node *sitter.Node, owner ts.CodePath, declared bool) []ts.Decl {
	switch node.Kind() {
	case "ambient_declaration":
		return e.ambient(node, owner)

	case "export_statement":
		if d := e.export(node, owner); d != nil {
			return []ts.Decl{d}
		}
		return nil

	case "import_statement", "import_alias":
		if d := e.importStmt(node); d != nil {
			return []ts.Decl{d}
		}
		return nil

	case "interface_declaration":
		return []ts.Decl{e.interfaceDecl(node, owner, declared)}

	case "class_declaration", "abstract_class_declaration":
		return []ts.Decl{e.classDecl(node, owner, declared)}

	case "enum_declaration":
		return []ts.Decl{e.enumDecl(node, owner, declared)}

	case "function_declaration", "function_signature":
		return []ts.Decl{e.functionDecl(node, owner, declared)}

	case "type_alias_declaration":
		return []ts.Decl{e.typeAliasDecl(node, owner, declared)}

	case "variable_declaration", "lexical_declaration":
		return e.varDecls(node, owner, declared)

	case "internal_module", "module":
		if d := e.moduleDecl(node, owner, declared); d != nil {
			return []ts.Decl{d}
		}
		return nil

	case "expression_statement", "empty_statement":
		return nil

	default:
		e.warnings++
		e.logger.Debug("skipping unsupported statement", "kind", node.Kind(),
			"line", node.StartPosition().Row+1)
		return nil
	}
}

// ambient handles `declare X` and `declare global { ... }`.
func (e *extractor) ambient(node *sitter.Node, owner ts.CodePath) []ts.Decl {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "statement_block" {
			globalPath := owner.Add(ts.GlobalIdent)
			return []ts.Decl{&ts.Global{
				Declared: true,
				Members:  e.statements(child, globalPath),
				CodePath: globalPath,
			}}
		}
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "comment" {
			return e.statement(child, owner, true)
		}
	}
	return nil
}

func (e *extractor) interfaceDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	name := ts.SimpleIdent(e.text(node.ChildByFieldName("name")))
	d := &ts.DeclInterface{
		Declared: declared,
		Name:     name,
		TParams:  e.typeParams(node.ChildByFieldName("type_parameters")),
		CodePath: owner.Add(name),
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "extends_type_clause" {
			for j := uint(0); j < child.NamedChildCount(); j++ {
				if ref := e.heritageRef(child.NamedChild(j)); ref != nil {
					d.Inheritance = append(d.Inheritance, ref)
				}
			}
		}
	}
	d.Members = e.objectMembers(node.ChildByFieldName("body"))
	return d
}

func (e *extractor) classDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	name := ts.SimpleIdent(e.text(node.ChildByFieldName("name")))
	d := &ts.DeclClass{
		Declared:   declared,
		IsAbstract: node.Kind() == "abstract_class_declaration",
		Name:       name,
		TParams:    e.typeParams(node.ChildByFieldName("type_parameters")),
		CodePath:   owner.Add(name),
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "class_heritage" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			clause := child.NamedChild(j)
			switch clause.Kind() {
			case "extends_clause":
				if v := clause.ChildByFieldName("value"); v != nil {
					d.Parent = e.heritageRef(v)
					if args := clause.ChildByFieldName("type_arguments"); args != nil && d.Parent != nil {
						d.Parent.TArgs = e.typeArgs(args)
					}
				}
			case "implements_clause":
				for k := uint(0); k < clause.NamedChildCount(); k++ {
					if ref := e.heritageRef(clause.NamedChild(k)); ref != nil {
						d.Implements = append(d.Implements, ref)
					}
				}
			}
		}
	}
	d.Members = e.classMembers(node.ChildByFieldName("body"))
	return d
}

// heritageRef converts an extends/implements entry, which must stay a
// reference even when the parser cannot model its arguments.
func (e *extractor) heritageRef(node *sitter.Node) *ts.TypeRef {
	switch node.Kind() {
	case "identifier", "type_identifier", "nested_type_identifier", "nested_identifier", "member_expression":
		return ts.Ref(qidentOf(e.text(node)))
	case "generic_type":
		return ts.Ref(qidentOf(e.text(node.ChildByFieldName("name"))),
			e.typeArgs(node.ChildByFieldName("type_arguments"))...)
	default:
		if t, ok := e.typeOf(node).(*ts.TypeRef); ok {
			return t
		}
		e.warnings++
		e.logger.Debug("dropping unsupported heritage entry", "kind", node.Kind())
		return nil
	}
}

func (e *extractor) enumDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	name := ts.SimpleIdent(e.text(node.ChildByFieldName("name")))
	d := &ts.DeclEnum{
		Declared: declared,
		IsConst:  hasToken(node, "const"),
		Name:     name,
		IsValue:  true,
		CodePath: owner.Add(name),
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return d
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		entry := body.NamedChild(i)
		switch entry.Kind() {
		case "property_identifier", "string":
			d.Members = append(d.Members, &ts.EnumMember{
				Name: ts.SimpleIdent(strings.Trim(e.text(entry), `"'`)),
			})
		case "enum_assignment":
			d.Members = append(d.Members, &ts.EnumMember{
				Name: ts.SimpleIdent(strings.Trim(e.text(entry.ChildByFieldName("name")), `"'`)),
				Expr: e.expr(entry.ChildByFieldName("value")),
			})
		}
	}
	return d
}

func (e *extractor) functionDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	name := ts.SimpleIdent(e.text(node.ChildByFieldName("name")))
	return &ts.DeclFunction{
		Declared:  declared,
		Name:      name,
		Signature: e.signature(node),
		CodePath:  owner.Add(name),
	}
}

func (e *extractor) typeAliasDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	name := ts.SimpleIdent(e.text(node.ChildByFieldName("name")))
	return &ts.DeclTypeAlias{
		Declared: declared,
		Name:     name,
		TParams:  e.typeParams(node.ChildByFieldName("type_parameters")),
		Alias:    e.typeOf(node.ChildByFieldName("value")),
		CodePath: owner.Add(name),
	}
}

func (e *extractor) varDecls(node *sitter.Node, owner ts.CodePath, declared bool) []ts.Decl {
	readOnly := hasToken(node, "const")
	var out []ts.Decl
	for i := uint(0); i < node.NamedChildCount(); i++ {
		vd := node.NamedChild(i)
		if vd.Kind() != "variable_declarator" {
			continue
		}
		nameNode := vd.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			e.warnings++
			e.logger.Debug("skipping destructured variable declaration")
			continue
		}
		name := ts.SimpleIdent(e.text(nameNode))
		var tpe ts.Type
		if ann := vd.ChildByFieldName("type"); ann != nil {
			tpe = e.annotatedType(ann)
		}
		out = append(out, &ts.DeclVar{
			Declared: declared,
			ReadOnly: readOnly,
			Name:     name,
			Type:     tpe,
			Expr:     e.expr(vd.ChildByFieldName("value")),
			CodePath: owner.Add(name),
		})
	}
	return out
}

// moduleDecl handles `namespace A.B { }` and `module "name" { }`. Dotted
// namespace names expand into nested namespaces.
func (e *extractor) moduleDecl(node *sitter.Node, owner ts.CodePath, declared bool) ts.Decl {
	nameNode := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if nameNode == nil {
		return nil
	}

	if nameNode.Kind() == "string" {
		name := moduleIdent(e.text(nameNode))
		path := owner.Add(name)
		var members []ts.Decl
		if body != nil {
			members = e.statements(body, path)
		}
		return &ts.DeclModule{
			Declared: declared,
			Name:     name,
			Members:  members,
			CodePath: path,
		}
	}

	parts := strings.Split(e.text(nameNode), ".")
	paths := make([]ts.CodePath, len(parts))
	last := owner
	for i, p := range parts {
		last = last.Add(ts.SimpleIdent(p))
		paths[i] = last
	}

	var members []ts.Decl
	if body != nil {
		members = e.statements(body, paths[len(parts)-1])
	}

	ns := &ts.DeclNamespace{
		Declared: declared,
		Name:     ts.SimpleIdent(parts[len(parts)-1]),
		Members:  members,
		CodePath: paths[len(parts)-1],
	}
	for i := len(parts) - 2; i >= 0; i-- {
		ns = &ts.DeclNamespace{
			Declared: declared,
			Name:     ts.SimpleIdent(parts[i]),
			Members:  []ts.Decl{ns},
			CodePath: paths[i],
		}
	}
	return ns
}

func (e *extractor) export(node *sitter.Node, owner ts.CodePath) ts.Decl {
	typeOnly := hasToken(node, "type")

	// Inline `export <decl>`.
	if decl := node.ChildByFieldName("declaration"); decl != nil {
		inner := e.statement(decl, owner, false)
		if len(inner) == 0 {
			return nil
		}
		kind := ts.ExportNamed
		if hasToken(node, "default") {
			kind = ts.ExportDefaulted
		}
		return &ts.Export{
			TypeOnly: typeOnly,
			Kind:     kind,
			Exported: &ts.ExporteeTree{Decl: inner[0]},
		}
	}

	// `export = X` and `export default X`. The grammar only assigns the
	// `value` field in the default form; the expression in `export = X`
	// is an unnamed child.
	value := node.ChildByFieldName("value")
	if value == nil && hasToken(node, "=") {
		value = node.NamedChild(0)
	}
	if value != nil {
		kind := ts.ExportDefaulted
		if hasToken(node, "=") {
			kind = ts.ExportNamespaced
		}
		return &ts.Export{
			TypeOnly: typeOnly,
			Kind:     kind,
			Exported: &ts.ExporteeNames{Names: []ts.ExportedName{{QName: qidentOf(e.text(value))}}},
		}
	}

	var from *ts.Ident
	if src := node.ChildByFieldName("source"); src != nil {
		f := moduleIdent(e.text(src))
		from = &f
	}

	// `export * from` / `export * as ns from`.
	if hasToken(node, "*") {
		star := &ts.ExporteeStar{}
		if from != nil {
			star.From = *from
		}
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "namespace_export" {
				for j := uint(0); j < child.NamedChildCount(); j++ {
					if child.NamedChild(j).Kind() == "identifier" {
						as := ts.SimpleIdent(e.text(child.NamedChild(j)))
						star.As = &as
					}
				}
			}
		}
		return &ts.Export{TypeOnly: typeOnly, Kind: ts.ExportNamed, Exported: star}
	}

	// UMD `export as namespace X` adds nothing to module consumers.
	if hasToken(node, "namespace") {
		return nil
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "export_clause" {
			continue
		}
		var names []ts.ExportedName
		for j := uint(0); j < child.NamedChildCount(); j++ {
			spec := child.NamedChild(j)
			if spec.Kind() != "export_specifier" {
				continue
			}
			entry := ts.ExportedName{QName: qidentOf(e.text(spec.ChildByFieldName("name")))}
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				a := ts.SimpleIdent(e.text(alias))
				entry.Alias = &a
			}
			names = append(names, entry)
		}
		return &ts.Export{
			TypeOnly: typeOnly,
			Kind:     ts.ExportNamed,
			Exported: &ts.ExporteeNames{Names: names, From: from},
		}
	}

	return nil
}

func (e *extractor) importStmt(node *sitter.Node) ts.Decl {
	imp := &ts.Import{TypeOnly: hasToken(node, "type")}

	if node.Kind() == "import_alias" {
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "identifier":
				imp.Imported = append(imp.Imported, &ts.ImportedIdent{Ident: ts.SimpleIdent(e.text(child))})
			case "nested_identifier":
				imp.From = &ts.ImporteeLocal{QName: qidentOf(e.text(child))}
			}
		}
		if imp.From == nil && len(imp.Imported) == 2 {
			// `import A = B` with a plain right side.
			target := imp.Imported[1].(*ts.ImportedIdent)
			imp.Imported = imp.Imported[:1]
			imp.From = &ts.ImporteeLocal{QName: ts.QIdentOf(target.Ident)}
		}
		return imp
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "import_clause":
			e.importClause(child, imp)
		case "import_require_clause":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				sub := child.NamedChild(j)
				switch sub.Kind() {
				case "identifier":
					imp.Imported = append(imp.Imported, &ts.ImportedIdent{Ident: ts.SimpleIdent(e.text(sub))})
				case "string":
					imp.From = &ts.ImporteeRequired{From: moduleIdent(e.text(sub))}
				}
			}
		case "string":
			imp.From = &ts.ImporteeFrom{From: moduleIdent(e.text(child))}
		}
	}
	if imp.From == nil {
		return nil
	}
	return imp
}

func (e *extractor) importClause(node *sitter.Node, imp *ts.Import) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			imp.Imported = append(imp.Imported, &ts.ImportedIdent{Ident: ts.SimpleIdent(e.text(child))})
		case "namespace_import":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				if child.NamedChild(j).Kind() == "identifier" {
					as := ts.SimpleIdent(e.text(child.NamedChild(j)))
					imp.Imported = append(imp.Imported, &ts.ImportedStar{As: &as})
				}
			}
		case "named_imports":
			var names []ts.ExportedName
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec.Kind() != "import_specifier" {
					continue
				}
				entry := ts.ExportedName{QName: qidentOf(e.text(spec.ChildByFieldName("name")))}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					a := ts.SimpleIdent(e.text(alias))
					entry.Alias = &a
				}
				names = append(names, entry)
			}
			imp.Imported = append(imp.Imported, &ts.ImportedDestructured{Names: names})
		}
	}
}

func (e *extractor) expr(node *sitter.Node) ts.Expr {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "member_expression":
		return &ts.ExprRef{Ref: qidentOf(e.text(node))}
	case "number":
		return &ts.ExprLiteral{Literal: ts.NumberLit(e.text(node))}
	case "string":
		return &ts.ExprLiteral{Literal: ts.StringLit(strings.Trim(e.text(node), `"'`))}
	case "true", "false":
		return &ts.ExprLiteral{Literal: ts.BoolLit(e.text(node))}
	case "unary_expression":
		op := e.text(node.ChildByFieldName("operator"))
		arg := e.expr(node.ChildByFieldName("argument"))
		if arg == nil {
			return nil
		}
		return &ts.ExprUnary{Op: op, Expr: arg}
	case "binary_expression":
		left := e.expr(node.ChildByFieldName("left"))
		right := e.expr(node.ChildByFieldName("right"))
		if left == nil || right == nil {
			return nil
		}
		return &ts.ExprBinaryOp{One: left, Op: e.text(node.ChildByFieldName("operator")), Two: right}
	case "parenthesized_expression":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if ex := e.expr(node.NamedChild(i)); ex != nil {
				return ex
			}
		}
		return nil
	default:
		return nil
	}
}

// hasToken reports whether node has a direct anonymous child with the
// given text.
func hasToken(node *sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}

func withComments(d ts.Decl, cs ts.Comments) ts.Decl {
	switch v := d.(type) {
	case *ts.DeclInterface:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclClass:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclEnum:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclVar:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclFunction:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclTypeAlias:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclNamespace:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.DeclModule:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.Global:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.Export:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	case *ts.Import:
		c := *v
		c.Comments = cs.Concat(v.Comments)
		return &c
	default:
		return d
	}
}

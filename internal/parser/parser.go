package parser

import (
	"log/slog"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"dtsforge/internal/core/errors"
	"dtsforge/internal/shared/observability"
	"dtsforge/internal/ts"
)

// Parser turns .d.ts sources into declaration trees. Syntax the converter
// has no model for degrades to `any` with a warning comment instead of
// failing the file; a declaration file with a handful of exotic types is
// still worth converting.
type Parser struct {
	logger *slog.Logger
	lang   *sitter.Language
}

func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger,
		lang:   sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	}
}

// ParseFile turns one declaration file into a tree. The second return is
// the number of constructs that had to be degraded to any; parsing itself
// only fails when the grammar cannot produce a tree at all.
func (p *Parser) ParseFile(lib ts.LibIdent, path string, content []byte) (*ts.ParsedFile, int, error) {
	start := time.Now()

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.lang); err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeInternal, "set typescript grammar")
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, 0, errors.New(errors.CodeParseError, "typescript parse returned no tree")
	}
	defer tree.Close()

	ex := &extractor{
		src:    content,
		path:   path,
		lib:    lib,
		logger: p.logger.With("file", path),
	}
	filePath := ts.PathOf(lib, ts.QIdent{})
	members := ex.statements(tree.RootNode(), filePath)
	markAugmented(members)

	observability.ParseDuration.WithLabelValues(lib.Name).Observe(time.Since(start).Seconds())
	if ex.warnings > 0 {
		p.logger.Warn("parsed with degraded syntax", "file", path, "warnings", ex.warnings)
	}

	return &ts.ParsedFile{Members: members, CodePath: filePath}, ex.warnings, nil
}

type extractor struct {
	src      []byte
	path     string
	lib      ts.LibIdent
	logger   *slog.Logger
	warnings int
}

func (e *extractor) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(e.src[node.StartByte():node.EndByte()])
}

// degrade replaces an unsupported type-position construct with `any`,
// keeping the original text in a warning comment.
func (e *extractor) degrade(node *sitter.Node, reason string) ts.Type {
	e.warnings++
	observability.WarningsTotal.WithLabelValues("parser").Inc()
	snippet := e.text(node)
	if len(snippet) > 80 {
		snippet = snippet[:80] + "..."
	}
	e.logger.Debug("degrading unsupported syntax", "kind", node.Kind(), "reason", reason,
		"line", node.StartPosition().Row+1)
	any := ts.TypeAny()
	any.Comments = any.Comments.Add(ts.Warning(reason + ": " + snippet))
	return any
}

// qidentOf splits dotted source text into a qualified identifier.
func qidentOf(text string) ts.QIdent {
	parts := strings.Split(text, ".")
	idents := make([]ts.Ident, len(parts))
	for i, p := range parts {
		idents[i] = ts.SimpleIdent(p)
	}
	return ts.QIdent{Parts: idents}
}

// moduleIdent turns a module source string ("@scope/name" or "name") into
// a module identifier.
func moduleIdent(source string) ts.Ident {
	source = strings.Trim(source, `"'`)
	if strings.HasPrefix(source, "@") {
		rest := strings.TrimPrefix(source, "@")
		frags := strings.Split(rest, "/")
		if len(frags) > 1 {
			return ts.ModuleIdent(frags[0], frags[1:]...)
		}
		return ts.ModuleIdent(frags[0])
	}
	return ts.ModuleIdent("", strings.Split(source, "/")...)
}

// markAugmented rewrites `declare module "name"` blocks into augmentations
// when the surrounding file imports that module: declaring and importing
// the same name cannot both hold, so the block must be patching a module
// that lives elsewhere.
func markAugmented(members []ts.Decl) {
	imported := make(map[string]bool)
	for _, m := range members {
		imp, ok := m.(*ts.Import)
		if !ok {
			continue
		}
		switch from := imp.From.(type) {
		case *ts.ImporteeFrom:
			imported[from.From.Value()] = true
		case *ts.ImporteeRequired:
			imported[from.From.Value()] = true
		}
	}
	if len(imported) == 0 {
		return
	}
	for i, m := range members {
		mod, ok := m.(*ts.DeclModule)
		if ok && imported[mod.Name.Value()] {
			members[i] = &ts.AugmentedModule{
				Comments: mod.Comments,
				Name:     mod.Name,
				Members:  mod.Members,
				CodePath: mod.CodePath,
			}
		}
	}
}

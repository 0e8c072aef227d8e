package app

import (
	"os"
	"path/filepath"

	"dtsforge/internal/ts"
)

// loadDeps parses the configured dependency declarations into the ambient
// scope shared by every conversion. A missing dependency path is logged
// and skipped rather than failing startup, so a project without the node
// typings on disk still converts with unresolved names degraded.
func (a *App) loadDeps() error {
	a.deps = make(map[ts.LibIdent]*ts.ParsedFile)

	if a.Config.Deps.StdPath != "" {
		if err := a.loadDep("std", a.Config.Deps.StdPath); err != nil {
			return err
		}
	}
	if a.Config.Deps.NodePath != "" {
		if err := a.loadDep("node", a.Config.Deps.NodePath); err != nil {
			return err
		}
	}
	for _, extra := range a.Config.Deps.Extra {
		if err := a.loadDep(filepath.Base(filepath.Clean(extra)), extra); err != nil {
			return err
		}
	}

	a.Logger.Info("ambient dependencies loaded", "libraries", len(a.deps))
	return nil
}

func (a *App) loadDep(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		a.Logger.Warn("dependency path unavailable, skipping", "library", name, "path", path, "error", err)
		return nil
	}

	dirGlobs, fileGlobs, err := compileExcludes(a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return err
	}
	files, err := scanFiles(path, dirGlobs, fileGlobs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.Logger.Warn("dependency path has no declaration files", "library", name, "path", path)
		return nil
	}

	ident := ts.Library(name)
	merged := &ts.ParsedFile{CodePath: ts.PathOf(ident, ts.QIdent{})}
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		parsed, _, err := a.Parser.ParseFile(ident, f, content)
		if err != nil {
			a.Logger.Warn("failed to parse dependency file", "library", name, "file", f, "error", err)
			continue
		}
		merged.Members = append(merged.Members, parsed.Members...)
	}

	a.deps[ident] = merged
	return nil
}

package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Library is one conversion unit: a named set of declaration files found
// under an input path. Each immediate subdirectory of an input path is a
// library keyed by the directory name; loose files directly under the
// input path form a library named after the input directory itself.
type Library struct {
	Name  string
	Root  string
	Files []string
}

// ScanLibraries walks the configured input paths and groups declaration
// files into libraries. Results are sorted by library name so runs are
// deterministic.
func (a *App) ScanLibraries() ([]Library, error) {
	dirGlobs, fileGlobs, err := compileExcludes(a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*Library)
	for _, root := range a.Config.Inputs.Paths {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read input path %s: %w", root, err)
		}

		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			if entry.IsDir() {
				if matchesAny(dirGlobs, entry.Name()) {
					continue
				}
				files, err := scanFiles(path, dirGlobs, fileGlobs)
				if err != nil {
					return nil, err
				}
				if len(files) > 0 {
					addLibrary(byName, entry.Name(), path, files)
				}
				continue
			}
			if !isDeclarationFile(entry.Name()) || matchesAny(fileGlobs, entry.Name()) {
				continue
			}
			addLibrary(byName, filepath.Base(root), root, []string{path})
		}
	}

	libs := make([]Library, 0, len(byName))
	for _, lib := range byName {
		sort.Strings(lib.Files)
		libs = append(libs, *lib)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
	return libs, nil
}

func addLibrary(byName map[string]*Library, name, root string, files []string) {
	if existing, ok := byName[name]; ok {
		existing.Files = append(existing.Files, files...)
		return
	}
	byName[name] = &Library{Name: name, Root: root, Files: files}
}

func scanFiles(root string, dirGlobs, fileGlobs []glob.Glob) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if matchesAny(dirGlobs, base) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDeclarationFile(base) || matchesAny(fileGlobs, base) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func compileExcludes(dirs, files []string) ([]glob.Glob, []glob.Glob, error) {
	dirGlobs := make([]glob.Glob, 0, len(dirs))
	for _, p := range dirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}
	fileGlobs := make([]glob.Glob, 0, len(files))
	for _, p := range files {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}
	return dirGlobs, fileGlobs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

func isDeclarationFile(name string) bool {
	return strings.HasSuffix(name, ".d.ts")
}

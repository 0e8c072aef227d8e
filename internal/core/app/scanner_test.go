package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"dtsforge/internal/core/config"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("interface X { }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func scanApp(cfg *config.Config) *App {
	return &App{Config: cfg, Logger: slog.Default()}
}

func TestScanLibrariesGroupsByDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "react", "index.d.ts"))
	writeFile(t, filepath.Join(root, "react", "global.d.ts"))
	writeFile(t, filepath.Join(root, "lodash", "common", "array.d.ts"))
	writeFile(t, filepath.Join(root, "lodash", "index.d.ts"))
	writeFile(t, filepath.Join(root, "react", "README.md"))

	a := scanApp(&config.Config{Inputs: config.Inputs{Paths: []string{root}}})
	libs, err := a.ScanLibraries()
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}
	if len(libs) != 2 {
		t.Fatalf("expected 2 libraries, got %d", len(libs))
	}

	// Sorted by name: lodash before react.
	if libs[0].Name != "lodash" || len(libs[0].Files) != 2 {
		t.Errorf("lodash = %+v", libs[0])
	}
	if libs[1].Name != "react" || len(libs[1].Files) != 2 {
		t.Errorf("react = %+v", libs[1])
	}
	if libs[1].Root != filepath.Join(root, "react") {
		t.Errorf("react root = %s", libs[1].Root)
	}
}

func TestScanLibrariesCollectsLooseFiles(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "typings")
	writeFile(t, filepath.Join(root, "extras.d.ts"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	a := scanApp(&config.Config{Inputs: config.Inputs{Paths: []string{root}}})
	libs, err := a.ScanLibraries()
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}
	if len(libs) != 1 {
		t.Fatalf("expected one library of loose files, got %d", len(libs))
	}
	if libs[0].Name != "typings" || len(libs[0].Files) != 1 {
		t.Errorf("loose library = %+v", libs[0])
	}
}

func TestScanLibrariesHonorsExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "index.d.ts"))
	writeFile(t, filepath.Join(root, "lib", "node_modules", "dep", "index.d.ts"))
	writeFile(t, filepath.Join(root, "lib", "index.test.d.ts"))
	writeFile(t, filepath.Join(root, "node_modules", "other", "index.d.ts"))

	a := scanApp(&config.Config{
		Inputs:  config.Inputs{Paths: []string{root}},
		Exclude: config.Exclude{Dirs: []string{"node_modules"}, Files: []string{"*.test.d.ts"}},
	})
	libs, err := a.ScanLibraries()
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}
	if len(libs) != 1 {
		t.Fatalf("expected only the lib library, got %d", len(libs))
	}
	if len(libs[0].Files) != 1 {
		t.Errorf("excluded files leaked into %+v", libs[0])
	}
}

func TestScanLibrariesSkipsEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "docs", "guide.md"))

	a := scanApp(&config.Config{Inputs: config.Inputs{Paths: []string{root}}})
	libs, err := a.ScanLibraries()
	if err != nil {
		t.Fatalf("ScanLibraries: %v", err)
	}
	if len(libs) != 0 {
		t.Errorf("directories without declaration files must not become libraries: %+v", libs)
	}
}

func TestScanLibrariesMissingInputPath(t *testing.T) {
	a := scanApp(&config.Config{Inputs: config.Inputs{Paths: []string{filepath.Join(t.TempDir(), "nope")}}})
	if _, err := a.ScanLibraries(); err == nil {
		t.Error("expected an error for a missing input path")
	}
}

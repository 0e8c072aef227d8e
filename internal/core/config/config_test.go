package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dtsforge.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
[inputs]
paths = ["typings/lodash", "typings/express"]

[deps]
std_path = "typings/std"
node_path = "typings/node"

[exclude]
dirs = [".git"]
files = ["*.md"]

[db]
enabled = true
path = "runs.db"
busy_timeout = "2s"

[watch]
debounce = "1s"

[output]
dir = "converted"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Inputs.Paths) != 2 || cfg.Inputs.Paths[0] != "typings/lodash" {
		t.Errorf("unexpected inputs: %v", cfg.Inputs.Paths)
	}
	if cfg.Deps.StdPath != "typings/std" {
		t.Errorf("unexpected std path: %q", cfg.Deps.StdPath)
	}
	if cfg.DB.BusyTimeout != 2*time.Second {
		t.Errorf("unexpected busy timeout: %v", cfg.DB.BusyTimeout)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("unexpected debounce: %v", cfg.Watch.Debounce)
	}
	if cfg.Output.Dir != "converted" {
		t.Errorf("unexpected output dir: %q", cfg.Output.Dir)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("expected version default 1, got %d", cfg.Version)
	}
	if len(cfg.Inputs.Paths) != 1 || cfg.Inputs.Paths[0] != "typings" {
		t.Errorf("unexpected input defaults: %v", cfg.Inputs.Paths)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("expected sqlite driver default, got %q", cfg.DB.Driver)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("unexpected debounce default: %v", cfg.Watch.Debounce)
	}
	if !cfg.Patches.IsEnabled() {
		t.Error("patches should default to enabled")
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "version = 7\n"))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestLoadRejectsBadExcludePattern(t *testing.T) {
	_, err := Load(writeConfig(t, "[exclude]\ndirs = [\"[\"]\n"))
	if err == nil || !strings.Contains(err.Error(), "exclude pattern") {
		t.Fatalf("expected pattern error, got %v", err)
	}
}

func TestPatchesSkipped(t *testing.T) {
	p := Patches{Skip: []string{"react"}}
	if !p.Skipped("react") {
		t.Error("react should be skipped")
	}
	if p.Skipped("lodash") {
		t.Error("lodash should not be skipped")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DTSFORGE_OUTPUT_DIR", "env-out")
	t.Setenv("DTSFORGE_WATCH_DEBOUNCE", "250ms")

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.Dir != "env-out" {
		t.Errorf("env override not applied: %q", cfg.Output.Dir)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("env override not applied: %v", cfg.Watch.Debounce)
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// Config drives one conversion run. Everything here is set from the toml
// file; flags on the command line only choose the run mode.
type Config struct {
	Version int      `toml:"version"`
	Inputs  Inputs   `toml:"inputs"`
	Deps    Deps     `toml:"deps"`
	Exclude Exclude  `toml:"exclude"`
	DB      Database `toml:"db"`
	Watch   Watch    `toml:"watch"`
	Output  Output   `toml:"output"`
	Tracing Tracing  `toml:"tracing"`
	Metrics Metrics  `toml:"metrics"`
	Patches Patches  `toml:"patches"`
}

// Inputs names the libraries to convert. Each path is a directory whose
// .d.ts files belong to one library, keyed by the directory name.
type Inputs struct {
	Paths []string `toml:"paths"`
}

// Deps points at already-available dependency declarations, most
// importantly the TypeScript std lib and the node typings. Files found
// here are parsed once and made visible to every conversion as ambient
// scope, never converted themselves.
type Deps struct {
	StdPath  string   `toml:"std_path"`
	NodePath string   `toml:"node_path"`
	Extra    []string `toml:"extra"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Database struct {
	Enabled     bool          `toml:"enabled"`
	Driver      string        `toml:"driver"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Output struct {
	Dir string `toml:"dir"`
}

type Tracing struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"`
}

type Metrics struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

// Patches switches the per-library fixups on or off. Individual libraries
// can be exempted by name.
type Patches struct {
	Enabled *bool    `toml:"enabled"`
	Skip    []string `toml:"skip"`
}

func (p Patches) IsEnabled() bool {
	if p.Enabled == nil {
		return true
	}
	return *p.Enabled
}

func (p Patches) Skipped(lib string) bool {
	for _, s := range p.Skip {
		if s == lib {
			return true
		}
	}
	return false
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	ApplyEnvOverrides(&cfg)

	if err := validateVersion(&cfg); err != nil {
		return nil, err
	}
	if err := validateInputs(&cfg); err != nil {
		return nil, err
	}
	if err := validateExcludes(&cfg); err != nil {
		return nil, err
	}
	if err := validateDatabase(&cfg); err != nil {
		return nil, err
	}
	if err := validateTracing(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if len(cfg.Inputs.Paths) == 0 {
		cfg.Inputs.Paths = []string{"typings"}
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{"node_modules", ".git"}
	}

	if strings.TrimSpace(cfg.DB.Driver) == "" {
		cfg.DB.Driver = "sqlite"
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "dtsforge.db"
	}
	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 5 * time.Second
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}

	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = "out"
	}

	if strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		cfg.Tracing.Endpoint = "127.0.0.1:4317"
	}
	if strings.TrimSpace(cfg.Metrics.Address) == "" {
		cfg.Metrics.Address = "127.0.0.1:9877"
	}
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; only version 1 is supported", cfg.Version)
	}
	return nil
}

func validateInputs(cfg *Config) error {
	for i, p := range cfg.Inputs.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("inputs.paths[%d] must not be empty", i)
		}
	}
	return nil
}

func validateExcludes(cfg *Config) error {
	for _, p := range append(append([]string{}, cfg.Exclude.Dirs...), cfg.Exclude.Files...) {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	if driver != "sqlite" {
		return fmt.Errorf("db.driver must be sqlite, got %q", cfg.DB.Driver)
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	return nil
}

func validateTracing(cfg *Config) error {
	if !cfg.Tracing.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
		return fmt.Errorf("tracing.endpoint must not be empty when tracing is enabled")
	}
	return nil
}

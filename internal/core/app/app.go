package app

import (
	"log/slog"
	"sync"
	"time"

	"dtsforge/internal/core/config"
	"dtsforge/internal/data/history"
	"dtsforge/internal/parser"
	"dtsforge/internal/ts"
	"dtsforge/internal/watcher"
)

// LibraryResult summarizes one converted library.
type LibraryResult struct {
	Library  string
	Files    int
	Warnings int
	Duration time.Duration
	Err      error
}

// Update carries the outcome of a full conversion run to whoever is
// listening, typically the TUI in watch mode.
type Update struct {
	Results []LibraryResult
	When    time.Time
}

// App owns the long-lived pieces of a conversion session: the parser, the
// ambient dependency scope, the optional run history store, and the file
// watcher. Conversion runs themselves are serialized.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Parser  *parser.Parser
	History *history.Store

	deps map[ts.LibIdent]*ts.ParsedFile

	runMu sync.Mutex

	updateMu sync.RWMutex
	onUpdate func(Update)
	last     []LibraryResult

	activeWatcher *watcher.Watcher
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		Parser: parser.New(logger),
	}

	if cfg.DB.Enabled {
		store, err := history.Open(cfg.DB.Path)
		if err != nil {
			return nil, err
		}
		a.History = store
	}

	if err := a.loadDeps(); err != nil {
		if a.History != nil {
			a.History.Close()
		}
		return nil, err
	}

	return a, nil
}

func (a *App) Close() error {
	if a.activeWatcher != nil {
		a.activeWatcher.Close()
	}
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

// ReloadConfig swaps the active configuration between runs. Input, exclude,
// output and patch settings take effect on the next conversion; dependency
// and database settings still need a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	a.Config = cfg
}

// SetUpdateHandler registers the callback invoked after every conversion
// run. Only one handler is active at a time.
func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

// LastResults returns the results of the most recent run.
func (a *App) LastResults() []LibraryResult {
	a.updateMu.RLock()
	defer a.updateMu.RUnlock()
	out := make([]LibraryResult, len(a.last))
	copy(out, a.last)
	return out
}

func (a *App) emitUpdate(results []LibraryResult) {
	a.updateMu.Lock()
	a.last = results
	handler := a.onUpdate
	a.updateMu.Unlock()
	if handler != nil {
		handler(Update{Results: results, When: time.Now().UTC()})
	}
}

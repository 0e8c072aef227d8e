package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dtsforge/internal/data/history"
	"dtsforge/internal/engine/pipeline"
	"dtsforge/internal/ts"
)

// RunAll converts every library found under the input paths. Individual
// library failures are recorded in the per-library result and do not stop
// the run; only scan failures abort.
func (a *App) RunAll(ctx context.Context) ([]LibraryResult, error) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	libs, err := a.ScanLibraries()
	if err != nil {
		return nil, err
	}
	return a.convertAll(ctx, libs), nil
}

func (a *App) convertAll(ctx context.Context, libs []Library) []LibraryResult {
	results := make([]LibraryResult, 0, len(libs))
	for _, lib := range libs {
		res := a.convertLibrary(ctx, lib)
		if res.Err != nil {
			a.Logger.Error("library conversion failed", "library", lib.Name, "error", res.Err)
		} else {
			a.Logger.Info("library converted",
				"library", lib.Name,
				"files", res.Files,
				"warnings", res.Warnings,
				"duration", res.Duration)
		}
		results = append(results, res)
	}
	a.emitUpdate(results)
	return results
}

func (a *App) convertLibrary(ctx context.Context, lib Library) LibraryResult {
	start := time.Now()
	result := LibraryResult{Library: lib.Name, Files: len(lib.Files)}

	ident := ts.Library(lib.Name)
	merged := &ts.ParsedFile{CodePath: ts.PathOf(ident, ts.QIdent{})}
	for _, path := range lib.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			a.recordRun(lib, result, nil, start)
			return result
		}
		parsed, warnings, err := a.Parser.ParseFile(ident, path, content)
		if err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			a.recordRun(lib, result, nil, start)
			return result
		}
		result.Warnings += warnings
		merged.Members = append(merged.Members, parsed.Members...)
	}

	pl := pipeline.New(a.Logger, a.deps, a.passesFor(lib.Name))
	res, err := pl.Run(ctx, ident, merged)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		a.recordRun(lib, result, nil, start)
		return result
	}

	if err := a.writeOutput(lib.Name, res.File); err != nil {
		result.Err = err
	}

	result.Duration = time.Since(start)
	a.recordRun(lib, result, res.Timings, start)
	return result
}

// passesFor returns the pass list for one library, with the per-library
// patch pass removed when patches are disabled globally or for that
// library.
func (a *App) passesFor(lib string) []pipeline.Pass {
	all := pipeline.Default()
	if a.Config.Patches.IsEnabled() && !a.Config.Patches.Skipped(lib) {
		return all
	}
	kept := make([]pipeline.Pass, 0, len(all))
	for _, p := range all {
		if p.Name == "LibrarySpecific" {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (a *App) writeOutput(lib string, file *ts.ParsedFile) error {
	if err := os.MkdirAll(a.Config.Output.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(a.Config.Output.Dir, lib+".d.ts")
	return os.WriteFile(path, []byte(ts.Format(file)), 0o644)
}

func (a *App) recordRun(lib Library, result LibraryResult, timings []pipeline.Timing, started time.Time) {
	if a.History == nil {
		return
	}

	run := history.Run{
		RunID:         uuid.NewString(),
		Library:       lib.Name,
		SchemaVersion: history.SchemaVersion,
		StartedAt:     started.UTC(),
		Duration:      result.Duration,
		FileCount:     result.Files,
		WarningCount:  result.Warnings,
		Failed:        result.Err != nil,
	}

	passes := make([]history.PassTiming, 0, len(timings))
	for i, t := range timings {
		passes = append(passes, history.PassTiming{
			RunID:    run.RunID,
			Pass:     t.Pass,
			Ordinal:  i,
			Duration: t.Duration,
			Changed:  t.Changed,
		})
	}

	if err := a.History.SaveRun(run, passes); err != nil {
		a.Logger.Warn("failed to persist run history", "library", lib.Name, "error", err)
	}
}

package app

import (
	"context"
	"path/filepath"
	"strings"

	"dtsforge/internal/watcher"
)

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	a.activeWatcher = w
	return w.Watch(a.Config.Inputs.Paths)
}

// HandleChanges reconverts the libraries owning the changed paths. Paths
// that cannot be attributed to a known library, such as files in a freshly
// created directory, fall back to a full run.
func (a *App) HandleChanges(paths []string) {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	libs, err := a.ScanLibraries()
	if err != nil {
		a.Logger.Error("rescan after change failed", "error", err)
		return
	}

	affected := make([]Library, 0, len(libs))
	matched := make(map[string]bool, len(paths))
	for _, lib := range libs {
		for _, p := range paths {
			if underRoot(lib.Root, p) {
				affected = append(affected, lib)
				matched[p] = true
				break
			}
		}
	}

	if len(affected) == 0 || len(matched) < len(paths) {
		affected = libs
	}

	a.Logger.Info("reconverting after change", "changed", len(paths), "libraries", len(affected))
	a.convertAll(context.Background(), affected)
}

func underRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dtsforge/internal/core/app"
	"dtsforge/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTypings(t *testing.T, root string) {
	t.Helper()

	lib := filepath.Join(root, "mylib")
	require.NoError(t, os.MkdirAll(lib, 0o755))

	src := `declare enum Level {
    Low,
    High
}
declare var defaultLevel: Level;
interface Logger {
    log(msg: string): void;
}
`
	require.NoError(t, os.WriteFile(filepath.Join(lib, "index.d.ts"), []byte(src), 0o644))
}

func testConfig(t *testing.T, inputs, output string) *config.Config {
	t.Helper()
	return &config.Config{
		Version: 1,
		Inputs:  config.Inputs{Paths: []string{inputs}},
		Output:  config.Output{Dir: output},
		Exclude: config.Exclude{Dirs: []string{"node_modules"}},
	}
}

func TestConvertEndToEnd(t *testing.T) {
	inputs := t.TempDir()
	output := t.TempDir()
	createTypings(t, inputs)

	a, err := app.New(testConfig(t, inputs, output), nil)
	require.NoError(t, err)
	defer a.Close()

	results, err := a.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "mylib", res.Library)
	assert.NoError(t, res.Err)
	assert.Equal(t, 1, res.Files)

	converted, err := os.ReadFile(filepath.Join(output, "mylib.d.ts"))
	require.NoError(t, err)
	text := string(converted)

	// Value declarations end up in a global block and the implicit enum
	// members gain sequential values.
	assert.Contains(t, text, "global")
	assert.Contains(t, text, "defaultLevel")
	assert.Contains(t, text, "Low = 0")
	assert.Contains(t, text, "High = 1")
	assert.Contains(t, text, "interface Logger")
}

func TestConvertRecordsHistory(t *testing.T) {
	inputs := t.TempDir()
	output := t.TempDir()
	createTypings(t, inputs)

	cfg := testConfig(t, inputs, output)
	cfg.DB = config.Database{
		Enabled:     true,
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "runs.db"),
		BusyTimeout: time.Second,
	}

	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.RunAll(context.Background())
	require.NoError(t, err)

	runs, err := a.History.LoadRuns("mylib", time.Time{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "mylib", runs[0].Library)
	assert.False(t, runs[0].Failed)
	assert.Equal(t, 1, runs[0].FileCount)

	timings, err := a.History.LoadPassTimings(runs[0].RunID)
	require.NoError(t, err)
	assert.Len(t, timings, 13)
}

func TestConvertReportsMissingInput(t *testing.T) {
	a, err := app.New(testConfig(t, filepath.Join(t.TempDir(), "absent"), t.TempDir()), nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.RunAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input path")
}

package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dtsforge/internal/core/app"
	"dtsforge/internal/data/history"
)

func printSummary(results []app.LibraryResult) {
	fmt.Println(strings.Repeat("-", 40))

	var files, warnings, failed int
	var total time.Duration
	for _, r := range results {
		files += r.Files
		warnings += r.Warnings
		total += r.Duration
		if r.Err != nil {
			failed++
		}
	}
	fmt.Printf("Converted %d libraries (%d files) in %v\n", len(results), files, total.Round(time.Millisecond))

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Printf("❌ %s: %v\n", r.Library, r.Err)
		case r.Warnings > 0:
			fmt.Printf("⚠️  %s: %d files, %d degraded constructs (%v)\n",
				r.Library, r.Files, r.Warnings, r.Duration.Round(time.Millisecond))
		default:
			fmt.Printf("✅ %s: %d files (%v)\n", r.Library, r.Files, r.Duration.Round(time.Millisecond))
		}
	}

	if failed == 0 && warnings == 0 {
		fmt.Println("✅ All libraries converted cleanly.")
	}
}

func runUI(a *app.App) error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())

	a.SetUpdateHandler(func(u app.Update) {
		p.Send(updateMsg{results: u.Results, when: u.When})
	})

	// Show the results of the conversion that ran before watch mode started.
	go func() {
		p.Send(updateMsg{results: a.LastResults(), when: time.Now()})
	}()

	_, err := p.Run()
	return err
}

func formatRunHistory(store *history.Store, library string) (string, error) {
	if store == nil {
		return "", fmt.Errorf("run history is disabled; enable [db] in the config")
	}

	runs, err := store.LoadRuns(library, time.Time{})
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "No recorded runs.\n", nil
	}

	var b strings.Builder
	b.WriteString("Conversion History\n")
	b.WriteString("==================\n")
	for _, r := range runs {
		status := "ok"
		if r.Failed {
			status = "FAILED"
		}
		b.WriteString(fmt.Sprintf("%s  %-20s %3d files %3d warnings %8v  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Library, r.FileCount, r.WarningCount,
			r.Duration.Round(time.Millisecond), status))
	}
	return b.String(), nil
}

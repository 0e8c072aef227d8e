package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dtsforge/internal/core/app"
	"dtsforge/internal/core/config"
	"dtsforge/internal/shared/observability"
	"dtsforge/internal/ui/cli"
)

var (
	configPath = flag.String("config", "./dtsforge.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run single conversion and exit")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	runs       = flag.Bool("runs", false, "Print recorded conversion runs and exit; optional library argument filters")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("dtsforge v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./dtsforge.toml" {
			cfg, err = config.Load("./dtsforge.example.toml")
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	// A positional argument overrides the configured input paths.
	if !*runs && flag.NArg() > 0 {
		cfg.Inputs.Paths = []string{flag.Arg(0)}
	}

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.SetupTracing(ctx, cfg.Tracing.Endpoint, VERSION)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.Warn("tracing shutdown failed", "error", err)
			}
		}()
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if *runs {
		library := ""
		if flag.NArg() > 0 {
			library = flag.Arg(0)
		}
		out, err := formatRunHistory(a.History, library)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Print(out)
		os.Exit(0)
	}

	results, err := a.RunAll(ctx)
	if err != nil {
		slog.Error("initial conversion failed", "error", err)
		os.Exit(1)
	}

	if !*ui {
		printSummary(results)
	}

	if cfg.Metrics.Enabled {
		server := cli.NewObservabilityServer(cfg.Metrics.Address, app.NewHealthService(a), a.History, logger)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer server.Stop(ctx)
	}

	if *once {
		return
	}

	// Watch mode
	if err := a.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	cfgWatcher := config.NewWatcher(*configPath, logger, a.ReloadConfig)
	if err := cfgWatcher.Start(ctx); err != nil {
		slog.Warn("config hot reload unavailable", "error", err)
	} else {
		defer cfgWatcher.Stop()
	}

	if *ui {
		if err := runUI(a); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dtsforge", "dtsforge.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "dtsforge", "dtsforge.log")
	}

	return "dtsforge.log"
}

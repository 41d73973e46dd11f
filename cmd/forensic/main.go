package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"forensic/internal/core/config"
	"forensic/internal/shared/observability"
)

var (
	configPath = flag.String("config", "./forensic.toml", "Path to config file")
	watch      = flag.Bool("watch", false, "Keep watching the given paths and re-analyze on change")
	noJudge    = flag.Bool("no-judge", false, "Skip the remote AI judgment, structural analysis only")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("forensic v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./forensic.toml" && os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	config.ApplyEnvOverrides(cfg)

	ctx := context.Background()

	if cfg.Observability.EnableTracing && cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("tracing shutdown failed", "error", err)
			}
		}()
	}

	paths := flag.Args()
	if len(paths) == 0 {
		paths = cfg.WatchPaths
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: forensic [flags] <path>...")
		os.Exit(1)
	}

	application, err := NewApp(cfg, *noJudge)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer application.Close(ctx)

	if err := application.RunOnce(ctx, paths); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	if err := application.StartWatching(ctx, paths); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	select {}
}

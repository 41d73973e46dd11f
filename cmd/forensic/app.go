package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"forensic/internal/core/app"
	"forensic/internal/core/config"
	"forensic/internal/core/errors"
	"forensic/internal/core/watcher"
	"forensic/internal/engine/analyzer"
	"forensic/internal/engine/judge"
	"forensic/internal/ui/cli"
	"forensic/internal/ui/report"
)

type App struct {
	cfg       *config.Config
	service   *app.Service
	watcher   *watcher.Watcher
	obsServer *cli.ObservabilityServer
}

func NewApp(cfg *config.Config, noJudge bool) (*App, error) {
	if err := validateLanguageTags(cfg); err != nil {
		return nil, err
	}
	registry := analyzer.NewRegistry(registryOverrides(cfg))

	var judgeClient *judge.GeminiClient
	if cfg.Judge.Enabled && !noJudge {
		client, err := judge.NewGeminiClient(cfg.Judge, os.Getenv(cfg.Judge.APIKeyEnv))
		if err != nil {
			slog.Warn("remote judgment disabled", "reason", err)
		} else {
			judgeClient = client
		}
	}

	a := &App{cfg: cfg}
	if judgeClient != nil {
		a.service = app.NewService(cfg, registry, judgeClient)
	} else {
		a.service = app.NewService(cfg, registry, nil)
	}

	if cfg.Observability.Enabled {
		a.obsServer = cli.NewObservabilityServer(
			cfg.Observability.Address,
			app.NewHealthService(a.service),
		)
		if err := a.obsServer.Start(context.Background()); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// validateLanguageTags rejects configuration that names a language no grammar
// is linked in for. Catching a typo like "pyton" here beats silently ignoring
// the block.
func validateLanguageTags(cfg *config.Config) error {
	for tag := range cfg.Languages {
		if !analyzer.KnownLanguage(tag) {
			return errors.New(errors.CodeNotSupported,
				fmt.Sprintf("no grammar for configured language %q", tag))
		}
	}
	if tag := cfg.Analyzer.Language; tag != "" && !analyzer.KnownLanguage(tag) {
		return errors.New(errors.CodeNotSupported,
			fmt.Sprintf("no grammar for fallback language %q", tag))
	}
	return nil
}

func registryOverrides(cfg *config.Config) analyzer.Overrides {
	ov := analyzer.Overrides{
		Disabled:   make(map[string]bool),
		Extensions: make(map[string][]string),
	}
	for tag, spec := range cfg.Languages {
		if spec.Enabled != nil && !*spec.Enabled {
			ov.Disabled[tag] = true
		}
		if len(spec.Extensions) > 0 {
			ov.Extensions[tag] = spec.Extensions
		}
	}
	return ov
}

// RunOnce analyzes every document under the given paths and emits reports.
func (a *App) RunOnce(ctx context.Context, paths []string) error {
	files, err := a.service.ScanPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Info("no analyzable files found", "paths", paths)
		return nil
	}

	reports := make([]app.FileReport, 0, len(files))
	for _, file := range files {
		r, err := a.service.AnalyzeFile(ctx, file)
		if err != nil {
			slog.Warn("failed to read file", "path", file, "error", err)
			continue
		}
		reports = append(reports, r)
		fmt.Println(report.RenderText(r))
	}

	return a.writeOutputs(reports)
}

func (a *App) writeOutputs(reports []app.FileReport) error {
	if a.cfg.Output.Markdown != "" {
		if err := os.WriteFile(a.cfg.Output.Markdown, []byte(report.RenderMarkdown(reports)), 0o644); err != nil {
			return err
		}
		slog.Info("wrote markdown report", "path", a.cfg.Output.Markdown)
	}
	if a.cfg.Output.JSON != "" {
		data, err := report.RenderJSON(reports)
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.cfg.Output.JSON, data, 0o644); err != nil {
			return err
		}
		slog.Info("wrote json report", "path", a.cfg.Output.JSON)
	}
	return nil
}

// StartWatching re-analyzes changed files until the process exits.
func (a *App) StartWatching(ctx context.Context, paths []string) error {
	w, err := watcher.New(
		a.cfg.Watch.Debounce,
		a.cfg.Exclude.Dirs,
		a.cfg.Exclude.Files,
		a.service.Registry().SupportedExtensions(),
		func(changed []string) {
			for _, path := range changed {
				if _, statErr := os.Stat(path); statErr != nil {
					continue // deleted or renamed away
				}
				r, err := a.service.AnalyzeFile(ctx, path)
				if err != nil {
					slog.Warn("failed to re-analyze file", "path", path, "error", err)
					continue
				}
				fmt.Println(report.RenderText(r))
			}
		},
	)
	if err != nil {
		return err
	}
	a.watcher = w

	slog.Info("watching for changes", "paths", paths)
	return w.Watch(paths)
}

func (a *App) Close(ctx context.Context) {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}
	if a.obsServer != nil {
		if err := a.obsServer.Stop(ctx); err != nil {
			slog.Warn("failed to stop observability server", "error", err)
		}
	}
}

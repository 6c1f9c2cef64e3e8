package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/skanbot/skanbot/internal/cache"
	"github.com/skanbot/skanbot/internal/cleanup"
	"github.com/skanbot/skanbot/internal/config"
	"github.com/skanbot/skanbot/internal/garbage"
	"github.com/skanbot/skanbot/internal/home"
	"github.com/skanbot/skanbot/internal/langtool"
	"github.com/skanbot/skanbot/internal/pipeline"
	"github.com/skanbot/skanbot/internal/recognize"
)

// getHome returns the home directory manager.
func getHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	return h, nil
}

// getConfig loads configuration from the --config flag or the default search
// path.
func getConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// buildService wires the full recognition pipeline from configuration. The
// emitter receives the user-facing messages; CLI commands pass os.Stdout.
// The returned closer releases the answer cache.
func buildService(cfg *config.Config, h *home.Dir, logger *slog.Logger, out io.Writer) (*pipeline.Service, func()) {
	engine := recognize.NewTesseract(cfg.Recognize.Languages...)

	runner := &recognize.Runner{
		Engine:    engine,
		Logger:    logger,
		TempDir:   h.TempPath(),
		Timeout:   cfg.Recognize.Timeout,
		Templates: recognize.DefaultTemplates(),
	}

	lt := langtool.NewClient(cfg.LangTool.URL, cfg.LangTool.Language, logger)

	orchestrator := &pipeline.Orchestrator{
		Emitter:       pipeline.NewConsoleEmitter(out),
		Garbage:       garbage.NewStore(h.GarbagePath(), logger),
		Sessions:      pipeline.NewMemorySessions(),
		Logger:        logger,
		ProgressTotal: cfg.Progress.Duration,
		ProgressStep:  cfg.Progress.Step,
	}

	closer := func() {}
	if cfg.Cleanup.Enabled {
		model, err := cleanup.NewOpenAIModel(
			cfg.Cleanup.BaseURL,
			config.ResolveEnvVars(cfg.Cleanup.APIKey),
			cfg.Cleanup.Model,
		)
		if err != nil {
			logger.Warn("cleanup model unavailable, continuing without cleanup", "error", err)
		} else {
			cleaner := cleanup.NewCleaner(model, cleanup.Options{
				MaxTokens:   cfg.Cleanup.MaxTokens,
				Temperature: cfg.Cleanup.Temperature,
				TopK:        cfg.Cleanup.TopK,
				TopP:        cfg.Cleanup.TopP,
			}, logger)

			if cfg.Cache.Enabled {
				store, err := cache.Open(h.CachePath(), cfg.Cache.FuzzyThreshold, logger)
				if err != nil {
					logger.Warn("answer cache unavailable", "error", err)
				} else {
					cleaner = cleaner.WithCache(store)
					closer = func() { store.Close() }
				}
			}

			orchestrator.Cleanup = cleaner
		}
	}

	return &pipeline.Service{
		Runner:       runner,
		Corrector:    lt,
		Orchestrator: orchestrator,
		Logger:       logger,
	}, closer
}

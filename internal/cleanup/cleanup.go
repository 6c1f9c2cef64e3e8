// Package cleanup runs a best-effort language-model pass over the final OCR
// text. Failures here never fail the pipeline: the raw final text was already
// delivered by the time cleanup runs.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrNotInitialized is returned when no model handle is configured.
	ErrNotInitialized = errors.New("cleanup model not initialized")
	// ErrUnsupported is returned for model kinds this build cannot drive.
	ErrUnsupported = errors.New("cleanup model unsupported")
)

// Options tune a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// Model generates a completion for a prompt.
type Model interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Cache stores past generations keyed by prompt. A fuzzy hit skips the model
// call entirely.
type Cache interface {
	FuzzyFind(ctx context.Context, prompt string) (string, bool, error)
	Save(ctx context.Context, prompt, response string) error
}

// Cleaner rewrites recognized text through a Model.
type Cleaner struct {
	model  Model
	opts   Options
	cache  Cache
	logger *slog.Logger
}

// NewCleaner wires the cleanup stage around a model handle.
func NewCleaner(model Model, opts Options, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{model: model, opts: opts, logger: logger}
}

// WithCache attaches a response cache consulted before the model.
func (c *Cleaner) WithCache(cache Cache) *Cleaner {
	c.cache = cache
	return c
}

// Clean asks the model to repair OCR artifacts in text. An empty result from
// the model is an error so the caller never replaces real text with nothing.
func (c *Cleaner) Clean(ctx context.Context, text string) (string, error) {
	if c == nil || c.model == nil {
		return "", ErrNotInitialized
	}

	prompt := buildPrompt(text)

	if c.cache != nil {
		cached, ok, err := c.cache.FuzzyFind(ctx, prompt)
		if err != nil {
			c.logger.Warn("cleanup cache lookup failed", "error", err)
		} else if ok {
			c.logger.Info("cleanup served from cache")
			return cached, nil
		}
	}

	c.logger.Debug("cleanup generation started", "prompt_chars", len([]rune(prompt)))

	out, err := c.model.Generate(ctx, prompt, c.opts)
	if err != nil {
		return "", fmt.Errorf("cleanup generation: %w", err)
	}

	cleaned := strings.TrimSpace(out)
	if cleaned == "" {
		return "", errors.New("cleanup produced empty text")
	}

	if c.cache != nil {
		// Cache writes are best effort.
		if err := c.cache.Save(ctx, prompt, cleaned); err != nil {
			c.logger.Warn("cleanup cache save failed", "error", err)
		}
	}
	return cleaned, nil
}

// buildPrompt frames the OCR output as a repair task. The model must return
// only the corrected text, nothing else.
func buildPrompt(text string) string {
	return "Исправь ошибки распознавания в тексте, сохрани все строки и порядок. " +
		"Верни только исправленный текст без пояснений.\n\n" + text
}

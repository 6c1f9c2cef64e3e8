package recognize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skanbot/skanbot/internal/ocr"
)

// DefaultTimeout is the per-template recognition ceiling.
const DefaultTimeout = 60 * time.Second

// ErrorMarker prefixes the synthetic text produced when a template fails or
// times out. Failures surface as candidate text, never as errors, so scoring
// always receives a full candidate set.
const ErrorMarker = "⚠️ OCR error:"

// Runner executes the whole template batch against one image.
type Runner struct {
	Engine    Engine
	Logger    *slog.Logger
	TempDir   string        // preprocessed variants are written here
	Timeout   time.Duration // per-template ceiling, DefaultTimeout when zero
	Templates []Template    // DefaultTemplates when nil
}

// RunAll recognizes the image with every template. Templates run
// concurrently, but the returned candidates are always in template order so
// downstream tie-breaks stay deterministic.
func (r *Runner) RunAll(ctx context.Context, imagePath string) []ocr.Candidate {
	templates := r.Templates
	if templates == nil {
		templates = DefaultTemplates()
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]ocr.Candidate, len(templates))
	var wg sync.WaitGroup
	for i, tpl := range templates {
		wg.Add(1)
		go func(i int, tpl Template) {
			defer wg.Done()
			results[i] = ocr.Candidate{
				Template: tpl.Name,
				Text:     r.runOne(ctx, tpl, imagePath, timeout, logger),
			}
		}(i, tpl)
	}
	wg.Wait()
	return results
}

// runOne recognizes with a single template under the timeout ceiling. The
// engine call is not forcibly aborted on timeout; its result is simply
// discarded.
func (r *Runner) runOne(ctx context.Context, tpl Template, imagePath string, timeout time.Duration, logger *slog.Logger) string {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := r.recognizeTemplate(runCtx, tpl, imagePath)
		done <- outcome{text, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			logger.Warn("template failed", "template", tpl.Name, "error", out.err)
			return fmt.Sprintf("%s %s: %v", ErrorMarker, tpl.Name, out.err)
		}
		return out.text
	case <-runCtx.Done():
		logger.Warn("template timed out", "template", tpl.Name, "timeout", timeout)
		return fmt.Sprintf("%s %s: %v", ErrorMarker, tpl.Name, runCtx.Err())
	}
}

func (r *Runner) recognizeTemplate(ctx context.Context, tpl Template, imagePath string) (string, error) {
	variant := filepath.Join(r.TempDir, uuid.NewString()+".png")
	if err := Preprocess(tpl.Pre, imagePath, variant); err != nil {
		return "", fmt.Errorf("preprocess %s: %w", tpl.Pre, err)
	}
	defer os.Remove(variant)

	raw, err := r.Engine.Recognize(ctx, variant)
	if err != nil {
		return "", err
	}
	return Postprocess(tpl.Post, raw), nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultProgressTotal is how long the cleanup progress indicator runs.
	DefaultProgressTotal = 30 * time.Second
	// DefaultProgressStep is the interval between indicator updates.
	DefaultProgressStep = 5 * time.Second

	progressBarWidth = 20
	progressHeader   = "⏳ Очистка текста..."
)

// renderProgressBar renders the fixed-width indicator, one filled cell per 5%.
func renderProgressBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent / 5
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("=", filled),
		strings.Repeat(" ", progressBarWidth-filled),
		percent)
}

// runProgress posts a progress message and edits it in place on every step
// until the total duration elapses or ctx is cancelled, then deletes it. The
// indicator is user feedback only, so emitter failures are logged and
// swallowed.
func runProgress(ctx context.Context, emitter Emitter, logger *slog.Logger, total, step time.Duration) {
	if total <= 0 {
		total = DefaultProgressTotal
	}
	if step <= 0 {
		step = DefaultProgressStep
	}

	id, err := emitter.Send(ctx, progressHeader+"\n"+renderProgressBar(0))
	if err != nil {
		logger.Warn("progress message failed", "error", err)
		return
	}
	defer func() {
		if err := emitter.Delete(context.WithoutCancel(ctx), id); err != nil {
			logger.Warn("progress cleanup failed", "error", err)
		}
	}()

	steps := int(total / step)
	if steps < 1 {
		steps = 1
	}

	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		percent := i * 100 / steps
		if err := emitter.Edit(ctx, id, progressHeader+"\n"+renderProgressBar(percent)); err != nil {
			logger.Warn("progress update failed", "error", err)
			return
		}
	}
}

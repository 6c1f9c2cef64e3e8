package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skanbot/skanbot/internal/garbage"
	"github.com/skanbot/skanbot/internal/ocr"
)

// importantWords are domain substrings that keep a short or Latin-heavy line
// out of the garbage dictionary. Matched case-insensitively as substrings.
var importantWords = []string{
	"активируйте",
	"скачайте",
	"приложение",
	"магазин",
	"сервис",
	"эво",
	"касовые",
	"подробнее",
	"адрес",
	"телефон",
	"инн",
}

// Cleaner is the best-effort text-cleanup collaborator.
type Cleaner interface {
	Clean(ctx context.Context, text string) (string, error)
}

// Result is what one orchestrator run delivered.
type Result struct {
	Best        ocr.Scored `json:"best"`
	FinalText   string     `json:"final_text"`
	CleanedText string     `json:"cleaned_text,omitempty"`
}

// Orchestrator runs the post-recognition pipeline over scored candidates.
// Every field but Emitter is optional; nil collaborators skip their stage.
type Orchestrator struct {
	Emitter  Emitter
	Garbage  *garbage.Store
	Cleanup  Cleaner
	Sessions SessionStore
	Logger   *slog.Logger

	// Cleanup progress indicator pacing. Zero values use the defaults.
	ProgressTotal time.Duration
	ProgressStep  time.Duration
}

// Run sequences selection, garbage filtering and learning, final-text
// emission and the cleanup pass. Only a failure to emit the final text is
// fatal; garbage persistence and cleanup degrade to log lines and a
// user-visible notice.
func (o *Orchestrator) Run(ctx context.Context, sessionID string, candidates []ocr.Candidate, semantic, corrected, human string) (*Result, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	o.setState(sessionID, StateSelecting, "", logger)
	best := ocr.SelectBest(logger, candidates, semantic, corrected, human)

	lines := splitTrimmedLines(best.Text)

	o.setState(sessionID, StateFilteringGarbage, "", logger)
	if o.Garbage != nil {
		lines = o.Garbage.Filter(lines)
	}

	o.setState(sessionID, StateLearningGarbage, "", logger)
	kept, garbageCandidates := classifyLines(lines)
	if o.Garbage != nil && len(garbageCandidates) > 0 {
		// Write failures must not abort the run; the output is already
		// assembled.
		if err := o.Garbage.Learn(garbageCandidates); err != nil {
			logger.Warn("garbage learning failed", "error", err, "candidates", len(garbageCandidates))
		} else {
			logger.Info("garbage candidates learned", "count", len(garbageCandidates))
		}
	}

	finalText := strings.Join(kept, "\n")
	result := &Result{Best: best, FinalText: finalText}

	o.setState(sessionID, StateEmittingFinal, finalText, logger)
	if _, err := o.Emitter.SendHTML(ctx, formatFinalMessage(finalText)); err != nil {
		return nil, fmt.Errorf("emit final text: %w", err)
	}

	if o.Cleanup != nil {
		o.setState(sessionID, StateCleanupPending, finalText, logger)
		result.CleanedText = o.runCleanup(ctx, finalText, logger)
	}

	o.setState(sessionID, StateDone, finalText, logger)
	return result, nil
}

// runCleanup invokes the cleanup collaborator behind a progress indicator.
// Returns the cleaned text, or "" when cleanup failed; failure is reported to
// the user as a notice and never to the caller.
func (o *Orchestrator) runCleanup(ctx context.Context, finalText string, logger *slog.Logger) string {
	progressCtx, stopProgress := context.WithCancel(ctx)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		runProgress(progressCtx, o.Emitter, logger, o.ProgressTotal, o.ProgressStep)
	}()

	cleaned, err := o.Cleanup.Clean(ctx, finalText)

	stopProgress()
	<-progressDone

	if err != nil {
		logger.Warn("cleanup failed", "error", err)
		if _, sendErr := o.Emitter.Send(ctx, cleanupFailureNotice); sendErr != nil {
			logger.Warn("cleanup notice failed", "error", sendErr)
		}
		return ""
	}

	if _, err := o.Emitter.SendHTML(ctx, formatCleanedMessage(cleaned)); err != nil {
		// The raw final text already reached the user.
		logger.Warn("cleaned text emission failed", "error", err)
	}
	return cleaned
}

func (o *Orchestrator) setState(sessionID string, state State, lastResult string, logger *slog.Logger) {
	logger.Info("pipeline state", "session", sessionID, "state", state)
	if o.Sessions == nil {
		return
	}
	s, _ := o.Sessions.Get(sessionID)
	s.State = state
	if lastResult != "" {
		s.LastResult = lastResult
	}
	s.UpdatedAt = time.Now()
	o.Sessions.Put(sessionID, s)
}

const cleanupFailureNotice = "⚠️ Не удалось выполнить очистку текста, используйте исходный вариант."

func formatFinalMessage(finalText string) string {
	return fmt.Sprintf("<b>📋 Итоговый текст с фото (максимально близко к оригиналу)</b>\n\n<pre>%s</pre>", finalText)
}

func formatCleanedMessage(cleaned string) string {
	return fmt.Sprintf("<b>🤖 Очищенный текст</b>\n\n<pre>%s</pre>", cleaned)
}

// splitTrimmedLines splits on line breaks and drops empty lines after
// trimming.
func splitTrimmedLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// classifyLines partitions lines into kept output lines and garbage
// candidates. A line is garbage when shorter than 5 runes, or when it has
// fewer than 3 Cyrillic letters and mentions no important domain word.
func classifyLines(lines []string) (kept, garbageCandidates []string) {
	for _, line := range lines {
		if isGarbageCandidate(line) {
			garbageCandidates = append(garbageCandidates, line)
			continue
		}
		kept = append(kept, line)
	}
	return kept, garbageCandidates
}

func isGarbageCandidate(line string) bool {
	clean := strings.TrimSpace(line)
	if len([]rune(clean)) < 5 {
		return true
	}
	if countCyrillic(clean) >= 3 {
		return false
	}
	lower := strings.ToLower(clean)
	for _, w := range importantWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func countCyrillic(s string) int {
	n := 0
	for _, r := range s {
		if (r >= 'А' && r <= 'я') || r == 'ё' || r == 'Ё' {
			n++
		}
	}
	return n
}

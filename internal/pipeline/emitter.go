// Package pipeline sequences a full recognition run: best-result selection,
// garbage filtering and learning, final-text emission and the best-effort
// cleanup pass.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Emitter is the output channel for user-facing messages. Message ids allow
// editing a message in place (the progress indicator) and deleting it when a
// run completes. Transports implement this; the CLI and server ship console
// and JSON emitters.
type Emitter interface {
	Send(ctx context.Context, text string) (int, error)
	SendHTML(ctx context.Context, html string) (int, error)
	Edit(ctx context.Context, messageID int, text string) error
	Delete(ctx context.Context, messageID int) error
}

// ConsoleEmitter writes messages to a writer. Edits append a fresh line since
// a plain stream cannot rewrite history, and deletes are a no-op.
type ConsoleEmitter struct {
	mu     sync.Mutex
	w      io.Writer
	nextID int
}

// NewConsoleEmitter creates an emitter writing to w.
func NewConsoleEmitter(w io.Writer) *ConsoleEmitter {
	return &ConsoleEmitter{w: w, nextID: 1}
}

func (e *ConsoleEmitter) Send(_ context.Context, text string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextID
	e.nextID++
	if _, err := fmt.Fprintln(e.w, text); err != nil {
		return 0, fmt.Errorf("write message: %w", err)
	}
	return id, nil
}

func (e *ConsoleEmitter) SendHTML(ctx context.Context, html string) (int, error) {
	return e.Send(ctx, html)
}

func (e *ConsoleEmitter) Edit(_ context.Context, _ int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := fmt.Fprintf(e.w, "\r%s", text); err != nil {
		return fmt.Errorf("write edit: %w", err)
	}
	return nil
}

func (e *ConsoleEmitter) Delete(_ context.Context, _ int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := fmt.Fprintln(e.w)
	return err
}

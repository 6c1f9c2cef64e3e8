// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with handlers.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/skanbot/skanbot/internal/home"
	"github.com/skanbot/skanbot/internal/langtool"
)

// Services holds the core services that flow through request contexts.
// Handlers extract what they need via the individual extractors.
type Services struct {
	Logger   *slog.Logger
	Home     *home.Dir
	LangTool *langtool.Client
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// LangToolFrom extracts the grammar-correction client from context.
func LangToolFrom(ctx context.Context) *langtool.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.LangTool
	}
	return nil
}

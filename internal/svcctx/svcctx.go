// Package svcctx provides service context for dependency injection via context.
// This package is separate from the commands to avoid import cycles.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/foliocite/foliocite/internal/config"
	"github.com/foliocite/foliocite/internal/engine"
)

// Services holds the core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Logger *slog.Logger
	Config *config.Config
	Engine *engine.Engine
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

// ConfigFrom extracts the active configuration from context.
func ConfigFrom(ctx context.Context) *config.Config {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// EngineFrom extracts the inference engine from context.
func EngineFrom(ctx context.Context) *engine.Engine {
	if s := ServicesFrom(ctx); s != nil {
		return s.Engine
	}
	return nil
}

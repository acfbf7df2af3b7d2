// Package access is the per-module permission gate every custody operation
// passes before touching data. Levels are none < read < write; a missing
// actor, a missing entry or a store failure all deny.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/sentinel"
)

// Level is an actor's permission on one module.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelWrite
)

func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelWrite:
		return "write"
	default:
		return "none"
	}
}

// ParseLevel maps a stored permission value to a Level. Unknown values are none.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read":
		return LevelRead
	case "write":
		return LevelWrite
	default:
		return LevelNone
	}
}

// Satisfies reports whether l meets required. write implies read.
func (l Level) Satisfies(required Level) bool {
	if required == LevelNone {
		return true
	}
	return l >= required
}

// Module identifies a permission-scoped area of the case-management system.
type Module string

const (
	ModuleMovements Module = "movements"
)

// Store reads stored permission values.
// Lookup returns sentinel.ErrNotFound when the actor has no entry for module.
type Store interface {
	Lookup(ctx context.Context, actorID string, module Module) (Level, error)
}

// Gate answers permission questions for every module.
type Gate struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

func NewGate(store Store, opts ...Option) *Gate {
	g := &Gate{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LevelFor returns the actor's effective level on module, or LevelNone when it
// cannot be determined.
func (g *Gate) LevelFor(ctx context.Context, actorID string, module Module) Level {
	if strings.TrimSpace(actorID) == "" {
		return LevelNone
	}
	level, err := g.store.Lookup(ctx, actorID, module)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			g.logger.ErrorContext(ctx, "permission lookup failed",
				"actor_id", actorID,
				"module", string(module),
				"error", err,
			)
		}
		return LevelNone
	}
	return level
}

// Check reports whether actorID holds at least required on module.
func (g *Gate) Check(ctx context.Context, actorID string, module Module, required Level) bool {
	allowed := g.LevelFor(ctx, actorID, module).Satisfies(required)
	if !allowed && g.metrics != nil {
		g.metrics.IncDenied(module, required)
	}
	return allowed
}

// Require is Check returning the error the API reports: unauthorized when no
// actor is present, forbidden when the level is insufficient.
func (g *Gate) Require(ctx context.Context, actorID string, module Module, required Level) error {
	if strings.TrimSpace(actorID) == "" {
		if g.metrics != nil {
			g.metrics.IncDenied(module, required)
		}
		return dErrors.New(dErrors.CodeUnauthorized, "actor identity required")
	}
	if !g.Check(ctx, actorID, module, required) {
		g.logger.WarnContext(ctx, "permission denied",
			"actor_id", actorID,
			"module", string(module),
			"required", required.String(),
		)
		return dErrors.New(dErrors.CodeForbidden, fmt.Sprintf("%s permission required for %s", required, module))
	}
	return nil
}

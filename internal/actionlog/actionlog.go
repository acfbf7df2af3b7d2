// Package actionlog records who changed what. Recording is best-effort: a
// failing sink is logged and never fails the mutation that triggered it.
package actionlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"custody/pkg/requestcontext"
)

type Action string

const (
	ActionMovementCreated       Action = "movement_created"
	ActionMovementUpdated       Action = "movement_updated"
	ActionMovementDeleted       Action = "movement_deleted"
	ActionCellAssignmentAdded   Action = "cell_assignment_added"
	ActionCellAssignmentDeleted Action = "cell_assignment_deleted"
	ActionDocumentAdded         Action = "document_added"
	ActionDocumentDeleted       Action = "document_deleted"
	ActionProcedureEntryAdded   Action = "procedure_entry_added"
	ActionProcedureEntryDeleted Action = "procedure_entry_deleted"
	ActionOrphansRepaired       Action = "orphans_repaired"
)

// Entry is one action_log row.
type Entry struct {
	ID        uuid.UUID `db:"id"`
	ActorID   string    `db:"actor_id"`
	Action    Action    `db:"action"`
	Module    string    `db:"module"`
	SubjectID string    `db:"subject_id"`
	EntityID  string    `db:"entity_id"`
	RequestID string    `db:"request_id"`
	ClientIP  string    `db:"client_ip"`
	Device    string    `db:"device"`
	CreatedAt time.Time `db:"created_at"`
}

// Record is what callers supply; the rest is taken from the request context.
type Record struct {
	Action    Action
	Module    string
	SubjectID string
	EntityID  string
}

// Store persists entries.
type Store interface {
	Append(ctx context.Context, e Entry) error
}

type Publisher struct {
	store  Store
	logger *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher builds a Publisher. A nil store logs only.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit logs the action and appends it to the store.
func (p *Publisher) Emit(ctx context.Context, rec Record) {
	e := Entry{
		ID:        uuid.New(),
		ActorID:   requestcontext.ActorID(ctx),
		Action:    rec.Action,
		Module:    rec.Module,
		SubjectID: rec.SubjectID,
		EntityID:  rec.EntityID,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Device:    ParseUserAgent(requestcontext.UserAgent(ctx)),
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}

	p.logger.InfoContext(ctx, string(e.Action),
		"log_type", "action",
		"actor_id", e.ActorID,
		"module", e.Module,
		"subject_id", e.SubjectID,
		"entity_id", e.EntityID,
		"request_id", e.RequestID,
		"client_ip", e.ClientIP,
		"device", e.Device,
	)

	if p.store == nil {
		return
	}
	// The request may already be finishing; the append gets its own deadline.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := p.store.Append(storeCtx, e); err != nil {
		p.logger.WarnContext(ctx, "failed to persist action log entry",
			"action", string(e.Action),
			"request_id", e.RequestID,
			"error", err,
		)
	}
}

// Package service coordinates custody reads and mutations: every call passes
// the access gate, reads are assembled into trees, and deletes cascade inside
// one unit of work.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"custody/internal/access"
	"custody/internal/actionlog"
	"custody/internal/custody/metrics"
	"custody/internal/custody/models"
	"custody/internal/custody/tree"
	"custody/internal/reference"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/sentinel"
	"custody/pkg/requestcontext"
)

// Store is the movement repository.
type Store interface {
	ListMovements(ctx context.Context, subject domain.SubjectID, order models.Order) ([]models.Movement, error)
	ListCells(ctx context.Context, subject domain.SubjectID) ([]models.CellAssignment, error)
	ListDocuments(ctx context.Context, subject domain.SubjectID) ([]models.LegalDocument, error)
	ListProcedures(ctx context.Context, subject domain.SubjectID) ([]models.ProcedureEntry, error)
	FindMovement(ctx context.Context, id domain.MovementID) (*models.Movement, error)

	// LockMovement returns the movement's subject and holds the movement and
	// its cell assignments until the unit of work ends, so no dependent can
	// be attached to them meanwhile.
	LockMovement(ctx context.Context, id domain.MovementID) (domain.SubjectID, error)
	// LockCell holds the cell assignment until the unit of work ends.
	LockCell(ctx context.Context, id domain.CellAssignmentID) error

	CreateMovement(ctx context.Context, movement *models.Movement) error
	UpdateMovement(ctx context.Context, movement *models.Movement) error
	DeleteMovement(ctx context.Context, id domain.MovementID) error

	CreateCell(ctx context.Context, c *models.CellAssignment) error
	CreateDocument(ctx context.Context, d *models.LegalDocument) error
	CreateProcedure(ctx context.Context, p *models.ProcedureEntry) error

	DeleteCellDocumentsOfMovement(ctx context.Context, id domain.MovementID) (int64, error)
	DeleteDocumentsOf(ctx context.Context, parent models.Parent) (int64, error)
	DeleteCellsOfMovement(ctx context.Context, id domain.MovementID) (int64, error)
	DeleteProceduresOfMovement(ctx context.Context, id domain.MovementID) (int64, error)
	DeleteCell(ctx context.Context, id domain.CellAssignmentID) error
	DeleteDocument(ctx context.Context, id domain.DocumentID) error
	DeleteProcedure(ctx context.Context, id domain.ProcedureEntryID) error

	ListOrphanDocuments(ctx context.Context) ([]models.LegalDocument, error)
	DeleteDocumentsByID(ctx context.Context, ids []domain.DocumentID) (int64, error)
}

// StoreTx provides a transactional boundary for custody store mutations.
// Implementations wrap a database transaction or, in-memory, a lock plus a
// snapshot to roll back to.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

type Gate interface {
	Check(ctx context.Context, actorID string, module access.Module, required access.Level) bool
	Require(ctx context.Context, actorID string, module access.Module, required access.Level) error
}

type ReferenceProvider interface {
	Dictionaries(ctx context.Context) (*reference.Dictionaries, error)
}

type ActionPublisher interface {
	Emit(ctx context.Context, rec actionlog.Record)
}

// TreeView is a subject's custody tree plus whether the caller may edit it.
// CanWrite only drives the UI; every mutation checks the gate again.
type TreeView struct {
	Movements []tree.Node
	CanWrite  bool
}

// Service orchestrates custody movements and their dependents.
type Service struct {
	store   Store
	tx      StoreTx
	gate    Gate
	refs    ReferenceProvider
	actions ActionPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithReference(refs ReferenceProvider) Option {
	return func(s *Service) {
		s.refs = refs
	}
}

func WithActionPublisher(p ActionPublisher) Option {
	return func(s *Service) {
		s.actions = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service.
func New(store Store, tx StoreTx, gate Gate, opts ...Option) *Service {
	s := &Service{
		store:  store,
		tx:     tx,
		gate:   gate,
		logger: slog.Default(),
		tracer: otel.Tracer("custody/internal/custody/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const module = access.ModuleMovements

func (s *Service) require(ctx context.Context, level access.Level) error {
	return s.gate.Require(ctx, requestcontext.ActorID(ctx), module, level)
}

// =============================================================================
// Reads
// =============================================================================

// ReferenceData returns the lookup dictionaries behind GET /meta/movements.
func (s *Service) ReferenceData(ctx context.Context) (*reference.Dictionaries, error) {
	if err := s.require(ctx, access.LevelRead); err != nil {
		return nil, err
	}
	if s.refs == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "reference data not configured")
	}
	return s.refs.Dictionaries(ctx)
}

// Tree returns the subject's movements with their dependents nested.
func (s *Service) Tree(ctx context.Context, subject domain.SubjectID, order models.Order) (*TreeView, error) {
	if err := s.require(ctx, access.LevelRead); err != nil {
		return nil, err
	}
	canWrite := s.gate.Check(ctx, requestcontext.ActorID(ctx), module, access.LevelWrite)

	nodes, err := s.readTree(ctx, subject, order)
	if err != nil {
		return nil, err
	}
	return &TreeView{Movements: nodes, CanWrite: canWrite}, nil
}

// Current returns the subject's most recent movement.
func (s *Service) Current(ctx context.Context, subject domain.SubjectID) (*tree.Node, error) {
	if err := s.require(ctx, access.LevelRead); err != nil {
		return nil, err
	}
	nodes, err := s.readTree(ctx, subject, models.OrderDesc)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "subject has no movements")
	}
	return &nodes[0], nil
}

// readTree fetches the four flat collections concurrently and assembles them.
func (s *Service) readTree(ctx context.Context, subject domain.SubjectID, order models.Order) ([]tree.Node, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "custody.readTree", trace.WithAttributes(
		attribute.String("subject_id", subject.String()),
		attribute.String("order", string(order)),
	))
	defer span.End()

	var snap models.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Movements, err = s.store.ListMovements(gctx, subject, order)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Cells, err = s.store.ListCells(gctx, subject)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Documents, err = s.store.ListDocuments(gctx, subject)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Procedures, err = s.store.ListProcedures(gctx, subject)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, s.translate(err, "", "load movements")
	}

	nodes, dropped := tree.Assemble(snap)
	if dropped.Total() > 0 {
		s.logger.WarnContext(ctx, "dropped custody rows with missing parent",
			"subject_id", subject.String(),
			"cells", dropped.Cells,
			"documents", dropped.Documents,
			"procedures", dropped.Procedures,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.metrics.AddDropped("cell", dropped.Cells)
		s.metrics.AddDropped("document", dropped.Documents)
		s.metrics.AddDropped("procedure", dropped.Procedures)
	}
	span.SetAttributes(attribute.Int("movements", len(nodes)))
	s.metrics.ObserveTreeRead(start)
	return nodes, nil
}

// =============================================================================
// Movements
// =============================================================================

func (s *Service) CreateMovement(ctx context.Context, subject domain.SubjectID, req *models.MovementRequest) (*models.Movement, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m := req.Movement(0, subject)
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.CreateMovement(ctx, &m)
	})
	if err != nil {
		return nil, s.translate(err, "", "create movement")
	}

	s.metrics.IncMutation("movement", "create")
	s.emit(ctx, actionlog.ActionMovementCreated, subject, m.ID.String())
	return &m, nil
}

// UpdateMovement replaces every mutable field. Dependents are untouched.
func (s *Service) UpdateMovement(ctx context.Context, id domain.MovementID, req *models.MovementRequest) (*models.Movement, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var updated models.Movement
	err := s.tx.RunInTx(ctx, func(store Store) error {
		existing, err := store.FindMovement(ctx, id)
		if err != nil {
			return err
		}
		updated = req.Movement(id, existing.SubjectID)
		return store.UpdateMovement(ctx, &updated)
	})
	if err != nil {
		return nil, s.translate(err, "movement not found", "update movement")
	}

	s.metrics.IncMutation("movement", "update")
	s.emit(ctx, actionlog.ActionMovementUpdated, updated.SubjectID, id.String())
	return &updated, nil
}

// DeleteMovement removes the movement and everything under it in one unit of
// work: cell documents, movement documents, cells, procedure entries, then
// the movement itself. Any failure leaves every row in place.
func (s *Service) DeleteMovement(ctx context.Context, id domain.MovementID) (*models.CascadeResult, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "custody.deleteMovement", trace.WithAttributes(
		attribute.Int64("movement_id", int64(id)),
	))
	defer span.End()

	var (
		result  models.CascadeResult
		subject domain.SubjectID
	)
	err := s.tx.RunInTx(ctx, func(store Store) error {
		var err error
		if subject, err = store.LockMovement(ctx, id); err != nil {
			return err
		}
		if result.CellDocuments, err = store.DeleteCellDocumentsOfMovement(ctx, id); err != nil {
			return err
		}
		if result.MovementDocuments, err = store.DeleteDocumentsOf(ctx, models.MovementParent{MovementID: id}); err != nil {
			return err
		}
		if result.Cells, err = store.DeleteCellsOfMovement(ctx, id); err != nil {
			return err
		}
		if result.Procedures, err = store.DeleteProceduresOfMovement(ctx, id); err != nil {
			return err
		}
		return store.DeleteMovement(ctx, id)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cascade failed")
		return nil, s.translate(err, "movement not found", "delete movement")
	}

	s.metrics.AddCascade("legal_documents", result.CellDocuments+result.MovementDocuments)
	s.metrics.AddCascade("cell_assignments", result.Cells)
	s.metrics.AddCascade("procedure_entries", result.Procedures)
	s.metrics.IncMutation("movement", "delete")
	s.metrics.ObserveDelete(start)
	s.emit(ctx, actionlog.ActionMovementDeleted, subject, id.String())
	return &result, nil
}

// =============================================================================
// Dependents
// =============================================================================

func (s *Service) AddCell(ctx context.Context, movementID domain.MovementID, req *models.CellAssignmentRequest) (*models.CellAssignment, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.CellAssignment(movementID)
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.CreateCell(ctx, &c)
	})
	if err != nil {
		return nil, s.translate(err, "movement not found", "add cell assignment")
	}

	s.metrics.IncMutation("cell_assignment", "create")
	s.emit(ctx, actionlog.ActionCellAssignmentAdded, "", c.ID.String())
	return &c, nil
}

func (s *Service) AddDocument(ctx context.Context, req *models.LegalDocumentRequest) (*models.LegalDocument, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d := req.LegalDocument()
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.CreateDocument(ctx, &d)
	})
	if err != nil {
		missing := "movement not found"
		if d.Parent.Kind() == models.ParentKindCellAssignment {
			missing = "cell assignment not found"
		}
		return nil, s.translate(err, missing, "add legal document")
	}

	s.metrics.IncMutation("legal_document", "create")
	s.emit(ctx, actionlog.ActionDocumentAdded, "", d.ID.String())
	return &d, nil
}

func (s *Service) AddProcedure(ctx context.Context, movementID domain.MovementID, req *models.ProcedureEntryRequest) (*models.ProcedureEntry, error) {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ProcedureEntry(movementID)
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.CreateProcedure(ctx, &p)
	})
	if err != nil {
		return nil, s.translate(err, "movement not found", "add procedure entry")
	}

	s.metrics.IncMutation("procedure_entry", "create")
	s.emit(ctx, actionlog.ActionProcedureEntryAdded, "", p.ID.String())
	return &p, nil
}

func (s *Service) DeleteProcedure(ctx context.Context, id domain.ProcedureEntryID) error {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.DeleteProcedure(ctx, id)
	})
	if err != nil {
		return s.translate(err, "procedure entry not found", "delete procedure entry")
	}
	s.metrics.IncMutation("procedure_entry", "delete")
	s.emit(ctx, actionlog.ActionProcedureEntryDeleted, "", id.String())
	return nil
}

func (s *Service) DeleteDocument(ctx context.Context, id domain.DocumentID) error {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(store Store) error {
		return store.DeleteDocument(ctx, id)
	})
	if err != nil {
		return s.translate(err, "legal document not found", "delete legal document")
	}
	s.metrics.IncMutation("legal_document", "delete")
	s.emit(ctx, actionlog.ActionDocumentDeleted, "", id.String())
	return nil
}

// DeleteCell removes a cell assignment and its documents together.
func (s *Service) DeleteCell(ctx context.Context, id domain.CellAssignmentID) error {
	if err := s.require(ctx, access.LevelWrite); err != nil {
		return err
	}
	err := s.tx.RunInTx(ctx, func(store Store) error {
		if err := store.LockCell(ctx, id); err != nil {
			return err
		}
		if _, err := store.DeleteDocumentsOf(ctx, models.CellParent{CellAssignmentID: id}); err != nil {
			return err
		}
		return store.DeleteCell(ctx, id)
	})
	if err != nil {
		return s.translate(err, "cell assignment not found", "delete cell assignment")
	}
	s.metrics.IncMutation("cell_assignment", "delete")
	s.emit(ctx, actionlog.ActionCellAssignmentDeleted, "", id.String())
	return nil
}

// =============================================================================
// Maintenance
// =============================================================================

// RepairOrphans finds legal documents whose parent row is gone and, unless
// dryRun, deletes them. It is an operator command and bypasses the gate.
func (s *Service) RepairOrphans(ctx context.Context, dryRun bool) (*models.OrphanReport, error) {
	report := models.OrphanReport{DryRun: dryRun}
	err := s.tx.RunInTx(ctx, func(store Store) error {
		orphans, err := store.ListOrphanDocuments(ctx)
		if err != nil {
			return err
		}
		ids := make([]domain.DocumentID, 0, len(orphans))
		for _, d := range orphans {
			ids = append(ids, d.ID)
			switch d.Parent.(type) {
			case models.MovementParent:
				report.MovementDocuments++
			case models.CellParent:
				report.CellDocuments++
			}
		}
		if dryRun || len(ids) == 0 {
			return nil
		}
		_, err = store.DeleteDocumentsByID(ctx, ids)
		return err
	})
	if err != nil {
		return nil, s.translate(err, "", "repair orphans")
	}

	s.logger.InfoContext(ctx, "orphan repair finished",
		"dry_run", dryRun,
		"movement_documents", report.MovementDocuments,
		"cell_documents", report.CellDocuments,
	)
	if !dryRun && report.Total() > 0 {
		s.metrics.AddRepaired(string(models.ParentKindMovement), report.MovementDocuments)
		s.metrics.AddRepaired(string(models.ParentKindCellAssignment), report.CellDocuments)
		s.emit(ctx, actionlog.ActionOrphansRepaired, "", "")
	}
	return &report, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Service) emit(ctx context.Context, action actionlog.Action, subject domain.SubjectID, entityID string) {
	if s.actions == nil {
		return
	}
	s.actions.Emit(ctx, actionlog.Record{
		Action:    action,
		Module:    string(module),
		SubjectID: subject.String(),
		EntityID:  entityID,
	})
}

// translate maps store errors onto domain errors. A timeout raised by the
// unit of work passes through; any other coded error from below the store
// (a corrupt stored date, say) is internal.
func (s *Service) translate(err error, notFound, op string) error {
	switch {
	case dErrors.HasCode(err, dErrors.CodeTimeout):
		return err
	case notFound != "" && (errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrParentMissing)):
		return dErrors.New(dErrors.CodeNotFound, notFound)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, op+" conflicted with a concurrent change")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"custody/internal/custody/models"
	"custody/internal/custody/service"
	"custody/internal/custody/tree"
	"custody/internal/platform/metrics"
	"custody/internal/platform/middleware"
	"custody/internal/reference"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/httputil"
	"custody/pkg/platform/middleware/metadata"
	"custody/pkg/platform/middleware/requesttime"
)

// defaultRequestTimeout applies when New is given no positive timeout.
const defaultRequestTimeout = 30 * time.Second

// Service defines the custody operations exposed over HTTP.
type Service interface {
	ReferenceData(ctx context.Context) (*reference.Dictionaries, error)
	Tree(ctx context.Context, subject domain.SubjectID, order models.Order) (*service.TreeView, error)
	Current(ctx context.Context, subject domain.SubjectID) (*tree.Node, error)
	CreateMovement(ctx context.Context, subject domain.SubjectID, req *models.MovementRequest) (*models.Movement, error)
	UpdateMovement(ctx context.Context, id domain.MovementID, req *models.MovementRequest) (*models.Movement, error)
	DeleteMovement(ctx context.Context, id domain.MovementID) (*models.CascadeResult, error)
	AddCell(ctx context.Context, movementID domain.MovementID, req *models.CellAssignmentRequest) (*models.CellAssignment, error)
	AddDocument(ctx context.Context, req *models.LegalDocumentRequest) (*models.LegalDocument, error)
	AddProcedure(ctx context.Context, movementID domain.MovementID, req *models.ProcedureEntryRequest) (*models.ProcedureEntry, error)
	DeleteProcedure(ctx context.Context, id domain.ProcedureEntryID) error
	DeleteDocument(ctx context.Context, id domain.DocumentID) error
	DeleteCell(ctx context.Context, id domain.CellAssignmentID) error
}

// Handler handles custody movement endpoints.
type Handler struct {
	logger   *slog.Logger
	custody  Service
	metrics  *metrics.Metrics
	resolver middleware.ActorResolver
	timeout  time.Duration
}

// New creates a new custody Handler. requestTimeout bounds every request's
// context.
func New(
	custody Service,
	resolver middleware.ActorResolver,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{
		logger:   logger,
		custody:  custody,
		metrics:  metrics,
		resolver: resolver,
		timeout:  requestTimeout,
	}
}

// Register registers the custody routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	custodyRouter := chi.NewRouter()
	custodyRouter.Use(middleware.Recovery(h.logger))
	custodyRouter.Use(middleware.RequestID)
	custodyRouter.Use(requesttime.Middleware)
	custodyRouter.Use(metadata.ClientMetadata)
	custodyRouter.Use(middleware.Logger(h.logger))
	custodyRouter.Use(middleware.Timeout(h.timeout))
	custodyRouter.Use(middleware.ContentTypeJSON)
	custodyRouter.Use(middleware.LatencyMiddleware(h.metrics))
	custodyRouter.Use(middleware.RequireActor(h.resolver, h.logger))

	custodyRouter.Get("/meta/movements", h.handleReferenceData)
	custodyRouter.Get("/subject/{id}/movements", h.handleListMovements)
	custodyRouter.Get("/subject/{id}/movements/current", h.handleCurrentMovement)
	custodyRouter.Post("/subject/{id}/movements", h.handleCreateMovement)
	custodyRouter.Put("/movements/{id}", h.handleUpdateMovement)
	custodyRouter.Delete("/movements/{id}", h.handleDeleteMovement)
	custodyRouter.Post("/movements/docs", h.handleAddDocument)
	custodyRouter.Post("/movements/{id}/cells", h.handleAddCell)
	custodyRouter.Post("/movements/{id}/up", h.handleAddProcedure)
	custodyRouter.Delete("/procedure/{id}", h.handleDeleteProcedure)
	custodyRouter.Delete("/documents/{id}", h.handleDeleteDocument)
	custodyRouter.Delete("/cells/{id}", h.handleDeleteCell)

	r.Mount("/", custodyRouter)
}

func (h *Handler) handleReferenceData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dicts, err := h.custody.ReferenceData(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to load reference data", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, dicts)
}

// handleListMovements returns the subject's custody tree. ?order=asc gives the
// chronological trail.
func (h *Handler) handleListMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := h.subjectParam(w, r)
	if !ok {
		return
	}
	order, err := models.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view, err := h.custody.Tree(ctx, subject, order)
	if err != nil {
		h.fail(ctx, w, "failed to list movements", err)
		return
	}
	httputil.WriteList(w, view.Movements, view.CanWrite)
}

func (h *Handler) handleCurrentMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject, ok := h.subjectParam(w, r)
	if !ok {
		return
	}
	node, err := h.custody.Current(ctx, subject)
	if err != nil {
		h.fail(ctx, w, "failed to load current movement", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, node)
}

func (h *Handler) handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	subject, ok := h.subjectParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.MovementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	m, err := h.custody.CreateMovement(ctx, subject, req)
	if err != nil {
		h.fail(ctx, w, "failed to create movement", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, m)
}

func (h *Handler) handleUpdateMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id, err := domain.ParseMovementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.MovementRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	m, err := h.custody.UpdateMovement(ctx, id, req)
	if err != nil {
		h.fail(ctx, w, "failed to update movement", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, m)
}

func (h *Handler) handleDeleteMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseMovementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.custody.DeleteMovement(ctx, id)
	if err != nil {
		h.fail(ctx, w, "failed to delete movement", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, result)
}

func (h *Handler) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[models.LegalDocumentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	d, err := h.custody.AddDocument(ctx, req)
	if err != nil {
		h.fail(ctx, w, "failed to add legal document", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, d)
}

func (h *Handler) handleAddCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	movementID, err := domain.ParseMovementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CellAssignmentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.custody.AddCell(ctx, movementID, req)
	if err != nil {
		h.fail(ctx, w, "failed to add cell assignment", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, c)
}

func (h *Handler) handleAddProcedure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	movementID, err := domain.ParseMovementID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ProcedureEntryRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.custody.AddProcedure(ctx, movementID, req)
	if err != nil {
		h.fail(ctx, w, "failed to add procedure entry", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, p)
}

func (h *Handler) handleDeleteProcedure(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseProcedureEntryID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.custody.DeleteProcedure(ctx, id); err != nil {
		h.fail(ctx, w, "failed to delete procedure entry", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseDocumentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.custody.DeleteDocument(ctx, id); err != nil {
		h.fail(ctx, w, "failed to delete legal document", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil)
}

func (h *Handler) handleDeleteCell(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseCellAssignmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.custody.DeleteCell(ctx, id); err != nil {
		h.fail(ctx, w, "failed to delete cell assignment", err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil)
}

func (h *Handler) subjectParam(w http.ResponseWriter, r *http.Request) (domain.SubjectID, bool) {
	subject, err := domain.ParseSubjectID(chi.URLParam(r, "id"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid subject id",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, err)
		return "", false
	}
	return subject, true
}

// fail logs at ERROR for internal failures and WARN for everything the
// caller caused, then writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

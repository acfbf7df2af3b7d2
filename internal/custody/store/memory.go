package store

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"custody/internal/custody/models"
	"custody/internal/reference"
	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
)

// NameFunc resolves a reference id to its display name.
type NameFunc func(kind reference.Kind, id int64) (string, bool)

// InMemory is a movement repository for tests and local runs. It enforces
// the same parent rules as the Postgres schema.
type InMemory struct {
	mu         sync.RWMutex
	movements  map[domain.MovementID]models.Movement
	cells      map[domain.CellAssignmentID]models.CellAssignment
	documents  map[domain.DocumentID]models.LegalDocument
	procedures map[domain.ProcedureEntryID]models.ProcedureEntry
	seq        sequences
	names      NameFunc
}

// Each table has its own sequence, so a movement and a cell assignment can
// share a numeric id just as they can in Postgres.
type sequences struct {
	movement, cell, document, procedure int64
}

type MemoryOption func(*InMemory)

// WithNames sets the resolver used to fill display names on read.
func WithNames(fn NameFunc) MemoryOption {
	return func(s *InMemory) {
		s.names = fn
	}
}

func NewInMemory(opts ...MemoryOption) *InMemory {
	s := &InMemory{
		movements:  make(map[domain.MovementID]models.Movement),
		cells:      make(map[domain.CellAssignmentID]models.CellAssignment),
		documents:  make(map[domain.DocumentID]models.LegalDocument),
		procedures: make(map[domain.ProcedureEntryID]models.ProcedureEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot captures the current state and returns a func that restores it.
func (s *InMemory) Snapshot() func() {
	s.mu.RLock()
	movements := maps.Clone(s.movements)
	cells := maps.Clone(s.cells)
	documents := maps.Clone(s.documents)
	procedures := maps.Clone(s.procedures)
	seq := s.seq
	s.mu.RUnlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.movements, s.cells, s.documents, s.procedures = movements, cells, documents, procedures
		s.seq = seq
	}
}

// =============================================================================
// Reads
// =============================================================================

func (s *InMemory) ListMovements(_ context.Context, subject domain.SubjectID, order models.Order) ([]models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movement, 0)
	for _, m := range s.movements {
		if m.SubjectID == subject {
			out = append(out, s.nameMovement(m))
		}
	}
	slices.SortFunc(out, func(a, b models.Movement) int {
		c := cmp.Or(a.MovedAt.Compare(b.MovedAt), cmp.Compare(a.ID, b.ID))
		if order == models.OrderAsc {
			return c
		}
		return -c
	})
	return out, nil
}

func (s *InMemory) FindMovement(_ context.Context, id domain.MovementID) (*models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movements[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	m = s.nameMovement(m)
	return &m, nil
}

// LockMovement returns the movement's subject. Mutual exclusion comes from
// the unit of work that serializes every in-memory mutation.
func (s *InMemory) LockMovement(_ context.Context, id domain.MovementID) (domain.SubjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movements[id]
	if !ok {
		return "", fmt.Errorf("lock movement: %w", sentinel.ErrNotFound)
	}
	return m.SubjectID, nil
}

func (s *InMemory) LockCell(_ context.Context, id domain.CellAssignmentID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.cells[id]; !ok {
		return fmt.Errorf("lock cell assignment: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) ListCells(_ context.Context, subject domain.SubjectID) ([]models.CellAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CellAssignment, 0)
	for _, c := range s.cells {
		if m, ok := s.movements[c.MovementID]; ok && m.SubjectID == subject {
			out = append(out, s.nameCell(c))
		}
	}
	slices.SortFunc(out, func(a, b models.CellAssignment) int {
		return cmp.Or(a.AssignedAt.Compare(b.AssignedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (s *InMemory) ListDocuments(_ context.Context, subject domain.SubjectID) ([]models.LegalDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LegalDocument, 0)
	for _, d := range s.documents {
		if s.ownerOf(d.Parent) == subject {
			out = append(out, s.nameDocument(d))
		}
	}
	slices.SortFunc(out, func(a, b models.LegalDocument) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *InMemory) ListProcedures(_ context.Context, subject domain.SubjectID) ([]models.ProcedureEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProcedureEntry, 0)
	for _, p := range s.procedures {
		if m, ok := s.movements[p.MovementID]; ok && m.SubjectID == subject {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.ProcedureEntry) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// ownerOf returns the subject owning a document's parent, or "" when the
// parent is gone.
func (s *InMemory) ownerOf(p models.Parent) domain.SubjectID {
	switch p := p.(type) {
	case models.MovementParent:
		return s.movements[p.MovementID].SubjectID
	case models.CellParent:
		c, ok := s.cells[p.CellAssignmentID]
		if !ok {
			return ""
		}
		return s.movements[c.MovementID].SubjectID
	}
	return ""
}

// =============================================================================
// Writes
// =============================================================================

func (s *InMemory) CreateMovement(_ context.Context, m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.movement++
	m.ID = domain.MovementID(s.seq.movement)
	s.movements[m.ID] = stripMovementNames(*m)
	return nil
}

func (s *InMemory) UpdateMovement(_ context.Context, m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.movements[m.ID]
	if !ok {
		return fmt.Errorf("update movement: %w", sentinel.ErrNotFound)
	}
	updated := stripMovementNames(*m)
	updated.SubjectID = existing.SubjectID
	s.movements[m.ID] = updated
	return nil
}

// DeleteMovement refuses while cell assignments or procedure entries still
// reference the movement, like the foreign keys do.
func (s *InMemory) DeleteMovement(_ context.Context, id domain.MovementID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movements[id]; !ok {
		return fmt.Errorf("delete movement: %w", sentinel.ErrNotFound)
	}
	for _, c := range s.cells {
		if c.MovementID == id {
			return fmt.Errorf("delete movement: dependents remain: %w", sentinel.ErrConflict)
		}
	}
	for _, p := range s.procedures {
		if p.MovementID == id {
			return fmt.Errorf("delete movement: dependents remain: %w", sentinel.ErrConflict)
		}
	}
	delete(s.movements, id)
	return nil
}

func (s *InMemory) CreateCell(_ context.Context, c *models.CellAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movements[c.MovementID]; !ok {
		return fmt.Errorf("create cell assignment: %w", sentinel.ErrParentMissing)
	}
	s.seq.cell++
	c.ID = domain.CellAssignmentID(s.seq.cell)
	stored := *c
	stored.MotiveName, stored.SectorName, stored.RegimeName = "", "", ""
	s.cells[c.ID] = stored
	return nil
}

func (s *InMemory) CreateProcedure(_ context.Context, p *models.ProcedureEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movements[p.MovementID]; !ok {
		return fmt.Errorf("create procedure entry: %w", sentinel.ErrParentMissing)
	}
	s.seq.procedure++
	p.ID = domain.ProcedureEntryID(s.seq.procedure)
	s.procedures[p.ID] = *p
	return nil
}

func (s *InMemory) CreateDocument(_ context.Context, d *models.LegalDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.parentExists(d.Parent) {
		return fmt.Errorf("create legal document: %w", sentinel.ErrParentMissing)
	}
	s.seq.document++
	d.ID = domain.DocumentID(s.seq.document)
	stored := *d
	stored.DocumentTypeName, stored.IssuingAuthorityName = "", ""
	s.documents[d.ID] = stored
	return nil
}

func (s *InMemory) parentExists(p models.Parent) bool {
	switch p := p.(type) {
	case models.MovementParent:
		_, ok := s.movements[p.MovementID]
		return ok
	case models.CellParent:
		_, ok := s.cells[p.CellAssignmentID]
		return ok
	}
	return false
}

func (s *InMemory) DeleteCellDocumentsOfMovement(_ context.Context, id domain.MovementID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for docID, d := range s.documents {
		p, ok := d.Parent.(models.CellParent)
		if !ok {
			continue
		}
		if c, ok := s.cells[p.CellAssignmentID]; ok && c.MovementID == id {
			delete(s.documents, docID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) DeleteDocumentsOf(_ context.Context, parent models.Parent) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for docID, d := range s.documents {
		if d.Parent == parent {
			delete(s.documents, docID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) DeleteCellsOfMovement(_ context.Context, id domain.MovementID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for cellID, c := range s.cells {
		if c.MovementID == id {
			delete(s.cells, cellID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) DeleteProceduresOfMovement(_ context.Context, id domain.MovementID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for procID, p := range s.procedures {
		if p.MovementID == id {
			delete(s.procedures, procID)
			n++
		}
	}
	return n, nil
}

func (s *InMemory) DeleteCell(_ context.Context, id domain.CellAssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cells[id]; !ok {
		return fmt.Errorf("delete cell assignment: %w", sentinel.ErrNotFound)
	}
	delete(s.cells, id)
	return nil
}

func (s *InMemory) DeleteDocument(_ context.Context, id domain.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return fmt.Errorf("delete legal document: %w", sentinel.ErrNotFound)
	}
	delete(s.documents, id)
	return nil
}

func (s *InMemory) DeleteProcedure(_ context.Context, id domain.ProcedureEntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.procedures[id]; !ok {
		return fmt.Errorf("delete procedure entry: %w", sentinel.ErrNotFound)
	}
	delete(s.procedures, id)
	return nil
}

// =============================================================================
// Orphans
// =============================================================================

func (s *InMemory) ListOrphanDocuments(_ context.Context) ([]models.LegalDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LegalDocument, 0)
	for _, d := range s.documents {
		if !s.parentExists(d.Parent) {
			out = append(out, models.LegalDocument{ID: d.ID, Parent: d.Parent})
		}
	}
	slices.SortFunc(out, func(a, b models.LegalDocument) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *InMemory) DeleteDocumentsByID(_ context.Context, ids []domain.DocumentID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := s.documents[id]; ok {
			delete(s.documents, id)
			n++
		}
	}
	return n, nil
}

// PutDocument stores d as-is, without the parent check. It exists to seed
// orphaned rows written before the transactional delete.
func (s *InMemory) PutDocument(d models.LegalDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int64(d.ID) > s.seq.document {
		s.seq.document = int64(d.ID)
	}
	s.documents[d.ID] = d
}

// =============================================================================
// Names
// =============================================================================

func (s *InMemory) name(kind reference.Kind, ref models.RefID) string {
	if s.names == nil || !ref.Valid() {
		return ""
	}
	n, _ := s.names(kind, ref.Int64())
	return n
}

func (s *InMemory) nameMovement(m models.Movement) models.Movement {
	m.FacilityName = s.name(reference.KindFacility, m.FacilityID)
	m.CourtName = s.name(reference.KindCourt, m.CourtID)
	m.MovementTypeName = s.name(reference.KindMovementType, m.MovementTypeID)
	m.MotiveName = s.name(reference.KindMotive, m.MotiveID)
	return m
}

func (s *InMemory) nameCell(c models.CellAssignment) models.CellAssignment {
	c.MotiveName = s.name(reference.KindCellMotive, c.MotiveID)
	c.SectorName = s.name(reference.KindSector, c.SectorID)
	c.RegimeName = s.name(reference.KindRegime, c.RegimeID)
	return c
}

func (s *InMemory) nameDocument(d models.LegalDocument) models.LegalDocument {
	d.DocumentTypeName = s.name(reference.KindDocumentType, d.DocumentTypeID)
	d.IssuingAuthorityName = s.name(reference.KindIssuingAuthority, d.IssuingAuthorityID)
	return d
}

func stripMovementNames(m models.Movement) models.Movement {
	m.FacilityName, m.CourtName, m.MovementTypeName, m.MotiveName = "", "", "", ""
	return m
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"custody/internal/custody/models"
	"custody/internal/platform/postgres"
	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
)

// =============================================================================
// Movements
// =============================================================================

func (s *PostgresStore) CreateMovement(ctx context.Context, m *models.Movement) error {
	var id int64
	err := s.q(ctx).QueryRowxContext(ctx, `
		INSERT INTO movements (subject_id, moved_at, facility_id, court_id, movement_type_id, motive_id)
		VALUES ($1, $2::timestamp, $3, $4, $5, $6)
		RETURNING id
	`, m.SubjectID.String(), m.MovedAt.Storage(), m.FacilityID, m.CourtID, m.MovementTypeID, m.MotiveID).Scan(&id)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	m.ID = domain.MovementID(id)
	return nil
}

// UpdateMovement replaces every mutable column. The subject never changes.
func (s *PostgresStore) UpdateMovement(ctx context.Context, m *models.Movement) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE movements
		SET moved_at = $1::timestamp,
			facility_id = $2,
			court_id = $3,
			movement_type_id = $4,
			motive_id = $5
		WHERE id = $6
	`, m.MovedAt.Storage(), m.FacilityID, m.CourtID, m.MovementTypeID, m.MotiveID, int64(m.ID))
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return requireAffected(res, "update movement")
}

// LockMovement takes the movement and its cell assignments FOR UPDATE. A
// concurrent CreateDocument or CreateCell waits for the lock and then finds
// no parent once the cascade has committed.
func (s *PostgresStore) LockMovement(ctx context.Context, id domain.MovementID) (domain.SubjectID, error) {
	var subject string
	err := s.q(ctx).QueryRowxContext(ctx, `SELECT subject_id FROM movements WHERE id = $1 FOR UPDATE`, int64(id)).Scan(&subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("lock movement: %w", sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("lock movement: %w", err)
	}
	if _, err := s.q(ctx).ExecContext(ctx, `
		SELECT id FROM cell_assignments WHERE movement_id = $1 ORDER BY id FOR UPDATE
	`, int64(id)); err != nil {
		return "", fmt.Errorf("lock cell assignments: %w", err)
	}
	return domain.SubjectID(subject), nil
}

func (s *PostgresStore) DeleteMovement(ctx context.Context, id domain.MovementID) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM movements WHERE id = $1`, int64(id))
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete movement: dependents remain: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("delete movement: %w", err)
	}
	return requireAffected(res, "delete movement")
}

// =============================================================================
// Dependents
// =============================================================================

func (s *PostgresStore) CreateCell(ctx context.Context, c *models.CellAssignment) error {
	var id int64
	err := s.q(ctx).QueryRowxContext(ctx, `
		INSERT INTO cell_assignments (movement_id, room, assigned_at, motive_id, sector_id, regime_id)
		VALUES ($1, $2, $3::timestamp, $4, $5, $6)
		RETURNING id
	`, int64(c.MovementID), c.Room, c.AssignedAt.Storage(), c.MotiveID, c.SectorID, c.RegimeID).Scan(&id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("create cell assignment: %w", sentinel.ErrParentMissing)
		}
		return fmt.Errorf("create cell assignment: %w", err)
	}
	c.ID = domain.CellAssignmentID(id)
	return nil
}

func (s *PostgresStore) CreateProcedure(ctx context.Context, p *models.ProcedureEntry) error {
	var id int64
	err := s.q(ctx).QueryRowxContext(ctx, `
		INSERT INTO procedure_entries (movement_id, entry_date, authority_kind)
		VALUES ($1, $2::date, $3)
		RETURNING id
	`, int64(p.MovementID), p.Date.Storage(), string(p.AuthorityKind)).Scan(&id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("create procedure entry: %w", sentinel.ErrParentMissing)
		}
		return fmt.Errorf("create procedure entry: %w", err)
	}
	p.ID = domain.ProcedureEntryID(id)
	return nil
}

// parentTables maps a parent kind to the table its id lives in.
var parentTables = map[models.ParentKind]string{
	models.ParentKindMovement:       "movements",
	models.ParentKindCellAssignment: "cell_assignments",
}

// CreateDocument inserts only when the parent row exists. legal_documents has
// no foreign key (the parent may live in either table), so the existence
// check and the insert are one statement, and the parent row is key-share
// locked until commit.
func (s *PostgresStore) CreateDocument(ctx context.Context, d *models.LegalDocument) error {
	if d.Parent == nil {
		return fmt.Errorf("create legal document: %w", sentinel.ErrParentMissing)
	}
	table, ok := parentTables[d.Parent.Kind()]
	if !ok {
		return fmt.Errorf("create legal document: unknown parent kind %q", d.Parent.Kind())
	}

	var id int64
	err := s.q(ctx).QueryRowxContext(ctx, `
		INSERT INTO legal_documents
			(parent_kind, parent_id, document_type_id, number, issued_on, issuing_authority_id, rationale, executor)
		SELECT $1::text, $2::bigint, $3::bigint, NULLIF($4::text, ''), NULLIF($5::text, '')::date,
			$6::bigint, NULLIF($7::text, ''), NULLIF($8::text, '')
		WHERE EXISTS (SELECT 1 FROM `+table+` WHERE id = $2::bigint FOR KEY SHARE)
		RETURNING id
	`, string(d.Parent.Kind()), d.Parent.RowID(), d.DocumentTypeID, d.Number, d.IssuedOn.Storage(),
		d.IssuingAuthorityID, d.Rationale, d.Executor).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("create legal document: %w", sentinel.ErrParentMissing)
		}
		return fmt.Errorf("create legal document: %w", err)
	}
	d.ID = domain.DocumentID(id)
	return nil
}

// DeleteCellDocumentsOfMovement removes the documents attached to the
// movement's cell assignments.
func (s *PostgresStore) DeleteCellDocumentsOfMovement(ctx context.Context, id domain.MovementID) (int64, error) {
	return s.execCount(ctx, "delete cell documents", `
		DELETE FROM legal_documents
		WHERE parent_kind = 'cell_assignment'
		  AND parent_id IN (SELECT id FROM cell_assignments WHERE movement_id = $1)
	`, int64(id))
}

// DeleteDocumentsOf removes the documents attached directly to parent.
func (s *PostgresStore) DeleteDocumentsOf(ctx context.Context, parent models.Parent) (int64, error) {
	return s.execCount(ctx, "delete documents", `
		DELETE FROM legal_documents WHERE parent_kind = $1 AND parent_id = $2
	`, string(parent.Kind()), parent.RowID())
}

func (s *PostgresStore) DeleteCellsOfMovement(ctx context.Context, id domain.MovementID) (int64, error) {
	return s.execCount(ctx, "delete cell assignments", `DELETE FROM cell_assignments WHERE movement_id = $1`, int64(id))
}

func (s *PostgresStore) DeleteProceduresOfMovement(ctx context.Context, id domain.MovementID) (int64, error) {
	return s.execCount(ctx, "delete procedure entries", `DELETE FROM procedure_entries WHERE movement_id = $1`, int64(id))
}

func (s *PostgresStore) LockCell(ctx context.Context, id domain.CellAssignmentID) error {
	var locked int64
	err := s.q(ctx).QueryRowxContext(ctx, `SELECT id FROM cell_assignments WHERE id = $1 FOR UPDATE`, int64(id)).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lock cell assignment: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("lock cell assignment: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteCell(ctx context.Context, id domain.CellAssignmentID) error {
	return s.deleteByID(ctx, "delete cell assignment", `DELETE FROM cell_assignments WHERE id = $1`, int64(id))
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, id domain.DocumentID) error {
	return s.deleteByID(ctx, "delete legal document", `DELETE FROM legal_documents WHERE id = $1`, int64(id))
}

func (s *PostgresStore) DeleteProcedure(ctx context.Context, id domain.ProcedureEntryID) error {
	return s.deleteByID(ctx, "delete procedure entry", `DELETE FROM procedure_entries WHERE id = $1`, int64(id))
}

// =============================================================================
// Orphans
// =============================================================================

// ListOrphanDocuments returns documents whose parent row is gone.
func (s *PostgresStore) ListOrphanDocuments(ctx context.Context) ([]models.LegalDocument, error) {
	var rows []struct {
		ID         int64  `db:"id"`
		ParentKind string `db:"parent_kind"`
		ParentID   int64  `db:"parent_id"`
	}
	err := s.q(ctx).SelectContext(ctx, &rows, `
		SELECT d.id, d.parent_kind, d.parent_id
		FROM legal_documents d
		WHERE (d.parent_kind = 'movement'
				AND NOT EXISTS (SELECT 1 FROM movements m WHERE m.id = d.parent_id))
		   OR (d.parent_kind = 'cell_assignment'
				AND NOT EXISTS (SELECT 1 FROM cell_assignments ca WHERE ca.id = d.parent_id))
		ORDER BY d.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list orphan documents: %w", err)
	}
	out := make([]models.LegalDocument, 0, len(rows))
	for _, r := range rows {
		parent, err := models.NewParent(models.ParentKind(r.ParentKind), r.ParentID)
		if err != nil {
			return nil, fmt.Errorf("orphan document %d: %w", r.ID, err)
		}
		out = append(out, models.LegalDocument{ID: domain.DocumentID(r.ID), Parent: parent})
	}
	return out, nil
}

func (s *PostgresStore) DeleteDocumentsByID(ctx context.Context, ids []domain.DocumentID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	query, args, err := sqlx.In(`DELETE FROM legal_documents WHERE id IN (?)`, raw)
	if err != nil {
		return 0, fmt.Errorf("delete documents by id: %w", err)
	}
	return s.execCount(ctx, "delete documents by id", s.q(ctx).Rebind(query), args...)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *PostgresStore) execCount(ctx context.Context, op, query string, args ...any) (int64, error) {
	res, err := s.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *PostgresStore) deleteByID(ctx context.Context, op, query string, id int64) error {
	res, err := s.q(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return requireAffected(res, op)
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}

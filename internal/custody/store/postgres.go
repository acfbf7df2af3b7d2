package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"custody/internal/custody/models"
	"custody/internal/temporal"
	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
	txctx "custody/pkg/platform/tx"
)

// Timestamps are read back through to_char so no driver ever turns them into
// a time.Time.
const (
	storageDateTime = `'YYYY-MM-DD HH24:MI:SS'`
	storageDate     = `'YYYY-MM-DD'`
)

// PostgresStore is the movement repository over sqlx. A store built with
// NewPostgresFromTx runs every statement on that transaction.
type PostgresStore struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresFromTx binds a store to an open transaction.
func NewPostgresFromTx(tx *sqlx.Tx) *PostgresStore {
	return &PostgresStore{tx: tx}
}

func (s *PostgresStore) q(ctx context.Context) txctx.Querier {
	if s.tx != nil {
		return s.tx
	}
	return txctx.Pick(ctx, s.db)
}

// =============================================================================
// Rows
// =============================================================================

type movementRow struct {
	ID               int64        `db:"id"`
	SubjectID        string       `db:"subject_id"`
	MovedAt          string       `db:"moved_at"`
	FacilityID       models.RefID `db:"facility_id"`
	FacilityName     string       `db:"facility_name"`
	CourtID          models.RefID `db:"court_id"`
	CourtName        string       `db:"court_name"`
	MovementTypeID   models.RefID `db:"movement_type_id"`
	MovementTypeName string       `db:"movement_type_name"`
	MotiveID         models.RefID `db:"motive_id"`
	MotiveName       string       `db:"motive_name"`
}

func (r movementRow) toModel() (models.Movement, error) {
	movedAt, err := temporal.Parse(r.MovedAt, temporal.DateTime)
	if err != nil {
		return models.Movement{}, fmt.Errorf("movement %d: moved_at %q: %w", r.ID, r.MovedAt, err)
	}
	return models.Movement{
		ID:               domain.MovementID(r.ID),
		SubjectID:        domain.SubjectID(r.SubjectID),
		MovedAt:          movedAt,
		FacilityID:       r.FacilityID,
		FacilityName:     r.FacilityName,
		CourtID:          r.CourtID,
		CourtName:        r.CourtName,
		MovementTypeID:   r.MovementTypeID,
		MovementTypeName: r.MovementTypeName,
		MotiveID:         r.MotiveID,
		MotiveName:       r.MotiveName,
	}, nil
}

type cellRow struct {
	ID         int64        `db:"id"`
	MovementID int64        `db:"movement_id"`
	Room       string       `db:"room"`
	AssignedAt string       `db:"assigned_at"`
	MotiveID   models.RefID `db:"motive_id"`
	MotiveName string       `db:"motive_name"`
	SectorID   models.RefID `db:"sector_id"`
	SectorName string       `db:"sector_name"`
	RegimeID   models.RefID `db:"regime_id"`
	RegimeName string       `db:"regime_name"`
}

func (r cellRow) toModel() (models.CellAssignment, error) {
	assignedAt, err := temporal.Parse(r.AssignedAt, temporal.DateTime)
	if err != nil {
		return models.CellAssignment{}, fmt.Errorf("cell assignment %d: assigned_at %q: %w", r.ID, r.AssignedAt, err)
	}
	return models.CellAssignment{
		ID:         domain.CellAssignmentID(r.ID),
		MovementID: domain.MovementID(r.MovementID),
		Room:       r.Room,
		AssignedAt: assignedAt,
		MotiveID:   r.MotiveID,
		MotiveName: r.MotiveName,
		SectorID:   r.SectorID,
		SectorName: r.SectorName,
		RegimeID:   r.RegimeID,
		RegimeName: r.RegimeName,
	}, nil
}

type documentRow struct {
	ID                   int64        `db:"id"`
	ParentKind           string       `db:"parent_kind"`
	ParentID             int64        `db:"parent_id"`
	DocumentTypeID       models.RefID `db:"document_type_id"`
	DocumentTypeName     string       `db:"document_type_name"`
	Number               string       `db:"number"`
	IssuedOn             string       `db:"issued_on"`
	IssuingAuthorityID   models.RefID `db:"issuing_authority_id"`
	IssuingAuthorityName string       `db:"issuing_authority_name"`
	Rationale            string       `db:"rationale"`
	Executor             string       `db:"executor"`
}

func (r documentRow) toModel() (models.LegalDocument, error) {
	parent, err := models.NewParent(models.ParentKind(r.ParentKind), r.ParentID)
	if err != nil {
		return models.LegalDocument{}, fmt.Errorf("legal document %d: %w", r.ID, err)
	}
	var issuedOn temporal.Value
	if r.IssuedOn != "" {
		if issuedOn, err = temporal.Parse(r.IssuedOn, temporal.Date); err != nil {
			return models.LegalDocument{}, fmt.Errorf("legal document %d: issued_on %q: %w", r.ID, r.IssuedOn, err)
		}
	}
	return models.LegalDocument{
		ID:                   domain.DocumentID(r.ID),
		Parent:               parent,
		DocumentTypeID:       r.DocumentTypeID,
		DocumentTypeName:     r.DocumentTypeName,
		Number:               r.Number,
		IssuedOn:             issuedOn,
		IssuingAuthorityID:   r.IssuingAuthorityID,
		IssuingAuthorityName: r.IssuingAuthorityName,
		Rationale:            r.Rationale,
		Executor:             r.Executor,
	}, nil
}

type procedureRow struct {
	ID            int64  `db:"id"`
	MovementID    int64  `db:"movement_id"`
	EntryDate     string `db:"entry_date"`
	AuthorityKind string `db:"authority_kind"`
}

func (r procedureRow) toModel() (models.ProcedureEntry, error) {
	date, err := temporal.Parse(r.EntryDate, temporal.Date)
	if err != nil {
		return models.ProcedureEntry{}, fmt.Errorf("procedure entry %d: entry_date %q: %w", r.ID, r.EntryDate, err)
	}
	return models.ProcedureEntry{
		ID:            domain.ProcedureEntryID(r.ID),
		MovementID:    domain.MovementID(r.MovementID),
		Date:          date,
		AuthorityKind: models.AuthorityKind(r.AuthorityKind),
	}, nil
}

func convert[R any, M any](rows []R, fn func(R) (M, error)) ([]M, error) {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		m, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// =============================================================================
// Reads
// =============================================================================

const movementSelect = `
SELECT m.id, m.subject_id, to_char(m.moved_at, ` + storageDateTime + `) AS moved_at,
	m.facility_id, COALESCE(f.name, '') AS facility_name,
	m.court_id, COALESCE(c.name, '') AS court_name,
	m.movement_type_id, COALESCE(t.name, '') AS movement_type_name,
	m.motive_id, COALESCE(mo.name, '') AS motive_name
FROM movements m
LEFT JOIN reference_items f ON f.kind = 'facility' AND f.id = m.facility_id
LEFT JOIN reference_items c ON c.kind = 'court' AND c.id = m.court_id
LEFT JOIN reference_items t ON t.kind = 'movement_type' AND t.id = m.movement_type_id
LEFT JOIN reference_items mo ON mo.kind = 'motive' AND mo.id = m.motive_id`

// ListMovements returns the subject's movements, newest first for OrderDesc.
func (s *PostgresStore) ListMovements(ctx context.Context, subject domain.SubjectID, order models.Order) ([]models.Movement, error) {
	direction := "DESC"
	if order == models.OrderAsc {
		direction = "ASC"
	}
	query := movementSelect + `
		WHERE m.subject_id = $1
		ORDER BY m.moved_at ` + direction + `, m.id ` + direction

	var rows []movementRow
	if err := s.q(ctx).SelectContext(ctx, &rows, query, subject.String()); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return convert(rows, movementRow.toModel)
}

func (s *PostgresStore) FindMovement(ctx context.Context, id domain.MovementID) (*models.Movement, error) {
	var row movementRow
	err := s.q(ctx).GetContext(ctx, &row, movementSelect+` WHERE m.id = $1`, int64(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find movement: %w", err)
	}
	m, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) ListCells(ctx context.Context, subject domain.SubjectID) ([]models.CellAssignment, error) {
	query := `
		SELECT ca.id, ca.movement_id, ca.room,
			to_char(ca.assigned_at, ` + storageDateTime + `) AS assigned_at,
			ca.motive_id, COALESCE(mo.name, '') AS motive_name,
			ca.sector_id, COALESCE(se.name, '') AS sector_name,
			ca.regime_id, COALESCE(re.name, '') AS regime_name
		FROM cell_assignments ca
		JOIN movements m ON m.id = ca.movement_id
		LEFT JOIN reference_items mo ON mo.kind = 'cell_motive' AND mo.id = ca.motive_id
		LEFT JOIN reference_items se ON se.kind = 'sector' AND se.id = ca.sector_id
		LEFT JOIN reference_items re ON re.kind = 'regime' AND re.id = ca.regime_id
		WHERE m.subject_id = $1
		ORDER BY ca.assigned_at, ca.id`

	var rows []cellRow
	if err := s.q(ctx).SelectContext(ctx, &rows, query, subject.String()); err != nil {
		return nil, fmt.Errorf("list cell assignments: %w", err)
	}
	return convert(rows, cellRow.toModel)
}

// ListDocuments fetches the documents of the subject's movements and cell
// assignments in one query, keyed by parent_kind.
func (s *PostgresStore) ListDocuments(ctx context.Context, subject domain.SubjectID) ([]models.LegalDocument, error) {
	query := `
		SELECT d.id, d.parent_kind, d.parent_id,
			d.document_type_id, COALESCE(dt.name, '') AS document_type_name,
			COALESCE(d.number, '') AS number,
			COALESCE(to_char(d.issued_on, ` + storageDate + `), '') AS issued_on,
			d.issuing_authority_id, COALESCE(ia.name, '') AS issuing_authority_name,
			COALESCE(d.rationale, '') AS rationale,
			COALESCE(d.executor, '') AS executor
		FROM legal_documents d
		LEFT JOIN reference_items dt ON dt.kind = 'document_type' AND dt.id = d.document_type_id
		LEFT JOIN reference_items ia ON ia.kind = 'issuing_authority' AND ia.id = d.issuing_authority_id
		WHERE (d.parent_kind = 'movement' AND d.parent_id IN (
				SELECT id FROM movements WHERE subject_id = $1))
		   OR (d.parent_kind = 'cell_assignment' AND d.parent_id IN (
				SELECT ca.id FROM cell_assignments ca
				JOIN movements m ON m.id = ca.movement_id
				WHERE m.subject_id = $1))
		ORDER BY d.id`

	var rows []documentRow
	if err := s.q(ctx).SelectContext(ctx, &rows, query, subject.String()); err != nil {
		return nil, fmt.Errorf("list legal documents: %w", err)
	}
	return convert(rows, documentRow.toModel)
}

func (s *PostgresStore) ListProcedures(ctx context.Context, subject domain.SubjectID) ([]models.ProcedureEntry, error) {
	query := `
		SELECT pe.id, pe.movement_id,
			to_char(pe.entry_date, ` + storageDate + `) AS entry_date,
			pe.authority_kind
		FROM procedure_entries pe
		JOIN movements m ON m.id = pe.movement_id
		WHERE m.subject_id = $1
		ORDER BY pe.entry_date, pe.id`

	var rows []procedureRow
	if err := s.q(ctx).SelectContext(ctx, &rows, query, subject.String()); err != nil {
		return nil, fmt.Errorf("list procedure entries: %w", err)
	}
	return convert(rows, procedureRow.toModel)
}

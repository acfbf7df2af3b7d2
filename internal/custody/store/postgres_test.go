package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custody/internal/custody/models"
	"custody/internal/temporal"
	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
	txctx "custody/pkg/platform/tx"
)

func newMockStore(t *testing.T) (*PostgresStore, *sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	db := sqlx.NewDb(raw, "postgres")
	return NewPostgres(db), db, mock
}

var movementCols = []string{
	"id", "subject_id", "moved_at",
	"facility_id", "facility_name", "court_id", "court_name",
	"movement_type_id", "movement_type_name", "motive_id", "motive_name",
}

// =============================================================================
// Reads
// =============================================================================

// Justification: stored timestamps come back as text and must convert to
// the display form without shifting.
func TestListMovementsConvertsRows(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`FROM movements m .*WHERE m.subject_id = \$1\s+ORDER BY m.moved_at DESC, m.id DESC`).
		WithArgs("2001ABCD").
		WillReturnRows(sqlmock.NewRows(movementCols).
			AddRow(int64(2), "2001ABCD", "2024-03-04 08:30:00", int64(5), "Central", nil, "", nil, "", int64(3), "Hearing").
			AddRow(int64(1), "2001ABCD", "2024-03-01 10:00:00", nil, "", int64(9), "District Court", nil, "", nil, ""))

	got, err := s.ListMovements(context.Background(), "2001ABCD", models.OrderDesc)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.MovementID(2), got[0].ID)
	assert.Equal(t, "04.03.2024 08:30:00", got[0].MovedAt.Display())
	assert.Equal(t, models.Ref(5), got[0].FacilityID)
	assert.Equal(t, "Central", got[0].FacilityName)
	assert.False(t, got[0].CourtID.Valid())
	assert.Equal(t, "01.03.2024 10:00:00", got[1].MovedAt.Display())
	assert.Equal(t, "District Court", got[1].CourtName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovementsAscending(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`ORDER BY m.moved_at ASC, m.id ASC`).
		WithArgs("2001ABCD").
		WillReturnRows(sqlmock.NewRows(movementCols))

	got, err := s.ListMovements(context.Background(), "2001ABCD", models.OrderAsc)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovementsRejectsCorruptTimestamp(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`FROM movements m`).
		WillReturnRows(sqlmock.NewRows(movementCols).
			AddRow(int64(1), "2001ABCD", "garbage", nil, "", nil, "", nil, "", nil, ""))

	_, err := s.ListMovements(context.Background(), "2001ABCD", models.OrderDesc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "movement 1")
}

func TestFindMovementNotFound(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`WHERE m.id = \$1`).WithArgs(int64(4)).WillReturnRows(sqlmock.NewRows(movementCols))

	_, err := s.FindMovement(context.Background(), 4)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

// Justification: the cascade must hold the movement and every cell under it
// FOR UPDATE, which blocks the key-share lock a document insert takes.
func TestLockMovementLocksMovementAndCells(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT subject_id FROM movements WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id"}).AddRow("2001ABCD"))
	mock.ExpectExec(`SELECT id FROM cell_assignments WHERE movement_id = \$1 ORDER BY id FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	subject, err := s.LockMovement(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectID("2001ABCD"), subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockMovementNotFound(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`FROM movements WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id"}))

	_, err := s.LockMovement(context.Background(), 7)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockCell(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT id FROM cell_assignments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT id FROM cell_assignments WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	require.NoError(t, s.LockCell(context.Background(), 3))
	assert.ErrorIs(t, s.LockCell(context.Background(), 4), sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Justification: documents of both parent kinds come from one query and keep
// their discriminator.
func TestListDocumentsSingleQueryByKind(t *testing.T) {
	s, _, mock := newMockStore(t)
	cols := []string{
		"id", "parent_kind", "parent_id", "document_type_id", "document_type_name", "number",
		"issued_on", "issuing_authority_id", "issuing_authority_name", "rationale", "executor",
	}
	mock.ExpectQuery(`FROM legal_documents d .*d.parent_kind = 'movement'.*d.parent_kind = 'cell_assignment'`).
		WithArgs("2001ABCD").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "movement", int64(7), int64(2), "Ruling", "K-1", "2024-03-02", nil, "", "", "").
			AddRow(int64(2), "cell_assignment", int64(7), nil, "", "", "", nil, "", "transfer", "Officer B"))

	got, err := s.ListDocuments(context.Background(), "2001ABCD")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.MovementParent{MovementID: 7}, got[0].Parent)
	assert.Equal(t, "02.03.2024", got[0].IssuedOn.Display())
	assert.Equal(t, models.CellParent{CellAssignmentID: 7}, got[1].Parent)
	assert.True(t, got[1].IssuedOn.IsZero())
	assert.Equal(t, "Officer B", got[1].Executor)
}

func TestListCellsAndProcedures(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`FROM cell_assignments ca`).
		WithArgs("2001ABCD").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "movement_id", "room", "assigned_at", "motive_id", "motive_name",
			"sector_id", "sector_name", "regime_id", "regime_name",
		}).AddRow(int64(3), int64(1), "204", "2024-03-02 09:00:00", nil, "", int64(1), "North", nil, ""))
	mock.ExpectQuery(`FROM procedure_entries pe`).
		WithArgs("2001ABCD").
		WillReturnRows(sqlmock.NewRows([]string{"id", "movement_id", "entry_date", "authority_kind"}).
			AddRow(int64(8), int64(1), "2024-03-05", "prosecution"))

	cells, err := s.ListCells(context.Background(), "2001ABCD")
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, "02.03.2024 09:00:00", cells[0].AssignedAt.Display())
	assert.Equal(t, "North", cells[0].SectorName)

	procs, err := s.ListProcedures(context.Background(), "2001ABCD")
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, "05.03.2024", procs[0].Date.Display())
	assert.Equal(t, models.AuthorityProsecution, procs[0].AuthorityKind)
}

// =============================================================================
// Writes
// =============================================================================

func TestCreateMovementWritesStorageFormAndNulls(t *testing.T) {
	s, _, mock := newMockStore(t)
	m := &models.Movement{
		SubjectID:  "2001ABCD",
		MovedAt:    temporal.MustParse("01.03.2024 10:00:00", temporal.DateTime),
		FacilityID: models.Ref(5),
	}
	mock.ExpectQuery(`INSERT INTO movements`).
		WithArgs("2001ABCD", "2024-03-01 10:00:00", int64(5), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	require.NoError(t, s.CreateMovement(context.Background(), m))
	assert.Equal(t, domain.MovementID(11), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMovementMissingRow(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectExec(`UPDATE movements`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateMovement(context.Background(), &models.Movement{
		ID:      99,
		MovedAt: temporal.MustParse("01.03.2024 10:00:00", temporal.DateTime),
	})
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCreateCellForeignKeyIsParentMissing(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`INSERT INTO cell_assignments`).WillReturnError(&pq.Error{Code: "23503"})

	err := s.CreateCell(context.Background(), &models.CellAssignment{
		MovementID: 42,
		Room:       "204",
		AssignedAt: temporal.MustParse("02.03.2024 09:00:00", temporal.DateTime),
	})
	assert.ErrorIs(t, err, sentinel.ErrParentMissing)
}

func TestCreateProcedureForeignKeyIsParentMissing(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`INSERT INTO procedure_entries`).WillReturnError(&pq.Error{Code: "23503"})

	err := s.CreateProcedure(context.Background(), &models.ProcedureEntry{
		MovementID:    42,
		Date:          temporal.MustParse("05.03.2024", temporal.Date),
		AuthorityKind: models.AuthorityProsecution,
	})
	assert.ErrorIs(t, err, sentinel.ErrParentMissing)
}

// Justification: the document insert checks its parent in the same
// statement, against the table the parent kind names.
func TestCreateDocumentChecksParentTable(t *testing.T) {
	t.Run("cell parent present", func(t *testing.T) {
		s, _, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO legal_documents .*WHERE EXISTS \(SELECT 1 FROM cell_assignments WHERE id = \$2::bigint FOR KEY SHARE\)`).
			WithArgs("cell_assignment", int64(3), nil, "K-1", "2024-03-02", nil, "", "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

		d := &models.LegalDocument{
			Parent:   models.CellParent{CellAssignmentID: 3},
			Number:   "K-1",
			IssuedOn: temporal.MustParse("02.03.2024", temporal.Date),
		}
		require.NoError(t, s.CreateDocument(context.Background(), d))
		assert.Equal(t, domain.DocumentID(12), d.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing parent", func(t *testing.T) {
		s, _, mock := newMockStore(t)
		mock.ExpectQuery(`FROM movements WHERE id = \$2::bigint`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := s.CreateDocument(context.Background(), &models.LegalDocument{Parent: models.MovementParent{MovementID: 77}})
		assert.ErrorIs(t, err, sentinel.ErrParentMissing)
	})

	t.Run("nil parent", func(t *testing.T) {
		s, _, _ := newMockStore(t)
		err := s.CreateDocument(context.Background(), &models.LegalDocument{})
		assert.ErrorIs(t, err, sentinel.ErrParentMissing)
	})
}

func TestCascadeStatements(t *testing.T) {
	s, _, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM legal_documents\s+WHERE parent_kind = 'cell_assignment'`).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM legal_documents WHERE parent_kind = \$1 AND parent_id = \$2`).
		WithArgs("movement", int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cell_assignments WHERE movement_id = \$1`).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM procedure_entries WHERE movement_id = \$1`).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM movements WHERE id = \$1`).
		WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := s.DeleteCellDocumentsOfMovement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = s.DeleteDocumentsOf(ctx, models.MovementParent{MovementID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.DeleteCellsOfMovement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = s.DeleteProceduresOfMovement(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, s.DeleteMovement(ctx, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMovementWithDependentsIsConflict(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM movements`).WillReturnError(&pq.Error{Code: "23503"})

	err := s.DeleteMovement(context.Background(), 1)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestDeleteByIDNotFound(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectExec(`DELETE FROM procedure_entries WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM legal_documents WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM cell_assignments WHERE id = \$1`).WillReturnError(errors.New("conn reset"))

	assert.ErrorIs(t, s.DeleteProcedure(context.Background(), 5), sentinel.ErrNotFound)
	assert.ErrorIs(t, s.DeleteDocument(context.Background(), 5), sentinel.ErrNotFound)
	err := s.DeleteCell(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)
}

// =============================================================================
// Orphans
// =============================================================================

func TestOrphanDocuments(t *testing.T) {
	s, _, mock := newMockStore(t)
	mock.ExpectQuery(`NOT EXISTS \(SELECT 1 FROM movements m`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_kind", "parent_id"}).
			AddRow(int64(4), "movement", int64(1)).
			AddRow(int64(9), "cell_assignment", int64(2)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM legal_documents WHERE id IN ($1, $2)`)).
		WithArgs(int64(4), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	orphans, err := s.ListOrphanDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	assert.Equal(t, models.CellParent{CellAssignmentID: 2}, orphans[1].Parent)

	n, err := s.DeleteDocumentsByID(context.Background(), []domain.DocumentID{orphans[0].ID, orphans[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.DeleteDocumentsByID(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =============================================================================
// Transactions
// =============================================================================

func TestStatementsFollowBoundTransaction(t *testing.T) {
	_, db, mock := newMockStore(t)

	mock.ExpectBegin()
	tx, err := db.Beginx()
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM procedure_entries WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM legal_documents WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	require.NoError(t, NewPostgresFromTx(tx).DeleteProcedure(context.Background(), 1))
	ctx := txctx.WithTx(context.Background(), tx)
	require.NoError(t, NewPostgres(db).DeleteDocument(ctx, 1))
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

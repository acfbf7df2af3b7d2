package reference

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Store lists every reference row.
type Store interface {
	ListRows(ctx context.Context) ([]Row, error)
}

// PostgresStore reads the reference_items table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListRows(ctx context.Context) ([]Row, error) {
	var rows []Row
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT kind, id, name FROM reference_items ORDER BY kind, name, id`,
	); err != nil {
		return nil, fmt.Errorf("list reference items: %w", err)
	}
	return rows, nil
}

// InMemoryStore is a fixed set of rows for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows []Row
}

func NewInMemoryStore(rows ...Row) *InMemoryStore {
	return &InMemoryStore{rows: rows}
}

func (s *InMemoryStore) Add(rows ...Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}

func (s *InMemoryStore) ListRows(context.Context) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]Row(nil), s.rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Name returns the display name for (kind, id), if present.
func (s *InMemoryStore) Name(kind Kind, id int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if r.Kind == kind && r.ID == id {
			return r.Name, true
		}
	}
	return "", false
}

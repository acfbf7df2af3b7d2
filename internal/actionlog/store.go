package actionlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// PostgresStore appends to action_log.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, e Entry) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO action_log
			(id, actor_id, action, module, subject_id, entity_id, request_id, client_ip, device, created_at)
		VALUES
			(:id, :actor_id, :action, :module, NULLIF(:subject_id, ''), NULLIF(:entity_id, ''),
			 :request_id, :client_ip, :device, :created_at)
	`, e)
	if err != nil {
		return fmt.Errorf("append action log: %w", err)
	}
	return nil
}

// InMemoryStore keeps entries for tests.
type InMemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of everything appended so far.
func (s *InMemoryStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

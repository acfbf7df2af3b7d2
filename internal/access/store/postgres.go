package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"custody/internal/access"
	"custody/pkg/platform/sentinel"
)

// PostgresStore reads actor_permissions through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Lookup(ctx context.Context, actorID string, module access.Module) (access.Level, error) {
	var level string
	err := s.pool.QueryRow(ctx,
		`SELECT level FROM actor_permissions WHERE actor_id = $1 AND module = $2`,
		actorID, string(module),
	).Scan(&level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return access.LevelNone, sentinel.ErrNotFound
		}
		return access.LevelNone, fmt.Errorf("lookup permission: %w", err)
	}
	return access.ParseLevel(level), nil
}

// Grant upserts the actor's level. LevelNone deletes the entry.
func (s *PostgresStore) Grant(ctx context.Context, actorID string, module access.Module, level access.Level) error {
	if level == access.LevelNone {
		if _, err := s.pool.Exec(ctx,
			`DELETE FROM actor_permissions WHERE actor_id = $1 AND module = $2`,
			actorID, string(module),
		); err != nil {
			return fmt.Errorf("revoke permission: %w", err)
		}
		return nil
	}
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO actor_permissions (actor_id, module, level)
		VALUES ($1, $2, $3)
		ON CONFLICT (actor_id, module) DO UPDATE SET level = EXCLUDED.level
	`, actorID, string(module), level.String()); err != nil {
		return fmt.Errorf("grant permission: %w", err)
	}
	return nil
}

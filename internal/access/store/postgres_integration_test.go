//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"custody/internal/access"
	"custody/internal/access/store"
	"custody/pkg/platform/sentinel"
	"custody/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	pool     *pgxpool.Pool
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	pool, err := pgxpool.New(context.Background(), s.postgres.URL)
	s.Require().NoError(err)
	s.pool = pool
	s.store = store.NewPostgres(pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.pool.Close()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "actor_permissions"))
}

func (s *PostgresStoreSuite) TestGrantLookupRevoke() {
	ctx := context.Background()

	_, err := s.store.Lookup(ctx, "officer-7", access.ModuleMovements)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.Grant(ctx, "officer-7", access.ModuleMovements, access.LevelRead))
	s.Require().NoError(s.store.Grant(ctx, "officer-7", access.ModuleMovements, access.LevelWrite))

	level, err := s.store.Lookup(ctx, "officer-7", access.ModuleMovements)
	s.Require().NoError(err)
	s.Equal(access.LevelWrite, level)

	s.Require().NoError(s.store.Grant(ctx, "officer-7", access.ModuleMovements, access.LevelNone))
	_, err = s.store.Lookup(ctx, "officer-7", access.ModuleMovements)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

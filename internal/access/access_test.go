package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"custody/internal/access"
	"custody/internal/access/store"
	"custody/internal/platform/logger"
	dErrors "custody/pkg/domain-errors"
)

type failingStore struct{}

func (failingStore) Lookup(context.Context, string, access.Module) (access.Level, error) {
	return access.LevelWrite, errors.New("connection reset")
}

type GateSuite struct {
	suite.Suite
	ctx     context.Context
	perms   *store.InMemory
	metrics *access.Metrics
	gate    *access.Gate
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(GateSuite))
}

func (s *GateSuite) SetupTest() {
	s.ctx = context.Background()
	s.perms = store.NewInMemory()
	s.perms.Grant("reader", access.ModuleMovements, access.LevelRead)
	s.perms.Grant("writer", access.ModuleMovements, access.LevelWrite)
	s.metrics = access.NewMetrics(prometheus.NewRegistry())
	s.gate = access.NewGate(s.perms, access.WithLogger(logger.Discard()), access.WithMetrics(s.metrics))
}

// =============================================================================
// Level semantics
// =============================================================================

// Justification: write must imply read, and read must never imply write.
func (s *GateSuite) TestLevelLattice() {
	cases := []struct {
		actor    string
		required access.Level
		want     bool
	}{
		{"reader", access.LevelRead, true},
		{"reader", access.LevelWrite, false},
		{"writer", access.LevelRead, true},
		{"writer", access.LevelWrite, true},
		{"stranger", access.LevelRead, false},
		{"", access.LevelRead, false},
	}
	for _, tc := range cases {
		s.Run(tc.actor+"/"+tc.required.String(), func() {
			s.Equal(tc.want, s.gate.Check(s.ctx, tc.actor, access.ModuleMovements, tc.required))
		})
	}
}

func (s *GateSuite) TestPermissionsAreScopedPerModule() {
	s.False(s.gate.Check(s.ctx, "writer", access.Module("medical"), access.LevelRead))
}

// =============================================================================
// Fail closed
// =============================================================================

// Justification: an unreachable permission store must deny, even if the
// store hands back a level alongside its error.
func (s *GateSuite) TestStoreFailureDenies() {
	gate := access.NewGate(failingStore{}, access.WithLogger(logger.Discard()))
	s.False(gate.Check(s.ctx, "writer", access.ModuleMovements, access.LevelRead))
	s.Equal(access.LevelNone, gate.LevelFor(s.ctx, "writer", access.ModuleMovements))
}

func (s *GateSuite) TestRevokedGrantDenies() {
	s.perms.Grant("writer", access.ModuleMovements, access.LevelNone)
	s.False(s.gate.Check(s.ctx, "writer", access.ModuleMovements, access.LevelRead))
}

// =============================================================================
// Require
// =============================================================================

func (s *GateSuite) TestRequire() {
	s.Run("missing actor is unauthorized", func() {
		err := s.gate.Require(s.ctx, " ", access.ModuleMovements, access.LevelRead)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("insufficient level is forbidden", func() {
		err := s.gate.Require(s.ctx, "reader", access.ModuleMovements, access.LevelWrite)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), "write permission required for movements")
	})

	s.Run("sufficient level passes", func() {
		s.NoError(s.gate.Require(s.ctx, "writer", access.ModuleMovements, access.LevelWrite))
	})

	s.Equal(float64(2), promtestutil.ToFloat64(s.metrics.Denied.WithLabelValues("movements", "write"))+
		promtestutil.ToFloat64(s.metrics.Denied.WithLabelValues("movements", "read")))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, access.LevelRead, access.ParseLevel("READ"))
	assert.Equal(t, access.LevelWrite, access.ParseLevel(" write "))
	assert.Equal(t, access.LevelNone, access.ParseLevel("admin"))
	assert.Equal(t, access.LevelNone, access.ParseLevel(""))
	require.True(t, access.LevelNone.Satisfies(access.LevelNone))
}

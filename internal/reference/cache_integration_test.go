//go:build integration

package reference_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"custody/internal/platform/logger"
	"custody/internal/reference"
	"custody/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// Justification: the dictionaries are served from Redis until invalidated, so
// rows added to the store stay invisible until then.
func (s *RedisCacheSuite) TestDictionariesServedFromRedisUntilInvalidated() {
	ctx := context.Background()
	rows := reference.NewInMemoryStore(reference.Row{Kind: reference.KindFacility, ID: 1, Name: "Central Remand"})
	cache := reference.NewCache(ctx, s.redis.Client)
	s.IsType(&reference.RedisCache{}, cache)

	svc := reference.NewService(rows, cache, reference.WithLogger(logger.Discard()), reference.WithTTL(time.Minute))

	first, err := svc.Dictionaries(ctx)
	s.Require().NoError(err)
	s.Len(first.Facilities, 1)

	rows.Add(reference.Row{Kind: reference.KindFacility, ID: 2, Name: "North Annex"})

	s.Run("cached copy is served", func() {
		got, err := svc.Dictionaries(ctx)
		s.Require().NoError(err)
		s.Len(got.Facilities, 1)
	})

	s.Run("invalidate reloads from the store", func() {
		s.Require().NoError(svc.Invalidate(ctx))
		got, err := svc.Dictionaries(ctx)
		s.Require().NoError(err)
		s.Len(got.Facilities, 2)
	})
}

func (s *RedisCacheSuite) TestEntryExpires() {
	ctx := context.Background()
	cache := reference.NewRedisCache(s.redis.Client)

	s.Require().NoError(cache.Set(ctx, "k", "v", time.Second))
	got, err := cache.Get(ctx, "k")
	s.Require().NoError(err)
	s.Equal("v", got)

	s.Eventually(func() bool {
		_, err := cache.Get(ctx, "k")
		return err == reference.ErrCacheMiss
	}, 5*time.Second, 100*time.Millisecond)
}

package reference

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"custody/internal/platform/logger"
	dErrors "custody/pkg/domain-errors"
)

type countingStore struct {
	rows  []Row
	err   error
	calls atomic.Int32
	delay time.Duration
}

func (c *countingStore) ListRows(context.Context) ([]Row, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.rows, c.err
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, error) { return "", errors.New("READONLY") }
func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("READONLY")
}
func (brokenCache) Del(context.Context, string) error { return nil }

type ServiceSuite struct {
	suite.Suite
	ctx   context.Context
	store *countingStore
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = &countingStore{rows: []Row{
		{Kind: KindFacility, ID: 5, Name: "Penitentiary No. 5"},
		{Kind: KindCourt, ID: 1, Name: "District Court"},
		{Kind: KindSector, ID: 2, Name: "Sector B"},
		{Kind: Kind("unknown"), ID: 9, Name: "ignored"},
	}}
}

// =============================================================================
// Grouping
// =============================================================================

func (s *ServiceSuite) TestGroupedPayloadHasEveryListPresent() {
	svc := NewService(s.store, NewMemoryCache(), WithLogger(logger.Discard()))

	d, err := svc.Dictionaries(s.ctx)
	s.Require().NoError(err)
	s.Equal([]Item{{ID: 5, Name: "Penitentiary No. 5"}}, d.Facilities)
	s.Equal([]Item{{ID: 1, Name: "District Court"}}, d.Courts)
	s.Equal([]Item{{ID: 2, Name: "Sector B"}}, d.Sectors)
	s.NotNil(d.Regimes)
	s.Empty(d.Regimes)
	s.NotNil(d.IssuingAuthorities)
}

// =============================================================================
// Memoization
// =============================================================================

// Justification: the dictionaries are read on every form render; the store
// must be hit once per TTL, not once per request.
func (s *ServiceSuite) TestSecondCallServedFromRedis() {
	mr := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewService(s.store, NewRedisCache(client), WithTTL(time.Minute), WithLogger(logger.Discard()))

	_, err := svc.Dictionaries(s.ctx)
	s.Require().NoError(err)
	d, err := svc.Dictionaries(s.ctx)
	s.Require().NoError(err)

	s.Equal(int32(1), s.store.calls.Load())
	s.Equal("District Court", d.Courts[0].Name)
	s.True(mr.Exists(cacheKey))
	s.Equal(time.Minute, mr.TTL(cacheKey))

	s.Run("invalidate forces a reload", func() {
		s.Require().NoError(svc.Invalidate(s.ctx))
		_, err := svc.Dictionaries(s.ctx)
		s.Require().NoError(err)
		s.Equal(int32(2), s.store.calls.Load())
	})
}

func (s *ServiceSuite) TestConcurrentMissesShareOneRead() {
	s.store.delay = 20 * time.Millisecond
	svc := NewService(s.store, NewMemoryCache(), WithLogger(logger.Discard()))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Dictionaries(s.ctx)
			s.NoError(err)
		}()
	}
	wg.Wait()
	s.LessOrEqual(s.store.calls.Load(), int32(2))
}

// =============================================================================
// Degradation
// =============================================================================

func (s *ServiceSuite) TestBrokenCacheFallsBackToStore() {
	svc := NewService(s.store, brokenCache{}, WithLogger(logger.Discard()))

	d, err := svc.Dictionaries(s.ctx)
	s.Require().NoError(err)
	s.Len(d.Facilities, 1)
}

func (s *ServiceSuite) TestStoreFailureIsInternal() {
	s.store.err = errors.New("relation does not exist")
	svc := NewService(s.store, NewMemoryCache(), WithLogger(logger.Discard()))

	_, err := svc.Dictionaries(s.ctx)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

package reference

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	dErrors "custody/pkg/domain-errors"
)

const cacheKey = "custody:reference:dictionaries:v1"

// Service memoizes the dictionaries in a Cache. Concurrent misses share one
// store read.
type Service struct {
	store  Store
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewService(store Store, cache Cache, opts ...Option) *Service {
	s := &Service{
		store:  store,
		cache:  cache,
		ttl:    5 * time.Minute,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dictionaries returns all reference lists. A failing cache degrades to a
// direct store read.
func (s *Service) Dictionaries(ctx context.Context) (*Dictionaries, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		rows, err := s.store.ListRows(ctx)
		if err != nil {
			return nil, err
		}
		d := Group(rows)
		s.toCache(ctx, d)
		return d, nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reference dictionaries")
	}
	return v.(*Dictionaries), nil
}

// Invalidate drops the cached dictionaries.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, cacheKey)
}

func (s *Service) fromCache(ctx context.Context) (*Dictionaries, bool) {
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WarnContext(ctx, "reference cache read failed", "error", err)
		}
		return nil, false
	}
	var d Dictionaries
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		s.logger.WarnContext(ctx, "reference cache entry unreadable", "error", err)
		return nil, false
	}
	return &d, true
}

func (s *Service) toCache(ctx context.Context, d *Dictionaries) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(raw), s.ttl); err != nil {
		s.logger.WarnContext(ctx, "reference cache write failed", "error", err)
	}
}

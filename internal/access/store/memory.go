// Package store holds the permission stores behind the access gate.
package store

import (
	"context"
	"sync"

	"custody/internal/access"
	"custody/pkg/platform/sentinel"
)

type key struct {
	actor  string
	module access.Module
}

// InMemory keeps permissions in a map. Used by tests and local runs.
type InMemory struct {
	mu     sync.RWMutex
	levels map[key]access.Level
}

func NewInMemory() *InMemory {
	return &InMemory{levels: make(map[key]access.Level)}
}

// Grant sets the actor's level on module. LevelNone removes the entry.
func (s *InMemory) Grant(actorID string, module access.Module, level access.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level == access.LevelNone {
		delete(s.levels, key{actorID, module})
		return
	}
	s.levels[key{actorID, module}] = level
}

func (s *InMemory) Lookup(_ context.Context, actorID string, module access.Module) (access.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	level, ok := s.levels[key{actorID, module}]
	if !ok {
		return access.LevelNone, sentinel.ErrNotFound
	}
	return level, nil
}

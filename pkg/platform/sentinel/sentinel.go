package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//
//	ErrNotFound      row does not exist
//	ErrParentMissing insert referenced a movement or cell assignment that does not exist
//	ErrConflict      write lost against a constraint
//	ErrUnavailable   backing service (database, cache) cannot be reached
//
// Validation failures use pkg/domain-errors directly.
var (
	ErrNotFound      = errors.New("not found")
	ErrParentMissing = errors.New("parent missing")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("unavailable")
)

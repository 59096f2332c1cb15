// Package registry pkg/registry/errors.go provides errors for the
// registry package.
package registry

import "errors"

var (
	// ErrNotTracked is returned for operations on a hub entity that is
	// not registered.
	ErrNotTracked = errors.New("entity is not being tracked")

	// ErrAlreadyTracked is returned when tracking an entity twice.
	ErrAlreadyTracked = errors.New("entity is already being tracked")

	// ErrFieldNotTracked is returned when toggling logging on a field
	// that has no tracked entry.
	ErrFieldNotTracked = errors.New("field is not being tracked")
)

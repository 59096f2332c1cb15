// Package views pkg/views/errors.go provides errors for the views
// package.
package views

import "errors"

var (
	// ErrInvalidView is returned at creation for an empty field list,
	// a non-positive resolution, or an unknown range mode.
	ErrInvalidView = errors.New("invalid view")

	// ErrViewNotFound is returned when a view id does not exist.
	ErrViewNotFound = errors.New("view not found")
)

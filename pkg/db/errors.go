// Package db pkg/db/errors.go provides errors for the db package.

package db

import "errors"

var (
	// Core database errors.

	ErrDatabaseError = errors.New("database error")

	// Operation errors.

	ErrFailedToScan      = errors.New("failed to scan")
	ErrFailedToQuery     = errors.New("failed to query")
	ErrFailedToInsert    = errors.New("failed to insert")
	ErrFailedToDelete    = errors.New("failed to delete")
	ErrFailedToEncode    = errors.New("failed to encode document")
	ErrFailedToDecode    = errors.New("failed to decode document")
	ErrFailedToInit      = errors.New("failed to initialize schema")
	ErrFailedToEnableWAL = errors.New("failed to enable WAL mode")
	ErrFailedOpenDB      = errors.New("failed to open database")

	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")
)

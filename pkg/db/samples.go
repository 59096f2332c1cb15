// Package db pkg/db/samples.go implements the append-only sample store.
package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hubview/hubview/pkg/models"
)

// AppendSample records one observation of a tracked field.
func (db *DB) AppendSample(entity, field string, timestamp time.Time, value string) (*models.Sample, error) {
	const insertSQL = `
		INSERT INTO samples (id, entity, field, timestamp, value)
		VALUES (?, ?, ?, ?, ?)
	`

	sample := &models.Sample{
		ID:     uuid.NewString(),
		Entity: entity,
		Field:  field,
		Time:   timestamp,
		Value:  value,
	}

	_, err := db.Exec(insertSQL, sample.ID, sample.Entity, sample.Field, sample.Time, sample.Value)
	if err != nil {
		return nil, fmt.Errorf("%w sample: %w", ErrFailedToInsert, err)
	}

	return sample, nil
}

// QuerySamples returns the samples for an entity. An empty field
// matches all of the entity's fields; a zero start or end leaves that
// side of the range unbounded. Rows come back in arrival order, but
// callers must not rely on any ordering.
func (db *DB) QuerySamples(entity, field string, start, end time.Time) ([]models.Sample, error) {
	query := `
		SELECT id, entity, field, timestamp, value
		FROM samples
		WHERE entity = ?
	`
	args := []interface{}{entity}

	if field != "" {
		query += " AND field = ?"
		args = append(args, field)
	}

	if !start.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, start)
	}

	if !end.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, end)
	}

	query += " ORDER BY rowid"

	rows, err := db.Query(query, args...) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w samples: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var samples []models.Sample

	for rows.Next() {
		var s models.Sample

		if err := rows.Scan(&s.ID, &s.Entity, &s.Field, &s.Time, &s.Value); err != nil {
			return nil, fmt.Errorf("%w sample row: %w", ErrFailedToScan, err)
		}

		samples = append(samples, s)
	}

	return samples, nil
}

// Package db pkg/db/tracked.go persists tracked-entity documents.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hubview/hubview/pkg/models"
)

// ListTrackedEntities returns every entity opted into tracking.
func (db *DB) ListTrackedEntities() ([]models.TrackedEntity, error) {
	const querySQL = `
		SELECT id, hub_id, name, type, fields, last_update
		FROM tracked_entities
		ORDER BY hub_id
	`

	rows, err := db.Query(querySQL) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w tracked entities: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var entities []models.TrackedEntity

	for rows.Next() {
		entity, err := scanTrackedEntity(rows)
		if err != nil {
			return nil, err
		}

		entities = append(entities, *entity)
	}

	return entities, nil
}

// GetTrackedEntity returns the tracked entity for a hub entity id, or
// ErrNotFound.
func (db *DB) GetTrackedEntity(hubID string) (*models.TrackedEntity, error) {
	const querySQL = `
		SELECT id, hub_id, name, type, fields, last_update
		FROM tracked_entities
		WHERE hub_id = ?
	`

	row := db.QueryRow(querySQL, hubID)

	entity, err := scanTrackedEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return entity, nil
}

// SaveTrackedEntity upserts a tracked entity by hub id.
func (db *DB) SaveTrackedEntity(entity *models.TrackedEntity) error {
	const upsertSQL = `
		INSERT INTO tracked_entities (id, hub_id, name, type, fields, last_update)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(hub_id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			fields = excluded.fields,
			last_update = excluded.last_update
	`

	fields, err := json.Marshal(entity.Fields)
	if err != nil {
		return fmt.Errorf("%w tracked fields: %w", ErrFailedToEncode, err)
	}

	_, err = db.Exec(upsertSQL,
		entity.ID,
		entity.HubID,
		entity.Name,
		entity.Type,
		string(fields),
		entity.LastUpdate)

	if err != nil {
		return fmt.Errorf("%w tracked entity: %w", ErrFailedToInsert, err)
	}

	return nil
}

// DeleteTrackedEntity removes a tracked entity. Already-collected
// samples stay behind.
func (db *DB) DeleteTrackedEntity(hubID string) error {
	result, err := db.Exec("DELETE FROM tracked_entities WHERE hub_id = ?", hubID)
	if err != nil {
		return fmt.Errorf("%w tracked entity: %w", ErrFailedToDelete, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// scanner matches both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrackedEntity(row scanner) (*models.TrackedEntity, error) {
	var (
		entity models.TrackedEntity
		fields string
	)

	err := row.Scan(
		&entity.ID,
		&entity.HubID,
		&entity.Name,
		&entity.Type,
		&fields,
		&entity.LastUpdate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("%w tracked entity row: %w", ErrFailedToScan, err)
	}

	if err := json.Unmarshal([]byte(fields), &entity.Fields); err != nil {
		return nil, fmt.Errorf("%w tracked fields: %w", ErrFailedToDecode, err)
	}

	return &entity, nil
}

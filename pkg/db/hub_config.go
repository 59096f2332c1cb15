// Package db pkg/db/hub_config.go persists the hub connection so the
// background loops survive a restart.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hubview/hubview/pkg/models"
)

// GetHubConnection returns the stored hub connection, or ErrNotFound
// when the server has never been pointed at a hub.
func (db *DB) GetHubConnection() (*models.HubConnection, error) {
	const querySQL = `
		SELECT address, token, updated_at
		FROM hub_config
		WHERE id = 1
	`

	var conn models.HubConnection

	err := db.QueryRow(querySQL).Scan(&conn.Address, &conn.Token, &conn.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w hub connection: %w", ErrFailedToQuery, err)
	}

	return &conn, nil
}

// SaveHubConnection replaces the stored hub connection.
func (db *DB) SaveHubConnection(conn *models.HubConnection) error {
	const upsertSQL = `
		INSERT INTO hub_config (id, address, token, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			address = excluded.address,
			token = excluded.token,
			updated_at = excluded.updated_at
	`

	_, err := db.Exec(upsertSQL, conn.Address, conn.Token, conn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w hub connection: %w", ErrFailedToInsert, err)
	}

	return nil
}

// DeleteHubConnection clears the stored hub connection.
func (db *DB) DeleteHubConnection() error {
	_, err := db.Exec("DELETE FROM hub_config WHERE id = 1")
	if err != nil {
		return fmt.Errorf("%w hub connection: %w", ErrFailedToDelete, err)
	}

	return nil
}

// Package db pkg/db/views.go persists saved views.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hubview/hubview/pkg/models"
)

// ListViews returns every saved view.
func (db *DB) ListViews() ([]models.View, error) {
	const querySQL = `
		SELECT id, name, chart_type, fields, time_range
		FROM views
		ORDER BY name
	`

	rows, err := db.Query(querySQL) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w views: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var views []models.View

	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, err
		}

		views = append(views, *view)
	}

	return views, nil
}

// GetView returns a view by id, or ErrNotFound.
func (db *DB) GetView(id string) (*models.View, error) {
	const querySQL = `
		SELECT id, name, chart_type, fields, time_range
		FROM views
		WHERE id = ?
	`

	view, err := scanView(db.QueryRow(querySQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return view, nil
}

// SaveView stores a view. Views are immutable once created, so this is
// a plain insert.
func (db *DB) SaveView(view *models.View) error {
	const insertSQL = `
		INSERT INTO views (id, name, chart_type, fields, time_range)
		VALUES (?, ?, ?, ?, ?)
	`

	fields, err := json.Marshal(view.Fields)
	if err != nil {
		return fmt.Errorf("%w view fields: %w", ErrFailedToEncode, err)
	}

	viewRange, err := json.Marshal(view.Range)
	if err != nil {
		return fmt.Errorf("%w view range: %w", ErrFailedToEncode, err)
	}

	_, err = db.Exec(insertSQL, view.ID, view.Name, view.ChartType, string(fields), string(viewRange))
	if err != nil {
		return fmt.Errorf("%w view: %w", ErrFailedToInsert, err)
	}

	return nil
}

func scanView(row scanner) (*models.View, error) {
	var (
		view      models.View
		fields    string
		viewRange string
	)

	err := row.Scan(&view.ID, &view.Name, &view.ChartType, &fields, &viewRange)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("%w view row: %w", ErrFailedToScan, err)
	}

	if err := json.Unmarshal([]byte(fields), &view.Fields); err != nil {
		return nil, fmt.Errorf("%w view fields: %w", ErrFailedToDecode, err)
	}

	if err := json.Unmarshal([]byte(viewRange), &view.Range); err != nil {
		return nil, fmt.Errorf("%w view range: %w", ErrFailedToDecode, err)
	}

	return &view, nil
}

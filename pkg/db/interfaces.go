// Package db pkg/db/interfaces.go
package db

import (
	"time"

	"github.com/hubview/hubview/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/hubview/hubview/pkg/db Service

// Service represents all database operations.
type Service interface {
	// Core database operations.

	Close() error

	// Sample operations. Samples are append-only; there is no update
	// or delete. QuerySamples treats an empty field as "all fields"
	// and a zero time bound as unbounded on that side. Results carry
	// no order guarantee.

	AppendSample(entity, field string, timestamp time.Time, value string) (*models.Sample, error)
	QuerySamples(entity, field string, start, end time.Time) ([]models.Sample, error)

	// Tracked entity operations.

	ListTrackedEntities() ([]models.TrackedEntity, error)
	GetTrackedEntity(hubID string) (*models.TrackedEntity, error)
	SaveTrackedEntity(entity *models.TrackedEntity) error
	DeleteTrackedEntity(hubID string) error

	// View operations.

	ListViews() ([]models.View, error)
	GetView(id string) (*models.View, error)
	SaveView(view *models.View) error

	// Hub connection configuration.

	GetHubConnection() (*models.HubConnection, error)
	SaveHubConnection(conn *models.HubConnection) error
	DeleteHubConnection() error
}

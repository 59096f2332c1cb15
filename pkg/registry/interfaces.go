// Package registry pkg/registry/interfaces.go
package registry

import (
	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/models"
)

//go:generate mockgen -destination=mock_registry.go -package=registry github.com/hubview/hubview/pkg/registry Store,Publisher

// Store is the persistence the registry needs. *db.DB satisfies it.
type Store interface {
	ListTrackedEntities() ([]models.TrackedEntity, error)
	GetTrackedEntity(hubID string) (*models.TrackedEntity, error)
	SaveTrackedEntity(entity *models.TrackedEntity) error
	DeleteTrackedEntity(hubID string) error
}

// Publisher publishes envelopes on the event bus.
type Publisher interface {
	Publish(env bus.Envelope)
}

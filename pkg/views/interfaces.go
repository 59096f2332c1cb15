// Package views pkg/views/interfaces.go
package views

import (
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/models"
)

//go:generate mockgen -destination=mock_views.go -package=views github.com/hubview/hubview/pkg/views Store,Publisher

// Store is the persistence the view engine needs. *db.DB satisfies it.
type Store interface {
	ListViews() ([]models.View, error)
	GetView(id string) (*models.View, error)
	SaveView(view *models.View) error
	QuerySamples(entity, field string, start, end time.Time) ([]models.Sample, error)
}

// Publisher publishes envelopes on the event bus.
type Publisher interface {
	Publish(env bus.Envelope)
}

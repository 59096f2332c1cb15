// Package poller pkg/poller/interfaces.go
package poller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/models"
)

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/hubview/hubview/pkg/poller HubClient,Publisher,SampleStore,EntityLister

// HubClient is the capability surface the loops need from the hub
// client. *hub.Client satisfies it.
type HubClient interface {
	Address() string
	Token() string
	GetStates(ctx context.Context) ([]models.StateSnapshot, error)
	GetConfig(ctx context.Context) (models.HubConfig, error)
	Stream(ctx context.Context) (<-chan json.RawMessage, error)
}

// HubSource returns a snapshot of the current hub client, or nil when
// no hub is configured. Loops call it once per unit of work and never
// re-read mid-cycle.
type HubSource func() HubClient

// Publisher publishes envelopes on the event bus.
type Publisher interface {
	Publish(env bus.Envelope)
}

// SampleStore appends collected samples.
type SampleStore interface {
	AppendSample(entity, field string, timestamp time.Time, value string) (*models.Sample, error)
}

// EntityLister lists the entities opted into tracking.
type EntityLister interface {
	ListTrackedEntities() ([]models.TrackedEntity, error)
}

// Package poller pkg/poller/collector.go implements the sample
// collection loop.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/models"
)

const (
	// DefaultCollectInterval is how often the collector polls the hub.
	DefaultCollectInterval = 30 * time.Second

	// stateField reads the entity's literal state string instead of an
	// attribute.
	stateField = "state"
)

// Collector periodically polls the hub for current states and appends a
// sample for every logging-enabled tracked field. A cycle that fails is
// logged and skipped; the loop itself only exits with its context. A
// crashed collector would silently stop all logging, which is worse
// than a missed cycle.
type Collector struct {
	source   HubSource
	store    SampleStore
	registry EntityLister
	bus      Publisher
	interval time.Duration
}

// NewCollector creates a collector. A non-positive interval falls back
// to DefaultCollectInterval.
func NewCollector(source HubSource, store SampleStore, registry EntityLister, publisher Publisher, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = DefaultCollectInterval
	}

	return &Collector{
		source:   source,
		store:    store,
		registry: registry,
		bus:      publisher,
		interval: interval,
	}
}

// Start begins the collection loop and blocks until ctx is canceled.
func (c *Collector) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Printf("Starting collector with interval %v", c.interval)

	// Do an initial cycle immediately
	if err := c.Collect(ctx); err != nil {
		log.Printf("Error during initial collection cycle: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := c.Collect(ctx); err != nil {
				log.Printf("Error during collection cycle: %v", err)
			}
		}
	}
}

// Collect runs one collection cycle: one GetStates call, one sample per
// logging-enabled tracked field, then a single data envelope listing
// the updated "entity.field" identifiers. All samples of the cycle are
// appended before the envelope is published. With no hub configured the
// cycle is a no-op.
func (c *Collector) Collect(ctx context.Context) error {
	client := c.source()
	if client == nil {
		return nil
	}

	states, err := client.GetStates(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch hub states: %w", err)
	}

	entities, err := c.registry.ListTrackedEntities()
	if err != nil {
		return fmt.Errorf("failed to list tracked entities: %w", err)
	}

	byID := make(map[string]models.StateSnapshot, len(states))
	for _, state := range states {
		byID[state.EntityID] = state
	}

	var updates []string

	for _, entity := range entities {
		state, online := byID[entity.HubID]
		if !online {
			continue
		}

		for _, field := range entity.Fields {
			if !field.Logging {
				continue
			}

			value, found := resolveField(state, field.Field)
			if !found {
				log.Printf("Entity %s has no attribute %q, skipping", entity.HubID, field.Field)
				continue
			}

			if _, err := c.store.AppendSample(entity.HubID, field.Field, time.Now(), value); err != nil {
				log.Printf("Error appending sample for %s.%s: %v", entity.HubID, field.Field, err)
				continue
			}

			samplesTotal.Inc()

			updates = append(updates, fmt.Sprintf("%s.%s", entity.HubID, field.Field))
		}
	}

	if len(updates) > 0 {
		c.bus.Publish(bus.Envelope{
			Type:    bus.EventData,
			Payload: map[string]interface{}{"updates": updates},
		})
	}

	return nil
}

// resolveField reads a tracked field's current value from a state
// snapshot: the literal state string for the state field, otherwise a
// lookup in the attribute map.
func resolveField(state models.StateSnapshot, field string) (string, bool) {
	if field == stateField {
		return state.State, true
	}

	value, ok := state.Attributes[field]
	if !ok {
		return "", false
	}

	return fmt.Sprint(value), true
}

// Package bus pkg/bus/events.go defines the envelope types used on the bus.
package bus

import "fmt"

const (
	// EventData announces the "entity.field" identifiers that received
	// new samples in a collector cycle.
	EventData = "data"

	// EventHAStatus carries hub connectivity (models.HubStatus).
	EventHAStatus = "ha_status"

	// EventStates relays raw push events from the hub verbatim.
	EventStates = "states"

	// EventViews announces a created view.
	EventViews = "views"
)

// EventTrackedEntity is the envelope type announcing a tracked entity's
// current state after a tracking change.
func EventTrackedEntity(hubID string) string {
	return fmt.Sprintf("entity.tracked.%s", hubID)
}

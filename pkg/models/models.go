// Package models pkg/models/models.go contains the shared domain types for hubview.
package models

import (
	"time"
)

// StateSnapshot is one entity's current state as reported by the hub.
type StateSnapshot struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastChanged string                 `json:"last_changed,omitempty"`
	LastUpdated string                 `json:"last_updated,omitempty"`
}

// HubConfig is the hub's config/health blob. Its shape is owned by the
// hub; we pass it through untouched.
type HubConfig map[string]interface{}

// HubStatus is the payload of an ha_status envelope.
type HubStatus struct {
	Online bool            `json:"online"`
	Config HubConfig       `json:"config,omitempty"`
	Error  *HubStatusError `json:"error,omitempty"`
}

// HubStatusError carries the upstream failure that took the hub offline.
type HubStatusError struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Sample is one timestamped observation of a tracked field. Samples are
// append-only; nothing in the codebase mutates or deletes one.
type Sample struct {
	ID     string    `json:"id"`
	Entity string    `json:"entity"`
	Field  string    `json:"field"`
	Time   time.Time `json:"time"`
	Value  string    `json:"value"`
}

// TrackedField is a field of a tracked entity that has been opted into
// tracking. Unique per entity by Field name.
type TrackedField struct {
	Field    string                 `json:"field"`
	Logging  bool                   `json:"logging"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// TrackedEntity is a hub entity an operator has opted into tracking.
type TrackedEntity struct {
	ID         string         `json:"id"`
	HubID      string         `json:"hub_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Fields     []TrackedField `json:"fields"`
	LastUpdate time.Time      `json:"last_update"`
}

// FieldNamed returns the tracked field with the given name, if any.
func (e *TrackedEntity) FieldNamed(name string) (TrackedField, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}

	return TrackedField{}, false
}

// RangeMode selects how a view's start/end are interpreted.
type RangeMode string

const (
	// RangeRelative means start/end are signed offsets in seconds from
	// the time the view is resolved.
	RangeRelative RangeMode = "relative"
	// RangeAbsolute means start/end are fixed unix timestamps in seconds.
	RangeAbsolute RangeMode = "absolute"
)

// ViewField identifies one (entity, field) series in a view.
type ViewField struct {
	Entity      string `json:"entity"`
	Field       string `json:"field"`
	DisplayName string `json:"display_name,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ViewRange is a view's time window and decimation resolution.
// Resolution is in seconds and must be positive.
type ViewRange struct {
	Mode       RangeMode `json:"mode"`
	Start      float64   `json:"start"`
	End        float64   `json:"end"`
	Resolution float64   `json:"resolution"`
}

// View is a saved, resolvable time-series query. A view stores no
// samples of its own.
type View struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	ChartType string      `json:"type"`
	Fields    []ViewField `json:"fields"`
	Range     ViewRange   `json:"range"`
}

// HubConnection is the persisted hub connection configuration.
type HubConnection struct {
	Address   string    `json:"address"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package api pkg/api/entities.go handles hub entity and tracking
// endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hubview/hubview/pkg/models"
	"github.com/hubview/hubview/pkg/registry"
)

// entityView is a hub state annotated with whether it is tracked.
type entityView struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Type        string                 `json:"type"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastChanged string                 `json:"last_changed,omitempty"`
	LastUpdated string                 `json:"last_updated,omitempty"`
	Tracked     bool                   `json:"tracked"`
}

func newEntityView(state models.StateSnapshot, tracked bool) entityView {
	entityType, name := splitEntityID(state.EntityID)

	return entityView{
		ID:          state.EntityID,
		Name:        name,
		Type:        entityType,
		State:       state.State,
		Attributes:  state.Attributes,
		LastChanged: state.LastChanged,
		LastUpdated: state.LastUpdated,
		Tracked:     tracked,
	}
}

// splitEntityID breaks "sensor.temp" into ("sensor", "temp").
func splitEntityID(entityID string) (entityType, name string) {
	parts := strings.SplitN(entityID, ".", 2)
	if len(parts) < 2 {
		return "", entityID
	}

	return parts[0], parts[1]
}

func (s *APIServer) getEntities(w http.ResponseWriter, r *http.Request) {
	client := s.handle.Snapshot()
	if client == nil {
		writeError(w, http.StatusServiceUnavailable, "hub.not_initialized", "No hub connection configured")
		return
	}

	states, err := client.GetStates(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "hub.unreachable", err.Error())
		return
	}

	tracked, err := s.registry.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registry.list_failed", err.Error())
		return
	}

	trackedIDs := make(map[string]bool, len(tracked))
	for _, entity := range tracked {
		trackedIDs[entity.HubID] = true
	}

	entities := make([]entityView, 0, len(states))
	for _, state := range states {
		entities = append(entities, newEntityView(state, trackedIDs[state.EntityID]))
	}

	writeJSON(w, entities)
}

func (s *APIServer) getTrackedEntities(w http.ResponseWriter, _ *http.Request) {
	entities, err := s.registry.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registry.list_failed", err.Error())
		return
	}

	if entities == nil {
		entities = []models.TrackedEntity{}
	}

	writeJSON(w, entities)
}

func (s *APIServer) getTrackedEntity(w http.ResponseWriter, r *http.Request) {
	hubID := mux.Vars(r)["id"]

	entity, err := s.registry.Get(hubID)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, entity)
}

func (s *APIServer) trackEntity(w http.ResponseWriter, r *http.Request) {
	hubID := mux.Vars(r)["id"]

	var fields []models.TrackedField
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "request.invalid_body", err.Error())
		return
	}

	entityType, name := splitEntityID(hubID)

	// When a hub is configured, reject ids the hub does not know about
	// and prefer its naming.
	if client := s.handle.Snapshot(); client != nil {
		state, err := client.GetState(r.Context(), hubID)
		if err != nil {
			writeError(w, http.StatusNotFound, "entity.invalid_id", "Entity with id "+hubID+" does not exist")
			return
		}

		entityType, name = splitEntityID(state.EntityID)
	}

	entity, err := s.registry.Track(hubID, name, entityType, fields)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, entity)
}

func (s *APIServer) untrackEntity(w http.ResponseWriter, r *http.Request) {
	hubID := mux.Vars(r)["id"]

	if err := s.registry.Untrack(hubID); err != nil {
		writeRegistryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) setField(w http.ResponseWriter, r *http.Request) {
	hubID := mux.Vars(r)["id"]

	var field models.TrackedField
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		writeError(w, http.StatusBadRequest, "request.invalid_body", err.Error())
		return
	}

	if field.Field == "" {
		writeError(w, http.StatusBadRequest, "request.invalid_body", "field name is required")
		return
	}

	entity, err := s.registry.SetField(hubID, field)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, entity)
}

func (s *APIServer) startLogging(w http.ResponseWriter, r *http.Request) {
	s.setLogging(w, r, true)
}

func (s *APIServer) stopLogging(w http.ResponseWriter, r *http.Request) {
	s.setLogging(w, r, false)
}

func (s *APIServer) setLogging(w http.ResponseWriter, r *http.Request, logging bool) {
	vars := mux.Vars(r)

	entity, err := s.registry.SetLogging(vars["id"], vars["field"], logging)
	if err != nil {
		writeRegistryError(w, err)
		return
	}

	writeJSON(w, entity)
}

func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrAlreadyTracked):
		writeError(w, http.StatusConflict, "entity.tracking.already_tracked", "That entity is already being tracked")
	case errors.Is(err, registry.ErrNotTracked):
		writeError(w, http.StatusNotFound, "entity.tracking.invalid_id", "That entity is not being tracked")
	case errors.Is(err, registry.ErrFieldNotTracked):
		writeError(w, http.StatusNotFound, "entity.tracking.invalid_field", "That field is not being tracked")
	default:
		writeError(w, http.StatusInternalServerError, "registry.failed", err.Error())
	}
}

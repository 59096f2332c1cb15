// Package registry pkg/registry/registry.go manages which hub entities
// are opted into tracking and which of their fields are logged.
package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/db"
	"github.com/hubview/hubview/pkg/models"
)

// Service implements the tracked-entity registry on top of the store.
type Service struct {
	store Store
	bus   Publisher
}

// NewService creates a registry over the given store and bus.
func NewService(store Store, publisher Publisher) *Service {
	return &Service{
		store: store,
		bus:   publisher,
	}
}

// List returns every tracked entity.
func (s *Service) List() ([]models.TrackedEntity, error) {
	return s.store.ListTrackedEntities()
}

// Get returns the tracked entity for a hub entity id, or ErrNotTracked.
func (s *Service) Get(hubID string) (*models.TrackedEntity, error) {
	entity, err := s.store.GetTrackedEntity(hubID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotTracked, hubID)
	}

	if err != nil {
		return nil, err
	}

	return entity, nil
}

// Track opts a hub entity into tracking. A second Track for the same
// hub entity id fails with ErrAlreadyTracked.
func (s *Service) Track(hubID, name, entityType string, fields []models.TrackedField) (*models.TrackedEntity, error) {
	_, err := s.store.GetTrackedEntity(hubID)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyTracked, hubID)
	}

	if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	entity := &models.TrackedEntity{
		ID:         uuid.NewString(),
		HubID:      hubID,
		Name:       name,
		Type:       entityType,
		Fields:     dedupeFields(fields),
		LastUpdate: time.Now(),
	}

	if err := s.store.SaveTrackedEntity(entity); err != nil {
		return nil, err
	}

	s.publish(entity)

	return entity, nil
}

// Untrack stops tracking a hub entity. Already-collected samples are
// not touched.
func (s *Service) Untrack(hubID string) error {
	err := s.store.DeleteTrackedEntity(hubID)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotTracked, hubID)
	}

	return err
}

// SetField upserts a tracked field by name: an existing entry with the
// same field name is replaced, last write wins on metadata.
func (s *Service) SetField(hubID string, field models.TrackedField) (*models.TrackedEntity, error) {
	entity, err := s.Get(hubID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.TrackedField, 0, len(entity.Fields)+1)

	for _, f := range entity.Fields {
		if f.Field != field.Field {
			kept = append(kept, f)
		}
	}

	entity.Fields = append(kept, field)
	entity.LastUpdate = time.Now()

	if err := s.store.SaveTrackedEntity(entity); err != nil {
		return nil, err
	}

	s.publish(entity)

	return entity, nil
}

// SetLogging flips the logging flag of an existing tracked field,
// keeping its metadata.
func (s *Service) SetLogging(hubID, fieldName string, logging bool) (*models.TrackedEntity, error) {
	entity, err := s.Get(hubID)
	if err != nil {
		return nil, err
	}

	field, ok := entity.FieldNamed(fieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFieldNotTracked, hubID, fieldName)
	}

	field.Logging = logging

	return s.SetField(hubID, field)
}

func (s *Service) publish(entity *models.TrackedEntity) {
	s.bus.Publish(bus.Envelope{
		Type:    bus.EventTrackedEntity(entity.HubID),
		Payload: entity,
	})
}

// dedupeFields keeps at most one entry per field name, last write wins.
func dedupeFields(fields []models.TrackedField) []models.TrackedField {
	deduped := make([]models.TrackedField, 0, len(fields))

	for _, field := range fields {
		kept := deduped[:0]

		for _, f := range deduped {
			if f.Field != field.Field {
				kept = append(kept, f)
			}
		}

		deduped = append(kept, field)
	}

	return deduped
}

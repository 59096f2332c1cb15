package registry

import (
	"testing"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/db"
	"github.com/hubview/hubview/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	entities map[string]models.TrackedEntity
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entities: make(map[string]models.TrackedEntity)}
}

func (m *memoryStore) ListTrackedEntities() ([]models.TrackedEntity, error) {
	out := make([]models.TrackedEntity, 0, len(m.entities))
	for _, e := range m.entities {
		out = append(out, e)
	}

	return out, nil
}

func (m *memoryStore) GetTrackedEntity(hubID string) (*models.TrackedEntity, error) {
	e, ok := m.entities[hubID]
	if !ok {
		return nil, db.ErrNotFound
	}

	return &e, nil
}

func (m *memoryStore) SaveTrackedEntity(entity *models.TrackedEntity) error {
	m.entities[entity.HubID] = *entity
	return nil
}

func (m *memoryStore) DeleteTrackedEntity(hubID string) error {
	if _, ok := m.entities[hubID]; !ok {
		return db.ErrNotFound
	}

	delete(m.entities, hubID)

	return nil
}

type capturingBus struct {
	envelopes []bus.Envelope
}

func (c *capturingBus) Publish(env bus.Envelope) {
	c.envelopes = append(c.envelopes, env)
}

func TestTrackAndGet(t *testing.T) {
	store := newMemoryStore()
	pub := &capturingBus{}
	svc := NewService(store, pub)

	entity, err := svc.Track("light.kitchen", "Kitchen Light", "light", []models.TrackedField{
		{Field: "state", Logging: true},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entity.ID)
	assert.Equal(t, "light.kitchen", entity.HubID)

	got, err := svc.Get("light.kitchen")
	require.NoError(t, err)
	assert.Equal(t, entity.ID, got.ID)

	require.Len(t, pub.envelopes, 1)
	assert.Equal(t, "entity.tracked.light.kitchen", pub.envelopes[0].Type)
}

func TestTrackTwice(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	_, err := svc.Track("light.kitchen", "Kitchen Light", "light", nil)
	require.NoError(t, err)

	_, err = svc.Track("light.kitchen", "Kitchen Light", "light", nil)
	assert.ErrorIs(t, err, ErrAlreadyTracked)
}

func TestTrackDedupesFields(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	entity, err := svc.Track("sensor.power", "Power", "sensor", []models.TrackedField{
		{Field: "state", Logging: false},
		{Field: "voltage", Logging: true},
		{Field: "state", Logging: true},
	})
	require.NoError(t, err)

	require.Len(t, entity.Fields, 2)

	state, ok := entity.FieldNamed("state")
	require.True(t, ok)
	assert.True(t, state.Logging, "last write wins")
}

func TestGetNotTracked(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	_, err := svc.Get("light.kitchen")
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestUntrack(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	_, err := svc.Track("light.kitchen", "Kitchen Light", "light", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Untrack("light.kitchen"))

	_, err = svc.Get("light.kitchen")
	assert.ErrorIs(t, err, ErrNotTracked)

	assert.ErrorIs(t, svc.Untrack("light.kitchen"), ErrNotTracked)
}

func TestSetFieldUpsert(t *testing.T) {
	store := newMemoryStore()
	pub := &capturingBus{}
	svc := NewService(store, pub)

	_, err := svc.Track("sensor.power", "Power", "sensor", []models.TrackedField{
		{Field: "state", Logging: false},
	})
	require.NoError(t, err)

	entity, err := svc.SetField("sensor.power", models.TrackedField{
		Field:    "state",
		Logging:  true,
		Metadata: map[string]interface{}{"unit": "W"},
	})
	require.NoError(t, err)
	require.Len(t, entity.Fields, 1)
	assert.True(t, entity.Fields[0].Logging)

	entity, err = svc.SetField("sensor.power", models.TrackedField{Field: "voltage"})
	require.NoError(t, err)
	assert.Len(t, entity.Fields, 2)

	// Track + two SetField calls announce three times.
	assert.Len(t, pub.envelopes, 3)
}

func TestSetFieldNotTracked(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	_, err := svc.SetField("sensor.power", models.TrackedField{Field: "state"})
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestSetLogging(t *testing.T) {
	svc := NewService(newMemoryStore(), &capturingBus{})

	_, err := svc.Track("sensor.power", "Power", "sensor", []models.TrackedField{
		{Field: "state", Logging: false, Metadata: map[string]interface{}{"unit": "W"}},
	})
	require.NoError(t, err)

	entity, err := svc.SetLogging("sensor.power", "state", true)
	require.NoError(t, err)

	field, ok := entity.FieldNamed("state")
	require.True(t, ok)
	assert.True(t, field.Logging)
	assert.Equal(t, map[string]interface{}{"unit": "W"}, field.Metadata, "metadata survives the toggle")

	_, err = svc.SetLogging("sensor.power", "missing", true)
	assert.ErrorIs(t, err, ErrFieldNotTracked)
}

// Package views pkg/views/views.go defines named time-series queries
// over tracked fields and resolves them into decimated sample
// sequences.
package views

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/db"
	"github.com/hubview/hubview/pkg/models"
)

// Service implements view storage and resolution.
type Service struct {
	store Store
	bus   Publisher
}

// NewService creates a view engine over the given store and bus.
func NewService(store Store, publisher Publisher) *Service {
	return &Service{
		store: store,
		bus:   publisher,
	}
}

// Create validates and stores a view, announcing it on the bus. Views
// are immutable once created.
func (s *Service) Create(view *models.View) (*models.View, error) {
	if err := validate(view); err != nil {
		return nil, err
	}

	view.ID = uuid.NewString()

	if err := s.store.SaveView(view); err != nil {
		return nil, err
	}

	s.bus.Publish(bus.Envelope{
		Type:    bus.EventViews,
		Payload: map[string]string{"id": view.ID},
	})

	return view, nil
}

// List returns every saved view.
func (s *Service) List() ([]models.View, error) {
	return s.store.ListViews()
}

// Get returns a view by id, or ErrViewNotFound.
func (s *Service) Get(id string) (*models.View, error) {
	view, err := s.store.GetView(id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	return view, nil
}

// ResolveID loads a view and resolves it against now.
func (s *Service) ResolveID(id string, now time.Time) ([]models.Sample, error) {
	view, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	return s.Resolve(view, now)
}

// Resolve computes the view's absolute window against now, fetches the
// raw samples for every (entity, field) pair, and decimates them so no
// pair emits more than one sample per resolution-sized interval.
// Resolving the same view over the same stored samples and the same
// now is deterministic. Runs in linear time over the fetched samples.
func (s *Service) Resolve(view *models.View, now time.Time) ([]models.Sample, error) {
	if view.Range.Resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive", ErrInvalidView)
	}

	start, end := absoluteWindow(view.Range, now)
	resolution := secondsToDuration(view.Range.Resolution)

	// Merge the raw samples of every pair into one sequence.
	var merged []models.Sample

	for _, field := range view.Fields {
		samples, err := s.store.QuerySamples(field.Entity, field.Field, start, end)
		if err != nil {
			return nil, err
		}

		merged = append(merged, samples...)
	}

	// Sort ascending by timestamp; the stable sort keeps arrival order
	// on ties.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time.Before(merged[j].Time)
	})

	// One cursor per (entity, field) pair holding the last emitted
	// timestamp. The first in-window sample of a pair is always
	// emitted; after that a sample must clear the cursor by at least
	// one full resolution. A sample landing exactly on
	// cursor+resolution is emitted.
	cursors := make(map[string]time.Time, len(view.Fields))
	emitted := make([]models.Sample, 0, len(merged))

	for _, sample := range merged {
		key := sample.Entity + "." + sample.Field

		cursor, seen := cursors[key]
		if seen && sample.Time.Before(cursor.Add(resolution)) {
			continue
		}

		emitted = append(emitted, sample)
		cursors[key] = sample.Time
	}

	// The per-pair interleaving above is already time-ordered, but
	// re-sort before returning so callers never depend on map walk
	// ambiguity.
	sort.SliceStable(emitted, func(i, j int) bool {
		return emitted[i].Time.Before(emitted[j].Time)
	})

	return emitted, nil
}

// absoluteWindow resolves a view range against now. Relative start/end
// are offsets in seconds added to now, so each resolution of the same
// relative view yields a different absolute window.
func absoluteWindow(r models.ViewRange, now time.Time) (start, end time.Time) {
	if r.Mode == models.RangeRelative {
		return now.Add(secondsToDuration(r.Start)), now.Add(secondsToDuration(r.End))
	}

	return time.Unix(0, int64(r.Start*float64(time.Second))),
		time.Unix(0, int64(r.End*float64(time.Second)))
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func validate(view *models.View) error {
	if view.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidView)
	}

	if len(view.Fields) == 0 {
		return fmt.Errorf("%w: at least one field is required", ErrInvalidView)
	}

	if view.Range.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive", ErrInvalidView)
	}

	if view.Range.Mode != models.RangeRelative && view.Range.Mode != models.RangeAbsolute {
		return fmt.Errorf("%w: unknown range mode %q", ErrInvalidView, view.Range.Mode)
	}

	return nil
}

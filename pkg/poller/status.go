// Package poller pkg/poller/status.go implements the hub status loop.
package poller

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/hub"
	"github.com/hubview/hubview/pkg/models"
)

const (
	// DefaultStatusInterval is how often hub connectivity is checked.
	DefaultStatusInterval = 15 * time.Second
)

// StatusChecker publishes an ha_status envelope on every cycle so
// operators can tell a healthy hub from an unreachable or unconfigured
// one. Like the collector, it never exits on a failed cycle.
type StatusChecker struct {
	source   HubSource
	bus      Publisher
	interval time.Duration
}

// NewStatusChecker creates a status checker. A non-positive interval
// falls back to DefaultStatusInterval.
func NewStatusChecker(source HubSource, publisher Publisher, interval time.Duration) *StatusChecker {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}

	return &StatusChecker{
		source:   source,
		bus:      publisher,
		interval: interval,
	}
}

// Start begins the status loop and blocks until ctx is canceled.
func (s *StatusChecker) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Starting status checker with interval %v", s.interval)

	s.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check runs one status cycle and publishes the result.
func (s *StatusChecker) Check(ctx context.Context) {
	s.bus.Publish(bus.Envelope{
		Type:    bus.EventHAStatus,
		Payload: s.Status(ctx),
	})
}

// Status runs one connectivity probe and returns the result without
// publishing it.
func (s *StatusChecker) Status(ctx context.Context) *models.HubStatus {
	client := s.source()
	if client == nil {
		return &models.HubStatus{
			Online: false,
			Error: &models.HubStatusError{
				Code:        0,
				Description: "Not initialized",
			},
		}
	}

	config, err := client.GetConfig(ctx)
	if err != nil {
		log.Printf("Hub status check failed: %v", err)

		var hubErr *hub.Error
		if errors.As(err, &hubErr) {
			return &models.HubStatus{
				Online: false,
				Error: &models.HubStatusError{
					Code:        hubErr.Code,
					Description: hubErr.Reason,
				},
			}
		}

		return &models.HubStatus{
			Online: false,
			Error: &models.HubStatusError{
				Code:        0,
				Description: err.Error(),
			},
		}
	}

	return &models.HubStatus{
		Online: true,
		Config: config,
	}
}

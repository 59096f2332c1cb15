// Package poller pkg/poller/runner.go runs the background loops as one
// lifecycle service.
package poller

import (
	"context"
	"errors"
	"log"
	"sync"
)

// loop is one never-exiting background task.
type loop interface {
	Start(ctx context.Context) error
}

// Runner owns the collector, status checker, and relay and runs them
// until stopped.
type Runner struct {
	loops  []loop
	cancel context.CancelFunc
}

// NewRunner bundles the three background loops.
func NewRunner(collector *Collector, status *StatusChecker, relay *Relay) *Runner {
	return &Runner{
		loops: []loop{collector, status, relay},
	}
}

// Start launches every loop and blocks until Stop or ctx cancellation.
func (r *Runner) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	var wg sync.WaitGroup

	for _, l := range r.loops {
		wg.Add(1)

		go func(l loop) {
			defer wg.Done()

			if err := l.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Background loop exited: %v", err)
			}
		}(l)
	}

	wg.Wait()

	return nil
}

// Stop cancels the loops.
func (r *Runner) Stop(_ context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	return nil
}

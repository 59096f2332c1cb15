// Package poller pkg/poller/relay.go supervises the live hub event
// stream.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/hubview/hubview/pkg/bus"
)

const (
	// DefaultRelayIdleDelay is the recheck delay with no hub configured.
	DefaultRelayIdleDelay = time.Second

	// DefaultRelayWatchInterval is how often the relay checks whether
	// the hub connection configuration still matches the stream it is
	// running.
	DefaultRelayWatchInterval = 100 * time.Millisecond
)

// Relay keeps a streaming subscription to the hub's push feed open and
// republishes every received event as a states envelope. It captures
// the connection's address and token when the stream starts; the moment
// the shared handle no longer matches that capture, the inner stream is
// canceled and the outer loop re-evaluates from scratch. This is how a
// configuration change takes effect without a process restart, with at
// most one live upstream subscription per configuration epoch.
type Relay struct {
	source        HubSource
	bus           Publisher
	idleDelay     time.Duration
	watchInterval time.Duration
}

// NewRelay creates a relay supervisor.
func NewRelay(source HubSource, publisher Publisher) *Relay {
	return &Relay{
		source:        source,
		bus:           publisher,
		idleDelay:     DefaultRelayIdleDelay,
		watchInterval: DefaultRelayWatchInterval,
	}
}

// Start runs the supervisor loop and blocks until ctx is canceled.
func (r *Relay) Start(ctx context.Context) error {
	log.Printf("Starting hub event relay")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		client := r.source()
		if client == nil {
			sleep(ctx, r.idleDelay)
			continue
		}

		r.run(ctx, client)
	}
}

// run owns one configuration epoch: it streams from the captured
// connection until the configuration changes, the stream dies, or ctx
// is canceled. Canceling the inner context closes the underlying
// websocket, so no connection outlives its epoch.
func (r *Relay) run(ctx context.Context, client HubClient) {
	address, token := client.Address(), client.Token()

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := client.Stream(streamCtx)
	if err != nil {
		log.Printf("Error opening hub event stream: %v", err)
		sleep(ctx, r.idleDelay)

		return
	}

	relayConnectsTotal.Inc()
	log.Printf("Hub event stream connected to %s", address)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for event := range events {
			r.bus.Publish(bus.Envelope{
				Type:    bus.EventStates,
				Payload: event,
			})
		}
	}()

	ticker := time.NewTicker(r.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cancel()
			<-done

			return
		case <-done:
			// Stream ended on its own; back off briefly before the
			// outer loop reconnects.
			log.Printf("Hub event stream ended, reconnecting")
			sleep(ctx, r.idleDelay)

			return
		case <-ticker.C:
			current := r.source()
			if current == nil || current.Address() != address || current.Token() != token {
				log.Printf("Hub connection changed, restarting event stream")
				cancel()
				<-done

				return
			}
		}
	}
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

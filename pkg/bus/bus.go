// Package bus pkg/bus/bus.go implements the event fanout channel. Every
// notification in the system (data updates, tracking changes, hub
// status, relayed hub events) goes through one Bus; subscribers filter
// by envelope type themselves.
package bus

import (
	"context"
	"sync"
)

const (
	// DefaultBacklog is the per-subscriber envelope backlog used when
	// the configured backlog is not positive.
	DefaultBacklog = 64
)

// Envelope is a tagged event. The bus treats the payload as opaque.
type Envelope struct {
	Type    string      `json:"event_type"`
	Payload interface{} `json:"payload"`
}

// Bus is a single fanout channel with independently-queued subscribers.
// Publishing never blocks: a subscriber that falls behind loses its
// oldest queued envelopes instead of stalling the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uint64]*Subscriber
	nextID      uint64
	backlog     int
}

// New creates a Bus with the given per-subscriber backlog.
func New(backlog int) *Bus {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}

	return &Bus{
		subscribers: make(map[uint64]*Subscriber),
		backlog:     backlog,
	}
}

// Publish fans the envelope out to every current subscriber's queue.
func (b *Bus) Publish(env Envelope) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		sub.push(env)
	}

	publishedTotal.Inc()
}

// Subscribe registers a new subscriber with its own bounded queue.
func (b *Bus) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++

	sub := &Subscriber{
		bus:     b,
		id:      b.nextID,
		backlog: b.backlog,
		ready:   make(chan struct{}, 1),
	}
	b.subscribers[sub.id] = sub

	subscriberGauge.Inc()

	return sub
}

// Unsubscribe removes a subscriber. Pending Next calls return
// ErrSubscriberClosed. Unsubscribing twice is a no-op.
func (b *Bus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	_, present := b.subscribers[sub.id]
	delete(b.subscribers, sub.id)
	b.mu.Unlock()

	if present {
		sub.close()
		subscriberGauge.Dec()
	}
}

// Subscriber is one consumer's private queue on the bus.
type Subscriber struct {
	bus     *Bus
	id      uint64
	backlog int

	mu     sync.Mutex
	queue  []Envelope
	closed bool
	ready  chan struct{}
}

// Next returns the oldest queued envelope, blocking until one arrives,
// the context is canceled, or the subscriber is unsubscribed.
func (s *Subscriber) Next(ctx context.Context) (Envelope, error) {
	for {
		s.mu.Lock()

		if len(s.queue) > 0 {
			env := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			return env, nil
		}

		if s.closed {
			s.mu.Unlock()
			return Envelope{}, ErrSubscriberClosed
		}

		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Envelope{}, ctx.Err()
		case <-s.ready:
		}
	}
}

// Len reports the current queue depth.
func (s *Subscriber) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

func (s *Subscriber) push(env Envelope) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	// Evict the oldest envelope when the backlog is full. The newest
	// envelope is never the one dropped.
	if len(s.queue) >= s.backlog {
		s.queue = s.queue[1:]
		droppedTotal.Inc()
	}

	s.queue = append(s.queue, env)
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

func (s *Subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	// Wake any blocked Next.
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

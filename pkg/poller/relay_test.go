package poller

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// switchableSource lets a test swap the hub client under a running
// relay, the way a config update swaps the shared handle.
type switchableSource struct {
	mu     sync.Mutex
	client HubClient
}

func (s *switchableSource) get() HubClient {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client
}

func (s *switchableSource) set(client HubClient) {
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
}

func newTestRelay(source HubSource, publisher Publisher) *Relay {
	r := NewRelay(source, publisher)
	r.idleDelay = 5 * time.Millisecond
	r.watchInterval = 5 * time.Millisecond

	return r
}

// streamingClient returns a mock whose Stream yields the given events
// and then stays open until its context is canceled. The returned
// channel closes when the stream's context ends.
func streamingClient(ctrl *gomock.Controller, address, token string, events ...string) (*MockHubClient, chan struct{}) {
	client := NewMockHubClient(ctrl)
	client.EXPECT().Address().Return(address).AnyTimes()
	client.EXPECT().Token().Return(token).AnyTimes()

	closed := make(chan struct{})

	client.EXPECT().Stream(gomock.Any()).DoAndReturn(func(ctx context.Context) (<-chan json.RawMessage, error) {
		ch := make(chan json.RawMessage, len(events))
		for _, event := range events {
			ch <- json.RawMessage(event)
		}

		go func() {
			<-ctx.Done()
			close(ch)
			close(closed)
		}()

		return ch, nil
	})

	return client, closed
}

func nextStates(t *testing.T, sub *bus.Subscriber) json.RawMessage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for {
		env, err := sub.Next(ctx)
		require.NoError(t, err)

		if env.Type != bus.EventStates {
			continue
		}

		payload, ok := env.Payload.(json.RawMessage)
		require.True(t, ok)

		return payload
	}
}

func TestRelayForwardsEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventBus := bus.New(16)
	sub := eventBus.Subscribe()
	defer eventBus.Unsubscribe(sub)

	client, _ := streamingClient(ctrl, "192.168.1.10:8123", "token", `{"event_type":"state_changed"}`)

	source := &switchableSource{client: client}
	relay := newTestRelay(source.get, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- relay.Start(ctx) }()

	payload := nextStates(t, sub)
	assert.JSONEq(t, `{"event_type":"state_changed"}`, string(payload))

	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestRelayRestartsOnConfigChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventBus := bus.New(16)
	sub := eventBus.Subscribe()
	defer eventBus.Unsubscribe(sub)

	first, firstClosed := streamingClient(ctrl, "192.168.1.10:8123", "old", `{"from":"first"}`)
	second, _ := streamingClient(ctrl, "192.168.1.20:8123", "new", `{"from":"second"}`)

	source := &switchableSource{client: first}
	relay := newTestRelay(source.get, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- relay.Start(ctx) }()

	assert.JSONEq(t, `{"from":"first"}`, string(nextStates(t, sub)))

	// Reconfigure the hub. The relay must drop the first stream and
	// open exactly one stream to the new connection.
	source.set(second)

	select {
	case <-firstClosed:
	case <-time.After(time.Second):
		t.Fatal("first stream was not closed after config change")
	}

	assert.JSONEq(t, `{"from":"second"}`, string(nextStates(t, sub)))

	cancel()
	<-errCh
}

func TestRelayRestartsOnTokenChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventBus := bus.New(16)
	sub := eventBus.Subscribe()
	defer eventBus.Unsubscribe(sub)

	// Same address, different token: still a new epoch.
	first, firstClosed := streamingClient(ctrl, "192.168.1.10:8123", "old", `{"from":"first"}`)
	second, _ := streamingClient(ctrl, "192.168.1.10:8123", "new", `{"from":"second"}`)

	source := &switchableSource{client: first}
	relay := newTestRelay(source.get, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- relay.Start(ctx) }()

	assert.JSONEq(t, `{"from":"first"}`, string(nextStates(t, sub)))

	source.set(second)

	select {
	case <-firstClosed:
	case <-time.After(time.Second):
		t.Fatal("first stream was not closed after token change")
	}

	assert.JSONEq(t, `{"from":"second"}`, string(nextStates(t, sub)))

	cancel()
	<-errCh
}

func TestRelayReconnectsAfterStreamEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventBus := bus.New(16)
	sub := eventBus.Subscribe()
	defer eventBus.Unsubscribe(sub)

	client := NewMockHubClient(ctrl)
	client.EXPECT().Address().Return("192.168.1.10:8123").AnyTimes()
	client.EXPECT().Token().Return("token").AnyTimes()

	// First stream dies after one event; the relay must come back for
	// a second.
	calls := 0
	client.EXPECT().Stream(gomock.Any()).DoAndReturn(func(ctx context.Context) (<-chan json.RawMessage, error) {
		calls++

		ch := make(chan json.RawMessage, 1)

		if calls == 1 {
			ch <- json.RawMessage(`{"attempt":1}`)
			close(ch)

			return ch, nil
		}

		ch <- json.RawMessage(`{"attempt":2}`)

		go func() {
			<-ctx.Done()
			close(ch)
		}()

		return ch, nil
	}).MinTimes(2)

	source := &switchableSource{client: client}
	relay := newTestRelay(source.get, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- relay.Start(ctx) }()

	assert.JSONEq(t, `{"attempt":1}`, string(nextStates(t, sub)))
	assert.JSONEq(t, `{"attempt":2}`, string(nextStates(t, sub)))

	cancel()
	<-errCh
}

func TestRelayRetriesFailedConnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventBus := bus.New(16)
	sub := eventBus.Subscribe()
	defer eventBus.Unsubscribe(sub)

	client := NewMockHubClient(ctrl)
	client.EXPECT().Address().Return("192.168.1.10:8123").AnyTimes()
	client.EXPECT().Token().Return("token").AnyTimes()

	calls := 0
	client.EXPECT().Stream(gomock.Any()).DoAndReturn(func(ctx context.Context) (<-chan json.RawMessage, error) {
		calls++

		if calls == 1 {
			return nil, errors.New("connection refused")
		}

		ch := make(chan json.RawMessage, 1)
		ch <- json.RawMessage(`{"attempt":2}`)

		go func() {
			<-ctx.Done()
			close(ch)
		}()

		return ch, nil
	}).MinTimes(2)

	source := &switchableSource{client: client}
	relay := newTestRelay(source.get, eventBus)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() { errCh <- relay.Start(ctx) }()

	assert.JSONEq(t, `{"attempt":2}`, string(nextStates(t, sub)))

	cancel()
	<-errCh
}

func TestRelayIdlesWithoutHub(t *testing.T) {
	source := &switchableSource{}
	relay := newTestRelay(source.get, bus.New(16))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := relay.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

package bus

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := New(8)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(Envelope{Type: EventData, Payload: "one"})
	b.Publish(Envelope{Type: EventStates, Payload: "two"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	env, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, EventData, env.Type)
	assert.Equal(t, "one", env.Payload)

	env, err = sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, EventStates, env.Type)
	assert.Equal(t, "two", env.Payload)
}

func TestBacklogDropsOldest(t *testing.T) {
	const backlog = 4

	b := New(backlog)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	for i := 0; i < backlog*3; i++ {
		b.Publish(Envelope{Type: EventData, Payload: i})
	}

	assert.Equal(t, backlog, sub.Len(), "queue must stay bounded")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// The survivors are the newest envelopes, in publish order.
	for i := backlog * 2; i < backlog*3; i++ {
		env, err := sub.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, env.Payload)
	}
}

func TestSlowSubscriberDoesNotStallOthers(t *testing.T) {
	b := New(2)

	slow := b.Subscribe()
	defer b.Unsubscribe(slow)

	fast := b.Subscribe()
	defer b.Unsubscribe(fast)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		b.Publish(Envelope{Type: EventData, Payload: i})

		env, err := fast.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, env.Payload)
	}

	// The slow subscriber kept only the newest two.
	env, err := slow.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, env.Payload)
}

func TestNextBlocksUntilPublish(t *testing.T) {
	b := New(8)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	go func() {
		time.Sleep(50 * time.Millisecond)
		b.Publish(Envelope{Type: EventHAStatus, Payload: nil})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	env, err := sub.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, EventHAStatus, env.Type)
}

func TestNextContextCanceled(t *testing.T) {
	b := New(8)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := sub.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnsubscribeWakesNext(t *testing.T) {
	b := New(8)
	sub := b.Subscribe()

	errCh := make(chan error, 1)

	go func() {
		_, err := sub.Next(context.Background())
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	b.Unsubscribe(sub)

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSubscriberClosed)
	case <-time.After(time.Second):
		t.Fatal("Next did not return after unsubscribe")
	}
}

func TestUnsubscribeTwice(t *testing.T) {
	b := New(8)
	sub := b.Subscribe()

	b.Unsubscribe(sub)
	b.Unsubscribe(sub)

	b.Publish(Envelope{Type: EventData})
	assert.Equal(t, 0, sub.Len())
}

func TestEventTrackedEntity(t *testing.T) {
	assert.Equal(t, "entity.tracked.light.kitchen", EventTrackedEntity("light.kitchen"))
}

func TestConcurrentPublish(t *testing.T) {
	b := New(256)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	const goroutines = 8
	const perGoroutine = 16

	done := make(chan struct{})

	for g := 0; g < goroutines; g++ {
		go func(g int) {
			for i := 0; i < perGoroutine; i++ {
				b.Publish(Envelope{Type: EventData, Payload: fmt.Sprintf("%d-%d", g, i)})
			}
			done <- struct{}{}
		}(g)
	}

	for g := 0; g < goroutines; g++ {
		<-done
	}

	assert.Equal(t, goroutines*perGoroutine, sub.Len())
}

package poller

import (
	"context"
	"testing"
	"time"

	"github.com/hubview/hubview/pkg/bus"
	"github.com/stretchr/testify/assert"
)

func TestRunnerStartStop(t *testing.T) {
	eventBus := bus.New(8)

	collector := NewCollector(nilSource(), nil, nil, eventBus, 10*time.Millisecond)
	status := NewStatusChecker(nilSource(), eventBus, 10*time.Millisecond)
	relay := newTestRelay(nilSource(), eventBus)

	runner := NewRunner(collector, status, relay)

	errCh := make(chan error, 1)

	go func() { errCh <- runner.Start(context.Background()) }()

	// Let the loops spin a few cycles before stopping.
	time.Sleep(50 * time.Millisecond)

	assert.NoError(t, runner.Stop(context.Background()))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hubview/hubview/pkg/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialEvents(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events?token=" + token

	return websocket.DefaultDialer.Dial(wsURL, nil)
}

func TestStreamEventsDeliversEnvelopes(t *testing.T) {
	s := newTestServer(t)

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	conn, _, err := dialEvents(t, srv, testToken)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	// Give the handler a moment to register its subscriber before
	// publishing.
	time.Sleep(50 * time.Millisecond)

	s.bus.Publish(bus.Envelope{
		Type:    bus.EventData,
		Payload: map[string]interface{}{"updates": []string{"sensor.power.state"}},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	var env bus.Envelope
	require.NoError(t, conn.ReadJSON(&env))

	assert.Equal(t, bus.EventData, env.Type)

	payload, ok := env.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"sensor.power.state"}, payload["updates"])
}

func TestStreamEventsRequiresToken(t *testing.T) {
	s := newTestServer(t)

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	_, resp, err := dialEvents(t, srv, "wrong")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStreamEventsSurvivesDisconnect(t *testing.T) {
	s := newTestServer(t)

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	first, _, err := dialEvents(t, srv, testToken)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// A dropped client must not wedge the stream for the next one.
	second, _, err := dialEvents(t, srv, testToken)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	time.Sleep(50 * time.Millisecond)

	s.bus.Publish(bus.Envelope{Type: bus.EventHAStatus})

	require.NoError(t, second.SetReadDeadline(time.Now().Add(time.Second)))

	var env bus.Envelope
	require.NoError(t, second.ReadJSON(&env))
	assert.Equal(t, bus.EventHAStatus, env.Type)
}

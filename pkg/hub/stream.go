// Package hub pkg/hub/stream.go subscribes to the hub's websocket push
// feed.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/gorilla/websocket"
)

type wsMessage struct {
	ID          int64  `json:"id,omitempty"`
	Type        string `json:"type"`
	AccessToken string `json:"access_token,omitempty"`
	EventType   string `json:"event_type,omitempty"`
}

const (
	wsTypeAuthRequired = "auth_required"
	wsTypeAuth         = "auth"
	wsTypeAuthOK       = "auth_ok"
	wsTypeAuthInvalid  = "auth_invalid"
	wsTypeSubscribe    = "subscribe_events"
	wsTypeEvent        = "event"

	subscribedEventType = "state_changed"
)

// Stream opens the hub's push feed, subscribes to state changes, and
// delivers each event message verbatim on the returned channel. The
// channel closes when the stream ends; canceling the context closes
// the underlying connection, so callers never leak it.
func (c *Client) Stream(ctx context.Context) (<-chan json.RawMessage, error) {
	u := url.URL{Scheme: "ws", Host: c.address, Path: "/api/websocket"}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: websocket dial failed: %w", ErrHubUnreachable, err)
	}

	if err := c.handshake(conn); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("Error closing websocket connection: %v", closeErr)
		}

		return nil, err
	}

	events := make(chan json.RawMessage)

	// Unblock the read loop when the caller cancels.
	go func() {
		<-ctx.Done()

		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket connection: %v", err)
		}
	}()

	go c.listenForEvents(ctx, conn, events)

	return events, nil
}

// handshake performs the hub's auth exchange and subscribes to state
// change events.
func (c *Client) handshake(conn *websocket.Conn) error {
	var greeting wsMessage

	if err := conn.ReadJSON(&greeting); err != nil {
		return fmt.Errorf("%w: failed to read greeting: %w", ErrHubUnreachable, err)
	}

	if greeting.Type != wsTypeAuthRequired {
		return fmt.Errorf("unexpected greeting %q", greeting.Type)
	}

	if err := conn.WriteJSON(wsMessage{Type: wsTypeAuth, AccessToken: c.token}); err != nil {
		return fmt.Errorf("failed to send auth: %w", err)
	}

	var authResult wsMessage

	if err := conn.ReadJSON(&authResult); err != nil {
		return fmt.Errorf("failed to read auth result: %w", err)
	}

	if authResult.Type == wsTypeAuthInvalid {
		return ErrAuthFailed
	}

	if authResult.Type != wsTypeAuthOK {
		return fmt.Errorf("unexpected auth result %q", authResult.Type)
	}

	if err := conn.WriteJSON(wsMessage{ID: 1, Type: wsTypeSubscribe, EventType: subscribedEventType}); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	return nil
}

func (c *Client) listenForEvents(ctx context.Context, conn *websocket.Conn, events chan<- json.RawMessage) {
	defer close(events)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Read errors include the close forced by ctx cancellation.
			if ctx.Err() == nil {
				log.Printf("Websocket error: %v", err)
			}

			return
		}

		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Error parsing hub event: %v", err)
			continue
		}

		if msg.Type != wsTypeEvent {
			continue
		}

		select {
		case events <- json.RawMessage(data):
		case <-ctx.Done():
			return
		}
	}
}

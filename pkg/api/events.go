// Package api pkg/api/events.go streams bus envelopes to websocket
// clients.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hubview/hubview/pkg/bus"
)

// streamEvents attaches one bus subscriber to a websocket client and
// forwards every envelope until the client disconnects. Each client has
// its own backlog on the bus, so a slow browser tab only loses its own
// history.
func (s *APIServer) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	defer func(conn *websocket.Conn) {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket connection: %v", err)
		}
	}(conn)

	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The read loop exists to notice the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		env, err := sub.Next(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, bus.ErrSubscriberClosed) {
				log.Printf("Event stream ended: %v", err)
			}

			return
		}

		if err := conn.WriteJSON(env); err != nil {
			return
		}
	}
}

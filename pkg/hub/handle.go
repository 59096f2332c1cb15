// Package hub pkg/hub/handle.go holds the process-wide hub connection.
package hub

import (
	"sync/atomic"
)

// Handle is the atomically-swappable reference to the current hub
// client. The background loops snapshot it once per unit of work and
// the configuration path replaces it wholesale, so readers always see
// either the old or the new connection in full.
type Handle struct {
	client atomic.Pointer[Client]
}

// NewHandle returns an empty handle (no hub configured).
func NewHandle() *Handle {
	return &Handle{}
}

// Set replaces the current client.
func (h *Handle) Set(client *Client) {
	h.client.Store(client)
}

// Clear removes the current client.
func (h *Handle) Clear() {
	h.client.Store(nil)
}

// Snapshot returns the current client, or nil when no hub is
// configured.
func (h *Handle) Snapshot() *Client {
	return h.client.Load()
}

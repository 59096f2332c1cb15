// Package hub pkg/hub/errors.go provides errors for the hub package.
package hub

import (
	"errors"
	"fmt"
)

var (
	// ErrHubUnreachable wraps network-level failures talking to the hub.
	ErrHubUnreachable = errors.New("hub unreachable")

	// ErrAuthFailed is returned when the hub rejects the access token.
	ErrAuthFailed = errors.New("hub authentication failed")
)

// Error is a typed upstream-API failure carrying the hub's status code
// and reason. Background loops surface it in ha_status envelopes
// instead of propagating it.
type Error struct {
	Code   int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("hub error %d: %s", e.Code, e.Reason)
}

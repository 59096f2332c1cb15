// Package bus pkg/bus/errors.go provides errors for the bus package.
package bus

import "errors"

var (
	// ErrSubscriberClosed is returned by Next after Unsubscribe.
	ErrSubscriberClosed = errors.New("subscriber closed")
)

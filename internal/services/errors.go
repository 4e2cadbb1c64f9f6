// Package services defines the business logic for caddy chat replies, the
// shot log, and the smart relay. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Relay-related errors.
var (
	// ErrRelayNotConfigured is returned when the smart relay is asked for a
	// reply but no text generator was configured (typically a missing API key).
	ErrRelayNotConfigured = errors.New("assistant relay is not configured")

	// ErrEmptyReply is returned when the relay produced a response with no
	// usable text.
	ErrEmptyReply = errors.New("assistant relay returned an empty reply")
)

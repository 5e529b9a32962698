// Package common contains shared constants and sentinel errors used across
// Presence components.
package common

import "errors"

var (
	// transport-level errors
	ErrUnavailable = errors.New("server unavailable")

	// auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// device errors
	ErrDeviceNotReady = errors.New("capture device not ready")
	ErrNoDevice       = errors.New("no capture device configured")
)

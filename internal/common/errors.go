// Package common defines shared constants and sentinel errors used across
// the SalesPro client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Remote profile store availability. ErrRemoteUnavailable covers
	// transport and auth failures; ErrRemoteUnconfigured means no DSN was
	// provided at all and no network call was attempted.
	ErrRemoteUnavailable  = errors.New("remote store unavailable")
	ErrRemoteUnconfigured = errors.New("remote store not configured")

	// Local storage errors.
	ErrQuotaExceeded         = errors.New("storage quota exceeded")
	ErrLocalDataNotAvailable = errors.New("local data not available")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Collaborator errors.
	ErrAIUnavailable = errors.New("ai oracle unavailable")
)

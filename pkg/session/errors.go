package session

import "errors"

var (
	// ErrSessionNotFound indicates no live record exists for an ID.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the record outlived its lifetime.
	ErrSessionExpired = errors.New("session.expired")

	// ErrInvalidRecord indicates a record that cannot be persisted or
	// decoded.
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrIDGeneration indicates the secure random source failed.
	ErrIDGeneration = errors.New("session.id_generation_failed")

	// ErrInvalidPayload indicates a bus event carried an unexpected
	// payload type.
	ErrInvalidPayload = errors.New("session.invalid_payload")

	// ErrAuthenticationFailed is the conventional error for an
	// Authenticator rejecting credentials.
	ErrAuthenticationFailed = errors.New("session.authentication_failed")
)

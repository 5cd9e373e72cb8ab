package session

import (
	"context"
	"time"
)

// Store is the adapter interface over the underlying session storage
// engine. Implementations own cross-request concurrency for a session
// ID; this module writes each record at most once per request (at
// shutdown) and the policy between two concurrent writers is
// last-flush-wins.
type Store interface {
	// Load retrieves the record for the given session ID.
	// Returns ErrSessionNotFound when no live record exists.
	Load(ctx context.Context, id string) (*Record, error)

	// Save persists the record under the given ID with the supplied
	// lifetime, replacing any previous state.
	Save(ctx context.Context, id string, rec *Record, ttl time.Duration) error

	// Delete removes the record. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired sweeps records past their lifetime. Backends with
	// native expiry may implement this as a no-op.
	DeleteExpired(ctx context.Context) error
}

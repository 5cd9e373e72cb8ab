package session

import (
	"time"
)

// Identity is the session-scoped snapshot of a user record. A nil
// *Identity on a Record means the session is anonymous.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// OutboxEntry is a pending-notification summary cached on the session.
type OutboxEntry struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	Recipient string    `json:"recipient,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is the full per-client server-side state persisted under an
// opaque session identifier.
//
// Invariants: Magic equals the fingerprint computed when the record was
// initialized; Identified is true only while User is non-nil and an
// authorization check has passed. Both are maintained by Manager, which
// is the only writer outside the CSRF guard's FormTokens updates.
type Record struct {
	// Magic is the fingerprint snapshot captured at initialization.
	Magic string `json:"magic"`

	// User is the cached identity; nil means anonymous.
	User *Identity `json:"user,omitempty"`

	// Identified reports whether a successful, authorized login
	// populated User.
	Identified bool `json:"identified"`

	// Outbox caches pending-notification summaries for User.
	Outbox []OutboxEntry `json:"outbox,omitempty"`

	// FormTokens maps form-hash keys to single-use CSRF tokens.
	FormTokens map[string]string `json:"form_tokens,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// newRecord returns a record reset to anonymous defaults, stamped with
// the given fingerprint.
func newRecord(magic string) Record {
	now := time.Now()
	return Record{
		Magic:      magic,
		FormTokens: make(map[string]string),
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

// clone returns a deep copy so that a stored record and a live one
// never alias each other's maps or slices.
func (r *Record) clone() *Record {
	cp := *r
	if r.FormTokens != nil {
		cp.FormTokens = make(map[string]string, len(r.FormTokens))
		for k, v := range r.FormTokens {
			cp.FormTokens[k] = v
		}
	}
	if r.Outbox != nil {
		cp.Outbox = make([]OutboxEntry, len(r.Outbox))
		copy(cp.Outbox, r.Outbox)
	}
	if r.User != nil {
		user := *r.User
		cp.User = &user
	}
	return &cp
}

// Session is the per-request handle on one client's state: the opaque
// identifier, the mutable record, and the fingerprint computed from the
// current request. Exactly one Session exists per request; it is never
// shared across requests.
type Session struct {
	// ID is the opaque session identifier delivered via cookie.
	ID string

	// Record is the session state, flushed to the store at shutdown.
	Record Record

	fingerprint string
	cli         bool
	flushed     bool
}

// UserID returns the cached user's ID, or zero for anonymous sessions.
func (s *Session) UserID() int64 {
	if s.Record.User == nil {
		return 0
	}
	return s.Record.User.ID
}

// Identified reports whether the session carries a fully authenticated
// identity.
func (s *Session) Identified() bool {
	return s.Record.Identified
}

// CLI reports whether this is a synthesized non-interactive session
// with no cookie or store backing.
func (s *Session) CLI() bool {
	return s.cli
}

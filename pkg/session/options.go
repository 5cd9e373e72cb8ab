package session

import (
	"log/slog"

	"github.com/gflauder/PeerReviewCore/pkg/cookie"
	"github.com/gflauder/PeerReviewCore/pkg/events"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets a custom session store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithCookieManager sets the cookie manager used for the session-ID
// cookie. Required unless only StartupCLI is used.
func WithCookieManager(cookies *cookie.Manager) Option {
	return func(m *Manager) { m.cookies = cookies }
}

// WithConfig sets custom configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithFingerprintFunc overrides the fingerprint derivation.
func WithFingerprintFunc(fn FingerprintFunc) Option {
	return func(m *Manager) {
		if fn != nil {
			m.fingerprintFunc = fn
		}
	}
}

// WithAuthenticator sets the external credential verifier.
func WithAuthenticator(auth Authenticator) Option {
	return func(m *Manager) { m.auth = auth }
}

// WithAuthorizer sets the external policy engine consulted on login.
func WithAuthorizer(authz Authorizer) Option {
	return func(m *Manager) { m.authz = authz }
}

// WithOutboxProvider sets the pending-notification summary source.
func WithOutboxProvider(p OutboxProvider) Option {
	return func(m *Manager) { m.outbox = p }
}

// WithBus sets the event bus the manager publishes on. Defaults to a
// private bus, which makes published events invisible; share one bus
// across subsystems for the event contracts to work.
func WithBus(bus *events.Bus) Option {
	return func(m *Manager) {
		if bus != nil {
			m.bus = bus
		}
	}
}

// WithLogger sets the ambient logger. Defaults to a discarding logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewFromConfig creates a Manager from the provided Config; additional
// options are applied after it.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

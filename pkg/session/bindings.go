package session

import (
	"context"
	"net/http"

	"github.com/gflauder/PeerReviewCore/pkg/events"
)

// StartupPayload accompanies the startup event. The host transport
// fills W and R; the session subscriber populates Session.
type StartupPayload struct {
	W       http.ResponseWriter
	R       *http.Request
	Session *Session
}

// CLIStartupPayload accompanies the cli_startup event; the session
// subscriber populates Session.
type CLIStartupPayload struct {
	Session *Session
}

// ShutdownPayload accompanies the shutdown event.
type ShutdownPayload struct {
	W       http.ResponseWriter
	Session *Session
}

// LoginPayload accompanies the login event. The subscriber runs the
// login algorithm and reports the outcome in OK.
type LoginPayload struct {
	Session  *Session
	Email    string
	Password string
	OneTime  string
	OK       bool
}

// LogoutPayload accompanies the logout event.
type LogoutPayload struct {
	Session *Session
}

// UserChangedPayload accompanies the user_changed event emitted by the
// canonical identity source after it mutates a user record.
type UserChangedPayload struct {
	Session *Session
	User    Identity
}

// OutboxChangedPayload accompanies the outbox_changed event.
type OutboxChangedPayload struct {
	Session *Session
}

// NewUserPayload is published under the newuser kind after a freshly
// authenticated identity is installed.
type NewUserPayload struct {
	Session *Session
	User    Identity
}

// Bind registers the manager's subscriber side on the bus: session
// resolution early on startup, the flush last on shutdown, and the
// identity/cache handlers at normal priority.
//
// Startup handling is idempotent per request: a payload whose Session
// is already populated is left alone.
func (m *Manager) Bind(bus *events.Bus) {
	bus.Subscribe(events.Startup, events.PriorityEarly, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*StartupPayload)
		if !ok {
			return ErrInvalidPayload
		}
		if p.Session != nil {
			return nil
		}
		sess, err := m.Startup(ctx, p.W, p.R)
		if err != nil {
			return err
		}
		p.Session = sess
		return nil
	})

	bus.Subscribe(events.CLIStartup, events.PriorityEarly, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*CLIStartupPayload)
		if !ok {
			return ErrInvalidPayload
		}
		if p.Session == nil {
			p.Session = m.StartupCLI()
		}
		return nil
	})

	bus.Subscribe(events.Shutdown, events.PriorityLate, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*ShutdownPayload)
		if !ok {
			return ErrInvalidPayload
		}
		return m.Shutdown(ctx, p.W, p.Session)
	})

	bus.Subscribe(events.Login, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*LoginPayload)
		if !ok {
			return ErrInvalidPayload
		}
		p.OK = m.Login(ctx, p.Session, p.Email, p.Password, p.OneTime)
		return nil
	})

	bus.Subscribe(events.Logout, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*LogoutPayload)
		if !ok {
			return ErrInvalidPayload
		}
		return m.Logout(ctx, p.Session)
	})

	bus.Subscribe(events.UserChanged, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*UserChangedPayload)
		if !ok {
			return ErrInvalidPayload
		}
		m.ReloadUser(p.Session, p.User)
		return nil
	})

	bus.Subscribe(events.OutboxChanged, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*OutboxChangedPayload)
		if !ok {
			return ErrInvalidPayload
		}
		m.ReloadOutbox(ctx, p.Session)
		return nil
	})
}

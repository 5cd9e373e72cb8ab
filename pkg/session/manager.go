package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gflauder/PeerReviewCore/pkg/audit"
	"github.com/gflauder/PeerReviewCore/pkg/cookie"
	"github.com/gflauder/PeerReviewCore/pkg/events"
	"github.com/gflauder/PeerReviewCore/pkg/fingerprint"
)

// FingerprintFunc derives the hijack-detection digest for a request.
type FingerprintFunc func(r *http.Request) string

// Manager owns session state transitions: discover-or-create at
// startup, fingerprint validation, login/logout identity changes and
// the shutdown flush. One Manager serves many requests; each request
// gets its own Session from Startup or StartupCLI.
type Manager struct {
	store           Store
	cookies         *cookie.Manager
	config          Config
	fingerprintFunc FingerprintFunc
	auth            Authenticator
	authz           Authorizer
	outbox          OutboxProvider
	bus             *events.Bus
	log             *slog.Logger
}

// New creates a session manager. A cookie manager is required for
// HTTP-backed sessions; the store defaults to an in-memory one.
func New(opts ...Option) *Manager {
	m := &Manager{
		config:          DefaultConfig(),
		fingerprintFunc: fingerprint.Generate,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.bus == nil {
		m.bus = events.New()
	}
	if m.cookies == nil {
		// Fail fast: an unsigned session cookie would be forgeable.
		panic("session: cookie manager is required")
	}

	return m
}

// Startup resolves or creates the session for the current request. An
// existing record whose magic no longer matches the freshly computed
// fingerprint is treated as hijack-suspect and silently reset; a record
// without a magic is initialized in place. A store failure other than a
// missing, expired or undecodable record aborts the request. Must run
// before any other session operation for the request.
func (m *Manager) Startup(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	fp := m.fingerprintFunc(r)

	if id, err := m.cookies.GetSigned(r, m.config.CookieName); err == nil && id != "" {
		rec, err := m.store.Load(ctx, id)
		if err == nil {
			sess := &Session{ID: id, Record: *rec.clone(), fingerprint: fp}

			switch {
			case sess.Record.Magic == "":
				sess.Record = newRecord(fp)
			case !magicMatches(sess.Record.Magic, fp):
				m.log.WarnContext(ctx, "session fingerprint mismatch, resetting",
					slog.String("session_id", id))
				if err := m.Reset(ctx, sess); err != nil {
					return nil, err
				}
			default:
				sess.Record.LastSeenAt = time.Now()
			}

			if err := m.setCookie(w, sess.ID); err != nil {
				return nil, err
			}
			return sess, nil
		}
		// A missing, expired or corrupt record recycles into a fresh
		// session; a store outage must fail the request instead of
		// silently logging the user out.
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) && !errors.Is(err, ErrInvalidRecord) {
			return nil, err
		}
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	sess := &Session{ID: id, Record: newRecord(fp), fingerprint: fp}
	if err := m.setCookie(w, sess.ID); err != nil {
		return nil, err
	}

	m.log.DebugContext(ctx, "session created", slog.String("session_id", sess.ID))
	return sess, nil
}

// StartupCLI synthesizes a minimal anonymous session for contexts with
// no transport-level request (batch or console invocation). The session
// is detached: no cookie, no store backing, and Shutdown is a no-op.
func (m *Manager) StartupCLI() *Session {
	rec := newRecord("")
	rec.User = &Identity{ID: 0}
	return &Session{Record: rec, cli: true}
}

// Shutdown flushes the session record to the store and refreshes the
// session cookie. It persists pending mutations exactly once per
// request; repeated calls are no-ops. Must be the last lifecycle
// operation for the request.
func (m *Manager) Shutdown(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil || sess.cli || sess.flushed {
		return nil
	}
	sess.flushed = true

	if err := m.store.Save(ctx, sess.ID, sess.Record.clone(), m.config.MaxLifetime()); err != nil {
		return err
	}
	return m.setCookie(w, sess.ID)
}

// Reset unconditionally wipes all session-scoped storage for the
// current session ID, rotates the identifier (defeating session
// fixation) and reinitializes the record to anonymous defaults with a
// fresh magic. Used on hijack detection and explicit logout.
func (m *Manager) Reset(ctx context.Context, sess *Session) error {
	if sess.cli {
		sess.Record = newRecord("")
		sess.Record.User = &Identity{ID: 0}
		return nil
	}

	if err := m.store.Delete(ctx, sess.ID); err != nil {
		return err
	}

	id, err := newSessionID()
	if err != nil {
		return err
	}

	sess.ID = id
	sess.Record = newRecord(sess.fingerprint)
	return nil
}

// Logout resets the session to anonymous state.
func (m *Manager) Logout(ctx context.Context, sess *Session) error {
	return m.Reset(ctx, sess)
}

// Login delegates credential verification to the Authenticator, then
// applies the login policy:
//
//   - on a successful authentication whose identity differs from the
//     previously cached one, an audit "login" event is published and
//     the session is reset before the new identity is installed, so a
//     changed identity never continues in a session created under a
//     different one;
//   - the identity is installed, Identified is set, the outbox cache
//     refreshed and a "newuser" event published;
//   - the Authorizer is then consulted for the "login" action; denial
//     resets the session and fails the login.
//
// A failed authentication leaves the session untouched. Re-login by the
// same identity deliberately skips the reset; rotating anyway would be
// defense-in-depth the state machine does not require.
//
// Returns true only if authentication and authorization both succeed.
func (m *Manager) Login(ctx context.Context, sess *Session, email, password, onetime string) bool {
	if m.auth == nil {
		return false
	}

	previousID := sess.UserID()

	ident, err := m.auth.Authenticate(ctx, email, password, onetime)
	if err != nil || ident == nil {
		m.log.DebugContext(ctx, "authentication failed", slog.String("email", email))
		return false
	}

	if ident.ID != previousID {
		_ = m.bus.Trigger(ctx, events.Log, audit.Event{
			UserID:     ident.ID,
			ObjectType: "user",
			ObjectID:   ident.ID,
			Action:     ActionLogin,
		})
		if err := m.Reset(ctx, sess); err != nil {
			m.log.ErrorContext(ctx, "session reset failed during login", slog.Any("error", err))
			return false
		}
	}

	user := *ident
	sess.Record.User = &user
	sess.Record.Identified = true
	m.ReloadOutbox(ctx, sess)

	_ = m.bus.Trigger(ctx, events.NewUser, NewUserPayload{Session: sess, User: user})

	if m.authz != nil {
		if err := m.authz.Can(ctx, &user, ActionLogin); err != nil {
			m.log.WarnContext(ctx, "login denied by policy",
				slog.Int64("user_id", user.ID), slog.Any("error", err))
			if err := m.Reset(ctx, sess); err != nil {
				m.log.ErrorContext(ctx, "session reset failed after denial", slog.Any("error", err))
			}
			return false
		}
	}

	return true
}

// ReloadUser overwrites the cached user snapshot unconditionally. The
// caller is trusted; this is the push-style refresh for the external
// "user changed" event.
func (m *Manager) ReloadUser(sess *Session, data Identity) {
	user := data
	sess.Record.User = &user
}

// ReloadOutbox refreshes the cached outbox summary from the provider.
// Anonymous sessions get an empty cache.
func (m *Manager) ReloadOutbox(ctx context.Context, sess *Session) {
	if m.outbox == nil || sess.Record.User == nil {
		sess.Record.Outbox = nil
		return
	}

	entries, err := m.outbox.Summary(ctx, sess.Record.User.ID)
	if err != nil {
		m.log.WarnContext(ctx, "outbox refresh failed",
			slog.Int64("user_id", sess.Record.User.ID), slog.Any("error", err))
		return
	}
	sess.Record.Outbox = entries
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) error {
	return m.cookies.SetSigned(w, m.config.CookieName, id,
		cookie.WithHTTPOnly(true),
		cookie.WithSecure(m.config.RequireSSL),
		cookie.WithMaxAge(0), // session-scoped, not persistent
	)
}

func magicMatches(magic, fp string) bool {
	return subtle.ConstantTimeCompare([]byte(magic), []byte(fp)) == 1
}

// newSessionID creates a cryptographically secure opaque identifier.
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrIDGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Package session implements the server-side session lifecycle with
// anti-hijacking fingerprint validation, session-fixation-safe login
// transitions, and session-scoped caches of the current user and their
// pending outbox.
//
// # Model
//
// Each client is identified by an opaque session ID delivered in a
// signed, HttpOnly cookie. The ID keys a Record in a pluggable Store
// (memory, file, redis or postgres). A Record carries the fingerprint
// snapshot ("magic") stamped at creation, the cached user identity, the
// Identified flag, the outbox cache and the CSRF form-token map.
//
// # Lifecycle
//
// Startup resolves or creates the request's Session and validates the
// stored magic against a freshly computed fingerprint; any mismatch is
// treated as a hijacking attempt and silently resets the session to
// anonymous defaults under a new ID. Shutdown flushes the record to the
// store exactly once per request. StartupCLI serves transport-less
// contexts (batch jobs) with a detached anonymous session.
//
// Login verifies credentials through the external Authenticator. When
// the authenticated identity differs from the cached one the session is
// reset before the new identity is installed, which defeats session
// fixation, and an audit "login" event is published. Authorization for
// the login action is checked last; denial resets the session.
//
// # Events
//
// Manager.Bind registers handlers on an events.Bus for the startup,
// cli_startup, shutdown, login, logout, user_changed and outbox_changed
// kinds, and the manager publishes log (audit) and newuser events, so
// other subsystems react to session transitions without this package
// depending on their implementations.
//
// # Concurrency
//
// One Session per request, owned by that request. Cross-request writes
// for the same session ID are resolved by the store as last-flush-wins;
// this package adds no optimistic versioning.
package session

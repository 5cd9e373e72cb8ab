// Package audit records security-relevant actions (logins, identity
// changes) as structured events with stable identifiers.
//
// The session lifecycle publishes audit payloads on the event bus under
// the "log" kind; a Logger bound to the bus persists them through its
// Storage. This keeps the session code free of any dependency on where
// the trail ends up.
//
//	store := audit.NewMemoryStorage()
//	audit.NewLogger(store).Bind(bus)
package audit

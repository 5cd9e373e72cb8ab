// Package csrf protects HTML forms against cross-site submission with
// the synchronizer token pattern: Begin issues a cryptographically
// random single-use token bound to a (form name, session) pair and
// returns the hidden-input markup; Validate consumes the token on the
// first attempt, match or not, so replay is structurally impossible.
//
// The storage key is a hash of the form name and the session ID, which
// namespaces tokens per session and makes re-rendering a form supersede
// its earlier pending token. Tokens persist inside the session record,
// so they ride along with the session store flush.
//
// Validation failure clears the entire inbound payload, not just the
// token field: a submission that fails CSRF is not trusted at all.
package csrf

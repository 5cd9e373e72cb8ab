// Package cookie manages HTTP cookies with safe defaults (HttpOnly,
// SameSite=Lax, path "/") and HMAC-SHA256 signed values for anything
// that must survive a round trip through the client untampered, such as
// the session identifier.
//
// Signing uses the first configured secret; verification tries every
// secret in order, so adding a new secret at the front rotates keys
// without logging active sessions out.
//
//	mgr, err := cookie.New([]string{secret})
//	_ = mgr.SetSigned(w, "sid", sessionID)
//	sid, err := mgr.GetSigned(r, "sid")
//
// A missing cookie is reported as ErrCookieNotFound and a forged or
// truncated value as ErrInvalidSignature / ErrInvalidFormat; callers that
// treat any failure as "no session" can simply check for a non-nil error.
package cookie

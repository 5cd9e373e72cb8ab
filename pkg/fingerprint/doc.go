// Package fingerprint derives a stable digest of client and network
// attributes from an incoming HTTP request, used to detect session
// hijacking.
//
// The digest combines the Accept-Language, Accept and User-Agent headers
// with the proxy-resolved client address. These attributes rarely change
// within one browsing session, while a stolen session cookie replayed
// from a different client or network almost always changes at least one
// of them. Headers that modern browsers rotate between requests, most
// notably Accept-Encoding, are excluded outright rather than tolerated,
// which keeps the false-positive rate low without per-session crypto.
//
// A missing header contributes the wildcard placeholder "*", so clients
// that omit a header entirely still fingerprint consistently.
//
// Typical use:
//
//	magic := fingerprint.Generate(r)      // stamp at session creation
//	ok := fingerprint.Validate(r, magic)  // check on later requests
//
// All functions are pure; mismatch handling (resetting the session) is
// the caller's concern.
package fingerprint

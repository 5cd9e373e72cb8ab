// Package clientip resolves the real client network address from an
// incoming HTTP request, taking common reverse-proxy and CDN headers
// into account.
//
// The resolved address feeds the session fingerprint, so the same
// resolution logic must be used everywhere a fingerprint is computed;
// mixing raw peer addresses with forwarded addresses would make every
// proxied session look hijacked.
//
// Usage:
//
//	addr := clientip.Resolve(r) // *http.Request
//
// Resolve never fails: an unparseable candidate is skipped and the next
// source is tried, down to the transport peer address.
package clientip

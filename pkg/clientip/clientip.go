package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolve returns the client's network address for the given request,
// looking through trusted reverse-proxy headers before falling back to
// the raw peer address. Priority order:
//  1. CF-Connecting-IP (CDN edge)
//  2. X-Forwarded-For (standard proxy chain, first valid entry wins)
//  3. X-Real-IP (nginx style)
//  4. RemoteAddr (direct connection)
func Resolve(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if parsed := normalize(ip); parsed != "" {
			return parsed
		}
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// The header may carry a comma-separated chain; the left-most
		// valid address is the original client.
		for _, ip := range strings.Split(forwarded, ",") {
			if parsed := normalize(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if parsed := normalize(ip); parsed != "" {
			return parsed
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port is already a bare address.
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// normalize validates and canonicalizes an IP address string.
// Returns the empty string for anything that does not parse.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}

	return ip.String()
}

package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gflauder/PeerReviewCore/pkg/clientip"
)

// wildcard stands in for any absent header so that a missing header and
// an empty header fingerprint identically.
const wildcard = "*"

// Metadata is the read-only view of the request attributes that
// contribute to a fingerprint. Volatile headers (Accept-Encoding and
// friends, which some browsers rotate between requests) are deliberately
// not part of this set.
type Metadata struct {
	Language  string // Accept-Language header
	Accept    string // Accept header
	UserAgent string // User-Agent header
	ClientIP  string // resolved client address, proxy-aware
}

// FromRequest extracts fingerprint metadata from an HTTP request,
// substituting the wildcard placeholder for absent headers and resolving
// the client address through the trusted-proxy chain.
func FromRequest(r *http.Request) Metadata {
	return Metadata{
		Language:  headerOrWildcard(r, "Accept-Language"),
		Accept:    headerOrWildcard(r, "Accept"),
		UserAgent: headerOrWildcard(r, "User-Agent"),
		ClientIP:  clientip.Resolve(r),
	}
}

// Compute derives the fingerprint digest from the given metadata.
// The digest is a SHA-256 hex string over the fields in stable order:
// language, accept, user-agent, client address. Pure function, no side
// effects.
func Compute(meta Metadata) string {
	combined := strings.Join([]string{
		meta.Language,
		meta.Accept,
		meta.UserAgent,
		meta.ClientIP,
	}, "|")

	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}

// Generate is a convenience wrapper combining FromRequest and Compute.
func Generate(r *http.Request) string {
	return Compute(FromRequest(r))
}

// Validate compares a stored fingerprint against the one derived from
// the current request. The comparison is constant-time so the digest
// cannot be probed byte by byte.
func Validate(r *http.Request, stored string) bool {
	current := Generate(r)
	return subtle.ConstantTimeCompare([]byte(current), []byte(stored)) == 1
}

func headerOrWildcard(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return wildcard
}

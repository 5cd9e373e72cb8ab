package csrf

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gflauder/PeerReviewCore/pkg/session"
)

// Guard issues and validates single-use tokens binding a rendered form
// to the session that produced it. Tokens live in the session record's
// FormTokens map and are flushed with it; the guard itself is
// stateless.
type Guard struct{}

// New creates a form guard.
func New() *Guard {
	return &Guard{}
}

// FormHash derives the storage key for a logical form name within a
// session: a hash of the name concatenated with the session ID. The
// same form name maps to the same key within one session (re-rendering
// overwrites the pending token) and to different keys across sessions
// (no cross-session token reuse).
func FormHash(name, sessionID string) string {
	sum := sha256.Sum256([]byte(name + sessionID))
	return hex.EncodeToString(sum[:16])
}

// Begin generates a one-time token for the named form, stores it under
// the form's hash key and returns the hidden-field markup to splice
// into the rendered HTML.
func (g *Guard) Begin(sess *session.Session, name string) (template.HTML, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	if sess.Record.FormTokens == nil {
		sess.Record.FormTokens = make(map[string]string)
	}

	key := FormHash(name, sess.ID)
	sess.Record.FormTokens[key] = token

	// The key and token are hex/base64url, so no attribute escaping is
	// needed.
	return template.HTML(fmt.Sprintf(`<input type="hidden" name="%s" value="%s" />`, key, token)), nil
}

// Validate consumes the pending token for the named form and checks it
// against the submitted payload. The stored token is deleted on the
// first validation attempt regardless of outcome, so a token can never
// be replayed.
//
// On success the consumed field is stripped from the submission so
// downstream handlers never see it. On any failure (missing, mismatched
// or already-consumed token) the entire submission is cleared: a CSRF
// failure is reason to distrust the whole payload.
func (g *Guard) Validate(sess *session.Session, name string, form url.Values) bool {
	key := FormHash(name, sess.ID)

	stored, existed := sess.Record.FormTokens[key]
	delete(sess.Record.FormTokens, key)

	if !existed {
		clearValues(form)
		return false
	}

	submitted := form.Get(key)
	if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) != 1 {
		clearValues(form)
		return false
	}

	form.Del(key)
	return true
}

func clearValues(form url.Values) {
	for k := range form {
		delete(form, k)
	}
}

// newToken creates a cryptographically random one-time token.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

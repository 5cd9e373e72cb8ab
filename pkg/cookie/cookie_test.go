package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gflauder/PeerReviewCore/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, opts ...cookie.Option) *cookie.Manager {
	t.Helper()
	mgr, err := cookie.New([]string{testSecret}, opts...)
	require.NoError(t, err)
	return mgr
}

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Run("rejects empty secrets", func(t *testing.T) {
		_, err := cookie.New(nil)
		assert.ErrorIs(t, err, cookie.ErrNoSecret)

		_, err = cookie.New([]string{""})
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("rejects short secret", func(t *testing.T) {
		_, err := cookie.New([]string{"too-short"})
		assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
	})
}

func TestSignedRoundTrip(t *testing.T) {
	mgr := newManager(t)

	t.Run("signed value survives round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(w, "sid", "session-123"))

		got, err := mgr.GetSigned(roundTrip(t, w), "sid")
		require.NoError(t, err)
		assert.Equal(t, "session-123", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, err := mgr.GetSigned(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("tampered value rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, mgr.SetSigned(w, "sid", "session-123"))

		r := httptest.NewRequest("GET", "/", nil)
		for _, c := range w.Result().Cookies() {
			c.Value = "x" + c.Value[1:]
			r.AddCookie(c)
		}

		_, err := mgr.GetSigned(r, "sid")
		assert.Error(t, err)
	})

	t.Run("garbage value rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "no-separator"})

		_, err := mgr.GetSigned(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestSecretRotation(t *testing.T) {
	oldMgr := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, oldMgr.SetSigned(w, "sid", "rotated-session"))

	newSecret := strings.Repeat("f", 32)
	rotated, err := cookie.New([]string{newSecret, testSecret})
	require.NoError(t, err)

	got, err := rotated.GetSigned(roundTrip(t, w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "rotated-session", got)
}

func TestAttributes(t *testing.T) {
	t.Run("defaults are http-only lax", func(t *testing.T) {
		mgr := newManager(t)
		w := httptest.NewRecorder()
		require.NoError(t, mgr.Set(w, "sid", "v"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, "/", cookies[0].Path)
		assert.Equal(t, 0, cookies[0].MaxAge, "session-scoped by default")
	})

	t.Run("secure flag propagates", func(t *testing.T) {
		mgr := newManager(t, cookie.WithSecure(true))
		w := httptest.NewRecorder()
		require.NoError(t, mgr.Set(w, "sid", "v"))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("delete expires the cookie", func(t *testing.T) {
		mgr := newManager(t)
		w := httptest.NewRecorder()
		mgr.Delete(w, "sid")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
		assert.Empty(t, cookies[0].Value)
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := cookie.DefaultConfig()
	cfg.Secrets = testSecret + ", " + strings.Repeat("a", 32)
	cfg.Secure = true

	mgr, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.SetSigned(w, "sid", "cfg"))

	got, err := mgr.GetSigned(roundTrip(t, w), "sid")
	require.NoError(t, err)
	assert.Equal(t, "cfg", got)
}

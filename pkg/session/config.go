package session

import "time"

// Config holds session lifecycle configuration. The maximum lifetime is
// configured in minutes and converted to the storage engine's
// seconds-based expiry.
type Config struct {
	// CookieName is the name of the session-ID cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// MaxLifetimeMinutes bounds how long a record may live in storage.
	MaxLifetimeMinutes int `env:"SESSION_MAX_LIFETIME_MINUTES" envDefault:"1440"`

	// StoragePath is the location used by path-based stores (file
	// store). Ignored by memory/redis/postgres stores.
	StoragePath string `env:"SESSION_STORAGE_PATH" envDefault:""`

	// RequireSSL propagates to the Secure attribute of the session
	// cookie. The cookie is HttpOnly regardless.
	RequireSSL bool `env:"SESSION_REQUIRE_SSL" envDefault:"false"`

	// CleanupInterval drives the expired-record sweep of stores that
	// need one (0 disables).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:         "sid",
		MaxLifetimeMinutes: 1440,
		CleanupInterval:    5 * time.Minute,
	}
}

// MaxLifetime returns the configured maximum lifetime as a duration.
func (c Config) MaxLifetime() time.Duration {
	return time.Duration(c.MaxLifetimeMinutes) * time.Minute
}

package session

import "context"

// ActionLogin is the action string checked against the Authorizer after
// a successful authentication.
const ActionLogin = "login"

// Authenticator verifies credentials. It is an external capability;
// password storage and verification live elsewhere.
type Authenticator interface {
	// Authenticate returns the identity for valid credentials and
	// ErrAuthenticationFailed (or any other error) otherwise. The
	// onetime parameter carries a single-use credential such as a
	// password-reset or invitation token and may be empty.
	Authenticate(ctx context.Context, email, password, onetime string) (*Identity, error)
}

// Authorizer is the external policy engine. A nil error grants the
// action; any error denies it.
type Authorizer interface {
	Can(ctx context.Context, ident *Identity, action string) error
}

// OutboxProvider supplies pending-notification summaries for a user.
type OutboxProvider interface {
	Summary(ctx context.Context, userID int64) ([]OutboxEntry, error)
}

package domain

import "time"

// TokenIssuer issues signed tokens for an identity. Used by development tooling only;
// production tokens come from the external identity provider.
type TokenIssuer interface {
	Issue(id Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

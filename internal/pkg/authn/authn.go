// Package authn carries the authenticated caller through a request context.
package authn

import "context"

// Identity is the caller resolved from a valid access token.
type Identity struct {
	UserID   int64
	Username string
}

// Authenticator resolves an access token into an Identity. Implementations
// return a *goerror.Error with an unauthorized code on failure.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (Identity, error)
}

type authContextKey struct{}

// SetAuth stores id in ctx.
func SetAuth(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, authContextKey{}, id)
}

// GetAuth returns the Identity stored by SetAuth, or nil for anonymous requests.
func GetAuth(ctx context.Context) *Identity {
	id, ok := ctx.Value(authContextKey{}).(Identity)
	if !ok {
		return nil
	}
	return &id
}

package auth

import (
	"context"
	"net/http"
)

// NoAuthAuthenticator sends requests without credentials.
type NoAuthAuthenticator struct{}

// NewNoAuthAuthenticator creates an authenticator that does nothing.
func NewNoAuthAuthenticator() *NoAuthAuthenticator {
	return &NoAuthAuthenticator{}
}

// AuthenticationType returns AuthTypeNoAuth.
func (a *NoAuthAuthenticator) AuthenticationType() string { return AuthTypeNoAuth }

// GetToken returns an empty token.
func (a *NoAuthAuthenticator) GetToken(ctx context.Context) (string, error) { return "", nil }

// ApplyAuth leaves the request untouched.
func (a *NoAuthAuthenticator) ApplyAuth(req *http.Request, token string) {}

// HandleAuthError never retries.
func (a *NoAuthAuthenticator) HandleAuthError(ctx context.Context, statusCode int, attempt int, maxAttempts int) (string, error) {
	return "", nil
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// BearerTokenAuthenticator authenticates with a caller-supplied bearer token.
//
// The SDK never refreshes the token; callers that obtain tokens out of band
// should call SetBearerToken before the old one expires.
type BearerTokenAuthenticator struct {
	mu    sync.RWMutex
	token string
}

// NewBearerTokenAuthenticator creates a bearer token authenticator.
//
// Example:
//
//	authenticator := auth.NewBearerTokenAuthenticator("eyJraWQiOi...")
func NewBearerTokenAuthenticator(token string) *BearerTokenAuthenticator {
	return &BearerTokenAuthenticator{token: token}
}

// AuthenticationType returns AuthTypeBearerToken.
func (a *BearerTokenAuthenticator) AuthenticationType() string {
	return AuthTypeBearerToken
}

// Validate reports whether a token is configured.
func (a *BearerTokenAuthenticator) Validate() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.token == "" {
		return errors.New("bearer token cannot be empty")
	}
	return nil
}

// SetBearerToken replaces the token used for subsequent requests.
func (a *BearerTokenAuthenticator) SetBearerToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

// GetToken returns the configured token.
func (a *BearerTokenAuthenticator) GetToken(ctx context.Context) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token, nil
}

// ApplyAuth sets the Authorization header.
func (a *BearerTokenAuthenticator) ApplyAuth(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HandleAuthError returns the current token so the request is retried once,
// picking up a token replaced by SetBearerToken in the meantime.
func (a *BearerTokenAuthenticator) HandleAuthError(ctx context.Context, statusCode int, attempt int, maxAttempts int) (string, error) {
	if statusCode != http.StatusUnauthorized || attempt >= maxAttempts {
		return "", nil
	}
	return a.GetToken(ctx)
}

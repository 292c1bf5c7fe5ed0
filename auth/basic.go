package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// BasicAuthenticator authenticates with HTTP basic credentials.
type BasicAuthenticator struct {
	username string
	password string
}

// NewBasicAuthenticator creates a basic authenticator. The credentials are
// checked by Validate, which the client calls at construction.
func NewBasicAuthenticator(username, password string) *BasicAuthenticator {
	return &BasicAuthenticator{username: username, password: password}
}

// AuthenticationType returns AuthTypeBasic.
func (a *BasicAuthenticator) AuthenticationType() string {
	return AuthTypeBasic
}

// Validate rejects empty credentials and unexpanded placeholders such as
// "{password}" or "\"password\"".
func (a *BasicAuthenticator) Validate() error {
	if err := checkCredential("username", a.username); err != nil {
		return err
	}
	return checkCredential("password", a.password)
}

// GetToken returns the base64 encoded credentials.
func (a *BasicAuthenticator) GetToken(ctx context.Context) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(a.username + ":" + a.password)), nil
}

// ApplyAuth sets the Authorization header.
func (a *BasicAuthenticator) ApplyAuth(req *http.Request, token string) {
	req.Header.Set("Authorization", "Basic "+token)
}

// HandleAuthError never retries; the credentials will not change.
func (a *BasicAuthenticator) HandleAuthError(ctx context.Context, statusCode int, attempt int, maxAttempts int) (string, error) {
	return "", nil
}

func checkCredential(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if hasBadFirstOrLastChar(value) {
		return fmt.Errorf("%s was not specified correctly: remove any surrounding {, }, or \" characters", name)
	}
	return nil
}

func hasBadFirstOrLastChar(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "\"") ||
		strings.HasSuffix(s, "}") || strings.HasSuffix(s, "\"")
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CP4DAuthenticator authenticates against a Cloud Pak for Data cluster.
// It posts a username with either a password or an API key to
// <url>/v1/authorize and caches the returned JWT until 80% of its lifetime
// (from the iat/exp claims) has elapsed.
type CP4DAuthenticator struct {
	url      string
	username string
	password string
	apiKey   string
	client   *http.Client

	cache *tokenCache
}

// CP4DOption configures a CP4DAuthenticator.
type CP4DOption func(*CP4DAuthenticator)

// WithCP4DPassword authenticates with a password.
func WithCP4DPassword(password string) CP4DOption {
	return func(a *CP4DAuthenticator) {
		a.password = password
	}
}

// WithCP4DAPIKey authenticates with a platform API key.
func WithCP4DAPIKey(apiKey string) CP4DOption {
	return func(a *CP4DAuthenticator) {
		a.apiKey = apiKey
	}
}

// WithCP4DHTTPClient sets a custom HTTP client for token requests.
func WithCP4DHTTPClient(client *http.Client) CP4DOption {
	return func(a *CP4DAuthenticator) {
		a.client = client
	}
}

// WithCP4DDisableSSLVerification skips TLS verification on token requests.
// Cloud Pak clusters commonly use self-signed certificates.
func WithCP4DDisableSSLVerification() CP4DOption {
	return func(a *CP4DAuthenticator) {
		a.client = insecureClient()
	}
}

// NewCP4DAuthenticator creates a CP4D authenticator for the cluster at url.
func NewCP4DAuthenticator(url, username string, opts ...CP4DOption) *CP4DAuthenticator {
	a := &CP4DAuthenticator{
		url:      strings.TrimSuffix(url, "/"),
		username: username,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cache = newTokenCache(a.requestToken)
	return a
}

// AuthenticationType returns AuthTypeCP4D.
func (a *CP4DAuthenticator) AuthenticationType() string {
	return AuthTypeCP4D
}

// Validate checks that the URL, username and exactly one secret are set.
func (a *CP4DAuthenticator) Validate() error {
	if a.url == "" {
		return errors.New("CP4D url cannot be empty")
	}
	if err := checkCredential("username", a.username); err != nil {
		return err
	}
	switch {
	case a.password == "" && a.apiKey == "":
		return errors.New("exactly one of password or apikey must be specified")
	case a.password != "" && a.apiKey != "":
		return errors.New("exactly one of password or apikey must be specified")
	case a.password != "":
		return checkCredential("password", a.password)
	default:
		return checkCredential("apikey", a.apiKey)
	}
}

// GetToken returns a valid CP4D token.
func (a *CP4DAuthenticator) GetToken(ctx context.Context) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a.cache.get(ctx)
}

// ApplyAuth sets the Authorization header.
func (a *CP4DAuthenticator) ApplyAuth(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HandleAuthError invalidates the cached token and fetches a new one.
func (a *CP4DAuthenticator) HandleAuthError(ctx context.Context, statusCode int, attempt int, maxAttempts int) (string, error) {
	if statusCode != http.StatusUnauthorized || attempt >= maxAttempts {
		return "", nil
	}
	a.cache.invalidate()
	return a.GetToken(ctx)
}

// Invalidate drops the cached token.
func (a *CP4DAuthenticator) Invalidate() {
	a.cache.invalidate()
}

func (a *CP4DAuthenticator) requestToken(ctx context.Context) (*fetchedToken, error) {
	payload := map[string]string{"username": a.username}
	if a.apiKey != "" {
		payload["api_key"] = a.apiKey
	} else {
		payload["password"] = a.password
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/v1/authorize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting CP4D token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tokenError("CP4D", resp)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding CP4D token response: %w", err)
	}
	if result.Token == "" {
		return nil, errors.New("no token returned from CP4D")
	}

	issued, expires, err := jwtLifetime(result.Token)
	if err != nil {
		return nil, err
	}
	return &fetchedToken{value: result.Token, issuedAt: issued, expiresAt: expires}, nil
}

// jwtLifetime reads iat and exp without verifying the signature; the server
// that issued the token is the one that will check it.
func jwtLifetime(token string) (time.Time, time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing CP4D token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, time.Time{}, errors.New("CP4D token has no exp claim")
	}
	issued := time.Now()
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Time
	}
	return issued, claims.ExpiresAt.Time, nil
}

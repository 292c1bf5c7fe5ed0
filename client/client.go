// Package client provides a watsonx.data API client with retry and rate limiting.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/DrewBradfordXYZ/watsonxdata-go/auth"
	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// DefaultServiceURL is the us-south watsonx.data endpoint.
const DefaultServiceURL = "https://us-south.lakehouse.cloud.ibm.com/lakehouse/api/v2"

// DefaultServiceName is the name used to look up external configuration.
const DefaultServiceName = "watsonx_data"

// Client sends authenticated requests to the watsonx.data v2 API.
type Client struct {
	auth           auth.Authenticator
	serviceURL     string
	authInstanceID string
	userAgent      string
	headers        http.Header

	// Retry configuration
	maxRetries    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration

	timeout     time.Duration
	httpClient  *http.Client
	rateLimiter *RateLimiter
	logger      *core.Logger

	doer *authHTTPClient
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries sets the maximum number of retry attempts (default 3).
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the initial backoff delay (default 1s).
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxRetryDelay caps the backoff delay (default 30s).
func WithMaxRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.maxRetryDelay = d
	}
}

// WithRateLimiter sets a custom rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = rl
	}
}

// WithTimeout bounds each operation, retries included. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDisableSSLVerification skips TLS certificate verification.
func WithDisableSSLVerification() Option {
	return func(c *Client) {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		c.httpClient = &http.Client{Transport: transport}
	}
}

// WithAuthInstanceID sets the default AuthInstanceId header. Operations
// override it with their AuthInstanceID option.
func WithAuthInstanceID(id string) Option {
	return func(c *Client) {
		c.authInstanceID = id
	}
}

// WithUserAgent replaces the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithLogger sets the logger.
func WithLogger(l *core.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the service at serviceURL.
func New(serviceURL string, authenticator auth.Authenticator, opts ...Option) (*Client, error) {
	if authenticator == nil {
		return nil, errors.New("an authenticator is required")
	}
	if serviceURL == "" {
		serviceURL = DefaultServiceURL
	}
	u, err := url.Parse(serviceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid service URL %q", serviceURL)
	}
	if v, ok := authenticator.(auth.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid authenticator: %w", err)
		}
	}

	c := &Client{
		auth:          authenticator,
		serviceURL:    strings.TrimRight(serviceURL, "/"),
		userAgent:     "watsonxdata-go/" + core.Version,
		headers:       make(http.Header),
		maxRetries:    3,
		retryDelay:    time.Second,
		maxRetryDelay: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.rateLimiter == nil {
		c.rateLimiter = NewRateLimiter(10, 20) // 10 req/s, burst of 20
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = core.NopLogger()
	}

	c.doer = &authHTTPClient{
		client:      c,
		httpClient:  c.httpClient,
		rateLimiter: c.rateLimiter,
	}
	return c, nil
}

// ServiceURL returns the base URL requests are sent to.
func (c *Client) ServiceURL() string {
	return c.serviceURL
}

// Authenticator returns the configured authenticator.
func (c *Client) Authenticator() auth.Authenticator {
	return c.auth
}

// Logger returns the client's logger.
func (c *Client) Logger() *core.Logger {
	return c.logger
}

// newBackOff returns the delay schedule for one request's retries.
func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryDelay
	b.MaxInterval = c.maxRetryDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0.1
	b.Reset()
	return b
}

// authHTTPClient wraps http.Client to add auth, retry, and rate limiting.
type authHTTPClient struct {
	client      *Client
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

func (h *authHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	c := h.client

	// Buffer the body so every attempt resends it in full.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
	}

	token, err := c.auth.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}
	c.logger.Token("acquired", c.auth.AuthenticationType())

	b := c.newBackOff()
	refreshed := false

	for attempt := 0; ; attempt++ {
		if err := h.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		reqCopy := req.Clone(ctx)
		if body != nil {
			reqCopy.Body = io.NopCloser(bytes.NewReader(body))
			reqCopy.ContentLength = int64(len(body))
			reqCopy.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(body)), nil
			}
		}
		c.auth.ApplyAuth(reqCopy, token)

		start := time.Now()
		resp, err := h.httpClient.Do(reqCopy)
		if err != nil {
			if ctx.Err() != nil || attempt >= c.maxRetries {
				return nil, err
			}
			delay := b.NextBackOff()
			c.logger.Retry(attempt+1, c.maxRetries, delay, err.Error())
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}
		c.logger.Timing(req.Method, req.URL.String(), resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			// At most one refresh per request.
			if refreshed {
				return resp, nil
			}
			refreshed = true
			newToken, err := c.auth.HandleAuthError(ctx, resp.StatusCode, attempt, c.maxRetries)
			if err != nil {
				drain(resp)
				return nil, fmt.Errorf("refreshing auth token: %w", err)
			}
			if newToken == "" {
				return resp, nil
			}
			c.logger.Token("refreshed", c.auth.AuthenticationType())
			drain(resp)
			token = newToken
			continue

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			if attempt >= c.maxRetries {
				return resp, nil
			}
			delay := b.NextBackOff()
			if ra, ok := parseRetryAfter(resp.Header.Get("Retry-After")); ok {
				delay = ra
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				c.logger.RateLimit(core.RateLimitInfo{
					Timestamp:  time.Now(),
					RequestURL: req.URL.String(),
					HTTPStatus: resp.StatusCode,
					RetryAfter: int(delay / time.Second),
					Trace:      resp.Header.Get("X-Global-Transaction-Id"),
					Attempt:    attempt + 1,
				})
			}
			c.logger.Retry(attempt+1, c.maxRetries, delay, resp.Status)
			drain(resp)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		return resp, nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// parseRetryAfter parses a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(header string) (time.Duration, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if t, err := http.ParseTime(header); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// Package watsonxdata provides a Go SDK for the IBM watsonx.data v2 API.
//
// This SDK provides:
//   - IAM, CP4D, bearer token and basic authentication
//   - Automatic retry with exponential backoff and jitter
//   - Client-side rate limiting
//   - Custom error types for different HTTP status codes
//   - Structured debug logging with zap
//
// Basic usage with an IBM Cloud API key:
//
//	wxd, err := watsonxdata.New(watsonxdata.DefaultServiceURL,
//	    watsonxdata.WithIAMAPIKey("your-api-key"),
//	    watsonxdata.WithAuthInstanceID("crn:v1:..."),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engines, err := wxd.ListPrestoEngines(ctx, &watsonxdata.ListEnginesOptions{})
//
// Using external configuration (WATSONX_DATA_APIKEY, WATSONX_DATA_URL, ...):
//
//	wxd, err := watsonxdata.New("",
//	    watsonxdata.WithAuthenticatorFromEnvironment(watsonxdata.DefaultServiceName),
//	)
//
// With debug logging:
//
//	wxd, err := watsonxdata.New(url,
//	    watsonxdata.WithBearerToken("token"),
//	    watsonxdata.WithDebug(true),
//	)
package watsonxdata

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/DrewBradfordXYZ/watsonxdata-go/auth"
	"github.com/DrewBradfordXYZ/watsonxdata-go/client"
	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// Client is the main watsonx.data API client.
type Client = client.Client

// Re-export types for convenience
type (
	Authenticator = auth.Authenticator

	// Error types
	WatsonxError        = core.WatsonxError
	RateLimitError      = core.RateLimitError
	AuthenticationError = core.AuthenticationError
	AuthorizationError  = core.AuthorizationError
	NotFoundError       = core.NotFoundError
	ConflictError       = core.ConflictError
	ValidationError     = core.ValidationError
	TimeoutError        = core.TimeoutError
	ServerError         = core.ServerError
	ParamError          = core.ParamError
	RateLimitInfo       = core.RateLimitInfo

	// Rate limiting
	RateLimiter = client.RateLimiter

	// Pagination
	IngestionJobsPager = client.IngestionJobsPager

	// Common options
	ListEnginesOptions        = client.ListEnginesOptions
	ListCatalogsOptions       = client.ListCatalogsOptions
	ListIngestionJobsOptions  = client.ListIngestionJobsOptions
	CreateExecuteQueryOptions = client.CreateExecuteQueryOptions
)

const (
	DefaultServiceURL  = client.DefaultServiceURL
	DefaultServiceName = client.DefaultServiceName

	// Version is the SDK version sent in the User-Agent header.
	Version = core.Version
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	authenticator auth.Authenticator
	envService    string
	debug         bool
	zapLogger     *zap.Logger
	clientOpts    []client.Option
}

// WithAuthenticator sets the authenticator directly.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(c *clientConfig) {
		c.authenticator = a
	}
}

// WithIAMAPIKey configures IBM Cloud IAM authentication.
func WithIAMAPIKey(apiKey string, opts ...auth.IAMOption) Option {
	return func(c *clientConfig) {
		c.authenticator = auth.NewIAMAuthenticator(apiKey, opts...)
	}
}

// WithBearerToken configures a fixed bearer token.
func WithBearerToken(token string) Option {
	return func(c *clientConfig) {
		c.authenticator = auth.NewBearerTokenAuthenticator(token)
	}
}

// WithBasicAuth configures HTTP basic authentication.
func WithBasicAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.authenticator = auth.NewBasicAuthenticator(username, password)
	}
}

// WithCP4DAuth configures Cloud Pak for Data authentication. Pass
// auth.WithCP4DPassword or auth.WithCP4DAPIKey.
func WithCP4DAuth(url, username string, opts ...auth.CP4DOption) Option {
	return func(c *clientConfig) {
		c.authenticator = auth.NewCP4DAuthenticator(url, username, opts...)
	}
}

// WithAuthenticatorFromEnvironment reads the authenticator from external
// configuration for serviceName. The URL property is used when New is called
// with an empty service URL, and DISABLE_SSL=true skips TLS verification.
func WithAuthenticatorFromEnvironment(serviceName string) Option {
	return func(c *clientConfig) {
		c.envService = serviceName
	}
}

// WithAuthInstanceID sets the default AuthInstanceId header.
func WithAuthInstanceID(id string) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithAuthInstanceID(id))
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(n int) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithMaxRetries(n))
	}
}

// WithRetryDelay sets the initial delay between retries.
func WithRetryDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithRetryDelay(d))
	}
}

// WithMaxRetryDelay sets the maximum delay between retries.
func WithMaxRetryDelay(d time.Duration) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithMaxRetryDelay(d))
	}
}

// WithRateLimit limits requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithRateLimiter(client.NewRateLimiter(rps, burst)))
	}
}

// WithTimeout bounds each operation, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithTimeout(d))
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithHTTPClient(hc))
	}
}

// WithUserAgent replaces the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithUserAgent(ua))
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *clientConfig) {
		c.clientOpts = append(c.clientOpts, client.WithHeader(key, value))
	}
}

// WithDebug enables debug logging.
func WithDebug(enabled bool) Option {
	return func(c *clientConfig) {
		c.debug = enabled
	}
}

// WithLogger routes SDK logs to an existing zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.zapLogger = logger
	}
}

// New creates a new watsonx.data client. An empty serviceURL selects
// DefaultServiceURL unless external configuration supplies one.
func New(serviceURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var clientOpts []client.Option
	if cfg.envService != "" {
		props, err := auth.ReadServiceProperties(cfg.envService)
		if err != nil {
			return nil, err
		}
		if cfg.authenticator == nil {
			a, err := auth.NewAuthenticatorFromProperties(props)
			if err != nil {
				return nil, err
			}
			cfg.authenticator = a
		}
		if serviceURL == "" {
			serviceURL = props[auth.PropURL]
		}
		if disable, _ := strconv.ParseBool(props[auth.PropDisableSSL]); disable {
			clientOpts = append(clientOpts, client.WithDisableSSLVerification())
		}
	}
	if cfg.authenticator == nil {
		return nil, errors.New("no authenticator configured; use WithIAMAPIKey, WithBearerToken, WithCP4DAuth or WithAuthenticatorFromEnvironment")
	}

	switch {
	case cfg.zapLogger != nil:
		clientOpts = append(clientOpts, client.WithLogger(core.NewLoggerFrom(cfg.zapLogger, cfg.debug)))
	case cfg.debug:
		clientOpts = append(clientOpts, client.WithLogger(core.NewLogger(true)))
	}
	clientOpts = append(clientOpts, cfg.clientOpts...)

	return client.New(serviceURL, cfg.authenticator, clientOpts...)
}

// Helper functions re-exported from core
var (
	// IsRetryableError returns true if the error should trigger a retry.
	IsRetryableError = core.IsRetryableError

	// ParseErrorResponse parses an HTTP response into an appropriate error type.
	ParseErrorResponse = core.ParseErrorResponse

	// StatusCode returns the HTTP status carried by an SDK error, or 0.
	StatusCode = core.StatusCode

	// GetAuthenticatorFromEnvironment builds an authenticator from external configuration.
	GetAuthenticatorFromEnvironment = auth.GetAuthenticatorFromEnvironment
)

// Pointer helpers for optional fields.
var (
	StringPtr  = core.StringPtr
	Int64Ptr   = core.Int64Ptr
	BoolPtr    = core.BoolPtr
	Float64Ptr = core.Float64Ptr
)

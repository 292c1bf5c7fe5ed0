// Package auth provides authenticators for the watsonx.data API.
//
// watsonx.data accepts five authentication schemes:
//
//   - IAM: an IBM Cloud API key exchanged for a short-lived bearer token
//   - Bearer token: a token the caller obtained and refreshes itself
//   - CP4D: Cloud Pak for Data username + password or API key
//   - Basic: username/password (software deployments)
//   - None: for local test servers
//
// # IAM (IBM Cloud)
//
// The API key is exchanged at https://iam.cloud.ibm.com/identity/token and the
// resulting access token is cached and refreshed before it expires.
//
//	c, _ := watsonxdata.New(serviceURL,
//	    watsonxdata.WithIAMAPIKey("your-api-key"),
//	)
//
// # External configuration
//
// Authenticators can be built from environment variables or a credentials
// file, keyed by service name:
//
//	WATSONX_DATA_AUTH_TYPE=iam
//	WATSONX_DATA_APIKEY=xxxxx
//	WATSONX_DATA_URL=https://us-south.lakehouse.cloud.ibm.com/lakehouse/api/v2
//
//	authenticator, err := auth.GetAuthenticatorFromEnvironment("watsonx_data")
package auth

import (
	"context"
	"net/http"
)

// Authentication type names, as used in external configuration.
const (
	AuthTypeIAM         = "iam"
	AuthTypeBearerToken = "bearerToken"
	AuthTypeCP4D        = "cp4d"
	AuthTypeBasic       = "basic"
	AuthTypeNoAuth      = "noAuth"
)

// Authenticator defines the interface for authentication schemes.
//
// The SDK provides five built-in implementations:
//   - [IAMAuthenticator]
//   - [BearerTokenAuthenticator]
//   - [CP4DAuthenticator]
//   - [BasicAuthenticator]
//   - [NoAuthAuthenticator]
type Authenticator interface {
	// AuthenticationType returns one of the AuthType* constants.
	AuthenticationType() string

	// GetToken returns the credential to apply to the next request,
	// fetching or refreshing it if needed.
	GetToken(ctx context.Context) (string, error)

	// ApplyAuth applies authentication headers to the request.
	ApplyAuth(req *http.Request, token string)

	// HandleAuthError is called when the API returns 401 Unauthorized.
	// The client calls it at most once per request.
	// It returns a new token if one could be obtained, empty string otherwise.
	HandleAuthError(ctx context.Context, statusCode int, attempt int, maxAttempts int) (string, error)
}

// Validator is implemented by authenticators that can check their own
// configuration before first use.
type Validator interface {
	Validate() error
}

// Invalidator is implemented by authenticators with a cached token.
type Invalidator interface {
	Invalidate()
}

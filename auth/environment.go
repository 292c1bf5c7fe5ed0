package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Property names recognised in external configuration, without the
// service prefix.
const (
	PropAuthType       = "AUTH_TYPE"
	PropAPIKey         = "APIKEY"
	PropURL            = "URL"
	PropAuthURL        = "AUTH_URL"
	PropUsername       = "USERNAME"
	PropPassword       = "PASSWORD"
	PropBearerToken    = "BEARER_TOKEN"
	PropClientID       = "CLIENT_ID"
	PropClientSecret   = "CLIENT_SECRET"
	PropScope          = "SCOPE"
	PropDisableSSL     = "DISABLE_SSL"
	PropAuthDisableSSL = "AUTH_DISABLE_SSL"
)

// CredentialsFileEnv names the variable holding an explicit credentials file path.
const CredentialsFileEnv = "IBM_CREDENTIALS_FILE"

const defaultCredentialsFile = "ibm-credentials.env"

// ReadServiceProperties returns the configuration properties for serviceName.
//
// Sources are consulted in order and the first that defines any property for
// the service wins:
//
//  1. the credentials file named by IBM_CREDENTIALS_FILE, else
//     ./ibm-credentials.env, else $HOME/ibm-credentials.env
//  2. process environment variables
//
// Keys in the returned map have the service prefix stripped, e.g. the
// variable WATSONX_DATA_APIKEY becomes "APIKEY" for service "watsonx_data".
func ReadServiceProperties(serviceName string) (map[string]string, error) {
	if serviceName == "" {
		return nil, errors.New("service name cannot be empty")
	}
	prefix := servicePrefix(serviceName)

	path, err := credentialsFilePath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading credentials file %s: %w", path, err)
		}
		if props := filterPrefix(values, prefix); len(props) > 0 {
			return props, nil
		}
	}

	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return filterPrefix(env, prefix), nil
}

// GetAuthenticatorFromEnvironment builds an Authenticator for serviceName
// from external configuration (see ReadServiceProperties).
//
// When AUTH_TYPE is absent the type is inferred: iam if an API key is set,
// bearerToken if a token is set.
func GetAuthenticatorFromEnvironment(serviceName string) (Authenticator, error) {
	props, err := ReadServiceProperties(serviceName)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("no configuration found for service %q", serviceName)
	}
	return NewAuthenticatorFromProperties(props)
}

// NewAuthenticatorFromProperties builds an Authenticator from a property map
// whose keys have no service prefix.
func NewAuthenticatorFromProperties(props map[string]string) (Authenticator, error) {
	authType := props[PropAuthType]
	if authType == "" {
		switch {
		case props[PropAPIKey] != "":
			authType = AuthTypeIAM
		case props[PropBearerToken] != "":
			authType = AuthTypeBearerToken
		default:
			return nil, errors.New("AUTH_TYPE is not set and cannot be inferred")
		}
	}

	disableSSL, _ := strconv.ParseBool(props[PropAuthDisableSSL])

	var a Authenticator
	switch strings.ToLower(authType) {
	case strings.ToLower(AuthTypeIAM):
		opts := []IAMOption{}
		if u := props[PropAuthURL]; u != "" {
			opts = append(opts, WithIAMURL(u))
		}
		if props[PropClientID] != "" || props[PropClientSecret] != "" {
			opts = append(opts, WithIAMClientCredentials(props[PropClientID], props[PropClientSecret]))
		}
		if s := props[PropScope]; s != "" {
			opts = append(opts, WithIAMScope(s))
		}
		if disableSSL {
			opts = append(opts, WithIAMDisableSSLVerification())
		}
		a = NewIAMAuthenticator(props[PropAPIKey], opts...)
	case strings.ToLower(AuthTypeBearerToken):
		a = NewBearerTokenAuthenticator(props[PropBearerToken])
	case strings.ToLower(AuthTypeCP4D):
		opts := []CP4DOption{}
		if p := props[PropPassword]; p != "" {
			opts = append(opts, WithCP4DPassword(p))
		}
		if k := props[PropAPIKey]; k != "" {
			opts = append(opts, WithCP4DAPIKey(k))
		}
		if disableSSL {
			opts = append(opts, WithCP4DDisableSSLVerification())
		}
		a = NewCP4DAuthenticator(props[PropAuthURL], props[PropUsername], opts...)
	case strings.ToLower(AuthTypeBasic):
		a = NewBasicAuthenticator(props[PropUsername], props[PropPassword])
	case strings.ToLower(AuthTypeNoAuth):
		a = NewNoAuthAuthenticator()
	default:
		return nil, fmt.Errorf("unrecognized authentication type %q", authType)
	}

	if v, ok := a.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s configuration: %w", a.AuthenticationType(), err)
		}
	}
	return a, nil
}

func servicePrefix(serviceName string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_"
}

func filterPrefix(values map[string]string, prefix string) map[string]string {
	props := make(map[string]string)
	for k, v := range values {
		if name, ok := strings.CutPrefix(k, prefix); ok && name != "" {
			props[name] = v
		}
	}
	return props
}

// credentialsFilePath returns the first credentials file that exists, or ""
// when none does. An explicit IBM_CREDENTIALS_FILE that is missing is an error.
func credentialsFilePath() (string, error) {
	if explicit := os.Getenv(CredentialsFileEnv); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("credentials file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	candidates := []string{defaultCredentialsFile}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, defaultCredentialsFile))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", nil
}

// Package core provides shared types and utilities for the watsonx.data SDK.
//
// This package contains:
//   - Error types for different HTTP status codes (400, 401, 403, 404, 409, 429, 5xx)
//   - Option validation used by every client operation
//   - Logging utilities
//   - Pointer and URL helpers
//
// Error types can be used for type assertions to handle specific error cases:
//
//	engine, err := c.GetPrestoEngine(ctx, &client.EngineIDOptions{EngineID: "presto01"})
//	if err != nil {
//	    var notFound *core.NotFoundError
//	    if errors.As(err, &notFound) {
//	        // Handle 404
//	    }
//	}
package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorItem is one entry of the service's "errors" array.
type ErrorItem struct {
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info,omitempty"`
}

// WatsonxError is the base error type for all watsonx.data API errors.
//
// All specific error types (RateLimitError, NotFoundError, etc.) embed this type.
// The Trace field identifies the request for IBM support.
type WatsonxError struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Code       string      `json:"code,omitempty"`
	MoreInfo   string      `json:"moreInfo,omitempty"`
	Trace      string      `json:"trace,omitempty"`
	Errors     []ErrorItem `json:"errors,omitempty"`
	Cause      error       `json:"-"`
}

func (e *WatsonxError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

func (e *WatsonxError) Unwrap() error {
	return e.Cause
}

func newBase(statusCode int, body errorBody) WatsonxError {
	return WatsonxError{
		Message:    body.message,
		StatusCode: statusCode,
		Code:       body.code,
		MoreInfo:   body.moreInfo,
		Trace:      body.trace,
		Errors:     body.errors,
	}
}

// RateLimitInfo contains information about a rate limit event.
//
// The RetryAfter field indicates how long to wait before retrying (in seconds).
type RateLimitInfo struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestURL string    `json:"requestUrl"`
	HTTPStatus int       `json:"httpStatus"`
	RetryAfter int       `json:"retryAfter,omitempty"` // seconds
	Trace      string    `json:"trace,omitempty"`
	Attempt    int       `json:"attempt"`
}

// RateLimitError is returned when the API returns HTTP 429.
type RateLimitError struct {
	WatsonxError
	RetryAfter    int           `json:"retryAfter,omitempty"`
	RateLimitInfo RateLimitInfo `json:"rateLimitInfo"`
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// NewRateLimitError creates a new RateLimitError from rate limit info.
func NewRateLimitError(info RateLimitInfo, message string) *RateLimitError {
	if message == "" {
		if info.RetryAfter > 0 {
			message = fmt.Sprintf("Rate limited. Retry after %d seconds", info.RetryAfter)
		} else {
			message = "Rate limited"
		}
	}
	return &RateLimitError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusTooManyRequests,
			Trace:      info.Trace,
		},
		RetryAfter:    info.RetryAfter,
		RateLimitInfo: info,
	}
}

// AuthenticationError is returned when authentication fails (HTTP 401).
type AuthenticationError struct {
	WatsonxError
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(message string, trace string) *AuthenticationError {
	return &AuthenticationError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusUnauthorized,
			Trace:      trace,
		},
	}
}

// AuthorizationError is returned when the caller lacks access (HTTP 403).
type AuthorizationError struct {
	WatsonxError
}

// NewAuthorizationError creates a new AuthorizationError.
func NewAuthorizationError(message string, trace string) *AuthorizationError {
	return &AuthorizationError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusForbidden,
			Trace:      trace,
		},
	}
}

// NotFoundError is returned when a resource is not found (HTTP 404).
type NotFoundError struct {
	WatsonxError
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, trace string) *NotFoundError {
	return &NotFoundError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusNotFound,
			Trace:      trace,
		},
	}
}

// ConflictError is returned when a resource already exists or is busy (HTTP 409).
type ConflictError struct {
	WatsonxError
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, trace string) *ConflictError {
	return &ConflictError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusConflict,
			Trace:      trace,
		},
	}
}

// ValidationError is returned for bad requests (HTTP 400).
type ValidationError struct {
	WatsonxError
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, trace string, errors []ErrorItem) *ValidationError {
	return &ValidationError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: http.StatusBadRequest,
			Trace:      trace,
			Errors:     errors,
		},
	}
}

// TimeoutError is returned when a request times out.
type TimeoutError struct {
	WatsonxError
	TimeoutMs int `json:"timeoutMs"`
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timed out after %dms", e.TimeoutMs)
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(timeoutMs int, cause error) *TimeoutError {
	return &TimeoutError{
		WatsonxError: WatsonxError{
			Message: fmt.Sprintf("Request timed out after %dms", timeoutMs),
			Cause:   cause,
		},
		TimeoutMs: timeoutMs,
	}
}

// ServerError is returned for server errors (HTTP 5xx).
type ServerError struct {
	WatsonxError
}

// NewServerError creates a new ServerError.
func NewServerError(statusCode int, message string, trace string) *ServerError {
	return &ServerError{
		WatsonxError: WatsonxError{
			Message:    message,
			StatusCode: statusCode,
			Trace:      trace,
		},
	}
}

// errorBody is the normalized form of the error payload variants the service emits.
type errorBody struct {
	message  string
	code     string
	moreInfo string
	trace    string
	errors   []ErrorItem
}

func decodeErrorBody(r io.Reader) errorBody {
	var raw struct {
		Errors       []ErrorItem `json:"errors"`
		Trace        string      `json:"trace"`
		Error        string      `json:"error"`
		Message      string      `json:"message"`
		ErrorMessage string      `json:"errorMessage"`
		Code         any         `json:"code"`
	}
	var out errorBody
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return out
	}
	out.trace = raw.Trace
	out.errors = raw.Errors
	switch c := raw.Code.(type) {
	case string:
		out.code = c
	case float64:
		out.code = strconv.FormatFloat(c, 'f', -1, 64)
	}
	if len(raw.Errors) > 0 {
		out.message = raw.Errors[0].Message
		out.moreInfo = raw.Errors[0].MoreInfo
		if raw.Errors[0].Code != "" {
			out.code = raw.Errors[0].Code
		}
	}
	for _, m := range []string{raw.ErrorMessage, raw.Message, raw.Error} {
		if out.message == "" && m != "" {
			out.message = m
		}
	}
	return out
}

// ParseErrorResponse parses an HTTP response into an appropriate error type.
func ParseErrorResponse(resp *http.Response, requestURL string) error {
	body := decodeErrorBody(resp.Body)

	if body.trace == "" {
		body.trace = resp.Header.Get("X-Global-Transaction-Id")
	}
	if body.trace == "" {
		body.trace = resp.Header.Get("X-Request-Id")
	}
	if body.message == "" {
		body.message = resp.Status
	}
	if body.message == "" {
		body.message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return &ValidationError{WatsonxError: newBase(resp.StatusCode, body)}
	case http.StatusUnauthorized:
		return &AuthenticationError{WatsonxError: newBase(resp.StatusCode, body)}
	case http.StatusForbidden:
		return &AuthorizationError{WatsonxError: newBase(resp.StatusCode, body)}
	case http.StatusNotFound:
		return &NotFoundError{WatsonxError: newBase(resp.StatusCode, body)}
	case http.StatusConflict:
		return &ConflictError{WatsonxError: newBase(resp.StatusCode, body)}
	case http.StatusTooManyRequests:
		retryAfter := 0
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			retryAfter, _ = strconv.Atoi(strings.TrimSpace(ra))
		}
		info := RateLimitInfo{
			Timestamp:  time.Now(),
			RequestURL: requestURL,
			HTTPStatus: http.StatusTooManyRequests,
			RetryAfter: retryAfter,
			Trace:      body.trace,
			Attempt:    1,
		}
		rle := NewRateLimitError(info, body.message)
		rle.Code = body.code
		rle.Errors = body.errors
		return rle
	default:
		if resp.StatusCode >= 500 {
			return &ServerError{WatsonxError: newBase(resp.StatusCode, body)}
		}
		base := newBase(resp.StatusCode, body)
		return &base
	}
}

// IsRetryableError returns true if the error should trigger a retry.
func IsRetryableError(err error) bool {
	switch err.(type) {
	case *RateLimitError:
		return true
	case *ServerError:
		return true
	case *TimeoutError:
		return true
	}
	return false
}

// StatusCode returns the HTTP status carried by an SDK error, or 0 when err
// did not come from an HTTP response.
func StatusCode(err error) int {
	var sc interface{ status() int }
	if errors.As(err, &sc) {
		return sc.status()
	}
	return 0
}

func (e *WatsonxError) status() int { return e.StatusCode }

// ParamError is returned when operation options fail validation before any
// request is sent.
type ParamError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ParamError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Message)
	}
	return e.Message
}

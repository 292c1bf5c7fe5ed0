package core

import (
	"fmt"
	"net/url"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.4.0"

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Int64Ptr returns a pointer to i.
func Int64Ptr(i int64) *int64 { return &i }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 { return &f }

// GetQueryParam returns a pointer to the value of query parameter param in
// urlStr. A nil pointer with nil error means the parameter is absent or empty.
func GetQueryParam(urlStr *string, param string) (*string, error) {
	if urlStr == nil || *urlStr == "" {
		return nil, nil
	}
	u, err := url.Parse(*urlStr)
	if err != nil {
		return nil, fmt.Errorf("parsing next link: %w", err)
	}
	value := u.Query().Get(param)
	if value == "" {
		return nil, nil
	}
	return &value, nil
}

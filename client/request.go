package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"reflect"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

const (
	contentTypeJSON       = "application/json"
	contentTypeMergePatch = "application/merge-patch+json"
)

// request accumulates one API call. Builder errors are deferred to invoke.
type request struct {
	method      string
	path        string
	query       url.Values
	header      http.Header
	instanceID  *string
	body        []byte
	contentType string
	err         error
}

func newRequest(method, pathTemplate string) *request {
	return &request{
		method: method,
		path:   pathTemplate,
		query:  make(url.Values),
		header: make(http.Header),
	}
}

// pathParam substitutes {name} in the path template.
func (r *request) pathParam(name, value string) *request {
	if r.err != nil {
		return r
	}
	if value == "" {
		r.err = &core.ParamError{Field: name, Message: "cannot be empty"}
		return r
	}
	styled, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		r.err = fmt.Errorf("invalid format for parameter %s: %w", name, err)
		return r
	}
	r.path = strings.ReplaceAll(r.path, "{"+name+"}", styled)
	return r
}

// queryParam adds a form-style query parameter. Nil pointers and empty
// slices are skipped; slices are comma joined.
func (r *request) queryParam(name string, value any) *request {
	if r.err != nil || isUnset(value) {
		return r
	}
	styled, err := runtime.StyleParamWithLocation("form", false, name, runtime.ParamLocationQuery, value)
	if err != nil {
		r.err = fmt.Errorf("invalid format for parameter %s: %w", name, err)
		return r
	}
	parsed, err := url.ParseQuery(styled)
	if err != nil {
		r.err = fmt.Errorf("invalid format for parameter %s: %w", name, err)
		return r
	}
	for k, vs := range parsed {
		for _, v := range vs {
			r.query.Add(k, v)
		}
	}
	return r
}

// authInstance sets the per-call AuthInstanceId, overriding the client default.
func (r *request) authInstance(id *string) *request {
	r.instanceID = id
	return r
}

func (r *request) jsonBody(v any) *request {
	return r.encodedBody(v, contentTypeJSON)
}

func (r *request) mergePatchBody(v any) *request {
	return r.encodedBody(v, contentTypeMergePatch)
}

func (r *request) encodedBody(v any, contentType string) *request {
	if r.err != nil {
		return r
	}
	data, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("marshaling request body: %w", err)
		return r
	}
	r.body = data
	r.contentType = contentType
	return r
}

// formPart is one part of a multipart/form-data body. Parts with a Reader
// are sent as files; the rest as plain fields.
type formPart struct {
	name        string
	value       string
	filename    string
	contentType string
	reader      io.Reader
}

func (r *request) multipartBody(parts ...formPart) *request {
	if r.err != nil {
		return r
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.reader == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				r.err = fmt.Errorf("writing form field %s: %w", p.name, err)
				return r
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		filename := p.filename
		if filename == "" {
			filename = p.name
		}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, filename))
		ct := p.contentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		pw, err := w.CreatePart(h)
		if err != nil {
			r.err = fmt.Errorf("creating form part %s: %w", p.name, err)
			return r
		}
		if _, err := io.Copy(pw, p.reader); err != nil {
			r.err = fmt.Errorf("writing form part %s: %w", p.name, err)
			return r
		}
	}
	if err := w.Close(); err != nil {
		r.err = fmt.Errorf("closing multipart body: %w", err)
		return r
	}
	r.body = buf.Bytes()
	r.contentType = w.FormDataContentType()
	return r
}

// invoke sends r and decodes a 2xx JSON body into result (which may be nil).
// Non-2xx responses are returned as typed errors from core.ParseErrorResponse.
func (c *Client) invoke(ctx context.Context, r *request, result any) error {
	if r.err != nil {
		return r.err
	}

	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	fullURL := c.serviceURL + r.path
	if len(r.query) > 0 {
		fullURL += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, fullURL, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	instanceID := c.authInstanceID
	if r.instanceID != nil && *r.instanceID != "" {
		instanceID = *r.instanceID
	}
	if instanceID != "" {
		req.Header.Set("AuthInstanceId", instanceID)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	c.logger.Debug("%s %s", r.method, fullURL)
	resp, err := c.doer.Do(req)
	if err != nil {
		if c.timeout > 0 && errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
			return core.NewTimeoutError(int(c.timeout.Milliseconds()), err)
		}
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := core.ParseErrorResponse(resp, fullURL)
		c.logger.Warn("%s %s failed: %v", r.method, r.path, apiErr)
		return apiErr
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// call invokes r and decodes the response into a new T.
func call[T any](ctx context.Context, c *Client, r *request) (*T, error) {
	var result T
	if err := c.invoke(ctx, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func isUnset(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	}
	return false
}

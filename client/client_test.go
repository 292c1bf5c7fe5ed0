package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/DrewBradfordXYZ/watsonxdata-go/auth"
	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

// newTestClient starts a server with handler and returns a client pointed at
// it with fast retries and no rate limiting.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	return newAuthTestClient(t, auth.NewBearerTokenAuthenticator("test-token"), handler, opts...)
}

func newAuthTestClient(t *testing.T, a auth.Authenticator, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []Option{
		WithRetryDelay(time.Millisecond),
		WithMaxRetryDelay(5 * time.Millisecond),
		WithRateLimiter(NewRateLimiter(0, 1)),
	}
	c, err := New(srv.URL+"/lakehouse/api/v2", a, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		serviceURL string
		auth       auth.Authenticator
		wantURL    string
		wantErr    bool
	}{
		{
			name:    "default URL",
			auth:    auth.NewNoAuthAuthenticator(),
			wantURL: DefaultServiceURL,
		},
		{
			name:       "trailing slash trimmed",
			serviceURL: "https://example.com/lakehouse/api/v2/",
			auth:       auth.NewNoAuthAuthenticator(),
			wantURL:    "https://example.com/lakehouse/api/v2",
		},
		{
			name:       "nil authenticator",
			serviceURL: "https://example.com",
			wantErr:    true,
		},
		{
			name:       "unsupported scheme",
			serviceURL: "ftp://example.com",
			auth:       auth.NewNoAuthAuthenticator(),
			wantErr:    true,
		},
		{
			name:       "relative URL",
			serviceURL: "lakehouse/api/v2",
			auth:       auth.NewNoAuthAuthenticator(),
			wantErr:    true,
		},
		{
			name:       "invalid authenticator",
			serviceURL: "https://example.com",
			auth:       auth.NewBasicAuthenticator("", "pass"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.serviceURL, tt.auth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.ServiceURL() != tt.wantURL {
				t.Errorf("ServiceURL() = %q, want %q", c.ServiceURL(), tt.wantURL)
			}
		})
	}
}

func TestInvoke_StandardHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		writeJSON(w, http.StatusOK, map[string]any{"catalogs": []any{}})
	}, WithAuthInstanceID("crn:default"), WithHeader("X-Custom", "custom-value"))

	if _, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{}); err != nil {
		t.Fatalf("ListCatalogs() error = %v", err)
	}

	checks := map[string]string{
		"Accept":         "application/json",
		"User-Agent":     "watsonxdata-go/" + core.Version,
		"Authorization":  "Bearer test-token",
		"AuthInstanceId": "crn:default",
		"X-Custom":       "custom-value",
	}
	for header, want := range checks {
		if v := got.Get(header); v != want {
			t.Errorf("header %s = %q, want %q", header, v, want)
		}
	}
	if v := got.Get("Content-Type"); v != "" {
		t.Errorf("GET without body sent Content-Type %q", v)
	}
}

func TestInvoke_AuthInstanceID(t *testing.T) {
	tests := []struct {
		name          string
		clientDefault string
		perCall       *string
		want          string
	}{
		{name: "neither set", want: ""},
		{name: "client default", clientDefault: "crn:default", want: "crn:default"},
		{name: "per call only", perCall: core.StringPtr("crn:call"), want: "crn:call"},
		{name: "per call overrides default", clientDefault: "crn:default", perCall: core.StringPtr("crn:call"), want: "crn:call"},
		{name: "empty per call keeps default", clientDefault: "crn:default", perCall: core.StringPtr(""), want: "crn:default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			var opts []Option
			if tt.clientDefault != "" {
				opts = append(opts, WithAuthInstanceID(tt.clientDefault))
			}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Values("AuthInstanceId")
				writeJSON(w, http.StatusOK, map[string]any{})
			}, opts...)

			if _, err := c.ListBucketRegistrations(context.Background(), &ListBucketRegistrationsOptions{AuthInstanceID: tt.perCall}); err != nil {
				t.Fatalf("ListBucketRegistrations() error = %v", err)
			}
			if tt.want == "" {
				if len(got) != 0 {
					t.Errorf("AuthInstanceId = %v, want absent", got)
				}
				return
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("AuthInstanceId = %v, want [%s]", got, tt.want)
			}
		})
	}
}

func TestInvoke_PathAndQuery(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteSparkEngineApplications(context.Background(), &DeleteSparkEngineApplicationsOptions{
		EngineID:      "spark 01",
		ApplicationID: "app-1",
		State:         []string{"running", "accepted"},
	})
	if err != nil {
		t.Fatalf("DeleteSparkEngineApplications() error = %v", err)
	}

	if want := "/lakehouse/api/v2/spark_engines/spark 01/applications"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	want := url.Values{
		"application_id": {"app-1"},
		"state":          {"running,accepted"},
	}
	if diff := cmp.Diff(want, gotQuery); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoke_OptionalQueryOmitted(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]any{"ingestion_jobs": []any{}})
	})

	if _, err := c.ListIngestionJobs(context.Background(), &ListIngestionJobsOptions{}); err != nil {
		t.Fatalf("ListIngestionJobs() error = %v", err)
	}
	if rawQuery != "" {
		t.Errorf("query = %q, want empty", rawQuery)
	}
}

func TestInvoke_MergePatchBody(t *testing.T) {
	var contentType string
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"engine_id": "presto01", "description": "updated"})
	})

	engine, err := c.UpdateEngine(context.Background(), &UpdateEngineOptions{
		EngineID:    "presto01",
		Description: core.StringPtr("updated"),
	})
	if err != nil {
		t.Fatalf("UpdateEngine() error = %v", err)
	}

	if contentType != "application/merge-patch+json" {
		t.Errorf("Content-Type = %q, want application/merge-patch+json", contentType)
	}
	if diff := cmp.Diff(map[string]any{"description": "updated"}, body); diff != "" {
		t.Errorf("patch body mismatch (-want +got):\n%s", diff)
	}
	if engine.EngineID == nil || *engine.EngineID != "presto01" {
		t.Errorf("EngineID = %v, want presto01", engine.EngineID)
	}
}

func TestInvoke_DecodesModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lakehouse/api/v2/bucket_registrations/bucket-1" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{
			"bucket_id": "bucket-1",
			"bucket_display_name": "sample",
			"bucket_type": "ibm_cos",
			"managed_by": "customer",
			"state": "active",
			"tags": ["read"],
			"associated_catalog": {"catalog_name": "iceberg_data", "catalog_type": "iceberg"},
			"bucket_details": {"bucket_name": "sample-bucket", "endpoint": "https://s3.us-south.cloud-object-storage.appdomain.cloud"}
		}`)
	})

	got, err := c.GetBucketRegistration(context.Background(), &GetBucketRegistrationOptions{BucketID: "bucket-1"})
	if err != nil {
		t.Fatalf("GetBucketRegistration() error = %v", err)
	}

	want := &BucketRegistration{
		BucketID:          core.StringPtr("bucket-1"),
		BucketDisplayName: core.StringPtr("sample"),
		BucketType:        core.StringPtr("ibm_cos"),
		ManagedBy:         core.StringPtr("customer"),
		State:             core.StringPtr("active"),
		Tags:              []string{"read"},
		AssociatedCatalog: &BucketCatalog{CatalogName: "iceberg_data", CatalogType: "iceberg"},
		BucketDetails: &BucketDetails{
			BucketName: core.StringPtr("sample-bucket"),
			Endpoint:   core.StringPtr("https://s3.us-south.cloud-object-storage.appdomain.cloud"),
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetBucketRegistration() mismatch (-want +got):\n%s", diff)
	}
}

func TestInvoke_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteBucketRegistration(context.Background(), &DeleteBucketRegistrationOptions{BucketID: "bucket-1"}); err != nil {
		t.Errorf("DeleteBucketRegistration() error = %v", err)
	}
}

func TestInvoke_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(t *testing.T, err error)
		wantMsg string
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"errors":[{"code":"not_found","message":"bucket not found"}],"trace":"trace-404"}`,
			check: func(t *testing.T, err error) {
				var nf *core.NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("error = %T, want *core.NotFoundError", err)
				}
				if nf.Code != "not_found" {
					t.Errorf("Code = %q, want not_found", nf.Code)
				}
				if nf.Trace != "trace-404" {
					t.Errorf("Trace = %q, want trace-404", nf.Trace)
				}
			},
			wantMsg: "bucket not found",
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"errors":[{"code":"invalid_parameter","message":"bucket_type is invalid"}],"trace":"trace-400"}`,
			check: func(t *testing.T, err error) {
				var ve *core.ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("error = %T, want *core.ValidationError", err)
				}
				if ve.Trace != "trace-400" {
					t.Errorf("Trace = %q, want trace-400", ve.Trace)
				}
			},
			wantMsg: "bucket_type is invalid",
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"message":"not authorized"}`,
			check: func(t *testing.T, err error) {
				var ae *core.AuthorizationError
				if !errors.As(err, &ae) {
					t.Fatalf("error = %T, want *core.AuthorizationError", err)
				}
			},
			wantMsg: "not authorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.GetBucketRegistration(context.Background(), &GetBucketRegistrationOptions{BucketID: "bucket-1"})
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
			if core.StatusCode(err) != tt.status {
				t.Errorf("StatusCode() = %d, want %d", core.StatusCode(err), tt.status)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestInvoke_ValidationBeforeRequest(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()

	tests := []struct {
		name      string
		run       func() error
		wantField string
	}{
		{
			name: "nil options",
			run: func() error {
				_, err := c.GetCatalog(ctx, nil)
				return err
			},
			wantField: "GetCatalogOptions",
		},
		{
			name: "missing path parameter",
			run: func() error {
				_, err := c.GetCatalog(ctx, &GetCatalogOptions{})
				return err
			},
			wantField: "catalog_id",
		},
		{
			name: "missing query parameter",
			run: func() error {
				_, err := c.ListSchemas(ctx, &ListSchemasOptions{CatalogID: "iceberg_data"})
				return err
			},
			wantField: "engine_id",
		},
		{
			name: "missing body field",
			run: func() error {
				_, err := c.CreateExecuteQuery(ctx, &CreateExecuteQueryOptions{EngineID: "presto01"})
				return err
			},
			wantField: "sql_string",
		},
		{
			name: "missing field in embedded options",
			run: func() error {
				return c.DeleteTable(ctx, &DeleteTableOptions{TableOptions: TableOptions{CatalogID: "c", SchemaID: "s", EngineID: "e"}})
			},
			wantField: "table_id",
		},
		{
			name: "missing nested required field",
			run: func() error {
				_, err := c.CreateBucketRegistration(ctx, &CreateBucketRegistrationOptions{
					BucketType:        "ibm_cos",
					Description:       core.StringPtr("d"),
					ManagedBy:         "customer",
					AssociatedCatalog: &BucketCatalog{CatalogType: "iceberg"},
				})
				return err
			},
			wantField: "catalog_name",
		},
		{
			name: "missing file",
			run: func() error {
				_, err := c.CreateIngestionJobsLocalFiles(ctx, &CreateIngestionJobsLocalFilesOptions{TargetTable: "t", EngineID: "e"})
				return err
			},
			wantField: "SourceDataFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			var pe *core.ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %v (%T), want *core.ParamError", err, err)
			}
			if pe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", pe.Field, tt.wantField)
			}
		})
	}

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestRetry_ServerErrorThenSuccess(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"catalogs": []map[string]any{{"catalog_name": "iceberg_data"}}})
	})

	result, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	if err != nil {
		t.Fatalf("ListCatalogs() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
	if len(result.Catalogs) != 1 {
		t.Errorf("len(Catalogs) = %d, want 1", len(result.Catalogs))
	}
}

func TestRetry_Exhausted(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"errors":[{"code":"internal_error","message":"boom"}]}`)
	}, WithMaxRetries(2))

	_, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	var se *core.ServerError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v (%T), want *core.ServerError", err, err)
	}
	if !core.IsRetryableError(se) {
		t.Error("server error should be retryable")
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", n)
	}
}

func TestRetry_RateLimitHonorsRetryAfter(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}, WithRetryDelay(time.Hour), WithMaxRetryDelay(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := c.ListCatalogs(ctx, &ListCatalogsOptions{}); err != nil {
		t.Fatalf("ListCatalogs() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestRetry_RateLimitExhausted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithMaxRetries(1))

	_, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	var rle *core.RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error = %v (%T), want *core.RateLimitError", err, err)
	}
}

func TestRetry_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetCatalog(context.Background(), &GetCatalogOptions{CatalogID: "missing"})
	if core.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("StatusCode() = %d, want 404", core.StatusCode(err))
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
}

func TestRetry_ResendsBody(t *testing.T) {
	var calls int32
	var bodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"response": map[string]any{"result": [][]string{{"1"}}}})
	})

	result, err := c.CreateExecuteQuery(context.Background(), &CreateExecuteQueryOptions{
		EngineID:  "presto01",
		SQLString: "select 1",
	})
	if err != nil {
		t.Fatalf("CreateExecuteQuery() error = %v", err)
	}
	if len(bodies) != 2 || bodies[0] != bodies[1] || bodies[0] == "" {
		t.Errorf("bodies = %q, want the same non-empty body twice", bodies)
	}
	if diff := cmp.Diff([][]string{{"1"}}, result.Response.Result); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}
}

func TestUnauthorized_RetriedOnce(t *testing.T) {
	var calls int32
	bearer := auth.NewBearerTokenAuthenticator("stale-token")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			if n == 1 {
				// Simulate the caller rotating the token while the first request is in flight.
				bearer.SetBearerToken("fresh-token")
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	c, err := New(srv.URL, bearer, WithRateLimiter(NewRateLimiter(0, 1)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{}); err != nil {
		t.Fatalf("ListCatalogs() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestUnauthorized_ReturnsAuthenticationError(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	var ae *core.AuthenticationError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v (%T), want *core.AuthenticationError", err, err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("calls = %d, want 2", n)
	}
}

func TestUnauthorized_IAMRefreshesOnce(t *testing.T) {
	var tokenFetches, apiCalls int32
	iam := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&tokenFetches, 1)
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "iam-token-" + string(rune('0'+n)),
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer iam.Close()

	c := newAuthTestClient(t, auth.NewIAMAuthenticator("my-api-key", auth.WithIAMURL(iam.URL)), func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&apiCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}, WithMaxRetries(5))

	_, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	var ae *core.AuthenticationError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v (%T), want *core.AuthenticationError", err, err)
	}
	if n := atomic.LoadInt32(&apiCalls); n != 2 {
		t.Errorf("api calls = %d, want 2", n)
	}
	if n := atomic.LoadInt32(&tokenFetches); n != 2 {
		t.Errorf("token fetches = %d, want 2", n)
	}
}

func TestUnauthorized_AfterServerErrorStillRefreshes(t *testing.T) {
	var calls int32
	bearer := auth.NewBearerTokenAuthenticator("stale-token")
	c := newAuthTestClient(t, bearer, func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			bearer.SetBearerToken("fresh-token")
			w.WriteHeader(http.StatusUnauthorized)
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer fresh-token" {
				t.Errorf("Authorization = %q, want Bearer fresh-token", got)
			}
			writeJSON(w, http.StatusOK, map[string]any{})
		}
	})

	if _, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{}); err != nil {
		t.Fatalf("ListCatalogs() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(20*time.Millisecond), WithMaxRetries(0))

	_, err := c.ListCatalogs(context.Background(), &ListCatalogsOptions{})
	var te *core.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v (%T), want *core.TimeoutError", err, err)
	}
}

func TestCallerCancellationIsNotTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}, WithTimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListCatalogs(ctx, &ListCatalogsOptions{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	var te *core.TimeoutError
	if errors.As(err, &te) {
		t.Errorf("canceled context reported as timeout: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestCreateIngestionJobs_DefaultJobID(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusAccepted, map[string]any{"job_id": body["job_id"], "status": "running"})
	})

	job, err := c.CreateIngestionJobs(context.Background(), &CreateIngestionJobsOptions{
		TargetTable:     "iceberg_data.ingestion_schema.orders",
		SourceDataFiles: "s3://bucket/orders.parquet",
		EngineID:        "spark01",
	})
	if err != nil {
		t.Fatalf("CreateIngestionJobs() error = %v", err)
	}

	id, _ := body["job_id"].(string)
	suffix, ok := strings.CutPrefix(id, "ingestion-")
	if !ok {
		t.Fatalf("job_id = %q, want ingestion- prefix", id)
	}
	if _, err := uuid.Parse(suffix); err != nil {
		t.Errorf("job_id suffix %q is not a UUID: %v", suffix, err)
	}
	if job.JobID == nil || *job.JobID != id {
		t.Errorf("JobID = %v, want %q", job.JobID, id)
	}
	if _, present := body["AuthInstanceID"]; present {
		t.Error("AuthInstanceID leaked into the request body")
	}
}

func TestCreateIngestionJobsLocalFiles_Multipart(t *testing.T) {
	type received struct {
		file, filename, fileType       string
		targetTable, jobID, engineID   string
		csvProperty, validateCSVHeader string
	}
	var got received
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm() error = %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f, fh, err := r.FormFile("source_data_file")
		if err != nil {
			t.Errorf("FormFile() error = %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(f)
		got = received{
			file:              string(data),
			filename:          fh.Filename,
			fileType:          fh.Header.Get("Content-Type"),
			targetTable:       r.FormValue("target_table"),
			jobID:             r.FormValue("job_id"),
			engineID:          r.FormValue("engine_id"),
			csvProperty:       r.FormValue("csv_property"),
			validateCSVHeader: r.FormValue("validate_csv_header"),
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"job_id": got.jobID})
	})

	_, err := c.CreateIngestionJobsLocalFiles(context.Background(), &CreateIngestionJobsLocalFilesOptions{
		SourceDataFile:            strings.NewReader("id,name\n1,widget\n"),
		SourceDataFileName:        "orders.csv",
		SourceDataFileContentType: "text/csv",
		TargetTable:               "iceberg_data.ingestion_schema.orders",
		JobID:                     "ingestion-local-1",
		EngineID:                  "spark01",
		CSVProperty:               &IngestionJobCSVProperty{FieldDelimiter: core.StringPtr(","), Header: core.BoolPtr(true)},
		ValidateCSVHeader:         core.BoolPtr(false),
	})
	if err != nil {
		t.Fatalf("CreateIngestionJobsLocalFiles() error = %v", err)
	}

	want := received{
		file:              "id,name\n1,widget\n",
		filename:          "orders.csv",
		fileType:          "text/csv",
		targetTable:       "iceberg_data.ingestion_schema.orders",
		jobID:             "ingestion-local-1",
		engineID:          "spark01",
		csvProperty:       `{"field_delimiter":",","header":true}`,
		validateCSVHeader: "false",
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(received{})); diff != "" {
		t.Errorf("multipart form mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRetryAfter(t *testing.T) {
	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)

	tests := []struct {
		name    string
		header  string
		wantOK  bool
		wantMin time.Duration
		wantMax time.Duration
	}{
		{name: "empty", header: "", wantOK: false},
		{name: "seconds", header: "5", wantOK: true, wantMin: 5 * time.Second, wantMax: 5 * time.Second},
		{name: "zero", header: "0", wantOK: true},
		{name: "http date", header: future, wantOK: true, wantMin: 25 * time.Second, wantMax: 30 * time.Second},
		{name: "date in the past", header: past, wantOK: true},
		{name: "negative", header: "-1", wantOK: false},
		{name: "garbage", header: "soon", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parseRetryAfter(tt.header)
			if ok != tt.wantOK {
				t.Fatalf("parseRetryAfter(%q) ok = %v, want %v", tt.header, ok, tt.wantOK)
			}
			if d < tt.wantMin || d > tt.wantMax {
				t.Errorf("parseRetryAfter(%q) = %v, want between %v and %v", tt.header, d, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestNewBackOff(t *testing.T) {
	c, err := New("", auth.NewNoAuthAuthenticator(), WithRetryDelay(100*time.Millisecond), WithMaxRetryDelay(300*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b := c.newBackOff()

	// Each delay is within 10% jitter of 100ms, 200ms, then capped at 300ms.
	bounds := []struct{ lo, hi time.Duration }{
		{90 * time.Millisecond, 110 * time.Millisecond},
		{180 * time.Millisecond, 220 * time.Millisecond},
		{270 * time.Millisecond, 330 * time.Millisecond},
		{270 * time.Millisecond, 330 * time.Millisecond},
	}
	for i, bnd := range bounds {
		d := b.NextBackOff()
		if d < bnd.lo || d > bnd.hi {
			t.Errorf("delay %d = %v, want between %v and %v", i, d, bnd.lo, bnd.hi)
		}
	}
}

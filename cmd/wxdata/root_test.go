package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/DrewBradfordXYZ/watsonxdata-go/core"
)

const apiPrefix = "/lakehouse/api/v2"

// runCLI executes the CLI against handler and returns what it printed.
func runCLI(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	a := newApp(&out)
	root := a.rootCmd()
	root.SetArgs(append([]string{"--url", srv.URL + apiPrefix, "--bearer-token", "test-token"}, args...))
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHeader(t *testing.T) {
	tests := []struct {
		column string
		want   string
	}{
		{"engine_id", "Engine Id"},
		{"bucket_display_name", "Bucket Display Name"},
		{"status", "Status"},
	}
	for _, tt := range tests {
		if got := header(tt.column); got != tt.want {
			t.Errorf("header(%q) = %q, want %q", tt.column, got, tt.want)
		}
	}
}

func TestBucketsList(t *testing.T) {
	var auth string
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != apiPrefix+"/bucket_registrations" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"bucket_registrations": []map[string]any{
				{"bucket_id": "iceberg-bucket", "bucket_display_name": "Iceberg", "bucket_type": "ibm_cos", "state": "active",
					"associated_catalog": map[string]any{"catalog_name": "iceberg_data", "catalog_type": "iceberg"}},
			},
		})
	}, "buckets", "list")
	if err != nil {
		t.Fatalf("buckets list error = %v", err)
	}

	if auth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", auth)
	}
	for _, want := range []string{"Bucket Id", "Bucket Display Name", "iceberg-bucket", "ibm_cos", "iceberg_data"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBucketsGet_NotFound(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"errors": []map[string]any{{"code": "not_found", "message": "bucket missing does not exist"}},
			"trace":  "trace-1",
		})
	}, "buckets", "get", "missing")

	var notFound *core.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *core.NotFoundError", err)
	}
}

func TestEnginesList(t *testing.T) {
	tests := []struct {
		engineType string
		path       string
		body       map[string]any
		wantID     string
	}{
		{
			engineType: "presto",
			path:       "/presto_engines",
			body:       map[string]any{"presto_engines": []map[string]any{{"engine_id": "presto01", "status": "running"}}},
			wantID:     "presto01",
		},
		{
			engineType: "spark",
			path:       "/spark_engines",
			body:       map[string]any{"spark_engines": []map[string]any{{"engine_id": "spark01", "status": "running"}}},
			wantID:     "spark01",
		},
		{
			engineType: "milvus",
			path:       "/milvus_services",
			body:       map[string]any{"milvus_services": []map[string]any{{"service_id": "milvus01", "status": "running"}}},
			wantID:     "milvus01",
		},
		{
			engineType: "netezza",
			path:       "/netezza_engines",
			body:       map[string]any{"netezza_engines": []map[string]any{{"engine_id": "nz01", "type": "netezza"}}},
			wantID:     "nz01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.engineType, func(t *testing.T) {
			var gotPath string
			out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = strings.TrimPrefix(r.URL.Path, apiPrefix)
				writeJSON(w, http.StatusOK, tt.body)
			}, "engines", "list", "--type", tt.engineType)
			if err != nil {
				t.Fatalf("engines list error = %v", err)
			}
			if gotPath != tt.path {
				t.Errorf("path = %q, want %q", gotPath, tt.path)
			}
			if !strings.Contains(out, tt.wantID) {
				t.Errorf("output missing %q:\n%s", tt.wantID, out)
			}
		})
	}
}

func TestEnginesList_UnknownType(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}, "engines", "list", "--type", "hive")
	if err == nil || !strings.Contains(err.Error(), "unknown engine type") {
		t.Errorf("error = %v, want unknown engine type", err)
	}
}

func TestIngestionList_FollowsPages(t *testing.T) {
	var starts []string
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		starts = append(starts, start)
		if r.URL.Query().Get("jobs_per_page") != "1" {
			t.Errorf("jobs_per_page = %q, want 1", r.URL.Query().Get("jobs_per_page"))
		}
		if start == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"ingestion_jobs": []map[string]any{{"job_id": "ingestion-1", "status": "completed"}},
				"next":           map[string]any{"href": "https://example.com" + apiPrefix + "/ingestion_jobs?start=page2&jobs_per_page=1"},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ingestion_jobs": []map[string]any{{"job_id": "ingestion-2", "status": "running"}},
		})
	}, "--output", "json", "ingestion", "list", "--page-size", "1")
	if err != nil {
		t.Fatalf("ingestion list error = %v", err)
	}

	if diff := cmp.Diff([]string{"", "page2"}, starts); diff != "" {
		t.Errorf("start tokens mismatch (-want +got):\n%s", diff)
	}

	var jobs []map[string]any
	if err := json.Unmarshal([]byte(out), &jobs); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	var ids []string
	for _, j := range jobs {
		ids = append(ids, j["job_id"].(string))
	}
	if diff := cmp.Diff([]string{"ingestion-1", "ingestion-2"}, ids); diff != "" {
		t.Errorf("job ids mismatch (-want +got):\n%s", diff)
	}
}

func TestQuery(t *testing.T) {
	var body map[string]any
	var path string
	out, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		path = strings.TrimPrefix(r.URL.Path, apiPrefix)
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{
			"response": map[string]any{"result": [][]string{{"1", "east"}, {"2", "west"}}},
		})
	}, "query", "--engine", "presto01", "--catalog", "tpch", "select id, region from orders")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}

	if path != "/queries/execute/presto01" {
		t.Errorf("path = %q", path)
	}
	want := map[string]any{"sql_string": "select id, region from orders", "catalog_name": "tpch"}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	for _, s := range []string{"Column 1", "Column 2", "east", "west"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestQuery_MissingEngine(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}, "query", "select 1")

	var paramErr *core.ParamError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error = %v, want *core.ParamError", err)
	}
	if paramErr.Field != "engine_id" {
		t.Errorf("Field = %q, want engine_id", paramErr.Field)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {}, "--output", "yaml", "catalogs", "list")
	if err == nil || !strings.Contains(err.Error(), "--output") {
		t.Errorf("error = %v, want --output error", err)
	}
}

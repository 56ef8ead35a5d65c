package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/pkg/dom"
)

func noopFactory(s *Session, opts ...verbosity.Option) (*verbosity.App, error) {
	return verbosity.New(s, s, opts...), nil
}

func TestNewRequiresFactory(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("expected error for nil factory")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	srv, err := New(&ServerConfig{Title: "Demo"}, noopFactory)
	if err != nil {
		t.Fatal(err)
	}
	cfg := srv.Config()
	if cfg.Address != ":8080" {
		t.Errorf("Address = %q, want :8080", cfg.Address)
	}
	if cfg.Title != "Demo" {
		t.Errorf("Title = %q, want Demo", cfg.Title)
	}
	if len(cfg.Mounts) != 1 || cfg.Mounts[0] != dom.PageMount {
		t.Errorf("Mounts = %v, want [page-mount]", cfg.Mounts)
	}
	if cfg.SessionConfig.HeartbeatInterval == 0 || cfg.SessionConfig.MaxEventQueue == 0 {
		t.Errorf("session defaults not applied: %+v", cfg.SessionConfig)
	}
}

func TestShellIsCompressed(t *testing.T) {
	srv, err := New(&ServerConfig{Title: "Demo"}, noopFactory)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "<title>Demo</title>") {
		t.Errorf("decompressed shell missing title:\n%s", body)
	}
}

func TestShellServedForAnyPath(t *testing.T) {
	srv, err := New(&ServerConfig{
		Title:  "Demo",
		Mounts: []dom.Element{"nav-mount", dom.PageMount},
	}, noopFactory)
	if err != nil {
		t.Fatal(err)
	}
	h := srv.Handler()

	for _, path := range []string{"/", "/users/42", "/deep/link/here"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d, want 200", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("GET %s: Content-Type = %q", path, ct)
		}
		body := rec.Body.String()
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>Demo</title>",
			`<div id="nav-mount"></div><div id="page-mount"></div>`,
			`src="/_verbosity/client.js"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("GET %s: body missing %q\n%s", path, want, body)
			}
		}
	}
}

func TestThinClient(t *testing.T) {
	srv, err := New(nil, noopFactory)
	if err != nil {
		t.Fatal(err)
	}
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ThinClientPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "popstate") {
		t.Error("client script should handle popstate")
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}
	req := httptest.NewRequest(http.MethodGet, ThinClientPath, nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
}

func TestETagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x"`, false},
		{"*", true},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv, err := New(&ServerConfig{MetricsPath: "/metrics"}, noopFactory, WithPrometheus(reg, "demo"))
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "demo_session_active") {
		t.Errorf("metrics output missing demo_session_active:\n%s", body)
	}
}

func TestMetricsEndpointDisabled(t *testing.T) {
	srv, err := New(nil, noopFactory)
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Without metrics the path is just another app path.
	if !strings.Contains(rec.Body.String(), "page-mount") {
		t.Error("expected the shell page")
	}
}

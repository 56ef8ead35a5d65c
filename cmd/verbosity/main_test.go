package main

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verbosity-dev/verbosity/internal/config"
	verrors "github.com/verbosity-dev/verbosity/internal/errors"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

const testConfig = `{
	"name": "demo",
	"routes": [
		{"pattern": "/", "title": "Home"},
		{"pattern": "/users/:id", "title": "User"},
		{"pattern": "/old", "redirect": "/"},
		{"pattern": "/loop-a", "redirect": "/loop-b"},
		{"pattern": "/loop-b", "redirect": "/loop-a"}
	]
}`

func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := run(t, "routes", "-c", projectDir(t))
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want header + 5 routes:\n%s", len(lines), out)
	}
	for i, want := range []string{"/", "/users/:id", "/old", "/loop-a", "/loop-b"} {
		fields := strings.Fields(lines[i+1])
		if fields[1] != want {
			t.Errorf("route %d = %q, want %q", i+1, fields[1], want)
		}
	}
	if !strings.Contains(lines[2], "parameterized") || !strings.Contains(lines[2], "id") {
		t.Errorf("user route line = %q", lines[2])
	}
}

func TestMatchCommand(t *testing.T) {
	dir := projectDir(t)

	out, err := run(t, "match", "-c", dir, "/users/42")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/users/42 matches /users/:id (parameterized)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "id = 42") {
		t.Errorf("output should list params: %q", out)
	}

	_, err = run(t, "match", "-c", dir, "/nowhere")
	if !errors.Is(err, router.ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestMatchNavigateFollowsRedirects(t *testing.T) {
	dir := projectDir(t)

	out, err := run(t, "match", "--navigate", "-c", dir, "/old")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/old redirected to /") {
		t.Errorf("output = %q", out)
	}

	_, err = run(t, "match", "--navigate", "-c", dir, "/loop-a")
	if !errors.Is(err, router.ErrRedirectLoop) {
		t.Errorf("err = %v, want ErrRedirectLoop", err)
	}
}

func TestDuplicatePatternsResolveToFirst(t *testing.T) {
	dir := t.TempDir()
	cfg := `{"routes": [
		{"pattern": "/", "title": "Home"},
		{"pattern": "/a", "redirect": "/"},
		{"pattern": "/a", "title": "Shadowed"}
	]}`
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "match", "--navigate", "-c", dir, "/a")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "/a redirected to /") {
		t.Errorf("output = %q, want the first /a route's redirect", out)
	}

	out, err = run(t, "routes", "-c", dir)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 routes:\n%s", len(lines), out)
	}
	if f := strings.Fields(lines[2]); f[len(f)-1] != "/" {
		t.Errorf("first /a row = %q, want redirect /", lines[2])
	}
	if f := strings.Fields(lines[3]); f[len(f)-1] != "-" {
		t.Errorf("second /a row = %q, want no redirect", lines[3])
	}
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "routes", "-c", t.TempDir())
	if verrors.Code(err) != "E400" {
		t.Errorf("code = %q, want E400 (err %v)", verrors.Code(err), err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := projectDir(t)
	cfg, err := loadConfig(filepath.Join(dir, config.ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "demo" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("output = %q, want %q", out, version)
	}
}

func TestNewServerServesShell(t *testing.T) {
	cfg, err := loadConfig(projectDir(t))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Metrics.Enabled = true

	srv, err := newServer(cfg, newLogger("error", false))
	if err != nil {
		t.Fatal(err)
	}
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `<div id="nav-mount"></div><div id="page-mount"></div>`) {
		t.Errorf("shell missing mounts:\n%s", body)
	}
	if !strings.Contains(body, "<title>demo</title>") {
		t.Errorf("shell missing title:\n%s", body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	metrics := rec.Body.String()
	for _, want := range []string{"go_goroutines", "verbosity_http_requests_total", "verbosity_session_active"} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

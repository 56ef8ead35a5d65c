package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/verbosity-dev/verbosity/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Router.MountID != DefaultMountID {
		t.Errorf("Router.MountID = %q, want %q", cfg.Router.MountID, DefaultMountID)
	}
	if cfg.Router.MaxRedirects != DefaultMaxRedirects {
		t.Errorf("Router.MaxRedirects = %d, want %d", cfg.Router.MaxRedirects, DefaultMaxRedirects)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if errors.Code(err) != "E400" {
		t.Fatalf("Load() on empty dir: code = %q, want E400 (err %v)", errors.Code(err), err)
	}

	writeConfig(t, tmpDir, `{
		"name": "demo",
		"server": {"port": 8080, "heartbeatInterval": "5s"},
		"router": {"mountId": "content"},
		"metrics": {"enabled": true},
		"routes": [
			{"pattern": "/", "title": "Home"},
			{"pattern": "/users/:id", "title": "User"},
			{"pattern": "/old", "redirect": "/"}
		]
	}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want demo", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.HeartbeatInterval() != 5*time.Second {
		t.Errorf("HeartbeatInterval() = %v, want 5s", cfg.HeartbeatInterval())
	}
	if cfg.ReadTimeout() != 60*time.Second {
		t.Errorf("ReadTimeout() = %v, want 60s", cfg.ReadTimeout())
	}
	if cfg.Router.MountID != "content" {
		t.Errorf("Router.MountID = %q, want content", cfg.Router.MountID)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if len(cfg.Routes) != 3 || cfg.Routes[2].Redirect != "/" {
		t.Errorf("Routes = %+v", cfg.Routes)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadKeepsDuplicatePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"routes": [
		{"pattern": "/a", "title": "First"},
		{"pattern": "/a", "title": "Second"}
	]}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Routes) != 2 || cfg.Routes[0].Title != "First" || cfg.Routes[1].Title != "Second" {
		t.Errorf("Routes = %+v, want both /a routes in order", cfg.Routes)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{ not json`)

	_, err := Load(tmpDir)
	if errors.Code(err) != "E401" {
		t.Errorf("code = %q, want E401", errors.Code(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, "E402"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "E402"},
		{"bad duration", func(c *Config) { c.Server.ReadTimeout = "soon" }, "E401"},
		{"zero duration", func(c *Config) { c.Server.WriteTimeout = "0s" }, "E401"},
		{"negative redirects", func(c *Config) { c.Router.MaxRedirects = -1 }, "E401"},
		{"relative pattern", func(c *Config) { c.Routes = []RouteConfig{{Pattern: "users"}} }, "E401"},
		{"duplicate pattern", func(c *Config) {
			c.Routes = []RouteConfig{{Pattern: "/a"}, {Pattern: "/a"}}
		}, ""},
		{"relative redirect", func(c *Config) {
			c.Routes = []RouteConfig{{Pattern: "/a", Redirect: "b"}}
		}, "E401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if got := errors.Code(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := New()
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 9000
	if got := cfg.Address(); got != "0.0.0.0:9000" {
		t.Errorf("Address() = %q", got)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved"
	cfg.Routes = []RouteConfig{{Pattern: "/", Title: "Home"}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "saved" || len(loaded.Routes) != 1 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProjectRoot() = %q, want %q", got, want)
	}

	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}

func TestLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	content := `name = "toml-demo"

[server]
port = 4000

[[routes]]
pattern = "/"
title = "Home"

[[routes]]
pattern = "/old"
redirect = "/"
`
	if err := os.WriteFile(filepath.Join(tmpDir, TOMLConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "toml-demo" || cfg.Server.Port != 4000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Routes) != 2 || cfg.Routes[1].Redirect != "/" {
		t.Errorf("Routes = %+v", cfg.Routes)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if !Exists(tmpDir) {
		t.Error("Exists() should see the TOML config")
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"name": "json"}`)
	if err := os.WriteFile(filepath.Join(tmpDir, TOMLConfigFileName), []byte(`name = "toml"`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvHost:    "0.0.0.0",
		EnvPort:    "9090",
		EnvMetrics: "true",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := New()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}

	env[EnvPort] = "http"
	if err := New().ApplyEnv(lookup); errors.Code(err) != "E402" {
		t.Errorf("code = %q, want E402", errors.Code(err))
	}

	env[EnvPort] = "99999"
	if err := New().ApplyEnv(lookup); errors.Code(err) != "E402" {
		t.Errorf("code = %q, want E402", errors.Code(err))
	}

	env[EnvPort] = "80"
	env[EnvMetrics] = "maybe"
	if err := New().ApplyEnv(lookup); errors.Code(err) != "E401" {
		t.Errorf("code = %q, want E401", errors.Code(err))
	}
}

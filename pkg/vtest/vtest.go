package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/render"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

// Harness is an App wired to a dom.Recorder and a router.MemoryHistory.
type Harness struct {
	App     *verbosity.App
	DOM     *dom.Recorder
	History *router.MemoryHistory

	t testing.TB
}

// NewApp creates a harness whose App logs nowhere unless opts say otherwise.
// The App is closed when the test ends.
//
// Example:
//
//	h := vtest.NewApp(t, verbosity.WithMount("content"))
func NewApp(t testing.TB, opts ...verbosity.Option) *Harness {
	t.Helper()
	rec := dom.NewRecorder()
	hist := router.NewMemoryHistory()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]verbosity.Option{verbosity.WithLogger(quiet)}, opts...)

	app := verbosity.New(rec, hist, opts...)
	t.Cleanup(app.Close)
	return &Harness{App: app, DOM: rec, History: hist, t: t}
}

// Start starts the App at path, failing the test on error.
func (h *Harness) Start(path string) {
	h.t.Helper()
	if err := h.App.Start(context.Background(), path); err != nil {
		h.t.Fatalf("Start(%q): %v", path, err)
	}
}

// GoTo navigates to path, failing the test on error.
func (h *Harness) GoTo(path string) {
	h.t.Helper()
	if err := h.App.Router().GoTo(context.Background(), path, nil); err != nil {
		h.t.Fatalf("GoTo(%q): %v", path, err)
	}
}

// Back simulates the browser back button.
func (h *Harness) Back() {
	h.t.Helper()
	if !h.History.Back() {
		h.t.Fatal("Back: already at the first entry")
	}
}

// Forward simulates the browser forward button.
func (h *Harness) Forward() {
	h.t.Helper()
	if !h.History.Forward() {
		h.t.Fatal("Forward: already at the last entry")
	}
}

// Page renders the template the router currently has mounted. It returns ""
// before the first navigation.
func (h *Harness) Page() string {
	h.t.Helper()
	tpl := h.App.Router().Current()
	if tpl == nil {
		return ""
	}
	return RenderToString(tpl)
}

// ExpectPage asserts that the current page contains expected.
func (h *Harness) ExpectPage(expected string) {
	h.t.Helper()
	if html := h.Page(); !strings.Contains(html, expected) {
		h.t.Errorf("expected page to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectState asserts the current history entry.
func (h *Harness) ExpectState(path string) {
	h.t.Helper()
	got, ok := h.History.State()
	if !ok {
		h.t.Errorf("expected history state %q, got none", path)
		return
	}
	if got != path {
		h.t.Errorf("expected history state %q, got %q", path, got)
	}
}

// ExpectMounted asserts that el holds a template rendering to something
// containing expected.
func (h *Harness) ExpectMounted(el dom.Element, expected string) {
	h.t.Helper()
	tpl := h.DOM.Mounted(el)
	if tpl == nil {
		h.t.Errorf("expected %q to be mounted, nothing is", el.ID())
		return
	}
	ExpectContains(h.t, tpl, expected)
}

// RenderToString renders a template and returns the HTML string, or "" when
// rendering fails.
func RenderToString(tpl dom.Template) string {
	html, err := render.Component(tpl)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, tpl, "Welcome Admin")
func ExpectContains(t testing.TB, tpl dom.Template, expected string) {
	t.Helper()
	html := RenderToString(tpl)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, tpl dom.Template, unexpected string) {
	t.Helper()
	html := RenderToString(tpl)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, tpl, "class", "btn-primary")
func ExpectAttribute(t testing.TB, tpl dom.Template, attr, value string) {
	t.Helper()
	html := RenderToString(tpl)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

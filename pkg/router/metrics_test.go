package router

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordNavigations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	f := newFixture(t, WithMetrics(m))
	f.router.AddRoute("/login", view("login"))
	f.router.AddRoute("/admin", guarded("admin", RedirectTo("/login")))
	f.router.AddRoute("/loop", guarded("loop", RedirectTo("/loop")))

	f.goTo(t, "/login")
	f.goTo(t, "/admin")
	_ = f.router.GoTo(context.Background(), "/missing", nil)
	_ = f.router.GoTo(context.Background(), "/loop", nil)

	if got := testutil.ToFloat64(m.navigations.WithLabelValues("/login", OutcomeOK)); got != 2 {
		t.Errorf("ok navigations to /login = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("", OutcomeNoRoute)); got != 1 {
		t.Errorf("no_route navigations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("/loop", OutcomeRedirectLoop)); got != 1 {
		t.Errorf("redirect_loop navigations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.redirects.WithLabelValues("/login")); got != 1 {
		t.Errorf("redirects to /login = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg, "test_router_navigation_duration_seconds")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("duration series = %d, want 3", count)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.observe("/", OutcomeOK, 0, 0)
}

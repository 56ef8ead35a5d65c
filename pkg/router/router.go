package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	verrors "github.com/verbosity-dev/verbosity/internal/errors"
	"github.com/verbosity-dev/verbosity/pkg/dom"
)

// DefaultMaxRedirects bounds the redirects followed by a single navigation.
const DefaultMaxRedirects = 16

// defaultTracerName is the otel tracer used when none is configured.
const defaultTracerName = "github.com/verbosity-dev/verbosity/pkg/router"

var (
	// ErrNoRoute is returned when no registered route matches a path.
	ErrNoRoute = errors.New("router: no route matches path")

	// ErrRedirectLoop is returned when guards redirect more than the
	// configured limit within one navigation.
	ErrRedirectLoop = errors.New("router: redirect limit exceeded")
)

// Router resolves paths to views and drives the DOM and history.
//
// A Router is not safe for concurrent use. It is meant to be driven from a
// single event loop, like the page it controls.
type Router struct {
	dom     dom.DOM
	history History
	mount   dom.Element
	routes  routeTable
	current dom.Template

	maxRedirects int
	logger       *slog.Logger
	tracer       trace.Tracer
	metrics      *Metrics
	onError      func(path string, err error)
	unsubscribe  func()
}

// Option configures a Router.
type Option func(*Router)

// WithMount sets the element the first view replaces. Default: dom.PageMount.
func WithMount(el dom.Element) Option {
	return func(r *Router) {
		r.mount = el
	}
}

// WithMaxRedirects sets how many guard redirects a single navigation may
// follow. Values <= 0 select DefaultMaxRedirects.
func WithMaxRedirects(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.maxRedirects = n
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for navigation spans.
// Default: the global otel tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// WithMetrics records navigation metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithErrorHandler sets a callback for failures of navigations triggered by
// history events, which have no caller to return an error to.
func WithErrorHandler(fn func(path string, err error)) Option {
	return func(r *Router) {
		r.onError = fn
	}
}

// New creates a Router swapping views through d and recording navigation in
// h. The router subscribes to h's back/forward events immediately.
func New(d dom.DOM, h History, opts ...Option) *Router {
	r := &Router{
		dom:          d,
		history:      h,
		mount:        dom.PageMount,
		maxRedirects: DefaultMaxRedirects,
		logger:       slog.Default(),
		tracer:       otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}

	// Back/forward reuses the full resolution path, guards included.
	r.unsubscribe = h.Subscribe(r.handlePop)

	return r
}

// AddRoute registers view for pattern. Earlier routes take priority.
func (r *Router) AddRoute(pattern string, view View) {
	r.routes.add(pattern, view)
	r.logger.Debug("route added", "pattern", pattern)
}

// Routes returns the registered routes in priority order.
func (r *Router) Routes() []Route {
	return r.routes.all()
}

// Match returns the route path resolves to and its path parameters, without
// evaluating guards or navigating.
func (r *Router) Match(path string) (Route, Params, bool) {
	route, ok := r.routes.lookup(path)
	if !ok {
		return Route{}, nil, false
	}
	return route, extractParams(route.Matcher, path), true
}

// Current returns the mounted view instance, or nil before the first
// navigation.
func (r *Router) Current() dom.Template {
	return r.current
}

// Close stops listening to history events.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// GoTo navigates to path. params are passed to the view factory; path
// parameters take precedence over them on key collision.
//
// GoTo fails with an error wrapping ErrNoRoute when nothing matches path (or
// a redirect target), and ErrRedirectLoop when guards keep redirecting.
func (r *Router) GoTo(ctx context.Context, path string, params Params) error {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "router.GoTo",
		trace.WithAttributes(attribute.String("verbosity.path", path)))
	defer span.End()

	nav := &navigation{chain: []string{path}}
	err := r.navigate(ctx, nav, path, params)

	span.SetAttributes(
		attribute.Int("verbosity.redirects", len(nav.chain)-1),
		attribute.String("verbosity.route", nav.pattern),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	r.metrics.observe(nav.pattern, outcome(err), len(nav.chain)-1, time.Since(start))
	return err
}

// navigation tracks one GoTo call across redirects.
type navigation struct {
	chain   []string
	pattern string
}

func (r *Router) navigate(ctx context.Context, nav *navigation, path string, params Params) error {
	route, ok := r.routes.lookup(path)
	if !ok {
		nav.pattern = ""
		return verrors.New("E100").
			WithDetailf("no route matches %q", path).
			WithSuggestion("Register a route for the path or navigate to a valid one").
			Wrap(ErrNoRoute)
	}
	nav.pattern = route.Pattern()

	if route.View.Guard != nil {
		// An empty redirect path means the route may mount.
		if redirect, ok := route.View.Guard.Redirect(); ok && redirect != "" {
			if len(nav.chain) > r.maxRedirects {
				return verrors.New("E101").
					WithDetailf("redirect chain %s exceeds %d redirects", strings.Join(nav.chain, " -> "), r.maxRedirects).
					WithSuggestion("Check that route guards do not redirect to each other").
					Wrap(ErrRedirectLoop)
			}
			r.logger.Debug("redirecting", "from", path, "to", redirect, "pattern", route.Pattern())
			trace.SpanFromContext(ctx).AddEvent("redirect", trace.WithAttributes(
				attribute.String("verbosity.from", path),
				attribute.String("verbosity.to", redirect),
			))
			nav.chain = append(nav.chain, redirect)
			return r.navigate(ctx, nav, redirect, nil)
		}
	}

	r.logger.Debug("navigating", "path", path, "pattern", route.Pattern())

	// Entries already holding path come from back/forward; pushing again
	// would break the forward button.
	if state, ok := r.history.State(); !ok || state != path {
		if err := r.history.PushState(path); err != nil {
			return fmt.Errorf("router: pushing history for %q: %w", path, err)
		}
	}

	merged := make(Params, len(params))
	for k, v := range params {
		merged[k] = v
	}
	for k, v := range extractParams(route.Matcher, path) {
		merged[k] = v
	}

	next := route.View.Instance(merged)

	var err error
	if r.current != nil {
		err = r.dom.ReplaceTemplateWithTemplate(r.current, next)
	} else {
		err = r.dom.ReplaceElementWithTemplate(r.mount, next)
	}
	if err != nil {
		return verrors.New("E102").WithDetailf("mounting %q", path).Wrap(err)
	}

	r.current = next
	return nil
}

// handlePop navigates to the state of the entry the user moved to.
func (r *Router) handlePop(path string) {
	if err := r.GoTo(context.Background(), path, nil); err != nil {
		r.logger.Error("history navigation failed", "path", path, "error", err)
		if r.onError != nil {
			r.onError(path, err)
		}
	}
}

package verbosity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/registry"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

// =============================================================================
// App Type
// =============================================================================

// App owns the router and registry of one running application and mounts
// its static templates on start.
type App struct {
	router   *router.Router
	registry *registry.Registry
	dom      dom.DOM

	mounts   []simpleMount
	hydrater dom.Hydrater
	logger   *slog.Logger
}

// simpleMount is a template mounted once on start, outside routing.
type simpleMount struct {
	el  dom.Element
	tpl dom.Template
}

// =============================================================================
// Options
// =============================================================================

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	routerOpts []router.Option
	registry   *registry.Registry
	hydrater   dom.Hydrater
	logger     *slog.Logger
}

// WithMount sets the element routed views mount into.
func WithMount(el dom.Element) Option {
	return func(o *appOptions) {
		o.routerOpts = append(o.routerOpts, router.WithMount(el))
	}
}

// WithRouterOptions passes options through to the router.
func WithRouterOptions(opts ...router.Option) Option {
	return func(o *appOptions) {
		o.routerOpts = append(o.routerOpts, opts...)
	}
}

// WithRegistry shares an existing registry with the app.
func WithRegistry(r *registry.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithHydrater sets the template hydrater.
func WithHydrater(fn dom.Hydrater) Option {
	return func(o *appOptions) {
		o.hydrater = fn
	}
}

// WithLogger sets the logger for the app and its router.
func WithLogger(logger *slog.Logger) Option {
	return func(o *appOptions) {
		o.logger = logger
	}
}

// =============================================================================
// Construction
// =============================================================================

// New creates an App swapping templates through d and recording navigation
// in h.
func New(d dom.DOM, h router.History, opts ...Option) *App {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.New()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	a := &App{
		registry: o.registry,
		hydrater: o.hydrater,
		logger:   o.logger,
	}

	// Every swap, routed or not, goes through the hydrater set at that time.
	a.dom = dom.Hydrating(d, a.hydrate)

	routerOpts := append([]router.Option{router.WithLogger(o.logger)}, o.routerOpts...)
	a.router = router.New(a.dom, h, routerOpts...)
	return a
}

// Router returns the app's router.
func (a *App) Router() *router.Router {
	return a.router
}

// Registry returns the app's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// AddSimpleMount queues tpl to replace el when the app starts.
func (a *App) AddSimpleMount(el dom.Element, tpl dom.Template) {
	a.mounts = append(a.mounts, simpleMount{el: el, tpl: tpl})
}

// AddRoute registers view for pattern.
func (a *App) AddRoute(pattern string, view router.View) {
	a.router.AddRoute(pattern, view)
}

// SetTemplateHydrater replaces the template hydrater. A nil fn disables
// hydration.
func (a *App) SetTemplateHydrater(fn dom.Hydrater) {
	a.hydrater = fn
}

// Start mounts the simple mounts in registration order, then navigates to
// initialPath.
func (a *App) Start(ctx context.Context, initialPath string) error {
	for _, m := range a.mounts {
		if err := a.dom.ReplaceElementWithTemplate(m.el, m.tpl); err != nil {
			return fmt.Errorf("verbosity: mounting %q: %w", m.el.ID(), err)
		}
		a.logger.Debug("simple mount", "element", m.el.ID())
	}
	return a.router.GoTo(ctx, initialPath, nil)
}

// Close detaches the app from history events.
func (a *App) Close() {
	a.router.Close()
}

func (a *App) hydrate(tpl dom.Template) {
	if a.hydrater != nil {
		a.hydrater(tpl)
	}
}

package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	verbosity "github.com/verbosity-dev/verbosity"
	"github.com/verbosity-dev/verbosity/internal/config"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/router"
	"github.com/verbosity-dev/verbosity/pkg/vdom"
)

// navMount holds the links to every page.
const navMount dom.Element = "nav-mount"

// loadConfig loads path, which is a project directory or a config file.
func loadConfig(path string) (*config.Config, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return config.Load(path)
	}
	if filepath.Base(path) == config.ConfigFileName || filepath.Ext(path) == ".json" {
		return config.LoadFile(path)
	}
	return config.Load(path)
}

// routerOptions maps the router section of cfg to router options.
func routerOptions(cfg *config.Config) []router.Option {
	return []router.Option{
		router.WithMount(dom.Element(cfg.Router.MountID)),
		router.WithMaxRedirects(cfg.Router.MaxRedirects),
	}
}

// addRoutes registers cfg's routes on app. A route with a redirect gets a
// guard that always redirects.
func addRoutes(app *verbosity.App, cfg *config.Config) {
	for _, rc := range cfg.Routes {
		view := router.View{Instance: pageView(rc)}
		if rc.Redirect != "" {
			view.Guard = router.RedirectTo(rc.Redirect)
		}
		app.AddRoute(rc.Pattern, view)
	}
}

// newApp builds the App for cfg on d and h.
func newApp(cfg *config.Config, d dom.DOM, h router.History, opts ...verbosity.Option) *verbosity.App {
	opts = append(opts, verbosity.WithRouterOptions(routerOptions(cfg)...))
	app := verbosity.New(d, h, opts...)
	app.AddSimpleMount(navMount, navBar(cfg))
	addRoutes(app, cfg)
	return app
}

// pageView renders a route's title and its parameters.
func pageView(rc config.RouteConfig) router.ViewFunc {
	title := rc.Title
	if title == "" {
		title = rc.Pattern
	}
	return func(params router.Params) dom.Template {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		items := make([]any, 0, len(keys)+1)
		items = append(items, vdom.Class("params"))
		for _, k := range keys {
			items = append(items, vdom.Li(vdom.Code(vdom.Text(k)), vdom.Textf(" = %s", params[k])))
		}

		return vdom.Func(func() *vdom.VNode {
			return vdom.Main(
				vdom.H1(vdom.Text(title)),
				vdom.Ul(items...),
			)
		})
	}
}

// navBar links to every route without parameters or redirects.
func navBar(cfg *config.Config) dom.Template {
	links := make([]any, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		if rc.Redirect != "" || strings.Contains(rc.Pattern, "/:") {
			continue
		}
		label := rc.Title
		if label == "" {
			label = rc.Pattern
		}
		links = append(links, vdom.A(vdom.Href(rc.Pattern), vdom.Link(), vdom.Text(label)))
	}
	return vdom.Static(vdom.Nav(links...))
}

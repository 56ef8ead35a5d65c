package router

import "github.com/verbosity-dev/verbosity/pkg/dom"

// ViewFunc instantiates a view with the merged navigation parameters.
type ViewFunc func(params Params) dom.Template

// Guard decides whether navigation to a route must be redirected.
type Guard interface {
	// Redirect returns the path to navigate to instead, and true, when the
	// route must not be mounted. An empty path is treated as no redirect.
	Redirect() (path string, ok bool)
}

// GuardFunc is a function adapter for Guard.
type GuardFunc func() (string, bool)

// Redirect implements Guard.
func (f GuardFunc) Redirect() (string, bool) {
	return f()
}

// RedirectTo returns a Guard that always redirects to path.
func RedirectTo(path string) Guard {
	return GuardFunc(func() (string, bool) { return path, true })
}

// View is a route's view definition.
type View struct {
	// Instance builds the view. Required.
	Instance ViewFunc

	// Guard is evaluated on every navigation to the route. Optional.
	Guard Guard
}

// Route is a registered (matcher, view) pair.
type Route struct {
	Matcher Matcher
	View    View
}

// Pattern returns the route's pattern.
func (r Route) Pattern() string {
	return r.Matcher.Pattern()
}

// routeTable is an ordered list of routes resolved by first match.
type routeTable struct {
	routes []Route
}

func (t *routeTable) add(pattern string, view View) {
	t.routes = append(t.routes, Route{Matcher: NewMatcher(pattern), View: view})
}

// lookup returns the first route whose matcher accepts path.
func (t *routeTable) lookup(path string) (Route, bool) {
	for _, route := range t.routes {
		if route.Matcher.Match(path) {
			return route, true
		}
	}
	return Route{}, false
}

func (t *routeTable) all() []Route {
	return append([]Route(nil), t.routes...)
}

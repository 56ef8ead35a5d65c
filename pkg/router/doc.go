// Package router implements single-page-application routing for verbosity.
//
// The router maps URL paths to views, extracts path parameters, enforces
// navigation guards and keeps browser history in step with the mounted view.
//
// # Patterns
//
// A pattern is a "/"-delimited path. Segments starting with ":" are named
// parameters; everything else is literal:
//
//	/about         → static
//	/users/:id     → parameterized, params["id"]
//
// Empty segments are ignored on both sides, so "/a/b", "a/b" and "/a/b/" are
// the same path. A parameterized pattern only matches paths with exactly as
// many segments; there is no catch-all.
//
// # Resolution
//
// Routes are tried in registration order and the first match wins. Duplicate
// or overlapping patterns are legal. A route's guard is consulted on every
// navigation; when it returns a redirect, the navigation is replaced by one to
// the redirect target. Redirect chains are bounded (see WithMaxRedirects).
//
// # Usage
//
//	r := router.New(d, history, router.WithMount(dom.PageMount))
//	r.AddRoute("/", router.View{Instance: home})
//	r.AddRoute("/users/:id", router.View{Instance: user, Guard: requireLogin})
//
//	if err := r.GoTo(ctx, "/users/42", nil); err != nil {
//	    // errors.Is(err, router.ErrNoRoute), errors.Is(err, router.ErrRedirectLoop)
//	}
package router

// Package vtest provides testing helpers for verbosity apps.
//
// The vtest package runs an App against an in-memory DOM and history so route
// tables, guards, and views can be tested without a browser or a server.
//
// # Quick Start
//
//	func TestUserPage(t *testing.T) {
//	    h := vtest.NewApp(t)
//	    h.App.AddRoute("/users/:id", router.View{Instance: UserPage})
//	    h.Start("/users/42")
//	    h.ExpectPage("user 42")
//	    h.ExpectState("/users/42")
//	}
//
// # Back and Forward
//
// The harness history behaves like a browser tab: Back and Forward move
// through pushed entries and the router re-renders the page.
//
//	h.GoTo("/about")
//	h.Back()
//	h.ExpectPage("home")
//
// # Render Assertions
//
// Assert on any template's rendered HTML:
//
//	vtest.ExpectContains(t, tpl, "Welcome")
//	vtest.ExpectAttribute(t, tpl, "href", "/about")
package vtest

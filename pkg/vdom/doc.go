// Package vdom provides the in-memory node tree verbosity views render to.
//
// A view instance handed to the router is a Component: anything that can
// produce a VNode tree. The browser bridge renders that tree to HTML and the
// client swaps it into the page.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    A(Href("/users/42"), Link(), "Profile"),
//	)
package vdom

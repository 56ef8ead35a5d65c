// Package render renders vdom trees to HTML.
//
// The browser bridge uses it to serialize view instances before they are
// swapped into the page, and the server uses it to build the shell document
// every deep link is answered with.
//
//	html, err := render.ToString(vdom.Div(vdom.H1("Hello")))
package render

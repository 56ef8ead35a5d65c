// Package verbosity wires a router, a service registry, and a DOM into a
// single-page application.
//
// Typical usage:
//
//	app := verbosity.New(d, history)
//	app.AddSimpleMount("nav-mount", navbar)
//	app.AddRoute("/", router.View{Instance: home})
//	app.AddRoute("/users/:id", router.View{Instance: user})
//	if err := app.Start(ctx, "/users/42"); err != nil {
//	    ...
//	}
//
// In a browser session the DOM and history are provided by pkg/server; in
// tests dom.Recorder and router.MemoryHistory stand in for them.
package verbosity

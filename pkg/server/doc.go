// Package server runs verbosity applications in the browser over WebSocket.
//
// The browser loads a shell page holding the mount points and a small client
// script. The script opens a WebSocket and sends a hello message with the
// page path; the server builds an App for the connection and starts it. From
// then on the server owns navigation: every DOM swap and history push the
// router performs is sent to the client as a message, and link clicks and
// back/forward moves come back as navigate and popstate messages.
//
// # Session Lifecycle
//
// Each WebSocket connection creates a Session, which implements both
// router.History and dom.DOM for the App it hosts. The session runs three
// goroutines:
//   - ReadLoop: receives messages, decodes them, queues them as events
//   - EventLoop: handles events one at a time; all router calls happen here
//   - WriteLoop: sends heartbeat pings
//
// History state is mirrored on the server: it is seeded from the state the
// client reports in hello, replaced on every push, and updated on popstate.
//
// # Usage
//
//	srv := server.New(server.DefaultServerConfig(), func(s *server.Session) (*verbosity.App, error) {
//	    app := verbosity.New(s, s)
//	    app.AddRoute("/", router.View{Instance: home})
//	    return app, nil
//	})
//	http.ListenAndServe(":8080", srv.Handler())
package server

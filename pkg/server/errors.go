package server

import "errors"

// Sentinel errors for session and server error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrNoConnection is returned when a session has no WebSocket connection.
	ErrNoConnection = errors.New("server: no connection")

	// ErrEventQueueFull is returned when the event queue is full and an event is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrTemplateNotMounted is returned when replacing a template the session
	// never mounted.
	ErrTemplateNotMounted = errors.New("server: template not mounted")

	// ErrRateLimited is reported for client frames over the session's rate.
	ErrRateLimited = errors.New("server: client frame rate exceeded")

	// ErrAlreadyStarted is reported to a client that says hello twice.
	ErrAlreadyStarted = errors.New("server: app already started")
)

package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	verbosity "github.com/verbosity-dev/verbosity"
	verrors "github.com/verbosity-dev/verbosity/internal/errors"
	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/protocol"
	"github.com/verbosity-dev/verbosity/pkg/routepath"
	"github.com/verbosity-dev/verbosity/pkg/router"
	"golang.org/x/time/rate"
)

// AppFactory builds the App a session hosts. It is called on the session's
// event loop when the client says hello. The session is both the DOM and the
// History of the App; opts carry the session's logger and error reporting
// and must be passed to verbosity.New.
type AppFactory func(s *Session, opts ...verbosity.Option) (*verbosity.App, error)

// Session is the server side of one browser tab.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// CreatedAt is when the connection was accepted.
	CreatedAt time.Time

	conn    *websocket.Conn
	config  *SessionConfig
	factory AppFactory
	appOpts []verbosity.Option
	app     *verbosity.App
	metrics *Metrics
	logger  *slog.Logger
	limiter *rate.Limiter

	// writeMu serializes writes to conn.
	writeMu sync.Mutex

	// mu guards history and template state below.
	mu           sync.Mutex
	state        string
	hasState     bool
	listeners    map[int]func(string)
	nextListener int
	templates    map[dom.Template]string
	nextTemplate uint64

	events chan protocol.Message
	done   chan struct{}
	closed atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	onClose func(*Session)

	messagesIn  atomic.Uint64
	messagesOut atomic.Uint64
}

// newSession creates a session for conn. A nil conn is allowed in tests;
// writes then fail with ErrNoConnection.
func newSession(conn *websocket.Conn, config *SessionConfig, factory AppFactory, logger *slog.Logger) *Session {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		config:    config,
		factory:   factory,
		logger:    logger.With("session_id", id),
		limiter:   config.limiter(),
		listeners: make(map[int]func(string)),
		templates: make(map[dom.Template]string),
		events:    make(chan protocol.Message, config.MaxEventQueue),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// App returns the hosted App, or nil before the client said hello.
// It must only be called from the event loop.
func (s *Session) App() *verbosity.App {
	return s.app
}

// Logger returns the session's logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// Context returns a context cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// QueueEvent queues a client message for the event loop.
func (s *Session) QueueEvent(m protocol.Message) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- m:
		return nil
	default:
		s.logger.Warn("event queue full, dropping message", "op", m.Op)
		return ErrEventQueueFull
	}
}

// handleEvent runs one client message on the event loop.
func (s *Session) handleEvent(m protocol.Message) {
	switch m.Op {
	case protocol.OpHello:
		s.handleHello(m)
	case protocol.OpPopState:
		s.handlePopState(m)
	case protocol.OpNavigate:
		s.handleNavigate(m)
	default:
		s.logger.Warn("unexpected op from client", "op", m.Op)
	}
}

func (s *Session) handleHello(m protocol.Message) {
	if s.app != nil {
		s.logger.Warn("duplicate hello ignored", "path", m.Path)
		s.sendError(m.Path, verrors.New("E300").WithDetail("second hello on one session").Wrap(ErrAlreadyStarted))
		return
	}

	s.mu.Lock()
	if m.State != nil {
		s.state, s.hasState = *m.State, true
	}
	s.mu.Unlock()

	opts := append([]verbosity.Option{}, s.appOpts...)
	opts = append(opts,
		verbosity.WithLogger(s.logger),
		// Back/forward failures have no caller; the router logs them.
		verbosity.WithRouterOptions(router.WithErrorHandler(s.sendError)),
	)
	app, err := s.factory(s, opts...)
	if err != nil {
		s.logger.Error("building app failed", "error", err)
		s.sendError("", err)
		return
	}
	s.app = app

	// A tab reporting an unusable location still gets an app, rooted at /.
	path, ok := s.cleanPath(m.Path)
	if !ok {
		path = "/"
	}
	s.logger.Info("app starting", "path", path)
	if err := app.Start(s.ctx, path); err != nil {
		s.navigationFailed(path, err)
	}
}

func (s *Session) handlePopState(m protocol.Message) {
	path, ok := s.cleanPath(*m.State)
	if !ok {
		return
	}

	s.mu.Lock()
	s.state, s.hasState = path, true
	listeners := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

func (s *Session) handleNavigate(m protocol.Message) {
	if s.app == nil {
		s.logger.Warn("navigate before hello ignored", "path", m.Path)
		return
	}
	path, ok := s.cleanPath(m.Path)
	if !ok {
		return
	}
	if err := s.app.Router().GoTo(s.ctx, path, nil); err != nil {
		s.navigationFailed(path, err)
	}
}

// cleanPath canonicalizes a client-reported path, reporting E300 to the
// client when it is rejected.
func (s *Session) cleanPath(raw string) (string, bool) {
	path, err := routepath.Clean(raw)
	if err != nil {
		s.logger.Warn("rejected client path", "path", raw, "error", err)
		s.sendError(raw, verrors.New("E300").WithDetailf("path %q", raw).Wrap(err))
		return "", false
	}
	return path, true
}

// navigationFailed reports a failed navigation to the client.
func (s *Session) navigationFailed(path string, err error) {
	s.logger.Error("navigation failed", "path", path, "error", err)
	s.sendError(path, err)
}

// Close gracefully closes the session.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()

	if s.conn != nil {
		s.writeMu.Lock()
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.writeMu.Unlock()
		s.conn.Close()
	}

	if s.onClose != nil {
		s.onClose(s)
	}

	s.logger.Info("session closed",
		"messages_in", s.messagesIn.Load(),
		"messages_out", s.messagesOut.Load(),
		"duration", time.Since(s.CreatedAt))
}

// Stats is a snapshot of session counters.
type Stats struct {
	ID          string
	CreatedAt   time.Time
	MessagesIn  uint64
	MessagesOut uint64
	Templates   int
}

// Stats returns a snapshot of the session's counters.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	templates := len(s.templates)
	s.mu.Unlock()
	return Stats{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		MessagesIn:  s.messagesIn.Load(),
		MessagesOut: s.messagesOut.Load(),
		Templates:   templates,
	}
}

package server

import (
	"errors"
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"
	verrors "github.com/verbosity-dev/verbosity/internal/errors"
	"github.com/verbosity-dev/verbosity/pkg/protocol"
)

// unknownErrorCode is sent for failures that carry no error code.
const unknownErrorCode = "unknown"

// ReadLoop continuously reads messages from the WebSocket connection.
// It decodes messages and queues them for the event loop.
// This method blocks until the connection is closed or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(protocol.MaxMessageSize)
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		s.messagesIn.Add(1)

		if !s.limiter.Allow() {
			s.metrics.received("throttled")
			s.logger.Warn("client frame dropped", "error", ErrRateLimited)
			s.sendError("", verrors.New("E303").Wrap(ErrRateLimited))
			continue
		}

		m, err := protocol.Decode(data)
		if err != nil {
			s.metrics.received("invalid")
			err = verrors.New("E300").Wrap(err)
			s.logger.Warn("message decode error", "error", err)
			s.sendError("", err)
			continue
		}
		s.metrics.received(string(m.Op))

		if !m.Op.FromClient() {
			s.logger.Warn("server op sent by client", "op", m.Op)
			continue
		}

		if err := s.QueueEvent(m); errors.Is(err, ErrSessionClosed) {
			return
		}
	}
}

// WriteLoop sends heartbeat pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// EventLoop handles queued client messages one at a time. All router and
// App calls happen on this goroutine.
func (s *Session) EventLoop() {
	for {
		select {
		case m := <-s.events:
			s.safeHandle(m)

		case <-s.done:
			return
		}
	}
}

// safeHandle runs handleEvent, recovering from panics in views and guards.
func (s *Session) safeHandle(m protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event panic",
				"op", m.Op,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	s.handleEvent(m)
}

// Start starts all session loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// send encodes and writes m to the client.
func (s *Session) send(m protocol.Message) error {
	if s.closed.Load() {
		return verrors.New("E302").Wrap(ErrSessionClosed)
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	data, err := protocol.Encode(m)
	if err != nil {
		return verrors.New("E300").WithDetailf("encoding %s", m.Op).Wrap(err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return verrors.New("E301").WithDetailf("sending %s", m.Op).Wrap(err)
	}
	s.messagesOut.Add(1)
	s.metrics.sent(string(m.Op))
	return nil
}

// sendError sends err to the client as an error message. path is the
// navigation that failed, if any.
func (s *Session) sendError(path string, err error) {
	code := verrors.Code(err)
	if code == "" {
		code = unknownErrorCode
	}
	if sendErr := s.send(protocol.Error(code, err.Error())); sendErr != nil {
		s.logger.Debug("error message not sent", "path", path, "error", sendErr)
	}
}

// sendPing sends a heartbeat ping control frame.
func (s *Session) sendPing() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
	if err != nil {
		s.logger.Error("ping error", "error", err)
		return err
	}
	return nil
}

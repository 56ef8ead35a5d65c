package server

import (
	"github.com/verbosity-dev/verbosity/pkg/protocol"
	"github.com/verbosity-dev/verbosity/pkg/router"
)

var _ router.History = (*Session)(nil)

// State implements router.History with the server-side mirror of the
// client's history.state.
func (s *Session) State() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.hasState
}

// PushState implements router.History. The mirror is updated only once the
// push message has been written.
func (s *Session) PushState(path string) error {
	if err := s.send(protocol.Push(path)); err != nil {
		return err
	}
	s.mu.Lock()
	s.state, s.hasState = path, true
	s.mu.Unlock()
	return nil
}

// Subscribe implements router.History. Listeners run on the event loop when
// the client reports a popstate.
func (s *Session) Subscribe(fn func(path string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

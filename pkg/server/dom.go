package server

import (
	"fmt"
	"strconv"

	"github.com/verbosity-dev/verbosity/pkg/dom"
	"github.com/verbosity-dev/verbosity/pkg/protocol"
	"github.com/verbosity-dev/verbosity/pkg/render"
)

var _ dom.DOM = (*Session)(nil)

// ReplaceElementWithTemplate implements dom.DOM by rendering tpl and sending
// a mount message.
func (s *Session) ReplaceElementWithTemplate(el dom.Element, tpl dom.Template) error {
	html, err := render.Component(tpl)
	if err != nil {
		return fmt.Errorf("server: rendering template for %q: %w", el.ID(), err)
	}

	id := s.newTemplateID()
	if err := s.send(protocol.Mount(el.ID(), id, html)); err != nil {
		return err
	}

	s.mu.Lock()
	s.templates[tpl] = id
	s.mu.Unlock()
	return nil
}

// ReplaceTemplateWithTemplate implements dom.DOM by rendering next and
// sending a replace message targeting the id old was mounted with.
func (s *Session) ReplaceTemplateWithTemplate(old, next dom.Template) error {
	s.mu.Lock()
	target, ok := s.templates[old]
	s.mu.Unlock()
	if !ok {
		return ErrTemplateNotMounted
	}

	html, err := render.Component(next)
	if err != nil {
		return fmt.Errorf("server: rendering template replacing %s: %w", target, err)
	}

	id := s.newTemplateID()
	if err := s.send(protocol.Replace(target, id, html)); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.templates, old)
	s.templates[next] = id
	s.mu.Unlock()
	return nil
}

// TemplateID returns the id tpl is mounted with.
func (s *Session) TemplateID(tpl dom.Template) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.templates[tpl]
	return id, ok
}

func (s *Session) newTemplateID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTemplate++
	return "t" + strconv.FormatUint(s.nextTemplate, 10)
}

package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MaxMessageSize is the largest client message accepted, in bytes.
const MaxMessageSize = 64 * 1024

// Op identifies a message type.
type Op string

const (
	OpMount   Op = "mount"
	OpReplace Op = "replace"
	OpPush    Op = "push"
	OpError   Op = "error"

	OpHello    Op = "hello"
	OpPopState Op = "popstate"
	OpNavigate Op = "navigate"
)

// FromClient reports whether op is sent by the browser client.
func (op Op) FromClient() bool {
	switch op {
	case OpHello, OpPopState, OpNavigate:
		return true
	default:
		return false
	}
}

// Protocol errors.
var (
	ErrMessageTooLarge = errors.New("protocol: message too large")
	ErrUnknownOp       = errors.New("protocol: unknown op")
	ErrMissingField    = errors.New("protocol: missing required field")
)

// Message is a single protocol message. Fields not used by an op are omitted.
type Message struct {
	Op Op `json:"op"`

	// Target is the element id (mount) or template id (replace) to replace.
	Target string `json:"target,omitempty"`

	// ID is the id assigned to the incoming template.
	ID string `json:"id,omitempty"`

	// HTML is the rendered template.
	HTML string `json:"html,omitempty"`

	// Path is the navigation or push path.
	Path string `json:"path,omitempty"`

	// State is the history state; nil when the entry has none.
	State *string `json:"state,omitempty"`

	// Code and Message describe an error.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Mount creates a mount message.
func Mount(target, id, html string) Message {
	return Message{Op: OpMount, Target: target, ID: id, HTML: html}
}

// Replace creates a replace message.
func Replace(target, id, html string) Message {
	return Message{Op: OpReplace, Target: target, ID: id, HTML: html}
}

// Push creates a push message.
func Push(path string) Message {
	return Message{Op: OpPush, Path: path}
}

// Error creates an error message.
func Error(code, message string) Message {
	return Message{Op: OpError, Code: code, Message: message}
}

// Hello creates a hello message. An empty state means the entry has none.
func Hello(path, state string) Message {
	m := Message{Op: OpHello, Path: path}
	if state != "" {
		m.State = &state
	}
	return m
}

// PopState creates a popstate message.
func PopState(state string) Message {
	return Message{Op: OpPopState, State: &state}
}

// Navigate creates a navigate message.
func Navigate(path string) Message {
	return Message{Op: OpNavigate, Path: path}
}

// Encode marshals m after validating it.
func Encode(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("protocol: encoding message: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode unmarshals and validates a message.
func Decode(data []byte) (Message, error) {
	var m Message
	if len(data) > MaxMessageSize {
		return m, ErrMessageTooLarge
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("protocol: decoding message: %w", err)
	}
	if err := m.Validate(); err != nil {
		return m, err
	}
	return m, nil
}

// Validate checks that m has a known op and the fields that op requires.
func (m Message) Validate() error {
	var missing string
	switch m.Op {
	case OpMount, OpReplace:
		if m.Target == "" {
			missing = "target"
		} else if m.ID == "" {
			missing = "id"
		}
	case OpPush, OpHello, OpNavigate:
		if m.Path == "" {
			missing = "path"
		}
	case OpPopState:
		if m.State == nil {
			missing = "state"
		}
	case OpError:
		if m.Code == "" {
			missing = "code"
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, m.Op)
	}
	if missing != "" {
		return fmt.Errorf("%w: %s requires %q", ErrMissingField, m.Op, missing)
	}
	return nil
}

// Package dom defines the rendering collaborator the router drives.
//
// The router never inspects rendered output. It only sequences two
// operations: replacing a static mount element with a template, and replacing
// a mounted template with another one. Implementations decide how that maps
// onto a real page (see pkg/server) or onto memory (see Recorder).
package dom

import "github.com/verbosity-dev/verbosity/pkg/vdom"

// Element is a handle to a static mount point in the page, identified by its
// element id (e.g. "page-mount").
type Element string

// ID returns the element id.
func (e Element) ID() string { return string(e) }

// PageMount is the default mount point for routed views.
const PageMount Element = "page-mount"

// Template is a rendered view instance. Implementations track templates by
// identity, so a Template must be comparable (in practice a pointer, as
// returned by vdom.Func).
type Template = vdom.Component

// DOM performs the two visual swaps the router needs.
type DOM interface {
	// ReplaceElementWithTemplate replaces the static element el with tpl.
	ReplaceElementWithTemplate(el Element, tpl Template) error

	// ReplaceTemplateWithTemplate replaces the mounted template old with next.
	// Ownership of old passes to the DOM for teardown.
	ReplaceTemplateWithTemplate(old, next Template) error
}

// Hydrater is called with every template after it has been swapped in.
type Hydrater func(tpl Template)

// Hydrating returns a DOM that calls fn after each successful swap on d.
// A nil fn returns d unchanged.
func Hydrating(d DOM, fn Hydrater) DOM {
	if fn == nil {
		return d
	}
	return &hydrating{dom: d, hydrate: fn}
}

type hydrating struct {
	dom     DOM
	hydrate Hydrater
}

func (h *hydrating) ReplaceElementWithTemplate(el Element, tpl Template) error {
	if err := h.dom.ReplaceElementWithTemplate(el, tpl); err != nil {
		return err
	}
	h.hydrate(tpl)
	return nil
}

func (h *hydrating) ReplaceTemplateWithTemplate(old, next Template) error {
	if err := h.dom.ReplaceTemplateWithTemplate(old, next); err != nil {
		return err
	}
	h.hydrate(next)
	return nil
}

package dom

import (
	"fmt"
	"sync"
)

// OpKind identifies a recorded DOM operation.
type OpKind int

const (
	OpMount   OpKind = iota // ReplaceElementWithTemplate
	OpReplace               // ReplaceTemplateWithTemplate
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpMount:
		return "mount"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Op is one recorded swap.
type Op struct {
	Kind    OpKind
	Element Element  // set for OpMount
	Old     Template // set for OpReplace
	New     Template
}

// Recorder is an in-memory DOM. It records every swap and tracks which
// template occupies each mount point, failing the same way a page would when
// asked to replace something that is not there.
type Recorder struct {
	mu       sync.Mutex
	ops      []Op
	mounted  map[Element]Template
	replaced map[Element]bool
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		mounted:  make(map[Element]Template),
		replaced: make(map[Element]bool),
	}
}

// ReplaceElementWithTemplate implements DOM.
func (r *Recorder) ReplaceElementWithTemplate(el Element, tpl Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.replaced[el] {
		return fmt.Errorf("dom: element %q was already replaced", el)
	}
	r.replaced[el] = true
	r.mounted[el] = tpl
	r.ops = append(r.ops, Op{Kind: OpMount, Element: el, New: tpl})
	return nil
}

// ReplaceTemplateWithTemplate implements DOM.
func (r *Recorder) ReplaceTemplateWithTemplate(old, next Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for el, tpl := range r.mounted {
		if tpl == old {
			r.mounted[el] = next
			r.ops = append(r.ops, Op{Kind: OpReplace, Old: old, New: next})
			return nil
		}
	}
	return fmt.Errorf("dom: template %p is not mounted", old)
}

// Ops returns a copy of the recorded operations.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Mounted returns the template currently occupying el, or nil.
func (r *Recorder) Mounted(el Element) Template {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mounted[el]
}

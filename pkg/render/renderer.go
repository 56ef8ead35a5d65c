package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/verbosity-dev/verbosity/pkg/vdom"
)

// ToString renders a VNode tree to an HTML string.
func ToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := ToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToWriter streams a VNode tree to the given writer.
func ToWriter(w io.Writer, node *vdom.VNode) error {
	return renderNode(w, node)
}

// Component renders the tree produced by c.
func Component(c vdom.Component) (string, error) {
	if c == nil {
		return "", nil
	}
	return ToString(c.Render())
}

// Document renders a full HTML document with a doctype.
func Document(w io.Writer, root *vdom.VNode) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return renderNode(w, root)
}

// renderNode dispatches rendering based on node kind.
func renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return renderElement(w, node)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		return renderChildren(w, node.Children)
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return renderNode(w, node.Comp.Render())
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func renderChildren(w io.Writer, children []*vdom.VNode) error {
	for _, child := range children {
		if err := renderNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

// renderElement renders an HTML element with its attributes and children.
func renderElement(w io.Writer, node *vdom.VNode) error {
	if _, err := fmt.Fprintf(w, "<%s", node.Tag); err != nil {
		return err
	}
	if err := renderAttributes(w, node.Props); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if vdom.IsVoidElement(node.Tag) {
		return nil
	}
	if err := renderChildren(w, node.Children); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", node.Tag)
	return err
}

// renderAttributes renders attributes in key order for deterministic output.
func renderAttributes(w io.Writer, props vdom.Props) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := props[key].(type) {
		case nil:
			continue
		case bool:
			if !v {
				continue
			}
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(fmt.Sprint(v))); err != nil {
				return err
			}
		}
	}
	return nil
}

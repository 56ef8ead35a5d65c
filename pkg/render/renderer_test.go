package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verbosity-dev/verbosity/pkg/vdom"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "nil node",
			node: nil,
			want: "",
		},
		{
			name: "text is escaped",
			node: vdom.Text(`<b>"hi"</b>`),
			want: "&lt;b&gt;&quot;hi&quot;&lt;/b&gt;",
		},
		{
			name: "raw is not escaped",
			node: vdom.Raw("<b>hi</b>"),
			want: "<b>hi</b>",
		},
		{
			name: "element with sorted attributes",
			node: vdom.A(vdom.Href("/users/42"), vdom.Class("nav"), vdom.Link(), "Profile"),
			want: `<a class="nav" data-vb-link="true" href="/users/42">Profile</a>`,
		},
		{
			name: "boolean attributes",
			node: vdom.El("input", vdom.Attr{Key: "disabled", Value: true}, vdom.Attr{Key: "hidden", Value: false}),
			want: "<input disabled>",
		},
		{
			name: "fragment",
			node: vdom.Fragment(vdom.P("a"), "b"),
			want: "<p>a</p>b",
		},
		{
			name: "component child",
			node: vdom.Div(vdom.Func(func() *vdom.VNode { return vdom.Span("c") })),
			want: "<div><span>c</span></div>",
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.Data("x", "a\"b\n")),
			want: `<div data-x="a&quot;b&#10;"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.node)
			if err != nil {
				t.Fatalf("ToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := ToString(&vdom.VNode{Kind: vdom.VKind(42)}); err == nil {
		t.Error("expected error for unknown node kind")
	}
}

func TestComponent(t *testing.T) {
	got, err := Component(vdom.Static(vdom.H1("Home")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "<h1>Home</h1>" {
		t.Errorf("Component() = %q", got)
	}

	got, err = Component(nil)
	if err != nil || got != "" {
		t.Errorf("Component(nil) = %q, %v", got, err)
	}
}

func TestDocument(t *testing.T) {
	var buf bytes.Buffer
	root := vdom.Html(vdom.Head(vdom.Meta(vdom.Charset("utf-8"))), vdom.Body(vdom.Div(vdom.ID("page-mount"))))
	if err := Document(&buf, root); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>\n<html>") {
		t.Errorf("Document() = %q", out)
	}
	if !strings.Contains(out, `<meta charset="utf-8"><`) {
		t.Errorf("void element should not be closed: %q", out)
	}
}

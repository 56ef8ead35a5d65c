package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestElArguments(t *testing.T) {
	inner := Func(func() *VNode { return Text("inner") })
	node := Div(
		ID("main"),
		[]Attr{Class("a", "b"), {}},
		nil,
		"hello",
		H1("title"),
		[]*VNode{P("one"), nil, P("two")},
		inner,
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %v/%q, want Element/div", node.Kind, node.Tag)
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v, want main", node.Props["id"])
	}
	if node.Props["class"] != "a b" {
		t.Errorf("class = %v, want \"a b\"", node.Props["class"])
	}
	if _, ok := node.Props[""]; ok {
		t.Error("empty attribute key should be ignored")
	}
	if len(node.Children) != 5 {
		t.Fatalf("len(Children) = %d, want 5", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "hello" {
		t.Errorf("first child = %+v, want text hello", node.Children[0])
	}
	last := node.Children[4]
	if last.Kind != KindComponent || last.Comp != inner {
		t.Errorf("last child = %+v, want component", last)
	}
}

func TestFuncReturnsDistinctInstances(t *testing.T) {
	render := func() *VNode { return Text("x") }
	a, b := Func(render), Func(render)
	if a == b {
		t.Error("Func should return distinct instances")
	}
	if a.Render().Text != "x" {
		t.Error("Render() should call the render function")
	}
}

func TestLinkAttr(t *testing.T) {
	a := A(Href("/users"), Link(), "Users")
	if a.Props["data-vb-link"] != "true" {
		t.Errorf("Link() attr missing: %v", a.Props)
	}
	if a.Props["href"] != "/users" {
		t.Errorf("href = %v", a.Props["href"])
	}
}

func TestVoidElements(t *testing.T) {
	if !IsVoidElement("meta") || !IsVoidElement("br") {
		t.Error("meta and br are void elements")
	}
	if IsVoidElement("div") {
		t.Error("div is not a void element")
	}
}

package vdom

import "testing"

func TestElArguments(t *testing.T) {
	child := Span("inner")
	comp := Func(func() *VNode { return Text("lazy") })

	n := Div(
		nil,
		Class("a", "b"),
		[]Attr{ID("x"), {Key: "", Value: "ignored"}},
		child,
		[]*VNode{nil, Text("t")},
		comp,
		"plain",
		42,
	)

	if n.Kind != KindElement || n.Tag != "div" {
		t.Fatalf("got %s <%s>, want Element <div>", n.Kind, n.Tag)
	}
	if n.Props["class"] != "a b" || n.Props["id"] != "x" {
		t.Errorf("props = %v", n.Props)
	}
	if _, ok := n.Props[""]; ok {
		t.Error("empty attribute key should be dropped")
	}
	if len(n.Children) != 4 {
		t.Fatalf("children = %d, want 4", len(n.Children))
	}
	if n.Children[2].Kind != KindComponent {
		t.Errorf("component child kind = %s", n.Children[2].Kind)
	}
	if n.Children[3].Text != "plain" {
		t.Errorf("string child = %q", n.Children[3].Text)
	}
}

func TestFragmentAndRange(t *testing.T) {
	items := []string{"a", "", "c"}
	nodes := Range(items, func(_ int, s string) *VNode {
		if s == "" {
			return nil
		}
		return Li(s)
	})
	f := Fragment(nodes, nil, "tail")

	if f.Kind != KindFragment {
		t.Fatalf("kind = %s", f.Kind)
	}
	if len(f.Children) != 3 {
		t.Errorf("children = %d, want 3", len(f.Children))
	}
}

func TestIf(t *testing.T) {
	if If(false, Text("x")) != nil {
		t.Error("If(false) should be nil")
	}
	if If(true, Text("x")) == nil {
		t.Error("If(true) should return the node")
	}
}

func TestVoidElements(t *testing.T) {
	for _, tag := range []string{"img", "br", "meta"} {
		if !IsVoidElement(tag) {
			t.Errorf("%s should be void", tag)
		}
	}
	if IsVoidElement("div") {
		t.Error("div is not void")
	}
}

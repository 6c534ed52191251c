package vdom

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag cannot have children.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag. Arguments may be nil, Attr,
// []Attr, *VNode, []*VNode, Component or string; anything else is ignored.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			if v.Key != "" {
				node.Props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}
		default:
			node.Children = appendChild(node.Children, arg)
		}
	}
	return node
}

func appendChild(children []*VNode, arg any) []*VNode {
	switch v := arg.(type) {
	case *VNode:
		if v != nil {
			children = append(children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				children = append(children, c)
			}
		}
	case Component:
		if v != nil {
			children = append(children, Comp(v))
		}
	case string:
		children = append(children, Text(v))
	}
	return children
}

func Html(args ...any) *VNode    { return El("html", args...) }
func Head(args ...any) *VNode    { return El("head", args...) }
func Body(args ...any) *VNode    { return El("body", args...) }
func Title(args ...any) *VNode   { return El("title", args...) }
func Meta(args ...any) *VNode    { return El("meta", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func Aside(args ...any) *VNode   { return El("aside", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func Img(args ...any) *VNode     { return El("img", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }

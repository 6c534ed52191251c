package vdom

// VKind discriminates node types.
type VKind uint8

const (
	KindElement VKind = iota
	KindText
	KindFragment
	KindComponent
	KindRaw
)

// String returns the kind name.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node in the view tree.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props
	Children []*VNode
	Text     string    // KindText and KindRaw
	Comp     Component // KindComponent
}

// Props holds element attributes.
type Props map[string]any

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value any
}

// Component is anything that can render to a node.
type Component interface {
	Render() *VNode
}

type funcComponent func() *VNode

func (f funcComponent) Render() *VNode { return f() }

// Func adapts a render function to a Component.
func Func(render func() *VNode) Component {
	return funcComponent(render)
}

// Comp wraps a component in a node so it can be placed in a tree.
func Comp(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}

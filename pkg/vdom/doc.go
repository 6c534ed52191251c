// Package vdom defines the view tree that layouts, pages and regions build.
//
// Nodes are plain values. Element constructors accept a mix of attributes,
// child nodes, components and strings:
//
//	Div(Class("page-header"),
//	    H1(title),
//	    P(Textf("%d items", n)),
//	)
//
// A Component renders lazily when the tree is rendered, which is how region
// outlets show their current content.
package vdom

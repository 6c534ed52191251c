package vdom

import (
	"fmt"
	"strings"
)

// Text creates an escaped text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node. Callers must sanitize untrusted input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, c := range children {
		node.Children = appendChild(node.Children, c)
	}
	return node
}

// Range maps items to nodes, dropping nils.
func Range[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// If returns node when cond holds, nil otherwise.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}

// AttrOf builds an arbitrary attribute.
func AttrOf(key string, value any) Attr { return Attr{Key: key, Value: value} }

func ID(id string) Attr            { return AttrOf("id", id) }
func Class(classes ...string) Attr { return AttrOf("class", strings.Join(classes, " ")) }
func Href(url string) Attr         { return AttrOf("href", url) }
func Src(url string) Attr          { return AttrOf("src", url) }
func Alt(text string) Attr         { return AttrOf("alt", text) }
func Data(key, value string) Attr  { return AttrOf("data-"+key, value) }
func TestID(id string) Attr        { return Data("testid", id) }
func Charset(charset string) Attr  { return AttrOf("charset", charset) }
func Hidden() Attr                 { return AttrOf("hidden", true) }

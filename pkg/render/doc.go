// Package render writes vdom trees as HTML.
//
//	r := render.NewRenderer(render.Config{})
//	html, err := r.RenderToString(layout)
//
// RenderPage wraps a body in a full document with a title and inline styles.
package render

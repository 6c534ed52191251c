package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/regions/pkg/vdom"
)

// maxDepth guards against components that render themselves.
const maxDepth = 512

// Config configures a Renderer.
type Config struct {
	// Lang is the html lang attribute used by RenderPage. Defaults to "en".
	Lang string
}

// Page is a complete document.
type Page struct {
	Title  string
	Body   *vdom.VNode
	Styles []string
}

// Renderer renders vdom trees to HTML. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	return &Renderer{cfg: cfg}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams node to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	if err := r.node(ew, node, 0); err != nil {
		return err
	}
	return ew.err
}

// RenderPage writes a full HTML document.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	ew := &errWriter{w: w}
	ew.str("<!DOCTYPE html>\n<html lang=\"")
	ew.str(html.EscapeString(r.cfg.Lang))
	ew.str("\"><head><meta charset=\"utf-8\"><title>")
	ew.str(html.EscapeString(page.Title))
	ew.str("</title>")
	for _, css := range page.Styles {
		ew.str("<style>")
		ew.str(css)
		ew.str("</style>")
	}
	ew.str("</head><body>")
	if err := r.node(ew, page.Body, 0); err != nil {
		return err
	}
	ew.str("</body></html>\n")
	return ew.err
}

func (r *Renderer) node(w *errWriter, n *vdom.VNode, depth int) error {
	if n == nil || w.err != nil {
		return w.err
	}
	if depth > maxDepth {
		return fmt.Errorf("render: tree deeper than %d levels", maxDepth)
	}

	switch n.Kind {
	case vdom.KindText:
		w.str(html.EscapeString(n.Text))
	case vdom.KindRaw:
		w.str(n.Text)
	case vdom.KindFragment:
		return r.children(w, n.Children, depth)
	case vdom.KindComponent:
		if n.Comp == nil {
			return nil
		}
		return r.node(w, n.Comp.Render(), depth+1)
	case vdom.KindElement:
		return r.element(w, n, depth)
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
	return w.err
}

func (r *Renderer) children(w *errWriter, children []*vdom.VNode, depth int) error {
	for _, c := range children {
		if err := r.node(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) element(w *errWriter, n *vdom.VNode, depth int) error {
	w.str("<")
	w.str(n.Tag)
	r.attributes(w, n.Props)
	w.str(">")

	if vdom.IsVoidElement(n.Tag) {
		return w.err
	}
	if err := r.children(w, n.Children, depth); err != nil {
		return err
	}

	w.str("</")
	w.str(n.Tag)
	w.str(">")
	return w.err
}

// attributes writes props in key order so output is deterministic.
func (r *Renderer) attributes(w *errWriter, props vdom.Props) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := props[k].(type) {
		case nil:
		case bool:
			if v {
				w.str(" ")
				w.str(k)
			}
		default:
			w.str(" ")
			w.str(k)
			w.str(`="`)
			w.str(escapeAttr(attrString(v)))
			w.str(`"`)
		}
	}
}

func attrString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) str(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

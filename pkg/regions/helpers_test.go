package regions

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/render"
	"github.com/vango-dev/regions/pkg/vdom"
)

type logRecord struct {
	level slog.Level
	msg   string
	attrs map[string]any
}

// captureHandler records every log record it receives.
type captureHandler struct {
	mu      sync.Mutex
	records []logRecord
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	rec := logRecord{level: r.Level, msg: r.Message, attrs: make(map[string]any)}
	r.Attrs(func(a slog.Attr) bool {
		rec.attrs[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) all() []logRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]logRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *captureHandler) messages(level slog.Level) []string {
	var out []string
	for _, r := range h.all() {
		if r.level == level {
			out = append(out, r.msg)
		}
	}
	return out
}

func (h *captureHandler) contains(level slog.Level, substr string) bool {
	for _, m := range h.messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func newCapture() (*slog.Logger, *captureHandler) {
	h := &captureHandler{}
	return slog.New(h), h
}

// mountLayout creates a layout scope with a registry and disposes it when
// the test ends. The settle timer is off unless opts sets a delay.
func mountLayout(t *testing.T, opts Options) (*reactive.Owner, *Registry) {
	t.Helper()
	if opts.SettleDelay == 0 {
		opts.SettleDelay = -1
	}
	layout := reactive.NewOwner(nil)
	reg := Mount(layout, opts)
	t.Cleanup(layout.Dispose)
	return layout, reg
}

func renderHTML(t *testing.T, o *Outlet) string {
	t.Helper()
	out, err := render.NewRenderer(render.Config{}).RenderToString(o.Node())
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return out
}

func titleChildren(data any) *vdom.VNode {
	m := data.(map[string]any)
	return vdom.H1(vdom.Text(m["title"].(string)))
}

func defaultFallback() *vdom.VNode {
	return vdom.H1(vdom.Text("Default"))
}

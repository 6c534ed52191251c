package ssr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
	. "github.com/vango-dev/regions/pkg/vdom"
)

type recordingHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	h.msgs = append(h.msgs, r.Message)
	h.mu.Unlock()
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) has(substr string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func appLayout(owner *reactive.Owner, slot *VNode) *VNode {
	header := regions.Region(owner, regions.RegionProps{
		Name:     "header",
		Required: true,
		Fallback: func() *VNode { return H1(Text("Default")) },
		Children: func(data any) *VNode {
			return H1(Text(data.(map[string]any)["title"].(string)))
		},
	})
	footer := regions.Region(owner, regions.RegionProps{
		Name:     "footer",
		Fallback: func() *VNode { return Footer(Text("footer")) },
	})
	return Div(Class("app"), header.Node(), Main(slot), footer.Node())
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, _ := io.ReadAll(rec.Body)
	return rec.Code, string(body)
}

func TestServePage(t *testing.T) {
	tests := []struct {
		name  string
		route Route
		want  []string
		avoid []string
	}{
		{
			name: "fallbacks",
			route: Route{
				Layouts: []Layout{appLayout},
				Page:    func(*reactive.Owner, *http.Request) *VNode { return P(Text("body")) },
			},
			want: []string{"<h1>Default</h1>", "<main><p>body</p></main>", "<footer>footer</footer>"},
		},
		{
			name: "page sets regions",
			route: Route{
				Layouts: []Layout{appLayout},
				Page: func(owner *reactive.Owner, _ *http.Request) *VNode {
					regions.Use(owner, regions.Regions{
						"header": regions.DataOf(map[string]any{"title": "Settings"}),
						"footer": regions.Null,
					})
					return P(Text("body"))
				},
			},
			want:  []string{"<h1>Settings</h1>"},
			avoid: []string{"<footer>", "Default"},
		},
		{
			name: "load populates regions",
			route: Route{
				Layouts: []Layout{appLayout},
				Load: func(context.Context, *http.Request) (PageData, error) {
					return PageData{
						Title: "Loaded",
						Regions: regions.Regions{
							"header": regions.DataOf(map[string]any{"title": "From load"}),
						},
					}, nil
				},
				Page: func(*reactive.Owner, *http.Request) *VNode { return nil },
			},
			want: []string{"<title>Loaded</title>", "<h1>From load</h1>"},
		},
		{
			name: "nested layouts",
			route: Route{
				Layouts: []Layout{
					appLayout,
					func(owner *reactive.Owner, slot *VNode) *VNode {
						return Section(Class("inner"), slot)
					},
				},
				Page: func(*reactive.Owner, *http.Request) *VNode { return P(Text("deep")) },
			},
			want: []string{`<main><section class="inner"><p>deep</p></section></main>`},
		},
		{
			name: "no layouts",
			route: Route{
				Page: func(*reactive.Owner, *http.Request) *VNode { return P(Text("bare")) },
			},
			want: []string{"<body><p>bare</p></body>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(Config{})
			tt.route.Pattern = "/"
			srv.Handle(tt.route)

			code, body := get(t, srv, "/")
			if code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", code, body)
			}
			for _, w := range tt.want {
				if !strings.Contains(body, w) {
					t.Errorf("body missing %q:\n%s", w, body)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(body, a) {
					t.Errorf("body contains %q:\n%s", a, body)
				}
			}
		})
	}
}

func TestURLParams(t *testing.T) {
	srv := New(Config{})
	srv.Handle(Route{
		Pattern: "/users/{id}",
		Layouts: []Layout{appLayout},
		Page: func(owner *reactive.Owner, r *http.Request) *VNode {
			id := chi.URLParam(r, "id")
			regions.Use(owner, regions.Regions{
				"header": regions.DataOf(map[string]any{"title": "User " + id}),
			})
			return nil
		},
	})

	_, body := get(t, srv, "/users/42")
	if !strings.Contains(body, "<h1>User 42</h1>") {
		t.Errorf("body = %s", body)
	}
}

func TestLoadError(t *testing.T) {
	logs := &recordingHandler{}
	reg := prometheus.NewRegistry()
	srv := New(Config{Logger: slog.New(logs), Metrics: reg})
	srv.Handle(Route{
		Pattern: "/broken",
		Load: func(context.Context, *http.Request) (PageData, error) {
			return PageData{}, fmt.Errorf("database down")
		},
		Page: func(*reactive.Owner, *http.Request) *VNode { return nil },
	})

	code, _ := get(t, srv, "/broken")
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
	if !logs.has("page load failed") {
		t.Error("load failure was not logged")
	}
	if got := testutil.ToFloat64(srv.metrics.pagesTotal.WithLabelValues("/broken", "load_error")); got != 1 {
		t.Errorf("pages_total{load_error} = %v, want 1", got)
	}
}

func TestRegionErrorsAreCounted(t *testing.T) {
	failing := regions.SchemaFunc(func(any) (any, error) { return nil, fmt.Errorf("nope") })
	srv := New(Config{
		Logger:  slog.New(&recordingHandler{}),
		Schemas: map[string]regions.Schema{"header": failing},
	})
	srv.Handle(Route{
		Pattern: "/",
		Layouts: []Layout{appLayout},
		Page: func(owner *reactive.Owner, _ *http.Request) *VNode {
			regions.Use(owner, regions.Regions{"header": regions.DataOf(map[string]any{"title": "x"})})
			return nil
		},
	})

	code, body := get(t, srv, "/")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if strings.Contains(body, "<h1>") {
		t.Errorf("invalid region rendered: %s", body)
	}
	if got := testutil.ToFloat64(srv.metrics.regionErrors.WithLabelValues("/", "header")); got != 1 {
		t.Errorf("region_errors_total = %v, want 1", got)
	}
}

func TestDevModeDiagnostics(t *testing.T) {
	logs := &recordingHandler{}
	srv := New(Config{Logger: slog.New(logs), DevMode: true})
	srv.Handle(Route{
		Pattern: "/",
		Layouts: []Layout{appLayout},
		Page: func(owner *reactive.Owner, _ *http.Request) *VNode {
			regions.Use(owner, regions.Regions{"sidebar": regions.Null})
			return nil
		},
	})

	get(t, srv, "/")

	for _, want := range []string{
		`unexpected region "sidebar"`,
		`missing required region "header"`,
		`unused region "footer"`,
	} {
		if !logs.has(want) {
			t.Errorf("missing diagnostic %q in %v", want, logs.msgs)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := New(Config{MetricsPath: "/metrics"})
	srv.Handle(Route{Pattern: "/", Page: func(*reactive.Owner, *http.Request) *VNode { return nil }})

	get(t, srv, "/")
	code, body := get(t, srv, "/metrics")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, `regions_pages_total{route="/",status="ok"} 1`) {
		t.Errorf("metrics body missing page counter:\n%s", body)
	}
}

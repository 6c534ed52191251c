package ssr

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
	"github.com/vango-dev/regions/pkg/render"
	"github.com/vango-dev/regions/pkg/vdom"
)

const defaultTracerName = "regions"

// PageData is what a route's Load function returns.
type PageData struct {
	// Title is the document title.
	Title string

	// Regions pre-populate the layout's regions. Content a page sets
	// through regions.Use takes precedence.
	Regions regions.Regions
}

// LoadFunc fetches page data before any layout runs.
type LoadFunc func(ctx context.Context, r *http.Request) (PageData, error)

// Layout builds a layout view. It places outlets for its regions and slot
// where the nested content goes; slot is filled after the layout returns.
type Layout func(owner *reactive.Owner, slot *vdom.VNode) *vdom.VNode

// Page builds the page view. owner sits below every layout, so the page
// can publish regions with regions.Use.
type Page func(owner *reactive.Owner, r *http.Request) *vdom.VNode

// Route binds a URL pattern to layouts, a loader and a page.
type Route struct {
	// Pattern is a chi route pattern, e.g. "/users/{id}".
	Pattern string

	// Layouts wrap the page, outermost first.
	Layouts []Layout

	// Load is optional.
	Load LoadFunc

	// Page renders the route's content.
	Page Page
}

// Config configures a Server.
type Config struct {
	// Logger receives request and region diagnostics.
	// Default: slog.Default()
	Logger *slog.Logger

	// DevMode turns on region diagnostics. Check runs synchronously after
	// each page is flushed.
	DevMode bool

	// Schemas are passed to every request's registry.
	Schemas map[string]regions.Schema

	// Warnings selects region diagnostics. Nil enables all of them.
	Warnings *regions.Warnings

	// Lang is the document language. Default: "en"
	Lang string

	// Styles are inline stylesheets added to every page.
	Styles []string

	// Metrics collects page metrics. Default: a private registry.
	Metrics *prometheus.Registry

	// MetricsPath, when set, serves the metrics registry on that path.
	MetricsPath string

	// TracerName names the tracer used for page spans. Default: "regions"
	TracerName string
}

// Server renders routes to HTML. It implements http.Handler.
type Server struct {
	config   Config
	router   chi.Router
	renderer *render.Renderer
	metrics  *metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// New creates a server with chi's request ID and recoverer middleware
// installed.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = prometheus.NewRegistry()
	}
	if cfg.TracerName == "" {
		cfg.TracerName = defaultTracerName
	}

	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		renderer: render.NewRenderer(render.Config{Lang: cfg.Lang}),
		metrics:  newMetrics(cfg.Metrics, DefaultNamespace),
		tracer:   otel.Tracer(cfg.TracerName),
		logger:   cfg.Logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	if cfg.MetricsPath != "" {
		s.router.Handle(cfg.MetricsPath, promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))
	}
	return s
}

// Router exposes the chi router so callers can add their own routes and
// middleware.
func (s *Server) Router() chi.Router {
	return s.router
}

// Handle registers a route for GET requests.
func (s *Server) Handle(route Route) {
	s.router.Get(route.Pattern, func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, route)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, route Route) {
	start := time.Now()
	ctx, span := s.tracer.Start(r.Context(), "regions "+route.Pattern,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("regions.route", route.Pattern),
			attribute.String("http.path", r.URL.Path),
		),
	)
	defer span.End()
	r = r.WithContext(ctx)

	status := "ok"
	defer func() {
		s.metrics.pagesTotal.WithLabelValues(route.Pattern, status).Inc()
		s.metrics.renderDuration.WithLabelValues(route.Pattern).Observe(time.Since(start).Seconds())
	}()

	data, err := s.load(ctx, r, route)
	if err != nil {
		status = "load_error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("page load failed",
			slog.String("route", route.Pattern),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	failed, err := s.renderPage(&buf, r, route, data)
	for _, name := range failed {
		s.metrics.regionErrors.WithLabelValues(route.Pattern, name).Inc()
	}
	span.SetAttributes(attribute.Int("regions.failed_outlets", len(failed)))
	if err != nil {
		status = "render_error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("page render failed",
			slog.String("route", route.Pattern),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	span.SetStatus(codes.Ok, "")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) load(ctx context.Context, r *http.Request, route Route) (PageData, error) {
	if route.Load == nil {
		return PageData{}, nil
	}
	ctx, span := s.tracer.Start(ctx, "regions.load")
	defer span.End()
	data, err := route.Load(ctx, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return data, err
}

// renderPage builds the owner tree for one request, flushes it, writes the
// document and disposes the tree. It returns the names of outlets whose
// last evaluation failed.
func (s *Server) renderPage(buf *bytes.Buffer, r *http.Request, route Route, data PageData) ([]string, error) {
	_, span := s.tracer.Start(r.Context(), "regions.render")
	defer span.End()

	root := reactive.NewOwner(nil)
	defer root.Dispose()

	reg := regions.Mount(root, regions.Options{
		Schemas:     s.config.Schemas,
		Warnings:    s.config.Warnings,
		Logger:      s.logger,
		DevMode:     s.config.DevMode,
		SettleDelay: -1,
		PageData:    data.Regions,
	})

	var body, slot *vdom.VNode
	owner := root
	for _, layout := range route.Layouts {
		owner = reactive.NewOwner(owner)
		next := vdom.Fragment()
		node := layout(owner, next)
		if slot == nil {
			body = node
		} else {
			slot.Children = append(slot.Children, node)
		}
		slot = next
	}

	var page *vdom.VNode
	if route.Page != nil {
		page = route.Page(reactive.NewOwner(owner), r)
	}
	if slot == nil {
		body = page
	} else if page != nil {
		slot.Children = append(slot.Children, page)
	}

	if !root.Flush() {
		s.logger.Warn("region effects did not settle", slog.String("route", route.Pattern))
	}
	reg.Check()

	failed := failedOutlets(body, nil)

	err := s.renderer.RenderPage(buf, render.Page{
		Title:  data.Title,
		Body:   body,
		Styles: s.config.Styles,
	})
	return failed, err
}

func failedOutlets(n *vdom.VNode, out []string) []string {
	if n == nil {
		return out
	}
	if n.Kind == vdom.KindComponent {
		if o, ok := n.Comp.(*regions.Outlet); ok && o.Err() != nil {
			out = append(out, o.Name())
		}
		if n.Comp != nil {
			out = failedOutlets(n.Comp.Render(), out)
		}
	}
	for _, c := range n.Children {
		out = failedOutlets(c, out)
	}
	return out
}

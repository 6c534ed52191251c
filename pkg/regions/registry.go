package regions

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vango-dev/regions/pkg/reactive"
)

// DefaultSettleDelay is how long Mount waits before checking for missing and
// unused regions.
const DefaultSettleDelay = 100 * time.Millisecond

// Warnings toggles the development diagnostics.
type Warnings struct {
	// Unused reports regions a layout declares that nothing ever sets.
	Unused bool

	// Missing reports required regions that are still unset.
	Missing bool

	// Unexpected reports content set for a region no layout declares.
	Unexpected bool
}

// AllWarnings enables every diagnostic.
var AllWarnings = Warnings{Unused: true, Missing: true, Unexpected: true}

// Options configures a Registry.
type Options struct {
	// Schemas are per-region schemas used when an outlet has none of its own.
	Schemas map[string]Schema

	// Warnings selects diagnostics. Nil enables all of them.
	Warnings *Warnings

	// Logger receives diagnostics and validation failures.
	// Default: slog.Default()
	Logger *slog.Logger

	// DevMode enables the consistency diagnostics.
	DevMode bool

	// SettleDelay is the wait before Mount runs Check. Zero uses
	// DefaultSettleDelay; a negative value disables the timer.
	SettleDelay time.Duration

	// PageData pre-populates regions from server-loaded data. Content set
	// by a producer takes precedence.
	PageData Regions
}

// Registry holds region content and bookkeeping for one layout.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]*reactive.Signal[Content]
	declared  map[string]struct{}
	required  map[string]struct{}
	populated map[string]struct{}
	timer     *time.Timer
	closed    bool

	pageData *reactive.Signal[Regions]
	schemas  map[string]Schema
	warnings Warnings
	logger   *slog.Logger
	dev      bool
	settle   time.Duration
}

// New creates a Registry that is not attached to any scope. Most callers
// want Mount.
func New(opts Options) *Registry {
	r := &Registry{
		entries:   make(map[string]*reactive.Signal[Content]),
		declared:  make(map[string]struct{}),
		required:  make(map[string]struct{}),
		populated: make(map[string]struct{}),
		pageData:  reactive.NewSignal(copyRegions(opts.PageData)).WithEquals(neverEqual),
		schemas:   make(map[string]Schema, len(opts.Schemas)),
		warnings:  AllWarnings,
		logger:    opts.Logger,
		dev:       opts.DevMode,
		settle:    opts.SettleDelay,
	}
	for name, s := range opts.Schemas {
		r.schemas[name] = s
	}
	if opts.Warnings != nil {
		r.warnings = *opts.Warnings
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.settle == 0 {
		r.settle = DefaultSettleDelay
	}
	return r
}

type registryKey struct{}

// Mount creates a Registry and binds it to owner, making it visible to every
// descendant scope. In dev mode it schedules Check after the settle delay.
// Disposing owner stops the timer.
func Mount(owner *reactive.Owner, opts Options) *Registry {
	r := New(opts)
	owner.SetValue(registryKey{}, r)
	if r.dev && r.settle > 0 {
		r.mu.Lock()
		r.timer = time.AfterFunc(r.settle, r.settled)
		r.mu.Unlock()
	}
	owner.OnCleanup(r.close)
	return r
}

// FromOwner returns the nearest Registry mounted on owner or an ancestor.
func FromOwner(owner *reactive.Owner) *Registry {
	if owner == nil {
		return nil
	}
	r, _ := owner.Value(registryKey{}).(*Registry)
	return r
}

func (r *Registry) settled() {
	r.mu.Lock()
	closed := r.closed
	r.timer = nil
	r.mu.Unlock()
	if !closed {
		r.Check()
	}
}

func (r *Registry) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// DevMode reports whether diagnostics are enabled.
func (r *Registry) DevMode() bool {
	return r.dev
}

func (r *Registry) entry(name string) *reactive.Signal[Content] {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.entries[name]
	if !ok {
		s = reactive.NewSignal(Content{}).WithEquals(sameContent)
		r.entries[name] = s
	}
	return s
}

// RegisterRegion declares name, and marks it required when required is true.
// Registering twice is harmless.
func (r *Registry) RegisterRegion(name string, required bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.declared[name] = struct{}{}
	if required {
		r.required[name] = struct{}{}
	}
}

// UnregisterRegion removes name from the declared and required sets.
// Stored content is left alone.
func (r *Registry) UnregisterRegion(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.declared, name)
	delete(r.required, name)
}

// SetRegion stores content for name, replacing whatever was there. Setting
// the zero Content is the same as ClearRegion. In dev mode, setting a name
// no outlet declares logs an unexpected-region warning.
func (r *Registry) SetRegion(name string, content Content) {
	if content.Kind == KindUnset {
		r.ClearRegion(name)
		return
	}

	r.mu.Lock()
	r.populated[name] = struct{}{}
	_, declared := r.declared[name]
	r.mu.Unlock()

	if r.dev && r.warnings.Unexpected && !declared {
		r.warnUnexpected(name)
	}

	r.entry(name).Set(content)
}

// ClearRegion returns name to the unset state, so its outlet shows the
// fallback again.
func (r *Registry) ClearRegion(name string) {
	r.mu.Lock()
	s, ok := r.entries[name]
	r.mu.Unlock()
	if ok {
		s.Set(Content{})
	}
}

// Get returns the content for name, falling back to page data while no
// producer has set it. The read is tracked by the current effect.
func (r *Registry) Get(name string) Content {
	if c := r.entry(name).Get(); c.Kind != KindUnset {
		return c
	}
	return r.pageData.Get()[name]
}

// Peek is Get without tracking.
func (r *Registry) Peek(name string) Content {
	if c := r.entry(name).Peek(); c.Kind != KindUnset {
		return c
	}
	return r.pageData.Peek()[name]
}

// Has reports whether a producer currently holds content for name.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	s, ok := r.entries[name]
	r.mu.Unlock()
	return ok && s.Peek().Kind != KindUnset
}

// Declared returns the declared region names, sorted.
func (r *Registry) Declared() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedKeys(r.declared)
}

// Required returns the required region names, sorted.
func (r *Registry) Required() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedKeys(r.required)
}

// Schema returns the registry-level schema for name, or nil.
func (r *Registry) Schema(name string) Schema {
	return r.schemas[name]
}

// SetPageData replaces the server-loaded region content.
func (r *Registry) SetPageData(data Regions) {
	r.pageData.Set(copyRegions(data))
}

// sameContent treats only the payload-free kinds as unchanged. Data and
// fragments are stored verbatim, so a write of a mutated map must still
// notify the outlet.
func sameContent(a, b Content) bool {
	return a.Kind == b.Kind && (a.Kind == KindUnset || a.Kind == KindNull)
}

func neverEqual(Regions, Regions) bool { return false }

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyRegions(in Regions) Regions {
	out := make(Regions, len(in))
	for k, v := range in {
		if v.Kind != KindUnset {
			out[k] = v
		}
	}
	return out
}

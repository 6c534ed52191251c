package regions

import (
	"fmt"
	"log/slog"
)

func (r *Registry) warnUnexpected(name string) {
	r.logger.Warn(
		fmt.Sprintf("unexpected region %q: the page is setting a region that no layout is using", name),
		slog.String("region", name),
	)
}

// Problems lists what Check would report.
type Problems struct {
	// Missing are required regions with no content and no page data.
	Missing []string

	// Unused are declared regions that were never set and have no page data.
	Unused []string
}

// Inspect computes the current consistency problems without logging.
// It ignores DevMode and the warning toggles.
func (r *Registry) Inspect() Problems {
	page := r.pageData.Peek()

	r.mu.Lock()
	required := sortedKeys(r.required)
	declared := sortedKeys(r.declared)
	populated := make(map[string]struct{}, len(r.populated))
	for k := range r.populated {
		populated[k] = struct{}{}
	}
	r.mu.Unlock()

	var p Problems
	for _, name := range required {
		if r.Has(name) {
			continue
		}
		if _, ok := page[name]; ok {
			continue
		}
		p.Missing = append(p.Missing, name)
	}
	for _, name := range declared {
		if _, ok := populated[name]; ok {
			continue
		}
		if _, ok := page[name]; ok {
			continue
		}
		p.Unused = append(p.Unused, name)
	}
	return p
}

// Check logs missing-required warnings and unused-region notices. It does
// nothing outside dev mode. Mount calls it once the settle delay passes.
func (r *Registry) Check() {
	if !r.dev {
		return
	}
	p := r.Inspect()
	if r.warnings.Missing {
		for _, name := range p.Missing {
			r.logger.Warn(
				fmt.Sprintf("missing required region %q: the layout requires it but no page has set it", name),
				slog.String("region", name),
			)
		}
	}
	if r.warnings.Unused {
		for _, name := range p.Unused {
			r.logger.Info(
				fmt.Sprintf("unused region %q: the layout renders it but no page ever sets it", name),
				slog.String("region", name),
			)
		}
	}
}

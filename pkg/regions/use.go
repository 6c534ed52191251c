package regions

import (
	"log/slog"
	"sort"

	"github.com/vango-dev/regions/pkg/reactive"
)

const useOutsideLayout = "regions.Use must be called within a layout that mounted a Registry"

// Use publishes a fixed set of regions from the producer scope owner.
// See UseFunc.
func Use(owner *reactive.Owner, regions Regions) *Registry {
	return UseFunc(owner, func() Regions { return regions })
}

// UseFunc publishes the regions returned by fn from the producer scope owner.
// fn runs in an effect: when a signal it reads changes, the keys set by the
// previous run are cleared and the new result is applied. Entries with
// KindUnset are skipped. Disposing owner clears every key the last run set.
//
// Without a Registry above owner, UseFunc logs a warning and returns nil.
// Otherwise it returns the Registry for imperative updates.
func UseFunc(owner *reactive.Owner, fn func() Regions) *Registry {
	reg := FromOwner(owner)
	if reg == nil {
		slog.Default().Warn(useOutsideLayout, slog.String("code", "R101"))
		return nil
	}

	reactive.WithOwner(owner, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			set := apply(reg, fn())
			return func() {
				for _, name := range set {
					reg.ClearRegion(name)
				}
			}
		})
	})
	return reg
}

func apply(reg *Registry, regions Regions) []string {
	names := make([]string, 0, len(regions))
	for name, c := range regions {
		if c.Kind != KindUnset {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		reg.SetRegion(name, regions[name])
	}
	return names
}

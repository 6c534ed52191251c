package regions

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/regions/pkg/vdom"
)

// Kind discriminates region content.
type Kind uint8

const (
	// KindUnset means no producer has set the region. Inside a Regions
	// mapping it marks an entry to skip.
	KindUnset Kind = iota

	// KindNull is explicit suppression: render nothing, not even the
	// fallback.
	KindNull

	// KindData is structured data for the outlet to validate and render.
	KindData

	// KindFragment is a deferred view rendered as is.
	KindFragment
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindNull:
		return "null"
	case KindData:
		return "data"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Fragment is a deferred view. Outlets call it on every evaluation and never
// validate it.
type Fragment func() *vdom.VNode

// Content is the value held by a region. The zero value is unset.
type Content struct {
	Kind     Kind
	Data     any
	Fragment Fragment
}

// Regions maps region names to content.
type Regions map[string]Content

// Null suppresses a region.
var Null = Content{Kind: KindNull}

// DataOf wraps structured data, typically a map[string]any.
func DataOf(data any) Content {
	return Content{Kind: KindData, Data: data}
}

// FragmentOf wraps a view fragment. A nil fragment suppresses the region.
func FragmentOf(f Fragment) Content {
	if f == nil {
		return Null
	}
	return Content{Kind: KindFragment, Fragment: f}
}

// htmlPolicy is shared; bluemonday policies are safe for concurrent use once
// built.
var htmlPolicy = bluemonday.UGCPolicy()

// HTML sanitizes raw markup and wraps it as a fragment. Use it for
// user-authored HTML coming from page data.
func HTML(raw string) Content {
	clean := htmlPolicy.Sanitize(raw)
	return FragmentOf(func() *vdom.VNode { return vdom.Raw(clean) })
}

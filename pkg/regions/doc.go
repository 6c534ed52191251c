// Package regions lets a layout declare named regions that descendant pages
// fill with content.
//
// A layout mounts a Registry on its owner scope and places an Outlet for
// each region it renders:
//
//	reg := regions.Mount(layout, regions.Options{DevMode: true})
//	header := regions.Region(layout, regions.RegionProps{
//	    Name:     "header",
//	    Schema:   headerSchema,
//	    Fallback: func() *vdom.VNode { return H1("Dashboard") },
//	    Children: func(data any) *vdom.VNode {
//	        d := data.(map[string]any)
//	        return H1(d["title"].(string))
//	    },
//	})
//
// A page scope below the layout publishes content. The function form is
// re-evaluated whenever a signal it reads changes, and everything it set is
// withdrawn when the page scope is disposed:
//
//	regions.UseFunc(page, func() regions.Regions {
//	    return regions.Regions{
//	        "header": regions.DataOf(map[string]any{"title": title.Get()}),
//	        "footer": regions.Null,
//	    }
//	})
//
// An outlet shows its fallback while the region is unset, nothing when it
// was set to Null, calls a Fragment directly, and passes Data through the
// region's schema (or the registry's schema for that name) before handing it
// to Children.
package regions

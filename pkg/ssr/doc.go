// Package ssr serves pages built from layouts that declare regions.
//
// Each request gets a fresh owner tree: a region registry is mounted at the
// root and pre-populated from the route's Load function, the layouts run
// outermost first, then the page runs inside the innermost layout's slot.
// Pending effects are flushed before the tree is rendered, so whatever the
// page publishes is visible in the layout's outlets.
//
//	srv := ssr.New(ssr.Config{DevMode: true})
//	srv.Handle(ssr.Route{
//	    Pattern: "/dashboard",
//	    Layouts: []ssr.Layout{appLayout},
//	    Load: func(ctx context.Context, r *http.Request) (ssr.PageData, error) {
//	        return ssr.PageData{Regions: regions.Regions{
//	            "header": regions.DataOf(map[string]any{"title": "Dashboard"}),
//	        }}, nil
//	    },
//	    Page: dashboardPage,
//	})
//	http.ListenAndServe(":8080", srv)
package ssr

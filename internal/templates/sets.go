package templates

const dataFile = `// Package {{.Package}} is the "{{.Region}}" layout region.
package {{.Package}}

import (
	"encoding/json"

	"github.com/vango-dev/regions/pkg/regions"
)

// RegionName is the key pages use to set this region.
const RegionName = "{{.Region}}"

// Data is the content of the {{.Region}} region.
type Data struct {
{{- range .Fields}}
	{{.Ident}} {{goType .}} ` + "`" + `json:"{{.Name}}{{if .Optional}},omitempty{{end}}"` + "`" + `
{{- end}}
}

// Content wraps d for regions.Use and page data.
func (d Data) Content() regions.Content {
	return regions.DataOf(d)
}

// Decode converts region data, validated or not, back into Data.
func Decode(v any) (Data, error) {
	if d, ok := v.(Data); ok {
		return d, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Data{}, err
	}
	var d Data
	err = json.Unmarshal(raw, &d)
	return d, err
}
`

const schemaFile = `{{if eq .Validator "openapi"}}package {{.Package}}

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/vango-dev/regions/pkg/regions"
)

// Schema validates {{.Region}} data before the layout renders it.
var Schema = regions.OpenAPI(openapiSchema())

func openapiSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
{{- range .Fields}}
	s.WithProperty({{printf "%q" .Name}}, {{openapiSchema .}})
{{- end}}
	s.Required = []string{ {{- quoteList (required .Fields) -}} }
	return s
}
{{else if eq .Validator "cty"}}package {{.Package}}

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vango-dev/regions/pkg/regions"
)

// Schema validates {{.Region}} data before the layout renders it.
{{- if optional .Fields}}
var Schema = regions.Cty(cty.ObjectWithOptionalAttrs(map[string]cty.Type{
{{- range .Fields}}
	{{printf "%q" .Name}}: {{ctyType .}},
{{- end}}
}, []string{ {{- quoteList (optional .Fields) -}} }))
{{- else}}
var Schema = regions.Cty(cty.Object(map[string]cty.Type{
{{- range .Fields}}
	{{printf "%q" .Name}}: {{ctyType .}},
{{- end}}
}))
{{- end}}
{{end}}`

const regionFile = `package {{.Package}}

import (
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
	"github.com/vango-dev/regions/pkg/vdom"
)

// Region places the {{.Region}} outlet in a layout. fallback renders while
// no page sets the region and may be nil.
func Region(owner *reactive.Owner, fallback func() *vdom.VNode) *regions.Outlet {
	return regions.Region(owner, regions.RegionProps{
		Name: RegionName,
{{- if ne .Validator "none"}}
		Schema: Schema,
{{- end}}
		Fallback: fallback,
		Children: func(data any) *vdom.VNode {
			d, err := Decode(data)
			if err != nil {
				return nil
			}
			return view(d)
		},
	})
}

// view lays out the region. Replace the markup with your own.
func view(d Data) *vdom.VNode {
	return vdom.Div(
		vdom.Class("{{.Kebab}}-region"),
{{- range .Fields}}
		{{renderField .}},
{{- end}}
	)
}
`

const wrapperFile = `package {{.Package}}

import (
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
)

// Use sets the {{.Region}} region from the page scope owner. The region is
// withdrawn when owner is disposed.
func Use(owner *reactive.Owner, d Data) *regions.Registry {
	return regions.Use(owner, regions.Regions{RegionName: d.Content()})
}

// UseFunc is Use for data derived from signals; the region follows fn.
func UseFunc(owner *reactive.Owner, fn func() Data) *regions.Registry {
	return regions.UseFunc(owner, func() regions.Regions {
		return regions.Regions{RegionName: fn().Content()}
	})
}
`

const layoutFile = `package {{.ExamplePackage}}

import (
	"{{.LibImport}}/{{.Package}}"
	"github.com/vango-dev/regions/pkg/reactive"
	. "github.com/vango-dev/regions/pkg/vdom"
)

// Layout renders the {{.Region}} region above the page. Serve it through
// ssr.Route, which mounts the region registry.
func Layout(owner *reactive.Owner, slot *VNode) *VNode {
	return Div(
		{{.Package}}.Region(owner, nil),
		Main(slot),
	)
}
`

const loadFile = `package {{.ExamplePackage}}

import (
	"context"
	"net/http"

	"{{.LibImport}}/{{.Package}}"
	"github.com/vango-dev/regions/pkg/regions"
	"github.com/vango-dev/regions/pkg/ssr"
)

// Load supplies the {{.Region}} region from the server, so it renders with
// the first response. Replace the placeholder values with real data.
func Load(ctx context.Context, r *http.Request) (ssr.PageData, error) {
	data := {{.Package}}.Data{
{{- range .Fields}}
		{{.Ident}}: {{sample .}},
{{- end}}
	}
	return ssr.PageData{
		Regions: regions.Regions{
			{{.Package}}.RegionName: data.Content(),
		},
	}, nil
}

// Route serves this example with Layout.
func Route(pattern string) ssr.Route {
	return ssr.Route{
		Pattern: pattern,
		Layouts: []ssr.Layout{Layout},
		Load:    Load,
	}
}
`

const wrapperPageFile = `package {{.ExamplePackage}}

import (
	"net/http"

	"{{.LibImport}}/{{.Package}}"
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/ssr"
	. "github.com/vango-dev/regions/pkg/vdom"
)

// Page sets the {{.Region}} region through the generated wrapper.
func Page(owner *reactive.Owner, r *http.Request) *VNode {
	{{.Package}}.Use(owner, {{.Package}}.Data{
{{- range .Fields}}
		{{.Ident}}: {{sample .}},
{{- end}}
	})
	return P(Text("This page sets the {{.Region}} region."))
}

// Route serves this example with Layout.
func Route(pattern string) ssr.Route {
	return ssr.Route{
		Pattern: pattern,
		Layouts: []ssr.Layout{Layout},
		Page:    Page,
	}
}
`

const snippetLayoutFile = `package {{.ExamplePackage}}

import (
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
	. "github.com/vango-dev/regions/pkg/vdom"
)

// Layout declares the {{.Region}} region. Pages fill it with a fragment, so
// no schema or data type is needed.
func Layout(owner *reactive.Owner, slot *VNode) *VNode {
	return Div(
		regions.Region(owner, regions.RegionProps{Name: "{{.Region}}"}),
		Main(slot),
	)
}
`

const snippetPageFile = `package {{.ExamplePackage}}

import (
	"net/http"

	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/regions"
	"github.com/vango-dev/regions/pkg/ssr"
	. "github.com/vango-dev/regions/pkg/vdom"
)

// Page fills the {{.Region}} region with a fragment. The fragment can use
// anything in scope here, and it is re-rendered when a signal it reads
// changes.
func Page(owner *reactive.Owner, r *http.Request) *VNode {
	visits := reactive.NewSignal(1)
	regions.UseFunc(owner, func() regions.Regions {
		n := visits.Get()
		return regions.Regions{
			"{{.Region}}": regions.FragmentOf(func() *VNode {
				return Div(
					Class("{{.Kebab}}-snippet"),
					H2(Text("{{.Pascal}}")),
					P(Textf("Rendered from the page, visit %d", n)),
				)
			}),
		}
	})
	return P(Text("This page sets the {{.Region}} region with a fragment."))
}

// Route serves this example with Layout.
func Route(pattern string) ssr.Route {
	return ssr.Route{
		Pattern: pattern,
		Layouts: []ssr.Layout{Layout},
		Page:    Page,
	}
}
`

const (
	libPath     = "{{.LibDir}}/{{.Package}}/"
	examplePath = "{{.ExampleDir}}/"
)

func loadFunctionTemplate() *Template {
	return &Template{
		Name:        "load-function",
		Description: "Load function (server data) - recommended, no layout shift",
		Files: []File{
			{Path: libPath + "data.go", Content: dataFile},
			{Path: libPath + "schema.go", Content: schemaFile},
			{Path: libPath + "region.go", Content: regionFile},
			{Path: examplePath + "load.go", Content: loadFile},
			{Path: examplePath + "layout.go", Content: layoutFile},
		},
	}
}

func pageComponentTemplate() *Template {
	return &Template{
		Name:        "page-component",
		Description: "Page wrapper (regions.Use) - simple, set from the page",
		Files: []File{
			{Path: libPath + "data.go", Content: dataFile},
			{Path: libPath + "schema.go", Content: schemaFile},
			{Path: libPath + "region.go", Content: regionFile},
			{Path: libPath + "use.go", Content: wrapperFile},
			{Path: examplePath + "layout.go", Content: layoutFile},
			{Path: examplePath + "page.go", Content: wrapperPageFile},
		},
	}
}

func snippetTemplate() *Template {
	return &Template{
		Name:        "snippet",
		Description: "Fragment - advanced, full page context and reactivity",
		Files: []File{
			{Path: examplePath + "layout.go", Content: snippetLayoutFile},
			{Path: examplePath + "page.go", Content: snippetPageFile},
		},
	}
}

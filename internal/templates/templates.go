package templates

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/vango-dev/regions/internal/errors"
)

// Field is one field of a region's data.
type Field struct {
	// Name is the JSON key.
	Name string

	// Ident is the exported Go field name.
	Ident string

	// Type is string, number, boolean or array.
	Type string

	// ItemType is the element type of an array field.
	ItemType string

	// Optional fields may be omitted.
	Optional bool
}

// Data is passed to every template.
type Data struct {
	Region         string
	Kebab          string
	Pascal         string
	Package        string
	LibDir         string
	LibImport      string
	ExampleDir     string
	ExamplePackage string
	Validator      string
	Fields         []Field
}

// File is a template entry: a path template and a content template.
type File struct {
	Path    string
	Content string
}

// Template is the file set for one strategy.
type Template struct {
	// Name is the strategy name.
	Name string

	// Description describes the strategy.
	Description string

	// Files are rendered and written in order.
	Files []File
}

// Output is a rendered file, relative to the project root.
type Output struct {
	Path    string
	Content []byte
}

var templates = map[string]*Template{
	"load-function":  loadFunctionTemplate(),
	"page-component": pageComponentTemplate(),
	"snippet":        snippetTemplate(),
}

// Get returns the template set for a strategy.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("R302").
			WithDetailf("%q", name).
			WithSuggestion("Use one of: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns the strategy names in the order they are offered.
func List() []string {
	return []string{"load-function", "page-component", "snippet"}
}

// Render executes every file of the set. Files whose content renders empty
// are skipped; Go files are gofmt'ed.
func (t *Template) Render(data Data) ([]Output, error) {
	out := make([]Output, 0, len(t.Files))
	for _, f := range t.Files {
		rawPath, err := execute(f.Path, f.Path, data)
		if err != nil {
			return nil, err
		}
		path := string(rawPath)
		content, err := execute(path, f.Content, data)
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(content)) == 0 {
			continue
		}
		if strings.HasSuffix(path, ".go") {
			formatted, err := format.Source(content)
			if err != nil {
				return nil, errors.New("R306").
					WithDetailf("%s does not parse as Go", path).
					Wrap(err)
			}
			content = formatted
		}
		out = append(out, Output{Path: filepath.FromSlash(path), Content: content})
	}
	return out, nil
}

func execute(name, text string, data Data) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, errors.New("R306").WithDetailf("invalid template %s", name).Wrap(err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.New("R306").WithDetailf("executing %s", name).Wrap(err)
	}
	return buf.Bytes(), nil
}

// Create writes files under dir in order and returns the paths written.
// It stops at the first failure; files already written stay in place.
func Create(dir string, files []Output) ([]string, error) {
	written := make([]string, 0, len(files))
	for _, f := range files {
		full := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return written, errors.New("R305").WithDetail(full).Wrap(err)
		}
		if err := os.WriteFile(full, f.Content, 0o644); err != nil {
			return written, errors.New("R305").WithDetail(full).Wrap(err)
		}
		written = append(written, f.Path)
	}
	return written, nil
}

var funcs = template.FuncMap{
	"goType":        goType,
	"openapiSchema": openapiSchema,
	"ctyType":       ctyType,
	"sample":        sample,
	"renderField":   renderField,
	"required":      requiredNames,
	"optional":      optionalNames,
	"quoteList":     quoteList,
}

func scalarGoType(t string) string {
	switch t {
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	default:
		return "string"
	}
}

func goType(f Field) string {
	if f.Type == "array" {
		return "[]" + scalarGoType(f.ItemType)
	}
	return scalarGoType(f.Type)
}

func scalarOpenAPI(t string) string {
	switch t {
	case "number":
		return "openapi3.NewFloat64Schema()"
	case "boolean":
		return "openapi3.NewBoolSchema()"
	default:
		return "openapi3.NewStringSchema()"
	}
}

func openapiSchema(f Field) string {
	if f.Type == "array" {
		return "openapi3.NewArraySchema().WithItems(" + scalarOpenAPI(f.ItemType) + ")"
	}
	return scalarOpenAPI(f.Type)
}

func scalarCty(t string) string {
	switch t {
	case "number":
		return "cty.Number"
	case "boolean":
		return "cty.Bool"
	default:
		return "cty.String"
	}
}

func ctyType(f Field) string {
	if f.Type == "array" {
		return "cty.List(" + scalarCty(f.ItemType) + ")"
	}
	return scalarCty(f.Type)
}

func scalarSample(t, name string, i int) string {
	switch t {
	case "number":
		return fmt.Sprint(42 + i)
	case "boolean":
		return "true"
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("Example %s", name))
	}
}

// sample returns a Go literal placeholder for f.
func sample(f Field) string {
	if f.Type == "array" {
		return fmt.Sprintf("[]%s{%s, %s}", scalarGoType(f.ItemType),
			scalarSample(f.ItemType, f.Name+" 1", 0), scalarSample(f.ItemType, f.Name+" 2", 1))
	}
	return scalarSample(f.Type, f.Name, 0)
}

// renderField returns a vdom expression showing field f of the value d.
func renderField(f Field) string {
	switch f.Type {
	case "number":
		return fmt.Sprintf(`vdom.P(vdom.Class(%q), vdom.Textf("%%v", d.%s))`, f.Name, f.Ident)
	case "boolean":
		return fmt.Sprintf(`vdom.If(d.%s, vdom.Span(vdom.Class(%q), vdom.Text(%q)))`, f.Ident, f.Name, f.Name)
	case "array":
		return fmt.Sprintf(`vdom.Ul(vdom.Class(%q), vdom.Range(d.%s, func(_ int, v %s) *vdom.VNode { return vdom.Li(vdom.Textf("%%v", v)) }))`,
			f.Name, f.Ident, scalarGoType(f.ItemType))
	default:
		return fmt.Sprintf(`vdom.P(vdom.Class(%q), vdom.Text(d.%s))`, f.Name, f.Ident)
	}
}

func requiredNames(fields []Field) []string {
	var out []string
	for _, f := range fields {
		if !f.Optional {
			out = append(out, f.Name)
		}
	}
	return out
}

func optionalNames(fields []Field) []string {
	var out []string
	for _, f := range fields {
		if f.Optional {
			out = append(out, f.Name)
		}
	}
	return out
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

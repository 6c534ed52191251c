package generate

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/regions/internal/config"
	"github.com/vango-dev/regions/internal/errors"
	"github.com/vango-dev/regions/internal/templates"
)

// Strategy is how pages populate the region.
type Strategy string

const (
	// StrategyLoadFunction fills the region from a route's Load function.
	StrategyLoadFunction Strategy = "load-function"

	// StrategyPageComponent fills the region from a generated Use wrapper.
	StrategyPageComponent Strategy = "page-component"

	// StrategySnippet fills the region with a fragment built in the page.
	StrategySnippet Strategy = "snippet"
)

// Strategies lists the strategies in prompt order.
var Strategies = []Strategy{StrategyLoadFunction, StrategyPageComponent, StrategySnippet}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errors.New("R302").
		WithDetailf("%q", s).
		WithSuggestion("Use one of: " + strings.Join(templates.List(), ", "))
}

// Validator selects the generated schema.
type Validator string

const (
	ValidatorNone    Validator = "none"
	ValidatorOpenAPI Validator = "openapi"
	ValidatorCty     Validator = "cty"
)

// Validators lists the validators in prompt order.
var Validators = []Validator{ValidatorNone, ValidatorOpenAPI, ValidatorCty}

// ParseValidator validates a validator name.
func ParseValidator(s string) (Validator, error) {
	for _, v := range Validators {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errors.New("R303").
		WithDetailf("%q", s).
		WithSuggestion("Use one of: none, openapi, cty")
}

// Request is a fully answered `regions add`.
type Request struct {
	Name      Name
	Strategy  Strategy
	Fields    []Field
	Validator Validator

	// ExamplePath is the example route directory, relative to the project.
	ExamplePath string
}

// DefaultExamplePath is where examples go when no path is given.
func DefaultExamplePath(cfg *config.Config, name Name) string {
	return path.Join(filepath.ToSlash(cfg.Paths.Routes), name.Kebab+"-example")
}

// Result describes a finished generation.
type Result struct {
	// Files are the paths written, relative to the project.
	Files []string

	// NextSteps is advice printed after the file list.
	NextSteps string
}

// Generator writes region files into a project.
type Generator struct {
	cfg *config.Config
}

// New creates a generator for the project described by cfg.
func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Plan renders the files for req without writing anything.
func (g *Generator) Plan(req Request) ([]templates.Output, error) {
	tmpl, err := templates.Get(string(req.Strategy))
	if err != nil {
		return nil, err
	}
	if req.Strategy != StrategySnippet && g.cfg.Module == "" {
		return nil, errors.New("R320").
			WithDetail("module path unknown").
			WithSuggestion("Run inside a Go module or set \"module\" in regions.json")
	}

	example := req.ExamplePath
	if example == "" {
		example = DefaultExamplePath(g.cfg, req.Name)
	}
	example = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(example)), "/")

	validator := req.Validator
	if validator == "" {
		validator = ValidatorNone
	}

	return tmpl.Render(templates.Data{
		Region:         req.Name.Camel,
		Kebab:          req.Name.Kebab,
		Pascal:         req.Name.Pascal,
		Package:        req.Name.Package,
		LibDir:         strings.TrimSuffix(filepath.ToSlash(filepath.Clean(g.cfg.Paths.Lib)), "/"),
		LibImport:      g.cfg.LibImport(),
		ExampleDir:     example,
		ExamplePackage: examplePackage(example),
		Validator:      string(validator),
		Fields:         templateFields(req.Fields),
	})
}

// Generate renders and writes the files for req. Files written before a
// failure are left in place and listed in the result.
func (g *Generator) Generate(req Request) (*Result, error) {
	files, err := g.Plan(req)
	if err != nil {
		return nil, err
	}
	written, err := templates.Create(g.cfg.Dir(), files)
	res := &Result{Files: written}
	if err != nil {
		return res, err
	}
	res.NextSteps = NextSteps(req, g.cfg)
	return res, nil
}

// examplePackage derives a package name from the last path element:
// "app/routes/page-header-example" gives "pageheaderexample".
func examplePackage(dir string) string {
	base := path.Base(dir)
	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	pkg := b.String()
	if pkg == "" || (pkg[0] >= '0' && pkg[0] <= '9') || goKeywords[pkg] {
		pkg = "example" + pkg
	}
	return pkg
}

// NextSteps returns the advice shown after generation.
func NextSteps(req Request, cfg *config.Config) string {
	example := req.ExamplePath
	if example == "" {
		example = DefaultExamplePath(cfg, req.Name)
	}
	region := path.Join(filepath.ToSlash(cfg.Paths.Lib), req.Name.Package, "region.go")
	route := "/" + strings.TrimPrefix(strings.TrimPrefix(example, filepath.ToSlash(cfg.Paths.Routes)), "/")

	var b strings.Builder
	switch req.Strategy {
	case StrategySnippet:
		fmt.Fprintf(&b, "1. Customize the fragment in:\n     %s/page.go\n", example)
		b.WriteString("   - Build any markup you need\n")
		b.WriteString("   - Read page signals freely; the region follows them\n\n")
		fmt.Fprintf(&b, "2. Try the example:\n   - Register Route(%q) with your ssr.Server\n\n", route)
		fmt.Fprintf(&b, "3. Add more regions:\n   - Call regions.Region in %s/layout.go\n", example)
		b.WriteString("   - Fill them from pages with regions.Use")
	case StrategyLoadFunction:
		fmt.Fprintf(&b, "1. Customize the region markup in %s:\n", region)
		fmt.Fprintf(&b, "   - The data fields (%s) are already rendered\n\n", fieldNames(req.Fields))
		fmt.Fprintf(&b, "2. Try the example:\n   - Register Route(%q) with your ssr.Server\n", route)
		fmt.Fprintf(&b, "   - See the layout and load function in %s\n\n", example)
		b.WriteString("3. Replace the placeholder values in Load with real data\n")
		b.WriteString("   - Copy Load and Layout into your own routes when ready")
	case StrategyPageComponent:
		fmt.Fprintf(&b, "1. Customize the region markup in %s:\n", region)
		fmt.Fprintf(&b, "   - The data fields (%s) are already rendered\n\n", fieldNames(req.Fields))
		fmt.Fprintf(&b, "2. Try the example:\n   - Register Route(%q) with your ssr.Server\n", route)
		fmt.Fprintf(&b, "   - See the wrapper in use in %s/page.go\n\n", example)
		fmt.Fprintf(&b, "3. Use it in your pages:\n   - Call %s.Use(owner, %s.Data{...}) from any page below the layout",
			req.Name.Package, req.Name.Package)
	}
	return b.String()
}

func fieldNames(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

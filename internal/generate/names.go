package generate

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vango-dev/regions/internal/errors"
)

// Name is a region name in every casing the templates need.
type Name struct {
	// Raw is the name as typed.
	Raw string

	// Kebab is used for directories and CSS classes: "page-header".
	Kebab string

	// Camel is the region key: "pageHeader".
	Camel string

	// Pascal is used in identifiers: "PageHeader".
	Pascal string

	// Package is the Go package name: "pageheader".
	Package string
}

var (
	validName   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	camelBreak  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	goKeywords  = map[string]bool{"break": true, "case": true, "chan": true, "const": true, "continue": true, "default": true, "defer": true, "else": true, "fallthrough": true, "for": true, "func": true, "go": true, "goto": true, "if": true, "import": true, "interface": true, "map": true, "package": true, "range": true, "return": true, "select": true, "struct": true, "switch": true, "type": true, "var": true}
	validIdent  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	dashRunning = regexp.MustCompile(`-+`)
)

// NormalizeName accepts "pageHeader", "PageHeader" or "page-header" and
// returns all casings.
func NormalizeName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if !validName.MatchString(trimmed) || strings.HasSuffix(trimmed, "-") {
		return Name{}, errors.New("R301").
			WithDetailf("%q", raw).
			WithSuggestion("Use letters, digits and dashes, starting with a letter, e.g. page-header or pageHeader")
	}

	kebab := trimmed
	if !strings.Contains(kebab, "-") {
		kebab = camelBreak.ReplaceAllString(kebab, "$1-$2")
	}
	kebab = dashRunning.ReplaceAllString(cases.Lower(language.Und).String(kebab), "-")

	words := strings.Split(kebab, "-")
	var pascal strings.Builder
	for _, w := range words {
		pascal.WriteString(title(w))
	}
	p := pascal.String()

	pkg := strings.ReplaceAll(kebab, "-", "")
	if goKeywords[pkg] {
		pkg += "region"
	}

	return Name{
		Raw:     raw,
		Kebab:   kebab,
		Camel:   lowerFirst(p),
		Pascal:  p,
		Package: pkg,
	}, nil
}

// fieldIdent exports a JSON field name as a Go identifier: "imageUrl"
// becomes "ImageUrl", "image-url" becomes "ImageUrl".
func fieldIdent(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(title(p))
	}
	return b.String()
}

// title upper-cases the first letter and leaves the rest alone. Casers hold
// state, so each call gets its own.
func title(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

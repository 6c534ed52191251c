// Package templates holds the Go source templates written by `regions add`.
//
// There is one template set per strategy:
//
//   - load-function: region package plus an example Load function and layout
//   - page-component: region package with a Use wrapper, example layout and page
//   - snippet: example layout and page that pass a fragment directly
//
// File paths are templates too, so a set can target both the region library
// directory and the example route directory:
//
//	tmpl, err := templates.Get("load-function")
//	files, err := tmpl.Render(data)
//	written, err := templates.Create(projectDir, files)
//
// # Template Variables
//
//	{{.Region}}          - region key, camelCase
//	{{.Kebab}}           - region name, kebab-case
//	{{.Pascal}}          - region name, PascalCase
//	{{.Package}}         - Go package of the region library
//	{{.LibDir}}          - library directory, relative to the project
//	{{.LibImport}}       - import path of the library directory
//	{{.ExampleDir}}      - example route directory, relative to the project
//	{{.ExamplePackage}}  - Go package of the example route
//	{{.Validator}}       - none, openapi or cty
//	{{.Fields}}          - field definitions
package templates

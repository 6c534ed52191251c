// Package errors provides the coded, actionable errors used by the region
// runtime and the regions CLI.
//
// Each code maps to a category, a short message and a longer detail:
//
//	err := errors.New("R302").
//	    WithDetail("Unknown strategy 'ssr'").
//	    WithSuggestion("Use one of: load-function, page-component, snippet")
//
//	errors.Print(os.Stderr, err)
//
// Codes R1xx are runtime usage problems, R2xx validation failures and R3xx
// generator failures.
package errors

package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups error codes.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// RegionsError is a structured error with a code, an explanation and an
// optional hint.
type RegionsError struct {
	Code       string
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	Wrapped    error
}

// Error implements error.
func (e *RegionsError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap supports errors.Is and errors.As.
func (e *RegionsError) Unwrap() error {
	return e.Wrapped
}

// WithDetail sets the detail line.
func (e *RegionsError) WithDetail(d string) *RegionsError {
	e.Detail = d
	return e
}

// WithDetailf sets a formatted detail line.
func (e *RegionsError) WithDetailf(format string, args ...any) *RegionsError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion sets the hint shown under the error.
func (e *RegionsError) WithSuggestion(s string) *RegionsError {
	e.Suggestion = s
	return e
}

// Wrap records the underlying cause.
func (e *RegionsError) Wrap(err error) *RegionsError {
	e.Wrapped = err
	return e
}

// New creates an error from a registered code. Unknown codes produce a
// generic message rather than failing.
func New(code string) *RegionsError {
	tmpl, ok := registry[code]
	if !ok {
		return &RegionsError{Code: code, Message: "Unknown error"}
	}
	return &RegionsError{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
	}
}

// Newf creates an uncoded error.
func Newf(category Category, format string, args ...any) *RegionsError {
	return &RegionsError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err unchanged if it already is a *RegionsError,
// otherwise wraps it under code.
func FromError(err error, code string) *RegionsError {
	if err == nil {
		return nil
	}
	var re *RegionsError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a RegionsError with code.
func HasCode(err error, code string) bool {
	var re *RegionsError
	for err != nil {
		if !stderrors.As(err, &re) {
			return false
		}
		if re.Code == code {
			return true
		}
		err = re.Wrapped
	}
	return false
}

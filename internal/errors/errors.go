// Package errors provides coded, categorized errors for the editor
// core. Every code maps to a short message and a longer detail so
// failures surface with the same shape everywhere: in logs, in HTTP
// responses, and in the source-view error banner.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies an error by the subsystem that raised it.
type Category string

const (
	CategoryParse    Category = "parse"
	CategoryConfig   Category = "config"
	CategoryRegistry Category = "registry"
	CategoryCommand  Category = "command"
	CategorySync     Category = "sync"
	CategoryProtocol Category = "protocol"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	// Code is the unique identifier, e.g. "E001".
	Code string

	// Category is the raising subsystem.
	Category Category

	// Message is the short description shown to users.
	Message string

	// Detail is the longer explanation.
	Detail string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches errors by code, so errors.Is works across wrap layers.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Wrap attaches a cause and returns the error for chaining.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered code. Unregistered codes still
// produce a usable error.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "unknown error"}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

package bridge

import (
	"fmt"

	"github.com/inkwell-dev/inkwell/pkg/schema"
)

// ThemeClassPrefix marks class tokens the editor adds for its own
// styling. Export strips them: they are presentation state, not content.
const ThemeClassPrefix = "ink-"

// preserveWhitespace is the inline style the editing surface attaches to
// spans so the browser keeps significant whitespace. It is an editing
// artifact and never survives export.
const preserveWhitespace = "white-space: pre-wrap"

// Bridge converts between HTML text and document node trees using a
// schema registry, and normalizes exported output.
type Bridge struct {
	registry *schema.Registry
}

// New creates a bridge over the given registry. A nil registry gets the
// built-in schema.
func New(registry *schema.Registry) *Bridge {
	if registry == nil {
		registry = schema.Default()
	}
	return &Bridge{registry: registry}
}

// Registry returns the schema registry the bridge converts through.
func (b *Bridge) Registry() *schema.Registry {
	return b.registry
}

// ParseError reports malformed input that reached fatal parser state.
// Well-formed HTML never produces one.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("bridge: parse failed: %v", e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

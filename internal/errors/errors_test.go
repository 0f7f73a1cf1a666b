package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewFromRegisteredCode(t *testing.T) {
	err := New("E001")
	if err.Code != "E001" || err.Category != CategoryParse {
		t.Errorf("New(E001) = %+v", err)
	}
	if err.Message == "" || err.Detail == "" {
		t.Error("registered code missing message or detail")
	}
}

func TestNewUnregisteredCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" || err.Message != "unknown error" {
		t.Errorf("New(E999) = %+v", err)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New("E001").Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	if got := err.Error(); got != "E001: HTML source did not parse: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	inner := New("E002")
	wrapped := fmt.Errorf("handler: %w", inner)
	if !stderrors.Is(wrapped, New("E002")) {
		t.Error("errors.Is should match by code across wrap layers")
	}
	if stderrors.Is(wrapped, New("E003")) {
		t.Error("different codes must not match")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryConfig, "bad value %q", "x")
	if err.Category != CategoryConfig || err.Message != `bad value "x"` {
		t.Errorf("Newf = %+v", err)
	}
}

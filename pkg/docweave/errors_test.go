package docweave

import (
	"errors"
	"strings"
	"testing"
)

func TestDirectiveError(t *testing.T) {
	err := newDirectiveError("{{#if}}", 12, "missing condition")

	if !IsDirectiveError(err) {
		t.Error("IsDirectiveError = false")
	}
	msg := err.Error()
	for _, want := range []string{"{{#if}}", "12", "missing condition"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestMissingVariableError(t *testing.T) {
	err := &MissingVariableError{Path: "Customer.Name"}

	if !IsMissingVariableError(err) {
		t.Error("IsMissingVariableError = false")
	}
	if !strings.Contains(err.Error(), "Customer.Name") {
		t.Errorf("error %q missing path", err.Error())
	}
}

func TestDocumentErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewDocumentError("read", "word/document.xml", cause)

	if !IsDocumentError(err) {
		t.Error("IsDocumentError = false")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	msg := err.Error()
	if !strings.Contains(msg, "read") || !strings.Contains(msg, "word/document.xml") {
		t.Errorf("error %q missing context", msg)
	}
}

func TestMultiError(t *testing.T) {
	m := NewMultiError()
	if m.Err() != nil {
		t.Error("empty collector must yield nil")
	}

	m.Add(nil)
	if m.Len() != 0 {
		t.Error("nil errors must be ignored")
	}

	first := errors.New("first")
	m.Add(first)
	if m.Err() != first {
		t.Error("single error must come back unwrapped")
	}

	m.Add(errors.New("second"))
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
	if !strings.Contains(m.Error(), "2 errors") {
		t.Errorf("message = %q", m.Error())
	}
}

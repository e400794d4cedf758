// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "locate converter executable",
			},
			expected: "failed to locate converter executable",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "locate converter executable",
				Resource:  "/opt/tool/conv",
			},
			expected: "failed to locate converter executable: /opt/tool/conv",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "export document",
				Cause:     errors.New("exit status 47"),
			},
			expected: "failed to export document: exit status 47",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "export document",
				Resource:  "notes.md",
				Cause:     errors.New("output path not writable"),
			},
			expected: "failed to export document: notes.md: output path not writable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap() should return the cause error")
	}

	errNoCause := &ActionableError{Operation: "test"}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{
		Operation: "test",
		Cause:     cause,
	}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions listed",
			err: &ActionableError{
				Operation:   "locate converter executable",
				Resource:    "pandoc",
				Suggestions: []string{"Run 'which pandoc'", "Run 'docport doctor'"},
			},
			verbose:  false,
			contains: []string{"failed to locate converter executable", "• Run 'which pandoc'", "• Run 'docport doctor'"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "verbose includes error chain",
			err: &ActionableError{
				Operation: "export document",
				Cause:     WrapWithOperation(errors.New("root cause"), "spawn converter"),
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. failed to spawn converter: root cause", "2. root cause"},
		},
		{
			name: "non-verbose omits error chain",
			err: &ActionableError{
				Operation: "export document",
				Cause:     errors.New("root cause"),
			},
			verbose:  false,
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Format(%v) missing %q in:\n%s", tt.verbose, want, got)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(got, not) {
					t.Errorf("Format(%v) unexpectedly contains %q in:\n%s", tt.verbose, not, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("stat failed")

	ae := NewErrorContext().
		WithOperation("locate converter executable").
		WithResource("/opt/tool/conv").
		WithSuggestion("Run 'which pandoc' to see what your shell finds").
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil with operation set")
	}
	if ae.Operation != "locate converter executable" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if ae.Resource != "/opt/tool/conv" {
		t.Errorf("Resource = %q", ae.Resource)
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestErrorContext_WithSuggestions(t *testing.T) {
	ae := NewErrorContext().
		WithOperation("export document").
		WithSuggestions("first", "second").
		WithSuggestion("third").
		Build()

	if len(ae.Suggestions) != 3 {
		t.Fatalf("Suggestions = %v, want 3 entries", ae.Suggestions)
	}
}

func TestWrapWithContext(t *testing.T) {
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil, ...) should return nil")
	}

	cause := errors.New("boom")
	ae := WrapWithContext(cause, "create output directory", "/exports")
	if ae.Resource != "/exports" {
		t.Errorf("Resource = %q, want /exports", ae.Resource)
	}
	if !errors.Is(ae, cause) {
		t.Error("wrapped error should match cause")
	}
}

func TestWrapWithOperation(t *testing.T) {
	if WrapWithOperation(nil, "op") != nil {
		t.Error("WrapWithOperation(nil, ...) should return nil")
	}

	cause := errors.New("boom")
	ae := WrapWithOperation(cause, "stage document text")
	if ae.Operation != "stage document text" {
		t.Errorf("Operation = %q", ae.Operation)
	}
	if !errors.Is(ae, cause) {
		t.Error("wrapped error should match cause")
	}
}

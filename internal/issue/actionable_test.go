// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "build"}, "failed to build"},
		{"with resource", &ActionableError{Operation: "build", Resource: "blur"}, "failed to build: blur"},
		{"with cause", &ActionableError{Operation: "load configuration", Cause: errors.New("bad syntax")}, "failed to load configuration: bad syntax"},
		{
			"full context",
			&ActionableError{Operation: "build", Resource: "blur", Cause: errors.New("disk full")},
			"failed to build: blur: disk full",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("generator not found")
	err := NewErrorContext().
		WithOperation("build").
		Wrap(fmt.Errorf("create blur: %w", sentinel)).
		BuildError()
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should reach the sentinel through the cause chain")
	}

	if (&ActionableError{Operation: "build"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "build",
		Resource:    "blur",
		Suggestions: []string{"Check that the output directory is writable"},
		Cause:       fmt.Errorf("write out/blur.h: %w", inner),
	}

	t.Run("terse", func(t *testing.T) {
		t.Parallel()
		got := err.Format(false)
		if !strings.HasPrefix(got, "failed to build: blur: write out/blur.h: permission denied") {
			t.Errorf("Format(false) = %q", got)
		}
		if !strings.Contains(got, "\n  • Check that the output directory is writable") {
			t.Errorf("Format(false) does not list the suggestion: %q", got)
		}
		if strings.Contains(got, "Error chain") {
			t.Errorf("Format(false) must not include the chain: %q", got)
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()
		got := err.Format(true)
		for _, want := range []string{"Error chain:", "1. write out/blur.h: permission denied", "2. permission denied"} {
			if !strings.Contains(got, want) {
				t.Errorf("Format(true) missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("no suggestions", func(t *testing.T) {
		t.Parallel()
		plain := &ActionableError{Operation: "build"}
		if got := plain.Format(true); got != "failed to build" {
			t.Errorf("Format(true) = %q", got)
		}
	})
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("build").
		WithResource("gengen_runtime").
		WithSuggestion("Pass a single target").
		WithSuggestion("").
		WithSuggestion("Run with --verbose").
		Wrap(cause).
		Build()
	if ae == nil {
		t.Fatal("Build() = nil")
	}
	if ae.Operation != "build" || ae.Resource != "gengen_runtime" || !errors.Is(ae.Cause, cause) {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 2 {
		t.Errorf("Suggestions = %q, want empty ones dropped", ae.Suggestions)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	c := NewErrorContext().WithResource("blur").Wrap(errors.New("x"))
	if c.Build() != nil {
		t.Error("Build() without an operation should be nil")
	}
	if err := c.BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want untyped nil", err)
	}
}

func TestErrorContext_BuildCopiesSuggestions(t *testing.T) {
	t.Parallel()

	c := NewErrorContext().WithOperation("build").WithSuggestion("first")
	first := c.Build()
	c.WithSuggestion("second")
	if len(first.Suggestions) != 1 {
		t.Errorf("earlier Build() result changed: %q", first.Suggestions)
	}
	if second := c.Build(); len(second.Suggestions) != 2 {
		t.Errorf("Suggestions = %q", second.Suggestions)
	}
}

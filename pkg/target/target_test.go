// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"x86-64-linux", "x86-64-linux"},
		{"linux-x86-64", "x86-64-linux"},
		{"x86-64-linux-sse41-avx", "x86-64-linux-avx-sse41"},
		{"x86-64-windows-mingw", "x86-64-windows-mingw"},
		{"arm-32-android-neon", "arm-32-android-neon"},
		{"pnacl-32-nacl", "pnacl-32-nacl"},
		{"x86-64-osx-avx-avx", "x86-64-osx-avx"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"unknown token", "x86-64-linux-bogus"},
		{"missing os", "x86-64"},
		{"missing bits", "x86-linux"},
		{"two archs", "x86-arm-64-linux"},
		{"two widths", "x86-32-64-linux"},
		{"two oses", "x86-64-linux-windows"},
		{"host not first", "x86-64-linux-host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, ErrInvalidTarget) {
				t.Errorf("Parse(%q) error does not wrap ErrInvalidTarget: %v", tt.input, err)
			}
		})
	}
}

func TestParseHost(t *testing.T) {
	t.Parallel()

	host := Host()
	got, err := Parse("host")
	if err != nil {
		t.Fatalf("Parse(host) error = %v", err)
	}
	if !got.Equal(host) {
		t.Errorf("Parse(host) = %s, want %s", got, host)
	}

	withDebug, err := Parse("host-debug")
	if err != nil {
		t.Fatalf("Parse(host-debug) error = %v", err)
	}
	if !withDebug.HasFeature(Debug) {
		t.Errorf("Parse(host-debug) lost the debug feature: %s", withDebug)
	}
	if !withDebug.SameBase(host) {
		t.Errorf("Parse(host-debug) = %s, want same base as %s", withDebug, host)
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"x86-64-linux-avx2-fma", "arm-64-ios", "hexagon-32-qurt", "x86-32-windows-mingw"} {
		first := MustParse(s)
		second := MustParse(first.String())
		if !first.Equal(second) {
			t.Errorf("round trip of %q: %s != %s", s, first, second)
		}
	}
}

func TestFeatureSetIsCopyOnWrite(t *testing.T) {
	t.Parallel()

	base := MustParse("x86-64-linux-sse41")
	avx := base.WithFeature(AVX)
	if base.HasFeature(AVX) {
		t.Error("WithFeature mutated the receiver")
	}
	if !avx.HasFeature(AVX) || !avx.HasFeature(SSE41) {
		t.Errorf("WithFeature result = %s, want avx and sse41", avx)
	}

	plain := avx.WithoutFeature(SSE41)
	if !avx.HasFeature(SSE41) {
		t.Error("WithoutFeature mutated the receiver")
	}
	if got := plain.String(); got != "x86-64-linux-avx" {
		t.Errorf("WithoutFeature result = %q, want %q", got, "x86-64-linux-avx")
	}
}

func TestIsWindowsCOFF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"x86-64-windows", true},
		{"x86-64-windows-mingw", false},
		{"x86-64-linux", false},
		{"arm-64-osx", false},
	}
	for _, tt := range tests {
		if got := MustParse(tt.input).IsWindowsCOFF(); got != tt.want {
			t.Errorf("MustParse(%q).IsWindowsCOFF() = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	got, err := New(Linux, X86, 64, SSE41, AVX)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got.String() != "x86-64-linux-avx-sse41" {
		t.Errorf("New() = %s", got)
	}

	if _, err := New(Linux, X86, 16); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("New() with 16 bits error = %v, want ErrInvalidTarget", err)
	}
	if _, err := New("beos", X86, 64); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("New() with unknown OS error = %v, want ErrInvalidTarget", err)
	}
	if _, err := New(Linux, X86, 64, "turbo"); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("New() with unknown feature error = %v, want ErrInvalidTarget", err)
	}
}

func TestSuffix(t *testing.T) {
	t.Parallel()

	if got := MustParse("x86-64-linux-no_asserts").Suffix(); got != "x86_64_linux_no_asserts" {
		t.Errorf("Suffix() = %q", got)
	}
}

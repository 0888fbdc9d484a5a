// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEmitKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		csv         string
		wantKinds   []Kind
		wantUnknown []string
	}{
		{"empty uses defaults", "", []Kind{Header, StaticLibrary}, nil},
		{"single", "o", []Kind{Object}, nil},
		{"several", "h,static_library,stmt", []Kind{Header, StaticLibrary, Stmt}, nil},
		{"every kind", "assembly,bitcode,cpp,h,html,o,static_library,stmt", AllKinds, nil},
		{"unknown ignored", "h,exe,o", []Kind{Header, Object}, []string{"exe"}},
		{"only unknown", "exe", nil, []string{"exe"}},
		{"empty entries skipped", "h,,o,", []Kind{Header, Object}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts, unknown := ParseEmitKinds(tt.csv)
			if got := opts.Kinds(); !reflect.DeepEqual(got, tt.wantKinds) {
				t.Errorf("Kinds() = %v, want %v", got, tt.wantKinds)
			}
			if !reflect.DeepEqual(unknown, tt.wantUnknown) {
				t.Errorf("unknown = %v, want %v", unknown, tt.wantUnknown)
			}
		})
	}
}

func TestParseExtensionOverrides(t *testing.T) {
	t.Parallel()

	got, err := ParseExtensionOverrides(".o=.obj2,,.h=.hpp,.o=.obj3")
	if err != nil {
		t.Fatalf("ParseExtensionOverrides() error = %v", err)
	}
	want := map[string]string{".o": ".obj3", ".h": ".hpp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseExtensionOverrides() = %v, want %v", got, want)
	}

	for _, bad := range []string{".o", ".o=.a=.b"} {
		if _, err := ParseExtensionOverrides(bad); !errors.Is(err, ErrMalformedExtension) {
			t.Errorf("ParseExtensionOverrides(%q) error = %v, want ErrMalformedExtension", bad, err)
		}
	}
}

func TestSplitNamespaces(t *testing.T) {
	t.Parallel()

	ns, simple := SplitNamespaces("a::b::fn")
	if simple != "fn" || !reflect.DeepEqual(ns, []string{"a", "b"}) {
		t.Errorf("SplitNamespaces() = %v, %q", ns, simple)
	}
	ns, simple = SplitNamespaces("fn")
	if simple != "fn" || len(ns) != 0 {
		t.Errorf("SplitNamespaces(fn) = %v, %q", ns, simple)
	}
}

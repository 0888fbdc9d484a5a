// SPDX-License-Identifier: MPL-2.0

package generators

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/pipeline"
)

func newTestRegistry(t *testing.T) *generator.Registry {
	t.Helper()
	r := generator.NewRegistry()
	Register(r)
	return r
}

func argNames(m *pipeline.Module) []string {
	names := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		names[i] = a.Name
	}
	slices.Sort(names)
	return names
}

func TestRegister(t *testing.T) {
	t.Parallel()

	got := newTestRegistry(t).Enumerate()
	if !slices.Equal(got, []string{"brighten", "gradient", "threshold"}) {
		t.Errorf("Enumerate() = %v", got)
	}
}

func TestDefaultRegistryHasSamples(t *testing.T) {
	t.Parallel()

	names := generator.Enumerate()
	for _, want := range []string{"brighten", "gradient", "threshold"} {
		if !slices.Contains(names, want) {
			t.Errorf("DefaultRegistry is missing %q", want)
		}
	}
}

func TestBuildSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values generator.ParamValues
		args   []string
	}{
		{"brighten", generator.ParamValues{"target": "x86-64-linux"}, []string{"brighten", "input", "offset"}},
		{"brighten", generator.ParamValues{"target": "x86-64-linux", "pixel_type": "uint16", "dimensions": "3"}, []string{"brighten", "input", "offset"}},
		{"gradient", generator.ParamValues{"target": "arm-64-android"}, []string{"bias", "gradient", "slope"}},
		{"threshold", generator.ParamValues{"target": "x86-64-osx", "mode": "inverted"}, []string{"input", "threshold_0", "threshold_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g, err := newTestRegistry(t).Create(tt.name, tt.values)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			m, err := generator.BuildModule(g, tt.name, pipeline.LinkageExternal)
			if err != nil {
				t.Fatalf("BuildModule() error = %v", err)
			}
			if got := argNames(m); !slices.Equal(got, tt.args) {
				t.Errorf("arguments = %v, want %v", got, tt.args)
			}
			if m.Target.String() != tt.values["target"] {
				t.Errorf("module target = %s, want %s", m.Target, tt.values["target"])
			}
		})
	}
}

func TestBrightenDimensions(t *testing.T) {
	t.Parallel()

	g, err := newTestRegistry(t).Create("brighten", generator.ParamValues{"target": "x86-64-linux", "dimensions": "3"})
	if err != nil {
		t.Fatal(err)
	}
	m, err := generator.BuildModule(g, "brighten", pipeline.LinkageExternal)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range m.Arguments {
		if a.Kind != pipeline.InputScalar && a.Dimensions != 3 {
			t.Errorf("argument %s has %d dimensions, want 3", a.Name, a.Dimensions)
		}
	}
}

func TestSampleParamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values generator.ParamValues
		want   error
	}{
		{"brighten", generator.ParamValues{"dimensions": "9"}, generator.ErrInvalidParamValue},
		{"threshold", generator.ParamValues{"mode": "fuzzy"}, generator.ErrInvalidParamValue},
		{"gradient", generator.ParamValues{"slope": "2"}, generator.ErrUnknownGeneratorParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestRegistry(t).Create(tt.name, tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("Create() error = %v, want %v", err, tt.want)
			}
		})
	}
}

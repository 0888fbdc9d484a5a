// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"path/filepath"
	"testing"

	"github.com/gengen/gengen/pkg/target"
)

func allKinds() EmitOptions {
	var opts EmitOptions
	for _, k := range AllKinds {
		opts.Set(k)
	}
	return opts
}

func TestComputeBasePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		outputDir    string
		functionName string
		fileBaseName string
		want         string
	}{
		{"simple name", "/tmp", "myfilt", "", filepath.Join("/tmp", "myfilt")},
		{"namespaced", "/tmp", "ns1::ns2::myfilt", "", filepath.Join("/tmp", "myfilt")},
		{"file base wins", "/tmp", "ns::myfilt", "custom", filepath.Join("/tmp", "custom")},
		{"relative dir", "out", "f", "", filepath.Join("out", "f")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeBasePath(tt.outputDir, tt.functionName, tt.fileBaseName); got != tt.want {
				t.Errorf("ComputeBasePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeOutputsExtensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target  string
		wantObj string
		wantLib string
	}{
		{"x86-64-windows", ".obj", ".lib"},
		{"x86-64-windows-mingw", ".o", ".a"},
		{"x86-64-linux", ".o", ".a"},
		{"arm-64-osx", ".o", ".a"},
		{"pnacl-32-nacl", ".bc", ".a"},
		{"pnacl-32-windows", ".bc", ".lib"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()
			out := ComputeOutputs(target.MustParse(tt.target), "base", allKinds())
			if out.ObjectName != "base"+tt.wantObj {
				t.Errorf("ObjectName = %q, want %q", out.ObjectName, "base"+tt.wantObj)
			}
			if out.StaticLibraryName != "base"+tt.wantLib {
				t.Errorf("StaticLibraryName = %q, want %q", out.StaticLibraryName, "base"+tt.wantLib)
			}
			fixed := map[Kind]string{
				Assembly: ".s", Bitcode: ".bc", Header: ".h", CSource: ".cpp",
				Stmt: ".stmt", StmtHTML: ".html",
			}
			for k, ext := range fixed {
				if got := out.Path(k); got != "base"+ext {
					t.Errorf("Path(%s) = %q, want %q", k, got, "base"+ext)
				}
			}
		})
	}
}

func TestComputeOutputsOnlyRequested(t *testing.T) {
	t.Parallel()

	out := ComputeOutputs(target.MustParse("x86-64-linux"), "/tmp/myfilt", DefaultEmitOptions())
	want := []string{"/tmp/myfilt.h", "/tmp/myfilt.a"}
	got := out.Paths()
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if out.ObjectName != "" || out.AssemblyName != "" {
		t.Errorf("unrequested kinds were planned: %+v", out)
	}
}

func TestComputeOutputsExtensionOverride(t *testing.T) {
	t.Parallel()

	opts := allKinds()
	overrides, err := ParseExtensionOverrides(".o=.obj2")
	if err != nil {
		t.Fatalf("ParseExtensionOverrides() error = %v", err)
	}
	opts.Extensions = overrides

	out := ComputeOutputs(target.MustParse("x86-64-linux"), "f", opts)
	if out.ObjectName != "f.obj2" {
		t.Errorf("ObjectName = %q, want f.obj2", out.ObjectName)
	}
	if out.CHeaderName != "f.h" {
		t.Errorf("CHeaderName = %q, want f.h", out.CHeaderName)
	}
	if out.StaticLibraryName != "f.a" {
		t.Errorf("StaticLibraryName = %q, want f.a", out.StaticLibraryName)
	}
}

func TestComputeOutputsBitcodeOverrideAppliesToPNaClObject(t *testing.T) {
	t.Parallel()

	opts := EmitOptions{EmitObject: true, EmitBitcode: true, Extensions: map[string]string{".bc": ".pbc"}}
	out := ComputeOutputs(target.MustParse("pnacl-32-nacl"), "f", opts)
	if out.ObjectName != "f.pbc" || out.BitcodeName != "f.pbc" {
		t.Errorf("got object %q bitcode %q, want both f.pbc", out.ObjectName, out.BitcodeName)
	}
}

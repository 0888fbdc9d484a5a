// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"path/filepath"
	"strings"

	"github.com/gengen/gengen/pkg/target"
)

// namespaceSeparator separates C++ namespaces in a qualified function name.
const namespaceSeparator = "::"

// SplitNamespaces splits "a::b::fn" into ["a", "b"] and "fn".
func SplitNamespaces(qualified string) (namespaces []string, simple string) {
	parts := strings.Split(qualified, namespaceSeparator)
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// ComputeBasePath returns the extension-less path shared by all artifacts of
// one build: outputDir joined with fileBaseName, or with the unqualified
// function name when fileBaseName is empty.
func ComputeBasePath(outputDir, functionName, fileBaseName string) string {
	_, simple := SplitNamespaces(functionName)
	stem := fileBaseName
	if stem == "" {
		stem = simple
	}
	return filepath.Join(outputDir, stem)
}

// ComputeOutputs plans one path per requested artifact kind.
//
// Objects are ".bc" for the portable bitcode architecture, ".obj" for Windows
// targets without MinGW and ".o" otherwise. Static libraries are ".lib" for
// Windows targets without MinGW and ".a" otherwise. Every default extension
// can be replaced through opts.Extensions.
func ComputeOutputs(t target.Target, basePath string, opts EmitOptions) Outputs {
	coff := t.IsWindowsCOFF()
	ext := func(def string) string {
		if repl, ok := opts.Extensions[def]; ok {
			return basePath + repl
		}
		return basePath + def
	}

	var out Outputs
	if opts.EmitObject {
		switch {
		case t.Arch() == target.PNaCl:
			out.ObjectName = ext(".bc")
		case coff:
			out.ObjectName = ext(".obj")
		default:
			out.ObjectName = ext(".o")
		}
	}
	if opts.EmitAssembly {
		out.AssemblyName = ext(".s")
	}
	if opts.EmitBitcode {
		out.BitcodeName = ext(".bc")
	}
	if opts.EmitHeader {
		out.CHeaderName = ext(".h")
	}
	if opts.EmitCSource {
		out.CSourceName = ext(".cpp")
	}
	if opts.EmitStmt {
		out.StmtName = ext(".stmt")
	}
	if opts.EmitStmtHTML {
		out.StmtHTMLName = ext(".html")
	}
	if opts.EmitStaticLibrary {
		if coff {
			out.StaticLibraryName = ext(".lib")
		} else {
			out.StaticLibraryName = ext(".a")
		}
	}
	return out
}

// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Assembly      Kind = "assembly"
	Bitcode       Kind = "bitcode"
	CSource       Kind = "cpp"
	Header        Kind = "h"
	StmtHTML      Kind = "html"
	Object        Kind = "o"
	StaticLibrary Kind = "static_library"
	Stmt          Kind = "stmt"
)

// ErrMalformedExtension is the sentinel error wrapped by MalformedExtensionError.
var ErrMalformedExtension = errors.New("malformed extension override")

// AllKinds lists every artifact kind in the order they are accepted by -e.
var AllKinds = []Kind{Assembly, Bitcode, CSource, Header, StmtHTML, Object, StaticLibrary, Stmt}

type (
	// Kind names one artifact kind as spelled on the command line.
	Kind string

	// EmitOptions selects the artifacts a build writes.
	EmitOptions struct {
		EmitAssembly      bool
		EmitBitcode       bool
		EmitCSource       bool
		EmitHeader        bool
		EmitStmt          bool
		EmitStmtHTML      bool
		EmitObject        bool
		EmitStaticLibrary bool

		// Extensions maps a default extension (".o") to its replacement (".obj2").
		Extensions map[string]string
	}

	// MalformedExtensionError is returned for an -x entry that is not old=new.
	MalformedExtensionError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *MalformedExtensionError) Error() string {
	return fmt.Sprintf("malformed -x option: %q (want .old=.new)", e.Value)
}

// Unwrap returns ErrMalformedExtension for errors.Is() compatibility.
func (e *MalformedExtensionError) Unwrap() error { return ErrMalformedExtension }

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// DefaultEmitOptions returns the selection used when none is given: a static
// library and its header.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{EmitStaticLibrary: true, EmitHeader: true}
}

// Set enables kind k. It reports false if k is not a known kind.
func (o *EmitOptions) Set(k Kind) bool {
	switch k {
	case Assembly:
		o.EmitAssembly = true
	case Bitcode:
		o.EmitBitcode = true
	case CSource:
		o.EmitCSource = true
	case Header:
		o.EmitHeader = true
	case StmtHTML:
		o.EmitStmtHTML = true
	case Object:
		o.EmitObject = true
	case StaticLibrary:
		o.EmitStaticLibrary = true
	case Stmt:
		o.EmitStmt = true
	default:
		return false
	}
	return true
}

// Has reports whether kind k is selected.
func (o EmitOptions) Has(k Kind) bool {
	switch k {
	case Assembly:
		return o.EmitAssembly
	case Bitcode:
		return o.EmitBitcode
	case CSource:
		return o.EmitCSource
	case Header:
		return o.EmitHeader
	case StmtHTML:
		return o.EmitStmtHTML
	case Object:
		return o.EmitObject
	case StaticLibrary:
		return o.EmitStaticLibrary
	case Stmt:
		return o.EmitStmt
	}
	return false
}

// Kinds returns the selected kinds in AllKinds order.
func (o EmitOptions) Kinds() []Kind {
	var kinds []Kind
	for _, k := range AllKinds {
		if o.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// ParseEmitKinds parses a comma-separated -e value.
//
// An empty value yields DefaultEmitOptions. Otherwise only the named kinds
// are selected; unrecognized tokens are returned separately so the caller can
// warn about them, and are otherwise ignored.
func ParseEmitKinds(csv string) (EmitOptions, []string) {
	if csv == "" {
		return DefaultEmitOptions(), nil
	}
	var opts EmitOptions
	var unknown []string
	for _, tok := range strings.Split(csv, ",") {
		if tok == "" {
			continue
		}
		if !opts.Set(Kind(tok)) {
			unknown = append(unknown, tok)
		}
	}
	return opts, unknown
}

// ParseExtensionOverrides parses a comma-separated -x value of .old=.new pairs.
// Empty entries are skipped. Later pairs for the same extension win.
func ParseExtensionOverrides(csv string) (map[string]string, error) {
	overrides := make(map[string]string)
	for _, entry := range strings.Split(csv, ",") {
		if entry == "" {
			continue
		}
		pair := strings.Split(entry, "=")
		if len(pair) != 2 {
			return nil, &MalformedExtensionError{Value: entry}
		}
		overrides[pair[0]] = pair[1]
	}
	return overrides, nil
}

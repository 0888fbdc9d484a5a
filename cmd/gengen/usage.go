// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
)

const usageText = `gengen [-g GENERATOR_NAME] [-f FUNCTION_NAME] [-o OUTPUT_DIR] [-r RUNTIME_NAME] [-e EMIT_OPTIONS] [-x EXTENSION_OPTIONS] [-n FILE_BASE_NAME] target=target-string[,target-string...] [generator_arg=value [...]]

  -e  A comma separated list of files to emit. Accepted values are [assembly, bitcode, cpp, h, html, o, static_library, stmt]. If omitted, default value is [static_library, h].
  -x  A comma separated list of file extension pairs to substitute during file naming, in the form [.old=.new[,.old2=.new2]]
`

var (
	// ErrUsage is the sentinel error wrapped by UsageError.
	ErrUsage = errors.New("usage error")
	// ErrNoGenerators is returned when nothing is registered and no runtime is requested.
	ErrNoGenerators = errors.New("no generators have been registered and not compiling a standalone runtime")
	// ErrAmbiguousGenerator is returned when -g is omitted but several generators exist.
	ErrAmbiguousGenerator = errors.New("-g must be specified if multiple generators are registered")
	// ErrMissingOutputDir is returned when -o is absent.
	ErrMissingOutputDir = errors.New("-o must always be specified")
	// ErrMissingTarget is returned when no target= argument is given.
	ErrMissingTarget = errors.New("target missing")
)

type (
	// UsageError reports a malformed command line. The CLI prints the usage
	// text after it and exits 1.
	UsageError struct {
		Err error
	}

	// MalformedArgError is returned for a bare argument that is not name=value.
	MalformedArgError struct {
		Arg string
	}
)

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Error implements the error interface.
func (e *UsageError) Error() string { return e.Err.Error() }

// Unwrap returns the cause so errors.Is works for both ErrUsage and the cause.
func (e *UsageError) Unwrap() []error { return []error{ErrUsage, e.Err} }

// Error implements the error interface.
func (e *MalformedArgError) Error() string {
	return fmt.Sprintf("malformed generator argument %q (want name=value)", e.Arg)
}

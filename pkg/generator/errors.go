// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"errors"
	"fmt"
	"strings"
)

const (
	categoryFreeParam      = "Param"
	categoryInput          = "Input"
	categoryGeneratorParam = "GeneratorParam"
)

var (
	// ErrInvalidName is returned for names that are not valid identifiers.
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateName is returned when two parameters of one category share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrImplicitParamName is returned for free params without an explicit name.
	ErrImplicitParamName = errors.New("params in generators must have explicit names")
	// ErrMixedParamStyles is returned when a generator declares both inputs and free params.
	ErrMixedParamStyles = errors.New("inputs may not be used with free params in generators")
	// ErrUnknownGenerator is returned by Create for unregistered names.
	ErrUnknownGenerator = errors.New("generator not found")
	// ErrUnknownGeneratorParam is returned when setting a parameter the generator lacks.
	ErrUnknownGeneratorParam = errors.New("generator has no such generator param")
	// ErrInvalidParamValue is returned when a value cannot be parsed or is out of range.
	ErrInvalidParamValue = errors.New("invalid generator param value")
	// ErrInternal is wrapped by every InternalError.
	ErrInternal = errors.New("internal error")
)

type (
	// InvalidNameError is returned when a generator name fails IsValidName.
	InvalidNameError struct {
		Name string
	}

	// ParamError reports a discovery failure for one named parameter.
	ParamError struct {
		Category string
		Name     string
		Err      error
	}

	// MixedParamStylesError names the first free param and the first input
	// of a generator that declares both.
	MixedParamStylesError struct {
		Param string
		Input string
	}

	// UnknownGeneratorError is returned by Create for unregistered names.
	UnknownGeneratorError struct {
		Name      string
		Available []string
	}

	// UnknownParamError is returned when a value names a missing generator param.
	UnknownParamError struct {
		Name string
	}

	// InvalidParamValueError is returned when a generator param rejects a value.
	InvalidParamValueError struct {
		Name   string
		Value  string
		Reason string
	}

	// InternalError is the panic value for violated invariants. It is not
	// meant to be handled; the CLI recovers it only to exit cleanly.
	InternalError struct {
		Msg string
	}
)

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid generator name %q", e.Name)
}

// Unwrap returns ErrInvalidName for errors.Is() compatibility.
func (e *InvalidNameError) Unwrap() error { return ErrInvalidName }

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Category, e.Name, e.Err)
}

// Unwrap returns the sentinel describing the failure.
func (e *ParamError) Unwrap() error { return e.Err }

func (e *MixedParamStylesError) Error() string {
	return fmt.Sprintf("%s %q and %s %q: %v", categoryFreeParam, e.Param, categoryInput, e.Input, ErrMixedParamStyles)
}

// Unwrap returns ErrMixedParamStyles for errors.Is() compatibility.
func (e *MixedParamStylesError) Unwrap() error { return ErrMixedParamStyles }

func (e *UnknownGeneratorError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("generator not found: %s", e.Name)
	}
	return fmt.Sprintf("generator not found: %s (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrUnknownGenerator for errors.Is() compatibility.
func (e *UnknownGeneratorError) Unwrap() error { return ErrUnknownGenerator }

func (e *UnknownParamError) Error() string {
	return fmt.Sprintf("generator has no GeneratorParam named: %s", e.Name)
}

// Unwrap returns ErrUnknownGeneratorParam for errors.Is() compatibility.
func (e *UnknownParamError) Unwrap() error { return ErrUnknownGeneratorParam }

func (e *InvalidParamValueError) Error() string {
	return fmt.Sprintf("invalid value %q for GeneratorParam %s: %s", e.Value, e.Name, e.Reason)
}

// Unwrap returns ErrInvalidParamValue for errors.Is() compatibility.
func (e *InvalidParamValueError) Unwrap() error { return ErrInvalidParamValue }

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

// Unwrap returns ErrInternal for errors.Is() compatibility.
func (e *InternalError) Unwrap() error { return ErrInternal }

func internalf(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

const (
	// TypeInt is a signed integer element type.
	TypeInt TypeCode = iota + 1
	// TypeUInt is an unsigned integer element type.
	TypeUInt
	// TypeFloat is an IEEE floating point element type.
	TypeFloat
	// TypeBool is the one-bit boolean element type.
	TypeBool
)

// ErrUnknownType is the sentinel error wrapped by UnknownTypeError.
var ErrUnknownType = errors.New("unknown type")

// TypeEnumMap lists the element types a type-valued generator parameter accepts.
var TypeEnumMap = map[string]Type{
	"bool":    Bool(),
	"int8":    Int(8),
	"int16":   Int(16),
	"int32":   Int(32),
	"uint8":   UInt(8),
	"uint16":  UInt(16),
	"uint32":  UInt(32),
	"float32": Float(32),
	"float64": Float(64),
}

type (
	// TypeCode is the family of an element type.
	TypeCode int

	// Type is a scalar element type: a family plus a bit width.
	Type struct {
		Code TypeCode
		Bits int
	}

	// UnknownTypeError is returned when a type name is not in TypeEnumMap.
	UnknownTypeError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnknownTypeError) Error() string {
	names := make([]string, 0, len(TypeEnumMap))
	for name := range TypeEnumMap {
		names = append(names, name)
	}
	slices.Sort(names)
	return fmt.Sprintf("unknown type %q (valid: %v)", e.Value, names)
}

// Unwrap returns ErrUnknownType for errors.Is() compatibility.
func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

func Int(bits int) Type   { return Type{Code: TypeInt, Bits: bits} }
func UInt(bits int) Type  { return Type{Code: TypeUInt, Bits: bits} }
func Float(bits int) Type { return Type{Code: TypeFloat, Bits: bits} }
func Bool() Type          { return Type{Code: TypeBool, Bits: 1} }

// ParseType looks a type up by its TypeEnumMap name.
func ParseType(s string) (Type, error) {
	if t, ok := TypeEnumMap[s]; ok {
		return t, nil
	}
	return Type{}, &UnknownTypeError{Value: s}
}

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.Code == 0 }

// String returns the TypeEnumMap spelling, e.g. "uint8" or "float32".
func (t Type) String() string {
	switch t.Code {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int" + strconv.Itoa(t.Bits)
	case TypeUInt:
		return "uint" + strconv.Itoa(t.Bits)
	case TypeFloat:
		return "float" + strconv.Itoa(t.Bits)
	}
	return "void"
}

// CType returns the C spelling of t used in generated headers.
func (t Type) CType() string {
	switch t.Code {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int" + strconv.Itoa(t.Bits) + "_t"
	case TypeUInt:
		return "uint" + strconv.Itoa(t.Bits) + "_t"
	case TypeFloat:
		if t.Bits == 64 {
			return "double"
		}
		return "float"
	}
	return "void"
}

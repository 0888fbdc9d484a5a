// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"fmt"

	"github.com/spf13/cast"
	"golang.org/x/exp/slices"

	"github.com/gengen/gengen/pkg/pipeline"
	"github.com/gengen/gengen/pkg/target"
)

type (
	// Number is the set of types accepted by NewBoundedParam.
	Number interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
			~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
			~float32 | ~float64
	}

	// GeneratorParam is a named compile-time value with a string encoding.
	GeneratorParam[T any] struct {
		name   string
		value  T
		parse  func(string) (T, error)
		format func(T) string
	}

	// generatorParam is the type-erased view the directory keeps.
	generatorParam interface {
		Name() string
		String() string
		// prepare parses s and returns a function that stores the result.
		prepare(s string) (apply func(), err error)
	}
)

// NewGeneratorParam creates a generator param on o with a default value.
// Supported types are the sized and unsized integer types, float32, float64,
// bool, string, pipeline.Type and target.Target; any other T panics with
// *InternalError.
func NewGeneratorParam[T any](o Owner, name string, def T) *GeneratorParam[T] {
	parse, format := codecFor[T]()
	if parse == nil {
		internalf("GeneratorParam %s: unsupported type %T", name, def)
	}
	p := &GeneratorParam[T]{name: name, value: def, parse: parse, format: format}
	ownerBase(o).directory().addGeneratorParam(p)
	return p
}

// NewBoundedParam creates a numeric generator param that rejects values
// outside [lo, hi].
func NewBoundedParam[T Number](o Owner, name string, def, lo, hi T) *GeneratorParam[T] {
	parse, format := codecFor[T]()
	if parse == nil {
		internalf("GeneratorParam %s: unsupported type %T", name, def)
	}
	if def < lo || def > hi {
		internalf("GeneratorParam %s: default %v outside [%v, %v]", name, def, lo, hi)
	}
	bounded := func(s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, err
		}
		if v < lo || v > hi {
			return v, fmt.Errorf("must be in [%v, %v]", lo, hi)
		}
		return v, nil
	}
	p := &GeneratorParam[T]{name: name, value: def, parse: bounded, format: format}
	ownerBase(o).directory().addGeneratorParam(p)
	return p
}

// NewEnumParam creates a generator param whose string forms are the keys of
// values.
func NewEnumParam[T comparable](o Owner, name string, def T, values map[string]T) *GeneratorParam[T] {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parse := func(s string) (T, error) {
		if v, ok := values[s]; ok {
			return v, nil
		}
		var zero T
		return zero, fmt.Errorf("must be one of %v", keys)
	}
	format := func(v T) string {
		for _, k := range keys {
			if values[k] == v {
				return k
			}
		}
		return ""
	}
	if format(def) == "" {
		internalf("GeneratorParam %s: default is not an enum value", name)
	}
	p := &GeneratorParam[T]{name: name, value: def, parse: parse, format: format}
	ownerBase(o).directory().addGeneratorParam(p)
	return p
}

// Name returns the param name.
func (p *GeneratorParam[T]) Name() string { return p.name }

// Value returns the current value.
func (p *GeneratorParam[T]) Value() T { return p.value }

// String returns the string encoding of the current value.
func (p *GeneratorParam[T]) String() string { return p.format(p.value) }

// Set parses s and stores it.
func (p *GeneratorParam[T]) Set(s string) error {
	apply, err := p.prepare(s)
	if err != nil {
		return err
	}
	apply()
	return nil
}

func (p *GeneratorParam[T]) prepare(s string) (func(), error) {
	v, err := p.parse(s)
	if err != nil {
		return nil, &InvalidParamValueError{Name: p.name, Value: s, Reason: err.Error()}
	}
	return func() { p.value = v }, nil
}

// codecFor returns the parser and formatter for T, or nils when T is not a
// supported generator param type.
func codecFor[T any]() (func(string) (T, error), func(T) string) {
	var zero T
	switch any(zero).(type) {
	case int:
		return castParser[T](cast.ToIntE), castFormat[T]
	case int8:
		return castParser[T](checkedInt[int8]), castFormat[T]
	case int16:
		return castParser[T](checkedInt[int16]), castFormat[T]
	case int32:
		return castParser[T](checkedInt[int32]), castFormat[T]
	case int64:
		return castParser[T](cast.ToInt64E), castFormat[T]
	case uint:
		return castParser[T](cast.ToUintE), castFormat[T]
	case uint8:
		return castParser[T](checkedUint[uint8]), castFormat[T]
	case uint16:
		return castParser[T](checkedUint[uint16]), castFormat[T]
	case uint32:
		return castParser[T](checkedUint[uint32]), castFormat[T]
	case uint64:
		return castParser[T](cast.ToUint64E), castFormat[T]
	case float32:
		return castParser[T](cast.ToFloat32E), castFormat[T]
	case float64:
		return castParser[T](cast.ToFloat64E), castFormat[T]
	case bool:
		return castParser[T](cast.ToBoolE), castFormat[T]
	case string:
		return castParser[T](cast.ToStringE), castFormat[T]
	case pipeline.Type:
		return stringParser[T](pipeline.ParseType), func(v T) string { return any(v).(pipeline.Type).String() }
	case target.Target:
		return stringParser[T](target.Parse), func(v T) string { return any(v).(target.Target).String() }
	}
	return nil, nil
}

func castParser[T, V any](conv func(any) (V, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := conv(s)
		if err != nil {
			var zero T
			return zero, err
		}
		return any(v).(T), nil
	}
}

// checkedInt converts through int64 and rejects values that do not fit V.
func checkedInt[V int8 | int16 | int32](in any) (V, error) {
	v, err := cast.ToInt64E(in)
	if err != nil {
		return 0, err
	}
	if int64(V(v)) != v {
		return 0, fmt.Errorf("%d overflows %T", v, V(0))
	}
	return V(v), nil
}

// checkedUint converts through uint64 and rejects values that do not fit V.
func checkedUint[V uint8 | uint16 | uint32](in any) (V, error) {
	v, err := cast.ToUint64E(in)
	if err != nil {
		return 0, err
	}
	if uint64(V(v)) != v {
		return 0, fmt.Errorf("%d overflows %T", v, V(0))
	}
	return V(v), nil
}

func stringParser[T, V any](conv func(string) (V, error)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := conv(s)
		if err != nil {
			var zero T
			return zero, err
		}
		return any(v).(T), nil
	}
}

func castFormat[T any](v T) string { return cast.ToString(v) }

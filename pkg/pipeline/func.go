// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

// ErrFuncRedefined is returned when Define is called on an already defined Func.
var ErrFuncRedefined = errors.New("func already defined")

// Func is a named, pure definition over a list of dimension variables. A
// definition may produce a tuple of values, one per output type.
type Func struct {
	name   string
	args   []Var
	values []Expr
}

// NewFunc returns an undefined Func.
func NewFunc(name string) *Func { return &Func{name: name} }

// Name returns the Func name.
func (f *Func) Name() string { return f.name }

// Defined reports whether Define has been called.
func (f *Func) Defined() bool { return len(f.values) > 0 }

// Dimensions returns the number of dimension variables.
func (f *Func) Dimensions() int { return len(f.args) }

// Args returns the dimension variables.
func (f *Func) Args() []Var { return append([]Var(nil), f.args...) }

// Values returns the defining expressions.
func (f *Func) Values() []Expr { return append([]Expr(nil), f.values...) }

// OutputTypes returns the element type of each tuple value.
func (f *Func) OutputTypes() []Type {
	types := make([]Type, len(f.values))
	for i, v := range f.values {
		types[i] = v.Type()
	}
	return types
}

// Define sets the pure definition of f.
func (f *Func) Define(args []Var, values ...Expr) error {
	if f.Defined() {
		return fmt.Errorf("%w: %s", ErrFuncRedefined, f.name)
	}
	if len(values) == 0 {
		return fmt.Errorf("func %s: definition needs at least one value", f.name)
	}
	for i, v := range values {
		if !v.Defined() {
			return fmt.Errorf("func %s: value %d is undefined", f.name, i)
		}
	}
	f.args = append([]Var(nil), args...)
	f.values = append([]Expr(nil), values...)
	return nil
}

// MustDefine is Define that panics on error, for use in generator bodies
// where the definition is static.
func (f *Func) MustDefine(args []Var, values ...Expr) *Func {
	if err := f.Define(args, values...); err != nil {
		panic(err)
	}
	return f
}

// Call reads the first value of f at the given coordinates.
func (f *Func) Call(args ...Expr) Expr { return f.CallElement(0, args...) }

// CallElement reads tuple value i of f at the given coordinates.
func (f *Func) CallElement(i int, args ...Expr) Expr {
	var t Type
	if i < len(f.values) {
		t = f.values[i].Type()
	}
	text := f.name + "(" + joinExprs(args) + ")"
	if len(f.values) > 1 {
		text += fmt.Sprintf("[%d]", i)
	}
	return Expr{typ: t, text: text, calls: mergeCalls([]*Func{f}, collectCalls(args))}
}

// producers returns the Funcs directly read by f's definition.
func (f *Func) producers() []*Func {
	var out []*Func
	for _, v := range f.values {
		out = mergeCalls(out, v.calls)
	}
	return out
}

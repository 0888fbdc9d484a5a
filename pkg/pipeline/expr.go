// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"strconv"
	"strings"
)

type (
	// Expr is a typed, printable expression term. The zero Expr is undefined.
	Expr struct {
		typ  Type
		text string
		// calls records the functions this term reads from, for lowering order.
		calls []*Func
	}

	// Var is a pure dimension variable of a Func definition.
	Var struct {
		name string
	}
)

// NewVar returns a named dimension variable.
func NewVar(name string) Var { return Var{name: name} }

// ImplicitVar returns the i-th implicit variable, spelled "_i".
func ImplicitVar(i int) Var { return Var{name: "_" + strconv.Itoa(i)} }

// Name returns the variable name.
func (v Var) Name() string { return v.name }

// Expr returns v as a 32-bit integer expression.
func (v Var) Expr() Expr { return Expr{typ: Int(32), text: v.name} }

// IntConst returns a 32-bit integer constant.
func IntConst(v int) Expr { return Expr{typ: Int(32), text: strconv.Itoa(v)} }

// FloatConst returns a 32-bit float constant.
func FloatConst(v float64) Expr {
	return Expr{typ: Float(32), text: strconv.FormatFloat(v, 'g', -1, 32) + "f"}
}

// BoolConst returns a boolean constant.
func BoolConst(v bool) Expr { return Expr{typ: Bool(), text: strconv.FormatBool(v)} }

// Variable returns a named scalar of type t.
func Variable(t Type, name string) Expr { return Expr{typ: t, text: name} }

// Defined reports whether e holds a term.
func (e Expr) Defined() bool { return e.text != "" }

// Type returns the element type of e.
func (e Expr) Type() Type { return e.typ }

// String returns the printed term.
func (e Expr) String() string { return e.text }

func binary(op string, a, b Expr) Expr {
	return Expr{
		typ:   a.typ,
		text:  "(" + a.text + " " + op + " " + b.text + ")",
		calls: mergeCalls(a.calls, b.calls),
	}
}

func Add(a, b Expr) Expr { return binary("+", a, b) }
func Sub(a, b Expr) Expr { return binary("-", a, b) }
func Mul(a, b Expr) Expr { return binary("*", a, b) }
func Div(a, b Expr) Expr { return binary("/", a, b) }

// Min returns the smaller of a and b.
func Min(a, b Expr) Expr {
	return Expr{typ: a.typ, text: "min(" + a.text + ", " + b.text + ")", calls: mergeCalls(a.calls, b.calls)}
}

// Max returns the larger of a and b.
func Max(a, b Expr) Expr {
	return Expr{typ: a.typ, text: "max(" + a.text + ", " + b.text + ")", calls: mergeCalls(a.calls, b.calls)}
}

// Cast converts e to type t.
func Cast(t Type, e Expr) Expr {
	return Expr{typ: t, text: t.String() + "(" + e.text + ")", calls: e.calls}
}

// callParameter reads buffer parameter p at the given coordinates.
func callParameter(p *Parameter, args []Expr) Expr {
	return Expr{typ: p.Type(), text: p.Name() + "(" + joinExprs(args) + ")", calls: collectCalls(args)}
}

func joinExprs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.text
	}
	return strings.Join(parts, ", ")
}

func collectCalls(args []Expr) []*Func {
	var calls []*Func
	for _, a := range args {
		calls = mergeCalls(calls, a.calls)
	}
	return calls
}

func mergeCalls(a, b []*Func) []*Func {
	out := append([]*Func(nil), a...)
	for _, f := range b {
		seen := false
		for _, g := range out {
			if g == f {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, f)
		}
	}
	return out
}

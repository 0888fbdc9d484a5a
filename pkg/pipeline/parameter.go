// SPDX-License-Identifier: MPL-2.0

package pipeline

// Parameter is an external binding of a pipeline: a scalar value or a buffer
// supplied by the caller of the generated function.
type Parameter struct {
	name         string
	explicitName bool
	buffer       bool
	typ          Type
	dims         int

	scalarDefault Expr
	scalarMin     Expr
	scalarMax     Expr
}

// NewParameter returns a parameter. explicitName records whether the name was
// chosen by the author rather than synthesized.
func NewParameter(t Type, isBuffer bool, dims int, name string, explicitName bool) *Parameter {
	return &Parameter{name: name, explicitName: explicitName, buffer: isBuffer, typ: t, dims: dims}
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// IsExplicitName reports whether the author chose the name.
func (p *Parameter) IsExplicitName() bool { return p.explicitName }

// IsBuffer reports whether the parameter is a buffer rather than a scalar.
func (p *Parameter) IsBuffer() bool { return p.buffer }

// Type returns the scalar type, or the element type of a buffer.
func (p *Parameter) Type() Type { return p.typ }

// Dimensions returns the dimensionality of a buffer; scalars have none.
func (p *Parameter) Dimensions() int { return p.dims }

// ScalarExpr returns the default value of a scalar parameter.
func (p *Parameter) ScalarExpr() Expr { return p.scalarDefault }

// MinValue returns the lower bound of a scalar parameter, if any.
func (p *Parameter) MinValue() Expr { return p.scalarMin }

// MaxValue returns the upper bound of a scalar parameter, if any.
func (p *Parameter) MaxValue() Expr { return p.scalarMax }

// SetScalarExpr sets the default value of a scalar parameter.
func (p *Parameter) SetScalarExpr(e Expr) { p.scalarDefault = e }

// SetRange sets the bounds of a scalar parameter. Undefined Exprs leave a side open.
func (p *Parameter) SetRange(lo, hi Expr) {
	p.scalarMin = lo
	p.scalarMax = hi
}

// Variable returns the scalar parameter as an expression.
func (p *Parameter) Variable() Expr { return Variable(p.typ, p.name) }

// Call reads a buffer parameter at the given coordinates.
func (p *Parameter) Call(args ...Expr) Expr { return callParameter(p, args) }

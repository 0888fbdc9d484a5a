// SPDX-License-Identifier: MPL-2.0

package pipeline

const (
	// InputScalar is a scalar passed by value.
	InputScalar ArgumentKind = iota
	// InputBuffer is a buffer read by the pipeline.
	InputBuffer
	// OutputBuffer is a buffer written by the pipeline.
	OutputBuffer
)

type (
	// ArgumentKind tells how an Argument is passed to the generated function.
	ArgumentKind int

	// Argument describes one parameter of a generated function.
	Argument struct {
		Name       string
		Kind       ArgumentKind
		Type       Type
		Dimensions int

		// Default, Min and Max are only set for scalar inputs.
		Default Expr
		Min     Expr
		Max     Expr
	}
)

// String returns a lower-case name for the kind.
func (k ArgumentKind) String() string {
	switch k {
	case InputScalar:
		return "input_scalar"
	case InputBuffer:
		return "input_buffer"
	case OutputBuffer:
		return "output_buffer"
	}
	return "unknown"
}

// IsBuffer reports whether the argument is passed as a buffer.
func (a Argument) IsBuffer() bool { return a.Kind != InputScalar }

// ArgumentFromParameter projects an input parameter into an Argument.
func ArgumentFromParameter(p *Parameter) Argument {
	arg := Argument{
		Name:       p.Name(),
		Kind:       InputScalar,
		Type:       p.Type(),
		Dimensions: p.Dimensions(),
	}
	if p.IsBuffer() {
		arg.Kind = InputBuffer
		return arg
	}
	arg.Default = p.ScalarExpr()
	arg.Min = p.MinValue()
	arg.Max = p.MaxValue()
	return arg
}

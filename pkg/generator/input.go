// SPDX-License-Identifier: MPL-2.0

package generator

import "github.com/gengen/gengen/pkg/pipeline"

type (
	// InputBuffer is a buffer input of a generator. Inside BuildPipeline it
	// is read through Func or Call.
	InputBuffer struct {
		name      string
		declType  pipeline.Type
		declDims  int
		typeParam *GeneratorParam[pipeline.Type]
		dimsParam *GeneratorParam[int]

		initialized bool
		param       *pipeline.Parameter
		fn          *pipeline.Func
	}

	// InputScalar is a scalar input of a generator.
	InputScalar struct {
		name     string
		typ      pipeline.Type
		def      pipeline.Expr
		min, max pipeline.Expr

		initialized bool
		param       *pipeline.Parameter
		expr        pipeline.Expr
	}
)

// NewInputBuffer creates a buffer input on o with a declared element type
// and dimensionality.
func NewInputBuffer(o Owner, name string, t pipeline.Type, dims int) *InputBuffer {
	in := &InputBuffer{name: name, declType: t, declDims: dims}
	ownerBase(o).directory().addInput(in)
	return in
}

// WithTypeParam makes the element type follow p instead of the declared type.
func (in *InputBuffer) WithTypeParam(p *GeneratorParam[pipeline.Type]) *InputBuffer {
	in.typeParam = p
	return in
}

// WithDimensionsParam makes the dimensionality follow p. Negative values
// count as zero; use NewBoundedParam to reject them up front.
func (in *InputBuffer) WithDimensionsParam(p *GeneratorParam[int]) *InputBuffer {
	in.dimsParam = p
	return in
}

// Name returns the input name.
func (in *InputBuffer) Name() string { return in.name }

// Type returns the effective element type.
func (in *InputBuffer) Type() pipeline.Type { return in.Parameter().Type() }

// Dimensions returns the effective dimensionality.
func (in *InputBuffer) Dimensions() int { return in.Parameter().Dimensions() }

// Parameter returns the buffer parameter bound for the current discovery cycle.
func (in *InputBuffer) Parameter() *pipeline.Parameter {
	in.initialize()
	return in.param
}

// Func returns the Func "<name>_im" that reads the buffer over implicit vars.
func (in *InputBuffer) Func() *pipeline.Func {
	in.initialize()
	return in.fn
}

// Call reads the input at the given coordinates.
func (in *InputBuffer) Call(args ...pipeline.Expr) pipeline.Expr {
	return in.Func().Call(args...)
}

func (in *InputBuffer) initialize() {
	if in.initialized {
		return
	}
	t, dims := in.declType, in.declDims
	if in.typeParam != nil {
		t = in.typeParam.Value()
	}
	if in.dimsParam != nil {
		dims = max(in.dimsParam.Value(), 0)
	}
	in.param = pipeline.NewParameter(t, true, dims, in.name, true)

	vars := make([]pipeline.Var, dims)
	coords := make([]pipeline.Expr, dims)
	for i := range dims {
		vars[i] = pipeline.ImplicitVar(i)
		coords[i] = vars[i].Expr()
	}
	in.fn = pipeline.NewFunc(in.name+"_im").MustDefine(vars, in.param.Call(coords...))
	in.initialized = true
}

func (in *InputBuffer) resetInit() { in.initialized = false }

// NewInputScalar creates a scalar input on o.
func NewInputScalar(o Owner, name string, t pipeline.Type) *InputScalar {
	in := &InputScalar{name: name, typ: t}
	ownerBase(o).directory().addInput(in)
	return in
}

// WithDefault sets the default value reported in the argument list.
func (in *InputScalar) WithDefault(e pipeline.Expr) *InputScalar {
	in.def = e
	return in
}

// WithRange sets the bounds reported in the argument list.
func (in *InputScalar) WithRange(lo, hi pipeline.Expr) *InputScalar {
	in.min, in.max = lo, hi
	return in
}

// Name returns the input name.
func (in *InputScalar) Name() string { return in.name }

// Type returns the element type.
func (in *InputScalar) Type() pipeline.Type { return in.typ }

// Parameter returns the scalar parameter bound for the current discovery cycle.
func (in *InputScalar) Parameter() *pipeline.Parameter {
	in.initialize()
	return in.param
}

// Expr returns the symbolic scalar value.
func (in *InputScalar) Expr() pipeline.Expr {
	in.initialize()
	return in.expr
}

func (in *InputScalar) initialize() {
	if in.initialized {
		return
	}
	in.param = pipeline.NewParameter(in.typ, false, 0, in.name, true)
	in.param.SetScalarExpr(in.def)
	in.param.SetRange(in.min, in.max)
	in.expr = in.param.Variable()
	in.initialized = true
}

func (in *InputScalar) resetInit() { in.initialized = false }

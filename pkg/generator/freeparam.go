// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"strconv"
	"sync/atomic"

	"github.com/gengen/gengen/pkg/pipeline"
)

// implicitNames numbers the names given to unnamed free params.
var implicitNames atomic.Int64

type (
	// Param is a free scalar parameter. Generators written with Params may
	// not also declare inputs.
	Param struct {
		param *pipeline.Parameter
	}

	// ImageParam is a free buffer parameter.
	ImageParam struct {
		param *pipeline.Parameter
	}
)

// NewParam creates a scalar free param on o. An empty name yields a
// synthesized, non-explicit name that discovery rejects.
func NewParam(o Owner, name string, t pipeline.Type) *Param {
	p := &Param{param: newFreeParameter(t, false, 0, name)}
	ownerBase(o).directory().addFreeParam(p)
	return p
}

// NewImageParam creates a buffer free param on o.
func NewImageParam(o Owner, name string, t pipeline.Type, dims int) *ImageParam {
	p := &ImageParam{param: newFreeParameter(t, true, dims, name)}
	ownerBase(o).directory().addFreeParam(p)
	return p
}

func newFreeParameter(t pipeline.Type, isBuffer bool, dims int, name string) *pipeline.Parameter {
	if name == "" {
		return pipeline.NewParameter(t, isBuffer, dims, "p"+strconv.FormatInt(implicitNames.Add(1)-1, 10), false)
	}
	return pipeline.NewParameter(t, isBuffer, dims, name, true)
}

// Name returns the param name.
func (p *Param) Name() string { return p.param.Name() }

// Parameter returns the underlying parameter.
func (p *Param) Parameter() *pipeline.Parameter { return p.param }

// Expr returns the param as a symbolic scalar.
func (p *Param) Expr() pipeline.Expr { return p.param.Variable() }

// SetDefault sets the default value.
func (p *Param) SetDefault(e pipeline.Expr) *Param {
	p.param.SetScalarExpr(e)
	return p
}

// SetRange sets the bounds.
func (p *Param) SetRange(lo, hi pipeline.Expr) *Param {
	p.param.SetRange(lo, hi)
	return p
}

// Name returns the param name.
func (p *ImageParam) Name() string { return p.param.Name() }

// Parameter returns the underlying parameter.
func (p *ImageParam) Parameter() *pipeline.Parameter { return p.param }

// Dimensions returns the buffer dimensionality.
func (p *ImageParam) Dimensions() int { return p.param.Dimensions() }

// Call reads the buffer at the given coordinates.
func (p *ImageParam) Call(args ...pipeline.Expr) pipeline.Expr { return p.param.Call(args...) }

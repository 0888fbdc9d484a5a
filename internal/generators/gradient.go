// SPDX-License-Identifier: MPL-2.0

package generators

import (
	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/pipeline"
)

// Gradient is written in the older free-param style: its arguments are
// plain params, one of which only exists once the pipeline is built.
type Gradient struct {
	generator.Base

	slope *generator.Param
	bias  *generator.Param
}

// NewGradient returns a Gradient with its slope param declared.
func NewGradient() *Gradient {
	g := &Gradient{}
	g.slope = generator.NewParam(g, "slope", pipeline.Float(32)).SetDefault(pipeline.FloatConst(1))
	return g
}

func (g *Gradient) BuildPipeline() (*pipeline.Pipeline, error) {
	if g.bias == nil {
		g.bias = generator.NewParam(g, "bias", pipeline.Float(32)).SetDefault(pipeline.FloatConst(0))
	}
	x, y := pipeline.NewVar("x"), pipeline.NewVar("y")
	ramp := pipeline.Cast(pipeline.Float(32), pipeline.Add(x.Expr(), y.Expr()))
	out := pipeline.NewFunc("gradient")
	if err := out.Define([]pipeline.Var{x, y}, pipeline.Add(pipeline.Mul(ramp, g.slope.Expr()), g.bias.Expr())); err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(out), nil
}

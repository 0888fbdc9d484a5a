// SPDX-License-Identifier: MPL-2.0

package generators

import (
	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/pipeline"
)

// Threshold maps a uint8 image to 0 or 255 and also returns the input
// unchanged, so its output is a tuple.
type Threshold struct {
	generator.Base

	level *generator.GeneratorParam[int]
	mode  *generator.GeneratorParam[string]

	input *generator.InputBuffer
}

// NewThreshold returns a Threshold at level 128 in "binary" mode.
func NewThreshold() *Threshold {
	g := &Threshold{}
	g.level = generator.NewBoundedParam(g, "level", 128, 0, 255)
	g.mode = generator.NewEnumParam(g, "mode", "binary", map[string]string{
		"binary":   "binary",
		"inverted": "inverted",
	})
	g.input = generator.NewInputBuffer(g, "input", pipeline.UInt(8), 2)
	return g
}

func (g *Threshold) BuildPipeline() (*pipeline.Pipeline, error) {
	x, y := pipeline.NewVar("x"), pipeline.NewVar("y")
	px := pipeline.Cast(pipeline.Int(32), g.input.Call(x.Expr(), y.Expr()))

	// min(max(px - level + 1, 0), 1) is 1 at or above the level, else 0.
	above := pipeline.Min(pipeline.Max(pipeline.Sub(px, pipeline.IntConst(g.level.Value()-1)), pipeline.IntConst(0)), pipeline.IntConst(1))
	if g.mode.Value() == "inverted" {
		above = pipeline.Sub(pipeline.IntConst(1), above)
	}
	mask := pipeline.Cast(pipeline.UInt(8), pipeline.Mul(above, pipeline.IntConst(255)))

	out := pipeline.NewFunc("threshold")
	if err := out.Define([]pipeline.Var{x, y}, mask, g.input.Call(x.Expr(), y.Expr())); err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(out), nil
}

// SPDX-License-Identifier: MPL-2.0

package generators

import (
	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/pipeline"
)

// Brighten adds a scalar offset to every pixel of an image, clamped to the
// range of the pixel type.
type Brighten struct {
	generator.Base

	pixelType *generator.GeneratorParam[pipeline.Type]
	dims      *generator.GeneratorParam[int]

	input  *generator.InputBuffer
	offset *generator.InputScalar
}

// NewBrighten returns a Brighten with uint8 2D input.
func NewBrighten() *Brighten {
	g := &Brighten{}
	g.pixelType = generator.NewGeneratorParam(g, "pixel_type", pipeline.UInt(8))
	g.dims = generator.NewBoundedParam(g, "dimensions", 2, 1, 4)
	g.input = generator.NewInputBuffer(g, "input", pipeline.UInt(8), 2).
		WithTypeParam(g.pixelType).
		WithDimensionsParam(g.dims)
	g.offset = generator.NewInputScalar(g, "offset", pipeline.Int(32)).
		WithDefault(pipeline.IntConst(0)).
		WithRange(pipeline.IntConst(-255), pipeline.IntConst(255))
	return g
}

func (g *Brighten) BuildPipeline() (*pipeline.Pipeline, error) {
	vars := make([]pipeline.Var, g.dims.Value())
	coords := make([]pipeline.Expr, len(vars))
	for i := range vars {
		vars[i] = pipeline.ImplicitVar(i)
		coords[i] = vars[i].Expr()
	}

	t := g.pixelType.Value()
	sum := pipeline.Add(pipeline.Cast(pipeline.Int(32), g.input.Call(coords...)), g.offset.Expr())
	clamped := pipeline.Max(pipeline.Min(sum, pipeline.IntConst(255)), pipeline.IntConst(0))

	out := pipeline.NewFunc("brighten")
	if err := out.Define(vars, pipeline.Cast(t, clamped)); err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(out), nil
}

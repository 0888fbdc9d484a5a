// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/pipeline"
)

// BuildModule discovers g's parameters, builds its pipeline and lowers it for
// g's target. Building the pipeline may create or rename free params, so
// discovery is repeated when g has any; inputs are not rediscovered.
func BuildModule(g Generator, functionName string, linkage pipeline.Linkage) (*pipeline.Module, error) {
	b := g.GeneratorBase()
	if err := b.buildParams(); err != nil {
		return nil, err
	}
	p, err := g.BuildPipeline()
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	if p == nil {
		internalf("BuildPipeline returned a nil pipeline")
	}
	if len(b.filterParams) > 0 {
		if err := b.rebuildParams(); err != nil {
			return nil, err
		}
	}
	args, err := b.GetFilterArguments()
	if err != nil {
		return nil, err
	}
	t := b.Target()
	slog.Debug("compiling module", "function", functionName, "target", t.String(), "arguments", len(args))
	return p.CompileToModule(args, functionName, t, linkage)
}

// EmitFilter builds g and writes the artifacts selected by opts under
// outputDir. The file stem is fileBaseName, or the unqualified function name.
func EmitFilter(g Generator, outputDir, functionName, fileBaseName string, opts artifact.EmitOptions) error {
	basePath := artifact.ComputeBasePath(outputDir, functionName, fileBaseName)
	m, err := BuildModule(g, functionName, pipeline.LinkageExternal)
	if err != nil {
		return err
	}
	return m.Compile(artifact.ComputeOutputs(m.Target, basePath, opts))
}

// FilterOutputTypes builds g's pipeline and describes its outputs as
// OutputBuffer arguments named result_0, result_1 and so on.
func FilterOutputTypes(g Generator) ([]pipeline.Argument, error) {
	p, err := g.BuildPipeline()
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	if p == nil {
		internalf("BuildPipeline returned a nil pipeline")
	}
	var out []pipeline.Argument
	for _, f := range p.Outputs() {
		for _, t := range f.OutputTypes() {
			out = append(out, pipeline.Argument{
				Name:       "result_" + strconv.Itoa(len(out)),
				Kind:       pipeline.OutputBuffer,
				Type:       t,
				Dimensions: f.Dimensions(),
			})
		}
	}
	return out, nil
}

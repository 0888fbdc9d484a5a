// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"log/slog"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/target"
)

// RuntimeModuleName is the name of the standalone runtime module.
const RuntimeModuleName = "gengen_runtime"

// NewRuntimeModule returns the standalone runtime module for t.
func NewRuntimeModule(t target.Target) *Module {
	return &Module{Name: RuntimeModuleName, Target: t, Linkage: LinkageExternal, Runtime: true}
}

// CompileStandaloneRuntime writes the runtime support code for t. Generators
// compiled with their own copy of the runtime do not need it.
func CompileStandaloneRuntime(outputs artifact.Outputs, t target.Target) error {
	if t.IsZero() {
		return errors.New("runtime target must not be empty")
	}
	slog.Debug("compiling standalone runtime", "target", t.String())
	return NewRuntimeModule(t).Compile(outputs)
}

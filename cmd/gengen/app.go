// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/gengen/gengen/internal/config"
	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/target"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; the root command's RunE delegates to it.
	App struct {
		Config   ConfigProvider
		Registry *generator.Registry
		stdout   io.Writer
		stderr   io.Writer

		// verbose and issueStyle are resolved per run from flags and config.
		verbose    bool
		issueStyle string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Registry *generator.Registry
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// BuildRequest is one fully resolved driver invocation.
	BuildRequest struct {
		// GeneratorName is empty when only the runtime is built.
		GeneratorName string
		FunctionName  string
		OutputDir     string
		// RuntimeName, when set, builds the standalone runtime under that name.
		RuntimeName  string
		FileBaseName string
		Emit         artifact.EmitOptions
		// Targets keeps command-line order; the first one names the outputs.
		Targets []target.Target
		// Params holds every name=value argument, target included.
		Params      generator.ParamValues
		MaxParallel int
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = generator.DefaultRegistry
	}
	return &App{
		Config:     deps.Config,
		Registry:   deps.Registry,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		issueStyle: string(config.ColorSchemeAuto),
	}
}

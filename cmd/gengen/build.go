// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"strings"

	"github.com/sourcegraph/conc/panics"
	"github.com/spf13/cobra"

	"github.com/gengen/gengen/internal/config"
	"github.com/gengen/gengen/internal/issue"
	"github.com/gengen/gengen/internal/multitarget"
	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/generator"
	"github.com/gengen/gengen/pkg/pipeline"
	"github.com/gengen/gengen/pkg/platform"
	"github.com/gengen/gengen/pkg/target"
	"github.com/gengen/gengen/pkg/types"
)

// generatorProducer builds one module per target from a fresh generator
// instance, so params bound at construction never leak between targets.
type generatorProducer struct {
	registry *generator.Registry
	name     string
	params   generator.ParamValues
}

// Build creates the generator with target set to t and lowers it.
func (p *generatorProducer) Build(_ context.Context, functionName string, t target.Target) (*pipeline.Module, error) {
	values := maps.Clone(p.params)
	values[generator.TargetParamName] = t.String()

	g, err := p.registry.Create(p.name, values)
	if err != nil {
		return nil, err
	}
	return generator.BuildModule(g, functionName, pipeline.LinkageExternal)
}

// run is the root command's RunE. Internal errors raised as panics by
// generator code, including those re-raised by the multitarget pool, are
// turned into an exit-1 error here.
func (a *App) run(cmd *cobra.Command, f rootFlags, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			internal := internalErrorFrom(r)
			if internal == nil {
				panic(r)
			}
			err = newServiceError(internal, issue.InternalErrorId, "")
		}
	}()

	ctx := cmd.Context()
	cfg, err := a.loadConfig(ctx, f.configFile)
	if err != nil {
		return err
	}

	a.verbose = f.verbose || cfg.UI.Verbose
	a.issueStyle = string(cfg.UI.ColorScheme)
	slog.SetDefault(newLogger(a.stderr, a.verbose))

	req, err := a.resolveRequest(f, args, cmd.Flags().Changed("emit"), cfg)
	if err != nil {
		return err
	}
	if err := a.build(ctx, req); err != nil {
		if errors.Is(err, context.Canceled) {
			return &ExitError{Code: types.ExitInterrupted, Err: err}
		}
		return err
	}
	return nil
}

// loadConfig loads the config file. A broken file named by --config is an
// error; a broken implicit one only warns and falls back to defaults.
func (a *App) loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(path)})
	if err == nil {
		return cfg, nil
	}
	if path != "" {
		return nil, newServiceError(err, issue.ConfigLoadFailedId, "")
	}
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
	return config.DefaultConfig(), nil
}

// resolveRequest walks the command line the way the driver always has:
// bare args, generator selection, function name, output dir, targets, then
// emit kinds and extension overrides.
func (a *App) resolveRequest(f rootFlags, args []string, emitSet bool, cfg *config.Config) (BuildRequest, error) {
	req := BuildRequest{
		GeneratorName: f.generator,
		FunctionName:  f.function,
		OutputDir:     f.outputDir,
		RuntimeName:   f.runtime,
		FileBaseName:  f.fileBase,
		Params:        generator.ParamValues{},
		MaxParallel:   cfg.Build.MaxParallel,
	}

	for _, arg := range args {
		kv := strings.Split(arg, "=")
		if len(kv) != 2 || kv[0] == "" || kv[1] == "" {
			return req, &UsageError{Err: &MalformedArgError{Arg: arg}}
		}
		req.Params[kv[0]] = kv[1]
	}

	names := a.Registry.Enumerate()
	if len(names) == 0 && req.RuntimeName == "" {
		return req, &UsageError{Err: ErrNoGenerators}
	}
	if req.GeneratorName == "" && req.RuntimeName == "" {
		if len(names) > 1 {
			listed := make([]string, len(names))
			for i, n := range names {
				listed[i] = "    " + CmdStyle.Render(n)
			}
			return req, usageErrorf("%w:\n%s", ErrAmbiguousGenerator, strings.Join(listed, "\n"))
		}
		req.GeneratorName = names[0]
	}
	if req.FunctionName == "" {
		req.FunctionName = req.GeneratorName
	}

	if req.OutputDir == "" {
		return req, &UsageError{Err: ErrMissingOutputDir}
	}

	targetList, ok := req.Params[generator.TargetParamName]
	if !ok {
		return req, &UsageError{Err: ErrMissingTarget}
	}
	for _, s := range strings.Split(targetList, ",") {
		t, err := target.Parse(s)
		if err != nil {
			return req, newServiceError(err, issue.InvalidTargetId, "")
		}
		req.Targets = append(req.Targets, t)
	}

	emit := cfg.Build.EmitOptions()
	if emitSet {
		var unknown []string
		emit, unknown = artifact.ParseEmitKinds(f.emit)
		for _, tok := range unknown {
			fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("unrecognized emit option: %s not one of [assembly, bitcode, cpp, h, html, o, static_library, stmt], ignoring.", tok))
		}
	}
	overrides, err := artifact.ParseExtensionOverrides(f.extensions)
	if err != nil {
		return req, &UsageError{Err: err}
	}
	if len(cfg.Build.Extensions) > 0 || len(overrides) > 0 {
		merged := make(map[string]string, len(cfg.Build.Extensions)+len(overrides))
		maps.Copy(merged, cfg.Build.Extensions)
		maps.Copy(merged, overrides)
		emit.Extensions = merged
	}
	req.Emit = emit

	return req, nil
}

// build runs the runtime and generator builds a resolved request asks for.
func (a *App) build(ctx context.Context, req BuildRequest) error {
	if req.RuntimeName != "" {
		if len(req.Targets) != 1 {
			return newServiceError(errors.New("only one target allowed when compiling a standalone runtime"), issue.InvalidTargetId, "")
		}
		basePath := artifact.ComputeBasePath(req.OutputDir, req.RuntimeName, "")
		outputs := artifact.ComputeOutputs(req.Targets[0], basePath, req.Emit)
		if err := pipeline.CompileStandaloneRuntime(outputs, req.Targets[0]); err != nil {
			return classifyBuildError(err, req.RuntimeName)
		}
		slog.Debug("wrote runtime", "name", req.RuntimeName, "files", outputs.Paths())
	}

	if req.GeneratorName == "" {
		return nil
	}

	a.warnReservedStem(req)

	basePath := artifact.ComputeBasePath(req.OutputDir, req.FunctionName, req.FileBaseName)
	outputs := artifact.ComputeOutputs(req.Targets[0], basePath, req.Emit)
	producer := &generatorProducer{registry: a.Registry, name: req.GeneratorName, params: req.Params}

	var err error
	if len(req.Targets) > 1 {
		err = multitarget.Compile(ctx, req.FunctionName, outputs, req.Targets, producer,
			multitarget.Options{MaxParallel: req.MaxParallel})
	} else {
		var m *pipeline.Module
		if m, err = producer.Build(ctx, req.FunctionName, req.Targets[0]); err == nil {
			err = m.Compile(outputs)
		}
	}
	if err != nil {
		return classifyBuildError(err, req.GeneratorName)
	}
	slog.Debug("wrote artifacts", "generator", req.GeneratorName, "files", outputs.Paths())
	return nil
}

// warnReservedStem warns when a Windows target would get a file named after
// a reserved device such as NUL or COM1.
func (a *App) warnReservedStem(req BuildRequest) {
	stem := req.FileBaseName
	if stem == "" {
		_, stem = artifact.SplitNamespaces(req.FunctionName)
	}
	if !platform.IsWindowsReservedName(stem) {
		return
	}
	for _, t := range req.Targets {
		if t.OS() == target.Windows {
			fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+
				fmt.Sprintf("file base name %q is reserved on Windows", stem))
			return
		}
	}
}

// classifyBuildError attaches the issue catalog entry matching err, and for
// an unknown generator lists the ones that are registered.
func classifyBuildError(err error, resource string) error {
	id := issue.CompileFailedId
	suggestion := "Run with --verbose for the full error chain"
	styled := ""

	var (
		pathErr    *fs.PathError
		unknownGen *generator.UnknownGeneratorError
	)
	switch {
	case errors.As(err, &unknownGen):
		id = issue.UnknownGeneratorId
		suggestion = ""
		if len(unknownGen.Available) > 0 {
			styled = SubtitleStyle.Render("Registered generators:") + "\n"
			for _, name := range unknownGen.Available {
				styled += "  " + CmdStyle.Render(name) + "\n"
			}
		}
	case errors.Is(err, generator.ErrUnknownGeneratorParam), errors.Is(err, generator.ErrInvalidParamValue):
		id = issue.InvalidGeneratorParamId
		suggestion = "Check the name=value arguments after the flags"
	case errors.Is(err, target.ErrInvalidTarget),
		errors.Is(err, multitarget.ErrIncompatibleTargets),
		errors.Is(err, multitarget.ErrUnsupportedOutput):
		id = issue.InvalidTargetId
	case errors.As(err, &pathErr):
		id = issue.OutputWriteFailedId
		suggestion = "Check that " + pathErr.Path + " is writable"
	}

	wrapped := issue.NewErrorContext().
		WithOperation("build").
		WithResource(resource).
		WithSuggestion(suggestion).
		Wrap(err).
		BuildError()
	return newServiceError(wrapped, id, styled)
}

// internalErrorFrom extracts a generator internal error from a recovered
// panic value. Panics re-raised by a conc pool arrive wrapped.
func internalErrorFrom(r any) *generator.InternalError {
	if rec, ok := r.(*panics.Recovered); ok {
		r = rec.Value
	}
	if err, ok := r.(error); ok {
		var internal *generator.InternalError
		if errors.As(err, &internal) {
			return internal
		}
	}
	return nil
}

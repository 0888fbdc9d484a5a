// SPDX-License-Identifier: MPL-2.0

// Package multitarget builds one function for several targets and merges the
// results into a single header and static library. The library holds one
// renamed object per target plus a wrapper that picks the first target the
// running machine supports, falling back to the last.
package multitarget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"

	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/pipeline"
	"github.com/gengen/gengen/pkg/target"
)

var (
	// ErrNoTargets is returned when Compile is given no targets.
	ErrNoTargets = errors.New("no targets given")
	// ErrUnsupportedOutput is returned for artifacts other than header and static library.
	ErrUnsupportedOutput = errors.New("unsupported output for multitarget builds")
	// ErrIncompatibleTargets is returned when targets differ in OS, architecture or bit width.
	ErrIncompatibleTargets = errors.New("multitarget targets must share os, arch and bits")
	// ErrSignatureMismatch is returned when per-target modules disagree on arguments.
	ErrSignatureMismatch = errors.New("multitarget modules have different signatures")
)

type (
	// ModuleProducer builds the module of one function for one target.
	ModuleProducer interface {
		Build(ctx context.Context, functionName string, t target.Target) (*pipeline.Module, error)
	}

	// ProducerFunc adapts a function to ModuleProducer.
	ProducerFunc func(ctx context.Context, functionName string, t target.Target) (*pipeline.Module, error)

	// Options tunes Compile.
	Options struct {
		// MaxParallel bounds concurrent per-target builds. Zero means one
		// goroutine per target.
		MaxParallel int
	}

	// UnsupportedOutputError names an artifact kind multitarget builds cannot write.
	UnsupportedOutputError struct {
		Kind artifact.Kind
	}

	// IncompatibleTargetsError names a target that does not match the first one.
	IncompatibleTargetsError struct {
		First  target.Target
		Target target.Target
	}

	// SignatureMismatchError names the target whose module differs from the first.
	SignatureMismatchError struct {
		Target target.Target
		Reason string
	}
)

// Build calls f.
func (f ProducerFunc) Build(ctx context.Context, functionName string, t target.Target) (*pipeline.Module, error) {
	return f(ctx, functionName, t)
}

func (e *UnsupportedOutputError) Error() string {
	return fmt.Sprintf("multitarget builds can only emit h and static_library, not %s", e.Kind)
}

// Unwrap returns ErrUnsupportedOutput for errors.Is() compatibility.
func (e *UnsupportedOutputError) Unwrap() error { return ErrUnsupportedOutput }

func (e *IncompatibleTargetsError) Error() string {
	return fmt.Sprintf("target %s does not share os, arch and bits with %s", e.Target, e.First)
}

// Unwrap returns ErrIncompatibleTargets for errors.Is() compatibility.
func (e *IncompatibleTargetsError) Unwrap() error { return ErrIncompatibleTargets }

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("module for target %s has a different signature: %s", e.Target, e.Reason)
}

// Unwrap returns ErrSignatureMismatch for errors.Is() compatibility.
func (e *SignatureMismatchError) Unwrap() error { return ErrSignatureMismatch }

// Compile builds functionName for every target with producer and writes the
// merged header and static library named in outputs.
func Compile(ctx context.Context, functionName string, outputs artifact.Outputs, targets []target.Target, producer ModuleProducer, opts Options) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	for _, k := range outputs.Requested() {
		if k != artifact.Header && k != artifact.StaticLibrary {
			return &UnsupportedOutputError{Kind: k}
		}
	}
	for _, t := range targets[1:] {
		if !t.SameBase(targets[0]) {
			return &IncompatibleTargetsError{First: targets[0], Target: t}
		}
	}

	modules, err := buildAll(ctx, functionName, targets, producer, opts)
	if err != nil {
		return err
	}
	for i := 1; i < len(modules); i++ {
		if reason := signatureDiff(modules[0].Arguments, modules[i].Arguments); reason != "" {
			return &SignatureMismatchError{Target: targets[i], Reason: reason}
		}
	}

	if path := outputs.CHeaderName; path != "" {
		if err := pipeline.WriteHeaderFile(path, modules[0].WithName(functionName)); err != nil {
			return err
		}
	}
	if path := outputs.StaticLibraryName; path != "" {
		if err := writeLibrary(path, functionName, targets, modules); err != nil {
			return err
		}
	}
	return nil
}

// buildAll runs the producer for every target concurrently. Modules are
// returned in target order; every failure is reported.
func buildAll(ctx context.Context, functionName string, targets []target.Target, producer ModuleProducer, opts Options) ([]*pipeline.Module, error) {
	base := pool.New()
	if opts.MaxParallel > 0 {
		base = base.WithMaxGoroutines(opts.MaxParallel)
	}
	p := base.WithErrors().WithContext(ctx)

	modules := make([]*pipeline.Module, len(targets))
	for i, t := range targets {
		p.Go(func(ctx context.Context) error {
			slog.Debug("building target", "function", functionName, "target", t.String())
			m, err := producer.Build(ctx, functionName, t)
			if err != nil {
				return fmt.Errorf("target %s: %w", t, err)
			}
			modules[i] = m
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}

func signatureDiff(want, got []pipeline.Argument) string {
	if len(want) != len(got) {
		return fmt.Sprintf("%d arguments instead of %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if w.Name != g.Name || w.Kind != g.Kind || w.Type != g.Type || w.Dimensions != g.Dimensions {
			return fmt.Sprintf("argument %d is %s %s %s[%d], expected %s %s %s[%d]",
				i, g.Kind, g.Type, g.Name, g.Dimensions, w.Kind, w.Type, w.Name, w.Dimensions)
		}
	}
	return ""
}

func writeLibrary(path, functionName string, targets []target.Target, modules []*pipeline.Module) (err error) {
	members := make([]pipeline.ArchiveMember, 0, len(modules)+1)
	entries := make([]pipeline.DispatchEntry, 0, len(modules))
	for i, m := range modules {
		renamed := m.WithName(functionName + "_" + targets[i].Suffix())
		data, err := pipeline.NewImage(renamed, pipeline.ImageObject).Encode()
		if err != nil {
			return err
		}
		members = append(members, pipeline.ArchiveMember{Name: renamed.ObjectMemberName(), Data: data})
		entries = append(entries, pipeline.DispatchEntry{Target: targets[i].String(), Symbol: renamed.Name})
	}

	wrapper := modules[0].WithName(functionName)
	data, err := pipeline.NewDispatchImage(functionName, targets[0], wrapper.Arguments, entries).Encode()
	if err != nil {
		return err
	}
	members = append(members, pipeline.ArchiveMember{Name: wrapperMemberName(wrapper), Data: data})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if err := pipeline.WriteArchive(w, members); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Flush()
}

func wrapperMemberName(m *pipeline.Module) string {
	if m.Target.IsWindowsCOFF() {
		return m.SimpleName() + "_wrapper.obj"
	}
	return m.SimpleName() + "_wrapper.o"
}

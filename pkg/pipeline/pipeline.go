// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gengen/gengen/internal/dag"
	"github.com/gengen/gengen/pkg/artifact"
	"github.com/gengen/gengen/pkg/target"
)

const (
	// LinkageExternal exports the generated function.
	LinkageExternal Linkage = iota
	// LinkageInternal keeps the generated function local to its object.
	LinkageInternal
)

var (
	// ErrNoOutputs is returned when a Pipeline has no output Funcs.
	ErrNoOutputs = errors.New("pipeline has no outputs")
	// ErrUndefinedFunc is returned when an output or producer has no definition.
	ErrUndefinedFunc = errors.New("func is not defined")
	// ErrDuplicateArgument is returned when two arguments share a name.
	ErrDuplicateArgument = errors.New("duplicate argument name")
)

type (
	// Linkage is the symbol visibility of a generated function.
	Linkage int

	// Pipeline is the set of output Funcs a generator produces.
	Pipeline struct {
		outputs []*Func
	}
)

// String returns "external" or "internal".
func (l Linkage) String() string {
	if l == LinkageInternal {
		return "internal"
	}
	return "external"
}

// NewPipeline returns a Pipeline over the given outputs.
func NewPipeline(outputs ...*Func) *Pipeline {
	return &Pipeline{outputs: append([]*Func(nil), outputs...)}
}

// Outputs returns the output Funcs in declaration order.
func (p *Pipeline) Outputs() []*Func { return append([]*Func(nil), p.outputs...) }

// OutputArguments returns one OutputBuffer Argument per output value: the Func
// name for single-valued outputs, name_i for tuple elements.
func (p *Pipeline) OutputArguments() []Argument {
	var args []Argument
	for _, f := range p.outputs {
		types := f.OutputTypes()
		for i, t := range types {
			name := f.Name()
			if len(types) > 1 {
				name += "_" + strconv.Itoa(i)
			}
			args = append(args, Argument{Name: name, Kind: OutputBuffer, Type: t, Dimensions: f.Dimensions()})
		}
	}
	return args
}

// CompileToModule lowers the pipeline for t. args are the input arguments of
// the generated function; output buffers are appended after them.
func (p *Pipeline) CompileToModule(args []Argument, functionName string, t target.Target, linkage Linkage) (*Module, error) {
	if functionName == "" {
		return nil, errors.New("function name must not be empty")
	}
	if t.IsZero() {
		return nil, errors.New("target must not be empty")
	}
	if err := validateFunctionName(functionName, t); err != nil {
		return nil, err
	}
	if len(p.outputs) == 0 {
		return nil, ErrNoOutputs
	}
	for _, f := range p.outputs {
		if !f.Defined() {
			return nil, fmt.Errorf("output %s: %w", f.Name(), ErrUndefinedFunc)
		}
	}

	all := append(append([]Argument(nil), args...), p.OutputArguments()...)
	seen := make(map[string]struct{}, len(all))
	for _, a := range all {
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateArgument, a.Name)
		}
		seen[a.Name] = struct{}{}
	}

	order, err := p.realizationOrder()
	if err != nil {
		return nil, err
	}

	m := &Module{
		Name:      functionName,
		Target:    t,
		Linkage:   linkage,
		Arguments: all,
	}
	for _, f := range order {
		m.Functions = append(m.Functions, lowerFunc(f))
	}
	return m, nil
}

// realizationOrder walks every Func reachable from the outputs and orders
// producers before their consumers.
func (p *Pipeline) realizationOrder() ([]*Func, error) {
	g := dag.New[*Func]()
	var visit func(f *Func) error
	visit = func(f *Func) error {
		if g.Has(f) {
			return nil
		}
		if !f.Defined() {
			return fmt.Errorf("producer %s: %w", f.Name(), ErrUndefinedFunc)
		}
		g.AddNode(f)
		for _, prod := range f.producers() {
			if err := visit(prod); err != nil {
				return err
			}
			if prod != f {
				g.AddEdge(prod, f)
			}
		}
		return nil
	}
	for _, f := range p.outputs {
		if err := visit(f); err != nil {
			return nil, err
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		var cycle *dag.CycleError[*Func]
		if errors.As(err, &cycle) {
			names := make([]string, len(cycle.Cycle))
			for i, f := range cycle.Cycle {
				names[i] = f.Name()
			}
			return nil, fmt.Errorf("funcs read each other: %v", names)
		}
		return nil, err
	}
	return order, nil
}

// validateFunctionName requires C identifiers for every name segment and
// allows namespaces only when the target mangles names as C++.
func validateFunctionName(name string, t target.Target) error {
	namespaces, simple := artifact.SplitNamespaces(name)
	for _, seg := range append(namespaces, simple) {
		if !isCIdentifier(seg) {
			return fmt.Errorf("function name %q: %q is not a valid C identifier", name, seg)
		}
	}
	if len(namespaces) > 0 && !t.HasFeature(target.CPlusPlusNameMangling) {
		return fmt.Errorf("function name %q: namespaces require the %s target feature", name, target.CPlusPlusNameMangling)
	}
	return nil
}

func isCIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func lowerFunc(f *Func) LoweredFunc {
	lf := LoweredFunc{Name: f.Name()}
	for _, v := range f.Args() {
		lf.Args = append(lf.Args, v.Name())
	}
	for _, v := range f.Values() {
		lf.Values = append(lf.Values, v.String())
		lf.Types = append(lf.Types, v.Type())
	}
	return lf
}

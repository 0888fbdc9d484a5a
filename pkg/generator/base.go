// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/gengen/gengen/pkg/pipeline"
	"github.com/gengen/gengen/pkg/target"
)

// TargetParamName is the generator param every generator carries.
const TargetParamName = "target"

type (
	// Generator is a user-defined computation. Implementations embed Base
	// and create their parameters with this package's constructors.
	Generator interface {
		Owner
		// BuildPipeline builds the pipeline for the current configuration.
		BuildPipeline() (*pipeline.Pipeline, error)
	}

	// Owner is anything that can own generator parameters. *Base implements
	// it, so does any struct pointer embedding Base.
	Owner interface {
		GeneratorBase() *Base
	}

	// Base holds the parameters of one generator instance. The zero value is
	// ready to use; an instance must not be shared between goroutines.
	Base struct {
		dir         *paramDirectory
		targetParam *GeneratorParam[target.Target]

		paramsBuilt  bool
		filterParams []freeParam
		filterInputs []input
		// generatorParams holds registration order; paramsByName indexes it.
		generatorParams []generatorParam
		paramsByName    map[string]generatorParam
	}
)

// GeneratorBase returns b.
func (b *Base) GeneratorBase() *Base { return b }

func ownerBase(o Owner) *Base {
	if isNil(o) {
		internalf("parameter owner is nil")
	}
	b := o.GeneratorBase()
	if b == nil {
		internalf("parameter owner has no Base")
	}
	return b
}

func (b *Base) directory() *paramDirectory {
	if b.dir == nil {
		b.dir = &paramDirectory{}
		b.targetParam = NewGeneratorParam(b, TargetParamName, target.Host())
	}
	return b.dir
}

// Target returns the value of the built-in target param.
func (b *Base) Target() target.Target {
	b.directory()
	return b.targetParam.Value()
}

// buildParams validates the recorded parameters once. Later calls are no-ops
// until rebuildParams.
func (b *Base) buildParams() error {
	if b.paramsBuilt {
		return nil
	}
	d := b.directory()

	var params []freeParam
	seen := make(map[string]struct{})
	for _, fp := range d.freeParams {
		p := fp.Parameter()
		if !p.IsExplicitName() {
			return &ParamError{Category: categoryFreeParam, Name: p.Name(), Err: ErrImplicitParamName}
		}
		if !IsValidName(p.Name()) {
			return &ParamError{Category: categoryFreeParam, Name: p.Name(), Err: ErrInvalidName}
		}
		if _, dup := seen[p.Name()]; dup {
			return &ParamError{Category: categoryFreeParam, Name: p.Name(), Err: ErrDuplicateName}
		}
		seen[p.Name()] = struct{}{}
		params = append(params, fp)
	}

	var inputs []input
	seen = make(map[string]struct{})
	for _, in := range d.inputs {
		if !IsValidName(in.Name()) {
			return &ParamError{Category: categoryInput, Name: in.Name(), Err: ErrInvalidName}
		}
		if _, dup := seen[in.Name()]; dup {
			return &ParamError{Category: categoryInput, Name: in.Name(), Err: ErrDuplicateName}
		}
		seen[in.Name()] = struct{}{}
		inputs = append(inputs, in)
	}

	if len(params) > 0 && len(inputs) > 0 {
		return &MixedParamStylesError{Param: params[0].Parameter().Name(), Input: inputs[0].Name()}
	}

	byName := make(map[string]generatorParam, len(d.generatorParams))
	for _, gp := range d.generatorParams {
		if !IsValidName(gp.Name()) {
			return &ParamError{Category: categoryGeneratorParam, Name: gp.Name(), Err: ErrInvalidName}
		}
		if _, dup := byName[gp.Name()]; dup {
			return &ParamError{Category: categoryGeneratorParam, Name: gp.Name(), Err: ErrDuplicateName}
		}
		byName[gp.Name()] = gp
	}

	b.filterParams = params
	b.filterInputs = inputs
	b.generatorParams = slices.Clone(d.generatorParams)
	b.paramsByName = byName
	b.paramsBuilt = true
	return nil
}

// rebuildParams discards the previous discovery and runs it again. Inputs
// are initialized afresh in the new cycle.
func (b *Base) rebuildParams() error {
	b.paramsBuilt = false
	for _, in := range b.filterInputs {
		in.resetInit()
	}
	b.filterParams = nil
	b.filterInputs = nil
	b.generatorParams = nil
	b.paramsByName = nil
	return b.buildParams()
}

// GetFilterArguments returns the arguments of the generated function: free
// params first, then inputs, each in construction order.
func (b *Base) GetFilterArguments() ([]pipeline.Argument, error) {
	if err := b.buildParams(); err != nil {
		return nil, err
	}
	args := make([]pipeline.Argument, 0, len(b.filterParams)+len(b.filterInputs))
	for _, p := range b.filterParams {
		args = append(args, pipeline.ArgumentFromParameter(p.Parameter()))
	}
	for _, in := range b.filterInputs {
		in.initialize()
		args = append(args, pipeline.ArgumentFromParameter(in.Parameter()))
	}
	return args, nil
}

// GetGeneratorParamValues returns the string encoding of every generator param.
func (b *Base) GetGeneratorParamValues() (ParamValues, error) {
	if err := b.buildParams(); err != nil {
		return nil, err
	}
	values := make(ParamValues, len(b.generatorParams))
	for _, p := range b.generatorParams {
		values[p.Name()] = p.String()
	}
	return values, nil
}

// GeneratorParamNames returns generator param names in construction order.
func (b *Base) GeneratorParamNames() ([]string, error) {
	if err := b.buildParams(); err != nil {
		return nil, err
	}
	names := make([]string, len(b.generatorParams))
	for i, p := range b.generatorParams {
		names[i] = p.Name()
	}
	return names, nil
}

// SetGeneratorParamValues parses and stores values. Every key and value is
// checked before anything is stored, so on error no param changes. All
// failures are reported, ordered by key. After a successful set, inputs are
// initialized again on their next use.
func (b *Base) SetGeneratorParamValues(values ParamValues) error {
	if err := b.buildParams(); err != nil {
		return err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var (
		errs    []error
		applies []func()
	)
	for _, k := range keys {
		p, ok := b.paramsByName[k]
		if !ok {
			errs = append(errs, &UnknownParamError{Name: k})
			continue
		}
		apply, err := p.prepare(values[k])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		applies = append(applies, apply)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	for _, apply := range applies {
		apply()
	}
	// Inputs may follow type or dimension params; bind them again on next use.
	for _, in := range b.filterInputs {
		in.resetInit()
	}
	return nil
}

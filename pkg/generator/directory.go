// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"reflect"

	"github.com/gengen/gengen/pkg/pipeline"
)

type (
	// freeParam is a Param or ImageParam recorded on a Base.
	freeParam interface {
		Parameter() *pipeline.Parameter
	}

	// input is an InputBuffer or InputScalar recorded on a Base.
	input interface {
		Name() string
		Parameter() *pipeline.Parameter
		initialize()
		resetInit()
	}

	// paramDirectory records every parameter object constructed for one
	// generator instance, in construction order, by category.
	paramDirectory struct {
		freeParams      []freeParam
		inputs          []input
		generatorParams []generatorParam
	}
)

func (d *paramDirectory) addFreeParam(p freeParam) {
	if isNil(p) {
		internalf("registering nil %s", categoryFreeParam)
	}
	d.freeParams = append(d.freeParams, p)
}

func (d *paramDirectory) addInput(in input) {
	if isNil(in) {
		internalf("registering nil %s", categoryInput)
	}
	d.inputs = append(d.inputs, in)
}

func (d *paramDirectory) addGeneratorParam(p generatorParam) {
	if isNil(p) {
		internalf("registering nil %s", categoryGeneratorParam)
	}
	d.generatorParams = append(d.generatorParams, p)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

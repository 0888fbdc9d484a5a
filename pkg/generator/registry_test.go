// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/gengen/gengen/pkg/pipeline"
)

type nopGen struct {
	Base
}

func (g *nopGen) BuildPipeline() (*pipeline.Pipeline, error) {
	x := pipeline.NewVar("x")
	return pipeline.NewPipeline(pipeline.NewFunc("out").MustDefine([]pipeline.Var{x}, x.Expr())), nil
}

func nopFactory() Factory {
	return NewFactory(func() *nopGen { return &nopGen{} })
}

// recoverInternal runs f and returns the *InternalError it panicked with.
func recoverInternal(f func()) (ie *InternalError) {
	defer func() {
		if r := recover(); r != nil {
			ie, _ = r.(*InternalError)
		}
	}()
	f()
	return nil
}

func TestIsValidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"", false},
		{"a", true},
		{"Blur3x3", true},
		{"a_b_c", true},
		{"a_", true},
		{"a__b", false},
		{"_a", false},
		{"1a", false},
		{"a-b", false},
		{"a b", false},
		{"é", false},
		{"ab\x00", false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.name), func(t *testing.T) {
			t.Parallel()
			if got := IsValidName(tt.name); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.name, got, tt.want)
			}
			err := Name(tt.name).Validate()
			if (err == nil) != tt.want {
				t.Errorf("Name(%q).Validate() = %v", tt.name, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("Validate() error should wrap ErrInvalidName: %v", err)
			}
		})
	}
}

func TestRegistryRegisterCreateEnumerate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(name, nopFactory()); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}
	if got := r.Enumerate(); !slices.Equal(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("Enumerate() = %v", got)
	}

	g, err := r.Create("mid", ParamValues{"target": "x86-64-linux"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := g.GeneratorBase().Target().String(); got != "x86-64-linux" {
		t.Errorf("target = %q", got)
	}

	r.Unregister("mid")
	if got := r.Enumerate(); !slices.Equal(got, []string{"alpha", "zeta"}) {
		t.Errorf("Enumerate() after Unregister = %v", got)
	}
}

func TestRegistryUserErrors(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register("bad__name", nopFactory()); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Register(invalid) error = %v, want ErrInvalidName", err)
	}
	if len(r.Enumerate()) != 0 {
		t.Error("invalid name must not be registered")
	}

	r.MustRegister("known", nopFactory())
	_, err := r.Create("missing", nil)
	if !errors.Is(err, ErrUnknownGenerator) {
		t.Fatalf("Create(missing) error = %v, want ErrUnknownGenerator", err)
	}
	var unknown *UnknownGeneratorError
	if !errors.As(err, &unknown) || !slices.Equal(unknown.Available, []string{"known"}) {
		t.Errorf("UnknownGeneratorError = %+v", unknown)
	}

	if _, err := r.Create("known", ParamValues{"nope": "1"}); !errors.Is(err, ErrUnknownGeneratorParam) {
		t.Errorf("Create() with unknown param error = %v", err)
	}
}

func TestRegistryInternalErrors(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	first := nopFactory()
	r.MustRegister("gen", first)

	ie := recoverInternal(func() { _ = r.Register("gen", nopFactory()) })
	if ie == nil || !errors.Is(ie, ErrInternal) {
		t.Fatalf("duplicate Register did not panic with InternalError: %v", ie)
	}
	if got := r.Enumerate(); !slices.Equal(got, []string{"gen"}) {
		t.Errorf("Enumerate() = %v", got)
	}

	if ie := recoverInternal(func() { r.Unregister("absent") }); ie == nil {
		t.Error("Unregister(absent) did not panic with InternalError")
	}
	if ie := recoverInternal(func() { _ = r.Register("nilfactory", nil) }); ie == nil {
		t.Error("Register(nil) did not panic with InternalError")
	}
}

func TestRegistryFactoryMayUseRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister("outer", FactoryFunc(func(values ParamValues) (Generator, error) {
		r.MustRegister("inner", nopFactory())
		defer r.Unregister("inner")
		return r.Create("inner", values)
	}))
	if _, err := r.Create("outer", nil); err != nil {
		t.Fatalf("Create(outer) error = %v", err)
	}
	if got := r.Enumerate(); !slices.Equal(got, []string{"outer"}) {
		t.Errorf("Enumerate() = %v", got)
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister("shared", nopFactory())

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := range n {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- r.Register(fmt.Sprintf("gen_%d", i), nopFactory())
		}()
		go func() {
			defer wg.Done()
			_, err := r.Create("shared", nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent operation failed: %v", err)
		}
	}
	if got := len(r.Enumerate()); got != n+1 {
		t.Errorf("registered %d generators, want %d", got, n+1)
	}
}

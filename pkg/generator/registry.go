// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"sync"

	"golang.org/x/exp/slices"
)

// DefaultRegistry is the process-wide registry. Generators linked into a
// binary register themselves here from init functions.
var DefaultRegistry = NewRegistry()

type (
	// ParamValues maps generator param names to their string encodings.
	ParamValues map[string]string

	// Factory creates configured generator instances.
	Factory interface {
		Create(values ParamValues) (Generator, error)
	}

	// FactoryFunc adapts a function to Factory.
	FactoryFunc func(values ParamValues) (Generator, error)

	// Registry maps generator names to factories. It is safe for concurrent use.
	Registry struct {
		mu        sync.RWMutex
		factories map[string]Factory
	}
)

// Create calls f.
func (f FactoryFunc) Create(values ParamValues) (Generator, error) { return f(values) }

// NewFactory returns a Factory that builds a fresh instance with ctor and
// applies values to it.
func NewFactory[G Generator](ctor func() G) Factory {
	return FactoryFunc(func(values ParamValues) (Generator, error) {
		g := ctor()
		if err := g.GeneratorBase().SetGeneratorParamValues(values); err != nil {
			return nil, err
		}
		return g, nil
	})
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. An invalid name is a user error;
// registering a nil factory or a name twice panics with *InternalError and
// leaves the first registration active.
func (r *Registry) Register(name string, f Factory) error {
	if err := Name(name).Validate(); err != nil {
		return err
	}
	if f == nil {
		internalf("nil factory for generator %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		internalf("duplicate generator name: %s", name)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is like Register but panics on any error.
func (r *Registry) MustRegister(name string, f Factory) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Unregister removes name. Removing an absent name panics with *InternalError.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; !exists {
		internalf("generator not found: %s", name)
	}
	delete(r.factories, name)
}

// Create looks name up and builds a configured instance. The factory runs
// without the registry lock held, so it may itself use the registry.
func (r *Registry) Create(name string, values ParamValues) (Generator, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownGeneratorError{Name: name, Available: r.Enumerate()}
	}
	return f.Create(values)
}

// Enumerate returns the registered names in sorted order.
func (r *Registry) Enumerate() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Register adds a factory to DefaultRegistry.
func Register(name string, f Factory) error { return DefaultRegistry.Register(name, f) }

// MustRegister adds a factory to DefaultRegistry and panics on error.
func MustRegister(name string, f Factory) { DefaultRegistry.MustRegister(name, f) }

// Unregister removes a name from DefaultRegistry.
func Unregister(name string) { DefaultRegistry.Unregister(name) }

// Create builds a generator registered in DefaultRegistry.
func Create(name string, values ParamValues) (Generator, error) {
	return DefaultRegistry.Create(name, values)
}

// Enumerate lists the names registered in DefaultRegistry.
func Enumerate() []string { return DefaultRegistry.Enumerate() }

// SPDX-License-Identifier: MPL-2.0

// Package generator provides the generator registry and the per-instance
// machinery that turns a generator into a compiled module.
//
// A generator is a struct that embeds Base and implements BuildPipeline. Its
// inputs, free parameters and configuration parameters are created with the
// constructors in this package, which record each object in the owning
// Base. Discovery validates those records the first time the generator is
// asked for its arguments or parameter values.
//
// User errors (bad names, unknown generators, unparsable values) are returned
// as errors. Broken invariants, such as registering the same generator name
// twice, panic with *InternalError.
package generator

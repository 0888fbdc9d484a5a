// SPDX-License-Identifier: MPL-2.0

// Package generators holds the sample generators linked into the gengen
// binary. Importing the package registers them with generator.DefaultRegistry.
package generators

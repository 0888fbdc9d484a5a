// SPDX-License-Identifier: MPL-2.0

// Package artifact decides which files a build writes and what they are called.
//
// EmitOptions selects artifact kinds and carries an extension override table.
// ComputeBasePath and ComputeOutputs turn a target, an output directory and a
// function name into concrete paths, adapting object and static library
// extensions to the target platform.
package artifact

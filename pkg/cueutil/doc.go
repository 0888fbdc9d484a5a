// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user CUE documents against an embedded schema
// and decodes the result into Go values.
//
// The flow is always the same: compile the schema, compile the user data
// and unify it with a root definition of the schema, then validate and
// decode. Errors carry the file name and the path of the offending field:
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Config",
//		cueutil.WithFilename(path))
package cueutil

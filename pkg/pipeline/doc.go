// SPDX-License-Identifier: MPL-2.0

// Package pipeline models the compilation service that generators drive.
//
// It provides a deliberately small symbolic front end (Type, Expr, Var, Func,
// Parameter), a Pipeline that lowers its output functions into a Module for
// one target, and the reference backend that writes a Module out as artifact
// files. Expressions are kept as printable terms: nothing is evaluated,
// scheduled or turned into machine code. Headers and C sources carry real
// prototypes; statement dumps, assembly listings and module images describe
// the lowered functions; static libraries are ar archives of module images.
package pipeline

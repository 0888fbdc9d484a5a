// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the gengen build driver: it resolves a registered
// generator (or the standalone runtime), binds name=value generator params
// and one or more targets, and writes the requested artifacts.
package cmd

// SPDX-License-Identifier: MPL-2.0

// Package config loads gengen's optional config.cue with viper after
// validating it against an embedded CUE schema. The file supplies defaults
// for build driver flags (artifact selection, extension overrides, target
// parallelism) and UI settings.
package config

// SPDX-License-Identifier: MPL-2.0

// Package issue holds the catalog of user-facing problems the gengen driver
// can report, each with Markdown remediation text rendered by glamour, and
// ActionableError for wrapping failures with operation context.
package issue

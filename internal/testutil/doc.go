// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that inspect build artifacts,
// failing the test on I/O errors instead of returning them.
package testutil

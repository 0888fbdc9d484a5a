// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It detects the host operating system and CPU architecture once per process
// and exposes the Windows reserved file names that generated artifacts must
// avoid when they are written for a Windows target.
package platform

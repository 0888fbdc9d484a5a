// SPDX-License-Identifier: MPL-2.0

// Package target describes the platform a generated artifact is built for.
//
// A Target is an (OS, architecture, bit width, feature set) tuple parsed from
// its canonical string form, for example "x86-64-linux-avx-sse41" or
// "host-debug". The canonical form lists the architecture, the width and the
// OS first, followed by the features in sorted order. The tuple fully decides
// which file extensions a build uses for its objects and static libraries.
package target

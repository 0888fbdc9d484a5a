// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"sync"
)

// Architecture family names reported by Host.
const (
	ArchX86     = "x86"
	ArchARM     = "arm"
	ArchMIPS    = "mips"
	ArchPowerPC = "powerpc"
	ArchUnknown = ""
)

// hostOnce caches the host description for the lifetime of the process.
// hostFrom MUST NOT panic: sync.OnceValue re-panics on every call.
var hostOnce = sync.OnceValue(func() Host {
	return hostFrom(runtime.GOOS, runtime.GOARCH)
})

// Host describes the machine the process is running on.
type Host struct {
	// OS is the runtime.GOOS value.
	OS string
	// Arch is the architecture family (ArchX86, ArchARM, ...), or ArchUnknown.
	Arch string
	// Bits is the pointer width, 32 or 64. Zero when Arch is unknown.
	Bits int
}

// DetectHost returns the host description. The result is cached after the first call.
func DetectHost() Host {
	return hostOnce()
}

// hostFrom maps Go's GOOS/GOARCH pair onto an architecture family and width.
func hostFrom(goos, goarch string) Host {
	h := Host{OS: goos}
	switch goarch {
	case "amd64":
		h.Arch, h.Bits = ArchX86, 64
	case "386":
		h.Arch, h.Bits = ArchX86, 32
	case "arm64":
		h.Arch, h.Bits = ArchARM, 64
	case "arm":
		h.Arch, h.Bits = ArchARM, 32
	case "mips", "mipsle":
		h.Arch, h.Bits = ArchMIPS, 32
	case "mips64", "mips64le":
		h.Arch, h.Bits = ArchMIPS, 64
	case "ppc64", "ppc64le":
		h.Arch, h.Bits = ArchPowerPC, 64
	default:
		h.Arch = ArchUnknown
	}
	return h
}

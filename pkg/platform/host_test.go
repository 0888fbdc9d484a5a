// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"testing"
)

func TestHostFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, goarch string
		want         Host
	}{
		{"linux", "amd64", Host{OS: "linux", Arch: ArchX86, Bits: 64}},
		{"windows", "386", Host{OS: "windows", Arch: ArchX86, Bits: 32}},
		{"darwin", "arm64", Host{OS: "darwin", Arch: ArchARM, Bits: 64}},
		{"linux", "arm", Host{OS: "linux", Arch: ArchARM, Bits: 32}},
		{"linux", "mips64le", Host{OS: "linux", Arch: ArchMIPS, Bits: 64}},
		{"linux", "ppc64le", Host{OS: "linux", Arch: ArchPowerPC, Bits: 64}},
		{"linux", "riscv64", Host{OS: "linux", Arch: ArchUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			t.Parallel()
			if got := hostFrom(tt.goos, tt.goarch); got != tt.want {
				t.Errorf("hostFrom(%q, %q) = %+v, want %+v", tt.goos, tt.goarch, got, tt.want)
			}
		})
	}
}

func TestDetectHostIsCached(t *testing.T) {
	t.Parallel()

	first := DetectHost()
	if first.OS != runtime.GOOS {
		t.Errorf("DetectHost().OS = %q, want %q", first.OS, runtime.GOOS)
	}
	if second := DetectHost(); second != first {
		t.Errorf("DetectHost() changed between calls: %+v then %+v", first, second)
	}
}

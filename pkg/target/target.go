// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gengen/gengen/pkg/platform"

	"golang.org/x/exp/slices"
)

const (
	OSUnknown OS = "os_unknown"
	Linux     OS = "linux"
	Windows   OS = "windows"
	OSX       OS = "osx"
	Android   OS = "android"
	IOS       OS = "ios"
	NaCl      OS = "nacl"
	QuRT      OS = "qurt"
	NoOS      OS = "noos"

	ArchUnknown Arch = "arch_unknown"
	X86         Arch = "x86"
	ARM         Arch = "arm"
	MIPS        Arch = "mips"
	PowerPC     Arch = "powerpc"
	Hexagon     Arch = "hexagon"
	// PNaCl is the portable bitcode architecture: its "object" files are bitcode.
	PNaCl Arch = "pnacl"

	MinGW                 Feature = "mingw"
	SSE41                 Feature = "sse41"
	AVX                   Feature = "avx"
	AVX2                  Feature = "avx2"
	FMA                   Feature = "fma"
	F16C                  Feature = "f16c"
	NEON                  Feature = "neon"
	ARMv7s                Feature = "armv7s"
	CUDA                  Feature = "cuda"
	OpenCL                Feature = "opencl"
	Metal                 Feature = "metal"
	OpenGL                Feature = "opengl"
	Debug                 Feature = "debug"
	NoAsserts             Feature = "no_asserts"
	NoBoundsQuery         Feature = "no_bounds_query"
	JIT                   Feature = "jit"
	CPlusPlusNameMangling Feature = "cplusplus_name_mangling"

	// hostToken expands to the detected host when it is the first token.
	hostToken = "host"
)

var (
	// ErrInvalidTarget is the sentinel error wrapped by InvalidTargetError.
	ErrInvalidTarget = errors.New("invalid target")

	validOS = []OS{OSUnknown, Linux, Windows, OSX, Android, IOS, NaCl, QuRT, NoOS}

	validArch = []Arch{ArchUnknown, X86, ARM, MIPS, PowerPC, Hexagon, PNaCl}

	validFeatures = []Feature{
		MinGW, SSE41, AVX, AVX2, FMA, F16C, NEON, ARMv7s, CUDA, OpenCL,
		Metal, OpenGL, Debug, NoAsserts, NoBoundsQuery, JIT, CPlusPlusNameMangling,
	}
)

type (
	// OS is the operating system a target runs on.
	OS string

	// Arch is the CPU architecture family of a target.
	Arch string

	// Feature is an optional capability or code-generation switch of a target.
	Feature string

	// Target is an immutable platform description. The zero value is not a
	// valid target; obtain one from Parse, MustParse, New or Host.
	Target struct {
		os       OS
		arch     Arch
		bits     int
		features []Feature // sorted, unique
	}

	// InvalidTargetError is returned when a target string cannot be parsed.
	// It wraps ErrInvalidTarget for errors.Is() compatibility.
	InvalidTargetError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidTarget so callers can use errors.Is for programmatic detection.
func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

// String returns the string representation of the OS.
func (o OS) String() string { return string(o) }

// Validate returns nil if the OS is one of the known values.
func (o OS) Validate() error {
	if slices.Contains(validOS, o) {
		return nil
	}
	return &InvalidTargetError{Value: string(o), Reason: "unknown operating system"}
}

// String returns the string representation of the Arch.
func (a Arch) String() string { return string(a) }

// Validate returns nil if the Arch is one of the known values.
func (a Arch) Validate() error {
	if slices.Contains(validArch, a) {
		return nil
	}
	return &InvalidTargetError{Value: string(a), Reason: "unknown architecture"}
}

// String returns the string representation of the Feature.
func (f Feature) String() string { return string(f) }

// Validate returns nil if the Feature is one of the known values.
func (f Feature) Validate() error {
	if slices.Contains(validFeatures, f) {
		return nil
	}
	return &InvalidTargetError{Value: string(f), Reason: "unknown feature"}
}

// New builds a Target from its parts, validating each one.
func New(os OS, arch Arch, bits int, features ...Feature) (Target, error) {
	if err := os.Validate(); err != nil {
		return Target{}, err
	}
	if err := arch.Validate(); err != nil {
		return Target{}, err
	}
	if bits != 32 && bits != 64 {
		return Target{}, &InvalidTargetError{Value: strconv.Itoa(bits), Reason: "bit width must be 32 or 64"}
	}
	t := Target{os: os, arch: arch, bits: bits}
	for _, f := range features {
		if err := f.Validate(); err != nil {
			return Target{}, err
		}
		t = t.WithFeature(f)
	}
	return t, nil
}

// Parse parses a target string such as "x86-64-linux-sse41" or "host-debug".
//
// Tokens are separated by '-' and may appear in any order, except "host",
// which is only accepted as the first token and seeds the target with the
// detected host. Without "host", the architecture, bit width and OS must
// all be present exactly once.
func Parse(s string) (Target, error) {
	if strings.TrimSpace(s) == "" {
		return Target{}, &InvalidTargetError{Value: s, Reason: "empty target string"}
	}

	var t Target
	fromHost := false
	var sawOS, sawArch, sawBits bool

	for i, tok := range strings.Split(s, "-") {
		switch {
		case i == 0 && tok == hostToken:
			t = Host()
			fromHost = true
		case slices.Contains(validArch, Arch(tok)):
			if sawArch {
				return Target{}, &InvalidTargetError{Value: s, Reason: "more than one architecture"}
			}
			t.arch, sawArch = Arch(tok), true
		case tok == "32" || tok == "64":
			if sawBits {
				return Target{}, &InvalidTargetError{Value: s, Reason: "more than one bit width"}
			}
			t.bits, _ = strconv.Atoi(tok)
			sawBits = true
		case slices.Contains(validOS, OS(tok)):
			if sawOS {
				return Target{}, &InvalidTargetError{Value: s, Reason: "more than one operating system"}
			}
			t.os, sawOS = OS(tok), true
		case slices.Contains(validFeatures, Feature(tok)):
			t = t.WithFeature(Feature(tok))
		default:
			return Target{}, &InvalidTargetError{Value: s, Reason: fmt.Sprintf("unknown token %q", tok)}
		}
	}

	if !fromHost && (!sawOS || !sawArch || !sawBits) {
		return Target{}, &InvalidTargetError{
			Value:  s,
			Reason: "must specify architecture, bit width and operating system (or start with \"host\")",
		}
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for constants in
// generator code and tests.
func MustParse(s string) Target {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Host returns the target describing the machine the process runs on.
func Host() Target {
	h := platform.DetectHost()

	t := Target{os: NoOS, arch: ArchUnknown, bits: h.Bits}
	switch h.OS {
	case platform.Linux:
		t.os = Linux
	case platform.Windows:
		t.os = Windows
	case platform.Darwin:
		t.os = OSX
	case platform.Android:
		t.os = Android
	case platform.IOS:
		t.os = IOS
	}
	switch h.Arch {
	case platform.ArchX86:
		t.arch = X86
	case platform.ArchARM:
		t.arch = ARM
	case platform.ArchMIPS:
		t.arch = MIPS
	case platform.ArchPowerPC:
		t.arch = PowerPC
	}
	if t.bits == 0 {
		t.bits = 64
	}
	return t
}

// OS returns the target operating system.
func (t Target) OS() OS { return t.os }

// Arch returns the target architecture.
func (t Target) Arch() Arch { return t.arch }

// Bits returns the target pointer width.
func (t Target) Bits() int { return t.bits }

// IsZero reports whether t is the zero Target.
func (t Target) IsZero() bool {
	return t.os == "" && t.arch == "" && t.bits == 0 && len(t.features) == 0
}

// Features returns a copy of the target's features in sorted order.
func (t Target) Features() []Feature {
	return slices.Clone(t.features)
}

// HasFeature reports whether the target enables f.
func (t Target) HasFeature(f Feature) bool {
	_, found := slices.BinarySearch(t.features, f)
	return found
}

// WithFeature returns a copy of t with f enabled.
func (t Target) WithFeature(f Feature) Target {
	i, found := slices.BinarySearch(t.features, f)
	if found {
		return t
	}
	t.features = slices.Insert(slices.Clone(t.features), i, f)
	return t
}

// WithoutFeature returns a copy of t with f disabled.
func (t Target) WithoutFeature(f Feature) Target {
	i, found := slices.BinarySearch(t.features, f)
	if !found {
		return t
	}
	t.features = slices.Delete(slices.Clone(t.features), i, i+1)
	return t
}

// IsWindowsCOFF reports whether artifacts for t use the COFF object format and
// .lib containers, i.e. a Windows target not built with MinGW.
func (t Target) IsWindowsCOFF() bool {
	return t.os == Windows && !t.HasFeature(MinGW)
}

// SameBase reports whether t and o share OS, architecture and bit width.
func (t Target) SameBase(o Target) bool {
	return t.os == o.os && t.arch == o.arch && t.bits == o.bits
}

// Equal reports whether t and o describe the same target.
func (t Target) Equal(o Target) bool {
	return t.SameBase(o) && slices.Equal(t.features, o.features)
}

// String returns the canonical form: arch-bits-os followed by sorted features.
func (t Target) String() string {
	parts := make([]string, 0, 3+len(t.features))
	parts = append(parts, string(t.arch), strconv.Itoa(t.bits), string(t.os))
	for _, f := range t.features {
		parts = append(parts, string(f))
	}
	return strings.Join(parts, "-")
}

// Suffix returns the canonical form with '-' replaced by '_', usable inside a
// C identifier.
func (t Target) Suffix() string {
	return strings.ReplaceAll(t.String(), "-", "_")
}

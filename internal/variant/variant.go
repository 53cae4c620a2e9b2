// Package variant models the closed set of build configurations a driver can
// be invoked under: build type, protection backend and language.
package variant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownBuildType = errors.New("unknown build type")
	ErrUnknownBackend   = errors.New("unknown protection backend")
	ErrUnknownVariant   = errors.New("unknown variant")
)

// BuildType selects a toolchain installation root and a runtime-library
// build profile.
type BuildType uint8

const (
	Debug BuildType = iota
	Release
	Baseline
)

// BuildTypes lists every build type in declaration order.
var BuildTypes = []BuildType{Debug, Release, Baseline}

func (b BuildType) String() string {
	switch b {
	case Debug:
		return "debug"
	case Release:
		return "release"
	case Baseline:
		return "baseline"
	}
	panic(fmt.Sprintf("variant: invalid build type %d", uint8(b)))
}

// ParseBuildType is the only way to get a BuildType from a string.
func ParseBuildType(s string) (BuildType, error) {
	for _, b := range BuildTypes {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBuildType, s)
}

// Backend is the mechanism the instrumentation pass uses to enforce
// memory-access isolation.
type Backend uint8

const (
	Mask Backend = iota
	MPX
	None
)

var Backends = []Backend{Mask, MPX, None}

func (b Backend) String() string {
	switch b {
	case Mask:
		return "mask"
	case MPX:
		return "mpx"
	case None:
		return "none"
	}
	panic(fmt.Sprintf("variant: invalid backend %d", uint8(b)))
}

// Hardened reports whether binaries built with this backend are compiled
// against the hardened runtime (separate safe stack, explicit target).
func (b Backend) Hardened() bool {
	return b == MPX
}

func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Language selects include paths and runtime libraries.
type Language uint8

const (
	C Language = iota
	CXX
)

var Languages = []Language{C, CXX}

func (l Language) String() string {
	switch l {
	case C:
		return "c"
	case CXX:
		return "c++"
	}
	panic(fmt.Sprintf("variant: invalid language %d", uint8(l)))
}

// Variant is one runnable combination of build type, backend and language.
type Variant struct {
	Build   BuildType
	Backend Backend
	Lang    Language
}

// Name returns the entry-point name of v, e.g. "musl-clang++-release-mask".
// Baseline variants carry no backend suffix.
func (v Variant) Name() string {
	var sb strings.Builder
	sb.WriteString("musl-clang")
	if v.Lang == CXX {
		sb.WriteString("++")
	}
	sb.WriteString("-")
	sb.WriteString(v.Build.String())
	if v.Backend != None {
		sb.WriteString("-")
		sb.WriteString(v.Backend.String())
	}
	return sb.String()
}

func (v Variant) String() string {
	return v.Name()
}

// LinkerStub returns the file name of the per-configuration linker driver
// the compiler front end is pointed at with -fuse-ld.
func (v Variant) LinkerStub() string {
	return LinkerStub(v.Build, v.Lang)
}

// LinkerStub returns "ds-ld-<build>" for C and "ds-ld++-<build>" for C++.
func LinkerStub(b BuildType, l Language) string {
	if l == CXX {
		return "ds-ld++-" + b.String()
	}
	return "ds-ld-" + b.String()
}

// ParseLinkerStub is the inverse of LinkerStub.
func ParseLinkerStub(name string) (BuildType, Language, bool) {
	lang := C
	rest, ok := strings.CutPrefix(name, "ds-ld-")
	if !ok {
		if rest, ok = strings.CutPrefix(name, "ds-ld++-"); !ok {
			return 0, 0, false
		}
		lang = CXX
	}
	b, err := ParseBuildType(rest)
	if err != nil {
		return 0, 0, false
	}
	return b, lang, true
}

// Supported reports whether v is one of the variants exposed as a driver.
func (v Variant) Supported() bool {
	for _, s := range All() {
		if s == v {
			return true
		}
	}
	return false
}

// Lookup resolves an entry-point name to its variant.
func Lookup(name string) (Variant, error) {
	for _, v := range All() {
		if v.Name() == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

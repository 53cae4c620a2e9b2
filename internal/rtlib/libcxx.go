package rtlib

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/datashield/dsbuild/internal/variant"
	"github.com/datashield/dsbuild/pkgs/buildsys/cmake"
)

var ErrUnknownComponent = errors.New("unknown C++ runtime component")

// Component is one library of the C++ runtime.
type Component uint8

const (
	Unwind Component = iota
	ABI
	CXX
)

// Components is the build order: the ABI library's configuration references
// the unwinder, and the standard library's references both.
var Components = []Component{Unwind, ABI, CXX}

// String returns the command-line name of c.
func (c Component) String() string {
	switch c {
	case Unwind:
		return "unwind"
	case ABI:
		return "abi"
	case CXX:
		return "cxx"
	}
	panic(fmt.Sprintf("rtlib: invalid component %d", uint8(c)))
}

// lib is the library name used in build directories and scripts.
func (c Component) lib() string {
	switch c {
	case Unwind:
		return "libunwind"
	case ABI:
		return "libcxxabi"
	case CXX:
		return "libcxx"
	}
	panic(fmt.Sprintf("rtlib: invalid component %d", uint8(c)))
}

func ParseComponent(s string) (Component, error) {
	for _, c := range Components {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownComponent, s)
}

// BuildDir returns the build directory of c for profile, relative to the
// library source directory.
func (c Component) BuildDir(profile variant.BuildType) string {
	return "build-" + c.lib() + "-" + profileName(profile)
}

// Script returns the cmake wrapper script of c for profile, relative to the
// build directory.
func (c Component) Script(profile variant.BuildType) string {
	return "../" + c.lib() + "_cmake_" + profileName(profile) + ".sh"
}

// BuildLibCXX rebuilds the named C++ runtime components for profile, or all
// of them in dependency order when none is named. It stops at the first
// failing component.
func BuildLibCXX(ctx context.Context, profile variant.BuildType, opts Options, only ...Component) error {
	dir, err := opts.dir()
	if err != nil {
		return err
	}
	comps := only
	if len(comps) == 0 {
		comps = Components
	}
	for _, c := range comps {
		cm := cmake.New(filepath.Join(dir, c.BuildDir(profile)), c.Script(profile)).Runner(opts.runner())
		for k, v := range opts.Defines {
			cm.Define(k, v)
		}
		if err := build(ctx, cm, opts.Env); err != nil {
			return err
		}
	}
	return nil
}

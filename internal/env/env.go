// Package env resolves the toolchain root of a build type from an explicit
// Config.
package env

import (
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"golang.org/x/sys/unix"

	"github.com/datashield/dsbuild/internal/variant"
)

// ConfigurationError reports a missing or invalid base directory or
// toolchain root.
type ConfigurationError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return "configuration: " + e.Op + ": " + e.Err.Error()
	}
	return "configuration: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

var (
	ErrHomeUnset = errors.New(HomeVar + " is not set")
	errNotDir    = errors.New("not a directory")
)

// Root is the self-contained toolchain tree of one build type.
type Root struct {
	Dir          string
	CC           string
	CXX          string
	LD           string
	Include      string
	Lib          string
	ClangInclude string
	CXXInclude   string
}

// SysrootDir returns the toolchain root directory of a build type under home.
func SysrootDir(home string, bt variant.BuildType) string {
	return filepath.Join(home, "ds_sysroot_"+bt.String())
}

// Resolve computes the toolchain root for bt. It only reads the filesystem:
// for a fixed tree and Config it always returns the same Root.
func Resolve(cfg Config, bt variant.BuildType) (*Root, error) {
	if cfg.Home == "" {
		return nil, &ConfigurationError{Op: "resolve", Err: ErrHomeUnset}
	}
	if err := checkDir(cfg.Home); err != nil {
		return nil, err
	}
	dir := SysrootDir(cfg.Home, bt)
	if err := checkDir(dir); err != nil {
		return nil, err
	}

	lib := filepath.Join(dir, "lib")
	version := cfg.ClangVersion
	if version == "" {
		version = latestClang(filepath.Join(lib, "clang"))
	}
	include := filepath.Join(dir, "include")
	return &Root{
		Dir:          dir,
		CC:           filepath.Join(dir, "bin", "clang"),
		CXX:          filepath.Join(dir, "bin", "clang++"),
		LD:           filepath.Join(dir, "bin", "ld.lld"),
		Include:      include,
		Lib:          lib,
		ClangInclude: filepath.Join(lib, "clang", version, "include"),
		CXXInclude:   filepath.Join(include, "c++", "v1"),
	}, nil
}

// Bin returns the path of name inside the root's bin directory.
func (r *Root) Bin(name string) string {
	return filepath.Join(r.Dir, "bin", name)
}

// Compiler returns the front end used for lang.
func (r *Root) Compiler(lang variant.Language) string {
	if lang == variant.CXX {
		return r.CXX
	}
	return r.CC
}

// Check verifies that the front end for lang and the linker are executable.
func (r *Root) Check(lang variant.Language) error {
	for _, bin := range []string{r.Compiler(lang), r.LD} {
		if err := unix.Access(bin, unix.X_OK); err != nil {
			return &ConfigurationError{Op: "check", Path: bin, Err: err}
		}
	}
	return nil
}

// Exported variables for runtime-library configure scripts.
const (
	SysrootExport = "DS_SYSROOT"
	CCExport      = "DS_CC"
	CXXExport     = "DS_CXX"
	LDExport      = "DS_LD"
	TargetExport  = "DS_TARGET"
)

// Exports returns the toolchain of r and the target triple as environment
// variables for configure scripts.
func (r *Root) Exports(target string) map[string]string {
	return map[string]string{
		SysrootExport: r.Dir,
		CCExport:      r.CC,
		CXXExport:     r.CXX,
		LDExport:      r.LD,
		TargetExport:  target,
	}
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return &ConfigurationError{Op: "stat", Path: dir, Err: err}
	}
	if !fi.IsDir() {
		return &ConfigurationError{Op: "stat", Path: dir, Err: errNotDir}
	}
	return nil
}

// latestClang returns the highest version directory under dir, or
// DefaultClangVersion when there is none.
func latestClang(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return DefaultClangVersion
	}
	best := ""
	for _, e := range entries {
		if !e.IsDir() || !semver.IsValid("v"+e.Name()) {
			continue
		}
		if best == "" || semver.Compare("v"+e.Name(), "v"+best) > 0 {
			best = e.Name()
		}
	}
	if best == "" {
		return DefaultClangVersion
	}
	return best
}

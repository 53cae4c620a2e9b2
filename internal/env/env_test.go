package env

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/datashield/dsbuild/internal/variant"
)

func makeHome(t *testing.T, builds ...variant.BuildType) string {
	t.Helper()
	home := t.TempDir()
	for _, bt := range builds {
		if err := os.MkdirAll(filepath.Join(SysrootDir(home, bt), "lib"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return home
}

func TestResolvePathsUnderRoot(t *testing.T) {
	home := makeHome(t, variant.BuildTypes...)
	for _, bt := range variant.BuildTypes {
		t.Run(bt.String(), func(t *testing.T) {
			root, err := Resolve(Config{Home: home}, bt)
			if err != nil {
				t.Fatalf("Resolve() returned error: %v", err)
			}
			if root.Dir != filepath.Join(home, "ds_sysroot_"+bt.String()) {
				t.Fatalf("Dir = %q", root.Dir)
			}
			for _, p := range []string{root.CC, root.CXX, root.LD, root.Include, root.Lib, root.ClangInclude, root.CXXInclude} {
				if !strings.HasPrefix(p, root.Dir+string(filepath.Separator)) {
					t.Errorf("%q is not under %q", p, root.Dir)
				}
			}
			if filepath.Base(root.LD) != "ld.lld" {
				t.Errorf("LD = %q, want ld.lld", root.LD)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	home := makeHome(t, variant.Release)
	cfg := Config{Home: home}
	r1, err := Resolve(cfg, variant.Release)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Resolve(cfg, variant.Release)
	if err != nil {
		t.Fatal(err)
	}
	if *r1 != *r2 {
		t.Errorf("Resolve() not referentially transparent: %+v != %+v", r1, r2)
	}
}

func TestResolveConfigurationErrors(t *testing.T) {
	home := makeHome(t, variant.Debug)
	file := filepath.Join(home, "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  Config
		bt   variant.BuildType
	}{
		{"unset", Config{}, variant.Debug},
		{"missing home", Config{Home: filepath.Join(home, "nope")}, variant.Debug},
		{"home is a file", Config{Home: file}, variant.Debug},
		{"missing root", Config{Home: home}, variant.Release},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.cfg, tt.bt)
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("Resolve() err = %v, want *ConfigurationError", err)
			}
		})
	}

	_, err := Resolve(Config{}, variant.Debug)
	if !errors.Is(err, ErrHomeUnset) {
		t.Errorf("Resolve() err = %v, want ErrHomeUnset", err)
	}
}

func TestResolveClangVersion(t *testing.T) {
	home := makeHome(t, variant.Debug)
	lib := filepath.Join(SysrootDir(home, variant.Debug), "lib")

	root, err := Resolve(Config{Home: home}, variant.Debug)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(lib, "clang", DefaultClangVersion, "include"); root.ClangInclude != want {
		t.Errorf("ClangInclude = %q, want %q", root.ClangInclude, want)
	}

	for _, v := range []string{"3.9.0", "10.0.1", "4.0.0", "notaversion"} {
		if err := os.MkdirAll(filepath.Join(lib, "clang", v, "include"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	root, err = Resolve(Config{Home: home}, variant.Debug)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(lib, "clang", "10.0.1", "include"); root.ClangInclude != want {
		t.Errorf("ClangInclude = %q, want %q", root.ClangInclude, want)
	}

	root, err = Resolve(Config{Home: home, ClangVersion: "4.0.0"}, variant.Debug)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(lib, "clang", "4.0.0", "include"); root.ClangInclude != want {
		t.Errorf("ClangInclude = %q, want %q", root.ClangInclude, want)
	}
}

func TestCheck(t *testing.T) {
	home := makeHome(t, variant.Debug)
	root, err := Resolve(Config{Home: home}, variant.Debug)
	if err != nil {
		t.Fatal(err)
	}
	var cerr *ConfigurationError
	if err := root.Check(variant.C); !errors.As(err, &cerr) {
		t.Fatalf("Check() on empty root err = %v, want *ConfigurationError", err)
	}

	if err := os.MkdirAll(filepath.Join(root.Dir, "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, bin := range []string{root.CC, root.LD} {
		if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// A C-only toolchain does not need the C++ front end.
	if err := root.Check(variant.C); err != nil {
		t.Errorf("Check(c) returned error: %v", err)
	}
	if err := root.Check(variant.CXX); !errors.As(err, &cerr) || cerr.Path != root.CXX {
		t.Errorf("Check(c++) without clang++ err = %v, want *ConfigurationError for %s", err, root.CXX)
	}

	if err := os.WriteFile(root.CXX, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := root.Check(variant.CXX); err != nil {
		t.Errorf("Check(c++) returned error: %v", err)
	}
}

func TestExports(t *testing.T) {
	home := makeHome(t, variant.Release)
	root, err := Resolve(Config{Home: home}, variant.Release)
	if err != nil {
		t.Fatal(err)
	}
	got := root.Exports(DefaultTarget)
	want := map[string]string{
		"DS_SYSROOT": root.Dir,
		"DS_CC":      root.CC,
		"DS_CXX":     root.CXX,
		"DS_LD":      root.LD,
		"DS_TARGET":  DefaultTarget,
	}
	if !maps.Equal(got, want) {
		t.Errorf("Exports() = %v, want %v", got, want)
	}
}

func TestFromEnviron(t *testing.T) {
	home := t.TempDir()
	vars := map[string]string{
		HomeVar:    home,
		CFlagsVar:  `-DNAME="two words" -g`,
		VerboseVar: "1",
	}
	cfg, err := FromEnviron(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatalf("FromEnviron() returned error: %v", err)
	}
	if cfg.Home != home {
		t.Errorf("Home = %q", cfg.Home)
	}
	if want := []string{"-DNAME=two words", "-g"}; !slices.Equal(cfg.ExtraFlags, want) {
		t.Errorf("ExtraFlags = %q, want %q", cfg.ExtraFlags, want)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.Target != DefaultTarget || cfg.Jobs != DefaultJobs {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if want := filepath.Join(home, "linker", "linker_script.lds"); cfg.LinkerScript != want {
		t.Errorf("LinkerScript = %q, want %q", cfg.LinkerScript, want)
	}
}

func TestFromEnvironConfigFile(t *testing.T) {
	home := t.TempDir()
	content := `clang_version: "4.0.0"
target: x86_64-pc-linux-musl
linker_script: /opt/ds/script.lds
jobs: 2
extra_flags: ["-g"]
cmake_defines:
  LIBCXX_ENABLE_ASSERTIONS: "ON"
`
	if err := os.WriteFile(filepath.Join(home, "dsbuild.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	vars := map[string]string{HomeVar: home}
	cfg, err := FromEnviron(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatalf("FromEnviron() returned error: %v", err)
	}
	want := Config{
		Home:         home,
		ClangVersion: "4.0.0",
		Target:       "x86_64-pc-linux-musl",
		LinkerScript: "/opt/ds/script.lds",
		Jobs:         2,
		ExtraFlags:   []string{"-g"},
	}
	if cfg.Home != want.Home || cfg.ClangVersion != want.ClangVersion || cfg.Target != want.Target ||
		cfg.LinkerScript != want.LinkerScript || cfg.Jobs != want.Jobs || !slices.Equal(cfg.ExtraFlags, want.ExtraFlags) {
		t.Errorf("FromEnviron() = %+v, want %+v", cfg, want)
	}
	if got := cfg.CMakeDefines["LIBCXX_ENABLE_ASSERTIONS"]; got != "ON" {
		t.Errorf("CMakeDefines = %v, want LIBCXX_ENABLE_ASSERTIONS=ON", cfg.CMakeDefines)
	}

	// DS_CFLAGS overrides the file.
	vars[CFlagsVar] = "-O1"
	cfg, err = FromEnviron(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.ExtraFlags, []string{"-O1"}) {
		t.Errorf("ExtraFlags = %q, want [-O1]", cfg.ExtraFlags)
	}
}

func TestFromEnvironErrors(t *testing.T) {
	home := t.TempDir()
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing explicit config", map[string]string{HomeVar: home, ConfigVar: filepath.Join(home, "missing.yaml")}},
		{"unbalanced quote", map[string]string{HomeVar: home, CFlagsVar: `-D"oops`}},
		{"bad verbose", map[string]string{HomeVar: home, VerboseVar: "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromEnviron(func(k string) string { return tt.vars[k] }); err == nil {
				t.Error("FromEnviron() returned nil error")
			}
		})
	}
}

package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnviron.
const (
	HomeVar    = "DS_HOME"
	ConfigVar  = "DS_CONFIG"
	CFlagsVar  = "DS_CFLAGS"
	VerboseVar = "DS_VERBOSE"
)

const (
	DefaultTarget       = "x86_64-unknown-linux-musl"
	DefaultClangVersion = "3.9.0"
	DefaultJobs         = 8

	configFileName = "dsbuild.yaml"
)

// Config is the explicit configuration threaded into the resolver and the
// drivers. Nothing below the command line reads the process environment.
type Config struct {
	// Home is the base directory holding one ds_sysroot_<build> tree per
	// build type, and the linker script.
	Home string `yaml:"-"`
	// ClangVersion names the lib/clang/<version> resource directory. Empty
	// selects the highest version installed in the toolchain root.
	ClangVersion string `yaml:"clang_version"`
	// Target is the machine triple passed to hardened compiles.
	Target string `yaml:"target"`
	// LinkerScript is passed to the linker with -T.
	LinkerScript string `yaml:"linker_script"`
	// Jobs is the parallelism of the libc make step.
	Jobs int `yaml:"jobs"`
	// ExtraFlags are inserted in front of the user's compiler arguments.
	ExtraFlags []string `yaml:"extra_flags"`
	// CMakeDefines are cache entries passed to every C++ runtime configure
	// step. Command-line defines override them.
	CMakeDefines map[string]string `yaml:"cmake_defines"`
	Verbose      bool              `yaml:"verbose"`
}

// withDefaults fills every unset field.
func (c Config) withDefaults() Config {
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.LinkerScript == "" && c.Home != "" {
		c.LinkerScript = filepath.Join(c.Home, "linker", "linker_script.lds")
	}
	if c.Jobs <= 0 {
		c.Jobs = DefaultJobs
	}
	return c
}

// FromEnviron builds a Config from getenv, usually os.Getenv. A config file
// named by DS_CONFIG, or dsbuild.yaml under DS_HOME when present, is merged
// first; DS_CFLAGS and DS_VERBOSE then override it.
func FromEnviron(getenv func(string) string) (Config, error) {
	var cfg Config
	home := getenv(HomeVar)

	path := getenv(ConfigVar)
	explicit := path != ""
	if !explicit && home != "" {
		path = filepath.Join(home, configFileName)
	}
	if path != "" {
		loaded, err := LoadFile(path)
		switch {
		case err == nil:
			cfg = loaded
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, err
		}
	}
	cfg.Home = home

	if s := getenv(CFlagsVar); s != "" {
		flags, err := shellquote.Split(s)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", CFlagsVar, err)
		}
		cfg.ExtraFlags = flags
	}
	if s := getenv(VerboseVar); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", VerboseVar, err)
		}
		cfg.Verbose = v
	}
	return cfg.withDefaults(), nil
}

// LoadFile reads a YAML config file. Home is never taken from the file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Package rtlib rebuilds the runtime libraries that instrumented binaries
// link against: musl libc and the libunwind/libc++abi/libc++ triad.
//
// Every build owns its output directory: it is removed and recreated at the
// start of the run, so callers must not build the same profile concurrently.
package rtlib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"

	"github.com/datashield/dsbuild/internal/shell"
	"github.com/datashield/dsbuild/internal/variant"
	"github.com/datashield/dsbuild/pkgs/buildsys"
)

// Options configure a runtime-library build.
type Options struct {
	// Dir is the library source directory holding the configure scripts.
	// Build directories are created inside it. Empty means the working
	// directory.
	Dir string
	// Jobs is the parallelism of the libc make step.
	Jobs int
	// Defines are extra cmake cache entries for the C++ runtime builds.
	Defines map[string]string
	// Env is exported to every step, usually the toolchain variables of
	// env.Root.Exports.
	Env    map[string]string
	Runner *shell.Runner
}

func (o Options) dir() (string, error) {
	if o.Dir != "" {
		return o.Dir, nil
	}
	return os.Getwd()
}

func (o Options) runner() *shell.Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return &shell.Runner{}
}

// build recreates bs's build directory and runs configure, build and
// install with vars set, stopping at the first failure.
func build(ctx context.Context, bs buildsys.BuildSystem, vars map[string]string) error {
	for k, v := range vars {
		bs.Env(k, v)
	}
	dir := bs.BuildDir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	log.Info("building in", dir)
	if err := bs.Configure(ctx); err != nil {
		return fmt.Errorf("failed to configure %s: %w", filepath.Base(dir), err)
	}
	if err := bs.Build(ctx); err != nil {
		return fmt.Errorf("failed to build %s: %w", filepath.Base(dir), err)
	}
	if err := bs.Install(ctx); err != nil {
		return fmt.Errorf("failed to install %s: %w", filepath.Base(dir), err)
	}
	return nil
}

// profileName is the build profile of a build type as used in build
// directory and script names.
func profileName(p variant.BuildType) string {
	return p.String()
}

package internal

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/env"
	"github.com/datashield/dsbuild/internal/shell"
	"github.com/datashield/dsbuild/internal/variant"
)

var rootCmd = &cobra.Command{
	Use:   "dsbuild",
	Short: "dsbuild drives the DataShield clang toolchain",
	Long: `dsbuild builds statically linked, DataShield-instrumented binaries against a custom
sysroot, and rebuilds the runtime libraries they link against.

Installed under a variant name (e.g. musl-clang-release-mpx) or a linker stub
name (e.g. ds-ld-release) it behaves as that driver.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// getenv is replaced in tests.
var getenv = os.Getenv

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(dispatchArgs(filepath.Base(os.Args[0]), os.Args[1:]))
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var te *shell.ToolError
	if errors.As(err, &te) {
		log.Error(err)
		os.Exit(te.ExitCode)
	}
	log.Fatal(err)
}

// dispatchArgs turns an invocation under a driver name into the matching
// subcommand.
func dispatchArgs(name string, args []string) []string {
	if _, err := variant.Lookup(name); err == nil {
		return append([]string{name}, args...)
	}
	if _, _, ok := variant.ParseLinkerStub(name); ok {
		return append([]string{name}, args...)
	}
	return args
}

// loadConfig reads the configuration from the environment and applies the
// log level.
func loadConfig() (env.Config, error) {
	cfg, err := env.FromEnviron(getenv)
	if err != nil {
		return env.Config{}, err
	}
	if cfg.Verbose {
		log.SetOutputLevel(log.Ldebug)
	}
	return cfg, nil
}

// toolchainExports returns the variables exported to runtime-library
// configure scripts for profile. Without DS_HOME there is nothing to export.
func toolchainExports(cfg env.Config, profile variant.BuildType) (map[string]string, error) {
	if cfg.Home == "" {
		return nil, nil
	}
	root, err := env.Resolve(cfg, profile)
	if err != nil {
		return nil, err
	}
	return root.Exports(cfg.Target), nil
}

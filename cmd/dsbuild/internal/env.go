package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/env"
	"github.com/datashield/dsbuild/internal/variant"
)

var envCmd = &cobra.Command{
	Use:   "env <debug|release|baseline>",
	Short: "Print the toolchain root of a build type",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	bt, err := variant.ParseBuildType(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root, err := env.Resolve(cfg, bt)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, kv := range []struct{ k, v string }{
		{"ROOT", root.Dir},
		{"CC", root.CC},
		{"CXX", root.CXX},
		{"LD", root.LD},
		{"INCLUDE", root.Include},
		{"LIB", root.Lib},
		{"CLANG_INCLUDE", root.ClangInclude},
		{"CXX_INCLUDE", root.CXXInclude},
		{"TARGET", cfg.Target},
		{"LINKER_SCRIPT", cfg.LinkerScript},
	} {
		fmt.Fprintf(out, "%s=%s\n", kv.k, kv.v)
	}
	return nil
}

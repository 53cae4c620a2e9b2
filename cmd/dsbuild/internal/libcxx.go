package internal

import (
	"context"
	"fmt"
	"maps"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/rtlib"
	"github.com/datashield/dsbuild/internal/variant"
)

var libcxxDir string
var libcxxDefines map[string]string

var libcxxCmd = &cobra.Command{
	Use:   "libcxx <debug|release|baseline> [unwind|abi|cxx]",
	Short: "Rebuild the C++ runtime for a profile",
	Long: `Libcxx rebuilds libunwind, libc++abi and libc++ in that order, or only the
named component. Each one gets a fresh build-<lib>-<profile> directory, its
../<lib>_cmake_<profile>.sh configure script, then ninja and ninja install.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLibcxx,
}

func init() {
	libcxxCmd.Flags().StringVarP(&libcxxDir, "dir", "C", "", "C++ runtime source directory (default: current directory)")
	libcxxCmd.Flags().StringToStringVarP(&libcxxDefines, "define", "D", nil, "Extra cmake cache entries (KEY=VALUE)")
	rootCmd.AddCommand(libcxxCmd)
}

func runLibcxx(cmd *cobra.Command, args []string) error {
	profile, err := variant.ParseBuildType(args[0])
	if err != nil {
		return err
	}
	var only []rtlib.Component
	if len(args) == 2 {
		c, err := rtlib.ParseComponent(args[1])
		if err != nil {
			return err
		}
		only = append(only, c)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	exports, err := toolchainExports(cfg, profile)
	if err != nil {
		return err
	}
	defines := maps.Clone(cfg.CMakeDefines)
	if defines == nil {
		defines = map[string]string{}
	}
	maps.Copy(defines, libcxxDefines)
	opts := rtlib.Options{Dir: libcxxDir, Defines: defines, Env: exports}
	if err := rtlib.BuildLibCXX(context.Background(), profile, opts, only...); err != nil {
		return fmt.Errorf("failed to build C++ runtime (%s): %w", profile, err)
	}
	return nil
}

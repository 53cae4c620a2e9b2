package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/rtlib"
	"github.com/datashield/dsbuild/internal/variant"
)

var libcDir string
var libcJobs int

var libcCmd = &cobra.Command{
	Use:   "libc <debug|release|baseline>",
	Short: "Rebuild the C library for a profile",
	Long: `Libc removes and recreates build-<profile>, runs ../<profile>-configure.sh
from inside it, then make and make install.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibc,
}

func init() {
	libcCmd.Flags().StringVarP(&libcDir, "dir", "C", "", "C library source directory (default: current directory)")
	libcCmd.Flags().IntVarP(&libcJobs, "jobs", "j", 0, "Parallel make jobs (default: from config)")
	rootCmd.AddCommand(libcCmd)
}

func runLibc(cmd *cobra.Command, args []string) error {
	profile, err := variant.ParseBuildType(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jobs := cfg.Jobs
	if libcJobs > 0 {
		jobs = libcJobs
	}
	exports, err := toolchainExports(cfg, profile)
	if err != nil {
		return err
	}
	opts := rtlib.Options{Dir: libcDir, Jobs: jobs, Env: exports}
	if err := rtlib.BuildLibC(context.Background(), profile, opts); err != nil {
		return fmt.Errorf("failed to build libc (%s): %w", profile, err)
	}
	return nil
}

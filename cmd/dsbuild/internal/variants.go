package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/variant"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the supported driver variants",
	Args:  cobra.NoArgs,
	RunE:  runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, v := range variant.All() {
		fmt.Fprintf(out, "%-28s %-8s %-5s %-3s %s\n", v.Name(), v.Build, v.Backend, v.Lang, v.LinkerStub())
	}
	return nil
}

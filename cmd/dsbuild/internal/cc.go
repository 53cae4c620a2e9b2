package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/driver"
	"github.com/datashield/dsbuild/internal/variant"
)

func init() {
	for _, v := range variant.All() {
		rootCmd.AddCommand(newVariantCmd(v))
	}
	for _, bt := range variant.BuildTypes {
		for _, lang := range variant.Languages {
			rootCmd.AddCommand(newLinkerCmd(bt, lang))
		}
	}
}

// newVariantCmd exposes v as a compiler driver. Flag parsing is off: every
// argument goes to the compiler front end verbatim.
func newVariantCmd(v variant.Variant) *cobra.Command {
	return &cobra.Command{
		Use:                v.Name() + " [compiler args...]",
		Short:              fmt.Sprintf("Compile %s with the %s build and %s protection", v.Lang, v.Build, v.Backend),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, err = driver.New(cfg).Compile(context.Background(), v, args)
			return err
		},
	}
}

// newLinkerCmd exposes the linker stub named by -fuse-ld in link commands.
func newLinkerCmd(bt variant.BuildType, lang variant.Language) *cobra.Command {
	return &cobra.Command{
		Use:                variant.LinkerStub(bt, lang) + " [linker args...]",
		Short:              fmt.Sprintf("Link %s objects against the %s runtime", lang, bt),
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, err = driver.New(cfg).Link(context.Background(), bt, lang, args)
			return err
		},
	}
}

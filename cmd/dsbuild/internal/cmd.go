package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datashield/dsbuild/internal/driver"
	"github.com/datashield/dsbuild/internal/variant"
)

var cmdCmd = &cobra.Command{
	Use:   "cmd <variant|linker-stub> [args...]",
	Short: "Print the command a driver would run",
	Long: `Cmd prints the compiler command of a variant, or the linker command of a
linker stub, without running it.`,
	DisableFlagParsing: true,
	Args:               cobra.MinimumNArgs(1),
	RunE:               runCmd,
}

func init() {
	rootCmd.AddCommand(cmdCmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d := driver.New(cfg)

	var line string
	if bt, lang, ok := variant.ParseLinkerStub(args[0]); ok {
		line, err = d.LinkCommand(bt, lang, args[1:])
	} else {
		v, lerr := variant.Lookup(args[0])
		if lerr != nil {
			return lerr
		}
		line, err = d.CompileCommand(v, args[1:])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

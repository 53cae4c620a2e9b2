package variant

import "fmt"

// PluginOptions returns the linker-plugin options for the backend of v,
// ending with the linker-script reference. The first element is "-Wl" so
// that the comma-joined form becomes a single -Wl, argument that the front
// end forwards to the linker verbatim.
//
// An uninstrumented variant has no plugin options.
func PluginOptions(v Variant, linkerScript string) []string {
	switch v.Backend {
	case Mask:
		// Forwarded with -mllvm, like MPX, not as -plugin-opt= options.
		return []string{
			"-Wl",
			"-mllvm,-datashield-lto",
			"-mllvm,-datashield-use-mask",
			"-mllvm,-datashield-save-module-after",
			"-mllvm,-datashield-debug-mode",
			"-mllvm,-debug-only=datashield",
			"-T" + linkerScript,
		}
	case MPX:
		return []string{
			"-Wl",
			"-mllvm,-datashield-lto",
			"-mllvm,-datashield-use-mpx",
			"-mllvm,-datashield-save-module-before",
			"-mllvm,-datashield-save-module-after",
			"-mllvm,-datashield-debug-mode",
			"-T" + linkerScript,
		}
	case None:
		return nil
	}
	panic(fmt.Sprintf("variant: invalid backend %d", uint8(v.Backend)))
}

// OptFlags returns the optimisation flags appended after the user's
// arguments for the build type of v. Baseline is measured against release,
// so it is optimised the same way.
func OptFlags(v Variant) []string {
	switch v.Build {
	case Release, Baseline:
		return []string{"-O3"}
	case Debug:
		return nil
	}
	panic(fmt.Sprintf("variant: invalid build type %d", uint8(v.Build)))
}

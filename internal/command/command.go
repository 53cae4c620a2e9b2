// Package command synthesizes the compiler front-end and linker command
// lines for a toolchain root. Nothing here executes a process.
package command

import (
	"slices"

	"github.com/kballard/go-shellquote"
)

// Line is an ordered command line; the first token is the program.
type Line []string

// String renders l for execution by sh -c. Tokens are quoted where needed,
// so each one reaches the program as a single argument.
func (l Line) String() string {
	return shellquote.Join(l...)
}

func (l *Line) add(args ...string) {
	*l = append(*l, args...)
}

// compileOnlyFlags stop the front end before the link step.
var compileOnlyFlags = []string{"-c", "-S", "-E"}

// LinkRequested reports whether the front end will run the linker for args.
func LinkRequested(args []string) bool {
	for _, a := range args {
		if slices.Contains(compileOnlyFlags, a) {
			return false
		}
	}
	return true
}

// StripPreprocess returns args without any -E. args is not modified, so
// stripping an already stripped list returns an equal list.
func StripPreprocess(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != "-E" {
			out = append(out, a)
		}
	}
	return out
}

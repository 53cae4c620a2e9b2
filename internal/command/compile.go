package command

import (
	"strings"

	"github.com/datashield/dsbuild/internal/env"
	"github.com/datashield/dsbuild/internal/variant"
)

// CompileOptions are the inputs of a front-end invocation besides the root.
type CompileOptions struct {
	Lang variant.Language
	// Hardened adds the safe-stack instrumentation and an explicit Target.
	Hardened bool
	Target   string
	// LinkerStub is passed with -fuse-ld when linking.
	LinkerStub string
	// PluginOptions are joined with commas into one argument.
	PluginOptions []string
	// Args are the user's arguments, appended last.
	Args []string
}

// Compile builds the front-end command line. The front end runs freestanding
// against root: no implicit standard library, no standard includes.
//
// The -fuse-ld flag and the joined plugin options come before Args so the
// user's own flags win where the front end deduplicates; when Args request
// no link, neither is emitted.
func Compile(root *env.Root, opts CompileOptions) Line {
	l := Line{root.Compiler(opts.Lang)}
	l.add("-static", "-v", "-flto", "-nostdlib", "-nostdinc")
	l.add("-isysroot", root.Dir, "--sysroot", root.Dir)
	if opts.Lang == variant.CXX {
		l.add("-isystem", root.CXXInclude)
	}
	l.add("-isystem", root.ClangInclude)
	l.add("-isystem", root.Include)

	if opts.Hardened {
		l.add("-fsanitize=safe-stack", "-target", opts.Target)
	}

	if LinkRequested(opts.Args) {
		l.add("-fuse-ld=" + opts.LinkerStub)
		if len(opts.PluginOptions) > 0 {
			l.add(strings.Join(opts.PluginOptions, ","))
		}
	}
	l.add(opts.Args...)
	return l
}

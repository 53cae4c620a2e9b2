package command

import (
	"path/filepath"

	"github.com/datashield/dsbuild/internal/env"
	"github.com/datashield/dsbuild/internal/variant"
)

// startupObjects are linked in this order into every binary.
var startupObjects = []string{"crt1.o", "crti.o", "crtn.o"}

// cxxArchives resolve the C++ runtime; they must precede libc.a, which
// satisfies what they leave undefined.
var cxxArchives = []string{"libc++.a", "libc++abi.a", "libunwind.a"}

// Link builds the linker command line for args as forwarded by the front
// end. Any -E is dropped: the linker does not understand it.
func Link(root *env.Root, lang variant.Language, args []string) Line {
	l := Line{root.LD}
	if lang == variant.CXX {
		l.add("--eh-frame-hdr")
	}
	l.add(StripPreprocess(args)...)
	l.add("-L" + root.Lib)
	for _, obj := range startupObjects {
		l.add(filepath.Join(root.Lib, obj))
	}
	if lang == variant.CXX {
		for _, a := range cxxArchives {
			l.add(filepath.Join(root.Lib, a))
		}
	}
	l.add(filepath.Join(root.Lib, "libc.a"))
	return l
}

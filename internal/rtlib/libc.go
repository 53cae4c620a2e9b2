package rtlib

import (
	"context"
	"path/filepath"

	"github.com/datashield/dsbuild/internal/variant"
	"github.com/datashield/dsbuild/pkgs/buildsys/autotools"
)

// BuildLibC rebuilds the C library for profile in <dir>/build-<profile> with
// ../<profile>-configure.sh, make -j<jobs> and make install.
func BuildLibC(ctx context.Context, profile variant.BuildType, opts Options) error {
	dir, err := opts.dir()
	if err != nil {
		return err
	}
	name := profileName(profile)
	a := autotools.New(filepath.Join(dir, "build-"+name), "../"+name+"-configure.sh").
		Jobs(opts.Jobs).
		Runner(opts.runner())
	return build(ctx, a, opts.Env)
}

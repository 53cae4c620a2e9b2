// Package autotools drives a configure-script/make/make-install cycle in an
// out-of-tree build directory.
package autotools

import (
	"context"
	"maps"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/datashield/dsbuild/internal/shell"
	"github.com/datashield/dsbuild/pkgs/buildsys"
)

// AutoTools runs a profile-specific configure script, then make.
type AutoTools struct {
	buildDir string
	script   string
	jobs     int
	env      map[string]string
	runner   *shell.Runner
}

var _ buildsys.BuildSystem = (*AutoTools)(nil)

// New returns an AutoTools building in buildDir. script is run from inside
// buildDir, so a relative script path is relative to it.
func New(buildDir, script string) *AutoTools {
	return &AutoTools{
		buildDir: buildDir,
		script:   script,
		env:      map[string]string{},
		runner:   &shell.Runner{},
	}
}

// Jobs sets the parallelism of the build step; 0 runs make serially.
func (a *AutoTools) Jobs(n int) *AutoTools {
	a.jobs = n
	return a
}

// Runner replaces the runner used for every step.
func (a *AutoTools) Runner(r *shell.Runner) *AutoTools {
	a.runner = r
	return a
}

func (a *AutoTools) Env(key, value string) {
	if a.env == nil {
		a.env = map[string]string{}
	}
	a.env[key] = value
}

// Configure runs the configure script with args.
func (a *AutoTools) Configure(ctx context.Context, args ...string) error {
	return a.run(ctx, append([]string{a.script}, args...))
}

// Build runs make (or the provided command) in the build directory.
func (a *AutoTools) Build(ctx context.Context, args ...string) error {
	if len(args) > 0 {
		return a.run(ctx, args)
	}
	cmd := []string{"make"}
	if a.jobs > 0 {
		cmd = append(cmd, "-j"+strconv.Itoa(a.jobs))
	}
	return a.run(ctx, cmd)
}

// Install runs make install (or the provided command) in the build directory.
func (a *AutoTools) Install(ctx context.Context, args ...string) error {
	if len(args) > 0 {
		return a.run(ctx, args)
	}
	return a.run(ctx, []string{"make", "install"})
}

func (a *AutoTools) BuildDir() string {
	return a.buildDir
}

func (a *AutoTools) run(ctx context.Context, cmd []string) error {
	r := a.runner.InDir(a.buildDir)
	if len(a.env) > 0 {
		env := make(map[string]string, len(r.Env)+len(a.env))
		maps.Copy(env, r.Env)
		maps.Copy(env, a.env)
		r.Env = env
	}
	return r.Run(ctx, shellquote.Join(cmd...))
}

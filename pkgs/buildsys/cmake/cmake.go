// Package cmake drives a CMake configure wrapper script followed by Ninja.
package cmake

import (
	"context"
	"maps"
	"sort"

	"github.com/kballard/go-shellquote"

	"github.com/datashield/dsbuild/internal/shell"
	"github.com/datashield/dsbuild/pkgs/buildsys"
)

const builder = "ninja"

// CMake wraps a configure script that invokes cmake for the Ninja
// generator. Cache definitions are appended to the script's arguments, so the
// script must forward "$@" to cmake.
type CMake struct {
	buildDir string
	script   string
	defines  map[string]string
	env      map[string]string
	runner   *shell.Runner
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake building in buildDir with the configure script, run
// from inside buildDir.
func New(buildDir, script string) *CMake {
	return &CMake{
		buildDir: buildDir,
		script:   script,
		defines:  map[string]string{},
		env:      map[string]string{},
		runner:   &shell.Runner{},
	}
}

func (c *CMake) Runner(r *shell.Runner) *CMake {
	c.runner = r
	return c
}

// Define adds a -D<key>=<value> cache entry to the configure step.
func (c *CMake) Define(key, value string) *CMake {
	if c.defines == nil {
		c.defines = map[string]string{}
	}
	c.defines[key] = value
	return c
}

func (c *CMake) Env(key, value string) {
	if c.env == nil {
		c.env = map[string]string{}
	}
	c.env[key] = value
}

// Configure runs the wrapper script with the sorted -D definitions, then args.
func (c *CMake) Configure(ctx context.Context, args ...string) error {
	cmd := append([]string{c.script}, c.definesArgs()...)
	return c.run(ctx, append(cmd, args...))
}

func (c *CMake) Build(ctx context.Context, args ...string) error {
	return c.run(ctx, append([]string{builder}, args...))
}

// Install runs the install target of the build tool.
func (c *CMake) Install(ctx context.Context, args ...string) error {
	return c.run(ctx, append([]string{builder, "install"}, args...))
}

func (c *CMake) BuildDir() string {
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, "-D"+k+"="+c.defines[k])
	}
	return args
}

func (c *CMake) run(ctx context.Context, cmd []string) error {
	r := c.runner.InDir(c.buildDir)
	if len(c.env) > 0 {
		env := make(map[string]string, len(r.Env)+len(c.env))
		maps.Copy(env, r.Env)
		maps.Copy(env, c.env)
		r.Env = env
	}
	return r.Run(ctx, shellquote.Join(cmd...))
}

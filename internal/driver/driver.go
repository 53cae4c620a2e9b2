// Package driver runs the compile and link commands of a variant.
package driver

import (
	"context"
	"fmt"

	"github.com/qiniu/x/log"

	"github.com/datashield/dsbuild/internal/command"
	"github.com/datashield/dsbuild/internal/env"
	"github.com/datashield/dsbuild/internal/shell"
	"github.com/datashield/dsbuild/internal/variant"
)

// Driver builds variant command lines from Config and executes them.
type Driver struct {
	Config env.Config
	Runner *shell.Runner
}

func New(cfg env.Config) *Driver {
	return &Driver{Config: cfg, Runner: &shell.Runner{}}
}

// CompileCommand returns the front-end command for v without running it.
func (d *Driver) CompileCommand(v variant.Variant, args []string) (string, error) {
	_, l, err := d.compileLine(v, args)
	if err != nil {
		return "", err
	}
	return l.String(), nil
}

// Compile runs the front end for v on args and returns the command it ran.
// A failing compiler is returned as a *shell.ToolError; nothing is retried.
func (d *Driver) Compile(ctx context.Context, v variant.Variant, args []string) (string, error) {
	root, l, err := d.compileLine(v, args)
	if err != nil {
		return "", err
	}
	if err := root.Check(v.Lang); err != nil {
		return "", err
	}
	return l.String(), d.run(ctx, l.String())
}

// LinkCommand returns the linker command for the stub of (bt, lang).
func (d *Driver) LinkCommand(bt variant.BuildType, lang variant.Language, args []string) (string, error) {
	root, err := env.Resolve(d.Config, bt)
	if err != nil {
		return "", err
	}
	return command.Link(root, lang, args).String(), nil
}

// Link runs the linker on the arguments forwarded by the front end.
func (d *Driver) Link(ctx context.Context, bt variant.BuildType, lang variant.Language, args []string) (string, error) {
	root, err := env.Resolve(d.Config, bt)
	if err != nil {
		return "", err
	}
	if err := root.Check(lang); err != nil {
		return "", err
	}
	cmd := command.Link(root, lang, args).String()
	return cmd, d.run(ctx, cmd)
}

func (d *Driver) compileLine(v variant.Variant, args []string) (*env.Root, command.Line, error) {
	if !v.Supported() {
		return nil, nil, fmt.Errorf("%w: %s", variant.ErrUnknownVariant, v)
	}
	root, err := env.Resolve(d.Config, v.Build)
	if err != nil {
		return nil, nil, err
	}

	all := append(append(append([]string(nil), d.Config.ExtraFlags...), args...), variant.OptFlags(v)...)
	return root, command.Compile(root, command.CompileOptions{
		Lang:          v.Lang,
		Hardened:      v.Backend.Hardened(),
		Target:        d.Config.Target,
		LinkerStub:    root.Bin(v.LinkerStub()),
		PluginOptions: variant.PluginOptions(v, d.Config.LinkerScript),
		Args:          all,
	}), nil
}

func (d *Driver) run(ctx context.Context, cmdline string) error {
	log.Debug(cmdline)
	return d.Runner.Run(ctx, cmdline)
}

// Package shell runs synthesized command lines through sh -c.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// ToolError reports a non-zero exit of an external tool.
type ToolError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
}

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode returns the exit status carried by err: the tool's status for a
// ToolError, 1 for any other error and 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te.ExitCode
	}
	return 1
}

// Runner executes command lines. The zero value runs in the current
// directory with the process's stdio.
type Runner struct {
	Dir    string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmdline with sh -c and waits for it. A non-zero exit is
// returned as a *ToolError.
func (r *Runner) Run(ctx context.Context, cmdline string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = orDefault(r.Stdout, os.Stdout)
	cmd.Stderr = orDefault(r.Stderr, os.Stderr)
	if len(r.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), r.Env)
	}
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ToolError{Command: cmdline, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("failed to run %q: %w", cmdline, err)
}

// InDir returns a copy of r that runs in dir.
func (r *Runner) InDir(dir string) *Runner {
	c := *r
	c.Dir = dir
	return &c
}

func orDefault(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}

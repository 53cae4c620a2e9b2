// Package faketool installs recording stand-ins for external build tools in
// tests.
package faketool

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// script appends "<name> <args>" and the working directory's base name to
// $FAKETOOL_LOG, then exits with $FAKETOOL_FAIL_<name> or 0.
const script = `#!/bin/sh
name=$(basename "$0")
line="$name"
[ $# -gt 0 ] && line="$line $*"
echo "$(basename "$(pwd -P)"): $line" >> "$FAKETOOL_LOG"
var=$(echo "FAKETOOL_FAIL_$name" | tr -c 'A-Za-z0-9_\n' '_')
eval "code=\${$var:-0}"
exit $code
`

// Set is a directory of fake tools plus the log they write to.
type Set struct {
	Bin string
	Log string
}

// Install writes one fake executable per name into a fresh directory. It
// skips the test when sh is unavailable.
func Install(t *testing.T, names ...string) *Set {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
	dir := t.TempDir()
	s := &Set{Bin: filepath.Join(dir, "bin"), Log: filepath.Join(dir, "calls.log")}
	if err := os.MkdirAll(s.Bin, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		s.Write(t, filepath.Join(s.Bin, name))
	}
	return s
}

// Write installs the fake tool at path, e.g. a configure script.
func (s *Set) Write(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
}

// Env returns the variables a runner needs to find the fakes and log calls.
func (s *Set) Env() map[string]string {
	return map[string]string{
		"PATH":         s.Bin + string(os.PathListSeparator) + os.Getenv("PATH"),
		"FAKETOOL_LOG": s.Log,
	}
}

// Calls returns the logged invocations in order.
func (s *Set) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(s.Log)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

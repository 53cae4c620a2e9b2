package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

func TestRunSuccess(t *testing.T) {
	requireSh(t)
	var out bytes.Buffer
	r := &Runner{Stdout: &out, Env: map[string]string{"DS_TEST_VALUE": "hello"}}
	if err := r.Run(context.Background(), `echo "$DS_TEST_VALUE"`); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Errorf("stdout = %q, want %q", got, "hello")
	}
}

func TestRunExitStatus(t *testing.T) {
	requireSh(t)
	r := &Runner{Stderr: &bytes.Buffer{}}
	err := r.Run(context.Background(), "exit 3")
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("Run() err = %v, want *ToolError", err)
	}
	if te.ExitCode != 3 || te.Command != "exit 3" {
		t.Errorf("ToolError = %+v", te)
	}
	if got := ExitCode(err); got != 3 {
		t.Errorf("ExitCode() = %d, want 3", got)
	}
}

func TestRunInDir(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()
	r := (&Runner{}).InDir(dir)
	if err := r.Run(context.Background(), "touch marker"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("command did not run in %s: %v", dir, err)
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d", got)
	}
	if got := ExitCode(errors.New("boom")); got != 1 {
		t.Errorf("ExitCode(other) = %d", got)
	}
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv([]string{"B=1", "A=2"}, map[string]string{"A": "3", "C": "4"})
	want := []string{"A=3", "B=1", "C=4"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("mergeEnv() = %v, want %v", got, want)
	}
}

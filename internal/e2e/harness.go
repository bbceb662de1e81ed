// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running CLI commands in an isolated
// environment, fixture management, and assertion helpers.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/skillfoundry/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the process exit code the command maps to.
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness runs CLI commands with an isolated HOME and config directory.
type Harness struct {
	t       *testing.T
	homeDir string
}

// NewHarness creates a new E2E test harness. HOME and XDG_CONFIG_HOME point
// into a temporary directory and SKILLFOUNDRY_* overrides are cleared.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	homeDir := t.TempDir()
	h := &Harness{t: t, homeDir: homeDir}

	h.SetEnv("HOME", homeDir)
	h.SetEnv("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config"))
	for _, name := range []string{
		"SKILLFOUNDRY_SCAFFOLD_OUTPUT_DIR",
		"SKILLFOUNDRY_SCAFFOLD_AUTHOR",
		"SKILLFOUNDRY_OUTPUT_FORMAT",
		"SKILLFOUNDRY_OUTPUT_COLOR",
		"SKILLFOUNDRY_OUTPUT_QUIET",
		"SKILLFOUNDRY_VALIDATION_STRICT",
	} {
		h.SetEnv(name, "")
	}

	return h
}

// SetEnv sets an environment variable for CLI commands run through this
// harness. The environment is restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// ConfigPath returns the default config file location inside the harness.
func (h *Harness) ConfigPath() string {
	return filepath.Join(h.homeDir, ".config", "skillfoundry", "config.yaml")
}

// Run executes a CLI command with the given arguments and captures stdout.
// Colors are disabled so output can be compared as plain text.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	if len(args) == 0 || args[0] != "skillfoundry" {
		args = append([]string{"skillfoundry", "--no-color"}, args...)
	}

	oldStdout := os.Stdout
	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = stdoutW

	// Drain concurrently so large reports cannot fill the pipe buffer.
	var stdoutBuf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&stdoutBuf, stdoutR)
	}()

	cmdErr := cli.Run(context.Background(), args)

	if err := stdoutW.Close(); err != nil {
		h.t.Fatalf("failed to close stdout pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	<-copyDone
	if copyErr != nil {
		h.t.Fatalf("failed to read captured stdout: %v", copyErr)
	}

	return &Result{
		Stdout:   stdoutBuf.String(),
		Err:      cmdErr,
		ExitCode: cli.ExitCode(cmdErr),
	}
}

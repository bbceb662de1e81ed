package e2e

import (
	"os"
	"strings"
	"testing"
)

// AssertSuccess fails the test if the command returned an error.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("command failed (exit %d): %v\nstdout:\n%s", r.ExitCode, r.Err, r.Stdout)
	}
}

// AssertError fails the test if the command did not return an error.
func AssertError(t *testing.T, r *Result) {
	t.Helper()
	if r.Err == nil {
		t.Fatalf("command unexpectedly succeeded\nstdout:\n%s", r.Stdout)
	}
}

// AssertExitCode fails the test if the mapped exit code differs.
func AssertExitCode(t *testing.T, r *Result, want int) {
	t.Helper()
	if r.ExitCode != want {
		t.Errorf("exit code = %d, want %d (err: %v)\nstdout:\n%s", r.ExitCode, want, r.Err, r.Stdout)
	}
}

// AssertErrorContains fails the test unless the command error mentions substr.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	AssertError(t, r)
	if !strings.Contains(r.Err.Error(), substr) {
		t.Errorf("error %q does not mention %q", r.Err, substr)
	}
}

// AssertOutputContains fails the test if stdout lacks substr.
func AssertOutputContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	if !strings.Contains(r.Stdout, substr) {
		t.Errorf("stdout lacks %q\nstdout:\n%s", substr, r.Stdout)
	}
}

// AssertOutputNotContains fails the test if stdout contains substr.
func AssertOutputNotContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	if strings.Contains(r.Stdout, substr) {
		t.Errorf("stdout unexpectedly has %q\nstdout:\n%s", substr, r.Stdout)
	}
}

// AssertOutputEquals compares the whole of stdout.
func AssertOutputEquals(t *testing.T, r *Result, want string) {
	t.Helper()
	if r.Stdout != want {
		t.Errorf("stdout mismatch\ngot:  %q\nwant: %q", r.Stdout, want)
	}
}

// AssertReported fails the test unless the text report has a line for path
// starting with the given status symbol (✓, ⚠ or ✗).
func AssertReported(t *testing.T, r *Result, symbol, path string) {
	t.Helper()
	want := symbol + " " + path
	for line := range strings.Lines(r.Stdout) {
		if strings.TrimRight(line, "\n") == want {
			return
		}
	}
	t.Errorf("report has no line %q\nstdout:\n%s", want, r.Stdout)
}

// AssertDiagnostic fails the test unless the text report lists a diagnostic
// with the given label (ERROR or WARNING) whose message starts with prefix.
func AssertDiagnostic(t *testing.T, r *Result, label, prefix string) {
	t.Helper()
	want := "   " + label + ": " + prefix
	for line := range strings.Lines(r.Stdout) {
		if strings.HasPrefix(line, want) {
			return
		}
	}
	t.Errorf("report has no %s starting with %q\nstdout:\n%s", label, prefix, r.Stdout)
}

// AssertFileContains fails the test if the file at path lacks substr.
func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	// #nosec G304 - path is provided by test code
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s lacks %q\ncontent:\n%s", path, substr, data)
	}
}

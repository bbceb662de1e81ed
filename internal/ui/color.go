// Package ui provides terminal output helpers for skillfoundry.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/klauern/skillfoundry/internal/validation"
)

// Color function types for styled output.
var (
	// Success is used for valid files (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for errors and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for portability and style warnings (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Color modes accepted by ApplyColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	return status(Success(SymbolSuccess), msg)
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	return status(Error(SymbolError), msg)
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	return status(Warning(SymbolWarning), msg)
}

func status(symbol, msg string) string {
	if msg == "" {
		return symbol
	}
	return symbol + " " + msg
}

// FileStatus returns the status line for a validated file. Under strict,
// warnings are reported with the error symbol.
func FileStatus(path string, r validation.Result, strict bool) string {
	switch {
	case r.HasErrors(), strict && r.HasWarnings():
		return StatusError(path)
	case r.HasWarnings():
		return StatusWarning(path)
	default:
		return StatusSuccess(path)
	}
}

// DiagnosticLine formats one diagnostic as an indented, labelled line.
func DiagnosticLine(d validation.Diagnostic) string {
	label := strings.ToUpper(d.Severity.String())
	if d.Severity == validation.SeverityError {
		label = Error(label)
	} else {
		label = Warning(label)
	}
	return fmt.Sprintf("   %s: %s", label, d.Message)
}

// ApplyColorMode enables or disables color output. In auto mode the
// terminal detection done by fatih/color is left untouched.
func ApplyColorMode(mode string) error {
	switch mode {
	case ColorAuto, "":
	case ColorAlways:
		EnableColors()
	case ColorNever:
		DisableColors()
	default:
		return fmt.Errorf("unknown color mode %q", mode)
	}
	return nil
}

// DisableColors disables all color output.
// This is useful for piping output or for users who prefer no colors.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}

// Package export renders validation results as text, JSON, YAML, or Markdown.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/skillfoundry/internal/logging"
	"github.com/klauern/skillfoundry/internal/ui"
	"github.com/klauern/skillfoundry/internal/validation"
)

// Format represents the output format for a validation report.
type Format string

const (
	// FormatText prints one status line per file followed by its diagnostics.
	FormatText Format = "text"
	// FormatJSON renders the report as JSON.
	FormatJSON Format = "json"
	// FormatYAML renders the report as YAML.
	FormatYAML Format = "yaml"
	// FormatMarkdown renders the report as Markdown.
	FormatMarkdown Format = "markdown"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported report formats.
func AllFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: text, json, yaml, markdown)", s)
	}
	return format, nil
}

// Options configures report rendering.
type Options struct {
	// Format specifies the output format.
	Format Format
	// Strict reports files with warnings as failing.
	Strict bool
	// Quiet omits files that are valid and portable.
	Quiet bool
	// Pretty enables indentation for JSON.
	Pretty bool
}

// DefaultOptions returns the default report options.
func DefaultOptions() Options {
	return Options{
		Format: FormatText,
		Pretty: true,
	}
}

// Exporter renders validation reports.
type Exporter struct {
	opts Options
}

// New creates a new Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export writes the report for results to w in the configured format.
func (e *Exporter) Export(results []validation.FileResult, w io.Writer) error {
	defer logging.Timer("export")()

	logging.Debug("rendering report",
		slog.String("format", string(e.opts.Format)),
		logging.Count(len(results)),
		logging.Operation("export"),
	)

	var err error
	switch e.opts.Format {
	case FormatText:
		err = e.exportText(results, w)
	case FormatJSON:
		err = e.exportJSON(results, w)
	case FormatYAML:
		err = e.exportYAML(results, w)
	case FormatMarkdown:
		err = e.exportMarkdown(results, w)
	default:
		err = fmt.Errorf("unsupported format: %s", e.opts.Format)
	}

	if err != nil {
		logging.Error("report failed",
			slog.String("format", string(e.opts.Format)),
			logging.Err(err),
		)
	}
	return err
}

// Status values used in structured reports.
const (
	StatusValid   = "valid"
	StatusWarning = "warning"
	StatusError   = "error"
)

// fileStatus classifies a result, escalating warnings under strict.
func (e *Exporter) fileStatus(r validation.Result) string {
	switch {
	case r.HasErrors(), e.opts.Strict && r.HasWarnings():
		return StatusError
	case r.HasWarnings():
		return StatusWarning
	default:
		return StatusValid
	}
}

// report is the structured form shared by JSON and YAML output.
type report struct {
	Files   []fileReport `json:"files" yaml:"files"`
	Summary summary      `json:"summary" yaml:"summary"`
}

type fileReport struct {
	Path     string                  `json:"path" yaml:"path"`
	Status   string                  `json:"status" yaml:"status"`
	Errors   []validation.Diagnostic `json:"errors" yaml:"errors"`
	Warnings []validation.Diagnostic `json:"warnings" yaml:"warnings"`
}

type summary struct {
	Total    int  `json:"total" yaml:"total"`
	Valid    int  `json:"valid" yaml:"valid"`
	Warning  int  `json:"warning" yaml:"warning"`
	Error    int  `json:"error" yaml:"error"`
	Strict   bool `json:"strict" yaml:"strict"`
	ExitCode int  `json:"exit_code" yaml:"exit_code"`
}

// buildReport converts results into the structured report.
func (e *Exporter) buildReport(results []validation.FileResult) report {
	rep := report{
		Files: make([]fileReport, 0, len(results)),
		Summary: summary{
			Total:    len(results),
			Strict:   e.opts.Strict,
			ExitCode: validation.ExitCode(results, e.opts.Strict),
		},
	}

	for _, fr := range results {
		status := e.fileStatus(fr.Result)
		switch status {
		case StatusValid:
			rep.Summary.Valid++
		case StatusWarning:
			rep.Summary.Warning++
		default:
			rep.Summary.Error++
		}

		if e.opts.Quiet && status == StatusValid {
			continue
		}
		rep.Files = append(rep.Files, fileReport{
			Path:     fr.Path,
			Status:   status,
			Errors:   nonNil(fr.Errors),
			Warnings: nonNil(fr.Warnings),
		})
	}
	return rep
}

func nonNil(d []validation.Diagnostic) []validation.Diagnostic {
	if d == nil {
		return []validation.Diagnostic{}
	}
	return d
}

// exportText prints the console report: a status line per file, then its
// errors and warnings. The closing summary is only printed when every file
// is valid and portable.
func (e *Exporter) exportText(results []validation.FileResult, w io.Writer) error {
	var sb strings.Builder

	for _, fr := range results {
		if e.opts.Quiet && fr.Portable() {
			continue
		}
		sb.WriteString(ui.FileStatus(fr.Path, fr.Result, e.opts.Strict))
		sb.WriteString("\n")
		for _, d := range fr.Errors {
			sb.WriteString(ui.DiagnosticLine(d))
			sb.WriteString("\n")
		}
		for _, d := range fr.Warnings {
			sb.WriteString(ui.DiagnosticLine(d))
			sb.WriteString("\n")
		}
	}

	if !e.opts.Quiet && validation.ExitCode(results, e.opts.Strict) == validation.ExitOK {
		fmt.Fprintf(&sb, "\nAll %d file(s) valid and portable.\n", len(results))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// exportJSON renders the report as JSON.
func (e *Exporter) exportJSON(results []validation.FileResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.opts.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(e.buildReport(results))
}

// exportYAML renders the report as YAML.
func (e *Exporter) exportYAML(results []validation.FileResult, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(e.buildReport(results)); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}

// exportMarkdown renders the report as Markdown.
func (e *Exporter) exportMarkdown(results []validation.FileResult, w io.Writer) error {
	rep := e.buildReport(results)

	var sb strings.Builder
	sb.WriteString("# Skill Validation Report\n\n")
	sb.WriteString("| Total | Valid | Warnings | Errors |\n")
	sb.WriteString("|-------|-------|----------|--------|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n",
		rep.Summary.Total, rep.Summary.Valid, rep.Summary.Warning, rep.Summary.Error)

	for _, f := range rep.Files {
		sb.WriteString("\n")
		sb.WriteString(formatMarkdownFile(f))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// formatMarkdownFile formats a single file section.
func formatMarkdownFile(f fileReport) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## `%s`\n\n", f.Path)
	fmt.Fprintf(&sb, "**Status:** %s\n", f.Status)

	if len(f.Errors) == 0 && len(f.Warnings) == 0 {
		return sb.String()
	}

	sb.WriteString("\n| Severity | Field | Message |\n")
	sb.WriteString("|----------|-------|---------|\n")
	for _, d := range append(append([]validation.Diagnostic{}, f.Errors...), f.Warnings...) {
		field := d.Field
		if field == "" {
			field = "-"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", d.Severity, field, escapeCell(d.Message))
	}
	return sb.String()
}

// escapeCell keeps pipe characters from breaking a table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

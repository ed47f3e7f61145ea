package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats validation results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter returns the formatter for "text" or "json"; anything else gets text.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Validating %s\n", result.Snapshot)
	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n")

	for _, issue := range result.Issues {
		fmt.Fprintf(&b, "%s %s [%s]\n", icon(issue.Severity), issue.Location, issue.Rule)
		fmt.Fprintf(&b, "  %s: %s\n", issue.Severity, issue.Message)
		if issue.Fix != "" {
			fmt.Fprintf(&b, "  Fix: %s\n", issue.Fix)
		}
	}
	if len(result.Issues) > 0 {
		b.WriteString(strings.Repeat("━", 60))
		b.WriteString("\n")
	}

	errs, warns := result.ErrorCount(), result.WarningCount()
	switch {
	case errs > 0:
		fmt.Fprintf(&b, "%d error%s, %d warning%s\n", errs, pluralize(errs), warns, pluralize(warns))
	case warns > 0:
		fmt.Fprintf(&b, "%d warning%s, no errors\n", warns, pluralize(warns))
	default:
		b.WriteString("Configuration is valid\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func icon(s Severity) string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Profile      string      `json:"profile"`
	Version      string      `json:"version"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Format outputs results as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	out := JSONOutput{
		Profile:      result.Snapshot.Profile,
		Version:      result.Snapshot.Version,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		out.Issues = append(out.Issues, JSONIssue{
			Rule:     issue.Rule,
			Severity: strings.ToLower(issue.Severity.String()),
			Location: issue.Location,
			Message:  issue.Message,
			Fix:      issue.Fix,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

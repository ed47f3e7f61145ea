// Package validate checks a site configuration for internal consistency.
//
// The builder never validates; this layer is opt-in and reports Issues in the
// same severity scheme the CLI uses to decide whether an export may proceed.
package validate

import (
	"git.home.luguber.info/inful/sitecfg/internal/routes"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Severity indicates the importance level of an issue.
type Severity int

const (
	// SeverityInfo indicates informational messages.
	SeverityInfo Severity = iota
	// SeverityWarning indicates content smells that do not block an export.
	SeverityWarning
	// SeverityError indicates data the site generator will fail on.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue is a single problem found in the configuration.
type Issue struct {
	Rule     string   // Rule identifier (e.g., "internal-link")
	Severity Severity // Issue severity level
	Location string   // Where in the configuration, e.g. "sidebar[1].items[0]"
	Message  string
	Fix      string // Suggested fix, optional
}

// Options tune the checks that depend on the surroundings of the configuration.
type Options struct {
	// Root is the directory relative paths such as the bundler config resolve
	// against. Empty skips file existence checks.
	Root string
	// Routes, when non-nil, requires every internal link to resolve to a
	// discovered content page.
	Routes routes.Set
}

// Rule is a single check over a configuration.
type Rule interface {
	Name() string
	Check(cfg site.SiteConfig, opts Options) []Issue
}

// Result contains all issues found.
type Result struct {
	Snapshot site.Snapshot
	Issues   []Issue
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

package validate

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Check runs the default rules over cfg.
func Check(cfg site.SiteConfig, opts Options) *Result {
	return CheckWith(cfg, opts, DefaultRules()...)
}

// CheckWith runs the given rules over cfg, preserving rule order in the result.
func CheckWith(cfg site.SiteConfig, opts Options, rules ...Rule) *Result {
	result := &Result{Snapshot: cfg.Snapshot, Issues: []Issue{}}
	for _, rule := range rules {
		issues := rule.Check(cfg, opts)
		if len(issues) > 0 {
			slog.Debug("Validation rule reported issues", logfields.Rule(rule.Name()), logfields.Count(len(issues)))
		}
		result.Issues = append(result.Issues, issues...)
	}
	return result
}

package validate

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/markdown"
	"git.home.luguber.info/inful/sitecfg/internal/routes"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// DefaultRules returns the rules Check runs, in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		&EntryTextRule{},
		&InternalLinkRule{},
		&DuplicateItemRule{},
		&SocialLinkRule{},
		&MarkdownExtensionRule{},
		&BundlerConfigRule{},
	}
}

func navLocation(i int) string       { return fmt.Sprintf("nav[%d]", i) }
func sectionLocation(i int) string   { return fmt.Sprintf("sidebar[%d]", i) }
func itemLocation(i, j int) string   { return fmt.Sprintf("sidebar[%d].items[%d]", i, j) }
func socialLocation(i int) string    { return fmt.Sprintf("socialLinks[%d]", i) }
func extensionLocation(i int) string { return fmt.Sprintf("markdownExtensions[%d]", i) }

// EntryTextRule requires every label and link to be non-empty.
type EntryTextRule struct{}

// Name returns the rule identifier.
func (r *EntryTextRule) Name() string { return "entry-text" }

// Check reports empty labels and links.
func (r *EntryTextRule) Check(cfg site.SiteConfig, _ Options) []Issue {
	var issues []Issue
	checkEntry := func(loc string, e site.NavEntry) {
		if strings.TrimSpace(e.Text) == "" {
			issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Location: loc, Message: "entry has no text"})
		}
		if strings.TrimSpace(e.Link) == "" {
			issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Location: loc, Message: fmt.Sprintf("entry %q has no link", e.Text)})
		}
	}
	for i, e := range cfg.Nav {
		checkEntry(navLocation(i), e)
	}
	for i, s := range cfg.Sidebar {
		if strings.TrimSpace(s.Text) == "" {
			issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Location: sectionLocation(i), Message: "section has no heading"})
		}
		for j, e := range s.Items {
			checkEntry(itemLocation(i, j), e)
		}
	}
	return issues
}

// InternalLinkRule checks that links starting with "/" point at declared routes.
//
// Without discovered routes, a nav link is declared when the home route or a
// sidebar item links to it. With discovered routes every internal link must
// resolve to a content page.
type InternalLinkRule struct{}

// Name returns the rule identifier.
func (r *InternalLinkRule) Name() string { return "internal-link" }

// Check reports unresolvable internal links.
func (r *InternalLinkRule) Check(cfg site.SiteConfig, opts Options) []Issue {
	var issues []Issue
	if opts.Routes != nil {
		report := func(loc string, e site.NavEntry) {
			if e.IsInternal() && !opts.Routes.Has(e.Link) {
				issues = append(issues, Issue{
					Rule: r.Name(), Severity: SeverityError, Location: loc,
					Message: fmt.Sprintf("link %s does not resolve to a content page", e.Link),
					Fix:     "Create the page or correct the link",
				})
			}
		}
		for i, e := range cfg.Nav {
			report(navLocation(i), e)
		}
		for i, s := range cfg.Sidebar {
			for j, e := range s.Items {
				report(itemLocation(i, j), e)
			}
		}
		return issues
	}

	declared := map[string]bool{"/": true}
	for _, s := range cfg.Sidebar {
		for _, e := range s.Items {
			if e.IsInternal() {
				declared[routes.Normalize(e.Link)] = true
			}
		}
	}
	for i, e := range cfg.Nav {
		if e.IsInternal() && !declared[routes.Normalize(e.Link)] {
			issues = append(issues, Issue{
				Rule: r.Name(), Severity: SeverityError, Location: navLocation(i),
				Message: fmt.Sprintf("nav link %s is not declared by any sidebar entry", e.Link),
				Fix:     "Add the page to a sidebar section or pass --docs-dir to check against content",
			})
		}
	}
	return issues
}

// DuplicateItemRule flags repeated labels inside one sidebar section.
type DuplicateItemRule struct{}

// Name returns the rule identifier.
func (r *DuplicateItemRule) Name() string { return "duplicate-item" }

// Check reports duplicate item labels per section.
func (r *DuplicateItemRule) Check(cfg site.SiteConfig, _ Options) []Issue {
	var issues []Issue
	for i, s := range cfg.Sidebar {
		seen := make(map[string]int, len(s.Items))
		for j, e := range s.Items {
			if first, ok := seen[e.Text]; ok {
				issues = append(issues, Issue{
					Rule: r.Name(), Severity: SeverityWarning, Location: itemLocation(i, j),
					Message: fmt.Sprintf("%q repeats sidebar[%d].items[%d] in section %q", e.Text, i, first, s.Text),
				})
				continue
			}
			seen[e.Text] = j
		}
	}
	return issues
}

// SocialLinkRule requires a platform identifier and an absolute http(s) URL.
type SocialLinkRule struct{}

// Name returns the rule identifier.
func (r *SocialLinkRule) Name() string { return "social-link" }

// Check reports malformed social links.
func (r *SocialLinkRule) Check(cfg site.SiteConfig, _ Options) []Issue {
	var issues []Issue
	for i, l := range cfg.Options.SocialLinks {
		if strings.TrimSpace(l.Platform) == "" {
			issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Location: socialLocation(i), Message: "social link has no platform"})
		}
		if !ValidURL(l.URL) {
			issues = append(issues, Issue{Rule: r.Name(), Severity: SeverityError, Location: socialLocation(i), Message: fmt.Sprintf("invalid URL %q", l.URL)})
		}
	}
	return issues
}

// ValidURL reports whether s is an absolute http or https URL with a host.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// MarkdownExtensionRule requires every extension to exist in the catalogue.
type MarkdownExtensionRule struct{}

// Name returns the rule identifier.
func (r *MarkdownExtensionRule) Name() string { return "markdown-extension" }

// Check reports unknown extension identifiers.
func (r *MarkdownExtensionRule) Check(cfg site.SiteConfig, _ Options) []Issue {
	var issues []Issue
	for i, id := range cfg.Options.MarkdownExtensions {
		if !markdown.Known(id) {
			issues = append(issues, Issue{
				Rule: r.Name(), Severity: SeverityError, Location: extensionLocation(i),
				Message: fmt.Sprintf("unknown markdown extension %q", id),
				Fix:     "Use one of: " + strings.Join(markdown.IDs(), ", "),
			})
		}
	}
	return issues
}

// BundlerConfigRule warns when the named bundler config file is missing.
type BundlerConfigRule struct{}

// Name returns the rule identifier.
func (r *BundlerConfigRule) Name() string { return "bundler-config" }

// Check reports a missing bundler config file when a root is known.
func (r *BundlerConfigRule) Check(cfg site.SiteConfig, opts Options) []Issue {
	p := cfg.Options.BundlerConfigPath
	if opts.Root == "" || p == "" {
		return nil
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(opts.Root, p)
	}
	if _, err := os.Stat(p); err != nil {
		return []Issue{{
			Rule: r.Name(), Severity: SeverityWarning, Location: "bundlerConfigPath",
			Message: fmt.Sprintf("bundler config %s not found", p),
		}}
	}
	return nil
}

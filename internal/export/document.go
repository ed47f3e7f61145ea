// Package export renders a SiteConfig in the schema the static-site generator
// loads: title and description at the top level, navigation under
// themeConfig, extension identifiers under markdown and the bundler config
// pointer under vite.
package export

import (
	"encoding/json"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Document is the generator-facing shape of a SiteConfig.
type Document struct {
	Title       string        `json:"title,omitempty" yaml:"title,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	ThemeConfig ThemeConfig   `json:"themeConfig" yaml:"themeConfig"`
	Markdown    MarkdownBlock `json:"markdown" yaml:"markdown"`
	Vite        *ViteBlock    `json:"vite,omitempty" yaml:"vite,omitempty"`
	Snapshot    SnapshotBlock `json:"snapshot" yaml:"snapshot"`
}

// ThemeConfig carries the navigation data.
type ThemeConfig struct {
	Logo        string         `json:"logo,omitempty" yaml:"logo,omitempty"`
	Nav         []Link         `json:"nav" yaml:"nav"`
	Sidebar     []SidebarGroup `json:"sidebar" yaml:"sidebar"`
	SocialLinks []SocialLink   `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty"`
}

// Link is a labelled link.
type Link struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarGroup is a sidebar section.
type SidebarGroup struct {
	Text  string `json:"text" yaml:"text"`
	Items []Link `json:"items" yaml:"items"`
}

// SocialLink uses the generator's icon naming for the platform.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon"`
	Link string `json:"link" yaml:"link"`
}

// MarkdownBlock lists the markdown extensions the site expects.
type MarkdownBlock struct {
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// ViteBlock points the bundler integration at its own config file.
type ViteBlock struct {
	ConfigFile string `json:"configFile" yaml:"configFile"`
}

// SnapshotBlock identifies the snapshot the document was produced from.
type SnapshotBlock struct {
	Profile string `json:"profile" yaml:"profile"`
	Version string `json:"version" yaml:"version"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
}

func links(entries []site.NavEntry) []Link {
	out := make([]Link, 0, len(entries))
	for _, e := range entries {
		out = append(out, Link{Text: e.Text, Link: e.Link})
	}
	return out
}

// NewDocument converts cfg into the generator schema, including its snapshot id.
func NewDocument(cfg site.SiteConfig) Document {
	doc := newDocument(cfg)
	doc.Snapshot.ID = snapshotID(doc)
	return doc
}

func newDocument(cfg site.SiteConfig) Document {
	doc := Document{
		Title:       cfg.Options.Title,
		Description: cfg.Options.Description,
		ThemeConfig: ThemeConfig{
			Logo:    cfg.Options.LogoPath,
			Nav:     links(cfg.Nav),
			Sidebar: make([]SidebarGroup, 0, len(cfg.Sidebar)),
		},
		Markdown: MarkdownBlock{Extensions: append(make([]string, 0, len(cfg.Options.MarkdownExtensions)), cfg.Options.MarkdownExtensions...)},
		Snapshot: SnapshotBlock{Profile: cfg.Snapshot.Profile, Version: cfg.Snapshot.Version},
	}
	for _, s := range cfg.Sidebar {
		doc.ThemeConfig.Sidebar = append(doc.ThemeConfig.Sidebar, SidebarGroup{Text: s.Text, Items: links(s.Items)})
	}
	for _, l := range cfg.Options.SocialLinks {
		doc.ThemeConfig.SocialLinks = append(doc.ThemeConfig.SocialLinks, SocialLink{Icon: l.Platform, Link: l.URL})
	}
	if cfg.Options.BundlerConfigPath != "" {
		doc.Vite = &ViteBlock{ConfigFile: cfg.Options.BundlerConfigPath}
	}
	return doc
}

// ID returns the deterministic snapshot id of cfg: a name-based UUID over the
// canonical JSON encoding of its document, so equal configurations share an id.
func ID(cfg site.SiteConfig) string {
	return snapshotID(newDocument(cfg))
}

func snapshotID(doc Document) string {
	doc.Snapshot.ID = ""
	data, err := json.Marshal(doc)
	if err != nil {
		// Document holds only strings and slices of them.
		panic(err)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, data).String()
}

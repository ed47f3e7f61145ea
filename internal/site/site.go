package site

// NavEntry is a single labelled link in the navigation bar or a sidebar section.
type NavEntry struct {
	Text string
	Link string
}

// IsInternal reports whether the link points at a content route of the site.
func (e NavEntry) IsInternal() bool {
	return len(e.Link) > 0 && e.Link[0] == '/'
}

// SidebarSection is a heading with an ordered list of entries.
type SidebarSection struct {
	Text  string
	Items []NavEntry
}

// SidebarTree is the ordered list of sidebar sections.
type SidebarTree []SidebarSection

// Len returns the total number of entries across all sections.
func (t SidebarTree) Len() int {
	n := 0
	for _, s := range t {
		n += len(s.Items)
	}
	return n
}

// SocialLink pairs a platform identifier (e.g. "github") with a URL.
type SocialLink struct {
	Platform string
	URL      string
}

// BuildOptions carries site metadata and tool integration settings.
type BuildOptions struct {
	Title       string
	Description string
	LogoPath    string
	SocialLinks []SocialLink
	// MarkdownExtensions is a set of extension identifiers in first-seen order.
	MarkdownExtensions []string
	// BundlerConfigPath names the bundler's own config file. It is not read here.
	BundlerConfigPath string
}

// HasExtension reports whether id is part of the extension set.
func (o BuildOptions) HasExtension(id string) bool {
	for _, ext := range o.MarkdownExtensions {
		if ext == id {
			return true
		}
	}
	return false
}

// Snapshot tags a SiteConfig with the profile and version that produced it.
type Snapshot struct {
	Profile string
	Version string
}

// String renders the snapshot as "profile@version".
func (s Snapshot) String() string {
	if s.Version == "" {
		return s.Profile
	}
	return s.Profile + "@" + s.Version
}

// SiteConfig is the complete configuration handed to the site generator.
type SiteConfig struct {
	Snapshot Snapshot
	Nav      []NavEntry
	Sidebar  SidebarTree
	Options  BuildOptions
}

// Links returns every nav and sidebar entry in declaration order, nav first.
func (c SiteConfig) Links() []NavEntry {
	out := make([]NavEntry, 0, len(c.Nav)+c.Sidebar.Len())
	out = append(out, c.Nav...)
	for _, s := range c.Sidebar {
		out = append(out, s.Items...)
	}
	return out
}

// Clone returns a deep copy that shares no slices with c.
func (c SiteConfig) Clone() SiteConfig {
	out := SiteConfig{
		Snapshot: c.Snapshot,
		Nav:      cloneEntries(c.Nav),
		Options:  c.Options,
	}
	out.Sidebar = make(SidebarTree, len(c.Sidebar))
	for i, s := range c.Sidebar {
		out.Sidebar[i] = SidebarSection{Text: s.Text, Items: cloneEntries(s.Items)}
	}
	out.Options.SocialLinks = append(make([]SocialLink, 0, len(c.Options.SocialLinks)), c.Options.SocialLinks...)
	out.Options.MarkdownExtensions = append(make([]string, 0, len(c.Options.MarkdownExtensions)), c.Options.MarkdownExtensions...)
	return out
}

func cloneEntries(in []NavEntry) []NavEntry {
	return append(make([]NavEntry, 0, len(in)), in...)
}

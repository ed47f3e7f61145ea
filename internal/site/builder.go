package site

// Builder provides a fluent API for assembling a SiteConfig from literal data.
// It performs no validation; malformed data surfaces in the validation layer
// or in the site generator.
type Builder struct {
	cfg SiteConfig
}

// New creates a Builder for the named snapshot.
func New(profile, version string) *Builder {
	return &Builder{cfg: SiteConfig{Snapshot: Snapshot{Profile: profile, Version: version}}}
}

// Entry is shorthand for a NavEntry literal.
func Entry(text, link string) NavEntry {
	return NavEntry{Text: text, Link: link}
}

// Title sets the site title.
func (b *Builder) Title(title string) *Builder {
	b.cfg.Options.Title = title
	return b
}

// Description sets the site description.
func (b *Builder) Description(description string) *Builder {
	b.cfg.Options.Description = description
	return b
}

// Logo sets the logo asset reference.
func (b *Builder) Logo(path string) *Builder {
	b.cfg.Options.LogoPath = path
	return b
}

// Nav appends an entry to the navigation bar.
func (b *Builder) Nav(text, link string) *Builder {
	b.cfg.Nav = append(b.cfg.Nav, Entry(text, link))
	return b
}

// Section appends a sidebar section with the given items in order.
func (b *Builder) Section(text string, items ...NavEntry) *Builder {
	b.cfg.Sidebar = append(b.cfg.Sidebar, SidebarSection{Text: text, Items: cloneEntries(items)})
	return b
}

// Social appends a social link.
func (b *Builder) Social(platform, url string) *Builder {
	b.cfg.Options.SocialLinks = append(b.cfg.Options.SocialLinks, SocialLink{Platform: platform, URL: url})
	return b
}

// Extension adds markdown extension identifiers. Repeated identifiers are
// kept once, at the position they were first added.
func (b *Builder) Extension(ids ...string) *Builder {
	for _, id := range ids {
		if !b.cfg.Options.HasExtension(id) {
			b.cfg.Options.MarkdownExtensions = append(b.cfg.Options.MarkdownExtensions, id)
		}
	}
	return b
}

// BundlerConfig sets the path of the bundler's configuration file.
func (b *Builder) BundlerConfig(path string) *Builder {
	b.cfg.Options.BundlerConfigPath = path
	return b
}

// Build returns the assembled configuration. The result shares no memory
// with the builder, so repeated calls return deep-equal, independent values.
func (b *Builder) Build() SiteConfig {
	return b.cfg.Clone()
}

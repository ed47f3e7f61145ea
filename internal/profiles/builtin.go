package profiles

import (
	"git.home.luguber.info/inful/sitecfg/internal/markdown"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

// Names of the built-in snapshots.
const (
	Classic = "classic"
	Tabbed  = "tabbed"
)

const (
	siteTitle       = "Zap"
	siteDescription = "A lightning fast networking solution for Roblox."
	repoURL         = "https://github.com/red-blox/zap"
	bundlerConfig   = "vite.config.ts"
)

func init() {
	mustRegister(Profile{
		Name:        Classic,
		Version:     "1.0.0",
		Description: "Guide and configuration reference without markdown extensions",
		Define:      defineClassic,
	})
	mustRegister(Profile{
		Name:        Tabbed,
		Version:     "2.0.0",
		Description: "Adds tooling and playground pages and the tabs markdown extension",
		Define:      defineTabbed,
	})
}

func introduction() []site.NavEntry {
	return []site.NavEntry{
		site.Entry("Getting Started", "/intro/getting-started"),
		site.Entry("Installation", "/intro/installation"),
	}
}

func configuration() []site.NavEntry {
	return []site.NavEntry{
		site.Entry("Options", "/config/options"),
		site.Entry("Types", "/config/types"),
		site.Entry("Events", "/config/events"),
		site.Entry("Functions", "/config/functions"),
	}
}

func defineClassic(b *site.Builder) {
	b.Title(siteTitle).
		Description(siteDescription).
		Logo("/logo.svg").
		Nav("Home", "/").
		Nav("Guide", "/intro/getting-started").
		Nav("Usage", "/usage/events").
		Section("Introduction", introduction()...).
		Section("Configuration", configuration()...).
		Section("Usage",
			site.Entry("Events", "/usage/events"),
			site.Entry("Functions", "/usage/functions"),
		).
		Social("github", repoURL).
		BundlerConfig(bundlerConfig)
}

func defineTabbed(b *site.Builder) {
	b.Title(siteTitle).
		Description(siteDescription).
		Logo("/logo.svg").
		Nav("Home", "/").
		Nav("Guide", "/intro/getting-started").
		Nav("Playground", "/playground").
		Nav("Changelog", repoURL+"/releases").
		Section("Introduction", introduction()...).
		Section("Configuration", configuration()...).
		Section("Usage",
			site.Entry("Events", "/usage/events"),
			site.Entry("Functions", "/usage/functions"),
			site.Entry("Tooling", "/usage/tooling"),
		).
		Section("Tools",
			site.Entry("Playground", "/playground"),
		).
		Social("github", repoURL).
		Extension(markdown.ExtTabs).
		BundlerConfig(bundlerConfig)
}

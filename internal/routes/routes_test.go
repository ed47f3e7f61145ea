package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", "---\nlayout: home\n---\n")
	writeFile(t, root, "intro/getting-started.md", "---\ntitle: Getting Started\n---\n# Ignored\n")
	writeFile(t, root, "intro/installation.md", "Intro text\n\n# Installing Zap\n")
	writeFile(t, root, "config/index.md", "no heading here\n")
	writeFile(t, root, "usage/tooling_api.md", "")
	writeFile(t, root, ".vitepress/theme/notes.md", "# hidden\n")
	writeFile(t, root, "node_modules/pkg/readme.md", "# dep\n")
	writeFile(t, root, "logo.svg", "<svg/>")

	got, err := Discover(root)
	require.NoError(t, err)

	assert.Equal(t, []Route{
		{Path: "/", File: "index.md", Title: "Home"},
		{Path: "/config/", File: "config/index.md", Title: "Config"},
		{Path: "/intro/getting-started", File: "intro/getting-started.md", Title: "Getting Started"},
		{Path: "/intro/installation", File: "intro/installation.md", Title: "Installing Zap"},
		{Path: "/usage/tooling_api", File: "usage/tooling_api.md", Title: "Tooling Api"},
	}, got)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "/", PathFor("index.md"))
	assert.Equal(t, "/intro/", PathFor("intro/index.md"))
	assert.Equal(t, "/intro/a", PathFor("intro/a.md"))
}

func TestSet_Has(t *testing.T) {
	s := NewSet([]Route{{Path: "/"}, {Path: "/config/"}, {Path: "/intro/getting-started"}})

	for _, link := range []string{"/", "/config", "/config/", "/intro/getting-started", "/intro/getting-started.html", "/intro/getting-started#setup", "/intro/getting-started.md?x=1"} {
		assert.True(t, s.Has(link), link)
	}
	for _, link := range []string{"/intro", "/playground", "/intro/getting"} {
		assert.False(t, s.Has(link), link)
	}
}

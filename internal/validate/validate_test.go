package validate

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/profiles"
	"git.home.luguber.info/inful/sitecfg/internal/routes"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

func rulesOf(r *Result) []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Rule+"@"+issue.Location)
	}
	return out
}

func TestCheck_BuiltinProfilesAreValid(t *testing.T) {
	for _, p := range profiles.All() {
		t.Run(p.Name, func(t *testing.T) {
			result := Check(p.Build(), Options{})
			assert.Empty(t, result.Issues)
			assert.False(t, result.HasErrors())
		})
	}
}

func TestEntryTextRule(t *testing.T) {
	cfg := site.New("t", "1.0.0").
		Nav("", "/").
		Section("", site.Entry("Item", "")).
		Build()

	result := CheckWith(cfg, Options{}, &EntryTextRule{})
	assert.Equal(t, []string{"entry-text@nav[0]", "entry-text@sidebar[0]", "entry-text@sidebar[0].items[0]"}, rulesOf(result))
	assert.Equal(t, 3, result.ErrorCount())
}

func TestInternalLinkRule_Declared(t *testing.T) {
	cfg := site.New("t", "1.0.0").
		Nav("Home", "/").
		Nav("Guide", "/guide/").
		Nav("Missing", "/missing").
		Nav("External", "https://example.com").
		Section("Guide", site.Entry("Guide", "/guide")).
		Build()

	result := CheckWith(cfg, Options{}, &InternalLinkRule{})
	assert.Equal(t, []string{"internal-link@nav[2]"}, rulesOf(result))
}

func TestInternalLinkRule_DiscoveredRoutes(t *testing.T) {
	cfg := site.New("t", "1.0.0").
		Nav("Home", "/").
		Nav("Playground", "/playground").
		Section("Intro", site.Entry("Start", "/intro/start"), site.Entry("Gone", "/intro/gone")).
		Build()

	set := routes.NewSet([]routes.Route{{Path: "/"}, {Path: "/playground"}, {Path: "/intro/start"}})
	result := CheckWith(cfg, Options{Routes: set}, &InternalLinkRule{})
	assert.Equal(t, []string{"internal-link@sidebar[0].items[1]"}, rulesOf(result))
}

func TestDuplicateItemRule(t *testing.T) {
	cfg := site.New("t", "1.0.0").
		Section("A", site.Entry("Events", "/a/events"), site.Entry("Events", "/a/events2")).
		Section("B", site.Entry("Events", "/b/events")).
		Build()

	result := CheckWith(cfg, Options{}, &DuplicateItemRule{})
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "sidebar[0].items[1]", result.Issues[0].Location)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)
	assert.False(t, result.HasErrors())
	assert.Equal(t, 1, result.WarningCount())
}

func TestSocialLinkRule(t *testing.T) {
	cfg := site.New("t", "1.0.0").
		Social("github", "https://github.com/example/project").
		Social("", "https://example.com").
		Social("discord", "discord.gg/abc").
		Social("x", "ftp://example.com").
		Build()

	result := CheckWith(cfg, Options{}, &SocialLinkRule{})
	assert.Equal(t, []string{"social-link@socialLinks[1]", "social-link@socialLinks[2]", "social-link@socialLinks[3]"}, rulesOf(result))
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://github.com/red-blox/zap"))
	assert.True(t, ValidURL("http://localhost:5173/"))
	assert.False(t, ValidURL("/relative"))
	assert.False(t, ValidURL("https://"))
	assert.False(t, ValidURL("::"))
}

func TestMarkdownExtensionRule(t *testing.T) {
	cfg := site.New("t", "1.0.0").Extension("tabs", "mermaid").Build()
	result := CheckWith(cfg, Options{}, &MarkdownExtensionRule{})
	assert.Equal(t, []string{"markdown-extension@markdownExtensions[1]"}, rulesOf(result))
}

func TestBundlerConfigRule(t *testing.T) {
	root := t.TempDir()
	cfg := site.New("t", "1.0.0").BundlerConfig("vite.config.ts").Build()

	assert.Empty(t, CheckWith(cfg, Options{}, &BundlerConfigRule{}).Issues, "no root means no check")

	result := CheckWith(cfg, Options{Root: root}, &BundlerConfigRule{})
	require.Len(t, result.Issues, 1)
	assert.Equal(t, SeverityWarning, result.Issues[0].Severity)

	require.NoError(t, os.WriteFile(filepath.Join(root, "vite.config.ts"), []byte("export default {}\n"), 0o600))
	assert.Empty(t, CheckWith(cfg, Options{Root: root}, &BundlerConfigRule{}).Issues)
}

func TestFormatters(t *testing.T) {
	cfg := site.New("demo", "1.0.0").
		Nav("Missing", "/missing").
		Section("A", site.Entry("X", "/x"), site.Entry("X", "/y")).
		Build()
	result := Check(cfg, Options{})
	require.Equal(t, 1, result.ErrorCount())
	require.Equal(t, 1, result.WarningCount())

	var text bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&text, result))
	assert.Contains(t, text.String(), "Validating demo@1.0.0")
	assert.Contains(t, text.String(), "nav[0] [internal-link]")
	assert.Contains(t, text.String(), "1 error, 1 warning\n")

	var js bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&js, result))
	var out JSONOutput
	require.NoError(t, json.Unmarshal(js.Bytes(), &out))
	assert.Equal(t, "demo", out.Profile)
	assert.Equal(t, 1, out.ErrorCount)
	require.Len(t, out.Issues, 2)
	assert.Equal(t, "error", out.Issues[0].Severity)
	assert.Equal(t, "warning", out.Issues[1].Severity)

	var clean bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&clean, &Result{Snapshot: site.Snapshot{Profile: "ok"}}))
	assert.Contains(t, clean.String(), "Configuration is valid")
}

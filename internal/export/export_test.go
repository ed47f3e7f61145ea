package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitecfg/internal/profiles"
	"git.home.luguber.info/inful/sitecfg/internal/site"
)

var idPattern = regexp.MustCompile(`"id": "[0-9a-f-]{36}"`)

func mustProfile(t *testing.T, name string) site.SiteConfig {
	t.Helper()
	p, err := profiles.Select(name)
	require.NoError(t, err)
	return p.Build()
}

func TestExportGolden_ClassicJSON(t *testing.T) {
	data, err := Marshal(mustProfile(t, profiles.Classic), FormatJSON)
	require.NoError(t, err)
	require.Regexp(t, idPattern, string(data))
	actual := idPattern.ReplaceAll(data, []byte(`"id": "IGNORE"`))

	golden := filepath.Join("testdata", "classic.json")
	// #nosec G304 - test file
	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	if !bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(actual)) {
		if os.Getenv("UPDATE_GOLDEN") == "1" {
			require.NoError(t, os.WriteFile(golden, actual, 0o600))
			return
		}
		t.Fatalf("classic export mismatch; run UPDATE_GOLDEN=1 go test ./internal/export -run TestExportGolden_ClassicJSON to accept\n--- want\n%s\n--- got\n%s", want, actual)
	}
}

func TestNewDocument_SingleSection(t *testing.T) {
	cfg := site.New("s", "1.0.0").
		Section("Getting Started", site.Entry("Installation", "/install")).
		Build()

	doc := NewDocument(cfg)
	require.Len(t, doc.ThemeConfig.Sidebar, 1)
	require.Len(t, doc.ThemeConfig.Sidebar[0].Items, 1)
	assert.Equal(t, "/install", doc.ThemeConfig.Sidebar[0].Items[0].Link)
	assert.NotNil(t, doc.ThemeConfig.Nav)
	assert.NotNil(t, doc.Markdown.Extensions)
	assert.Nil(t, doc.Vite)
}

func TestID(t *testing.T) {
	classic := mustProfile(t, profiles.Classic)
	tabbed := mustProfile(t, profiles.Tabbed)

	id := ID(classic)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())

	assert.Equal(t, id, ID(mustProfile(t, profiles.Classic)))
	assert.Equal(t, id, NewDocument(classic).Snapshot.ID)
	assert.NotEqual(t, id, ID(tabbed))

	changed := classic.Clone()
	changed.Nav[0].Text = "Start"
	assert.NotEqual(t, id, ID(changed))
}

func TestMarshal_YAMLRoundTrip(t *testing.T) {
	cfg := mustProfile(t, profiles.Tabbed)
	data, err := Marshal(cfg, FormatYAML)
	require.NoError(t, err)

	var got Document
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, NewDocument(cfg), got)
	assert.Contains(t, string(data), "configFile: vite.config.ts")
}

func TestMarshal_Module(t *testing.T) {
	cfg := mustProfile(t, profiles.Tabbed)
	data, err := Marshal(cfg, FormatModule)
	require.NoError(t, err)

	text := string(data)
	header, body, ok := strings.Cut(text, "\n")
	require.True(t, ok)
	assert.Equal(t, "// Generated by sitecfg from tabbed@2.0.0. Do not edit.", header)

	js, ok := strings.CutPrefix(body, "export default ")
	require.True(t, ok)
	var got Document
	require.NoError(t, json.Unmarshal([]byte(js), &got))
	assert.Equal(t, []string{"tabs"}, got.Markdown.Extensions)
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(site.New("s", "1.0.0").Build(), Format("toml"))
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, " mjs ": FormatModule} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"docs/.vitepress/site.json": FormatJSON,
		"site.yml":                  FormatYAML,
		"config.mjs":                FormatModule,
	}
	for path, want := range tests {
		got, ok := FormatFromPath(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}
	_, ok := FormatFromPath("config.toml")
	assert.False(t, ok)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "site.json")
	cfg := mustProfile(t, profiles.Classic)

	require.NoError(t, WriteFile(path, cfg, FormatJSON))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, cfg, FormatJSON))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "site.json", entries[0].Name())
}

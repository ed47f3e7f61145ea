package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/export"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// project writes a project file into a fresh directory and returns the root flags.
func project(t *testing.T, content string) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sitecfg.yaml")
	writeFile(t, path, content)
	return &CLI{Config: path}, dir
}

func TestRunBuild_WritesFileAndMetrics(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "docs", ".vitepress", "site.json")
	metricsFile := filepath.Join(dir, "sitecfg.prom")

	cfg, err := RunBuild(&Global{}, BuildOptions{
		Selector:    "classic",
		OutputPath:  out,
		Format:      export.FormatJSON,
		MetricsFile: metricsFile,
	})
	require.NoError(t, err)
	assert.Equal(t, "classic", cfg.Snapshot.Profile)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Zap", doc.Title)
	assert.Equal(t, export.ID(cfg), doc.Snapshot.ID)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "sitecfg_nav_entries 3")
	assert.Contains(t, string(prom), `sitecfg_exports_total{format="json",outcome="success"} 1`)
}

func TestRunBuild_StdoutModule(t *testing.T) {
	var buf bytes.Buffer
	_, err := RunBuild(&Global{Out: &buf}, BuildOptions{
		Selector: "tabbed@^2",
		Format:   export.FormatModule,
		Stdout:   true,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "// Generated by sitecfg from tabbed@2.0.0"))
	assert.Contains(t, buf.String(), "export default {")
	assert.Contains(t, buf.String(), `"tabs"`)
}

func TestRunBuild_RequiresProfile(t *testing.T) {
	_, err := RunBuild(&Global{}, BuildOptions{Format: export.FormatJSON, Stdout: true, Selector: ""})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestRunBuild_StrictValidation(t *testing.T) {
	docs := filepath.Join(t.TempDir(), "docs")
	writeFile(t, filepath.Join(docs, "index.md"), "# Zap\n")
	out := filepath.Join(t.TempDir(), "site.json")

	opts := BuildOptions{Selector: "classic", OutputPath: out, Format: export.FormatJSON, DocsDir: docs, Strict: true}
	_, err := RunBuild(&Global{}, opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.NoFileExists(t, out)

	opts.Strict = false
	_, err = RunBuild(&Global{}, opts)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestBuildCmd_FlagsOverrideProjectFile(t *testing.T) {
	cfg, err := config.Parse("sitecfg.yaml", []byte(`profile: classic
output:
  path: out/site.yaml
docs_dir: docs
validate:
  strict: true
`))
	require.NoError(t, err)

	opts, err := (&BuildCmd{}).resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "classic", opts.Selector)
	assert.Equal(t, "out/site.yaml", opts.OutputPath)
	assert.Equal(t, export.FormatYAML, opts.Format)
	assert.True(t, opts.Strict)

	opts, err = (&BuildCmd{Profile: "tabbed", Output: "site.mjs"}).resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, "tabbed", opts.Selector)
	assert.Equal(t, export.FormatModule, opts.Format)

	opts, err = (&BuildCmd{Output: "site.mjs", Format: "json"}).resolve(cfg)
	require.NoError(t, err)
	assert.Equal(t, export.FormatJSON, opts.Format)

	_, err = (&BuildCmd{Format: "xml"}).resolve(cfg)
	require.Error(t, err)
}

func TestBuildCmd_Run(t *testing.T) {
	cli, dir := project(t, "profile: tabbed\noutput:\n  path: site.yaml\n")
	// Relative output paths resolve against the working directory.
	t.Chdir(dir)

	require.NoError(t, (&BuildCmd{}).Run(&Global{}, cli))
	data, err := os.ReadFile(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Zap")
	assert.Contains(t, string(data), "configFile: vite.config.ts")
}

func TestValidateCmd(t *testing.T) {
	cli, _ := project(t, "profile: classic\n")

	var buf bytes.Buffer
	require.NoError(t, (&ValidateCmd{Format: "text"}).Run(&Global{Out: &buf}, cli))
	assert.Contains(t, buf.String(), "Validating classic@1.0.0")
	assert.Contains(t, buf.String(), "Configuration is valid")

	docs := filepath.Join(t.TempDir(), "docs")
	writeFile(t, filepath.Join(docs, "index.md"), "# Zap\n")
	buf.Reset()
	err := (&ValidateCmd{Format: "json", DocsDir: docs}).Run(&Global{Out: &buf}, cli)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	var out struct {
		Profile    string `json:"profile"`
		ErrorCount int    `json:"error_count"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "classic", out.Profile)
	assert.Positive(t, out.ErrorCount)
}

func TestProfilesCmd(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ProfilesCmd{}).Run(&Global{Out: &buf}, &CLI{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "classic"))
	assert.Contains(t, lines[1], "1.0.0")
	assert.True(t, strings.HasPrefix(lines[2], "tabbed"))
	assert.Contains(t, lines[2], "2.0.0")
}

func TestRoutesCmd(t *testing.T) {
	cli, dir := project(t, "docs_dir: "+filepath.Join(t.TempDir(), "unused")+"\n")
	docs := filepath.Join(dir, "docs")
	writeFile(t, filepath.Join(docs, "index.md"), "# Zap\n")
	writeFile(t, filepath.Join(docs, "usage", "events.md"), "---\ntitle: Events\n---\nBody\n")

	var buf bytes.Buffer
	require.NoError(t, (&RoutesCmd{DocsDir: docs}).Run(&Global{Out: &buf}, cli))
	assert.Contains(t, buf.String(), "/usage/events")
	assert.Contains(t, buf.String(), "usage/events.md")
	assert.Contains(t, buf.String(), "Events")
}

func TestRenderCmd(t *testing.T) {
	cli, dir := project(t, "profile: tabbed\n")
	page := filepath.Join(dir, "install.md")
	writeFile(t, page, "---\ntitle: Install\n---\n::: tabs\n== npm\nnpm i zap\n== pnpm\npnpm add zap\n:::\n")

	var buf bytes.Buffer
	require.NoError(t, (&RenderCmd{File: page}).Run(&Global{Out: &buf}, cli))
	assert.Contains(t, buf.String(), `<div class="tabs">`)
	assert.Contains(t, buf.String(), `data-label="pnpm"`)
	assert.NotContains(t, buf.String(), "title: Install")

	buf.Reset()
	require.NoError(t, (&RenderCmd{Profile: "classic", File: page}).Run(&Global{Out: &buf}, cli))
	assert.NotContains(t, buf.String(), `<div class="tabs">`)
}

func TestInitCmd(t *testing.T) {
	cli := &CLI{Config: filepath.Join(t.TempDir(), "sitecfg.toml")}

	var buf bytes.Buffer
	require.NoError(t, (&InitCmd{}).Run(&Global{Out: &buf}, cli))
	assert.Contains(t, buf.String(), "initialized successfully")

	cfg, err := LoadProject(cli.Config)
	require.NoError(t, err)
	assert.Equal(t, "tabbed@^2", cfg.Profile)

	buf.Reset()
	require.Error(t, (&InitCmd{}).Run(&Global{Out: &buf}, cli))
	assert.Contains(t, buf.String(), "Initialization failed")
}

func TestLoadProject_MissingExplicitFile(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "custom.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestWatchCmd_InitialBuildAndShutdown(t *testing.T) {
	cli, dir := project(t, "profile: classic\n")
	out := filepath.Join(dir, "out", "site.json")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	w := &WatchCmd{BuildCmd: BuildCmd{Output: out}, Debounce: 20 * time.Millisecond}
	go func() { done <- w.watch(ctx, &Global{}, cli) }()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/export"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/markdown"
	"git.home.luguber.info/inful/sitecfg/internal/metrics"
	"git.home.luguber.info/inful/sitecfg/internal/profiles"
	"git.home.luguber.info/inful/sitecfg/internal/site"
	"git.home.luguber.info/inful/sitecfg/internal/validate"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Profile     string `short:"p" help:"Profile selector, name or name@constraint (e.g. tabbed@^2)"`
	Output      string `short:"o" help:"Output file (overrides output.path)" type:"path"`
	Format      string `short:"f" help:"Output format: json, yaml or mjs (default: inferred from output path)"`
	Stdout      bool   `help:"Write the configuration to stdout instead of a file"`
	DocsDir     string `name:"docs-dir" help:"Docs directory used to verify internal links" type:"path"`
	Root        string `help:"Project root used to verify the bundler config file" type:"path"`
	Strict      bool   `help:"Fail when validation reports errors"`
	MetricsFile string `name:"metrics-file" help:"Write build metrics in Prometheus textfile format" type:"path"`
}

// BuildOptions are the resolved inputs of one build invocation.
type BuildOptions struct {
	Selector    string
	OutputPath  string
	Format      export.Format
	Stdout      bool
	DocsDir     string
	Root        string
	Strict      bool
	MetricsFile string
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadProject(root.Config)
	if err != nil {
		return err
	}
	opts, err := b.resolve(cfg)
	if err != nil {
		return err
	}
	_, err = RunBuild(g, opts)
	return err
}

// resolve merges flags over project file values.
func (b *BuildCmd) resolve(cfg *config.Config) (BuildOptions, error) {
	opts := BuildOptions{
		Selector:    firstNonEmpty(b.Profile, cfg.Profile),
		OutputPath:  firstNonEmpty(b.Output, cfg.Output.Path),
		Stdout:      b.Stdout,
		DocsDir:     firstNonEmpty(b.DocsDir, cfg.DocsDir),
		Root:        firstNonEmpty(b.Root, cfg.Root),
		Strict:      b.Strict || cfg.Validate.Strict,
		MetricsFile: firstNonEmpty(b.MetricsFile, cfg.MetricsFile),
	}

	switch {
	case b.Format != "":
		f, err := export.ParseFormat(b.Format)
		if err != nil {
			return opts, err
		}
		opts.Format = f
	case b.Output != "":
		if f, ok := export.FormatFromPath(b.Output); ok {
			opts.Format = f
		} else {
			opts.Format = export.FormatJSON
		}
	default:
		opts.Format = export.Format(cfg.Output.Format)
	}
	return opts, nil
}

// RunBuild selects the profile, builds its configuration, validates it,
// applies its markdown extensions and exports it.
func RunBuild(g *Global, opts BuildOptions) (cfg site.SiteConfig, err error) {
	start := time.Now()

	var rec metrics.Recorder = metrics.NoopRecorder{}
	if opts.MetricsFile != "" {
		pr := metrics.NewPrometheusRecorder(nil)
		rec = pr
		defer func() {
			if werr := pr.WriteTextfile(opts.MetricsFile); werr != nil {
				slog.Warn("Failed to write metrics file", logfields.Path(opts.MetricsFile), logfields.Error(werr))
			}
		}()
	}

	profile, err := profiles.Select(opts.Selector)
	if err != nil {
		return cfg, err
	}
	cfg = profile.Build()
	slog.Info("Built site configuration",
		logfields.Profile(cfg.Snapshot.Profile),
		logfields.Version(cfg.Snapshot.Version),
		logfields.SnapshotID(export.ID(cfg)))

	vopts, err := ValidationOptions(opts.DocsDir, opts.Root)
	if err != nil {
		return cfg, err
	}
	result := validate.Check(cfg, vopts)
	rec.SetIssues("error", result.ErrorCount())
	rec.SetIssues("warning", result.WarningCount())
	logIssues(result)
	if result.HasErrors() {
		if opts.Strict {
			rec.IncExport(string(opts.Format), metrics.OutcomeInvalid)
			return cfg, errors.ValidationError(fmt.Sprintf("%s has %d validation error(s)", cfg.Snapshot, result.ErrorCount())).
				WithContext("profile", cfg.Snapshot.Profile).
				Build()
		}
		slog.Warn("Exporting configuration with validation errors", logfields.Count(result.ErrorCount()))
	}

	// Extensions are registered on a pipeline only after Build has returned.
	md := goldmark.New()
	applied, err := markdown.Apply(md, cfg.Options.MarkdownExtensions)
	if err != nil {
		rec.IncExport(string(opts.Format), metrics.OutcomeFailed)
		return cfg, err
	}
	slog.Debug("Markdown pipeline ready", logfields.Count(len(applied)))

	if opts.Stdout {
		err = export.Encode(g.out(), cfg, opts.Format)
	} else {
		err = export.WriteFile(opts.OutputPath, cfg, opts.Format)
	}
	if err != nil {
		rec.IncExport(string(opts.Format), metrics.OutcomeFailed)
		return cfg, err
	}

	rec.SetShape(shapeOf(cfg))
	rec.ObserveBuildDuration(time.Since(start))
	rec.IncExport(string(opts.Format), metrics.OutcomeSuccess)
	slog.Info("Build complete", logfields.Format(string(opts.Format)), logfields.Duration(time.Since(start)))
	return cfg, nil
}

func shapeOf(cfg site.SiteConfig) metrics.Shape {
	items := 0
	for _, s := range cfg.Sidebar {
		items += len(s.Items)
	}
	return metrics.Shape{
		Profile:    cfg.Snapshot.Profile,
		Version:    cfg.Snapshot.Version,
		NavEntries: len(cfg.Nav),
		Sections:   len(cfg.Sidebar),
		Items:      items,
		Extensions: len(cfg.Options.MarkdownExtensions),
	}
}

func logIssues(result *validate.Result) {
	for _, is := range result.Issues {
		attrs := []any{logfields.Rule(is.Rule), slog.String("location", is.Location)}
		switch is.Severity {
		case validate.SeverityError:
			slog.Error(is.Message, attrs...)
		case validate.SeverityWarning:
			slog.Warn(is.Message, attrs...)
		default:
			slog.Info(is.Message, attrs...)
		}
	}
}

package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/routes"
	"git.home.luguber.info/inful/sitecfg/internal/validate"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer // command output; stdout when nil
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Project file path (.yaml or .toml)" default:"sitecfg.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build the site configuration and write it for the site generator"`
	Validate ValidateCmd `cmd:"" help:"Validate a profile's site configuration"`
	Profiles ProfilesCmd `cmd:"" help:"List the available configuration profiles"`
	Routes   RoutesCmd   `cmd:"" help:"List the content routes found in the docs directory"`
	Render   RenderCmd   `cmd:"" help:"Render a markdown file with a profile's markdown extensions"`
	Init     InitCmd     `cmd:"" help:"Initialize a new project file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever the project file or docs change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadProject loads the project file. A missing file at the default location
// yields the defaults so the CLI works without one.
func LoadProject(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && isDefaultPath(path) {
		return config.Parse(path, nil)
	}
	return config.Load(path)
}

func isDefaultPath(path string) bool {
	if path == config.DefaultPath {
		return true
	}
	wd, err := os.Getwd()
	return err == nil && path == filepath.Join(wd, config.DefaultPath)
}

// firstNonEmpty returns the first non-empty value; CLI flags come before file values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ValidationOptions discovers content routes under docsDir when set.
func ValidationOptions(docsDir, root string) (validate.Options, error) {
	opts := validate.Options{Root: root}
	if docsDir == "" {
		return opts, nil
	}
	found, err := routes.Discover(docsDir)
	if err != nil {
		return opts, err
	}
	opts.Routes = routes.NewSet(found)
	return opts, nil
}

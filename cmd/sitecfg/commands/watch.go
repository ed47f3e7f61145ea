package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildCmd `embed:""`

	Debounce time.Duration `help:"Quiet period before rebuilding" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.watch(ctx, g, root)
}

func (w *WatchCmd) watch(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := LoadProject(root.Config)
	if err != nil {
		return err
	}
	opts, err := w.resolve(cfg)
	if err != nil {
		return err
	}

	rebuild := func(context.Context) {
		// Reload so edits to the project file take effect.
		cfg, err := LoadProject(root.Config)
		if err != nil {
			slog.Error("Reload failed", logfields.Path(root.Config), logfields.Error(err))
			return
		}
		next, err := w.resolve(cfg)
		if err != nil {
			slog.Error("Reload failed", logfields.Path(root.Config), logfields.Error(err))
			return
		}
		if _, err := RunBuild(g, next); err != nil {
			slog.Error("Rebuild failed", logfields.Error(err))
		}
	}

	if _, err := RunBuild(g, opts); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New([]string{root.Config, opts.DocsDir}, rebuild)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "start watcher").Build()
	}
	watcher.Ignore(opts.OutputPath)
	if w.Debounce > 0 {
		watcher.Debounce = w.Debounce
	}
	slog.Info("Watching for changes", logfields.Path(root.Config))
	return watcher.Run(ctx)
}

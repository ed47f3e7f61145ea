package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/profiles"
	"git.home.luguber.info/inful/sitecfg/internal/validate"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Profile string `short:"p" help:"Profile selector, name or name@constraint"`
	DocsDir string `name:"docs-dir" help:"Docs directory used to verify internal links" type:"path"`
	Root    string `help:"Project root used to verify the bundler config file" type:"path"`
	Format  string `help:"Output format" enum:"text,json" default:"text"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadProject(root.Config)
	if err != nil {
		return err
	}
	profile, err := profiles.Select(firstNonEmpty(v.Profile, cfg.Profile))
	if err != nil {
		return err
	}
	opts, err := ValidationOptions(firstNonEmpty(v.DocsDir, cfg.DocsDir), firstNonEmpty(v.Root, cfg.Root))
	if err != nil {
		return err
	}

	result := validate.Check(profile.Build(), opts)
	if err := validate.NewFormatter(v.Format).Format(g.out(), result); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "format validation result").Build()
	}
	if result.HasErrors() {
		return errors.ValidationError(fmt.Sprintf("%s has %d validation error(s)", result.Snapshot, result.ErrorCount())).Build()
	}
	return nil
}

package commands

import (
	"os"

	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/frontmatter"
	"git.home.luguber.info/inful/sitecfg/internal/markdown"
	"git.home.luguber.info/inful/sitecfg/internal/profiles"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Profile string `short:"p" help:"Profile selector, name or name@constraint"`
	File    string `arg:"" help:"Markdown file to render" type:"existingfile"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadProject(root.Config)
	if err != nil {
		return err
	}
	profile, err := profiles.Select(firstNonEmpty(r.Profile, cfg.Profile))
	if err != nil {
		return err
	}

	src, err := os.ReadFile(r.File)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "read markdown file").WithContext("path", r.File).Build()
	}
	_, body, _, err := frontmatter.Split(src)
	if err != nil {
		return errors.WrapError(err, errors.CategoryMarkdown, "split frontmatter").WithContext("path", r.File).Build()
	}

	md, err := markdown.NewPipeline(profile.Build())
	if err != nil {
		return err
	}
	html, err := markdown.Render(md, body)
	if err != nil {
		return err
	}
	_, err = g.out().Write(html)
	return err
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitecfg/internal/routes"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	DocsDir string `name:"docs-dir" help:"Docs directory (default: docs_dir from the project file, else ./docs)" type:"path"`
}

func (r *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := LoadProject(root.Config)
	if err != nil {
		return err
	}
	found, err := routes.Discover(firstNonEmpty(r.DocsDir, cfg.DocsDir, "docs"))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tFILE\tTITLE")
	for _, rt := range found {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Path, rt.File, rt.Title)
	}
	return tw.Flush()
}

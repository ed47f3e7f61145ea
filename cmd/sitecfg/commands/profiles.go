package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/sitecfg/internal/export"
	"git.home.luguber.info/inful/sitecfg/internal/profiles"
)

// ProfilesCmd implements the 'profiles' command.
type ProfilesCmd struct{}

func (p *ProfilesCmd) Run(g *Global, _ *CLI) error {
	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSNAPSHOT ID\tDESCRIPTION")
	for _, prof := range profiles.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", prof.Name, prof.Version, export.ID(prof.Build()), prof.Description)
	}
	return tw.Flush()
}

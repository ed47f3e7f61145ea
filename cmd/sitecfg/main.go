package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitecfg/cmd/sitecfg/commands"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes the selected command and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("sitecfg"),
		kong.Description("Build the navigation, sidebar and build options of the documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
		kong.Bind(&cli),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 10
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := ctx.Run(&commands.Global{Logger: slog.Default(), Out: stdout}); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).WithOutput(stderr)
		return adapter.Report(err)
	}
	return 0
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/agencysite/cmd/agencysite/commands"
	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
	"git.home.luguber.info/inful/agencysite/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("agencysite"),
		kong.Description("Marketing website server for a digital agency."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(&commands.Global{Out: os.Stdout}, cli); err != nil {
		msg, code := errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err)
		fmt.Fprintln(os.Stderr, msg) //nolint:forbidigo // user-facing error output
		os.Exit(code)
	}
}

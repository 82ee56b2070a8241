package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/sitedesc/cmd/sitedesc/commands"
	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/version"
)

func main() {
	// .env values feed the SITEDESC_* flag fallbacks; variables already set win.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			slog.Warn("Failed to load .env", "error", err)
		}
	}

	cli := &commands.CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitedesc"),
		kong.Description("Resolve and validate documentation site descriptors."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err == nil {
		err = kctx.Run(&commands.Global{Out: os.Stdout}, cli)
	}
	if err == nil {
		return
	}
	// Usage mistakes and other unclassified errors go through kong.
	if _, ok := errors.AsClassified(err); !ok {
		parser.FatalIfErrorf(err)
	}
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}

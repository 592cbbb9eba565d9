// Command bookgen generates catalog pages, single books and covers without
// running the server.
package main

import (
	"fmt"
	"os"

	"bookforge/catalog"
	"bookforge/core"
	"bookforge/locale"
	"bookforge/logging"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging on stderr"`

	Page    PageCmd    `cmd:"" help:"Generate one page of books"`
	Book    BookCmd    `cmd:"" help:"Generate a single book"`
	Cover   CoverCmd   `cmd:"" help:"Render a cover image to a PNG file"`
	Locales LocalesCmd `cmd:"" help:"List supported locales"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bookgen"),
		kong.Description("Reproducible fake book catalog generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":       core.GetVersion(),
			"defaultLocale": locale.DefaultLocale,
		},
	)

	level := logging.WarnLevel
	if cli.Debug {
		level = logging.DebugLevel
	}
	logger, err := logging.NewLogger(logging.Options{
		Development: true,
		Level:       level,
		Console:     os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(core.ExitCodeError)
	}
	defer logger.Sync()

	env := &Env{
		Out:       os.Stdout,
		Generator: catalog.NewGenerator(locale.Default(), logger.Named("catalog")),
	}
	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	NoColor  bool             `help:"Disable colored output"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot games and report per-seat statistics"`
	Play     PlayCmd          `cmd:"" help:"Play an interactive game against the bots"`
	Options  OptionsCmd       `cmd:"" help:"List the legal discards for a hand"`
	Odds     OddsCmd          `cmd:"" help:"Estimate the chance an opponent's hand is below a value"`
}

// AfterApply runs once flags are parsed, before any command.
func (c *CLI) AfterApply() error {
	if c.NoColor {
		disableColor()
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("yaniv"),
		kong.Description("Yaniv card game with computer opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Deal     DealCmd          `cmd:"" help:"Print a freshly dealt board"`
	Simulate SimulateCmd      `cmd:"" help:"Play random games and report statistics"`
	Serve    ServeCmd         `cmd:"" help:"Serve games over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bubblejar"),
		kong.Description("Sort the bubbles so every jar holds one color"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/cmd/internal/bei"
	"github.com/nelhage/blau/cmd/internal/opt"
	"github.com/nelhage/blau/cmd/internal/play"
	"github.com/nelhage/blau/cmd/internal/replay"
	"github.com/nelhage/blau/cmd/internal/selfplay"
	"github.com/nelhage/blau/cmd/internal/serve"
)

var debug = flag.Bool("debug", false, "enable debug logging")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&play.Command{}, "")
	subcommands.Register(&selfplay.Command{}, "")
	subcommands.Register(&replay.Command{}, "")
	subcommands.Register(&bei.Command{}, "engine")
	subcommands.Register(&serve.Command{}, "engine")

	flag.Parse()
	opt.SetupLogging(*debug)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	status := subcommands.Execute(ctx)
	cancel()
	os.Exit(int(status))
}

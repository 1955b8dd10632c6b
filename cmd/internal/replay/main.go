package replay

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/cli"
	"github.com/rs/zerolog/log"
)

type Command struct {
	render  bool
	unicode bool
}

func (*Command) Name() string     { return "replay" }
func (*Command) Synopsis() string { return "Check recorded games for legality" }
func (*Command) Usage() string {
	return `replay [flags] FILE.bpn...

Replay each game record from its initial position, checking that every
move is legal and that the recorded result matches the final position.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.render, "render", false, "print every position")
	flags.BoolVar(&c.unicode, "unicode", false, "render tiles with utf8 glyphs")
}

var errResult = errors.New("recorded result does not match")

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flag.NArg() == 0 {
		return subcommands.ExitUsageError
	}
	g := &cli.DefaultGlyphs
	if c.unicode {
		g = &cli.UnicodeGlyphs
	}
	var out io.Writer
	if c.render {
		out = os.Stdout
	}

	status := subcommands.ExitSuccess
	for _, path := range flag.Args() {
		p, err := bpn.ParseFile(path)
		if err == nil {
			err = replay(p, g, out)
		}
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("replay")
			status = subcommands.ExitFailure
			continue
		}
		log.Info().Str("file", path).Int("moves", len(p.Moves())).Msg("ok")
	}
	return status
}

// replay steps through a record, rendering each position to out if it
// is non-nil.
func replay(p *bpn.BPN, g *cli.Glyphs, out io.Writer) error {
	it := p.Iterator()
	ply := 0
	for it.Next() {
		if out != nil {
			cli.RenderState(g, out, it.State())
			fmt.Fprintf(out, "%d. %s\n\n", ply+1, bpn.FormatMove(it.Move()))
		}
		ply++
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("ply %d: %w", ply, err)
	}
	final := it.State()
	if out != nil {
		cli.RenderState(g, out, final)
	}
	if want, ok := p.Result(); ok && want != final.Outcome() {
		return fmt.Errorf("%w: recorded %s, position is %s", errResult, bpn.FormatResult(want), bpn.FormatResult(final.Outcome()))
	}
	return nil
}

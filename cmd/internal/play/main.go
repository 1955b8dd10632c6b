package play

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/cli"
	"github.com/nelhage/blau/cmd/internal/opt"
	"github.com/rs/zerolog/log"
)

type Command struct {
	players int
	p       [blau.MaxPlayers]string
	seed    uint64
	limit   time.Duration
	out     string
	greedy  opt.Greedy

	unicode bool
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play Blau from the command line" }
func (*Command) Usage() string {
	return `play

Play Blau on the command-line, against humans or AIs.
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.players, "players", 2, "number of players")
	for i := range c.p {
		def := "greedy"
		if i == 0 {
			def = "human"
		}
		flags.StringVar(&c.p[i], fmt.Sprintf("p%d", i+1), def, fmt.Sprintf("player %d (human, greedy, random[:seed], bei:<cmd>)", i+1))
	}
	flags.Uint64Var(&c.seed, "seed", 0, "game seed (0 picks one)")
	flags.DurationVar(&c.limit, "limit", time.Minute, "ai time limit")
	flags.StringVar(&c.out, "out", "", "write bpn to file")
	c.greedy.AddFlags(flags)

	flags.BoolVar(&c.unicode, "unicode", false, "render tiles with utf8 glyphs")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.players < blau.MinPlayers || c.players > blau.MaxPlayers {
		log.Error().Msgf("-players must be between %d and %d", blau.MinPlayers, blau.MaxPlayers)
		return subcommands.ExitUsageError
	}
	if c.seed == 0 {
		c.seed = uint64(time.Now().UnixNano())
	}
	w, err := c.greedy.BuildWeights()
	if err != nil {
		log.Error().Err(err).Msg("-greedy-weights")
		return subcommands.ExitUsageError
	}

	in := bufio.NewReader(os.Stdin)
	players := make([]ai.Player, c.players)
	for i := range players {
		p, done, err := c.parsePlayer(in, c.p[i], w)
		if err != nil {
			log.Error().Err(err).Msgf("-p%d", i+1)
			return subcommands.ExitUsageError
		}
		defer done()
		players[i] = p
	}

	cfg := blau.Config{Players: c.players, Seed: c.seed}
	st := &cli.CLI{
		Config:  cfg,
		Out:     os.Stdout,
		Players: players,
		Glyphs:  glyphs(c.unicode),
	}
	_, playErr := st.Play(ctx)
	if playErr != nil {
		log.Error().Err(playErr).Msg("play")
	}
	if c.out != "" {
		var tags []bpn.Tag
		for i := 0; i < c.players; i++ {
			tags = append(tags, bpn.Tag{Name: fmt.Sprintf("Player%d", i+1), Value: c.p[i]})
		}
		p, err := bpn.NewRecord(cfg, st.Moves(), tags...)
		if err == nil {
			err = os.WriteFile(c.out, []byte(p.Render()), 0644)
		}
		if err != nil {
			log.Error().Err(err).Msg("writing bpn")
			return subcommands.ExitFailure
		}
	}
	if playErr != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func glyphs(unicode bool) *cli.Glyphs {
	if unicode {
		return &cli.UnicodeGlyphs
	}
	return &cli.DefaultGlyphs
}

type aiWrapper struct {
	limit time.Duration
	p     ai.Player
}

func (a *aiWrapper) GetMove(ctx context.Context, s blau.State) blau.Move {
	ctx, cancel := context.WithTimeout(ctx, a.limit)
	defer cancel()
	return a.p.GetMove(ctx, s)
}

func (c *Command) parsePlayer(in *bufio.Reader, spec string, w ai.Weights) (ai.Player, func(), error) {
	if spec == "human" {
		return cli.NewCLIPlayer(os.Stdout, in), func() {}, nil
	}
	p, done, err := opt.ParsePlayer(spec, c.seed, w)
	if err != nil {
		return nil, nil, err
	}
	return &aiWrapper{c.limit, p}, done, nil
}

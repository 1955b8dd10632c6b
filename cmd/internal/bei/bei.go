package bei

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/bei"
	"github.com/nelhage/blau/cmd/internal/opt"
	"github.com/rs/zerolog/log"
)

type Command struct {
	policy string
	seed   uint64
	greedy opt.Greedy
}

func (*Command) Name() string     { return "bei" }
func (*Command) Synopsis() string { return "Launch the engine in BEI mode" }
func (*Command) Usage() string {
	return `bei [flags]

Launch the engine in BEI mode, a line-oriented protocol suitable for
being driven by an external controller.

`
}

func (c *Command) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.policy, "policy", "greedy", "policy answering 'go' (greedy, random[:seed])")
	fs.Uint64Var(&c.seed, "seed", 0, "seed for the random policy")
	c.greedy.AddFlags(fs)
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := c.greedy.BuildWeights()
	if err != nil {
		log.Error().Err(err).Msg("-greedy-weights")
		return subcommands.ExitUsageError
	}
	if strings.HasPrefix(c.policy, "bei:") {
		log.Error().Msg("-policy: cannot proxy to another engine")
		return subcommands.ExitUsageError
	}
	// Fail early on a bad policy rather than on the first "go".
	if _, _, err := opt.ParsePlayer(c.policy, c.seed, w); err != nil {
		log.Error().Err(err).Msg("-policy")
		return subcommands.ExitUsageError
	}

	engine := bei.NewEngine(os.Stdin, os.Stdout)
	engine.PlayerFactory = func(players int) ai.Player {
		p, _, err := opt.ParsePlayer(c.policy, c.seed, w)
		if err != nil {
			return ai.NewGreedy(w)
		}
		return p
	}
	if err := engine.Run(ctx); err != nil {
		log.Error().Err(err).Msg("bei")
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

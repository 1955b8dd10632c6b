package opt

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/bei"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Greedy struct {
	Weights string
}

func (o *Greedy) AddFlags(flags *flag.FlagSet) {
	flags.StringVar(&o.Weights, "greedy-weights", "", "JSON-encoded greedy tie-break weights, applied over the defaults")
}

func (o *Greedy) BuildWeights() (ai.Weights, error) {
	w := ai.DefaultWeights
	if o.Weights != "" {
		if e := json.Unmarshal([]byte(o.Weights), &w); e != nil {
			return w, fmt.Errorf("parse weights: %w", e)
		}
	}
	return w, nil
}

// ParsePlayer builds a player from a spec:
//
//	random[:seed]    uniformly random legal moves
//	greedy           ai.GreedyAI with weights w
//	bei:<cmdline>    an external engine speaking the bei protocol
//
// The returned function releases the player's resources.
func ParsePlayer(spec string, seed uint64, w ai.Weights) (ai.Player, func(), error) {
	nop := func() {}
	switch {
	case spec == "greedy":
		return ai.NewGreedy(w), nop, nil
	case spec == "random":
		return ai.NewRandom(seed), nop, nil
	case strings.HasPrefix(spec, "random:"):
		s, err := strconv.ParseUint(spec[len("random:"):], 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("bad seed in %q: %w", spec, err)
		}
		return ai.NewRandom(s), nop, nil
	case strings.HasPrefix(spec, "bei:"):
		cl, err := bei.NewClient(strings.Fields(spec[len("bei:"):]))
		if err != nil {
			return nil, nil, fmt.Errorf("starting engine %q: %w", spec, err)
		}
		return cl.Player(), cl.Close, nil
	}
	return nil, nil, fmt.Errorf("unparseable player: %q", spec)
}

// SetupLogging points the global zerolog logger at stderr.
func SetupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

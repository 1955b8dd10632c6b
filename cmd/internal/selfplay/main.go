package selfplay

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"
	"runtime/pprof"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/cmd/internal/opt"
	"github.com/nelhage/blau/logs"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Command struct {
	players int
	p       [blau.MaxPlayers]string
	seed    uint64

	games  int
	cutoff int
	swap   bool

	limit   time.Duration
	threads int
	greedy  opt.Greedy

	out     string
	db      string
	run     string
	summary string
	verbose bool

	memProfile string
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play AIs against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.IntVar(&c.players, "players", 2, "number of players")
	for i := range c.p {
		def := "greedy"
		if i%2 == 1 {
			def = "random"
		}
		flags.StringVar(&c.p[i], fmt.Sprintf("p%d", i+1), def, fmt.Sprintf("player %d spec (greedy, random[:seed], bei:<cmd>)", i+1))
	}

	flags.Uint64Var(&c.seed, "seed", 0, "starting random seed")
	flags.IntVar(&c.games, "games", 10, "number of games to play")
	flags.IntVar(&c.cutoff, "cutoff", 1000, "cut games off after how many plies (0 for never)")
	flags.BoolVar(&c.swap, "swap", true, "rotate seats each game")
	flags.DurationVar(&c.limit, "limit", 0, "amount of time to search each move")
	flags.IntVar(&c.threads, "threads", 4, "number of parallel threads")
	c.greedy.AddFlags(flags)

	flags.StringVar(&c.out, "out", "", "directory to write game records to")
	flags.StringVar(&c.db, "db", "", "sqlite database to log results to")
	flags.StringVar(&c.run, "run", "", "run name for -db (defaults to the seed)")
	flags.StringVar(&c.summary, "summary", "", "write summary JSON file")
	flags.BoolVar(&c.verbose, "v", false, "verbose output")
	flags.StringVar(&c.memProfile, "mem-profile", "", "write memory profile")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.memProfile != "" {
		defer func() {
			f, e := os.OpenFile(c.memProfile,
				os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
			if e != nil {
				log.Error().Err(e).Msg("open memory profile")
				return
			}
			defer f.Close()
			pprof.Lookup("heap").WriteTo(f, 0)
		}()
	}

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

	cfg := &Config{
		Games:   c.games,
		Players: c.players,
		Threads: c.threads,
		Seed:    c.seed,
		Cutoff:  c.cutoff,
		Limit:   c.limit,
		Swap:    c.swap,
		Specs:   append([]string(nil), c.p[:c.players]...),
		Weights: w,
		Verbose: c.verbose,
	}

	st, err := Simulate(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("selfplay")
		return subcommands.ExitFailure
	}

	if c.out != "" {
		if c.summary == "" {
			c.summary = path.Join(c.out, "summary.json")
		}
		for i := range st.Games {
			if err := writeGame(c.out, cfg, &st.Games[i]); err != nil {
				log.Error().Err(err).Int("game", st.Games[i].Number).Msg("writing game")
			}
		}
	}
	if c.db != "" {
		if err := c.logGames(cfg, &st); err != nil {
			log.Error().Err(err).Msg("logging games")
		}
	}
	if c.summary != "" {
		if err := c.writeSummary(c.summary, &st); err != nil {
			log.Error().Err(err).Msg("writing summary")
		}
	}

	log.Info().Msgf("done games=%d seed=%d draws=%d cutoff=%d plies=%d limit=%s",
		st.Count(), c.seed, st.Draws, st.Cutoff, st.Plies, c.limit)
	writeTable(os.Stderr, &st)

	if c.players == 2 {
		a, b := int64(st.Players[0].Wins), int64(st.Players[1].Wins)
		if a < b {
			a, b = b, a
		}
		log.Info().Msgf("p[one-sided]=%f", binomTest(a, b, 0.5))
	}

	return subcommands.ExitSuccess
}

func writeTable(w *os.File, st *Stats) {
	pr := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	pr.Fprintf(tw, "\tspec\tgames\twins\tdraws\tcutoff\tmean score\n")
	for i, ps := range st.Players {
		mean := 0.0
		if ps.Games > 0 {
			mean = float64(ps.Score) / float64(ps.Games)
		}
		pr.Fprintf(tw, "p%d\t%s\t%d\t%d\t%d\t%d\t%.2f\n",
			i+1, ps.Spec, ps.Games, ps.Wins, ps.Draws, ps.Cutoff, mean)
	}
	pr.Fprintf(tw, "\n\tseat\twins\n")
	for seat := range st.Players {
		pr.Fprintf(tw, "\t%d\t%d\n", seat+1, st.SeatWins[seat])
	}
	tw.Flush()
}

func writeGame(d string, c *Config, r *Result) error {
	if err := os.MkdirAll(d, 0755); err != nil {
		return err
	}
	tags := make([]bpn.Tag, 0, len(r.Seating)+1)
	tags = append(tags, bpn.Tag{Name: "Game", Value: strconv.Itoa(r.Number)})
	for seat, pi := range r.Seating {
		tags = append(tags, bpn.Tag{
			Name:  fmt.Sprintf("Player%d", seat+1),
			Value: c.Specs[pi],
		})
	}
	p, err := bpn.NewRecord(blau.Config{Players: c.Players, Seed: r.Seed}, r.Moves, tags...)
	if err != nil {
		return err
	}
	return os.WriteFile(path.Join(d, fmt.Sprintf("%d.bpn", r.Number)), []byte(p.Render()), 0644)
}

func (c *Command) logGames(cfg *Config, st *Stats) error {
	repo, err := logs.Open(c.db)
	if err != nil {
		return err
	}
	defer repo.Close()

	run := c.run
	if run == "" {
		run = strconv.FormatUint(c.seed, 10)
	}
	now := time.Now()
	gs := make([]*logs.Game, len(st.Games))
	for i := range st.Games {
		gs[i] = logGame(run, now, cfg, &st.Games[i])
	}
	return repo.InsertGames(gs)
}

func logGame(run string, now time.Time, cfg *Config, r *Result) *logs.Game {
	g := &logs.Game{
		Run:       run,
		Number:    r.Number,
		Timestamp: now,
		Players:   cfg.Players,
		Seed:      strconv.FormatUint(r.Seed, 10),
		Result:    r.Outcome.Kind.String(),
		Winner:    -1,
		Rounds:    r.Final.Round(),
		Moves:     len(r.Moves),
	}
	if r.Outcome.Kind == blau.Win {
		g.Winner = r.Outcome.Winner
	}
	for seat, pi := range r.Seating {
		g.Seats = append(g.Seats, logs.Seat{
			Seat:   seat,
			Player: cfg.Specs[pi],
			Score:  r.Final.Score(seat),
		})
	}
	return g
}

type Summary struct {
	Cmdline []string
	Players []string
	Seed    uint64
	Limit   time.Duration
	Stats   *Stats
}

func (c *Command) writeSummary(path string, stats *Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	summary := Summary{
		Cmdline: os.Args,
		Players: c.p[:c.players],
		Seed:    c.seed,
		Limit:   c.limit,
		Stats:   stats,
	}

	bs, err := json.MarshalIndent(&summary, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(bs)
	return err
}

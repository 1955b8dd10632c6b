package selfplay

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/cmd/internal/opt"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Games   int
	Players int
	Threads int
	Seed    uint64
	// Cutoff ends a game after this many plies; zero means never.
	Cutoff int
	Limit  time.Duration
	// Swap rotates the players around the table from game to game.
	Swap bool

	// Specs holds one player spec per seat, as parsed by
	// opt.ParsePlayer.
	Specs   []string
	Weights ai.Weights

	Verbose bool
}

type PlayerStats struct {
	Spec   string
	Games  int
	Wins   int
	Draws  int
	Score  int
	Cutoff int
}

type Stats struct {
	Players  []PlayerStats
	SeatWins [blau.MaxPlayers]int
	Draws    int
	Cutoff   int
	Plies    int

	Games []Result `json:"-"`
}

func newStats(c *Config) Stats {
	st := Stats{Players: make([]PlayerStats, len(c.Specs))}
	for i, spec := range c.Specs {
		st.Players[i].Spec = spec
	}
	return st
}

func (s *Stats) Count() int {
	n := s.Draws + s.Cutoff
	for _, w := range s.SeatWins {
		n += w
	}
	return n
}

func (s *Stats) Add(r *Result) {
	s.Plies += len(r.Moves)
	switch r.Outcome.Kind {
	case blau.Win:
		s.SeatWins[r.Outcome.Winner]++
		s.Players[r.Seating[r.Outcome.Winner]].Wins++
	case blau.Draw:
		s.Draws++
	default:
		s.Cutoff++
	}
	for seat, pi := range r.Seating {
		ps := &s.Players[pi]
		ps.Games++
		ps.Score += r.Final.Score(seat)
		switch r.Outcome.Kind {
		case blau.Draw:
			ps.Draws++
		case blau.Undecided:
			ps.Cutoff++
		}
	}
	s.Games = append(s.Games, *r)
}

type gameSpec struct {
	n    int
	seed uint64
	// seating maps seats to indexes into Config.Specs.
	seating []int
}

type Result struct {
	Number  int
	Seed    uint64
	Seating []int
	Moves   []blau.Move
	Final   blau.State
	Outcome blau.Outcome
}

// Simulate plays c.Games games on c.Threads workers. Results are
// returned in game order.
func Simulate(ctx context.Context, c *Config) (Stats, error) {
	st := newStats(c)
	if len(c.Specs) != c.Players {
		return st, fmt.Errorf("%d player specs for a %d player game", len(c.Specs), c.Players)
	}
	threads := c.Threads
	if threads < 1 {
		threads = 1
	}

	grp, ctx := errgroup.WithContext(ctx)
	gc := make(chan gameSpec)
	rc := make(chan Result)
	grp.Go(func() error {
		defer close(gc)
		return startGames(ctx, c, gc)
	})
	var wg sync.WaitGroup
	wg.Add(threads)
	for i := 0; i < threads; i++ {
		grp.Go(func() error {
			defer wg.Done()
			return worker(ctx, c, gc, rc)
		})
	}
	go func() {
		wg.Wait()
		close(rc)
	}()

	for r := range rc {
		if c.Verbose {
			log.Info().
				Int("game", r.Number).
				Int("plies", len(r.Moves)).
				Int("rounds", r.Final.Round()).
				Ints("scores", r.Final.Scores()).
				Stringer("outcome", r.Outcome).
				Msg("game over")
		}
		st.Add(&r)
	}
	sort.Slice(st.Games, func(i, j int) bool {
		return st.Games[i].Number < st.Games[j].Number
	})
	return st, grp.Wait()
}

func startGames(ctx context.Context, c *Config, gc chan<- gameSpec) error {
	r := rand.New(rand.NewSource(c.Seed))
	for g := 0; g < c.Games; g++ {
		spec := gameSpec{
			n:       g,
			seed:    r.Uint64(),
			seating: make([]int, c.Players),
		}
		for seat := range spec.seating {
			if c.Swap {
				spec.seating[seat] = (seat + g) % c.Players
			} else {
				spec.seating[seat] = seat
			}
		}
		select {
		case gc <- spec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// engines caches one external engine per spec for the lifetime of a
// worker; built-in players are rebuilt for every game so that their
// randomness depends only on the game seed.
type engines map[string]ai.Player

func (e engines) player(c *Config, spec string, seed uint64, closers *[]func()) (ai.Player, error) {
	if p, ok := e[spec]; ok {
		return p, nil
	}
	p, done, err := opt.ParsePlayer(spec, seed, c.Weights)
	if err != nil {
		return nil, err
	}
	if isEngine(spec) {
		e[spec] = p
		*closers = append(*closers, done)
	}
	return p, nil
}

func isEngine(spec string) bool {
	return strings.HasPrefix(spec, "bei:")
}

func worker(ctx context.Context, c *Config, games <-chan gameSpec, out chan<- Result) error {
	cache := make(engines)
	var closers []func()
	defer func() {
		for _, done := range closers {
			done()
		}
	}()

	for g := range games {
		players := make([]ai.Player, c.Players)
		for seat, pi := range g.seating {
			p, err := cache.player(c, c.Specs[pi], g.seed+uint64(seat)+1, &closers)
			if err != nil {
				return err
			}
			players[seat] = p
		}
		r, err := playGame(ctx, c, g, players)
		if err != nil {
			return err
		}
		select {
		case out <- r:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func playGame(ctx context.Context, c *Config, g gameSpec, players []ai.Player) (Result, error) {
	s, err := blau.New(blau.Config{Players: c.Players, Seed: g.seed})
	if err != nil {
		return Result{}, err
	}
	var ms []blau.Move
	for ply := 0; !s.GameOver() && (c.Cutoff <= 0 || ply < c.Cutoff); ply++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		mctx, cancel := ctx, context.CancelFunc(func() {})
		if c.Limit != 0 {
			mctx, cancel = context.WithTimeout(ctx, c.Limit)
		}
		m := players[s.ToMove()].GetMove(mctx, s)
		cancel()

		log.Debug().
			Int("game", g.n).
			Int("ply", ply).
			Str("state", bpn.FormatState(s)).
			Str("move", bpn.FormatMove(m)).
			Msg("move")

		next, err := s.Move(m)
		if err != nil {
			return Result{}, fmt.Errorf("game %d: player %q: %w", g.n, c.Specs[g.seating[s.ToMove()]], err)
		}
		s = next
		ms = append(ms, m)
	}
	return Result{
		Number:  g.n,
		Seed:    g.seed,
		Seating: g.seating,
		Moves:   ms,
		Final:   s,
		Outcome: s.Outcome(),
	}, nil
}

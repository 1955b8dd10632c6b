package blau

import "golang.org/x/exp/rand"

type Config struct {
	// Players defaults to 2.
	Players int
	// Seed drives the bag draws and the choice of starting player.
	Seed uint64
}

// State is a complete game position. It is a plain value: copying it
// copies the position, == compares positions, and it can be used as a
// map key. No method modifies the receiver.
type State struct {
	players int8
	toMove  int8
	// start is the player who begins the next round: whoever took the
	// first player token this round, else this round's starter.
	start         int8
	round         int16
	tokenInCenter bool

	factories [MaxFactories][NumColors]uint8
	center    [NumColors]uint8
	bag       [NumColors]uint8
	lid       [NumColors]uint8

	boards [MaxPlayers]Board
	rng    [2]uint64
}

// New returns the position at the start of the first round: a full
// bag, factories dealt and the first player token in the center.
func New(cfg Config) (State, error) {
	if cfg.Players == 0 {
		cfg.Players = 2
	}
	if cfg.Players < MinPlayers || cfg.Players > MaxPlayers {
		return State{}, ErrPlayers
	}
	s := State{
		players:       int8(cfg.Players),
		round:         1,
		tokenInCenter: true,
		rng:           seedRNG(cfg.Seed),
	}
	for c := range s.bag {
		s.bag[c] = TilesPerColor
	}
	first := 0
	s.withRand(func(r *rand.Rand) {
		first = r.Intn(cfg.Players)
	})
	s.start = int8(first)
	s.toMove = int8(first)
	s.deal()
	return s, nil
}

func (s State) Players() int     { return int(s.players) }
func (s State) ToMove() int      { return int(s.toMove) }
func (s State) StartPlayer() int { return int(s.start) }
func (s State) Round() int       { return int(s.round) }

func (s State) TokenInCenter() bool { return s.tokenInCenter }

func (s State) NumFactories() int {
	return 2*int(s.players) + 1
}

// Factory returns the tile counts of factory i, numbered from 1 as in
// Move.Source. A factory not in play is empty.
func (s State) Factory(i int) [NumColors]int {
	if i < 1 || i > s.NumFactories() {
		return [NumColors]int{}
	}
	return widen(s.factories[i-1])
}

func (s State) Center() [NumColors]int { return widen(s.center) }
func (s State) Bag() [NumColors]int    { return widen(s.bag) }
func (s State) Lid() [NumColors]int    { return widen(s.lid) }

// Board returns player p's board, or an empty board if there is no
// player p.
func (s State) Board(p int) Board {
	if p < 0 || p >= int(s.players) {
		return Board{}
	}
	return s.boards[p]
}

func (s State) Score(p int) int {
	return s.Board(p).Score()
}

func (s State) Scores() []int {
	out := make([]int, s.players)
	for p := range out {
		out[p] = s.Score(p)
	}
	return out
}

// source returns the tile counts of Move source i.
func (s *State) source(i int) *[NumColors]uint8 {
	if i == 0 {
		return &s.center
	}
	return &s.factories[i-1]
}

// sourcesEmpty reports whether no colored tile is left to draft.
func (s *State) sourcesEmpty() bool {
	for _, n := range s.center {
		if n != 0 {
			return false
		}
	}
	for f := 0; f < s.NumFactories(); f++ {
		for _, n := range s.factories[f] {
			if n != 0 {
				return false
			}
		}
	}
	return true
}

// Compare is a total order on states, consistent with ==.
func Compare(a, b State) int {
	ea, eb := a.Serialize(), b.Serialize()
	for i := 0; i < len(ea) && i < len(eb); i++ {
		if ea[i] != eb[i] {
			return cmpInt(ea[i], eb[i])
		}
	}
	return cmpInt(len(ea), len(eb))
}

func widen(a [NumColors]uint8) [NumColors]int {
	var out [NumColors]int
	for i, n := range a {
		out[i] = int(n)
	}
	return out
}

package blautest

import (
	"strings"

	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
)

func Move(s string) blau.Move {
	m, e := bpn.ParseMove(s)
	if e != nil {
		panic(e)
	}
	return m
}

func Moves(s string) []blau.Move {
	if s == "" {
		return nil
	}
	var ms []blau.Move
	for _, b := range strings.Fields(s) {
		ms = append(ms, Move(b))
	}
	return ms
}

func FormatMoves(ms []blau.Move) string {
	var bits []string
	for _, o := range ms {
		bits = append(bits, bpn.FormatMove(o))
	}
	return strings.Join(bits, " ")
}

// State plays ms from the initial position for cfg.
func State(cfg blau.Config, ms string) blau.State {
	p, e := blau.New(cfg)
	if e != nil {
		panic(e)
	}
	for _, m := range Moves(ms) {
		p, e = p.Move(m)
		if e != nil {
			panic(e)
		}
	}
	return p
}

// Playout plays the first legal move in every position until the game
// ends or limit moves have been made, returning the moves played.
func Playout(s blau.State, limit int) (blau.State, []blau.Move) {
	var ms []blau.Move
	for len(ms) < limit {
		legal := blau.LegalMoves(s)
		if len(legal) == 0 {
			break
		}
		var e error
		if s, e = s.Move(legal[0]); e != nil {
			panic(e)
		}
		ms = append(ms, legal[0])
	}
	return s, ms
}

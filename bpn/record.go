package bpn

import (
	"fmt"
	"strconv"

	"github.com/nelhage/blau/blau"
)

// NewRecord builds a record of a game played from the initial position
// for cfg. Moves are replayed to place the round markers, and the
// final outcome (or "*" for an unfinished game) closes the record.
func NewRecord(cfg blau.Config, moves []blau.Move, tags ...Tag) (*BPN, error) {
	s, err := blau.New(cfg)
	if err != nil {
		return nil, err
	}
	p := &BPN{}
	p.Tags = append(p.Tags,
		Tag{Name: "Players", Value: strconv.Itoa(s.Players())},
		Tag{Name: "Seed", Value: strconv.FormatUint(cfg.Seed, 10)},
	)
	p.Tags = append(p.Tags, tags...)

	round := 0
	for i, m := range moves {
		if s.Round() != round {
			round = s.Round()
			p.Ops = append(p.Ops, &RoundNumber{Number: round})
		}
		p.Ops = append(p.Ops, &Move{Move: m})
		if s, err = s.Move(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	p.Ops = append(p.Ops, &Result{Outcome: s.Outcome()})
	return p, nil
}

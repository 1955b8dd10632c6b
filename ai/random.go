package ai

import (
	"context"

	"github.com/nelhage/blau/blau"
	"golang.org/x/exp/rand"
)

type RandomAI struct {
	r *rand.Rand
}

func (r *RandomAI) GetMove(ctx context.Context, s blau.State) blau.Move {
	moves := s.AllMoves(nil)
	return moves[r.r.Intn(len(moves))]
}

func NewRandom(seed uint64) *RandomAI {
	return &RandomAI{
		r: rand.New(rand.NewSource(seed)),
	}
}

package ai

import (
	"context"

	"github.com/nelhage/blau/blau"
)

//go:generate stringer -type=Feature
type Feature int

const (
	// FirstPlayer is added for taking the first player token, on top
	// of its floor penalty.
	FirstPlayer Feature = iota
	// NewLine is added for starting an empty pattern line.
	NewLine
	// NewLineIndex is multiplied by the index of a newly started line.
	NewLineIndex
	// Center is added for drafting from the center.
	Center
	// Tiles is multiplied by the number of tiles taken.
	Tiles
	// Middle is multiplied by how far left of the middle column the
	// tile would land.
	Middle
	MaxFeature
)

type Weights [MaxFeature]int64

var DefaultWeights = Weights{
	NewLine:      -50,
	NewLineIndex: -1,
	Center:       10,
	Tiles:        10,
}

// GreedyAI plays the move that maximizes the score the mover would
// have if the round ended immediately. Ties are broken by a weighted
// sum of move features, then by move order.
type GreedyAI struct {
	w Weights
}

func NewGreedy(w Weights) *GreedyAI {
	return &GreedyAI{w: w}
}

func (g *GreedyAI) GetMove(ctx context.Context, s blau.State) blau.Move {
	moves := s.AllMoves(nil)
	best := moves[0]
	bestScore, bestBias := g.Score(s, best)
	for _, m := range moves[1:] {
		score, bias := g.Score(s, m)
		if score > bestScore || (score == bestScore && bias > bestBias) {
			best, bestScore, bestBias = m, score, bias
		}
	}
	return best
}

// Score returns the projected score after m and the feature bias used
// to split ties.
func (g *GreedyAI) Score(s blau.State, m blau.Move) (int64, int64) {
	before := s.Board(s.ToMove())
	after, err := s.Preview(m)
	if err != nil {
		panic(err)
	}
	var bias int64
	if m.FromCenter() {
		bias += g.w[Center]
		if s.TokenInCenter() {
			bias += g.w[FirstPlayer]
		}
	}
	if !m.ToFloor() {
		if _, n := before.Line(m.Line()); n == 0 {
			bias += g.w[NewLine] + int64(m.Line())*g.w[NewLineIndex]
		}
		bias += g.w[Middle] * int64(2-blau.WallColumn(m.Line(), m.Color()))
	}
	bias += g.w[Tiles] * int64(s.Taken(m))
	return int64(after.ProjectedScore()), bias
}

package ai

import (
	"context"
	"testing"

	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/blautest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playGame(t *testing.T, players []Player, cfg blau.Config) blau.State {
	t.Helper()
	s, err := blau.New(cfg)
	require.NoError(t, err)
	ctx := context.Background()
	for i := 0; !s.GameOver(); i++ {
		require.Less(t, i, 5000, "game did not end")
		m := players[s.ToMove()].GetMove(ctx, s)
		s, err = s.Move(m)
		require.NoError(t, err)
	}
	return s
}

func TestRandomDeterministic(t *testing.T) {
	cfg := blau.Config{Players: 3, Seed: 4}
	a := playGame(t, []Player{NewRandom(1), NewRandom(2), NewRandom(3)}, cfg)
	b := playGame(t, []Player{NewRandom(1), NewRandom(2), NewRandom(3)}, cfg)
	assert.Equal(t, a, b)
	assert.NotEqual(t, blau.Undecided, a.Outcome().Kind)
}

func TestGreedyMaximizesProjectedScore(t *testing.T) {
	g := NewGreedy(DefaultWeights)
	r := NewRandom(9)
	ctx := context.Background()
	s, err := blau.New(blau.Config{Players: 2, Seed: 6})
	require.NoError(t, err)
	for i := 0; i < 30 && !s.GameOver(); i++ {
		best, _ := g.Score(s, g.GetMove(ctx, s))
		for _, m := range s.AllMoves(nil) {
			score, _ := g.Score(s, m)
			assert.LessOrEqual(t, score, best, "move %s", m)
		}
		s, err = s.Move(r.GetMove(ctx, s))
		require.NoError(t, err)
	}
}

func TestGreedyBeatsRandom(t *testing.T) {
	wins := 0
	const games = 20
	for i := 0; i < games; i++ {
		cfg := blau.Config{Players: 2, Seed: uint64(i)}
		s := playGame(t, []Player{NewGreedy(DefaultWeights), NewRandom(uint64(i))}, cfg)
		if o := s.Outcome(); o.Kind == blau.Win && o.Winner == 0 {
			wins++
		}
	}
	assert.Greater(t, wins, games/2)
}

func TestGreedyScoreFeatures(t *testing.T) {
	s := blautest.State(blau.Config{Players: 2, Seed: 8}, "")
	var w Weights
	w[Tiles] = 1
	g := NewGreedy(w)
	for _, m := range s.AllMoves(nil) {
		_, bias := g.Score(s, m)
		assert.Equal(t, int64(s.Taken(m)), bias, "move %s", m)
	}

	w = Weights{}
	w[NewLine] = 1
	g = NewGreedy(w)
	for _, m := range s.AllMoves(nil) {
		_, bias := g.Score(s, m)
		want := int64(1)
		if m.ToFloor() {
			want = 0
		}
		assert.Equal(t, want, bias, "move %s", m)
	}
}

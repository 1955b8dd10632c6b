package selfplay

import (
	"context"
	"path"
	"testing"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
	"github.com/nelhage/blau/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Games:   6,
		Players: 2,
		Threads: 3,
		Seed:    17,
		Swap:    true,
		Specs:   []string{"greedy", "random"},
		Weights: ai.DefaultWeights,
	}
}

func TestSimulate(t *testing.T) {
	c := testConfig()
	st, err := Simulate(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, c.Games, st.Count())
	require.Len(t, st.Games, c.Games)
	wins := 0
	for i, g := range st.Games {
		assert.Equal(t, i, g.Number)
		assert.True(t, g.Final.GameOver(), "game %d", i)
		assert.Equal(t, g.Outcome, g.Final.Outcome())
		assert.Equal(t, []int{i % 2, (i + 1) % 2}, g.Seating)
	}
	for _, ps := range st.Players {
		assert.Equal(t, c.Games, ps.Games)
		wins += ps.Wins
	}
	assert.Equal(t, st.SeatWins[0]+st.SeatWins[1], wins)
	assert.Equal(t, c.Games, wins+st.Draws)
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := Simulate(context.Background(), testConfig())
	require.NoError(t, err)
	c := testConfig()
	c.Threads = 1
	b, err := Simulate(context.Background(), c)
	require.NoError(t, err)

	require.Len(t, b.Games, len(a.Games))
	for i := range a.Games {
		assert.Equal(t, a.Games[i].Seed, b.Games[i].Seed)
		assert.Equal(t, a.Games[i].Moves, b.Games[i].Moves)
		assert.Equal(t, a.Games[i].Final, b.Games[i].Final)
	}
}

func TestSimulateCutoff(t *testing.T) {
	c := testConfig()
	c.Cutoff = 3
	st, err := Simulate(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, c.Games, st.Cutoff)
	for _, g := range st.Games {
		assert.Len(t, g.Moves, 3)
		assert.Equal(t, blau.Undecided, g.Outcome.Kind)
	}
}

func TestSimulateErrors(t *testing.T) {
	c := testConfig()
	c.Specs = []string{"greedy"}
	_, err := Simulate(context.Background(), c)
	assert.Error(t, err)

	c = testConfig()
	c.Specs = []string{"greedy", "minimax"}
	_, err = Simulate(context.Background(), c)
	assert.Error(t, err)
}

func TestWriteGame(t *testing.T) {
	c := testConfig()
	c.Games = 2
	st, err := Simulate(context.Background(), c)
	require.NoError(t, err)

	dir := t.TempDir()
	for i := range st.Games {
		require.NoError(t, writeGame(dir, c, &st.Games[i]))
	}

	r := &st.Games[1]
	p, err := bpn.ParseFile(path.Join(dir, "1.bpn"))
	require.NoError(t, err)
	assert.Equal(t, "random", p.FindTag("Player1"))
	assert.Equal(t, "greedy", p.FindTag("Player2"))
	assert.Equal(t, r.Moves, p.Moves())

	it := p.Iterator()
	for it.Next() {
	}
	require.NoError(t, it.Err())
	assert.Equal(t, r.Final, it.State())
	o, ok := p.Result()
	require.True(t, ok)
	assert.Equal(t, r.Outcome, o)
}

func TestLogGames(t *testing.T) {
	c := testConfig()
	st, err := Simulate(context.Background(), c)
	require.NoError(t, err)

	db := path.Join(t.TempDir(), "games.db")
	cmd := &Command{db: db, run: "test", seed: c.Seed}
	require.NoError(t, cmd.logGames(c, &st))

	repo, err := logs.Open(db)
	require.NoError(t, err)
	defer repo.Close()

	gs, err := repo.Games("test")
	require.NoError(t, err)
	require.Len(t, gs, c.Games)
	for i, g := range gs {
		r := &st.Games[i]
		assert.Equal(t, r.Number, g.Number)
		assert.Equal(t, len(r.Moves), g.Moves)
		require.Len(t, g.Seats, c.Players)
		for seat, s := range g.Seats {
			assert.Equal(t, r.Final.Score(seat), s.Score)
			assert.Equal(t, c.Specs[r.Seating[seat]], s.Player)
		}
	}

	standings, err := repo.Standings("test")
	require.NoError(t, err)
	assert.Len(t, standings, 2)
}

func TestBinomTest(t *testing.T) {
	assert.InDelta(t, 1.0, binomTest(0, 10, 0.5), 1e-9)
	assert.InDelta(t, 1.0/1024, binomTest(10, 0, 0.5), 1e-9)
	assert.InDelta(t, 0.5+binomprob(5, 10, 0.5)/2, binomTest(5, 5, 0.5), 1e-9)
}

package blau

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	start := testState(2, "BBOR", "GGGG", "OPRB", "RRRR", "PPPB")
	var states []State
	s := start
	states = append(states, s)
	for _, m := range firstRound {
		s = play(s, m)
		states = append(states, s)
	}
	for players := MinPlayers; players <= MaxPlayers; players++ {
		s, err := New(Config{Players: players, Seed: uint64(players)})
		require.NoError(t, err)
		states = append(states, s)
	}

	for i, s := range states {
		enc := s.Serialize()
		assert.Len(t, enc, EncodedLen(s.Players()))
		for j, v := range enc {
			assert.True(t, v >= -1 && v < 1<<16, "state %d element %d = %d", i, j, v)
		}
		out, err := Deserialize(enc)
		if assert.NoError(t, err, "state %d", i) {
			assert.Equal(t, s, out, "state %d", i)
		}

		bin, err := s.MarshalBinary()
		require.NoError(t, err)
		var back State
		if assert.NoError(t, back.UnmarshalBinary(bin)) {
			assert.Equal(t, s, back)
		}
	}
}

func TestSerializeLayout(t *testing.T) {
	s := play(testState(2, "BBOR", "GGGG", "OPRB", "RRRR", "PPPB"), firstRound[:3]...)
	enc := s.Serialize()
	assert.Equal(t, []int{2, 2, 1, 0, 1, 0}, enc[:6])
	// Center after two factory drafts and one center draft: one red.
	center := headerLen - NumColors
	assert.Equal(t, []int{0, 0, 0, 1, 0}, enc[center:center+NumColors])
	board0 := headerLen + 5*NumColors
	// Green fills the fourth line, orange the first; the rest are empty.
	assert.Equal(t, []int{1, -1, -1, 2, -1}, enc[board0+5:board0+10])
	assert.Equal(t, []int{1, 0, 0, 4, 0}, enc[board0+10:board0+15])
	assert.Equal(t, 1, enc[board0+20], "token")
}

func TestDeserializeRejects(t *testing.T) {
	good, err := New(Config{Players: 2, Seed: 7})
	require.NoError(t, err)
	board0 := headerLen + 5*NumColors

	cases := []struct {
		name   string
		mutate func(enc []int) []int
	}{
		{"empty", func([]int) []int { return nil }},
		{"old version", func(enc []int) []int { enc[0] = 1; return enc }},
		{"version", func(enc []int) []int { enc[0] = 99; return enc }},
		{"players", func(enc []int) []int { enc[1] = 5; return enc }},
		{"short", func(enc []int) []int { return enc[:len(enc)-1] }},
		{"long", func(enc []int) []int { return append(enc, 0) }},
		{"to move", func(enc []int) []int { enc[2] = 2; return enc }},
		{"round", func(enc []int) []int { enc[4] = 0; return enc }},
		{"rng word", func(enc []int) []int { enc[6] = -1; return enc }},
		{"wide rng word", func(enc []int) []int { enc[6+rngWords-1] = 1 << 16; return enc }},
		{"colored empty line", func(enc []int) []int { enc[board0+5] = int(Green); return enc }},
		{"uncolored tiles", func(enc []int) []int { enc[board0+10] = 1; return enc }},
		{"overfull line", func(enc []int) []int { enc[board0+5] = 0; enc[board0+10] = 2; return enc }},
		{"wall bits", func(enc []int) []int { enc[board0] = 32; return enc }},
		{"extra tile", func(enc []int) []int { enc[headerLen-2*NumColors]++; return enc }},
		{"two tokens", func(enc []int) []int { enc[board0+20] = 1; return enc }},
		{"no token", func(enc []int) []int { enc[5] = 0; return enc }},
		{"negative score", func(enc []int) []int { enc[board0+21] = -3; return enc }},
	}
	for _, tc := range cases {
		enc := tc.mutate(good.Serialize())
		_, err := Deserialize(enc)
		if !errors.Is(err, ErrMalformedState) {
			t.Errorf("%s: err=%v", tc.name, err)
		}
		var me *MalformedStateError
		if errors.As(err, &me) && me.Reason == "" {
			t.Errorf("%s: empty reason", tc.name)
		}
	}
}

func TestUnmarshalBinaryRejects(t *testing.T) {
	s, _ := New(Config{Players: 3, Seed: 3})
	bin, err := s.MarshalBinary()
	require.NoError(t, err)

	var out State
	assert.True(t, errors.Is(out.UnmarshalBinary(nil), ErrMalformedState))
	assert.True(t, errors.Is(out.UnmarshalBinary(bin[:len(bin)-1]), ErrMalformedState))
	assert.True(t, errors.Is(out.UnmarshalBinary(append(bin, 0)), ErrMalformedState))
	assert.True(t, errors.Is(out.UnmarshalBinary([]byte{0xff, 0xff, 0xff, 0x7f}), ErrMalformedState))
	assert.Equal(t, State{}, out)
}

func TestCompareAndHash(t *testing.T) {
	a := testState(2, "BBOR", "GGGG", "OPRB", "RRRR", "PPPB")
	b := play(a, "1B1")
	c := play(a, "1B1")

	assert.Zero(t, Compare(a, a))
	assert.Zero(t, Compare(b, c))
	assert.Equal(t, -Compare(a, b), Compare(b, a))
	assert.NotZero(t, Compare(a, b))
	assert.Equal(t, b.Hash(), c.Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())

	seen := map[State]int{a: 1, b: 2}
	assert.Equal(t, 2, seen[c])
}

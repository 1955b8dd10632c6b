package blau

import "fmt"

// testState builds a first-round position with player 0 to move and
// the given factory contents, e.g. "BBOR". Dealt tiles come out of the
// bag so tile counts stay consistent.
func testState(players int, factories ...string) State {
	s := State{
		players:       int8(players),
		round:         1,
		tokenInCenter: true,
		rng:           seedRNG(1),
	}
	for c := range s.bag {
		s.bag[c] = TilesPerColor
	}
	for i, f := range factories {
		for j := 0; j < len(f); j++ {
			c, ok := ColorFromLetter(f[j])
			if !ok {
				panic(fmt.Sprintf("bad tile %q", f[j]))
			}
			s.bag[c]--
			s.factories[i][c]++
		}
	}
	return s
}

func parseTestMove(str string) Move {
	if len(str) != 3 {
		panic(fmt.Sprintf("bad move %q", str))
	}
	src := 0
	if str[0] != 'c' {
		src = int(str[0] - '0')
	}
	c, ok := ColorFromLetter(str[1])
	if !ok {
		panic(fmt.Sprintf("bad move %q", str))
	}
	line := FloorLine
	if str[2] != 'f' {
		line = int(str[2] - '1')
	}
	return MustMove(src, int(c), line)
}

func play(s State, moves ...string) State {
	for _, str := range moves {
		var err error
		s, err = s.Move(parseTestMove(str))
		if err != nil {
			panic(fmt.Sprintf("%s: %v", str, err))
		}
	}
	return s
}

func formatMoves(ms []Move) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}

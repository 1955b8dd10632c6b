package blau

// AllMoves appends every legal move for the player to move to moves
// and returns the result. Moves come out sorted by Move.Compare and
// without duplicates. The result is empty exactly when the game is
// over.
func (s State) AllMoves(moves []Move) []Move {
	b := &s.boards[s.toMove]
	var accepts [NumColors][Lines + 1]bool
	for c := Color(0); c < NumColors; c++ {
		for line := 0; line <= FloorLine; line++ {
			accepts[c][line] = b.rejects(line, c) == ""
		}
	}
	for src := 0; src <= s.NumFactories(); src++ {
		tiles := s.source(src)
		for c := Color(0); c < NumColors; c++ {
			if tiles[c] == 0 {
				continue
			}
			for line := 0; line <= FloorLine; line++ {
				if accepts[c][line] {
					moves = append(moves, Move{source: int8(src), color: c, line: int8(line)})
				}
			}
		}
	}
	return moves
}

// check returns why m is illegal in s, or "" if it is legal. It
// accepts exactly the moves AllMoves generates.
func (s *State) check(m Move) string {
	if s.sourcesEmpty() {
		return "the game is over"
	}
	if !m.color.Valid() || m.line < 0 || m.line > FloorLine {
		return "move out of bounds"
	}
	src := int(m.source)
	if src < 0 || src > s.NumFactories() {
		return "no such factory in a " + playerWord(int(s.players)) + " game"
	}
	if s.source(src)[m.color] == 0 {
		if m.FromCenter() {
			return "no " + m.color.String() + " tiles in the center"
		}
		return "no " + m.color.String() + " tiles in that factory"
	}
	return s.boards[s.toMove].rejects(int(m.line), m.color)
}

func playerWord(n int) string {
	switch n {
	case 2:
		return "two player"
	case 3:
		return "three player"
	case 4:
		return "four player"
	}
	return "malformed"
}

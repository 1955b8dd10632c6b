package blau

// Preview returns the mover's board as it stands right after m is
// drafted, before any round-end scoring.
func (s State) Preview(m Move) (Board, error) {
	if reason := s.check(m); reason != "" {
		return Board{}, &InvalidMoveError{State: s, Move: m, Reason: reason}
	}
	b := s.boards[s.toMove]
	if m.FromCenter() && s.tokenInCenter {
		b.token = true
	}
	b.place(int(m.line), m.color, int(s.source(int(m.source))[m.color]))
	return b, nil
}

// Taken returns how many tiles m would take from its source.
func (s State) Taken(m Move) int {
	if int(m.source) > s.NumFactories() || !m.color.Valid() {
		return 0
	}
	return int(s.source(int(m.source))[m.color])
}

// ProjectedScore is the score b would have if the round were scored
// now and the end-of-game bonuses awarded.
func (b Board) ProjectedScore() int {
	var lid [NumColors]uint8
	b.scoreRound(&lid)
	b.scoreBonuses()
	return b.Score()
}

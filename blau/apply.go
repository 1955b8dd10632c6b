package blau

// Move returns the position after the player to move plays m. An
// illegal move returns an *InvalidMoveError and no new position; s is
// never modified.
//
// When m takes the last tile of the round, the round is scored and
// either the game ends or the factories are refilled for the next
// round, so every position Move returns is either terminal or awaiting
// a draft.
func (s State) Move(m Move) (State, error) {
	if reason := s.check(m); reason != "" {
		return State{}, &InvalidMoveError{State: s, Move: m, Reason: reason}
	}
	next := s
	b := &next.boards[next.toMove]
	src := next.source(int(m.source))
	n := int(src[m.color])
	if m.FromCenter() {
		if next.tokenInCenter {
			next.tokenInCenter = false
			b.token = true
			next.start = next.toMove
		}
	} else {
		for c, k := range src {
			if Color(c) != m.color {
				next.center[c] += k
			}
		}
	}
	if m.FromCenter() {
		src[m.color] = 0
	} else {
		*src = [NumColors]uint8{}
	}
	b.place(int(m.line), m.color, n)

	if next.sourcesEmpty() {
		next.endRound()
	} else {
		next.toMove = (next.toMove + 1) % next.players
	}
	return next, nil
}

func (s *State) endRound() {
	for p := 0; p < int(s.players); p++ {
		s.boards[p].scoreRound(&s.lid)
	}
	s.tokenInCenter = true
	s.toMove = s.start
	for p := 0; p < int(s.players); p++ {
		if s.boards[p].CompleteRows() > 0 {
			s.finish()
			return
		}
	}
	s.round++
	if !s.deal() {
		s.finish()
	}
}

func (s *State) finish() {
	for p := 0; p < int(s.players); p++ {
		s.boards[p].scoreBonuses()
	}
}

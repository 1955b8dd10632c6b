package blau

import "fmt"

type OutcomeKind int8

const (
	Undecided OutcomeKind = iota
	Draw
	Win
)

func (o OutcomeKind) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case Draw:
		return "draw"
	case Win:
		return "win"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(o))
}

type Outcome struct {
	Kind OutcomeKind
	// Winner is the winning player index when Kind is Win.
	Winner int
}

func (o Outcome) String() string {
	if o.Kind == Win {
		return fmt.Sprintf("win %d", o.Winner)
	}
	return o.Kind.String()
}

// GameOver reports whether the game has ended. That is the case
// exactly when nothing is left to draft, i.e. when AllMoves is empty.
func (s State) GameOver() bool {
	return s.sourcesEmpty()
}

// Outcome evaluates a position. The highest score wins; equal scores
// are split by the number of complete wall rows, and anything still
// level is a draw.
func (s State) Outcome() Outcome {
	if !s.GameOver() {
		return Outcome{Kind: Undecided}
	}
	best, tied := -1, false
	for p := 0; p < int(s.players); p++ {
		if best < 0 {
			best = p
			continue
		}
		switch s.ranks(p, best) {
		case 1:
			best, tied = p, false
		case 0:
			tied = true
		}
	}
	if best < 0 || tied {
		return Outcome{Kind: Draw}
	}
	return Outcome{Kind: Win, Winner: best}
}

func (s *State) ranks(p, q int) int {
	a, b := &s.boards[p], &s.boards[q]
	if a.score != b.score {
		return cmpInt(int(a.score), int(b.score))
	}
	return cmpInt(a.CompleteRows(), b.CompleteRows())
}

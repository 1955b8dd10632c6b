package blau

// The functions below are the operations a driver or a language
// binding needs. Each is a pure function of its arguments, so a State
// may be shared freely between goroutines.

// Initial returns the canonical starting position for cfg.
func Initial(cfg Config) (State, error) {
	return New(cfg)
}

// LegalMoves returns the legal moves in s in deterministic order.
func LegalMoves(s State) []Move {
	return s.AllMoves(nil)
}

// Apply plays m in s. It fails with an error matching ErrInvalidMove
// if m is not in LegalMoves(s).
func Apply(s State, m Move) (State, error) {
	return s.Move(m)
}

// Evaluate returns the outcome of s, Undecided while play continues.
func Evaluate(s State) Outcome {
	return s.Outcome()
}

func Serialize(s State) []int {
	return s.Serialize()
}

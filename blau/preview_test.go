package blau

import "testing"

func TestPreview(t *testing.T) {
	s := testState(2, "BBOR")
	s = play(s, "1B1")

	b, err := s.Preview(parseTestMove("cO3"))
	if err != nil {
		t.Fatal(err)
	}
	if !b.HasToken() {
		t.Error("first center draft did not take the token")
	}
	if c, n := b.Line(2); c != Orange || n != 1 {
		t.Errorf("line 3 = %s x%d", c, n)
	}
	// The line is not full and the token costs a point.
	if got := b.ProjectedScore(); got != 0 {
		t.Errorf("ProjectedScore=%d", got)
	}
	if s.Board(1).HasToken() || !s.TokenInCenter() {
		t.Error("Preview modified the state")
	}
	if n := s.Taken(parseTestMove("cO3")); n != 1 {
		t.Errorf("Taken=%d", n)
	}

	if _, err := s.Preview(parseTestMove("cB1")); err == nil {
		t.Error("previewed an illegal move")
	}
}

func TestProjectedScore(t *testing.T) {
	var b Board
	b.place(0, Blue, 1)
	b.place(1, Red, 2)
	b.place(3, Green, 2)
	// Blue at (0,0) and red at (1,4) score 1 each; the green line is
	// not full.
	if got := b.ProjectedScore(); got != 2 {
		t.Errorf("ProjectedScore=%d", got)
	}
	if c, n := b.Line(0); c != Blue || n != 1 {
		t.Error("ProjectedScore modified the board")
	}
}

package blau

import "testing"

func TestOutcome(t *testing.T) {
	full := uint8(1<<WallSize - 1)
	cases := []struct {
		name   string
		setup  func(s *State)
		expect Outcome
	}{
		{"higher score", func(s *State) {
			s.boards[0].score = 10
			s.boards[1].score = 12
		}, Outcome{Kind: Win, Winner: 1}},
		{"rows break ties", func(s *State) {
			s.boards[0].score = 12
			s.boards[1].score = 12
			s.boards[0].wall[3] = full
		}, Outcome{Kind: Win, Winner: 0}},
		{"level", func(s *State) {
			s.boards[0].score = 7
			s.boards[1].score = 7
		}, Outcome{Kind: Draw}},
		{"tie below the leader", func(s *State) {
			s.boards[0].score = 4
			s.boards[1].score = 4
			s.boards[2].score = 9
		}, Outcome{Kind: Win, Winner: 2}},
		{"tie at the top", func(s *State) {
			s.boards[0].score = 9
			s.boards[1].score = 4
			s.boards[2].score = 9
		}, Outcome{Kind: Draw}},
	}
	for _, tc := range cases {
		s := testState(3)
		tc.setup(&s)
		if got := s.Outcome(); got != tc.expect {
			t.Errorf("%s: Outcome()=%v want %v", tc.name, got, tc.expect)
		}
	}
}

func TestOutcomeUndecided(t *testing.T) {
	s := testState(2, "BBOR")
	s.boards[1].score = 50
	if o := s.Outcome(); o.Kind != Undecided {
		t.Errorf("Outcome()=%v", o)
	}
	if s.GameOver() {
		t.Error("GameOver with tiles left")
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		{Kind: Undecided}:      "undecided",
		{Kind: Draw}:           "draw",
		{Kind: Win, Winner: 3}: "win 3",
		{Kind: OutcomeKind(9)}: "OutcomeKind(9)",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Errorf("%#v.String()=%q want %q", o, got, want)
		}
	}
}

func TestStarterKeepsTokenWhenCenterUntouched(t *testing.T) {
	s := testState(2, "BBBB", "GGGG")
	s.start, s.toMove = 1, 1
	s = play(s, "1B4", "2G4")
	if s.Round() != 2 || s.ToMove() != 1 || s.StartPlayer() != 1 {
		t.Fatalf("round=%d toMove=%d start=%d", s.Round(), s.ToMove(), s.StartPlayer())
	}
	if !s.TokenInCenter() {
		t.Fatal("token left the center")
	}
}

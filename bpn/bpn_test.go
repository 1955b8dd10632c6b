package bpn

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nelhage/blau/blau"
)

const testGame = `
[Players "2"]
[Seed "17"]
[Player1 "greedy"]
[Player2 "random"]

1. 1B1 cO2 {leaves the token}
2. 3Rf
W2
`

func TestParseBPN(t *testing.T) {
	bpn, err := ParseBPN(bytes.NewBufferString(testGame))
	if err != nil {
		t.Fatal("parse:", err)
	}
	if !reflect.DeepEqual(bpn.Tags, []Tag{
		{"Players", "2"},
		{"Seed", "17"},
		{"Player1", "greedy"},
		{"Player2", "random"},
	}) {
		t.Fatal("tags", bpn.Tags)
	}

	ops := []Op{
		&RoundNumber{opCommon{"1."}, 1},
		&Move{opCommon{"1B1"}, blau.MustMove(1, int(blau.Blue), 0)},
		&Move{opCommon{"cO2"}, blau.MustMove(0, int(blau.Orange), 1)},
		&Comment{opCommon{"{leaves the token}"}, "leaves the token"},
		&RoundNumber{opCommon{"2."}, 2},
		&Move{opCommon{"3Rf"}, blau.MustMove(3, int(blau.Red), blau.FloorLine)},
		&Result{opCommon{"W2"}, blau.Outcome{Kind: blau.Win, Winner: 1}},
	}
	if !reflect.DeepEqual(bpn.Ops, ops) {
		t.Fatalf("ops=%v", bpn.Ops)
	}

	cfg, err := bpn.Config()
	if err != nil || cfg != (blau.Config{Players: 2, Seed: 17}) {
		t.Fatalf("config=%+v err=%v", cfg, err)
	}
	if r, ok := bpn.Result(); !ok || r.Winner != 1 {
		t.Fatalf("result=%v ok=%v", r, ok)
	}
	if len(bpn.Moves()) != 3 {
		t.Fatalf("moves=%v", bpn.Moves())
	}
}

func TestParseBPNErrors(t *testing.T) {
	for _, in := range []string{
		"[Players]\n",
		"[Players \"2\"]\n1. 1X1\n",
		"[Players \"2\"]\nx. 1B1\n",
		"[Players \"2\"]\n\n1. 1B1 {",
		"1. 1B1 {half a comment",
	} {
		if _, err := ParseBPN(strings.NewReader(in)); err == nil {
			t.Errorf("ParseBPN(%q) succeeded", in)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	for _, in := range []string{
		"[Players \"2\"]\n\n1. 1B1 {",
		"1. 1B1 {half a comment",
	} {
		_, err := ParseBPN(strings.NewReader(in))
		if !errors.Is(err, errUnterminatedComment) {
			t.Errorf("ParseBPN(%q): err=%v", in, err)
		}
	}

	p, err := ParseBPN(strings.NewReader("1. 1B1 {a whole comment}\n"))
	if err != nil {
		t.Fatal(err)
	}
	c, ok := p.Ops[len(p.Ops)-1].(*Comment)
	if !ok || c.Comment != "a whole comment" {
		t.Errorf("last op = %#v", p.Ops[len(p.Ops)-1])
	}
}

func playGame(t *testing.T, cfg blau.Config, limit int) []blau.Move {
	t.Helper()
	s, err := blau.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var moves []blau.Move
	for i := 0; i < limit; i++ {
		legal := blau.LegalMoves(s)
		if len(legal) == 0 {
			break
		}
		m := legal[i%len(legal)]
		if s, err = s.Move(m); err != nil {
			t.Fatal(err)
		}
		moves = append(moves, m)
	}
	return moves
}

func TestRecordRoundTrip(t *testing.T) {
	cfg := blau.Config{Players: 3, Seed: 5}
	moves := playGame(t, cfg, 40)

	rec, err := NewRecord(cfg, moves, Tag{Name: "Event", Value: "test"})
	if err != nil {
		t.Fatal("record:", err)
	}
	if rec.FindTag("Players") != "3" || rec.FindTag("Seed") != "5" || rec.FindTag("Event") != "test" {
		t.Fatalf("tags=%v", rec.Tags)
	}
	if _, ok := rec.Ops[0].(*RoundNumber); !ok {
		t.Fatalf("first op=%#v", rec.Ops[0])
	}

	text := rec.Render()
	back, err := ParseBPN(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parse rendered record: %v\n%s", err, text)
	}
	if !reflect.DeepEqual(back.Moves(), moves) {
		t.Fatalf("moves changed:\n%s", text)
	}

	it := back.Iterator()
	n := 0
	for it.Next() {
		if it.Move() != moves[n] {
			t.Fatalf("move %d = %s want %s", n, it.Move(), moves[n])
		}
		n++
	}
	if it.Err() != nil {
		t.Fatal("iterate:", it.Err())
	}
	if n != len(moves) {
		t.Fatalf("iterated %d moves of %d", n, len(moves))
	}
	want, _ := back.Result()
	if got := it.State().Outcome(); got != want {
		t.Fatalf("final outcome %v, recorded %v", got, want)
	}
}

func TestRecordRejectsIllegalMoves(t *testing.T) {
	cfg := blau.Config{Players: 2, Seed: 1}
	bad := blau.MustMove(9, 0, 0)
	if _, err := NewRecord(cfg, []blau.Move{bad}); err == nil {
		t.Fatal("recorded an illegal move")
	}

	rec := &BPN{
		Tags: []Tag{{"Players", "2"}, {"Seed", "1"}},
		Ops:  []Op{&Move{Move: bad}},
	}
	it := rec.Iterator()
	if !it.Next() {
		t.Fatal("no first move")
	}
	if it.Next() {
		t.Fatal("applied an illegal move")
	}
	if it.Err() == nil {
		t.Fatal("no error")
	}
}

func TestStateTag(t *testing.T) {
	s, _ := blau.New(blau.Config{Players: 4, Seed: 9})
	m := blau.LegalMoves(s)[0]
	s, _ = s.Move(m)

	rec := &BPN{Tags: []Tag{{"Players", "4"}, {"State", FormatState(s)}}}
	got, err := rec.InitialState()
	if err != nil || got != s {
		t.Fatalf("InitialState err=%v equal=%v", err, got == s)
	}

	rec.Tags[0].Value = "2"
	if _, err := rec.InitialState(); err == nil {
		t.Fatal("accepted mismatched player count")
	}
}

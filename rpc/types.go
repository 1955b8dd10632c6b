package rpc

import "github.com/nelhage/blau/blau"

type Move struct {
	Source int `json:"source"`
	Color  int `json:"color"`
	Line   int `json:"line"`
	// Notation is informational; requests are decoded from the
	// integer fields.
	Notation string `json:"notation,omitempty"`
}

func FromMove(m blau.Move) Move {
	s, c, l := m.Components()
	return Move{Source: s, Color: c, Line: l, Notation: m.String()}
}

func (m Move) ToMove() (blau.Move, error) {
	return blau.NewMove(m.Source, m.Color, m.Line)
}

type NewGameRequest struct {
	Players int    `json:"players"`
	Seed    uint64 `json:"seed"`
}

type GameRequest struct {
	GameID int64 `json:"game_id"`
}

type ApplyRequest struct {
	GameID int64 `json:"game_id"`
	Move   Move  `json:"move"`
}

type StateResponse struct {
	GameID int64 `json:"game_id"`
	// State is the position in its serialized form.
	State []int `json:"state"`
	View  View  `json:"view"`
}

type LegalMovesResponse struct {
	Moves []Move `json:"moves"`
}

type OutcomeResponse struct {
	Outcome string `json:"outcome"`
	Winner  int    `json:"winner"`
	Scores  []int  `json:"scores"`
}

type EndGameResponse struct{}

// View is a structured rendering of a State for display.
type View struct {
	Round         int     `json:"round"`
	ToMove        int     `json:"to_move"`
	TokenInCenter bool    `json:"token_in_center"`
	Factories     [][]int `json:"factories"`
	Center        []int   `json:"center"`
	Bag           []int   `json:"bag"`
	Lid           []int   `json:"lid"`
	Boards        []Board `json:"boards"`
	Over          bool    `json:"over"`
}

type Board struct {
	Score int `json:"score"`
	// Wall holds the color tiled on each square, or -1.
	Wall  [][]int `json:"wall"`
	Lines []Line  `json:"lines"`
	Floor []int   `json:"floor"`
	Token bool    `json:"token"`
}

type Line struct {
	Color int `json:"color"`
	Count int `json:"count"`
}

func counts(a [blau.NumColors]int) []int {
	return append([]int(nil), a[:]...)
}

func NewView(s blau.State) View {
	v := View{
		Round:         s.Round(),
		ToMove:        s.ToMove(),
		TokenInCenter: s.TokenInCenter(),
		Center:        counts(s.Center()),
		Bag:           counts(s.Bag()),
		Lid:           counts(s.Lid()),
		Over:          s.GameOver(),
	}
	for f := 1; f <= s.NumFactories(); f++ {
		v.Factories = append(v.Factories, counts(s.Factory(f)))
	}
	for p := 0; p < s.Players(); p++ {
		b := s.Board(p)
		vb := Board{
			Score: b.Score(),
			Floor: counts(b.Floor()),
			Token: b.HasToken(),
		}
		for r := 0; r < blau.Lines; r++ {
			row := make([]int, blau.WallSize)
			for col := range row {
				row[col] = -1
				if b.Wall(r, col) {
					row[col] = int(blau.WallColor(r, col))
				}
			}
			vb.Wall = append(vb.Wall, row)
			c, n := b.Line(r)
			vb.Lines = append(vb.Lines, Line{Color: int(c), Count: n})
		}
		v.Boards = append(v.Boards, vb)
	}
	return v
}

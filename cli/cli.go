package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nelhage/blau/ai"
	"github.com/nelhage/blau/blau"
	"github.com/nelhage/blau/bpn"
)

type Glyphs struct {
	Tiles [blau.NumColors]string
	// Empty marks an untiled square or an empty pattern line slot.
	Empty string
	Token string
}

type CLI struct {
	moves []blau.Move
	s     blau.State

	Config  blau.Config
	Glyphs  *Glyphs
	Out     io.Writer
	Players []ai.Player
}

var DefaultGlyphs = Glyphs{
	Tiles: [blau.NumColors]string{"B", "O", "G", "R", "P"},
	Empty: ".",
	Token: "1",
}

var UnicodeGlyphs = Glyphs{
	Tiles: [blau.NumColors]string{"◆", "●", "▲", "■", "★"},
	Empty: "·",
	Token: "①",
}

func (c *CLI) Play(ctx context.Context) (blau.State, error) {
	c.moves = nil
	var err error
	c.s, err = blau.New(c.Config)
	if err != nil {
		return c.s, err
	}
	if len(c.Players) != c.s.Players() {
		return c.s, fmt.Errorf("%d players for a %d player game", len(c.Players), c.s.Players())
	}
	for {
		c.render()
		if c.s.GameOver() {
			fmt.Fprintf(c.Out, "Game Over! ")
			o := c.s.Outcome()
			if o.Kind == blau.Draw {
				fmt.Fprintf(c.Out, "Draw.")
			} else {
				fmt.Fprintf(c.Out, "Player %d wins.", o.Winner+1)
			}
			fmt.Fprintf(c.Out, "\nscores: %v\n", c.s.Scores())
			return c.s, nil
		}
		if err := ctx.Err(); err != nil {
			return c.s, err
		}
		m := c.Players[c.s.ToMove()].GetMove(ctx, c.s)
		next, e := c.s.Move(m)
		if e != nil {
			fmt.Fprintln(c.Out, "illegal move:", e)
			continue
		}
		fmt.Fprintf(c.Out, "%d. player %d: %s\n", c.s.Round(), c.s.ToMove()+1, bpn.FormatMove(m))
		c.s = next
		c.moves = append(c.moves, m)
	}
}

func (c *CLI) Moves() []blau.Move {
	return c.moves
}

func (c *CLI) render() {
	RenderState(c.Glyphs, c.Out, c.s)
}

func tiles(g *Glyphs, counts [blau.NumColors]int) string {
	var b strings.Builder
	for c, n := range counts {
		for i := 0; i < n; i++ {
			b.WriteString(g.Tiles[c])
		}
	}
	return b.String()
}

func RenderState(g *Glyphs, out io.Writer, s blau.State) {
	if g == nil {
		g = &DefaultGlyphs
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[round %d, player %d to play]\n", s.Round(), s.ToMove()+1)

	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	for f := 1; f <= s.NumFactories(); f++ {
		fmt.Fprintf(w, "%d.\t[%s]\n", f, tiles(g, s.Factory(f)))
	}
	center := tiles(g, s.Center())
	if s.TokenInCenter() {
		center = g.Token + center
	}
	fmt.Fprintf(w, "c.\t[%s]\n", center)
	w.Flush()

	for p := 0; p < s.Players(); p++ {
		renderBoard(g, out, p, s.Board(p))
	}
	fmt.Fprintf(out, "bag: [%s] lid: [%s]\n", tiles(g, s.Bag()), tiles(g, s.Lid()))
}

func renderBoard(g *Glyphs, out io.Writer, p int, b blau.Board) {
	fmt.Fprintf(out, "player %d: score=%d\n", p+1, b.Score())
	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', tabwriter.AlignRight)
	for r := 0; r < blau.Lines; r++ {
		c, n := b.Line(r)
		var line strings.Builder
		for i := 0; i <= r; i++ {
			if i < r+1-n {
				line.WriteString(g.Empty)
			} else {
				line.WriteString(g.Tiles[c])
			}
		}
		var wall strings.Builder
		for col := 0; col < blau.WallSize; col++ {
			if b.Wall(r, col) {
				wall.WriteString(g.Tiles[blau.WallColor(r, col)])
			} else {
				wall.WriteString(g.Empty)
			}
		}
		fmt.Fprintf(w, "%d.\t%s\t|%s\t\n", r+1, line.String(), wall.String())
	}
	w.Flush()
	floor := tiles(g, b.Floor())
	if b.HasToken() {
		floor = g.Token + floor
	}
	fmt.Fprintf(out, "floor: [%s]\n", floor)
}

package blau

import "fmt"

// Board is one player's area: the wall, the five pattern lines, the
// floor line and the running score.
type Board struct {
	// wall[r] has bit col set when that wall square is tiled.
	wall [Lines]uint8
	// lineColor is meaningless (and kept at zero) when lineCount is 0.
	lineColor [Lines]Color
	lineCount [Lines]uint8
	floor     [NumColors]uint8
	token     bool
	score     int16
}

// Wall reports whether the wall square (row, col) is tiled. Squares
// off the wall never are.
func (b Board) Wall(row, col int) bool {
	if row < 0 || row >= Lines || col < 0 || col >= WallSize {
		return false
	}
	return b.wall[row]&(1<<uint(col)) != 0
}

// HasColor reports whether color c is already tiled on the given wall
// row.
func (b Board) HasColor(row int, c Color) bool {
	if row < 0 || row >= Lines || !c.Valid() {
		return false
	}
	return b.Wall(row, WallColumn(row, c))
}

// Line returns the color and number of tiles on pattern line row.
// An empty line reports NoColor.
func (b Board) Line(row int) (Color, int) {
	if row < 0 || row >= Lines || b.lineCount[row] == 0 {
		return NoColor, 0
	}
	return b.lineColor[row], int(b.lineCount[row])
}

func (b Board) Floor() [NumColors]int {
	var out [NumColors]int
	for c, n := range b.floor {
		out[c] = int(n)
	}
	return out
}

// FloorItems counts the tiles on the floor plus the first player
// token, if held.
func (b Board) FloorItems() int {
	n := 0
	for _, f := range b.floor {
		n += int(f)
	}
	if b.token {
		n++
	}
	return n
}

func (b Board) HasToken() bool {
	return b.token
}

func (b Board) Score() int {
	return int(b.score)
}

func (b Board) CompleteRows() int {
	n := 0
	for _, row := range b.wall {
		if row == 1<<WallSize-1 {
			n++
		}
	}
	return n
}

func (b Board) CompleteColumns() int {
	n := 0
	for col := 0; col < WallSize; col++ {
		full := true
		for r := 0; r < Lines && full; r++ {
			full = b.Wall(r, col)
		}
		if full {
			n++
		}
	}
	return n
}

func (b Board) CompleteColors() int {
	n := 0
	for c := Color(0); c < NumColors; c++ {
		full := true
		for r := 0; r < Lines && full; r++ {
			full = b.HasColor(r, c)
		}
		if full {
			n++
		}
	}
	return n
}

// rejects returns why tiles of color c cannot go to line, or "" if
// they can. The floor accepts anything.
func (b *Board) rejects(line int, c Color) string {
	if line == FloorLine {
		return ""
	}
	n := b.lineCount[line]
	switch {
	case int(n) > line:
		return fmt.Sprintf("pattern line %d is full", line+1)
	case n > 0 && b.lineColor[line] != c:
		return fmt.Sprintf("pattern line %d already holds %s", line+1, b.lineColor[line])
	case b.HasColor(line, c):
		return fmt.Sprintf("%s is already on wall row %d", c, line+1)
	}
	return ""
}

func (b *Board) place(line int, c Color, n int) {
	if line != FloorLine {
		room := line + 1 - int(b.lineCount[line])
		fit := n
		if fit > room {
			fit = room
		}
		b.lineColor[line] = c
		b.lineCount[line] += uint8(fit)
		n -= fit
	}
	b.floor[c] += uint8(n)
}

func (b *Board) scoreTile(row, col int) int {
	h := 1
	for c := col - 1; c >= 0 && b.Wall(row, c); c-- {
		h++
	}
	for c := col + 1; c < WallSize && b.Wall(row, c); c++ {
		h++
	}
	v := 1
	for r := row - 1; r >= 0 && b.Wall(r, col); r-- {
		v++
	}
	for r := row + 1; r < Lines && b.Wall(r, col); r++ {
		v++
	}
	if h == 1 || v == 1 {
		return h + v - 1
	}
	return h + v
}

// scoreRound tiles every full pattern line, applies the floor penalty
// and returns all discarded tiles to lid.
func (b *Board) scoreRound(lid *[NumColors]uint8) {
	delta := 0
	for r := 0; r < Lines; r++ {
		if int(b.lineCount[r]) <= r {
			continue
		}
		c := b.lineColor[r]
		col := WallColumn(r, c)
		b.wall[r] |= 1 << uint(col)
		delta += b.scoreTile(r, col)
		lid[c] += b.lineCount[r] - 1
		b.lineCount[r] = 0
		b.lineColor[r] = 0
	}
	delta += FloorPenalty(b.FloorItems())
	for c, n := range b.floor {
		lid[c] += n
	}
	b.floor = [NumColors]uint8{}
	b.token = false

	score := int(b.score) + delta
	if score < 0 {
		score = 0
	}
	b.score = int16(score)
}

func (b *Board) scoreBonuses() {
	b.score += int16(rowBonus*b.CompleteRows() +
		columnBonus*b.CompleteColumns() +
		colorBonus*b.CompleteColors())
}

// tiles counts the tiles of color c anywhere on the board.
func (b *Board) tiles(c Color) int {
	n := int(b.floor[c])
	for r := 0; r < Lines; r++ {
		if b.lineCount[r] > 0 && b.lineColor[r] == c {
			n += int(b.lineCount[r])
		}
		if b.HasColor(r, c) {
			n++
		}
	}
	return n
}

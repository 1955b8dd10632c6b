package blau

import "sync"

const (
	MinPlayers = 2
	MaxPlayers = 4

	// MaxFactories is the factory count of a four player game.
	MaxFactories = 2*MaxPlayers + 1

	WallSize = 5
	Lines    = WallSize

	// FloorLine is the Move.Line value that sends tiles straight to
	// the floor.
	FloorLine = Lines

	FactoryTiles  = 4
	TilesPerColor = 20

	rowBonus    = 2
	columnBonus = 7
	colorBonus  = 10
)

var floorPenalties = [...]int{-1, -1, -2, -2, -2, -3, -3}

type wallTables struct {
	column [Lines][NumColors]uint8
	color  [Lines][WallSize]Color
	// penalty[n] is the total penalty for n floor items, saturating
	// once every floor slot is filled.
	penalty [len(floorPenalties) + 1]int
}

var (
	tablesOnce sync.Once
	tables     *wallTables
)

func getTables() *wallTables {
	tablesOnce.Do(func() {
		t := &wallTables{}
		for r := 0; r < Lines; r++ {
			for c := 0; c < NumColors; c++ {
				col := (c + r) % WallSize
				t.column[r][c] = uint8(col)
				t.color[r][col] = Color(c)
			}
		}
		for i, p := range floorPenalties {
			t.penalty[i+1] = t.penalty[i] + p
		}
		tables = t
	})
	return tables
}

// WallColumn returns the wall column that color c occupies on row, or
// -1 if row or c is out of range.
func WallColumn(row int, c Color) int {
	if row < 0 || row >= Lines || !c.Valid() {
		return -1
	}
	return int(getTables().column[row][c])
}

// WallColor returns the color that belongs at (row, col) on the wall,
// or NoColor off the wall.
func WallColor(row, col int) Color {
	if row < 0 || row >= Lines || col < 0 || col >= WallSize {
		return NoColor
	}
	return getTables().color[row][col]
}

// FloorPenalty returns the (non-positive) score adjustment for a
// floor line holding items tiles and tokens.
func FloorPenalty(items int) int {
	t := getTables()
	if items < 0 {
		items = 0
	}
	if items >= len(t.penalty) {
		items = len(t.penalty) - 1
	}
	return t.penalty[items]
}

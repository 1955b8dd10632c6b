package blau

import "fmt"

type Color int8

const (
	Blue Color = iota
	Orange
	Green
	Red
	Purple

	NumColors = 5

	// NoColor is reported for an empty pattern line.
	NoColor Color = -1
)

const colorLetters = "BOGRP"

var colorNames = [NumColors]string{"blue", "orange", "green", "red", "purple"}

func (c Color) Valid() bool {
	return c >= 0 && c < NumColors
}

func (c Color) Letter() byte {
	if !c.Valid() {
		return '-'
	}
	return colorLetters[c]
}

func (c Color) String() string {
	switch {
	case c.Valid():
		return colorNames[c]
	case c == NoColor:
		return "none"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// ColorFromLetter is the inverse of Color.Letter. It accepts either
// case.
func ColorFromLetter(b byte) (Color, bool) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	for i := 0; i < NumColors; i++ {
		if colorLetters[i] == b {
			return Color(i), true
		}
	}
	return NoColor, false
}

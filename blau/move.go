package blau

// Move takes every tile of one color from a source and sends them to
// a pattern line or the floor. Source 0 is the center; factories are
// numbered from 1.
type Move struct {
	source int8
	color  Color
	line   int8
}

// NewMove builds a Move from its raw components, rejecting values that
// fall outside the game's coordinate space. Whether the move is legal
// in a given State is only decided by that State.
func NewMove(source, color, line int) (Move, error) {
	if source < 0 || source > MaxFactories ||
		color < 0 || color >= NumColors ||
		line < 0 || line > FloorLine {
		return Move{}, &StructuralBoundsError{Source: source, Color: color, Line: line}
	}
	return Move{source: int8(source), color: Color(color), line: int8(line)}, nil
}

// MustMove is NewMove for constant arguments.
func MustMove(source, color, line int) Move {
	m, err := NewMove(source, color, line)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Move) Source() int  { return int(m.source) }
func (m Move) Color() Color { return m.color }
func (m Move) Line() int    { return int(m.line) }

func (m Move) FromCenter() bool { return m.source == 0 }
func (m Move) ToFloor() bool    { return m.line == FloorLine }

// Components returns the three integers NewMove accepts.
func (m Move) Components() (source, color, line int) {
	return int(m.source), int(m.color), int(m.line)
}

// Compare orders moves by source, then color, then line. AllMoves
// emits moves in this order.
func (m Move) Compare(o Move) int {
	switch {
	case m.source != o.source:
		return cmpInt(int(m.source), int(o.source))
	case m.color != o.color:
		return cmpInt(int(m.color), int(o.color))
	default:
		return cmpInt(int(m.line), int(o.line))
	}
}

func (m Move) Less(o Move) bool {
	return m.Compare(o) < 0
}

// String renders the move in bpn notation: the source ('c' or a
// factory number), the color letter and the destination line (1-5,
// or 'f' for the floor). For example "3B2" or "cRf".
func (m Move) String() string {
	var out [3]byte
	if m.FromCenter() {
		out[0] = 'c'
	} else {
		out[0] = byte('0' + m.source)
	}
	out[1] = m.color.Letter()
	if m.ToFloor() {
		out[2] = 'f'
	} else {
		out[2] = byte('1' + m.line)
	}
	return string(out[:])
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

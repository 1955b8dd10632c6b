package blau

import "github.com/golang/protobuf/proto"

// Serialize layout, version 2. Every element is a non-negative integer
// below 1<<16 except empty pattern line colors, which are -1, so the
// encoding fits a 32-bit int.
//
//	version players toMove start round tokenInCenter
//	rng (eight 16-bit words, most significant first)
//	bag[5] lid[5] center[5]
//	factories[2*players+1][5]
//	per player: wall[5] lineColor[5] lineCount[5] floor[5] token score
const (
	encodingVersion = 2

	rngWords  = 8
	headerLen = 6 + rngWords + 3*NumColors
	boardLen  = 4*Lines + 2

	maxEncodedLen = headerLen + MaxFactories*NumColors + MaxPlayers*boardLen
)

// EncodedLen returns the length of Serialize's output for a game with
// the given number of players.
func EncodedLen(players int) int {
	return headerLen + (2*players+1)*NumColors + players*boardLen
}

// Serialize flattens s into a sequence of integers suitable for
// crossing a language boundary. Deserialize inverts it.
func (s State) Serialize() []int {
	out := make([]int, 0, EncodedLen(int(s.players)))
	out = append(out,
		encodingVersion,
		int(s.players), int(s.toMove), int(s.start), int(s.round), boolInt(s.tokenInCenter),
	)
	for _, w := range s.rng {
		for shift := 48; shift >= 0; shift -= 16 {
			out = append(out, int(w>>uint(shift)&0xffff))
		}
	}
	out = appendCounts(out, s.bag)
	out = appendCounts(out, s.lid)
	out = appendCounts(out, s.center)
	for f := 0; f < s.NumFactories(); f++ {
		out = appendCounts(out, s.factories[f])
	}
	for p := 0; p < int(s.players); p++ {
		b := &s.boards[p]
		for _, row := range b.wall {
			out = append(out, int(row))
		}
		for r := 0; r < Lines; r++ {
			c, _ := b.Line(r)
			out = append(out, int(c))
		}
		for _, n := range b.lineCount {
			out = append(out, int(n))
		}
		out = appendCounts(out, b.floor)
		out = append(out, boolInt(b.token), int(b.score))
	}
	return out
}

// Deserialize rebuilds a State from Serialize's output. Anything that
// does not decode to a structurally valid position is rejected with a
// *MalformedStateError.
func Deserialize(in []int) (State, error) {
	var s State
	if len(in) < 2 {
		return s, malformed("%d elements, need at least 2", len(in))
	}
	if in[0] != encodingVersion {
		return s, malformed("unknown encoding version %d", in[0])
	}
	players := in[1]
	if players < MinPlayers || players > MaxPlayers {
		return s, malformed("bad player count %d", players)
	}
	if want := EncodedLen(players); len(in) != want {
		return s, malformed("%d elements, want %d for %d players", len(in), want, players)
	}
	r := reader{in: in[2:], pos: 2}
	s.players = int8(players)
	s.toMove = int8(r.next(0, players-1))
	s.start = int8(r.next(0, players-1))
	s.round = int16(r.next(1, 1<<14))
	s.tokenInCenter = r.next(0, 1) == 1
	for i := range s.rng {
		var w uint64
		for j := 0; j < rngWords/len(s.rng); j++ {
			w = w<<16 | uint64(r.next(0, 0xffff))
		}
		s.rng[i] = w
	}
	r.counts(&s.bag, TilesPerColor)
	r.counts(&s.lid, TilesPerColor)
	r.counts(&s.center, TilesPerColor)
	for f := 0; f < s.NumFactories(); f++ {
		r.counts(&s.factories[f], FactoryTiles)
	}
	for p := 0; p < players; p++ {
		b := &s.boards[p]
		for i := range b.wall {
			b.wall[i] = uint8(r.next(0, 1<<WallSize-1))
		}
		for i := range b.lineColor {
			b.lineColor[i] = Color(r.next(int(NoColor), NumColors-1))
		}
		for i := range b.lineCount {
			b.lineCount[i] = uint8(r.next(0, i+1))
			if b.lineCount[i] == 0 && b.lineColor[i] != NoColor {
				r.fail("pattern line %d is empty but colored %s", i+1, b.lineColor[i])
			}
			if b.lineCount[i] != 0 && b.lineColor[i] == NoColor {
				r.fail("pattern line %d holds %d uncolored tiles", i+1, b.lineCount[i])
			}
			if b.lineCount[i] == 0 {
				b.lineColor[i] = 0
			}
		}
		r.counts(&b.floor, TilesPerColor)
		b.token = r.next(0, 1) == 1
		b.score = int16(r.next(0, 1<<14))
	}
	if r.err != nil {
		return State{}, r.err
	}
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

type reader struct {
	in  []int
	pos int
	err error
}

func (r *reader) next(lo, hi int) int {
	v := r.in[0]
	r.in = r.in[1:]
	r.pos++
	if r.err == nil && (v < lo || v > hi) {
		r.fail("element %d = %d, want %d..%d", r.pos-1, v, lo, hi)
	}
	if r.err != nil {
		return lo
	}
	return v
}

func (r *reader) counts(dst *[NumColors]uint8, max int) {
	for c := range dst {
		dst[c] = uint8(r.next(0, max))
	}
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = malformed(format, args...)
	}
}

// Validate checks the structural invariants every reachable position
// satisfies.
func (s State) Validate() error {
	players := int(s.players)
	if players < MinPlayers || players > MaxPlayers {
		return malformed("bad player count %d", players)
	}
	if int(s.toMove) >= players || s.toMove < 0 || int(s.start) >= players || s.start < 0 {
		return malformed("player index out of range")
	}
	if s.round < 1 {
		return malformed("bad round %d", s.round)
	}
	for f := 0; f < MaxFactories; f++ {
		total := 0
		for _, n := range s.factories[f] {
			total += int(n)
		}
		if f >= s.NumFactories() && total != 0 {
			return malformed("factory %d is not in play but holds tiles", f+1)
		}
		if total > FactoryTiles {
			return malformed("factory %d holds %d tiles", f+1, total)
		}
	}
	tokens := boolInt(s.tokenInCenter)
	for p := 0; p < MaxPlayers; p++ {
		b := &s.boards[p]
		if p >= players {
			if *b != (Board{}) {
				return malformed("board %d is not in play but is not empty", p)
			}
			continue
		}
		for r := 0; r < Lines; r++ {
			if b.wall[r] >= 1<<WallSize {
				return malformed("player %d wall row %d out of range", p, r+1)
			}
			c, n := b.Line(r)
			if n > r+1 {
				return malformed("player %d pattern line %d holds %d tiles", p, r+1, n)
			}
			if n > 0 && b.HasColor(r, c) {
				return malformed("player %d pattern line %d holds %s already on the wall", p, r+1, c)
			}
		}
		if b.score < 0 {
			return malformed("player %d has negative score", p)
		}
		if b.token {
			tokens++
			if int(s.start) != p {
				return malformed("player %d holds the token but player %d starts next round", p, s.start)
			}
		}
	}
	if tokens != 1 {
		return malformed("%d first player tokens", tokens)
	}
	for c := Color(0); c < NumColors; c++ {
		n := int(s.bag[c]) + int(s.lid[c]) + int(s.center[c])
		for f := 0; f < s.NumFactories(); f++ {
			n += int(s.factories[f][c])
		}
		for p := 0; p < players; p++ {
			n += s.boards[p].tiles(c)
		}
		if n != TilesPerColor {
			return malformed("%d %s tiles in play, want %d", n, c, TilesPerColor)
		}
	}
	return nil
}

// MarshalBinary encodes Serialize's output as a protobuf varint count
// followed by zigzag varints.
func (s State) MarshalBinary() ([]byte, error) {
	ints := s.Serialize()
	buf := proto.NewBuffer(make([]byte, 0, 2*len(ints)+1))
	if err := buf.EncodeVarint(uint64(len(ints))); err != nil {
		return nil, err
	}
	for _, v := range ints {
		if err := buf.EncodeZigzag64(uint64(int64(v))); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (s *State) UnmarshalBinary(data []byte) error {
	buf := proto.NewBuffer(data)
	n, err := buf.DecodeVarint()
	if err != nil {
		return malformed("read length: %v", err)
	}
	if n > maxEncodedLen {
		return malformed("%d elements, at most %d allowed", n, maxEncodedLen)
	}
	ints := make([]int, n)
	for i := range ints {
		v, err := buf.DecodeZigzag64()
		if err != nil {
			return malformed("read element %d: %v", i, err)
		}
		ints[i] = int(int64(v))
		if int64(ints[i]) != int64(v) {
			return malformed("element %d does not fit in an int", i)
		}
	}
	if rest := len(buf.Unread()); rest != 0 {
		return malformed("%d trailing bytes", rest)
	}
	out, err := Deserialize(ints)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

func appendCounts(out []int, counts [NumColors]uint8) []int {
	for _, n := range counts {
		out = append(out, int(n))
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

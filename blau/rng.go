package blau

import (
	"encoding/binary"

	"golang.org/x/exp/rand"
)

// The bag draw is the only randomness in the game. The generator
// state lives inside State so that Move stays a pure function.

func seedRNG(seed uint64) [2]uint64 {
	var src rand.PCGSource
	src.Seed(seed)
	return saveRNG(&src)
}

func saveRNG(src *rand.PCGSource) [2]uint64 {
	buf, err := src.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return [2]uint64{
		binary.BigEndian.Uint64(buf[:8]),
		binary.BigEndian.Uint64(buf[8:16]),
	}
}

func (s *State) withRand(f func(r *rand.Rand)) {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], s.rng[0])
	binary.BigEndian.PutUint64(buf[8:], s.rng[1])
	var src rand.PCGSource
	if err := src.UnmarshalBinary(buf[:]); err != nil {
		panic(err)
	}
	f(rand.New(&src))
	s.rng = saveRNG(&src)
}

// draw takes one random tile out of the bag, pouring the lid back in
// first if the bag is empty.
func (s *State) draw(r *rand.Rand) (Color, bool) {
	total := 0
	for _, n := range s.bag {
		total += int(n)
	}
	if total == 0 {
		s.bag, s.lid = s.lid, [NumColors]uint8{}
		for _, n := range s.bag {
			total += int(n)
		}
		if total == 0 {
			return NoColor, false
		}
	}
	k := r.Intn(total)
	for c, n := range s.bag {
		if k < int(n) {
			s.bag[c]--
			return Color(c), true
		}
		k -= int(n)
	}
	panic("draw: bag count mismatch")
}

// deal refills every factory and reports whether any tile was dealt.
func (s *State) deal() bool {
	dealt := false
	s.withRand(func(r *rand.Rand) {
		for f := 0; f < s.NumFactories(); f++ {
			for i := 0; i < FactoryTiles; i++ {
				c, ok := s.draw(r)
				if !ok {
					return
				}
				s.factories[f][c]++
				dealt = true
			}
		}
	})
	return dealt
}

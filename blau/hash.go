package blau

const (
	fnvBasis = 14695981039346656037
	fnvPrime = 1099511628211
)

func hash64(basis uint64, w uint64) uint64 {
	h := basis
	for i := uint(0); i < 64; i += 8 {
		h = (h ^ ((w >> i) & 0xff)) * fnvPrime
	}
	return h
}

// Hash returns a 64-bit FNV-1a hash of the position, suitable for
// keying transposition tables. Equal states hash equally.
func (s State) Hash() uint64 {
	h := uint64(fnvBasis)
	for _, v := range s.Serialize() {
		h = hash64(h, uint64(int64(v)))
	}
	return h
}

package bpn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nelhage/blau/blau"
)

// ParseState parses a serialized State written as integers separated
// by commas or whitespace.
func ParseState(str string) (blau.State, error) {
	fields := strings.FieldsFunc(str, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	ints := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return blau.State{}, fmt.Errorf("element %d: %w", i, err)
		}
		ints[i] = v
	}
	return blau.Deserialize(ints)
}

// FormatState renders s as comma-separated integers.
func FormatState(s blau.State) string {
	return joinInts(s.Serialize(), ",")
}

func joinInts(ints []int, sep string) string {
	var b strings.Builder
	for i, v := range ints {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

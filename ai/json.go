package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFeature looks a feature up by name, ignoring case.
func ParseFeature(name string) (Feature, bool) {
	for f := Feature(0); f < MaxFeature; f++ {
		if strings.EqualFold(f.String(), name) {
			return f, true
		}
	}
	return MaxFeature, false
}

func featureList() string {
	names := make([]string, MaxFeature)
	for f := range names {
		names[f] = Feature(f).String()
	}
	return strings.Join(names, ", ")
}

// MarshalJSON writes the nonzero weights as an object keyed by
// feature name.
func (ws Weights) MarshalJSON() ([]byte, error) {
	h := make(map[string]int64, MaxFeature)
	for f, v := range ws {
		if v != 0 {
			h[Feature(f).String()] = v
		}
	}
	return json.Marshal(h)
}

// UnmarshalJSON sets the named features and leaves the rest alone, so
// a partial object such as {"center": 5} adjusts DefaultWeights.
func (ws *Weights) UnmarshalJSON(bs []byte) error {
	var h map[string]int64
	if err := json.Unmarshal(bs, &h); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	var seen [MaxFeature]bool
	for name, v := range h {
		f, ok := ParseFeature(name)
		if !ok {
			return fmt.Errorf("unknown feature %q (want one of %s)", name, featureList())
		}
		if seen[f] {
			return fmt.Errorf("feature %s given twice", f)
		}
		seen[f] = true
		ws[f] = v
	}
	return nil
}

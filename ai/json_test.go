package ai

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestMarshalUnmarshal(t *testing.T) {
	cases := []struct {
		in  Weights
		out string
	}{
		{Weights{}, "{}"},
		{Weights{Center: 10}, `{"Center":10}`},
		{Weights{NewLine: -50, Tiles: 10}, `{"NewLine":-50,"Tiles":10}`},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, e := json.Marshal(&tc.in)
			if e != nil {
				t.Fatalf("Marshal(): %v", e)
			}
			if string(out) != tc.out {
				t.Fatalf("Marshal() = %q != %q", out, tc.out)
			}

			var back Weights
			e = json.Unmarshal(out, &back)
			if e != nil {
				t.Fatalf("Unmarshal(%q): %v", out, e)
			}
			if back != tc.in {
				t.Errorf("roundtrip = %v != %v", back, tc.in)
			}
		})
	}
}

func TestUnmarshalPartial(t *testing.T) {
	w := DefaultWeights
	if err := json.Unmarshal([]byte(`{"Middle":3}`), &w); err != nil {
		t.Fatal(err)
	}
	if w[Middle] != 3 || w[Center] != DefaultWeights[Center] {
		t.Errorf("weights=%v", w)
	}
	if err := json.Unmarshal([]byte(`{"Capstone":3}`), &w); err == nil {
		t.Error("accepted an unknown feature")
	}
}

func TestUnmarshalNames(t *testing.T) {
	var w Weights
	if err := json.Unmarshal([]byte(`{"center":4,"NEWLINEINDEX":-2}`), &w); err != nil {
		t.Fatal(err)
	}
	if w[Center] != 4 || w[NewLineIndex] != -2 {
		t.Errorf("weights=%v", w)
	}

	for _, in := range []string{
		`{"MaxFeature":1}`,
		`{"Center":1,"center":2}`,
		`{"Center":"high"}`,
		`[1,2]`,
	} {
		if err := json.Unmarshal([]byte(in), &w); err == nil {
			t.Errorf("Unmarshal(%s) succeeded", in)
		}
	}
}

func TestParseFeature(t *testing.T) {
	for f := Feature(0); f < MaxFeature; f++ {
		got, ok := ParseFeature(f.String())
		if !ok || got != f {
			t.Errorf("ParseFeature(%q) = %v, %v", f.String(), got, ok)
		}
	}
	if _, ok := ParseFeature("MaxFeature"); ok {
		t.Error("ParseFeature accepted MaxFeature")
	}
}

package detection

import (
	"encoding/json"
	"testing"
)

func TestParseModel(t *testing.T) {
	cases := map[string]ModelKind{
		"Swerling 0":      NonFluctuating,
		"steady":          NonFluctuating,
		"nonfluctuating":  NonFluctuating,
		"non-fluctuating": NonFluctuating,
		"0":               NonFluctuating,
		"Swerling I":      Swerling1,
		"swerling1":       Swerling1,
		"I":               Swerling1,
		"2":               Swerling2,
		"Swerling II":     Swerling2,
		"swerling_3":      Swerling3,
		"iii":             Swerling3,
		" Swerling IV ":   Swerling4,
		"4":               Swerling4,
	}
	for in, want := range cases {
		got, err := ParseModel(in)
		if err != nil {
			t.Fatalf("ParseModel(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseModel(%q) = %s, want %s", in, got, want)
		}
	}

	for _, bad := range []string{"", "swerling", "5", "v", "rayleigh"} {
		if _, err := ParseModel(bad); err == nil {
			t.Fatalf("ParseModel(%q) expected error", bad)
		}
	}
}

func TestModelStringRoundTrip(t *testing.T) {
	for _, m := range Models() {
		got, err := ParseModel(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip of %s gave %s, %v", m, got, err)
		}
	}
	if s := ModelKind(9).String(); s != "ModelKind(9)" {
		t.Fatalf("unexpected label %q", s)
	}
}

func TestModelFluctuating(t *testing.T) {
	if NonFluctuating.Fluctuating() {
		t.Fatal("steady target reported as fluctuating")
	}
	for _, m := range []ModelKind{Swerling1, Swerling2, Swerling3, Swerling4} {
		if !m.Fluctuating() {
			t.Fatalf("%s should fluctuate", m)
		}
	}
}

func TestModelJSON(t *testing.T) {
	type wrapper struct {
		Model ModelKind `json:"model"`
	}
	data, err := json.Marshal(wrapper{Model: Swerling3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"model":"Swerling III"}` {
		t.Fatalf("unexpected json %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"model":"iv"}`), &w); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if w.Model != Swerling4 {
		t.Fatalf("decoded %s, want Swerling IV", w.Model)
	}
	if err := json.Unmarshal([]byte(`{"model":"seven"}`), &w); err == nil {
		t.Fatal("expected error for unknown model")
	}
	if _, err := json.Marshal(wrapper{Model: ModelKind(-1)}); err == nil {
		t.Fatal("expected error marshalling unknown model")
	}
}

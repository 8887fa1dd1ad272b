package topic

import (
	"testing"
)

func TestDecide(t *testing.T) {
	g := NewGate(nil, 0)

	tests := []struct {
		name       string
		text       string
		hasRoutine bool
		want       Decision
	}{
		{"keyword lower", "is retinol safe at night?", false, Allow},
		{"keyword mixed case", "Which SPF should I use", false, Allow},
		{"stem match", "best moisturizer for dry weather", false, Allow},
		{"embedded word", "my scalp and hairline", false, Allow},
		{"off topic before routine", "who won the match yesterday", false, Guide},
		{"off topic after routine", "who won the match yesterday", true, Refuse},
		{"on topic after routine", "can I skip step 2 of the routine", true, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Decide(tt.text, tt.hasRoutine); got != tt.want {
				t.Errorf("Decide(%q, %v) = %v, want %v", tt.text, tt.hasRoutine, got, tt.want)
			}
		})
	}
}

func TestCustomVocabulary(t *testing.T) {
	g := NewGate([]string{" nails ", "", "c++"}, 10)

	if !g.OnTopic("NAILS care") {
		t.Errorf("expected custom keyword to match case-insensitively")
	}
	if !g.OnTopic("learning c++") {
		t.Errorf("expected keywords to be matched literally")
	}
	if g.OnTopic("skincare") {
		t.Errorf("custom vocabulary should replace the defaults")
	}
	if g.RoutineThreshold() != 10 {
		t.Errorf("RoutineThreshold = %d, want 10", g.RoutineThreshold())
	}
}

func TestDefaults(t *testing.T) {
	g := NewGate([]string{"  "}, -1)
	if !g.OnTopic("skincare") {
		t.Errorf("blank vocabulary should fall back to defaults")
	}
	if g.RoutineThreshold() != DefaultRoutineThreshold {
		t.Errorf("RoutineThreshold = %d, want %d", g.RoutineThreshold(), DefaultRoutineThreshold)
	}
}

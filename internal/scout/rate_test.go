package scout

import "testing"

func TestRate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"neutral", "the council met on tuesday", 5},
		{"empty", "", 5},
		{"positive words", "Volunteers help the community with kindness and hope", 9},
		{"all negatives clamp to floor", "war crime death disaster crisis fail tragedy", 1},
		{"mixed cancels out", "hope during the war", 5},
		{"case insensitive", "HOPE AND JOY", 7},
		{"substring matches count", "warm kindness", 5},
		{"ceiling clamp", "help kind success hope inspire joy uplift community cure breakthrough", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rate(tt.content); got != tt.want {
				t.Errorf("Rate(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

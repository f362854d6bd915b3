package scout

import "strings"

// Marker words for the naive feel-good scorer. Matching is substring-based
// on the lowercased content, so "helps" and "kindness" count too.
var (
	positiveWords = []string{
		"help", "kind", "success", "hope", "inspire",
		"joy", "uplift", "community", "cure", "breakthrough",
	}
	negativeWords = []string{
		"war", "crime", "death", "disaster", "crisis", "fail", "tragedy",
	}
)

// Rate scores content by counting positive and negative marker words.
// The result is clamped to 1..10 with 5 as the neutral midpoint.
func Rate(content string) int {
	lc := strings.ToLower(content)

	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lc, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lc, w) {
			score--
		}
	}

	rating := score + 5
	if rating < 1 {
		rating = 1
	}
	if rating > 10 {
		rating = 10
	}
	return rating
}

package news

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Article is one feel-good story as served by the backend.
type Article struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Rating  int    `json:"rating"`
}

// Payload is the body of GET /news. Older backend builds served a bare
// article array, newer ones wrap it under "articles"; Decode accepts both.
type Payload struct {
	Articles []Article `json:"articles"`
}

// Decode parses a /news response body. Invalid JSON is an error; valid JSON
// of any unrecognized shape (null, a string, an object without "articles")
// decodes to a payload with zero articles rather than failing.
func Decode(raw []byte) (*Payload, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("news payload is not valid JSON")
	}

	var bare []Article
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &Payload{Articles: bare}, nil
	}

	var wrapped struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return &Payload{Articles: wrapped.Articles}, nil
	}

	return &Payload{}, nil
}

// DefaultGlyph is the repeated rating marker shown next to each article.
const DefaultGlyph = "🐾"

// maxGlyphs caps degenerate ratings; the backend contract is 1-10.
const maxGlyphs = 10

// GlyphRow renders a rating as the glyph repeated rating times, clamped to
// [0, 10]. A non-positive rating renders as an empty row.
func GlyphRow(glyph string, rating int) string {
	if glyph == "" {
		glyph = DefaultGlyph
	}
	if rating < 0 {
		rating = 0
	}
	if rating > maxGlyphs {
		rating = maxGlyphs
	}
	return strings.Repeat(glyph, rating)
}

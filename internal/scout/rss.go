package scout

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSSSource discovers candidates from a feed URL. Feed entries carry their
// own titles and descriptions, so no page extraction is needed for them.
type RSSSource struct {
	name   string
	url    string
	parser *gofeed.Parser
}

func NewRSSSource(name, url string) *RSSSource {
	return &RSSSource{name: name, url: url, parser: gofeed.NewParser()}
}

func (r *RSSSource) Name() string { return "rss:" + r.name }

func (r *RSSSource) Discover(ctx context.Context) ([]Candidate, error) {
	feed, err := r.parser.ParseURLWithContext(r.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.name, err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		candidates = append(candidates, Candidate{
			URL:     item.Link,
			Title:   strings.TrimSpace(item.Title),
			Summary: stripHTML(desc),
		})
	}
	return candidates, nil
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

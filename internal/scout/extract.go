package scout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const (
	// Paragraphs shorter than this are navigation crumbs, bylines, cookie
	// banners and similar chrome.
	minParagraphLen = 60
	// Stop accumulating once the summary is this long.
	summaryTarget = 500
)

// Extractor pulls a title and readable summary out of an article page.
type Extractor interface {
	Extract(ctx context.Context, url string) (title, summary string, err error)
}

// PageExtractor scrapes the page directly. Page structure varies wildly
// across news sites, so this is best-effort: og:title over <title>, and the
// first few substantial paragraphs as the summary.
type PageExtractor struct {
	userAgent string
	timeout   time.Duration
}

func NewPageExtractor() *PageExtractor {
	return &PageExtractor{
		userAgent: "catbreak/1.0",
		timeout:   10 * time.Second,
	}
}

func (e *PageExtractor) Extract(ctx context.Context, pageURL string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	c := colly.NewCollector(colly.UserAgent(e.userAgent))
	c.SetRequestTimeout(e.timeout)

	var (
		title      string
		paragraphs []string
	)

	c.OnHTML("title", func(el *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(el.Text)
		}
	})
	c.OnHTML("meta[property='og:title']", func(el *colly.HTMLElement) {
		if t := strings.TrimSpace(el.Attr("content")); t != "" {
			title = t
		}
	})
	c.OnHTML("body", func(el *colly.HTMLElement) {
		paragraphs = bodyParagraphs(el)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", "", fmt.Errorf("visiting %s: %w", pageURL, err)
	}

	summary := joinParagraphs(paragraphs, summaryTarget)
	if summary == "" {
		return "", "", fmt.Errorf("no readable text at %s", pageURL)
	}
	return title, summary, nil
}

// bodyParagraphs collects substantial paragraphs, preferring ones inside an
// article or main container so sidebars and footers don't leak in. Pages
// without semantic containers fall back to every <p> on the page.
func bodyParagraphs(el *colly.HTMLElement) []string {
	var paragraphs []string
	for _, scope := range []string{"article p", "main p", "p"} {
		el.DOM.Find(scope).Each(func(_ int, s *goquery.Selection) {
			t := strings.TrimSpace(s.Text())
			if len(t) < minParagraphLen {
				return
			}
			paragraphs = append(paragraphs, t)
		})
		if len(paragraphs) > 0 {
			break
		}
	}
	return paragraphs
}

func joinParagraphs(paragraphs []string, target int) string {
	var b strings.Builder
	for _, p := range paragraphs {
		if b.Len() >= target {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p)
	}
	return b.String()
}

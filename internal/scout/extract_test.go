package scout

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testParagraph = "Neighbors from three towns rallied over the weekend to rebuild the flooded library, donating books, shelves, and hundreds of volunteer hours."

func TestPageExtract(t *testing.T) {
	page := fmt.Sprintf(`<html>
<head>
  <title>Tab Title | Some Site</title>
  <meta property="og:title" content="Real Headline"/>
</head>
<body>
  <p>Menu</p>
  <p>%s</p>
  <p>%s</p>
</body>
</html>`, testParagraph, testParagraph)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	title, summary, err := NewPageExtractor().Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if title != "Real Headline" {
		t.Errorf("title = %q, want og:title over <title>", title)
	}
	if !strings.Contains(summary, "rebuild the flooded library") {
		t.Errorf("summary missing article text: %q", summary)
	}
	if strings.Contains(summary, "Menu") {
		t.Error("summary includes chrome paragraph")
	}
}

func TestPageExtractPrefersArticleContainer(t *testing.T) {
	page := fmt.Sprintf(`<html>
<head><title>Scoped</title></head>
<body>
  <p>This footer disclaimer is intentionally long enough to slip past the paragraph length filter.</p>
  <article>
    <p>%s</p>
  </article>
</body>
</html>`, testParagraph)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	_, summary, err := NewPageExtractor().Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if strings.Contains(summary, "footer disclaimer") {
		t.Errorf("summary includes text outside <article>: %q", summary)
	}
	if !strings.Contains(summary, "rebuild the flooded library") {
		t.Errorf("summary missing article text: %q", summary)
	}
}

func TestPageExtractFallsBackToTitleTag(t *testing.T) {
	page := fmt.Sprintf(`<html><head><title>Only Title</title></head><body><p>%s</p></body></html>`, testParagraph)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	title, _, err := NewPageExtractor().Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if title != "Only Title" {
		t.Errorf("title = %q, want %q", title, "Only Title")
	}
}

func TestPageExtractNoReadableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>t</title></head><body><p>nav</p><p>ok</p></body></html>`)
	}))
	defer srv.Close()

	if _, _, err := NewPageExtractor().Extract(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for page without substantial paragraphs, got nil")
	}
}

func TestPageExtractCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := NewPageExtractor().Extract(ctx, "https://example.com"); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

package scout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	tavilyEndpoint   = "https://api.tavily.com/search"
	tavilyQuery      = "feel good news positive uplifting recent"
	tavilyMaxResults = 30
)

// TavilySource discovers candidate links through the Tavily search API.
// Tavily only accepts POST with a JSON body and a Bearer token.
type TavilySource struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewTavilySource(apiKey string) *TavilySource {
	return &TavilySource{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *TavilySource) Name() string { return "tavily" }

type tavilyRequest struct {
	Query       string `json:"query"`
	Topic       string `json:"topic"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type tavilyResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"results"`
}

func (t *TavilySource) Discover(ctx context.Context) ([]Candidate, error) {
	body, _ := json.Marshal(tavilyRequest{
		Query:       tavilyQuery,
		Topic:       "general",
		SearchDepth: "basic",
		MaxResults:  tavilyMaxResults,
	})

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tavily API %d: %s", resp.StatusCode, string(b))
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	candidates := make([]Candidate, 0, len(tr.Results))
	for _, r := range tr.Results {
		if r.URL == "" {
			continue
		}
		candidates = append(candidates, Candidate{URL: r.URL, Title: r.Title})
	}
	return candidates, nil
}

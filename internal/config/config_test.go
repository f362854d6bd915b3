package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"CATBREAK_ADDR", "TAVILY_API_KEY", "CATBREAK_FEEDS", "SUMMARY_PROVIDER",
		"OLLAMA_HOST", "REDIS_ADDR", "NEWS_CACHE_TTL", "CATBREAK_DB",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q, want :8000", cfg.Addr)
	}
	if cfg.SummaryProvider != "ollama" {
		t.Errorf("SummaryProvider = %q, want ollama", cfg.SummaryProvider)
	}
	if cfg.OllamaHost != "http://localhost:11434" {
		t.Errorf("OllamaHost = %q", cfg.OllamaHost)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want 10m", cfg.CacheTTL)
	}
	if cfg.WatchedDBPath != "watched.db" {
		t.Errorf("WatchedDBPath = %q", cfg.WatchedDBPath)
	}
	if len(cfg.FeedURLs) != 0 {
		t.Errorf("FeedURLs = %v, want empty", cfg.FeedURLs)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CATBREAK_ADDR", ":9100")
	t.Setenv("TAVILY_API_KEY", "tvly-abc")
	t.Setenv("SUMMARY_PROVIDER", "openai")
	t.Setenv("NEWS_CACHE_TTL", "30s")
	t.Setenv("CATBREAK_FEEDS", " https://a.example/rss , https://b.example/feed ,")

	cfg := Load()

	if cfg.Addr != ":9100" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.TavilyAPIKey != "tvly-abc" {
		t.Errorf("TavilyAPIKey = %q", cfg.TavilyAPIKey)
	}
	if cfg.SummaryProvider != "openai" {
		t.Errorf("SummaryProvider = %q", cfg.SummaryProvider)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	want := []string{"https://a.example/rss", "https://b.example/feed"}
	if !reflect.DeepEqual(cfg.FeedURLs, want) {
		t.Errorf("FeedURLs = %v, want %v", cfg.FeedURLs, want)
	}
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("NEWS_CACHE_TTL", "soon")

	if cfg := Load(); cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, want default on parse failure", cfg.CacheTTL)
	}
}

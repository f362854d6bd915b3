// Package config loads backend configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// Discovery sources.
	TavilyAPIKey string
	FeedURLs     []string

	// Summarizer.
	SummaryProvider string
	SummaryModel    string
	OllamaHost      string
	OpenAIKey       string
	AnthropicKey    string

	// Response cache. Empty RedisAddr disables it.
	RedisAddr string
	CacheTTL  time.Duration

	// Dedup store.
	WatchedDBPath string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local runs.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:            getEnv("CATBREAK_ADDR", ":8000"),
		TavilyAPIKey:    os.Getenv("TAVILY_API_KEY"),
		FeedURLs:        splitList(os.Getenv("CATBREAK_FEEDS")),
		SummaryProvider: getEnv("SUMMARY_PROVIDER", "ollama"),
		SummaryModel:    os.Getenv("SUMMARY_MODEL"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:    os.Getenv("ANTHROPIC_API_KEY"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CacheTTL:        getDuration("NEWS_CACHE_TTL", 10*time.Minute),
		WatchedDBPath:   getEnv("CATBREAK_DB", "watched.db"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("unparseable duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

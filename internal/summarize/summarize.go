// Package summarize rewrites collected article text into short upbeat
// summaries through a local or hosted model.
package summarize

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Summarizer produces a 2-3 sentence feel-good summary of article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Config selects and configures a provider. The zero value is a local
// Ollama instance with the default model.
type Config struct {
	Provider     string // "ollama" (default), "openai", "claude"
	Model        string
	OllamaHost   string
	OpenAIKey    string
	AnthropicKey string
}

// New creates a Summarizer from the given config.
func New(cfg Config) (Summarizer, error) {
	switch cfg.Provider {
	case "", "ollama":
		host := cfg.OllamaHost
		if host == "" {
			host = defaultOllamaHost
		}
		model := cfg.Model
		if model == "" {
			model = defaultOllamaModel
		}
		return &ollamaProvider{
			host:   strings.TrimRight(host, "/"),
			model:  model,
			client: &http.Client{Timeout: 30 * time.Second},
		}, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return newOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	case "claude", "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return newAnthropicProvider(cfg.AnthropicKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown summary provider: %q (valid: ollama, openai, claude)", cfg.Provider)
	}
}

const summarizePrompt = `Summarise the following article in 2-3 sentences, keep it upbeat and feel-good:

%s`

const fallbackLen = 300

// Fallback is used when the model call fails: the original text cut to
// 300 runes with a trailing ellipsis.
func Fallback(text string) string {
	runes := []rune(text)
	if len(runes) > fallbackLen {
		runes = runes[:fallbackLen]
	}
	return string(runes) + "…"
}

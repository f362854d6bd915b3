package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/config"
	"github.com/staggeredsix/catbreak/internal/scout"
	"github.com/staggeredsix/catbreak/internal/server"
	"github.com/staggeredsix/catbreak/internal/summarize"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the good-news backend",
	Long: `Serve GET /news on the configured address (default :8000).

Articles are discovered through Tavily search and any configured RSS feeds.
Each served article is rated for positivity and summarized through the
configured LLM provider; the watched-URL store keeps a story from being
served twice.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()

	var sources []scout.Source
	if cfg.TavilyAPIKey != "" {
		sources = append(sources, scout.NewTavilySource(cfg.TavilyAPIKey))
	}
	for _, feed := range cfg.FeedURLs {
		sources = append(sources, scout.NewRSSSource(feedName(feed), feed))
	}
	if len(sources) == 0 {
		logger.Warn("no discovery sources configured, /news will always be empty",
			"hint", "set TAVILY_API_KEY or CATBREAK_FEEDS")
	}

	watched, err := scout.OpenWatched(cfg.WatchedDBPath)
	if err != nil {
		return fmt.Errorf("opening watched store: %w", err)
	}
	defer watched.Close()
	served, err := watched.Count()
	if err != nil {
		return fmt.Errorf("reading watched store: %w", err)
	}
	logger.Info("watched store ready", "path", cfg.WatchedDBPath, "served", served)

	summarizer, err := summarize.New(summarize.Config{
		Provider:     cfg.SummaryProvider,
		Model:        cfg.SummaryModel,
		OllamaHost:   cfg.OllamaHost,
		OpenAIKey:    cfg.OpenAIKey,
		AnthropicKey: cfg.AnthropicKey,
	})
	if err != nil {
		return fmt.Errorf("configuring summarizer: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, responses will not be cached", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()
	}

	collector := scout.New(sources, watched, scout.NewPageExtractor(), logger)
	srv := server.New(collector, summarizer, rdb, cfg.CacheTTL, logger)

	r := gin.Default()
	srv.RegisterRoutes(r)

	logger.Info("serving", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		return fmt.Errorf("server exit: %w", err)
	}
	return nil
}

// feedName labels an RSS source by its host for log lines.
func feedName(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}

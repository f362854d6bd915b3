// Package server exposes the collected news feed over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/summarize"
)

const cacheKey = "catbreak:news:latest"

// Collector assembles a fresh batch of rated articles.
type Collector interface {
	Collect(ctx context.Context) []news.Article
}

type Server struct {
	collector  Collector
	summarizer summarize.Summarizer
	rdb        *redis.Client
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// New builds the HTTP server. rdb may be nil, which disables the response
// cache and makes every request collect a fresh batch.
func New(collector Collector, summarizer summarize.Summarizer, rdb *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		collector:  collector,
		summarizer: summarizer,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/news", s.getNews)
	r.GET("/health", s.health)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getNews(c *gin.Context) {
	ctx := c.Request.Context()

	if body, ok := s.cachedPayload(ctx); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	articles := s.collector.Collect(ctx)
	if len(articles) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Could not fetch articles"})
		return
	}

	for i := range articles {
		articles[i].Summary = s.summarizeOrFallback(ctx, articles[i].Summary)
	}

	body, err := json.Marshal(news.Payload{Articles: articles})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not encode articles"})
		return
	}

	s.storePayload(ctx, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// summarizeOrFallback asks the model for an upbeat rewrite and falls back
// to truncated source text when the call fails.
func (s *Server) summarizeOrFallback(ctx context.Context, text string) string {
	if s.summarizer == nil {
		return summarize.Fallback(text)
	}
	out, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		s.logger.Warn("summarize failed, using fallback", "error", err)
		return summarize.Fallback(text)
	}
	return out
}

func (s *Server) cachedPayload(ctx context.Context) ([]byte, bool) {
	if s.rdb == nil {
		return nil, false
	}
	body, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("redis get failed", "error", err)
		}
		return nil, false
	}
	return body, true
}

func (s *Server) storePayload(ctx context.Context, body []byte) {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.rdb.Set(ctx, cacheKey, body, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("redis set failed", "error", err)
	}
}

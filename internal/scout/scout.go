// Package scout finds and rates feel-good news articles for the backend.
// Discovery fans out across sources; extraction and rating walk the merged
// candidates until a batch is full, skipping anything served before.
package scout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/staggeredsix/catbreak/internal/news"
)

// BatchSize is the number of articles a full batch carries. Fewer is
// served with a warning, never an error.
const BatchSize = 5

// Candidate is a discovered link, possibly with feed-provided metadata.
// A Candidate without a Summary needs page extraction.
type Candidate struct {
	URL     string
	Title   string
	Summary string
}

// Source discovers candidate article links.
type Source interface {
	Name() string
	Discover(ctx context.Context) ([]Candidate, error)
}

type Scout struct {
	sources   []Source
	store     *WatchedStore
	extractor Extractor
	logger    *slog.Logger
}

func New(sources []Source, store *WatchedStore, extractor Extractor, logger *slog.Logger) *Scout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scout{
		sources:   sources,
		store:     store,
		extractor: extractor,
		logger:    logger,
	}
}

// Collect returns up to BatchSize fresh articles. A source failure drops
// that source's candidates; a candidate failure drops that candidate. Every
// served URL is recorded so the next batch starts where this one stopped.
func (s *Scout) Collect(ctx context.Context) []news.Article {
	var (
		mu         sync.Mutex
		candidates []Candidate
		wg         sync.WaitGroup
	)

	for _, src := range s.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			found, err := src.Discover(ctx)
			if err != nil {
				s.logger.Warn("discovery failed", "source", src.Name(), "error", err)
				return
			}
			s.logger.Debug("discovery done", "source", src.Name(), "candidates", len(found))
			mu.Lock()
			candidates = append(candidates, found...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	var batch []news.Article
	for _, cand := range candidates {
		if len(batch) >= BatchSize {
			break
		}
		if cand.URL == "" {
			continue
		}

		seen, err := s.store.Seen(cand.URL)
		if err != nil {
			s.logger.Warn("watched lookup failed", "url", cand.URL, "error", err)
			continue
		}
		if seen {
			continue
		}

		title, summary := cand.Title, cand.Summary
		if summary == "" {
			if s.extractor == nil {
				continue
			}
			title, summary, err = s.extractor.Extract(ctx, cand.URL)
			if err != nil {
				s.logger.Warn("extraction failed", "url", cand.URL, "error", err)
				continue
			}
		}
		if title == "" {
			title = cand.Title
		}
		if title == "" {
			title = cand.URL
		}

		batch = append(batch, news.Article{
			URL:     cand.URL,
			Title:   title,
			Summary: summary,
			Rating:  Rate(summary),
		})
		if err := s.store.Mark(cand.URL); err != nil {
			s.logger.Warn("marking watched failed", "url", cand.URL, "error", err)
		}
		s.logger.Info("collected article", "n", len(batch), "title", title)
	}

	if len(batch) < BatchSize {
		s.logger.Warn("batch came up short", "collected", len(batch), "want", BatchSize)
	}
	return batch
}

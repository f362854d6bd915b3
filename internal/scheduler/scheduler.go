// Package scheduler runs the recurring background fetch for the watch command.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

const fetchTimeout = 30 * time.Second

// Fetcher retrieves the news payload from a backend address.
type Fetcher interface {
	Fetch(ctx context.Context, address string) (*news.Payload, []byte, error)
}

// Notifier raises a desktop notification after a successful refresh.
type Notifier interface {
	Notify(title, message string) error
}

// Scheduler fires the fetch job on a fixed cadence. Settings are re-read on
// every firing, so address changes take effect without restarting the watcher.
type Scheduler struct {
	cron         *cron.Cron
	fetcher      Fetcher
	store        *cache.Cache
	notifier     Notifier
	settingsPath string
	logger       *slog.Logger
}

func New(interval time.Duration, fetcher Fetcher, store *cache.Cache, notifier Notifier, settingsPath string, logger *slog.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := cron.New()
	s := &Scheduler{
		cron:         c,
		fetcher:      fetcher,
		store:        store,
		notifier:     notifier,
		settingsPath: settingsPath,
		logger:       logger,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runOnce); err != nil {
		return nil, fmt.Errorf("registering fetch job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cadence. The returned context is done once any in-flight
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce triggers a single fetch outside the cadence, used by watch --now.
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	cfg, err := settings.Load(s.settingsPath)
	if err != nil {
		s.logger.Warn("settings unreadable, skipping fetch", "error", err)
		return
	}
	if !cfg.HasBackend() {
		s.logger.Debug("no backend address configured, skipping fetch")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	payload, raw, err := s.fetcher.Fetch(ctx, cfg.BackendAddress)
	if err != nil {
		s.logger.Warn("fetch failed", "address", cfg.BackendAddress, "error", err)
		return
	}
	if err := s.store.Write(raw); err != nil {
		s.logger.Warn("cache write failed", "error", err)
		return
	}
	s.logger.Info("news refreshed", "articles", len(payload.Articles))

	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify("catbreak", refreshMessage(len(payload.Articles))); err != nil {
		s.logger.Debug("notification failed", "error", err)
	}
}

func refreshMessage(n int) string {
	if n == 1 {
		return "1 fresh good-news story is ready."
	}
	return fmt.Sprintf("%d fresh good-news stories are ready.", n)
}

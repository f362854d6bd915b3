package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/client"
	"github.com/staggeredsix/catbreak/internal/notify"
	"github.com/staggeredsix/catbreak/internal/scheduler"
	"github.com/staggeredsix/catbreak/internal/settings"
)

var flagNow bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the backend in the background and notify on fresh news",
	Long: `Run the periodic refresh loop without the popup.

Each cycle fetches /news from the configured backend and stores the payload
in the local cache, raising a desktop notification when fresh stories land.
Cycles are skipped quietly until a backend address is configured.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagNow, "now", false, "run one refresh immediately, then keep the schedule")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := settings.Load(settingsPath())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := cache.Open(settings.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	sched, err := scheduler.New(cfg.RefreshDuration(), client.New(), store, notify.Desktop{}, settingsPath(), logger)
	if err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}

	if flagNow {
		sched.RunOnce()
	}
	sched.Start()
	logger.Info("watching", "interval", cfg.RefreshDuration().String())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	<-sched.Stop().Done()
	logger.Info("stopped")
	return nil
}

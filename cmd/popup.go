package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/client"
	"github.com/staggeredsix/catbreak/internal/settings"
	"github.com/staggeredsix/catbreak/internal/tui"
)

func runPopup(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load(settingsPath())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := cache.Open(settings.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	return tui.Run(tui.RunOpts{
		Settings:     cfg,
		SettingsPath: settingsPath(),
		Store:        store,
		Fetcher:      client.New(),
	})
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/client"
	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

var (
	flagAddress  string
	flagSite     string
	flagInterval string
	flagGlyph    string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load(settingsPath())
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings: %s\n", settingsPath())
		fmt.Printf("Backend address: %s\n", valueOr(cfg.BackendAddress, "(not set)"))
		fmt.Printf("Site URL: %s\n", valueOr(cfg.SiteURL, "(not set)"))
		fmt.Printf("Refresh every: %s\n", cfg.RefreshDuration())
		fmt.Printf("Glyph: %s\n", valueOr(cfg.Glyph, news.DefaultGlyph))

		if cfg.HasBackend() {
			if client.New().Healthy(context.Background(), cfg.BackendAddress) {
				fmt.Println("Backend: reachable")
			} else {
				fmt.Println("Backend: unreachable")
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings",
	Long: `Change one or more settings. Only the flags you pass are written;
everything else keeps its current value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch settings.Patch
		if cmd.Flags().Changed("address") {
			patch.BackendAddress = &flagAddress
		}
		if cmd.Flags().Changed("site") {
			patch.SiteURL = &flagSite
		}
		if cmd.Flags().Changed("interval") {
			patch.RefreshInterval = &flagInterval
		}
		if cmd.Flags().Changed("glyph") {
			patch.Glyph = &flagGlyph
		}
		if patch == (settings.Patch{}) {
			return fmt.Errorf("nothing to set: pass at least one of --address, --site, --interval, --glyph")
		}

		saved, err := settings.Save(settingsPath(), patch)
		if err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Printf("Saved %s\n", settingsPath())
		fmt.Printf("Backend address: %s\n", valueOr(saved.BackendAddress, "(not set)"))
		fmt.Printf("Site URL: %s\n", valueOr(saved.SiteURL, "(not set)"))
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&flagAddress, "address", "", "backend host or host:port")
	configSetCmd.Flags().StringVar(&flagSite, "site", "", "external site URL for the popup's s key")
	configSetCmd.Flags().StringVar(&flagInterval, "interval", "", "refresh cadence (e.g., 1h, 30m, 1d)")
	configSetCmd.Flags().StringVar(&flagGlyph, "glyph", "", "rating glyph shown in the popup")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

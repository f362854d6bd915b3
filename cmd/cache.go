package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop the cached news payload",
	Long:  "Delete the stored payload so the next popup or watch cycle fetches fresh articles.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(settings.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := settings.CachePath()
		store, err := cache.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()

		raw, ok, err := store.Read()
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}

		fmt.Printf("Cache: %s\n", dbPath)
		if !ok {
			fmt.Println("Articles: none cached")
			return nil
		}

		count := 0
		if payload, err := news.Decode(raw); err == nil {
			count = len(payload.Articles)
		}
		fmt.Printf("Articles: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(int64(len(raw))))
		if at, ok := store.FetchedAt(); ok {
			fmt.Printf("Fetched: %s\n", at.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

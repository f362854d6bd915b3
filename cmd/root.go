package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/staggeredsix/catbreak/internal/settings"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "catbreak",
	Short: "Feel-good news popup",
	Long:  "catbreak shows feel-good news in a small terminal popup, refreshed in the background from a self-hosted good-news server.",
	RunE:  runPopup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to settings file")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("catbreak %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func settingsPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return settings.DefaultPath()
}

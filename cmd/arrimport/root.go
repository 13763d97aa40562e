package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "arrimport",
	Short: "Bulk-import a flat movie list into Radarr",
	Long: `arrimport - bulk-import a flat movie list into Radarr

Reads one title per line (optionally "Title (YYYY)"), resolves each line
against Radarr's lookup, skips movies already in the library, and adds the
rest. Interrupted runs resume where they left off.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Radarr URL (overrides config and saved settings)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("arrimport {{.Version}}\n")
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/arrimport/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete run artifacts",
	Long: `Delete run artifacts: the resume state, log file, dry-run report, and
run-history database.

Saved connection settings are kept unless --settings is given; wiping them
requires typing WIPE to confirm (or --force).`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Bool("settings", false, "Also delete saved connection settings")
	cleanCmd.Flags().Bool("force", false, "Skip confirmation prompts")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	wipeSettings, _ := cmd.Flags().GetBool("settings")
	force, _ := cmd.Flags().GetBool("force")

	targets := []string{cfg.Files.State, cfg.Log.File, cfg.Files.Report, cfg.Files.History}

	in := bufio.NewReader(os.Stdin)
	if wipeSettings {
		if !force {
			fmt.Printf("This permanently deletes the saved server URL and API key in %s.\n", cfg.Files.Settings)
			fmt.Print("Type WIPE to confirm: ")
			line, _ := in.ReadString('\n')
			if strings.TrimSpace(line) != "WIPE" {
				fmt.Println("Settings kept.")
				wipeSettings = false
			}
		}
		if wipeSettings {
			targets = append(targets, cfg.Files.Settings)
		}
	}

	fmt.Println("Will delete:")
	for _, t := range targets {
		fmt.Printf("  %s\n", t)
	}
	if !force && !promptYesNo(in, "Proceed?", false) {
		fmt.Println("Nothing deleted.")
		return nil
	}

	for _, t := range targets {
		switch err := os.Remove(t); {
		case err == nil:
			fmt.Printf("deleted   %s\n", t)
		case os.IsNotExist(err):
			fmt.Printf("not found %s\n", t)
		default:
			fmt.Printf("failed    %s: %v\n", t, err)
		}
	}
	return nil
}

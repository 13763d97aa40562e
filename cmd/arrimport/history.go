package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vmunix/arrimport/internal/config"
	"github.com/vmunix/arrimport/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past import runs",
	Long: `Show past import runs.

Without arguments, lists recent runs with their counters. With a run ID
(or unique prefix), shows that run's per-line outcomes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: showHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
}

func showHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := history.Open(cfg.Files.History)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if len(args) == 1 {
		return showRunLines(ctx, store, args[0])
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		status := "interrupted"
		if r.FinishedAt != nil {
			status = r.FinishedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			status,
			r.Mode,
			r.InputFile,
			r.Stats.Processed,
			r.Stats.Added + r.Stats.WouldAdd,
			r.Stats.Duplicates,
			r.Stats.Misses + r.Stats.Errors,
		})
	}
	fmt.Println(renderTable(
		table.Row{"RUN", "STARTED", "FINISHED", "MODE", "FILE", "LINES", "ADDED", "DUP", "ISSUES"},
		rows, 6, 7, 8, 9))
	return nil
}

func showRunLines(ctx context.Context, store *history.Store, idPrefix string) error {
	runs, err := store.Runs(ctx, 1000)
	if err != nil {
		return err
	}
	var match *history.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, idPrefix) {
			if match != nil {
				return fmt.Errorf("run ID prefix %q is ambiguous", idPrefix)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return fmt.Errorf("no run matches %q", idPrefix)
	}

	lines, err := store.Lines(ctx, match.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s (%s, %s)\n", shortID(match.ID), match.Mode,
		match.StartedAt.Local().Format("2006-01-02 15:04"))
	if len(lines) == 0 {
		fmt.Println("No lines recorded.")
		return nil
	}

	rows := make([]table.Row, 0, len(lines))
	for _, l := range lines {
		title := l.Title
		if title != "" && l.Year != 0 {
			title = fmt.Sprintf("%s (%d)", l.Title, l.Year)
		}
		rows = append(rows, table.Row{l.Line, l.Term, string(l.Outcome), l.TMDBID, title, l.Detail})
	}
	fmt.Println(renderTable(table.Row{"#", "TERM", "OUTCOME", "TMDB", "MATCHED", "DETAIL"}, rows, 1, 4))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

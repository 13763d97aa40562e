package importer

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Report collects the would-be additions of a dry run for the exported
// report file.
type Report struct {
	ServerURL   string
	RootFolder  string
	ProfileID   int64
	Monitored   bool
	SearchOnAdd bool

	entries []ReportEntry
}

// ReportEntry is one would-be addition.
type ReportEntry struct {
	Title  string
	Year   int
	TMDBID int64
}

func (r *Report) add(title string, year int, tmdbID int64) {
	r.entries = append(r.entries, ReportEntry{Title: title, Year: year, TMDBID: tmdbID})
}

// Entries returns the recorded would-be additions in order.
func (r *Report) Entries() []ReportEntry {
	return r.entries
}

// Write renders the report to path.
func (r *Report) Write(path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "arrimport dry-run report\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Server: %s\n", r.ServerURL)
	fmt.Fprintf(&b, "Root folder: %s\n", r.RootFolder)
	fmt.Fprintf(&b, "Quality profile id: %d\n", r.ProfileID)
	fmt.Fprintf(&b, "Add behavior: monitored=%t search_on_add=%t\n\n", r.Monitored, r.SearchOnAdd)
	for _, e := range r.entries {
		fmt.Fprintf(&b, "%s (%d) | tmdb:%d\n", e.Title, e.Year, e.TMDBID)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

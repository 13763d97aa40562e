package importer

import "fmt"

// Outcome classifies what happened to a single input line.
type Outcome string

const (
	OutcomeAdded     Outcome = "added"
	OutcomeWouldAdd  Outcome = "would-add"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeMiss      Outcome = "miss"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeError     Outcome = "error"
)

// Stats accumulates per-run counters. Write-only during a run, read at the end.
type Stats struct {
	Processed  int
	Added      int
	WouldAdd   int
	Duplicates int
	Misses     int
	Skipped    int
	Errors     int
}

func (s *Stats) count(o Outcome) {
	switch o {
	case OutcomeAdded:
		s.Added++
	case OutcomeWouldAdd:
		s.WouldAdd++
	case OutcomeDuplicate:
		s.Duplicates++
	case OutcomeMiss:
		s.Misses++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeError:
		s.Errors++
	}
}

// Summary renders the one-line run summary.
func (s *Stats) Summary() string {
	return fmt.Sprintf("processed=%d added=%d would_add=%d duplicates=%d misses=%d skipped=%d errors=%d",
		s.Processed, s.Added, s.WouldAdd, s.Duplicates, s.Misses, s.Skipped, s.Errors)
}

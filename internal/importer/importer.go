// Package importer drives a bulk list import: parse, lookup, resolve,
// duplicate-check, add (or simulate), record — one line at a time.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/arrimport/internal/listfile"
	"github.com/vmunix/arrimport/internal/radarr"
)

// Recorder receives per-line outcomes, typically for the run-history store.
// Recording failures never fail the import.
type Recorder interface {
	RecordLine(ctx context.Context, rec LineRecord) error
}

// LineRecord describes what happened to one input line.
type LineRecord struct {
	Line    int // 1-based position in the filtered input
	Term    string
	Outcome Outcome
	TMDBID  int64
	Title   string
	Year    int
	Detail  string
}

// Options configure a run.
type Options struct {
	DryRun      bool
	ConfirmEach bool
	AutoAdd     bool // never prompt before an add
	YesAll      bool // first accepted confirmation locks yes for the rest
	MaxAdd      int  // stop after this many successful adds; 0 = unlimited
	Delay       time.Duration
	Interactive bool
	Add         radarr.AddOptions
}

// Result is what a run produced.
type Result struct {
	Stats  Stats
	Report *Report
	Halted bool // add cap reached before the input was exhausted
}

// Importer owns one pass over the input lines. Strictly sequential: each
// line completes before the next starts, so the duplicate index and resume
// state always reflect every prior line.
type Importer struct {
	catalog  Catalog
	resolver *Resolver
	prompter Prompter
	state    *StateFile
	recorder Recorder
	opts     Options
	log      *slog.Logger
}

// New creates an Importer. recorder may be nil.
func New(catalog Catalog, resolver *Resolver, prompter Prompter, state *StateFile, recorder Recorder, opts Options, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		catalog:  catalog,
		resolver: resolver,
		prompter: prompter,
		state:    state,
		recorder: recorder,
		opts:     opts,
		log:      log.With("component", "importer"),
	}
}

type run struct {
	sess   session
	index  *Index
	stats  Stats
	report *Report
}

// Run processes lines, resuming from the saved state. It returns the run
// result together with ErrAborted on operator abort, radarr.ErrUnauthorized
// on credential rejection, or ctx.Err on cancellation; the partial result is
// valid in every case.
func (imp *Importer) Run(ctx context.Context, lines []string, report *Report) (*Result, error) {
	seed, err := imp.catalog.ExistingTMDBIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read existing library: %w", err)
	}
	imp.log.Info("loaded existing library", "movies", len(seed))

	r := &run{index: NewIndex(seed), report: report}

	start := imp.state.Load()
	if start > len(lines) {
		start = len(lines)
	}
	if start > 0 {
		imp.log.Info("resuming", "line", start+1, "total", len(lines))
	}

	halted := false
	for idx := start; idx < len(lines); idx++ {
		// The cap is checked before dispatch so the last saved state still
		// points at the first unprocessed line.
		if !imp.opts.DryRun && imp.opts.MaxAdd > 0 && r.stats.Added >= imp.opts.MaxAdd {
			imp.log.Info("add cap reached, halting", "max_add", imp.opts.MaxAdd)
			halted = true
			break
		}

		imp.saveState(idx + 1)
		r.stats.Processed++

		if err := imp.processLine(ctx, r, idx+1, lines[idx]); err != nil {
			return imp.result(r, halted), err
		}

		if err := imp.sleep(ctx); err != nil {
			return imp.result(r, halted), err
		}
	}

	if !halted {
		imp.saveState(len(lines))
	}
	return imp.result(r, halted), nil
}

func (imp *Importer) result(r *run, halted bool) *Result {
	return &Result{Stats: r.stats, Report: r.report, Halted: halted}
}

// processLine runs one line through the state machine. A non-nil error means
// the whole run stops. Panics are caught and treated like any other per-line
// error, subject to the issue policy.
func (imp *Importer) processLine(ctx context.Context, r *run, lineNo int, term string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			imp.log.Error("line processing panicked", "line", lineNo, "term", term, "panic", rec)
			imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeError, Detail: fmt.Sprint(rec)})
			if !imp.continueOnIssue(r, fmt.Sprintf("Unexpected failure for %q: %v.", term, rec)) {
				err = ErrAborted
			}
		}
	}()

	_, desiredYear, _ := listfile.ParseTitleYear(term)

	results, lookupErr := imp.catalog.Lookup(ctx, term)
	if lookupErr != nil {
		if errors.Is(lookupErr, radarr.ErrUnauthorized) || errors.Is(lookupErr, context.Canceled) {
			return lookupErr
		}
		imp.log.Warn("lookup failed", "line", lineNo, "term", term, "error", lookupErr)
		imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeMiss, Detail: lookupErr.Error()})
		if !imp.continueOnIssue(r, fmt.Sprintf("Lookup failed for %q.", term)) {
			return ErrAborted
		}
		return nil
	}
	if len(results) == 0 {
		imp.log.Warn("no match", "line", lineNo, "term", term)
		imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeMiss})
		if !imp.continueOnIssue(r, fmt.Sprintf("No match for %q.", term)) {
			return ErrAborted
		}
		return nil
	}

	selected, resolveErr := imp.resolver.Resolve(&r.sess, term, results, desiredYear)
	if resolveErr != nil {
		return resolveErr
	}
	if selected == nil {
		imp.log.Info("skipped", "line", lineNo, "term", term)
		imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeSkipped, Detail: "no selection"})
		if !imp.continueOnIssue(r, fmt.Sprintf("Skipped %q.", term)) {
			return ErrAborted
		}
		return nil
	}

	if selected.TMDBID == 0 {
		imp.log.Warn("lookup result missing tmdb id", "line", lineNo, "term", term)
		imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeError, Detail: ErrMissingTMDBID.Error()})
		if !imp.continueOnIssue(r, fmt.Sprintf("Lookup result for %q is missing its TMDB ID.", term)) {
			return ErrAborted
		}
		return nil
	}

	if r.index.Contains(selected.TMDBID) {
		imp.log.Info("duplicate", "line", lineNo, "title", selected.Title, "year", selected.Year, "tmdb_id", selected.TMDBID)
		imp.record(ctx, r, lineRecordFor(lineNo, term, OutcomeDuplicate, selected))
		return nil
	}

	if imp.opts.DryRun {
		if r.report != nil {
			r.report.add(selected.Title, selected.Year, selected.TMDBID)
		}
		r.index.Add(selected.TMDBID)
		imp.log.Info("would add", "line", lineNo, "title", selected.Title, "year", selected.Year, "tmdb_id", selected.TMDBID)
		imp.record(ctx, r, lineRecordFor(lineNo, term, OutcomeWouldAdd, selected))
		return nil
	}

	if imp.opts.ConfirmEach && !imp.confirmAdd(r, selected) {
		imp.log.Info("skipped by operator", "line", lineNo, "title", selected.Title, "year", selected.Year)
		imp.record(ctx, r, lineRecordFor(lineNo, term, OutcomeSkipped, selected))
		return nil
	}

	if addErr := imp.catalog.Add(ctx, *selected, imp.opts.Add); addErr != nil {
		if errors.Is(addErr, radarr.ErrUnauthorized) || errors.Is(addErr, context.Canceled) {
			return addErr
		}
		imp.log.Warn("add failed", "line", lineNo, "term", term, "error", addErr)
		imp.record(ctx, r, LineRecord{Line: lineNo, Term: term, Outcome: OutcomeError, TMDBID: selected.TMDBID, Title: selected.Title, Year: selected.Year, Detail: addErr.Error()})
		if !imp.continueOnIssue(r, fmt.Sprintf("API error for %q.", term)) {
			return ErrAborted
		}
		return nil
	}

	r.index.Add(selected.TMDBID)
	imp.log.Info("added", "line", lineNo, "title", selected.Title, "year", selected.Year, "tmdb_id", selected.TMDBID)
	imp.record(ctx, r, lineRecordFor(lineNo, term, OutcomeAdded, selected))
	return nil
}

func lineRecordFor(lineNo int, term string, outcome Outcome, m *radarr.Movie) LineRecord {
	return LineRecord{
		Line:    lineNo,
		Term:    term,
		Outcome: outcome,
		TMDBID:  m.TMDBID,
		Title:   m.Title,
		Year:    m.Year,
	}
}

func (imp *Importer) confirmAdd(r *run, m *radarr.Movie) bool {
	if imp.opts.AutoAdd || r.sess.alwaysAdd {
		return true
	}
	switch imp.prompter.ConfirmAdd(m.Title, m.Year, m.TMDBID) {
	case DecisionAlways:
		r.sess.alwaysAdd = true
		return true
	case DecisionYes:
		if imp.opts.YesAll {
			r.sess.alwaysAdd = true
		}
		return true
	default:
		return false
	}
}

func (imp *Importer) continueOnIssue(r *run, reason string) bool {
	return continueOnIssue(imp.prompter, imp.opts.Interactive, &r.sess, reason)
}

func (imp *Importer) record(ctx context.Context, r *run, rec LineRecord) {
	r.stats.count(rec.Outcome)
	if imp.recorder == nil {
		return
	}
	if err := imp.recorder.RecordLine(ctx, rec); err != nil {
		imp.log.Warn("record line outcome", "line", rec.Line, "error", err)
	}
}

func (imp *Importer) saveState(nextIndex int) {
	if err := imp.state.Save(nextIndex); err != nil {
		imp.log.Warn("save resume state", "next_index", nextIndex, "error", err)
	}
}

// sleep applies the fixed inter-line delay, honoring cancellation.
func (imp *Importer) sleep(ctx context.Context) error {
	if imp.opts.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(imp.opts.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

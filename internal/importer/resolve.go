package importer

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vmunix/arrimport/internal/listfile"
	"github.com/vmunix/arrimport/internal/radarr"
)

// Resolver selects a single candidate from lookup results, applying the
// year-matching and disambiguation policy. It keeps no state of its own;
// sticky flags live on the run session.
type Resolver struct {
	StrictYear  bool
	Interactive bool
	MaxChoices  int

	prompter Prompter
	log      *slog.Logger
}

// NewResolver creates a Resolver with the given policy.
func NewResolver(strictYear, interactive bool, maxChoices int, prompter Prompter, log *slog.Logger) *Resolver {
	if maxChoices < 1 {
		maxChoices = 1
	}
	return &Resolver{
		StrictYear:  strictYear,
		Interactive: interactive,
		MaxChoices:  maxChoices,
		prompter:    prompter,
		log:         log,
	}
}

var titleFold = cases.Fold()

func titlesEqual(a, b string) bool {
	return titleFold.String(strings.TrimSpace(a)) == titleFold.String(strings.TrimSpace(b))
}

// Resolve picks one candidate for term, or returns (nil, nil) for skip and
// ErrAborted when the operator quits. desiredYear 0 means no year was given.
//
// Order: strict-year filter (year miss falls back to the full set under the
// issue policy), then the singleton exact-title shortcut (only when no year
// was given), then interactive disambiguation, then first-in-list. Ties are
// never scored; the service's relevance order is trusted.
func (r *Resolver) Resolve(sess *session, term string, candidates []radarr.Movie, desiredYear int) (*radarr.Movie, error) {
	filtered := candidates

	if desiredYear != 0 && r.StrictYear {
		var yearMatches []radarr.Movie
		for _, m := range candidates {
			if m.Year == desiredYear {
				yearMatches = append(yearMatches, m)
			}
		}
		if len(yearMatches) > 0 {
			filtered = yearMatches
		} else {
			if r.log != nil {
				r.log.Warn("no result matches requested year", "term", term, "year", desiredYear)
			}
			reason := fmt.Sprintf("No lookup results match year %d for %q.", desiredYear, term)
			if !continueOnIssue(r.prompter, r.Interactive, sess, reason) {
				return nil, ErrAborted
			}
			filtered = candidates
		}
	}

	if len(filtered) == 0 {
		return nil, nil
	}

	// Singleton exact-title shortcut. Deliberately skipped whenever a year
	// was given, even if the exact match is also year-correct.
	titleOnly, _, _ := listfile.ParseTitleYear(term)
	if desiredYear == 0 {
		exactIdx := -1
		for i, m := range filtered {
			if titlesEqual(m.Title, titleOnly) {
				if exactIdx >= 0 {
					exactIdx = -1
					break
				}
				exactIdx = i
			}
		}
		if exactIdx >= 0 {
			return &filtered[exactIdx], nil
		}
	}

	if r.Interactive && !sess.alwaysContinue && len(filtered) > 1 {
		shown := filtered
		if len(shown) > r.MaxChoices {
			shown = shown[:r.MaxChoices]
		}
		choice := r.prompter.Choose(term, shown)
		switch choice.Kind {
		case ChoiceSkip:
			return nil, nil
		case ChoiceAbort:
			return nil, ErrAborted
		case ChoiceAlways:
			sess.alwaysContinue = true
			return &shown[0], nil
		case ChoicePick:
			if choice.Index < 0 || choice.Index >= len(shown) {
				return nil, nil
			}
			return &shown[choice.Index], nil
		}
	}

	return &filtered[0], nil
}

// continueOnIssue applies the 3-way issue policy: continue, abort, or
// always-continue for the rest of the run.
func continueOnIssue(p Prompter, interactive bool, sess *session, reason string) bool {
	if !interactive || sess.alwaysContinue {
		return true
	}
	switch p.Continue(reason) {
	case DecisionAlways:
		sess.alwaysContinue = true
		return true
	case DecisionYes:
		return true
	default:
		return false
	}
}

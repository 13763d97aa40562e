package importer

import "github.com/vmunix/arrimport/internal/radarr"

// Decision is a yes/no answer with an optional "always" that locks the
// answer to yes for the rest of the run.
type Decision int

const (
	DecisionNo Decision = iota
	DecisionYes
	DecisionAlways
)

// ChoiceKind classifies a disambiguation response.
type ChoiceKind int

const (
	// ChoiceSkip drops the line without selecting a candidate. This is the
	// default response.
	ChoiceSkip ChoiceKind = iota
	// ChoicePick selects the candidate at Index.
	ChoicePick
	// ChoiceAbort stops the whole run.
	ChoiceAbort
	// ChoiceAlways picks the first candidate now and auto-picks first for
	// every later ambiguous line.
	ChoiceAlways
)

// Choice is the operator's answer to a disambiguation prompt.
type Choice struct {
	Kind  ChoiceKind
	Index int
}

// Prompter asks the operator questions during a run. Implementations that
// are not attached to a terminal should answer Continue with DecisionYes,
// ConfirmAdd with DecisionYes, and Choose with ChoiceSkip.
type Prompter interface {
	// Continue asks whether to keep going after an issue (miss, year miss,
	// error).
	Continue(reason string) Decision

	// ConfirmAdd asks before adding a resolved movie.
	ConfirmAdd(title string, year int, tmdbID int64) Decision

	// Choose presents ambiguous lookup candidates for term, in the order
	// received.
	Choose(term string, candidates []radarr.Movie) Choice
}

// session carries the sticky per-run flags the prompts can set. Passed by
// reference into the resolution engine and confirmation step.
type session struct {
	alwaysContinue bool // issue prompts answered "always": stop asking, auto-continue
	alwaysAdd      bool // add confirmations answered "always": stop asking, add everything
}

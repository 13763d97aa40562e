package importer

import "errors"

var (
	// ErrAborted indicates the operator chose to stop the run. Resume state
	// stays at the last dispatched line, so the abort point is resumable.
	ErrAborted = errors.New("aborted by user")

	// ErrMissingTMDBID indicates a lookup result has no TMDB ID and cannot
	// be added or duplicate-checked.
	ErrMissingTMDBID = errors.New("lookup result missing tmdb id")
)

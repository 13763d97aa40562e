package importer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/vmunix/arrimport/internal/radarr"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePrompter plays back scripted answers. Exhausted scripts fall back to
// the default responses (continue, confirm, skip).
type fakePrompter struct {
	continueAnswers []Decision
	confirmAnswers  []Decision
	chooseAnswers   []Choice

	continueCalls int
	confirmCalls  int
	chooseCalls   int
	lastShown     []radarr.Movie
}

func (p *fakePrompter) Continue(reason string) Decision {
	p.continueCalls++
	if len(p.continueAnswers) == 0 {
		return DecisionYes
	}
	ans := p.continueAnswers[0]
	p.continueAnswers = p.continueAnswers[1:]
	return ans
}

func (p *fakePrompter) ConfirmAdd(title string, year int, tmdbID int64) Decision {
	p.confirmCalls++
	if len(p.confirmAnswers) == 0 {
		return DecisionYes
	}
	ans := p.confirmAnswers[0]
	p.confirmAnswers = p.confirmAnswers[1:]
	return ans
}

func (p *fakePrompter) Choose(term string, candidates []radarr.Movie) Choice {
	p.chooseCalls++
	p.lastShown = candidates
	if len(p.chooseAnswers) == 0 {
		return Choice{Kind: ChoiceSkip}
	}
	ans := p.chooseAnswers[0]
	p.chooseAnswers = p.chooseAnswers[1:]
	return ans
}

// fakeRecorder collects line records.
type fakeRecorder struct {
	records []LineRecord
}

func (r *fakeRecorder) RecordLine(_ context.Context, rec LineRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func testStateFile(t *testing.T) *StateFile {
	t.Helper()
	return NewStateFile(filepath.Join(t.TempDir(), "state.json"))
}

func movie(id int64, title string, year int) radarr.Movie {
	return radarr.Movie{TMDBID: id, Title: title, Year: year}
}

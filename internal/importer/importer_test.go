package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/arrimport/internal/importer/mocks"
	"github.com/vmunix/arrimport/internal/listfile"
	"github.com/vmunix/arrimport/internal/radarr"
)

func newTestImporter(catalog Catalog, p *fakePrompter, state *StateFile, rec Recorder, opts Options) *Importer {
	resolver := NewResolver(true, opts.Interactive, 8, p, testLogger())
	return New(catalog, resolver, p, state, rec, opts, testLogger())
}

func seeded(ids ...int64) map[int64]struct{} {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestRun_EndToEndScenario(t *testing.T) {
	// Input file with a comment and a blank line; the same title appears
	// twice so the second occurrence must classify as a duplicate.
	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte("Alien (1979)\n#comment\n\nAlien (1979)\n"), 0o644))
	lines, err := listfile.Read(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil).
		Times(2)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	state := testStateFile(t)
	rec := &fakeRecorder{}
	imp := newTestImporter(catalog, &fakePrompter{}, state, rec, Options{Interactive: true})

	result, err := imp.Run(context.Background(), lines, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Processed)
	assert.Equal(t, 1, result.Stats.Added)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.False(t, result.Halted)
	assert.Equal(t, 2, state.Load(), "completed run saves the total count")

	require.Len(t, rec.records, 2)
	assert.Equal(t, OutcomeAdded, rec.records[0].Outcome)
	assert.Equal(t, int64(348), rec.records[0].TMDBID)
	assert.Equal(t, OutcomeDuplicate, rec.records[1].Outcome)
}

func TestRun_SeededDuplicateNeverAdds(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(348), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil)

	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.Zero(t, result.Stats.Added)
}

func TestRun_DryRunSimulatesAndDedupes(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil).
		Times(2)
	// No Add expectation: simulation must never write.

	report := &Report{}
	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{DryRun: true, Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)", "Alien (1979)"}, report)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.WouldAdd)
	assert.Equal(t, 1, result.Stats.Duplicates, "simulated add feeds the duplicate index")
	require.Len(t, report.Entries(), 1)
	assert.Equal(t, ReportEntry{Title: "Alien", Year: 1979, TMDBID: 348}, report.Entries()[0])
}

func TestRun_MaxAddHaltsBeforeDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Heat (1995)").
		Return([]radarr.Movie{movie(949, "Heat", 1995)}, nil)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	state := testStateFile(t)
	imp := newTestImporter(catalog, &fakePrompter{}, state, nil, Options{Interactive: true, MaxAdd: 2})

	lines := []string{"Alien (1979)", "Heat (1995)", "Dune (2021)"}
	result, err := imp.Run(context.Background(), lines, nil)
	require.NoError(t, err)

	assert.True(t, result.Halted)
	assert.Equal(t, 2, result.Stats.Added)
	assert.Equal(t, 2, result.Stats.Processed)
	assert.Equal(t, 2, state.Load(), "resume state points at the first unprocessed line")
}

func TestRun_ResumeSkipsHandledLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	// Line 0 was handled by the interrupted run; only lines 1 and 2 are looked up.
	catalog.EXPECT().Lookup(gomock.Any(), "Heat (1995)").
		Return([]radarr.Movie{movie(949, "Heat", 1995)}, nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Dune (2021)").
		Return([]radarr.Movie{movie(438631, "Dune", 2021)}, nil)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	state := testStateFile(t)
	require.NoError(t, state.Save(1))

	imp := newTestImporter(catalog, &fakePrompter{}, state, nil, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)", "Heat (1995)", "Dune (2021)"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.Processed)
	assert.Equal(t, 2, result.Stats.Added)
	assert.Equal(t, 3, state.Load())
}

func TestRun_EmptyLookupIsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Unknown Movie").Return(nil, nil)

	p := &fakePrompter{}
	imp := newTestImporter(catalog, p, testStateFile(t), nil, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Unknown Movie"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Misses)
	assert.Equal(t, 1, p.continueCalls)
}

func TestRun_TransportErrorIsMissUnderPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return(nil, errors.New("connection refused"))
	catalog.EXPECT().Lookup(gomock.Any(), "Heat (1995)").
		Return([]radarr.Movie{movie(949, "Heat", 1995)}, nil)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)", "Heat (1995)"}, nil)
	require.NoError(t, err, "transport errors are per-line, not fatal")
	assert.Equal(t, 1, result.Stats.Misses)
	assert.Equal(t, 1, result.Stats.Added)
}

func TestRun_MissAbortStopsRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Unknown Movie").Return(nil, nil)

	p := &fakePrompter{continueAnswers: []Decision{DecisionNo}}
	state := testStateFile(t)
	imp := newTestImporter(catalog, p, state, nil, Options{Interactive: true})

	result, err := imp.Run(context.Background(), []string{"Unknown Movie", "Alien (1979)"}, nil)
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, 1, result.Stats.Misses)
	assert.Equal(t, 1, state.Load(), "abort point stays resumable")
}

func TestRun_UnauthorizedIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").Return(nil, radarr.ErrUnauthorized)

	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{Interactive: true})
	_, err := imp.Run(context.Background(), []string{"Alien (1979)", "Heat (1995)"}, nil)
	assert.ErrorIs(t, err, radarr.ErrUnauthorized)
}

func TestRun_MissingTMDBIDIsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Obscurity").
		Return([]radarr.Movie{{Title: "Obscurity", Year: 2003}}, nil)

	rec := &fakeRecorder{}
	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), rec, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Obscurity"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Errors)
	require.Len(t, rec.records, 1)
	assert.Equal(t, OutcomeError, rec.records[0].Outcome)
}

func TestRun_ConfirmDeclinedCountsAsSkip(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil)
	// No Add expectation.

	p := &fakePrompter{confirmAnswers: []Decision{DecisionNo}}
	imp := newTestImporter(catalog, p, testStateFile(t), nil, Options{Interactive: true, ConfirmEach: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Skipped)
}

func TestRun_YesAllStopsAskingAfterFirstConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Heat (1995)").
		Return([]radarr.Movie{movie(949, "Heat", 1995)}, nil)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	p := &fakePrompter{confirmAnswers: []Decision{DecisionYes}}
	imp := newTestImporter(catalog, p, testStateFile(t), nil, Options{Interactive: true, ConfirmEach: true, YesAll: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)", "Heat (1995)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Stats.Added)
	assert.Equal(t, 1, p.confirmCalls)
}

func TestRun_AddFailureIsErrorUnderPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(seeded(), nil)
	catalog.EXPECT().Lookup(gomock.Any(), "Alien (1979)").
		Return([]radarr.Movie{movie(348, "Alien", 1979)}, nil)
	catalog.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&radarr.StatusError{Code: 400, Body: "bad request"})

	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{Interactive: true})
	result, err := imp.Run(context.Background(), []string{"Alien (1979)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.Errors)
	assert.Zero(t, result.Stats.Added)
}

func TestRun_SeedFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockCatalog(ctrl)
	catalog.EXPECT().ExistingTMDBIDs(gomock.Any()).Return(nil, errors.New("boom"))

	imp := newTestImporter(catalog, &fakePrompter{}, testStateFile(t), nil, Options{Interactive: true})
	_, err := imp.Run(context.Background(), []string{"Alien (1979)"}, nil)
	assert.Error(t, err)
}

func TestReport_Write(t *testing.T) {
	report := &Report{
		ServerURL:   "http://127.0.0.1:7878",
		RootFolder:  "/movies",
		ProfileID:   4,
		Monitored:   true,
		SearchOnAdd: true,
	}
	report.add("Alien", 1979, 348)

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, report.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alien (1979) | tmdb:348")
	assert.Contains(t, string(data), "Root folder: /movies")
}

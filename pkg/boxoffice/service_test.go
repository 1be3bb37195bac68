package boxoffice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice/mocks"
	"github.com/Sumatoshi-tech/boxoffice/pkg/kobis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/snapshot"
)

const (
	testWeek      = "20240325"
	testSunday    = "20240331"
	testShowRange = "20240325~20240331"
	directorX     = "X"
	directorY     = "Y"
)

func rawTitle(name, audience, openDate string, directors ...string) movie.RawTitle {
	refs := make([]movie.PersonRef, 0, len(directors))
	for _, d := range directors {
		refs = append(refs, movie.PersonRef{PeopleNm: d})
	}

	return movie.RawTitle{
		Entry: movie.BoxOfficeEntry{MovieNm: name, AudiCnt: movie.LooseString(audience), RankOldAndNew: "OLD"},
		Detail: &movie.MovieInfo{
			MovieNm:   name,
			OpenDt:    openDate,
			Directors: refs,
			Genres:    []movie.GenreRef{{GenreNm: "드라마"}},
			Audits:    []movie.AuditRef{{WatchGradeNm: "15세이상관람가"}},
		},
	}
}

func weekSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Version:   snapshot.Version,
		RunID:     "snap-1",
		FetchedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Week:      testWeek,
		ShowRange: testShowRange,
		Titles: []movie.RawTitle{
			rawTitle("A", "100", "20240101", directorX),
			rawTitle("B", "300", "20240201", directorX),
			rawTitle("C", "50", "20240325", directorY),
			{Entry: movie.BoxOfficeEntry{MovieNm: "no detail"}},
		},
	}
}

func TestAnalyze_EntityContribution(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	svc := boxoffice.NewService(source)

	report, err := svc.Analyze(context.Background(), boxoffice.Request{
		Variants: []analysis.Variant{analysis.VariantEntityContribution},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "snap-1", report.SnapshotID)
	assert.Equal(t, testWeek, report.Week)
	assert.Equal(t, testShowRange, report.ShowRange)
	assert.Equal(t, 3, report.Summary.Titles)
	assert.Equal(t, 1, report.Summary.Dropped)
	assert.Equal(t, int64(450), report.Summary.MarketTotal)

	require.Len(t, report.Results, 1)

	groups := report.Results[0].Groups
	require.Len(t, groups, 2)
	assert.Equal(t, directorX, groups[0].Key)
	assert.Equal(t, int64(400), groups[0].TotalAudience)
	assert.Equal(t, 1, groups[0].Rank)
	assert.Equal(t, directorY, groups[1].Key)
	assert.Equal(t, 2, groups[1].Rank)
}

func TestAnalyze_ReferenceDateDefaultsToWeekSunday(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	report, err := boxoffice.NewService(source).Analyze(context.Background(), boxoffice.Request{
		Variants: []analysis.Variant{analysis.VariantTitleAge},
	})
	require.NoError(t, err)

	result := report.Results[0]
	assert.Equal(t, testSunday, result.ReferenceDate)
	require.NotEmpty(t, result.Groups)

	keys := make([]string, 0, len(result.Groups))
	for _, g := range result.Groups {
		keys = append(keys, g.Key)
	}

	assert.Contains(t, keys, analysis.CohortNewRelease)
	assert.Contains(t, keys, analysis.CohortVeteran)
}

func TestAnalyze_TopN(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil).Times(2)

	svc := boxoffice.NewService(source, boxoffice.WithTopN(1))
	req := boxoffice.Request{Variants: []analysis.Variant{analysis.VariantEntityContribution}}

	report, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Results[0].Groups, 1)

	req.TopN = -1

	report, err = svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Results[0].Groups, 2)
}

func TestAnalyze_AllVariantsByDefault(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	report, err := boxoffice.NewService(source).Analyze(context.Background(), boxoffice.Request{})
	require.NoError(t, err)

	require.Len(t, report.Results, len(analysis.Variants()))

	for i, variant := range analysis.Variants() {
		assert.Equal(t, variant, report.Results[i].Variant)
	}
}

func TestAnalyze_SourceError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, snapshot.ErrNoSnapshot)

	_, err := boxoffice.NewService(source).Analyze(context.Background(), boxoffice.Request{})
	require.ErrorIs(t, err, snapshot.ErrNoSnapshot)
}

func TestAnalyze_NilSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := boxoffice.NewService(source).Analyze(context.Background(), boxoffice.Request{})
	require.ErrorIs(t, err, boxoffice.ErrNilSnapshot)
}

func TestAnalyze_PassesWeekToSource(t *testing.T) {
	t.Parallel()

	week := time.Date(2024, 3, 27, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), week).Return(weekSnapshot(), nil)

	_, err := boxoffice.NewService(source).Analyze(context.Background(), boxoffice.Request{Week: week})
	require.NoError(t, err)
}

func TestSnapshotSource_LatestForWeek(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(afero.NewMemMapFs(), "/snapshots")

	older := weekSnapshot()
	older.RunID = "older"
	older.FetchedAt = older.FetchedAt.Add(-time.Hour)

	for _, snap := range []*snapshot.Snapshot{older, weekSnapshot()} {
		_, err := store.Save(snap)
		require.NoError(t, err)
	}

	snap, err := boxoffice.NewSnapshotSource(store, "").Fetch(context.Background(),
		time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "snap-1", snap.RunID)

	_, err = boxoffice.NewSnapshotSource(store, "").Fetch(context.Background(),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, snapshot.ErrNoSnapshot)
}

func TestSnapshotSource_PinnedPath(t *testing.T) {
	t.Parallel()

	store := snapshot.NewStore(afero.NewMemMapFs(), "/snapshots")

	p, err := store.Save(weekSnapshot())
	require.NoError(t, err)

	snap, err := boxoffice.NewSnapshotSource(store, p).Fetch(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, snap.Titles, 4)
}

func TestLiveSource_FetchesAndSaves(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockWeekFetcher(ctrl)

	monday := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
	fetcher.EXPECT().Titles(gomock.Any(), monday).Return(kobis.Week{
		ShowRange: testShowRange,
		Titles:    weekSnapshot().Titles,
	}, nil)

	store := snapshot.NewStore(afero.NewMemMapFs(), "/snapshots", snapshot.WithCompression(true))
	source := boxoffice.NewLiveSource(fetcher, store, nil)

	snap, err := source.Fetch(context.Background(), time.Date(2024, 3, 29, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, testWeek, snap.Week)
	assert.NotEmpty(t, snap.RunID)

	latest, err := store.Latest(testWeek)
	require.NoError(t, err)

	loaded, err := store.Load(latest)
	require.NoError(t, err)
	assert.Equal(t, snap.RunID, loaded.RunID)
	assert.Len(t, loaded.Titles, 4)
}

func TestLiveSource_FetchError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockWeekFetcher(ctrl)

	upstream := errors.New("boom")
	fetcher.EXPECT().Titles(gomock.Any(), gomock.Any()).Return(kobis.Week{}, upstream)

	_, err := boxoffice.NewLiveSource(fetcher, nil, nil).Fetch(context.Background(), time.Time{})
	require.ErrorIs(t, err, upstream)
}

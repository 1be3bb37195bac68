package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/api"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice/mocks"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/snapshot"
)

const (
	testWeek     = "20240325"
	testDirector = "X"
)

func weekSnapshot() *snapshot.Snapshot {
	title := func(name, audience string) movie.RawTitle {
		return movie.RawTitle{
			Entry: movie.BoxOfficeEntry{MovieNm: name, AudiCnt: movie.LooseString(audience)},
			Detail: &movie.MovieInfo{
				MovieNm:   name,
				OpenDt:    "20240101",
				Directors: []movie.PersonRef{{PeopleNm: testDirector}},
				Genres:    []movie.GenreRef{{GenreNm: "드라마"}},
			},
		}
	}

	return &snapshot.Snapshot{
		Version:   snapshot.Version,
		RunID:     "snap-1",
		FetchedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Week:      testWeek,
		ShowRange: "20240325~20240331",
		Titles:    []movie.RawTitle{title("A", "100"), title("B", "300")},
	}
}

func newServer(t *testing.T, source boxoffice.Source, opts ...api.Option) http.Handler {
	t.Helper()

	svc := boxoffice.NewService(source)
	defaults := api.Defaults{Family: movie.FamilyDirector, SortKey: analysis.SortTotal, TopN: 10}

	return api.NewServer(svc, defaults, opts...).Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := get(t, newServer(t, mocks.NewMockSource(ctrl)), api.PathHealth)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalysis_EntityContribution(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), time.Date(2024, 3, 27, 0, 0, 0, 0, time.UTC)).Return(weekSnapshot(), nil)

	rec := get(t, newServer(t, source), "/api/v1/analyses/entity-contribution?week=2024-03-27&sort=efficiency")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Week   string          `json:"week"`
		Result analysis.Result `json:"result"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, testWeek, body.Week)
	assert.Equal(t, analysis.SortEfficiency, body.Result.SortKey)
	require.Len(t, body.Result.Groups, 1)
	assert.Equal(t, testDirector, body.Result.Groups[0].Key)
	assert.Equal(t, int64(400), body.Result.Groups[0].TotalAudience)
	assert.InDelta(t, 200.0, body.Result.Groups[0].DerivedIndex, 1e-9)
}

func TestAnalysis_UnknownVariant(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := get(t, newServer(t, mocks.NewMockSource(ctrl)), "/api/v1/analyses/box-office-poetry")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown analysis variant")
}

func TestAnalysis_BadParams(t *testing.T) {
	t.Parallel()

	targets := []string{
		"/api/v1/analyses/genre-trend?week=yesterday",
		"/api/v1/analyses/genre-trend?family=actor",
		"/api/v1/analyses/genre-trend?sort=loudness",
		"/api/v1/analyses/genre-trend?top=many",
	}

	for _, target := range targets {
		ctrl := gomock.NewController(t)
		rec := get(t, newServer(t, mocks.NewMockSource(ctrl)), target)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestAnalysis_NoSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, snapshot.ErrNoSnapshot)

	rec := get(t, newServer(t, source), "/api/v1/analyses/genre-trend")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReport_SelectedVariants(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	rec := get(t, newServer(t, source), "/api/v1/report?variants=genre-trend,rating-impact")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep boxoffice.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))

	require.Len(t, rep.Results, 2)
	assert.Equal(t, analysis.VariantGenreTrend, rep.Results[0].Variant)
	assert.Equal(t, analysis.VariantRatingImpact, rep.Results[1].Variant)
}

func TestReport_HTML(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	rec := get(t, newServer(t, source), "/api/v1/report?format=html")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "<html")
}

func TestReport_BadVariantList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rec := get(t, newServer(t, mocks.NewMockSource(ctrl)), "/api/v1/report?variants=genre-trend,nope")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("boxoffice_requests_total 1\n"))
	})

	withMetrics := newServer(t, mocks.NewMockSource(ctrl), api.WithMetricsHandler(metrics))
	assert.Contains(t, get(t, withMetrics, api.PathMetrics).Body.String(), "boxoffice_requests_total")

	without := newServer(t, mocks.NewMockSource(ctrl))
	assert.Equal(t, http.StatusNotFound, get(t, without, api.PathMetrics).Code)
}

func TestSpansUseRouteTemplate(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSource(ctrl)
	source.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(weekSnapshot(), nil)

	h := newServer(t, source, api.WithTracer(tp.Tracer("test")))
	require.Equal(t, http.StatusOK, get(t, h, "/api/v1/analyses/rating-impact").Code)

	names := make([]string, 0)
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}

	assert.Contains(t, names, "GET "+api.PathAnalysis)
}

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/plotpage"
	"github.com/Sumatoshi-tech/boxoffice/pkg/report/terminal"
)

const (
	testShowRange = "20240325~20240331"
	testDirector  = "김성수"
	testTitle     = "서울의 봄"
)

func sampleReport() *boxoffice.Report {
	records := []movie.Record{
		{
			Name: testTitle, AudienceCount: 1234567, OpenDate: "20231122", WatchGrade: "12세이상관람가",
			Genres:        []string{"드라마"},
			RankChange:    -2,
			DailyAudience: map[int]int64{movie.Monday: 100, movie.Saturday: 300},
			Directors:     []movie.DirectorCredit{{Person: testDirector, Title: testTitle, Audience: 1234567, OpenDate: "20231122"}},
		},
		{
			Name: "신작", AudienceCount: 1000, OpenDate: "20240327", WatchGrade: "전체관람가",
			Genres:     []string{"애니메이션"},
			RankChange: movie.NewEntryRankChange,
			Directors:  []movie.DirectorCredit{{Person: "X", Title: "신작", Audience: 1000, OpenDate: "20240327"}},
		},
	}

	params := analysis.Params{ReferenceDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}

	return &boxoffice.Report{
		RunID:     "run-1",
		Week:      "20240325",
		ShowRange: testShowRange,
		Summary:   analysis.Summarize(records, 1),
		Results:   analysis.ComputeAll(records, params),
	}
}

func noColor() report.Options {
	return report.Options{Terminal: terminal.Config{Width: 100, NoColor: true}, Theme: plotpage.ThemeLight}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"text", "JSON", " yaml ", "yml", "html"} {
		_, err := report.ParseFormat(name)
		require.NoError(t, err, name)
	}

	_, err := report.ParseFormat("csv")
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatText, noColor()))

	out := buf.String()
	assert.Contains(t, out, "BOX OFFICE")
	assert.Contains(t, out, testShowRange)
	assert.Contains(t, out, "1,235,567")
	assert.Contains(t, out, testDirector)
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "Genre Trend")
	assert.Contains(t, out, "WEEKEND SHARE")
	assert.NotContains(t, out, "\x1b[")
}

func TestRender_TextEmptyResult(t *testing.T) {
	t.Parallel()

	rep := &boxoffice.Report{
		Week:    "20240325",
		Results: []analysis.Result{analysis.Aggregate(nil, analysis.VariantGenreTrend, analysis.Params{})},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rep, report.FormatText, noColor()))
	assert.Contains(t, buf.String(), "No qualifying rows.")
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatJSON, noColor()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded["run_id"])

	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, len(analysis.Variants()))
}

func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatYAML, noColor()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, testShowRange, decoded["show_range"])
}

func TestRender_HTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, sampleReport(), report.FormatHTML, noColor()))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Box Office "+testShowRange)
}

func TestBuildPage_ChartCount(t *testing.T) {
	t.Parallel()

	page := report.BuildPage(sampleReport(), plotpage.ThemeDark)

	// Six bar charts plus share rings for genre and title-age.
	assert.Equal(t, len(analysis.Variants())+2, page.Len())
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := report.Render(&buf, sampleReport(), report.Format("pdf"), noColor())
	require.ErrorIs(t, err, report.ErrUnknownFormat)
}

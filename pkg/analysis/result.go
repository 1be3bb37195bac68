package analysis

import (
	"time"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
	"github.com/Sumatoshi-tech/boxoffice/pkg/rank"
)

// Params are the per-call analysis parameters.
type Params struct {
	// Family selects the credit list for entity contribution. Defaults to
	// directors.
	Family movie.Family
	// SortKey selects the entity contribution ranking value. Defaults to total.
	SortKey SortKey
	// ReferenceDate anchors title-age cohorts. The zero value disables the
	// title-age variant.
	ReferenceDate time.Time
}

func (p Params) withDefaults() Params {
	if p.Family == "" {
		p.Family = movie.FamilyDirector
	}

	if p.SortKey == "" {
		p.SortKey = SortTotal
	}

	return p
}

// Member is one title contributing to a group.
type Member struct {
	Title    string `json:"title"     yaml:"title"`
	OpenDate string `json:"open_date" yaml:"open_date"`
	Audience int64  `json:"audience"  yaml:"audience"`
}

// Group is one aggregated entity, genre, rating or cohort.
type Group struct {
	Key                string   `json:"key"                        yaml:"key"`
	TotalAudience      int64    `json:"total_audience"             yaml:"total_audience"`
	MemberCount        int      `json:"member_count"               yaml:"member_count"`
	NonZeroMemberCount int      `json:"non_zero_member_count"      yaml:"non_zero_member_count"`
	Members            []Member `json:"members"                    yaml:"members"`
	Share              float64  `json:"share,omitempty"            yaml:"share,omitempty"`
	AverageAudience    float64  `json:"average_audience"           yaml:"average_audience"`
	EfficiencyIndex    float64  `json:"efficiency_index,omitempty" yaml:"efficiency_index,omitempty"`
	StabilityIndex     float64  `json:"stability_index,omitempty"  yaml:"stability_index,omitempty"`
	DerivedIndex       float64  `json:"derived_index"              yaml:"derived_index"`
	Rank               int      `json:"rank"                       yaml:"rank"`
}

// TitleRow is one per-title row of an ungrouped variant.
type TitleRow struct {
	Title           string  `json:"title"                      yaml:"title"`
	OpenDate        string  `json:"open_date"                  yaml:"open_date"`
	Audience        int64   `json:"audience"                   yaml:"audience"`
	RankChange      int     `json:"rank_change"                yaml:"rank_change"`
	AbsRankChange   int     `json:"abs_rank_change"            yaml:"abs_rank_change"`
	WeekdayAudience int64   `json:"weekday_audience,omitempty" yaml:"weekday_audience,omitempty"`
	WeekendAudience int64   `json:"weekend_audience,omitempty" yaml:"weekend_audience,omitempty"`
	WeeklyAudience  int64   `json:"weekly_audience,omitempty"  yaml:"weekly_audience,omitempty"`
	DependencyRatio float64 `json:"dependency_ratio,omitempty" yaml:"dependency_ratio,omitempty"`
	DerivedIndex    float64 `json:"derived_index"              yaml:"derived_index"`
	Rank            int     `json:"rank"                       yaml:"rank"`
}

// Result is the ranked output of one variant. Exactly one of Groups or Titles
// is populated depending on the variant; both are always non-nil.
type Result struct {
	Variant       Variant      `json:"variant"                  yaml:"variant"`
	DisplayName   string       `json:"display_name"             yaml:"display_name"`
	Family        movie.Family `json:"family,omitempty"         yaml:"family,omitempty"`
	SortKey       SortKey      `json:"sort_key,omitempty"       yaml:"sort_key,omitempty"`
	ReferenceDate string       `json:"reference_date,omitempty" yaml:"reference_date,omitempty"`
	MarketTotal   int64        `json:"market_total"             yaml:"market_total"`
	Groups        []Group      `json:"groups"                   yaml:"groups"`
	Titles        []TitleRow   `json:"titles"                   yaml:"titles"`
}

func newResult(variant Variant, records []movie.Record) Result {
	return Result{
		Variant:     variant,
		MarketTotal: movie.MarketTotal(records),
		Groups:      []Group{},
		Titles:      []TitleRow{},
	}
}

// Len returns the number of ranked rows.
func (r Result) Len() int {
	return len(r.Groups) + len(r.Titles)
}

// Empty reports whether nothing qualified.
func (r Result) Empty() bool {
	return r.Len() == 0
}

// Top returns a view holding the first n rows. Ranks assigned over the full
// set are kept. A non-positive n keeps every row.
func (r Result) Top(n int) Result {
	r.Groups = rank.Top(r.Groups, n)
	r.Titles = rank.Top(r.Titles, n)

	return r
}

func groupRank(g *Group, n int) { g.Rank = n }
func titleRank(t *TitleRow, n int) { t.Rank = n }

func groupIndex(g Group) float64 { return g.DerivedIndex }
func titleIndex(t TitleRow) float64 { return t.DerivedIndex }

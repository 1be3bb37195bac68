// Package movie holds the box-office data model: raw KOBIS payloads, the
// canonical per-title Record, the normalizer between them, and the relation
// extractor that flattens director and company credits.
package movie

// Sentinel values.
const (
	// UnknownOpenDate marks a title whose open date is missing or unparseable.
	UnknownOpenDate = "99991231"

	// Unrated marks a title without a rating certificate.
	Unrated = "unrated"

	// NewEntryRankChange is the rank-change magnitude of a title that was not
	// on the previous list.
	NewEntryRankChange = 9999

	// OpenDateLayout is the canonical open date layout.
	OpenDateLayout = "20060102"
)

// Weekday indices of Record.DailyAudience.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday

	DaysPerWeek = 7
)

// Record is the canonical view of one title for one analysis run.
type Record struct {
	Code          string           `json:"code,omitempty"           yaml:"code,omitempty"`
	Name          string           `json:"name"                     yaml:"name"`
	AudienceCount int64            `json:"audience_count"           yaml:"audience_count"`
	OpenDate      string           `json:"open_date"                yaml:"open_date"`
	WatchGrade    string           `json:"watch_grade"              yaml:"watch_grade"`
	Genres        []string         `json:"genres"                   yaml:"genres"`
	Rank          int              `json:"rank"                     yaml:"rank"`
	RankChange    int              `json:"rank_change"              yaml:"rank_change"`
	DailyAudience map[int]int64    `json:"daily_audience,omitempty" yaml:"daily_audience,omitempty"`
	Directors     []DirectorCredit `json:"directors"                yaml:"directors"`
	Companies     []CompanyCredit  `json:"companies"                yaml:"companies"`
	Distributors  []CompanyCredit  `json:"distributors"             yaml:"distributors"`
}

// HasKnownOpenDate reports whether the open date is a real calendar date.
func (r Record) HasKnownOpenDate() bool {
	return r.OpenDate != UnknownOpenDate && r.OpenDate != ""
}

// DirectorCredit is a director credit carrying the parent title's audience and
// open date at normalization time.
type DirectorCredit struct {
	Person   string `json:"person"    yaml:"person"`
	Title    string `json:"title"     yaml:"title"`
	Audience int64  `json:"audience"  yaml:"audience"`
	OpenDate string `json:"open_date" yaml:"open_date"`
}

// CompanyCredit is a producer or distributor credit carrying the parent
// title's audience and open date at normalization time.
type CompanyCredit struct {
	Company  string `json:"company"   yaml:"company"`
	Title    string `json:"title"     yaml:"title"`
	Audience int64  `json:"audience"  yaml:"audience"`
	Role     string `json:"role"      yaml:"role"`
	OpenDate string `json:"open_date" yaml:"open_date"`
}

// MarketTotal sums the audience of every record.
func MarketTotal(records []Record) int64 {
	var total int64

	for _, rec := range records {
		total += rec.AudienceCount
	}

	return total
}

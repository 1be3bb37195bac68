package movie

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// AudienceBasis selects which list column becomes Record.AudienceCount.
type AudienceBasis string

// Audience bases.
const (
	BasisWeekly     AudienceBasis = "weekly"
	BasisCumulative AudienceBasis = "cumulative"
)

// rankOldAndNewNew is the KOBIS marker for a title entering the list.
const rankOldAndNewNew = "NEW"

// RoleKeywords are the substrings that classify a company credit.
type RoleKeywords struct {
	Producer    []string `mapstructure:"producer"`
	Distributor []string `mapstructure:"distributor"`
}

// DefaultRoleKeywords covers the KOBIS Korean part names and English labels.
func DefaultRoleKeywords() RoleKeywords {
	return RoleKeywords{
		Producer:    []string{"제작", "producer", "production"},
		Distributor: []string{"배급", "distributor", "distribution"},
	}
}

// Normalizer turns raw KOBIS titles into canonical records.
type Normalizer struct {
	basis       AudienceBasis
	producer    []string
	distributor []string
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithAudienceBasis selects weekly or cumulative attendance.
func WithAudienceBasis(basis AudienceBasis) NormalizerOption {
	return func(n *Normalizer) {
		n.basis = basis
	}
}

// WithRoleKeywords replaces the company role keywords.
func WithRoleKeywords(keywords RoleKeywords) NormalizerOption {
	return func(n *Normalizer) {
		n.producer = foldAll(keywords.Producer)
		n.distributor = foldAll(keywords.Distributor)
	}
}

// NewNormalizer creates a Normalizer using weekly attendance and the default
// role keywords unless overridden.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	defaults := DefaultRoleKeywords()

	n := &Normalizer{
		basis:       BasisWeekly,
		producer:    foldAll(defaults.Producer),
		distributor: foldAll(defaults.Distributor),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// NormalizeAll normalizes every raw title, returning the records in input
// order and the number of titles dropped for lacking a detail payload or name.
func (n *Normalizer) NormalizeAll(raws []RawTitle) (records []Record, dropped int) {
	records = make([]Record, 0, len(raws))

	for _, raw := range raws {
		rec, ok := n.Normalize(raw)
		if !ok {
			dropped++

			continue
		}

		records = append(records, rec)
	}

	return records, dropped
}

// Normalize converts one raw title. It returns false when the title has no
// detail payload or no name; such titles never enter aggregation.
func (n *Normalizer) Normalize(raw RawTitle) (Record, bool) {
	detail := raw.Detail
	if detail == nil {
		return Record{}, false
	}

	name := strings.TrimSpace(detail.MovieNm)
	if name == "" {
		name = strings.TrimSpace(raw.Entry.MovieNm)
	}

	if name == "" {
		return Record{}, false
	}

	audience := n.audience(raw.Entry)

	openDate := ParseOpenDate(detail.OpenDt)
	if openDate == UnknownOpenDate {
		openDate = ParseOpenDate(raw.Entry.OpenDt)
	}

	companies, distributors := n.companyCredits(detail.Companys, name, audience, openDate)

	code := detail.MovieCd
	if code == "" {
		code = raw.Entry.MovieCd
	}

	return Record{
		Code:          code,
		Name:          name,
		AudienceCount: audience,
		OpenDate:      openDate,
		WatchGrade:    watchGrade(detail.Audits),
		Genres:        genres(detail.Genres),
		Rank:          parseInt(raw.Entry.Rank.String()),
		RankChange:    ParseRankChange(raw.Entry.RankInten.String(), raw.Entry.RankOldAndNew),
		DailyAudience: dailyAudience(raw.Daily),
		Directors:     directorCredits(detail.Directors, name, audience, openDate),
		Companies:     companies,
		Distributors:  distributors,
	}, true
}

func (n *Normalizer) audience(entry BoxOfficeEntry) int64 {
	if n.basis == BasisCumulative {
		return ParseAudience(entry.AudiAcc.String())
	}

	return ParseAudience(entry.AudiCnt.String())
}

func (n *Normalizer) companyCredits(
	refs []CompanyRef, title string, audience int64, openDate string,
) (companies, distributors []CompanyCredit) {
	companies = make([]CompanyCredit, 0, len(refs))
	distributors = make([]CompanyCredit, 0, len(refs))

	for _, ref := range refs {
		companyName := strings.TrimSpace(ref.CompanyNm)
		if companyName == "" {
			continue
		}

		role := fold(ref.CompanyPartNm)
		isProducer := containsAny(role, n.producer)
		isDistributor := containsAny(role, n.distributor)

		if !isProducer && !isDistributor {
			continue
		}

		credit := CompanyCredit{
			Company:  companyName,
			Title:    title,
			Audience: audience,
			Role:     ref.CompanyPartNm,
			OpenDate: openDate,
		}

		companies = append(companies, credit)

		if isDistributor {
			distributors = append(distributors, credit)
		}
	}

	return companies, distributors
}

func directorCredits(refs []PersonRef, title string, audience int64, openDate string) []DirectorCredit {
	credits := make([]DirectorCredit, 0, len(refs))

	for _, ref := range refs {
		person := strings.TrimSpace(ref.PeopleNm)
		if person == "" {
			continue
		}

		credits = append(credits, DirectorCredit{
			Person:   person,
			Title:    title,
			Audience: audience,
			OpenDate: openDate,
		})
	}

	return credits
}

func genres(refs []GenreRef) []string {
	out := make([]string, 0, len(refs))

	for _, ref := range refs {
		name := strings.TrimSpace(ref.GenreNm)
		if name != "" {
			out = append(out, name)
		}
	}

	return out
}

func watchGrade(audits []AuditRef) string {
	if len(audits) == 0 {
		return Unrated
	}

	grade := strings.TrimSpace(audits[0].WatchGradeNm)
	if grade == "" {
		return Unrated
	}

	return grade
}

func dailyAudience(daily map[int]LooseString) map[int]int64 {
	if len(daily) == 0 {
		return nil
	}

	out := make(map[int]int64, len(daily))

	for day, raw := range daily {
		if day < Monday || day > Sunday {
			continue
		}

		out[day] = ParseAudience(raw.String())
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// ParseAudience parses a comma-grouped attendance string. Any parse failure
// or negative value yields 0.
func ParseAudience(raw string) int64 {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || value < 0 {
		return 0
	}

	return value
}

// ParseOpenDate normalizes "YYYY-MM-DD" or "YYYYMMDD" to "YYYYMMDD".
// Missing or invalid dates yield UnknownOpenDate.
func ParseOpenDate(raw string) string {
	cleaned := strings.NewReplacer("-", "", ".", "", "/", "").Replace(strings.TrimSpace(raw))
	if len(cleaned) != len(OpenDateLayout) {
		return UnknownOpenDate
	}

	_, err := time.Parse(OpenDateLayout, cleaned)
	if err != nil {
		return UnknownOpenDate
	}

	return cleaned
}

// ParseRankChange returns the signed rank change, or NewEntryRankChange when
// the title is new to the list. Unparseable values yield 0. Magnitudes at or
// beyond NewEntryRankChange collapse to the signed sentinel.
func ParseRankChange(inten, oldAndNew string) int {
	if strings.EqualFold(strings.TrimSpace(oldAndNew), rankOldAndNewNew) {
		return NewEntryRankChange
	}

	change := parseInt(inten)

	switch {
	case change >= NewEntryRankChange:
		return NewEntryRankChange
	case change <= -NewEntryRankChange:
		return -NewEntryRankChange
	default:
		return change
	}
}

func parseInt(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}

	return value
}

// fold applies NFC composition and Unicode case folding.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func foldAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		folded := fold(strings.TrimSpace(kw))
		if folded != "" {
			out = append(out, folded)
		}
	}

	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}

	return false
}

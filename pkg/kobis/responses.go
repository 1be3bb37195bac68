package kobis

import (
	"fmt"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

// FaultInfo is the error envelope KOBIS returns, with HTTP 200, for a bad key,
// a malformed date, or an unknown movie code.
type FaultInfo struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// Error implements error.
func (f *FaultInfo) Error() string {
	return fmt.Sprintf("kobis fault %s: %s", f.ErrorCode, f.Message)
}

type boxOfficeResponse struct {
	FaultInfo       *FaultInfo      `json:"faultInfo,omitempty"`
	BoxOfficeResult boxOfficeResult `json:"boxOfficeResult"`
}

type boxOfficeResult struct {
	BoxofficeType       string                 `json:"boxofficeType"`
	ShowRange           string                 `json:"showRange"`
	YearWeekTime        string                 `json:"yearWeekTime,omitempty"`
	WeeklyBoxOfficeList []movie.BoxOfficeEntry `json:"weeklyBoxOfficeList,omitempty"`
	DailyBoxOfficeList  []movie.BoxOfficeEntry `json:"dailyBoxOfficeList,omitempty"`
}

type movieInfoResponse struct {
	FaultInfo       *FaultInfo      `json:"faultInfo,omitempty"`
	MovieInfoResult movieInfoResult `json:"movieInfoResult"`
}

type movieInfoResult struct {
	MovieInfo movie.MovieInfo `json:"movieInfo"`
	Source    string          `json:"source"`
}

// List is one box-office list: its show range and entries in rank order.
type List struct {
	Type      string
	ShowRange string
	YearWeek  string
	Entries   []movie.BoxOfficeEntry
}

// Week is the full payload of one weekly fetch.
type Week struct {
	ShowRange string
	YearWeek  string
	Titles    []movie.RawTitle

	// DetailFailures counts titles left without a detail payload.
	DetailFailures int
}

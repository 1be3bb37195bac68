package movie

import (
	"bytes"
	"encoding/json"
)

// LooseString is a KOBIS field that arrives as a JSON string most of the time
// but may be a bare number or null in hand-edited snapshots.
type LooseString string

// UnmarshalJSON accepts a JSON string, number, or null.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""

		return nil
	}

	if trimmed[0] == '"' {
		var str string

		err := json.Unmarshal(trimmed, &str)
		if err != nil {
			return err
		}

		*s = LooseString(str)

		return nil
	}

	*s = LooseString(trimmed)

	return nil
}

// String returns the raw text.
func (s LooseString) String() string { return string(s) }

// BoxOfficeEntry is one row of a KOBIS weekly or daily box-office list.
type BoxOfficeEntry struct {
	Rank          LooseString `json:"rank"                    yaml:"rank"`
	RankInten     LooseString `json:"rankInten,omitempty"     yaml:"rankInten,omitempty"`
	RankOldAndNew string      `json:"rankOldAndNew,omitempty" yaml:"rankOldAndNew,omitempty"`
	MovieCd       string      `json:"movieCd,omitempty"       yaml:"movieCd,omitempty"`
	MovieNm       string      `json:"movieNm"                 yaml:"movieNm"`
	OpenDt        string      `json:"openDt,omitempty"        yaml:"openDt,omitempty"`
	AudiCnt       LooseString `json:"audiCnt,omitempty"       yaml:"audiCnt,omitempty"`
	AudiAcc       LooseString `json:"audiAcc,omitempty"       yaml:"audiAcc,omitempty"`
}

// GenreRef is a genre entry of a movie detail payload.
type GenreRef struct {
	GenreNm string `json:"genreNm" yaml:"genreNm"`
}

// PersonRef is a director entry of a movie detail payload.
type PersonRef struct {
	PeopleNm   string `json:"peopleNm"             yaml:"peopleNm"`
	PeopleNmEn string `json:"peopleNmEn,omitempty" yaml:"peopleNmEn,omitempty"`
}

// CompanyRef is a company credit of a movie detail payload.
type CompanyRef struct {
	CompanyCd     string `json:"companyCd,omitempty"   yaml:"companyCd,omitempty"`
	CompanyNm     string `json:"companyNm"             yaml:"companyNm"`
	CompanyNmEn   string `json:"companyNmEn,omitempty" yaml:"companyNmEn,omitempty"`
	CompanyPartNm string `json:"companyPartNm"         yaml:"companyPartNm"`
}

// AuditRef is a rating certificate of a movie detail payload.
type AuditRef struct {
	AuditNo      string `json:"auditNo,omitempty" yaml:"auditNo,omitempty"`
	WatchGradeNm string `json:"watchGradeNm"      yaml:"watchGradeNm"`
}

// MovieInfo is the KOBIS movie detail payload (searchMovieInfo).
type MovieInfo struct {
	MovieCd   string       `json:"movieCd,omitempty"   yaml:"movieCd,omitempty"`
	MovieNm   string       `json:"movieNm,omitempty"   yaml:"movieNm,omitempty"`
	MovieNmEn string       `json:"movieNmEn,omitempty" yaml:"movieNmEn,omitempty"`
	OpenDt    string       `json:"openDt,omitempty"    yaml:"openDt,omitempty"`
	ShowTm    string       `json:"showTm,omitempty"    yaml:"showTm,omitempty"`
	Genres    []GenreRef   `json:"genres,omitempty"    yaml:"genres,omitempty"`
	Directors []PersonRef  `json:"directors,omitempty" yaml:"directors,omitempty"`
	Companys  []CompanyRef `json:"companys,omitempty"  yaml:"companys,omitempty"`
	Audits    []AuditRef   `json:"audits,omitempty"    yaml:"audits,omitempty"`
}

// RawTitle is one title as delivered by the fetch collaborator: the list entry,
// the detail payload (nil when it could not be fetched), and per-weekday
// attendance strings keyed 0=Monday..6=Sunday.
type RawTitle struct {
	Entry  BoxOfficeEntry      `json:"entry"            yaml:"entry"`
	Detail *MovieInfo          `json:"detail,omitempty" yaml:"detail,omitempty"`
	Daily  map[int]LooseString `json:"daily,omitempty"  yaml:"daily,omitempty"`
}

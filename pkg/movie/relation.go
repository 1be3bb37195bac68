package movie

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownFamily is returned for an unrecognized relation family name.
var ErrUnknownFamily = errors.New("unknown relation family")

// Family selects which one-to-many credit list is flattened.
type Family string

// Relation families.
const (
	FamilyDirector    Family = "director"
	FamilyCompany     Family = "company"
	FamilyDistributor Family = "distributor"
)

// Families lists every supported family in display order.
func Families() []Family {
	return []Family{FamilyDirector, FamilyCompany, FamilyDistributor}
}

// ParseFamily parses a family name, case-insensitively.
func ParseFamily(name string) (Family, error) {
	family := Family(strings.ToLower(strings.TrimSpace(name)))

	if slices.Contains(Families(), family) {
		return family, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Relation is one flattened credit: an entity credited on a title.
// Role is empty for directors.
type Relation struct {
	Entity   string `json:"entity"         yaml:"entity"`
	Title    string `json:"title"          yaml:"title"`
	Audience int64  `json:"audience"       yaml:"audience"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
	OpenDate string `json:"open_date"      yaml:"open_date"`
}

// Relations flattens the chosen credit family of every record, in record
// order then credit order. Entities are not deduplicated or normalized: the
// same name on two titles yields two relations, and two spellings of one
// name stay distinct.
func Relations(records []Record, family Family) []Relation {
	out := make([]Relation, 0, len(records))

	for _, rec := range records {
		switch family {
		case FamilyDirector:
			for _, d := range rec.Directors {
				out = append(out, Relation{
					Entity:   d.Person,
					Title:    d.Title,
					Audience: d.Audience,
					OpenDate: d.OpenDate,
				})
			}
		case FamilyCompany:
			out = appendCompanyRelations(out, rec.Companies)
		case FamilyDistributor:
			out = appendCompanyRelations(out, rec.Distributors)
		}
	}

	return out
}

func appendCompanyRelations(out []Relation, credits []CompanyCredit) []Relation {
	for _, c := range credits {
		out = append(out, Relation{
			Entity:   c.Company,
			Title:    c.Title,
			Audience: c.Audience,
			Role:     c.Role,
			OpenDate: c.OpenDate,
		})
	}

	return out
}

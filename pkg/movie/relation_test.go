package movie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

func relationRecords() []movie.Record {
	return []movie.Record{
		{
			Name:          "A",
			AudienceCount: 100,
			OpenDate:      "20240101",
			Directors: []movie.DirectorCredit{
				{Person: "X", Title: "A", Audience: 100, OpenDate: "20240101"},
				{Person: "Y", Title: "A", Audience: 100, OpenDate: "20240101"},
			},
			Companies: []movie.CompanyCredit{
				{Company: "P", Title: "A", Audience: 100, Role: "제작사", OpenDate: "20240101"},
				{Company: "D", Title: "A", Audience: 100, Role: "배급사", OpenDate: "20240101"},
			},
			Distributors: []movie.CompanyCredit{
				{Company: "D", Title: "A", Audience: 100, Role: "배급사", OpenDate: "20240101"},
			},
		},
		{
			Name:          "B",
			AudienceCount: 0,
			OpenDate:      "20240201",
			Directors: []movie.DirectorCredit{
				{Person: "X", Title: "B", Audience: 0, OpenDate: "20240201"},
			},
		},
	}
}

func TestRelations_DirectorsNotDeduplicated(t *testing.T) {
	t.Parallel()

	rels := movie.Relations(relationRecords(), movie.FamilyDirector)

	require.Len(t, rels, 3)
	assert.Equal(t, movie.Relation{Entity: "X", Title: "A", Audience: 100, OpenDate: "20240101"}, rels[0])
	assert.Equal(t, "Y", rels[1].Entity)
	assert.Equal(t, movie.Relation{Entity: "X", Title: "B", Audience: 0, OpenDate: "20240201"}, rels[2])
}

func TestRelations_CompaniesCarryRole(t *testing.T) {
	t.Parallel()

	rels := movie.Relations(relationRecords(), movie.FamilyCompany)

	require.Len(t, rels, 2)
	assert.Equal(t, "제작사", rels[0].Role)
	assert.Equal(t, "배급사", rels[1].Role)
}

func TestRelations_Distributors(t *testing.T) {
	t.Parallel()

	rels := movie.Relations(relationRecords(), movie.FamilyDistributor)

	require.Len(t, rels, 1)
	assert.Equal(t, "D", rels[0].Entity)
}

func TestRelations_EmptyInput(t *testing.T) {
	t.Parallel()

	rels := movie.Relations(nil, movie.FamilyDirector)

	assert.NotNil(t, rels)
	assert.Empty(t, rels)
}

func TestRelations_NameVariantsStayDistinct(t *testing.T) {
	t.Parallel()

	records := []movie.Record{
		{Directors: []movie.DirectorCredit{{Person: "Bong Joon-ho", Title: "A"}}},
		{Directors: []movie.DirectorCredit{{Person: "Bong Joon Ho", Title: "B"}}},
	}

	rels := movie.Relations(records, movie.FamilyDirector)

	require.Len(t, rels, 2)
	assert.NotEqual(t, rels[0].Entity, rels[1].Entity)
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	family, err := movie.ParseFamily(" Director ")
	require.NoError(t, err)
	assert.Equal(t, movie.FamilyDirector, family)

	_, err = movie.ParseFamily("actor")
	require.ErrorIs(t, err, movie.ErrUnknownFamily)

	assert.Len(t, movie.Families(), 3)
}

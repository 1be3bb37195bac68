package analysis

import (
	"cmp"
	"slices"
)

// accumulator groups contributions by key, remembering first-seen key order
// so the ranker's stable sort breaks ties by iteration order.
type accumulator struct {
	order  []string
	groups map[string]*Group
}

func newAccumulator() *accumulator {
	return &accumulator{groups: make(map[string]*Group)}
}

func (a *accumulator) getOrCreate(key string) *Group {
	g := a.groups[key]
	if g == nil {
		g = &Group{Key: key, Members: []Member{}}
		a.groups[key] = g
		a.order = append(a.order, key)
	}

	return g
}

// add counts one contribution. Only positive audiences reach the total.
func (a *accumulator) add(key string, audience int64, title, openDate string) {
	g := a.getOrCreate(key)

	g.MemberCount++
	g.Members = append(g.Members, Member{Title: title, OpenDate: openDate, Audience: audience})

	if audience > 0 {
		g.TotalAudience += audience
		g.NonZeroMemberCount++
	}
}

// collect returns the groups with a positive total in first-seen order, with
// every member list sorted by open date descending.
func (a *accumulator) collect() []Group {
	out := make([]Group, 0, len(a.order))

	for _, key := range a.order {
		g := a.groups[key]
		if g.TotalAudience <= 0 {
			continue
		}

		slices.SortStableFunc(g.Members, func(x, y Member) int {
			return cmp.Compare(y.OpenDate, x.OpenDate)
		})

		out = append(out, *g)
	}

	return out
}

// Package rank orders aggregated rows by a numeric key and assigns 1-based
// ranks. Sorting is stable: rows with equal keys keep their input order.
package rank

import (
	"cmp"
	"slices"
)

// Order is a sort direction.
type Order int

// Sort directions.
const (
	Descending Order = iota
	Ascending
)

// Key extracts the numeric sort key of a row.
type Key[T any] func(T) float64

// Setter stores a 1-based rank on a row.
type Setter[T any] func(row *T, rank int)

// Sort returns a stably sorted copy of rows. The input slice is not modified.
func Sort[T any](rows []T, key Key[T], order Order) []T {
	sorted := slices.Clone(rows)
	if sorted == nil {
		sorted = []T{}
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if order == Descending {
			return -c
		}

		return c
	})

	return sorted
}

// Assign numbers rows 1..len(rows) in their current order.
func Assign[T any](rows []T, set Setter[T]) {
	for i := range rows {
		set(&rows[i], i+1)
	}
}

// Rank sorts a copy of rows and assigns ranks over the full set.
func Rank[T any](rows []T, key Key[T], order Order, set Setter[T]) []T {
	sorted := Sort(rows, key, order)
	Assign(sorted, set)

	return sorted
}

// Top returns the first n rows. A non-positive n or one larger than the set
// returns every row. Ranks already assigned are left untouched.
func Top[T any](rows []T, n int) []T {
	if n <= 0 || n >= len(rows) {
		return rows
	}

	return rows[:n]
}

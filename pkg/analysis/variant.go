// Package analysis is the aggregation engine: six group-by-and-reduce
// breakdowns over normalized box-office records, each ranked
// deterministically.
//
// Every computation is a pure function of its records and parameters. Empty
// input or an input where nothing qualifies yields an empty result, never an
// error.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Parameter errors.
var (
	ErrUnknownVariant = errors.New("unknown analysis variant")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// Variant names one aggregation rule.
type Variant string

// Analysis variants.
const (
	VariantEntityContribution Variant = "entity-contribution"
	VariantGenreTrend         Variant = "genre-trend"
	VariantRatingImpact       Variant = "rating-impact"
	VariantTitleAge           Variant = "title-age"
	VariantRankStability      Variant = "rank-stability"
	VariantWeekendDependency  Variant = "weekend-dependency"
)

// Variants lists every variant in display order.
func Variants() []Variant {
	return []Variant{
		VariantEntityContribution,
		VariantGenreTrend,
		VariantRatingImpact,
		VariantTitleAge,
		VariantRankStability,
		VariantWeekendDependency,
	}
}

// ParseVariant parses a variant name, case-insensitively.
func ParseVariant(name string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(name)))

	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}

	return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownVariant, name,
		strings.Join(defaultRegistry.Names(), ", "))
}

// Grouped reports whether the variant produces groups rather than per-title
// rows.
func (v Variant) Grouped() bool {
	return v != VariantRankStability && v != VariantWeekendDependency
}

// SortKey selects the entity contribution ranking value.
type SortKey string

// Entity contribution sort keys.
const (
	// SortTotal ranks by absolute audience contribution.
	SortTotal SortKey = "total"
	// SortEfficiency ranks by average audience per title with a non-zero audience.
	SortEfficiency SortKey = "efficiency"
	// SortStability ranks by average audience per title times hit rate.
	SortStability SortKey = "stability"
)

// SortKeys lists every sort key.
func SortKeys() []SortKey {
	return []SortKey{SortTotal, SortEfficiency, SortStability}
}

// ParseSortKey parses a sort key name, case-insensitively.
func ParseSortKey(name string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(name)))

	if slices.Contains(SortKeys(), key) {
		return key, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, name)
}

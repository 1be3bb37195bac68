package stats

// percent scales a ratio to a percentage.
const percent = 100.0

// SafeShare returns part as a percentage of whole, or 0 when whole is not
// positive.
func SafeShare(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}

	return part / whole * percent
}

// Average returns total/count, or 0 when count is not positive.
func Average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}

	return total / float64(count)
}

// StabilityIndex rewards scale and consistency together: the average total
// per member multiplied by the fraction of members with a non-zero value.
func StabilityIndex(total float64, memberCount, nonZeroCount int) float64 {
	hitRate := SafeShare(float64(nonZeroCount), float64(memberCount)) / percent

	return Average(total, memberCount) * hitRate
}

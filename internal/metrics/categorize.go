package metrics

import "math"

// Categorize classifies a single glucose value into a range bucket.
// Boundary values are inclusive toward in-range: a reading exactly at
// t.High is in range, and a reading exactly at t.VeryHigh is high (not
// very high) in five-category mode.
func Categorize(value float64, t Thresholds, mode CategoryMode) Category {
	if mode == FiveCategories {
		switch {
		case value < t.VeryLow:
			return CategoryVeryLow
		case value < t.Low:
			return CategoryLow
		case value <= t.High:
			return CategoryInRange
		case value <= t.VeryHigh:
			return CategoryHigh
		default:
			return CategoryVeryHigh
		}
	}

	switch {
	case value < t.Low:
		return CategoryLow
	case value <= t.High:
		return CategoryInRange
	default:
		return CategoryHigh
	}
}

// Aggregate counts every reading exactly once into a RangeStats. An empty
// input yields all-zero counts with Total 0, never a nil result.
func Aggregate(readings []Reading, t Thresholds, mode CategoryMode) RangeStats {
	stats := RangeStats{Mode: mode}
	for _, r := range readings {
		switch Categorize(r.Value, t, mode) {
		case CategoryVeryLow:
			stats.VeryLow++
		case CategoryLow:
			stats.Low++
		case CategoryInRange:
			stats.InRange++
		case CategoryHigh:
			stats.High++
		case CategoryVeryHigh:
			stats.VeryHigh++
		}
		stats.Total++
	}
	return stats
}

// Percentage derives a one-decimal percentage from a count and a total.
// A zero total yields 0, never NaN or Inf.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

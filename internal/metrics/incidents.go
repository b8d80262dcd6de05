package metrics

import (
	"math"
	"sort"
)

// CountHighLowIncidents walks the readings in time order and counts entries
// into the alert buckets of the five-category model. Only transitions into
// a bucket from a different one increment a counter: staying high across
// many consecutive readings counts once, at entry. The first reading counts
// as an entry when it already sits in an alert bucket. A jump from veryHigh
// straight to low increments only the low counter.
func CountHighLowIncidents(readings []Reading, t Thresholds) HighLowIncidents {
	ordered := make([]Reading, len(readings))
	copy(ordered, readings)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	var incidents HighLowIncidents
	prev := Category(-1)
	for _, r := range ordered {
		cat := Categorize(r.Value, t, FiveCategories)
		if cat != prev {
			switch cat {
			case CategoryHigh:
				incidents.High++
			case CategoryLow:
				incidents.Low++
			case CategoryVeryHigh:
				incidents.VeryHigh++
			case CategoryVeryLow:
				incidents.VeryLow++
			}
		}
		prev = cat
	}
	return incidents
}

// CountUnicorns counts readings landing on a "perfect" value: within
// ±0.05 mmol/L of 5.0 mmol/L, or within ±0.5 mg/dL (converted to mmol/L) of
// 100 mg/dL. The two bands are independent checks; at the current constants
// they do not overlap, so a reading satisfies at most one.
func CountUnicorns(readings []Reading) int {
	mgdlTarget := UnicornTargetMgdl / MgdlPerMmol
	mgdlTolerance := UnicornToleranceMgdl / MgdlPerMmol

	count := 0
	for _, r := range readings {
		if math.Abs(r.Value-UnicornTargetMmol) <= UnicornToleranceMmol ||
			math.Abs(r.Value-mgdlTarget) <= mgdlTolerance {
			count++
		}
	}
	return count
}

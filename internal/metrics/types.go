// Package metrics computes clinical glycemic-control statistics over
// time-ordered glucose readings. All functions are pure: inputs are never
// mutated and results are freshly allocated on every call.
package metrics

import (
	"time"
)

// MgdlPerMmol converts mmol/L to mg/dL.
const MgdlPerMmol = 18.018

// CVTarget is the coefficient-of-variation threshold (in percent) at or
// below which glycemic control is considered stable.
const CVTarget = 36.0

// MinDaysForReliableHbA1c is the number of distinct days of data below which
// an estimated HbA1c should be flagged as unreliable.
const MinDaysForReliableHbA1c = 60

// Unicorn tolerance bands. A reading counts as a unicorn when it lands
// within UnicornToleranceMmol of UnicornTargetMmol, or within
// UnicornToleranceMgdl (expressed in mmol/L) of UnicornTargetMgdl converted
// to mmol/L. The two bands are checked independently.
const (
	UnicornTargetMmol    = 5.0
	UnicornToleranceMmol = 0.05
	UnicornTargetMgdl    = 100.0
	UnicornToleranceMgdl = 0.5
)

// Reading is a single glucose measurement in mmol/L.
type Reading struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Thresholds holds the four glucose boundaries, in mmol/L. Callers are
// trusted to supply VeryLow < Low <= High < VeryHigh.
type Thresholds struct {
	VeryLow  float64 `json:"veryLow"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	VeryHigh float64 `json:"veryHigh"`
}

// DefaultThresholds returns the consensus clinical boundaries
// (3.0 / 3.9 / 10.0 / 13.9 mmol/L).
func DefaultThresholds() Thresholds {
	return Thresholds{VeryLow: 3.0, Low: 3.9, High: 10.0, VeryHigh: 13.9}
}

// CategoryMode selects whether the very-low and very-high buckets are
// distinguished from low and high.
type CategoryMode int

const (
	ThreeCategories CategoryMode = 3
	FiveCategories  CategoryMode = 5
)

// Category is a closed range bucket. Using a fixed enum instead of
// string-keyed maps makes counting exhaustive at compile time.
type Category int

const (
	CategoryVeryLow Category = iota
	CategoryLow
	CategoryInRange
	CategoryHigh
	CategoryVeryHigh
)

func (c Category) String() string {
	switch c {
	case CategoryVeryLow:
		return "veryLow"
	case CategoryLow:
		return "low"
	case CategoryInRange:
		return "inRange"
	case CategoryHigh:
		return "high"
	case CategoryVeryHigh:
		return "veryHigh"
	}
	return "unknown"
}

// RangeStats holds per-category reading counts. Percentages are always
// derived on demand via Percentage, never stored.
type RangeStats struct {
	Mode     CategoryMode `json:"mode"`
	VeryLow  int          `json:"veryLow,omitempty"`
	Low      int          `json:"low"`
	InRange  int          `json:"inRange"`
	High     int          `json:"high"`
	VeryHigh int          `json:"veryHigh,omitempty"`
	Total    int          `json:"total"`
}

// DailyReport is the aggregate for a single calendar date.
type DailyReport struct {
	Date  string     `json:"date"` // YYYY-MM-DD
	Stats RangeStats `json:"stats"`
}

// DayOfWeekReport is the aggregate for one weekday, or for the synthetic
// "Workday" and "Weekend" partitions.
type DayOfWeekReport struct {
	Day   string     `json:"day"`
	Stats RangeStats `json:"stats"`
}

// WeeklyReport is the aggregate for one Monday-anchored week.
type WeeklyReport struct {
	Week  string     `json:"week"` // e.g. "Jan 2-8" or "Jan 30-Feb 5"
	Stats RangeStats `json:"stats"`
}

// WindowStats is the aggregate over a trailing window of Days calendar days.
type WindowStats struct {
	Days  int        `json:"days"`
	Stats RangeStats `json:"stats"`
}

// HourlyStats is the aggregate for one hour-of-day bucket (or a merged run
// of adjacent buckets).
type HourlyStats struct {
	Label string     `json:"label"` // "HH:00", or "HH:00-HH:59" when grouped
	Stats RangeStats `json:"stats"`
}

// QuartileStats holds linear-interpolated percentiles over sorted values.
type QuartileStats struct {
	Q25 float64 `json:"q25"`
	Q50 float64 `json:"q50"`
	Q75 float64 `json:"q75"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BGRIResult holds the Kovatchev risk indices. BGRI is always the exact sum
// of LBGI and HBGI.
type BGRIResult struct {
	LBGI float64 `json:"lbgi"`
	HBGI float64 `json:"hbgi"`
	BGRI float64 `json:"bgri"`
}

// FluxResult grades glycemic stability from the coefficient of variation.
type FluxResult struct {
	Grade       string  `json:"grade"` // A+, A, B, C, D, F
	Score       float64 `json:"score"` // CV%
	Description string  `json:"description"`
}

// HighLowIncidents counts excursions into alert buckets. These are
// transition counts: dwelling in a bucket across consecutive readings counts
// once, at entry.
type HighLowIncidents struct {
	High     int `json:"highCount"`
	Low      int `json:"lowCount"`
	VeryHigh int `json:"veryHighCount"`
	VeryLow  int `json:"veryLowCount"`
}

package metrics

import (
	"fmt"
	"time"
)

// TrailingWindowDays are the trailing-window sizes evaluated by
// TrailingWindows, largest first.
var TrailingWindowDays = []int{28, 14, 7, 3}

// TrailingWindows computes range aggregates over trailing windows of
// calendar days anchored at the date of the latest reading, or at the
// caller-supplied reference date when non-zero. A window size is emitted
// only when the data actually spans that many days; unsupported windows are
// omitted rather than zero-filled.
func TrailingWindows(readings []Reading, t Thresholds, mode CategoryMode, reference time.Time) []WindowStats {
	if len(readings) == 0 {
		return nil
	}

	first := readings[0].Time
	last := readings[0].Time
	for _, r := range readings[1:] {
		if r.Time.Before(first) {
			first = r.Time
		}
		if r.Time.After(last) {
			last = r.Time
		}
	}

	anchor := last
	if !reference.IsZero() {
		anchor = reference
	}
	anchorDate := dateOf(anchor)

	// Span in whole calendar days, inclusive of both endpoints.
	spanDays := int(anchorDate.Sub(dateOf(first)).Hours()/24) + 1

	var windows []WindowStats
	for _, days := range TrailingWindowDays {
		if spanDays < days {
			continue
		}
		cutoff := anchorDate.AddDate(0, 0, -(days - 1))
		var inWindow []Reading
		for _, r := range readings {
			d := dateOf(r.Time)
			if d.Before(cutoff) || d.After(anchorDate) {
				continue
			}
			inWindow = append(inWindow, r)
		}
		windows = append(windows, WindowStats{
			Days:  days,
			Stats: Aggregate(inWindow, t, mode),
		})
	}
	return windows
}

// HourlyBreakdown aggregates readings into hour-of-day buckets across all
// days combined. groupHours merges adjacent buckets into multi-hour bins
// when it divides 24 evenly; 0, 1, or a width that does not divide 24
// leaves the 24 per-hour buckets untouched. Ungrouped buckets
// are labeled "HH:00"; grouped buckets are labeled "HH:00-HH:59".
func HourlyBreakdown(readings []Reading, t Thresholds, mode CategoryMode, groupHours int) []HourlyStats {
	var hours [24][]Reading
	for _, r := range readings {
		h := r.Time.Hour()
		hours[h] = append(hours[h], r)
	}

	if groupHours <= 1 || 24%groupHours != 0 {
		result := make([]HourlyStats, 24)
		for h := 0; h < 24; h++ {
			result[h] = HourlyStats{
				Label: fmt.Sprintf("%02d:00", h),
				Stats: Aggregate(hours[h], t, mode),
			}
		}
		return result
	}

	result := make([]HourlyStats, 0, 24/groupHours)
	for start := 0; start < 24; start += groupHours {
		var merged []Reading
		for h := start; h < start+groupHours; h++ {
			merged = append(merged, hours[h]...)
		}
		result = append(result, HourlyStats{
			Label: fmt.Sprintf("%02d:00-%02d:59", start, start+groupHours-1),
			Stats: Aggregate(merged, t, mode),
		})
	}
	return result
}

// dateOf truncates a timestamp to midnight of its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

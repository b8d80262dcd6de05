package metrics

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// GroupByDate partitions readings by calendar date and aggregates each
// partition, returned in ascending chronological order. No reading is
// dropped or double-counted: partition totals sum to len(readings).
func GroupByDate(readings []Reading, t Thresholds, mode CategoryMode) []DailyReport {
	buckets := make(map[string][]Reading)
	for _, r := range readings {
		key := r.Time.Format(dateLayout)
		buckets[key] = append(buckets[key], r)
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	reports := make([]DailyReport, 0, len(dates))
	for _, d := range dates {
		reports = append(reports, DailyReport{
			Date:  d,
			Stats: Aggregate(buckets[d], t, mode),
		})
	}
	return reports
}

// weekdayOrder lists days Monday-first, matching how clinicians read weekly
// report grids.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// GroupByDayOfWeek partitions readings by weekday, Monday first, and appends
// two synthetic partitions: "Workday" (Mon-Fri union) and "Weekend"
// (Sat-Sun union). The synthetic partitions overlap the seven weekday ones
// and must not be summed with them.
func GroupByDayOfWeek(readings []Reading, t Thresholds, mode CategoryMode) []DayOfWeekReport {
	buckets := make(map[time.Weekday][]Reading)
	var workday, weekend []Reading
	for _, r := range readings {
		wd := r.Time.Weekday()
		buckets[wd] = append(buckets[wd], r)
		if wd == time.Saturday || wd == time.Sunday {
			weekend = append(weekend, r)
		} else {
			workday = append(workday, r)
		}
	}

	reports := make([]DayOfWeekReport, 0, len(weekdayOrder)+2)
	for _, wd := range weekdayOrder {
		reports = append(reports, DayOfWeekReport{
			Day:   wd.String(),
			Stats: Aggregate(buckets[wd], t, mode),
		})
	}
	reports = append(reports,
		DayOfWeekReport{Day: "Workday", Stats: Aggregate(workday, t, mode)},
		DayOfWeekReport{Day: "Weekend", Stats: Aggregate(weekend, t, mode)},
	)
	return reports
}

// GroupByWeek partitions readings into Monday-anchored weeks and aggregates
// each, returned ascending. Week labels read "Jan 2-8", or "Jan 30-Feb 5"
// when the week spans two calendar months.
func GroupByWeek(readings []Reading, t Thresholds, mode CategoryMode) []WeeklyReport {
	buckets := make(map[string][]Reading)
	for _, r := range readings {
		key := weekStart(r.Time).Format(dateLayout)
		buckets[key] = append(buckets[key], r)
	}

	starts := make([]string, 0, len(buckets))
	for s := range buckets {
		starts = append(starts, s)
	}
	sort.Strings(starts)

	reports := make([]WeeklyReport, 0, len(starts))
	for _, s := range starts {
		start, _ := time.Parse(dateLayout, s)
		reports = append(reports, WeeklyReport{
			Week:  weekLabel(start),
			Stats: Aggregate(buckets[s], t, mode),
		})
	}
	return reports
}

// weekStart snaps a timestamp to the Monday of its week, at midnight.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday -> 7
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}

func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d", start.Format("Jan"), start.Day(), end.Day())
	}
	return fmt.Sprintf("%s %d-%s %d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day())
}

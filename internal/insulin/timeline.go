package insulin

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// HourlyPoint is one hour of a daily insulin timeline.
type HourlyPoint struct {
	Hour  string  `json:"hour"`  // "HH:00"
	Basal float64 `json:"basal"` // average rate sampled in the hour
	Bolus float64 `json:"bolus"` // sum of discrete doses in the hour
	IOB   float64 `json:"iob"`   // active insulin at the start of the hour
}

// DailySummary totals one calendar date of dosing. Values are rounded to
// one decimal place when the summary is produced, never mid-calculation.
type DailySummary struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	BasalTotal   float64 `json:"basalTotal"`
	BolusTotal   float64 `json:"bolusTotal"`
	TotalInsulin float64 `json:"totalInsulin"`
}

// HourlyTimeline tabulates, for each of the 24 hours of date, the basal
// rate (averaged across readings in the hour, since basal entries sample a
// rate) and bolus total (summed, since bolus entries are discrete doses),
// plus the IOB evaluated at the start of the hour. All readings, including
// those from prior days, feed the IOB evaluation.
func HourlyTimeline(readings []Reading, date time.Time, durationHours float64) []HourlyPoint {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	points := make([]HourlyPoint, 24)
	for h := 0; h < 24; h++ {
		hourStart := day.Add(time.Duration(h) * time.Hour)
		hourEnd := hourStart.Add(time.Hour)

		var basalSum, bolusSum float64
		basalCount := 0
		for _, r := range readings {
			if r.Time.Before(hourStart) || !r.Time.Before(hourEnd) {
				continue
			}
			switch r.Type {
			case Basal:
				basalSum += r.Dose
				basalCount++
			case Bolus:
				bolusSum += r.Dose
			}
		}

		basal := 0.0
		if basalCount > 0 {
			basal = basalSum / float64(basalCount)
		}

		points[h] = HourlyPoint{
			Hour:  fmt.Sprintf("%02d:00", h),
			Basal: basal,
			Bolus: bolusSum,
			IOB:   IOB(readings, hourStart, durationHours),
		}
	}
	return points
}

// DailySummaries groups dosing events by calendar date, ascending, with
// basal, bolus and combined totals rounded to one decimal at emission.
func DailySummaries(readings []Reading) []DailySummary {
	type totals struct{ basal, bolus float64 }
	byDate := make(map[string]*totals)
	for _, r := range readings {
		key := r.Time.Format("2006-01-02")
		t, ok := byDate[key]
		if !ok {
			t = &totals{}
			byDate[key] = t
		}
		switch r.Type {
		case Basal:
			t.basal += r.Dose
		case Bolus:
			t.bolus += r.Dose
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summaries := make([]DailySummary, 0, len(dates))
	for _, d := range dates {
		t := byDate[d]
		summaries = append(summaries, DailySummary{
			Date:         d,
			BasalTotal:   round1(t.basal),
			BolusTotal:   round1(t.bolus),
			TotalInsulin: round1(t.basal + t.bolus),
		})
	}
	return summaries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

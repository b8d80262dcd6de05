package metrics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Summary bundles every metric family computed for a reading set. Nil
// pointer fields mean the underlying metric had insufficient data, per the
// engine's no-NaN policy.
type Summary struct {
	Overall       RangeStats        `json:"overall"`
	Windows       []WindowStats     `json:"windows,omitempty"`
	Hourly        []HourlyStats     `json:"hourly,omitempty"`
	Daily         []DailyReport     `json:"daily,omitempty"`
	ByDayOfWeek   []DayOfWeekReport `json:"byDayOfWeek,omitempty"`
	Weekly        []WeeklyReport    `json:"weekly,omitempty"`
	Average       *float64          `json:"averageGlucose,omitempty"`
	Median        *float64          `json:"medianGlucose,omitempty"`
	StdDev        *float64          `json:"standardDeviation,omitempty"`
	CV            *float64          `json:"cv,omitempty"`
	HbA1c         *float64          `json:"estimatedHbA1c,omitempty"`
	HbA1cIFCC     *float64          `json:"estimatedHbA1cMmolMol,omitempty"`
	DaysWithData  int               `json:"daysWithData"`
	HbA1cReliable bool              `json:"hbA1cReliable"`
	Quartiles     *QuartileStats    `json:"quartiles,omitempty"`
	Risk          *BGRIResult       `json:"riskIndices,omitempty"`
	JIndex        *float64          `json:"jIndex,omitempty"`
	Incidents     HighLowIncidents  `json:"incidents"`
	Unicorns      int               `json:"unicorns"`
	Flux          *FluxResult       `json:"flux,omitempty"`
	Wakeup        *float64          `json:"wakeupAverage,omitempty"`
	Bedtime       *float64          `json:"bedtimeAverage,omitempty"`
}

// Summarize runs every metric family over the readings. The families are
// independent pure computations, so they fan out across goroutines; a year
// of 5-minute CGM data (~105k points) stays interactive. The input slice is
// only ever read.
func Summarize(ctx context.Context, readings []Reading, t Thresholds, mode CategoryMode, reference time.Time) (*Summary, error) {
	s := &Summary{}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Overall = Aggregate(readings, t, mode)
		s.Windows = TrailingWindows(readings, t, mode, reference)
		s.Hourly = HourlyBreakdown(readings, t, mode, 1)
		return nil
	})
	g.Go(func() error {
		s.Daily = GroupByDate(readings, t, mode)
		s.ByDayOfWeek = GroupByDayOfWeek(readings, t, mode)
		s.Weekly = GroupByWeek(readings, t, mode)
		return nil
	})
	g.Go(func() error {
		s.Average = AverageGlucose(readings)
		s.Median = MedianGlucose(readings)
		s.StdDev = StandardDeviation(readings)
		s.CV = CV(readings)
		s.Quartiles = Quartiles(readings)
		s.JIndex = JIndex(readings)
		s.DaysWithData = DaysWithData(readings)
		if s.Average != nil {
			pct := EstimatedHbA1c(*s.Average)
			s.HbA1c = &pct
			ifcc := HbA1cToMmolMol(pct)
			s.HbA1cIFCC = &ifcc
		}
		s.HbA1cReliable = s.DaysWithData >= MinDaysForReliableHbA1c
		return nil
	})
	g.Go(func() error {
		s.Risk = RiskIndices(readings)
		s.Incidents = CountHighLowIncidents(readings, t)
		s.Unicorns = CountUnicorns(readings)
		s.Flux = CalculateFlux(readings)
		s.Wakeup = WakeupAverage(readings)
		s.Bedtime = BedtimeAverage(readings)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

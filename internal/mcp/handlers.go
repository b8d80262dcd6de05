package mcp

import (
	"context"
	"fmt"
	"time"

	"gluco-mcp/internal/export"
	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

type dateRangeArgs struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"Inclusive lower bound, YYYY-MM-DD. Optional."`
	EndDate   string `json:"end_date,omitempty" jsonschema:"Inclusive upper bound, YYYY-MM-DD. Optional."`
}

// bounds converts the optional date strings into a [since, until] pair for
// the store. The end date is extended to the last instant of that day so a
// bare date stays inclusive.
func (a dateRangeArgs) bounds() (time.Time, time.Time, error) {
	var since, until time.Time
	if a.StartDate != "" {
		t, err := time.Parse(dateLayout, a.StartDate)
		if err != nil {
			return since, until, fmt.Errorf("invalid start_date %q: %w", a.StartDate, err)
		}
		since = t
	}
	if a.EndDate != "" {
		t, err := time.Parse(dateLayout, a.EndDate)
		if err != nil {
			return since, until, fmt.Errorf("invalid end_date %q: %w", a.EndDate, err)
		}
		until = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return since, until, nil
}

func (s *Server) glucoseInRange(ctx context.Context, a dateRangeArgs) ([]metrics.Reading, error) {
	since, until, err := a.bounds()
	if err != nil {
		return nil, err
	}
	readings, err := s.store.QueryGlucose(ctx, since, until)
	if err != nil {
		return nil, fmt.Errorf("querying glucose readings: %w", err)
	}
	return readings, nil
}

type importArgs struct {
	Path string `json:"path" jsonschema:"Path to the JSON export file to import."`
}

type importResult struct {
	GlucoseCount  int    `json:"glucoseCount"`
	InsulinCount  int    `json:"insulinCount"`
	StoredGlucose int    `json:"storedGlucose"`
	FirstReading  string `json:"firstReading,omitempty"`
	LastReading   string `json:"lastReading,omitempty"`
}

func (s *Server) handleImportExportFile(ctx context.Context, req *sdk.CallToolRequest, args importArgs) (*sdk.CallToolResult, importResult, error) {
	var out importResult
	file, err := export.Load(args.Path)
	if err != nil {
		return nil, out, err
	}
	if err := s.store.SaveGlucose(ctx, file.Glucose); err != nil {
		return nil, out, fmt.Errorf("saving glucose readings: %w", err)
	}
	if err := s.store.SaveInsulin(ctx, file.Insulin); err != nil {
		return nil, out, fmt.Errorf("saving insulin readings: %w", err)
	}
	out.GlucoseCount = len(file.Glucose)
	out.InsulinCount = len(file.Insulin)

	// Span over everything stored, not just this file: re-imports and
	// incremental imports should report the full history.
	first, last, count, err := s.store.GlucoseSpan(ctx)
	if err != nil {
		return nil, out, fmt.Errorf("querying stored span: %w", err)
	}
	out.StoredGlucose = count
	if count > 0 {
		out.FirstReading = first.Format(time.RFC3339)
		out.LastReading = last.Format(time.RFC3339)
	}
	log.Info().
		Str("path", args.Path).
		Int("glucose", out.GlucoseCount).
		Int("insulin", out.InsulinCount).
		Msg("imported export file")
	return nil, out, nil
}

type analyzeArgs struct {
	dateRangeArgs
}

type analyzeResult struct {
	Summary *metrics.Summary       `json:"summary"`
	Insulin []insulin.DailySummary `json:"insulin,omitempty"`
}

func (s *Server) handleAnalyzeGlucose(ctx context.Context, req *sdk.CallToolRequest, args analyzeArgs) (*sdk.CallToolResult, analyzeResult, error) {
	var out analyzeResult
	readings, err := s.glucoseInRange(ctx, args.dateRangeArgs)
	if err != nil {
		return nil, out, err
	}
	summary, err := metrics.Summarize(ctx, readings, s.cfg.Thresholds, s.cfg.CategoryMode, time.Time{})
	if err != nil {
		return nil, out, err
	}
	out.Summary = summary

	since, until, _ := args.bounds()
	doses, err := s.store.QueryInsulin(ctx, since, until)
	if err != nil {
		return nil, out, fmt.Errorf("querying insulin readings: %w", err)
	}
	out.Insulin = insulin.DailySummaries(doses)
	return nil, out, nil
}

type timeInRangeArgs struct {
	dateRangeArgs
	GroupHours int `json:"group_hours,omitempty"`
}

type timeInRangeResult struct {
	Overall metrics.RangeStats    `json:"overall"`
	Windows []metrics.WindowStats `json:"windows"`
	Hourly  []metrics.HourlyStats `json:"hourly"`
}

func (s *Server) handleGetTimeInRange(ctx context.Context, req *sdk.CallToolRequest, args timeInRangeArgs) (*sdk.CallToolResult, timeInRangeResult, error) {
	var out timeInRangeResult
	readings, err := s.glucoseInRange(ctx, args.dateRangeArgs)
	if err != nil {
		return nil, out, err
	}
	out.Overall = metrics.Aggregate(readings, s.cfg.Thresholds, s.cfg.CategoryMode)
	out.Windows = metrics.TrailingWindows(readings, s.cfg.Thresholds, s.cfg.CategoryMode, time.Time{})
	out.Hourly = metrics.HourlyBreakdown(readings, s.cfg.Thresholds, s.cfg.CategoryMode, args.GroupHours)
	return nil, out, nil
}

type breakdownArgs struct {
	dateRangeArgs
	GroupBy string `json:"group_by"`
}

type breakdownResult struct {
	Daily     []metrics.DailyReport     `json:"daily,omitempty"`
	ByWeekday []metrics.DayOfWeekReport `json:"byDayOfWeek,omitempty"`
	Weekly    []metrics.WeeklyReport    `json:"weekly,omitempty"`
}

func (s *Server) handleGetGlucoseBreakdown(ctx context.Context, req *sdk.CallToolRequest, args breakdownArgs) (*sdk.CallToolResult, breakdownResult, error) {
	var out breakdownResult
	readings, err := s.glucoseInRange(ctx, args.dateRangeArgs)
	if err != nil {
		return nil, out, err
	}
	switch args.GroupBy {
	case "date":
		out.Daily = metrics.GroupByDate(readings, s.cfg.Thresholds, s.cfg.CategoryMode)
	case "weekday":
		out.ByWeekday = metrics.GroupByDayOfWeek(readings, s.cfg.Thresholds, s.cfg.CategoryMode)
	case "week":
		out.Weekly = metrics.GroupByWeek(readings, s.cfg.Thresholds, s.cfg.CategoryMode)
	default:
		return nil, out, fmt.Errorf("unknown group_by %q: want date, weekday or week", args.GroupBy)
	}
	return nil, out, nil
}

type riskResult struct {
	Risk      *metrics.BGRIResult      `json:"risk"`
	JIndex    *float64                 `json:"jIndex"`
	CV        *float64                 `json:"cv"`
	Flux      *metrics.FluxResult      `json:"flux"`
	Incidents metrics.HighLowIncidents `json:"incidents"`
	Unicorns  int                      `json:"unicorns"`
}

func (s *Server) handleGetRiskIndices(ctx context.Context, req *sdk.CallToolRequest, args dateRangeArgs) (*sdk.CallToolResult, riskResult, error) {
	var out riskResult
	readings, err := s.glucoseInRange(ctx, args)
	if err != nil {
		return nil, out, err
	}
	out.Risk = metrics.RiskIndices(readings)
	out.JIndex = metrics.JIndex(readings)
	out.CV = metrics.CV(readings)
	out.Flux = metrics.CalculateFlux(readings)
	out.Incidents = metrics.CountHighLowIncidents(readings, s.cfg.Thresholds)
	out.Unicorns = metrics.CountUnicorns(readings)
	return nil, out, nil
}

type insulinArgs struct {
	Date string `json:"date,omitempty" jsonschema:"Date for the hourly timeline, YYYY-MM-DD. Optional."`
	At   string `json:"at,omitempty" jsonschema:"Instant for insulin-on-board, RFC 3339. Optional."`
}

type insulinResult struct {
	Daily    []insulin.DailySummary `json:"daily"`
	Timeline []insulin.HourlyPoint  `json:"timeline,omitempty"`
	IOB      *float64               `json:"iob,omitempty"`
}

func (s *Server) handleGetInsulinSummary(ctx context.Context, req *sdk.CallToolRequest, args insulinArgs) (*sdk.CallToolResult, insulinResult, error) {
	var out insulinResult
	doses, err := s.store.QueryInsulin(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, out, fmt.Errorf("querying insulin readings: %w", err)
	}
	out.Daily = insulin.DailySummaries(doses)

	if args.Date != "" {
		day, err := time.Parse(dateLayout, args.Date)
		if err != nil {
			return nil, out, fmt.Errorf("invalid date %q: %w", args.Date, err)
		}
		out.Timeline = insulin.HourlyTimeline(doses, day, s.cfg.IOBDurationHours)
	}
	if args.At != "" {
		at, err := time.Parse(time.RFC3339, args.At)
		if err != nil {
			return nil, out, fmt.Errorf("invalid at %q: %w", args.At, err)
		}
		iob := insulin.IOB(doses, at, s.cfg.IOBDurationHours)
		out.IOB = &iob
	}
	return nil, out, nil
}

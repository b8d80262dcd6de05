package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gluco-mcp/internal/config"
	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"
	"gluco-mcp/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	cfg := &config.AppConfig{
		Thresholds:       metrics.DefaultThresholds(),
		CategoryMode:     metrics.FiveCategories,
		IOBDurationHours: insulin.DefaultDurationHours,
	}
	return NewServer(cfg, st)
}

func seedGlucose(t *testing.T, s *Server, values []float64, start time.Time, step time.Duration) {
	t.Helper()
	readings := make([]metrics.Reading, len(values))
	for i, v := range values {
		readings[i] = metrics.Reading{Time: start.Add(time.Duration(i) * step), Value: v}
	}
	require.NoError(t, s.store.SaveGlucose(context.Background(), readings))
}

func TestHandleGetTimeInRange(t *testing.T) {
	s := newTestServer(t)
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	seedGlucose(t, s, []float64{5.5, 6.0, 11.2, 3.5}, start, time.Hour)

	_, out, err := s.handleGetTimeInRange(context.Background(), nil, timeInRangeArgs{})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Overall.Total)
	assert.Equal(t, 2, out.Overall.InRange)
	assert.Equal(t, 1, out.Overall.High)
	assert.Equal(t, 1, out.Overall.Low)
	assert.Len(t, out.Hourly, 24)
	// A single day of data supports none of the trailing windows.
	assert.Empty(t, out.Windows)
}

func TestHandleGetTimeInRange_DateBounds(t *testing.T) {
	s := newTestServer(t)
	seedGlucose(t, s, []float64{5.0}, time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), time.Hour)
	seedGlucose(t, s, []float64{12.0, 12.0}, time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC), time.Hour)

	_, out, err := s.handleGetTimeInRange(context.Background(), nil, timeInRangeArgs{
		dateRangeArgs: dateRangeArgs{StartDate: "2024-03-05", EndDate: "2024-03-05"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Overall.Total)
	assert.Equal(t, 2, out.Overall.High)
}

func TestHandleGetTimeInRange_InvalidDate(t *testing.T) {
	s := newTestServer(t)
	_, _, err := s.handleGetTimeInRange(context.Background(), nil, timeInRangeArgs{
		dateRangeArgs: dateRangeArgs{StartDate: "05-03-2024"},
	})
	assert.ErrorContains(t, err, "invalid start_date")
}

func TestHandleGetGlucoseBreakdown(t *testing.T) {
	s := newTestServer(t)
	seedGlucose(t, s, []float64{5.0, 6.0}, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), 24*time.Hour)

	tests := []struct {
		groupBy string
		check   func(t *testing.T, out breakdownResult)
	}{
		{"date", func(t *testing.T, out breakdownResult) {
			require.Len(t, out.Daily, 2)
			assert.Equal(t, "2024-03-04", out.Daily[0].Date)
		}},
		{"weekday", func(t *testing.T, out breakdownResult) {
			// Seven weekdays plus the Workday and Weekend aggregates.
			assert.Len(t, out.ByWeekday, 9)
		}},
		{"week", func(t *testing.T, out breakdownResult) {
			require.Len(t, out.Weekly, 1)
			assert.Equal(t, 2, out.Weekly[0].Stats.Total)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.groupBy, func(t *testing.T) {
			_, out, err := s.handleGetGlucoseBreakdown(context.Background(), nil, breakdownArgs{GroupBy: tt.groupBy})
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestHandleGetGlucoseBreakdown_UnknownGroup(t *testing.T) {
	s := newTestServer(t)
	_, _, err := s.handleGetGlucoseBreakdown(context.Background(), nil, breakdownArgs{GroupBy: "month"})
	assert.ErrorContains(t, err, "unknown group_by")
}

func TestHandleGetRiskIndices(t *testing.T) {
	s := newTestServer(t)
	seedGlucose(t, s, []float64{5.0, 11.0, 11.5, 5.5}, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), time.Hour)

	_, out, err := s.handleGetRiskIndices(context.Background(), nil, dateRangeArgs{})
	require.NoError(t, err)
	require.NotNil(t, out.Risk)
	assert.InDelta(t, out.Risk.LBGI+out.Risk.HBGI, out.Risk.BGRI, 1e-10)
	require.NotNil(t, out.CV)
	require.NotNil(t, out.Flux)
	assert.Equal(t, 1, out.Incidents.High)
	assert.Equal(t, 1, out.Unicorns)
}

func TestHandleGetRiskIndices_Empty(t *testing.T) {
	s := newTestServer(t)
	_, out, err := s.handleGetRiskIndices(context.Background(), nil, dateRangeArgs{})
	require.NoError(t, err)
	assert.Nil(t, out.Risk)
	assert.Nil(t, out.CV)
	assert.Nil(t, out.Flux)
}

func TestHandleGetInsulinSummary(t *testing.T) {
	s := newTestServer(t)
	doses := []insulin.Reading{
		{Time: time.Date(2024, 3, 4, 7, 0, 0, 0, time.UTC), Dose: 1.2, Type: insulin.Basal},
		{Time: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), Dose: 4.0, Type: insulin.Bolus},
	}
	require.NoError(t, s.store.SaveInsulin(context.Background(), doses))

	_, out, err := s.handleGetInsulinSummary(context.Background(), nil, insulinArgs{
		Date: "2024-03-04",
		At:   "2024-03-04T09:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, out.Daily, 1)
	assert.Equal(t, 1.2, out.Daily[0].BasalTotal)
	assert.Equal(t, 4.0, out.Daily[0].BolusTotal)
	assert.Len(t, out.Timeline, 24)
	require.NotNil(t, out.IOB)
	// Basal 1.2 with 2h elapsed plus bolus 4.0 with 1h elapsed, 5h duration.
	assert.InDelta(t, 3.92, *out.IOB, 1e-9)
}

func TestHandleImportAndAnalyze(t *testing.T) {
	s := newTestServer(t)

	file := map[string]any{
		"glucose": []map[string]any{
			{"time": "2024-03-04T08:00:00Z", "value": 5.5},
			{"time": "2024-03-04T09:00:00Z", "value": 7.2},
		},
		"insulin": []map[string]any{
			{"time": "2024-03-04T08:00:00Z", "dose": 4.0, "insulinType": "bolus"},
		},
	}
	data, err := json.Marshal(file)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, imported, err := s.handleImportExportFile(context.Background(), nil, importArgs{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 2, imported.GlucoseCount)
	assert.Equal(t, 1, imported.InsulinCount)
	assert.Equal(t, 2, imported.StoredGlucose)
	assert.Equal(t, "2024-03-04T08:00:00Z", imported.FirstReading)

	_, analyzed, err := s.handleAnalyzeGlucose(context.Background(), nil, analyzeArgs{})
	require.NoError(t, err)
	require.NotNil(t, analyzed.Summary)
	assert.Equal(t, 2, analyzed.Summary.Overall.Total)
	require.Len(t, analyzed.Insulin, 1)
	assert.Equal(t, 4.0, analyzed.Insulin[0].BolusTotal)
}

func TestHandleImportExportFile_MissingFile(t *testing.T) {
	s := newTestServer(t)
	_, _, err := s.handleImportExportFile(context.Background(), nil, importArgs{Path: "/no/such/export.json"})
	assert.Error(t, err)
}

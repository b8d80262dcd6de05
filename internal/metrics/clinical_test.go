package metrics

import (
	"math"
	"testing"
	"time"
)

func valuesToReadings(values []float64) []Reading {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := make([]Reading, len(values))
	for i, v := range values {
		readings[i] = Reading{Time: base.Add(time.Duration(i) * 5 * time.Minute), Value: v}
	}
	return readings
}

func TestAverageGlucose(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected *float64
	}{
		{"Empty", nil, nil},
		{"Single", []float64{5.5}, ptr(5.5)},
		{"Several", []float64{4.0, 6.0, 8.0}, ptr(6.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageGlucose(valuesToReadings(tt.values))
			assertFloatPtr(t, got, tt.expected, 1e-9)
		})
	}
}

func TestMedianGlucose(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected *float64
	}{
		{"Empty", nil, nil},
		{"OddCount", []float64{9.0, 4.0, 6.0}, ptr(6.0)},
		{"EvenCount", []float64{4.0, 6.0, 8.0, 10.0}, ptr(7.0)},
		{"Unsorted", []float64{10.0, 2.0, 8.0, 4.0, 6.0}, ptr(6.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MedianGlucose(valuesToReadings(tt.values))
			assertFloatPtr(t, got, tt.expected, 1e-9)
		})
	}
}

func TestStandardDeviation(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected *float64
	}{
		{"Empty", nil, nil},
		{"Single", []float64{5.0}, nil},
		{"TwoValues", []float64{4.0, 6.0}, ptr(math.Sqrt2)},
		{"Identical", []float64{7.0, 7.0, 7.0, 7.0}, ptr(0.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StandardDeviation(valuesToReadings(tt.values))
			assertFloatPtr(t, got, tt.expected, 1e-9)
		})
	}
}

func TestCV(t *testing.T) {
	t.Run("TwoValues", func(t *testing.T) {
		cv := CV(valuesToReadings([]float64{4.0, 6.0}))
		if cv == nil {
			t.Fatal("expected CV, got nil")
		}
		if math.Abs(*cv-28.28) > 0.1 {
			t.Errorf("CV = %v, want ~28.28", *cv)
		}
	})
	t.Run("Identical", func(t *testing.T) {
		cv := CV(valuesToReadings([]float64{6.0, 6.0, 6.0}))
		if cv == nil || *cv != 0 {
			t.Errorf("CV of identical readings should be 0, got %v", cv)
		}
	})
	t.Run("Insufficient", func(t *testing.T) {
		if cv := CV(valuesToReadings([]float64{6.0})); cv != nil {
			t.Errorf("expected nil, got %v", *cv)
		}
	})
	t.Run("ZeroMean", func(t *testing.T) {
		if cv := CV(valuesToReadings([]float64{-1.0, 1.0})); cv != nil {
			t.Errorf("expected nil for zero mean, got %v", *cv)
		}
	})
}

func TestEstimatedHbA1c(t *testing.T) {
	got := EstimatedHbA1c(5.4)
	if math.Abs(got-5.03) > 0.05 {
		t.Errorf("EstimatedHbA1c(5.4) = %v, want ~5.03", got)
	}
}

func TestHbA1cToMmolMol(t *testing.T) {
	got := HbA1cToMmolMol(7.0)
	if math.Abs(got-53.0) > 0.5 {
		t.Errorf("HbA1cToMmolMol(7.0) = %v, want ~53.0", got)
	}
}

func TestDaysWithData(t *testing.T) {
	readings := []Reading{
		{Time: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), Value: 5.0},
		{Time: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), Value: 6.0},
		{Time: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), Value: 5.5},
		{Time: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC), Value: 7.0},
	}
	if got := DaysWithData(readings); got != 3 {
		t.Errorf("DaysWithData = %d, want 3", got)
	}
	if got := DaysWithData(nil); got != 0 {
		t.Errorf("DaysWithData(nil) = %d, want 0", got)
	}
}

func TestQuartiles(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		if q := Quartiles(nil); q != nil {
			t.Errorf("expected nil, got %+v", q)
		}
	})
	t.Run("Interpolated", func(t *testing.T) {
		q := Quartiles(valuesToReadings([]float64{1, 2, 3, 4}))
		if q == nil {
			t.Fatal("expected result, got nil")
		}
		if math.Abs(q.Q25-1.75) > 1e-9 || math.Abs(q.Q50-2.5) > 1e-9 || math.Abs(q.Q75-3.25) > 1e-9 {
			t.Errorf("quartiles = %+v, want q25=1.75 q50=2.5 q75=3.25", q)
		}
		if q.Min != 1 || q.Max != 4 {
			t.Errorf("min/max = %v/%v, want 1/4", q.Min, q.Max)
		}
	})
	t.Run("Single", func(t *testing.T) {
		q := Quartiles(valuesToReadings([]float64{5.0}))
		if q == nil || q.Q25 != 5.0 || q.Q50 != 5.0 || q.Q75 != 5.0 {
			t.Errorf("single-value quartiles = %+v", q)
		}
	})
}

func TestJIndex(t *testing.T) {
	t.Run("Insufficient", func(t *testing.T) {
		if j := JIndex(valuesToReadings([]float64{5.0})); j != nil {
			t.Errorf("expected nil, got %v", *j)
		}
	})
	t.Run("TwoValues", func(t *testing.T) {
		j := JIndex(valuesToReadings([]float64{4.0, 6.0}))
		if j == nil {
			t.Fatal("expected result, got nil")
		}
		mean := 5.0 * MgdlPerMmol
		sd := math.Sqrt2 * MgdlPerMmol
		want := 0.001 * (mean + sd) * (mean + sd)
		if math.Abs(*j-want) > 1e-9 {
			t.Errorf("JIndex = %v, want %v", *j, want)
		}
	})
}

func assertFloatPtr(t *testing.T, got, want *float64, tolerance float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("expected nil, got %v", *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected %v, got nil", *want)
	}
	if math.Abs(*got-*want) > tolerance {
		t.Errorf("got %v, want %v", *got, *want)
	}
}

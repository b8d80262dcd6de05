package metrics

import (
	"testing"
	"time"
)

func defaultTestThresholds() Thresholds {
	return Thresholds{VeryLow: 3.0, Low: 3.9, High: 10.0, VeryHigh: 13.9}
}

func TestCategorize_FiveCategories(t *testing.T) {
	th := defaultTestThresholds()

	tests := []struct {
		name     string
		value    float64
		expected Category
	}{
		{"BelowVeryLow", 2.9, CategoryVeryLow},
		{"ExactlyVeryLow", 3.0, CategoryLow},
		{"BetweenVeryLowAndLow", 3.5, CategoryLow},
		{"ExactlyLow", 3.9, CategoryInRange},
		{"MidRange", 6.5, CategoryInRange},
		{"ExactlyHigh", 10.0, CategoryInRange},
		{"AboveHigh", 10.1, CategoryHigh},
		{"ExactlyVeryHigh", 13.9, CategoryHigh},
		{"AboveVeryHigh", 14.0, CategoryVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.value, th, FiveCategories); got != tt.expected {
				t.Errorf("Categorize(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCategorize_ThreeCategories(t *testing.T) {
	th := defaultTestThresholds()

	tests := []struct {
		name     string
		value    float64
		expected Category
	}{
		{"VeryLowValueIsJustLow", 2.0, CategoryLow},
		{"BelowLow", 3.8, CategoryLow},
		{"ExactlyLow", 3.9, CategoryInRange},
		{"ExactlyHigh", 10.0, CategoryInRange},
		{"AboveHigh", 10.1, CategoryHigh},
		{"VeryHighValueIsJustHigh", 20.0, CategoryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.value, th, ThreeCategories); got != tt.expected {
				t.Errorf("Categorize(%v) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestAggregate_CountsEveryReadingOnce(t *testing.T) {
	th := defaultTestThresholds()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	values := []float64{2.5, 3.5, 5.0, 7.0, 10.0, 11.0, 15.0, 4.0, 6.2}
	readings := make([]Reading, len(values))
	for i, v := range values {
		readings[i] = Reading{Time: base.Add(time.Duration(i) * 5 * time.Minute), Value: v}
	}

	stats := Aggregate(readings, th, FiveCategories)

	if stats.Total != len(readings) {
		t.Errorf("Total = %d, want %d", stats.Total, len(readings))
	}
	sum := stats.VeryLow + stats.Low + stats.InRange + stats.High + stats.VeryHigh
	if sum != len(readings) {
		t.Errorf("category sum = %d, want %d", sum, len(readings))
	}
	if stats.VeryLow != 1 || stats.Low != 1 || stats.InRange != 5 || stats.High != 1 || stats.VeryHigh != 1 {
		t.Errorf("unexpected distribution: %+v", stats)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, defaultTestThresholds(), FiveCategories)
	if stats.Total != 0 || stats.Low != 0 || stats.InRange != 0 || stats.High != 0 {
		t.Errorf("empty input should yield all-zero stats, got %+v", stats)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int
		expected float64
	}{
		{"ZeroOfZero", 0, 0, 0},
		{"NonZeroOfZero", 5, 0, 0},
		{"Half", 1, 2, 50},
		{"OneDecimal", 1, 3, 33.3},
		{"TwoThirds", 2, 3, 66.7},
		{"RoundHalfUp", 1, 8, 12.5},
		{"Full", 7, 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.count, tt.total); got != tt.expected {
				t.Errorf("Percentage(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.expected)
			}
		})
	}
}

// Package export reads pre-decoded device export files. The file format is
// the narrow contract the analysis engine needs: timestamps plus canonical
// mmol/L glucose values and insulin doses, already unit-converted and
// column-mapped by whatever produced the file.
package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"
)

// File is a decoded export: glucose and insulin series, sorted ascending by
// time.
type File struct {
	Glucose []metrics.Reading `json:"glucose"`
	Insulin []insulin.Reading `json:"insulin,omitempty"`
}

// Load reads and validates an export file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	return Parse(data)
}

// Parse decodes an export document, rejects non-finite values, and sorts
// both series chronologically.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	for i, r := range f.Glucose {
		if r.Time.IsZero() {
			return nil, fmt.Errorf("glucose entry %d: missing timestamp", i)
		}
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return nil, fmt.Errorf("glucose entry %d: non-finite value", i)
		}
	}
	for i, r := range f.Insulin {
		if r.Time.IsZero() {
			return nil, fmt.Errorf("insulin entry %d: missing timestamp", i)
		}
		if math.IsNaN(r.Dose) || math.IsInf(r.Dose, 0) || r.Dose < 0 {
			return nil, fmt.Errorf("insulin entry %d: invalid dose", i)
		}
		if r.Type != insulin.Basal && r.Type != insulin.Bolus {
			return nil, fmt.Errorf("insulin entry %d: unknown type %q", i, r.Type)
		}
	}

	sort.Slice(f.Glucose, func(i, j int) bool {
		return f.Glucose[i].Time.Before(f.Glucose[j].Time)
	})
	sort.Slice(f.Insulin, func(i, j int) bool {
		return f.Insulin[i].Time.Before(f.Insulin[j].Time)
	})

	return &f, nil
}

// Span returns the first and last glucose timestamps, or zero times for an
// empty series.
func (f *File) Span() (first, last time.Time) {
	if len(f.Glucose) == 0 {
		return time.Time{}, time.Time{}
	}
	return f.Glucose[0].Time, f.Glucose[len(f.Glucose)-1].Time
}

package metrics

import (
	"math"
	"slices"
)

// AverageGlucose returns the arithmetic mean in mmol/L, or nil on empty
// input.
func AverageGlucose(readings []Reading) *float64 {
	if len(readings) == 0 {
		return nil
	}
	var sum float64
	for _, r := range readings {
		sum += r.Value
	}
	return ptr(sum / float64(len(readings)))
}

// MedianGlucose returns the sorted-value median (the average of the two
// middle values on even counts), or nil on empty input.
func MedianGlucose(readings []Reading) *float64 {
	if len(readings) == 0 {
		return nil
	}
	values := sortedValues(readings)
	n := len(values)
	if n%2 == 1 {
		return ptr(values[n/2])
	}
	return ptr((values[n/2-1] + values[n/2]) / 2)
}

// StandardDeviation returns the sample standard deviation (Bessel's
// correction, n-1), or nil when fewer than 2 readings. All-identical
// readings yield 0, not an error.
func StandardDeviation(readings []Reading) *float64 {
	if len(readings) < 2 {
		return nil
	}
	mean := *AverageGlucose(readings)
	var sumSq float64
	for _, r := range readings {
		d := r.Value - mean
		sumSq += d * d
	}
	return ptr(math.Sqrt(sumSq / float64(len(readings)-1)))
}

// CV returns the coefficient of variation in percent, (sd/mean)*100.
// Returns nil when fewer than 2 readings or when the mean is 0. Values at
// or below CVTarget indicate stable control.
func CV(readings []Reading) *float64 {
	sd := StandardDeviation(readings)
	if sd == nil {
		return nil
	}
	mean := *AverageGlucose(readings)
	if mean == 0 {
		return nil
	}
	return ptr(*sd / mean * 100)
}

// EstimatedHbA1c derives an HbA1c estimate in % NGSP from an average
// glucose in mmol/L, using the ADA regression (avg + 2.59) / 1.59.
func EstimatedHbA1c(avgMmol float64) float64 {
	return (avgMmol + 2.59) / 1.59
}

// HbA1cToMmolMol converts an NGSP percentage to IFCC mmol/mol.
func HbA1cToMmolMol(pct float64) float64 {
	return (pct - 2.15) * 10.929
}

// DaysWithData counts the distinct calendar dates represented in the
// readings. Fewer than MinDaysForReliableHbA1c days makes an HbA1c estimate
// unreliable.
func DaysWithData(readings []Reading) int {
	days := make(map[string]struct{})
	for _, r := range readings {
		days[r.Time.Format(dateLayout)] = struct{}{}
	}
	return len(days)
}

// Quartiles returns linear-interpolated 25th/50th/75th percentiles plus min
// and max over the sorted values, or nil on empty input.
func Quartiles(readings []Reading) *QuartileStats {
	if len(readings) == 0 {
		return nil
	}
	values := sortedValues(readings)
	return &QuartileStats{
		Q25: percentile(values, 0.25),
		Q50: percentile(values, 0.50),
		Q75: percentile(values, 0.75),
		Min: values[0],
		Max: values[len(values)-1],
	}
}

// JIndex returns Wojcicki's J-Index, 0.001*(mean+sd)^2 over mg/dL values.
// Requires at least 2 readings, else nil.
func JIndex(readings []Reading) *float64 {
	sd := StandardDeviation(readings)
	if sd == nil {
		return nil
	}
	meanMgdl := *AverageGlucose(readings) * MgdlPerMmol
	sdMgdl := *sd * MgdlPerMmol
	sum := meanMgdl + sdMgdl
	return ptr(0.001 * sum * sum)
}

// percentile interpolates linearly between the two values straddling
// p*(n-1). values must be sorted and non-empty.
func percentile(values []float64, p float64) float64 {
	idx := p * float64(len(values)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return values[lower]
	}
	frac := idx - float64(lower)
	return values[lower] + frac*(values[upper]-values[lower])
}

// sortedValues extracts reading values into a fresh sorted slice, leaving
// the input untouched.
func sortedValues(readings []Reading) []float64 {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Value
	}
	slices.Sort(values)
	return values
}

func ptr(v float64) *float64 {
	return &v
}

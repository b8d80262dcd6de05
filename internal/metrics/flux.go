package metrics

// fluxGrades maps CV% breakpoints to stability grades, checked in order.
var fluxGrades = []struct {
	maxCV       float64
	grade       string
	description string
}{
	{20, "A+", "Exceptional stability. Glucose variability is well below clinical targets."},
	{26, "A", "Excellent stability. Variability is comfortably within the stable range."},
	{33, "B", "Good stability. Variability is near the clinical target of 36%."},
	{40, "C", "Moderate variability. Slightly above the stable-control target."},
	{50, "D", "High variability. Glucose swings are likely affecting time in range."},
}

// CalculateFlux grades glycemic stability from the coefficient of
// variation. Returns nil when CV cannot be computed (fewer than 2 readings
// or zero mean).
func CalculateFlux(readings []Reading) *FluxResult {
	cv := CV(readings)
	if cv == nil {
		return nil
	}
	for _, g := range fluxGrades {
		if *cv <= g.maxCV {
			return &FluxResult{Grade: g.grade, Score: *cv, Description: g.description}
		}
	}
	return &FluxResult{
		Grade:       "F",
		Score:       *cv,
		Description: "Very high variability. Glucose control is unstable across the period.",
	}
}

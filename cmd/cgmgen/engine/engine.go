// Package engine builds synthetic but physiologically plausible CGM traces:
// a circadian baseline, meal excursions, sensor noise, and the matching
// basal/bolus insulin records.
package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gluco-mcp/internal/export"
	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"
)

type GeneratorConfig struct {
	Scenario        string // "steady", "variable" or "brittle"
	Days            int
	IntervalMinutes int
	Seed            int64
	Now             time.Time
}

// scenarioParams shape the trace. Baseline and amplitudes are in mmol/L.
type scenarioParams struct {
	baseline      float64
	mealAmplitude float64
	noise         float64
	lowDipChance  float64 // per-day probability of a hypo excursion
}

var scenarios = map[string]scenarioParams{
	"steady":   {baseline: 6.0, mealAmplitude: 2.2, noise: 0.15, lowDipChance: 0.02},
	"variable": {baseline: 7.0, mealAmplitude: 4.0, noise: 0.35, lowDipChance: 0.15},
	"brittle":  {baseline: 8.0, mealAmplitude: 6.5, noise: 0.6, lowDipChance: 0.4},
}

// Meals peak roughly 60-90 minutes after eating; a raised-cosine bump over
// three hours is close enough for synthetic data.
var mealHours = []int{7, 12, 18}

func Generate(cfg GeneratorConfig) (*export.File, error) {
	params, ok := scenarios[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q: want steady, variable or brittle", cfg.Scenario)
	}
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", cfg.Days)
	}
	if cfg.IntervalMinutes <= 0 {
		cfg.IntervalMinutes = 5
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = cfg.Now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	end := cfg.Now.Truncate(time.Hour)
	start := end.AddDate(0, 0, -cfg.Days)

	file := &export.File{}
	step := time.Duration(cfg.IntervalMinutes) * time.Minute

	dipDay := -1
	for ts := start; ts.Before(end); ts = ts.Add(step) {
		day := ts.YearDay()
		if day != dipDay && rng.Float64() < params.lowDipChance/float64(24*60/cfg.IntervalMinutes) {
			dipDay = day
		}

		value := params.baseline + circadian(ts) + mealBump(ts, params.mealAmplitude, rng)
		value += rng.NormFloat64() * params.noise
		if dipDay == day && ts.Hour() >= 2 && ts.Hour() < 4 {
			value -= 3.0
		}
		if value < 2.2 {
			value = 2.2
		}
		file.Glucose = append(file.Glucose, metrics.Reading{
			Time:  ts,
			Value: math.Round(value*10) / 10,
		})
	}

	file.Insulin = generateInsulin(start, end, params, rng)
	return file, nil
}

// circadian is a mild dawn-phenomenon curve: glucose drifts up in the early
// morning and settles overnight.
func circadian(ts time.Time) float64 {
	frac := float64(ts.Hour()*60+ts.Minute()) / (24 * 60)
	return 0.6 * math.Sin(2*math.Pi*(frac-0.2))
}

func mealBump(ts time.Time, amplitude float64, rng *rand.Rand) float64 {
	var bump float64
	for _, h := range mealHours {
		minutes := float64(ts.Hour()*60+ts.Minute()) - float64(h*60)
		if minutes < 0 || minutes > 180 {
			continue
		}
		bump += amplitude * 0.5 * (1 - math.Cos(2*math.Pi*minutes/180)) * (0.8 + 0.4*rng.Float64()) / 2
	}
	return bump
}

func generateInsulin(start, end time.Time, params scenarioParams, rng *rand.Rand) []insulin.Reading {
	var doses []insulin.Reading
	for ts := start; ts.Before(end); ts = ts.Add(time.Hour) {
		doses = append(doses, insulin.Reading{
			Time: ts,
			Dose: math.Round((0.8+0.2*rng.Float64())*100) / 100,
			Type: insulin.Basal,
		})
		for _, h := range mealHours {
			if ts.Hour() == h {
				doses = append(doses, insulin.Reading{
					Time: ts.Add(time.Duration(rng.Intn(30)) * time.Minute),
					Dose: math.Round((3.0+params.mealAmplitude*rng.Float64())*10) / 10,
					Type: insulin.Bolus,
				})
			}
		}
	}
	return doses
}

func Save(path string, file *export.File) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

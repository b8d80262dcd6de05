// Package insulin models insulin dosing events and the insulin-on-board
// linear decay that estimates active insulin remaining from prior doses.
package insulin

import (
	"math"
	"time"
)

// DefaultDurationHours is the insulin action duration assumed when the
// caller does not supply one.
const DefaultDurationHours = 5.0

// Type distinguishes rate-sampled basal readings from discrete bolus doses.
type Type string

const (
	Basal Type = "basal"
	Bolus Type = "bolus"
)

// Reading is a single insulin dosing event. Dose is in units and never
// negative.
type Reading struct {
	Time time.Time `json:"time"`
	Dose float64   `json:"dose"`
	Type Type      `json:"insulinType"`
}

// IOB estimates the insulin still active at target using a linear decay
// model: a dose delivered elapsed hours earlier contributes
// dose * (1 - elapsed/duration). Doses after target are excluded entirely,
// and doses older than the duration window contribute zero. The sum is
// rounded to 2 decimals.
func IOB(readings []Reading, target time.Time, durationHours float64) float64 {
	if durationHours <= 0 {
		durationHours = DefaultDurationHours
	}

	var total float64
	for _, r := range readings {
		if r.Time.After(target) {
			continue
		}
		elapsed := target.Sub(r.Time).Hours()
		if elapsed >= durationHours {
			continue
		}
		total += r.Dose * (1 - elapsed/durationHours)
	}
	return math.Round(total*100) / 100
}

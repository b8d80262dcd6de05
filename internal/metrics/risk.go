package metrics

import "math"

// RiskIndices computes the Kovatchev blood-glucose risk indices. Each
// reading is converted to mg/dL and passed through the symmetric risk
// transform risk = 1.509*(ln(mgdl)^1.084 - 5.381); 10*risk^2 accumulates
// into LBGI for negative risk and HBGI otherwise, averaged over the valid
// readings. Non-positive glucose values cannot enter the logarithm and are
// skipped; the result is nil only when no valid readings remain.
// The returned BGRI is always exactly LBGI + HBGI.
func RiskIndices(readings []Reading) *BGRIResult {
	var lowSum, highSum float64
	valid := 0

	for _, r := range readings {
		if r.Value <= 0 {
			continue
		}
		mgdl := r.Value * MgdlPerMmol
		risk := 1.509 * (math.Pow(math.Log(mgdl), 1.084) - 5.381)
		if risk < 0 {
			lowSum += 10 * risk * risk
		} else {
			highSum += 10 * risk * risk
		}
		valid++
	}

	if valid == 0 {
		return nil
	}

	lbgi := lowSum / float64(valid)
	hbgi := highSum / float64(valid)
	return &BGRIResult{
		LBGI: lbgi,
		HBGI: hbgi,
		BGRI: lbgi + hbgi,
	}
}

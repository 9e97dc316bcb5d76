package domain

import "math"

// KineticModel is the two-regime saturation recurrence: logged days move
// the value toward 1 by Uptake of the remaining headroom, missed days decay
// it by Decay.
type KineticModel struct {
	Uptake float64 `json:"uptake"`
	Decay  float64 `json:"decay"`
}

var DefaultModel = KineticModel{Uptake: 0.10, Decay: 0.02}

// Step returns the saturation following prev on a day with the given log state.
func (m KineticModel) Step(prev float64, logged bool) float64 {
	if logged {
		return math.Min(prev+m.Uptake*(1-prev), 1)
	}
	return prev * (1 - m.Decay)
}

// Compute scans entries left to right and returns a parallel saturation slice.
// Entries dated after cutoff contribute nothing and read as 0.
func (m KineticModel) Compute(entries []LogEntry, cutoff string) []float64 {
	saturations := make([]float64, len(entries))

	for i, e := range entries {
		if e.Date > cutoff {
			saturations[i] = 0
			continue
		}

		if i == 0 {
			if e.Logged {
				saturations[0] = m.Uptake
			}
			continue
		}

		saturations[i] = m.Step(saturations[i-1], e.Logged)
	}

	return saturations
}

// DaysToReach counts the consecutive logged days needed to lift saturation from
// from to at least target. It returns -1 when the target is unreachable.
func (m KineticModel) DaysToReach(from, target float64) int {
	if from >= target {
		return 0
	}
	if target > 1 || m.Uptake <= 0 {
		return -1
	}

	const maxDays = 10000
	s := from
	for days := 1; days <= maxDays; days++ {
		s = m.Step(s, true)
		if s >= target {
			return days
		}
	}
	return -1
}

func ComputeSaturations(entries []LogEntry, cutoff string) []float64 {
	return DefaultModel.Compute(entries, cutoff)
}

package domain

const SaturatedThreshold = 0.9

type SaturationPoint struct {
	Date       string  `json:"date"`
	Saturation float64 `json:"saturation"`
}

type Summary struct {
	Cutoff             string            `json:"cutoff"`
	SaturationHistory  []SaturationPoint `json:"saturation_history"`
	CurrentSaturation  float64           `json:"current_saturation"`
	Streak             int               `json:"streak"`
	ComplianceRate     float64           `json:"compliance_rate"`
	DaysLogged         int               `json:"days_logged"`
	DaysTracked        int               `json:"days_tracked"`
	DaysUntilSaturated int               `json:"days_until_saturated"`
}

// Summarize derives the stats board from a log. Only entries up to cutoff
// are considered.
func Summarize(entries []LogEntry, cutoff string, model KineticModel) Summary {
	saturations := model.Compute(entries, cutoff)

	summary := Summary{
		Cutoff:            cutoff,
		SaturationHistory: make([]SaturationPoint, 0, len(entries)),
	}

	last := -1
	for i, e := range entries {
		if e.Date > cutoff {
			break
		}
		last = i
		summary.DaysTracked++
		if e.Logged {
			summary.DaysLogged++
		}
		summary.SaturationHistory = append(summary.SaturationHistory, SaturationPoint{
			Date:       e.Date,
			Saturation: saturations[i],
		})
	}

	if summary.DaysTracked > 0 {
		summary.ComplianceRate = float64(summary.DaysLogged) / float64(summary.DaysTracked) * 100
	}

	if last >= 0 {
		summary.CurrentSaturation = saturations[last]
		summary.Streak = currentStreak(entries[:last+1])
	}

	days := model.DaysToReach(summary.CurrentSaturation, SaturatedThreshold)
	if days < 0 {
		days = 0
	}
	summary.DaysUntilSaturated = days

	return summary
}

// currentStreak counts consecutive logged days ending at the last entry.
// An unlogged last day does not break the run, the day is not over yet.
func currentStreak(known []LogEntry) int {
	i := len(known) - 1
	if i >= 0 && !known[i].Logged {
		i--
	}

	streak := 0
	for ; i >= 0 && known[i].Logged; i-- {
		streak++
	}
	return streak
}

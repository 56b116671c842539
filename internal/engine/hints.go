package engine

// Callout flags one date the narrative layer should mention, with a short
// machine-usable reason.
type Callout struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Callout reasons, in the fixed precedence they are emitted.
const (
	ReasonPlannedSoak  = "planned soak"
	ReasonSecondSoak   = "possible second soak"
	ReasonHeatPeak     = "heat peak"
	ReasonHumidStretch = "humid stretch"
	ReasonBreezy       = "breezy afternoon"
)

// Hint-only thresholds.
const (
	heatPeakCalloutHi = 88
	humidCalloutPct   = 70
	hintWindowDays    = 7
)

// Hints is the compact summary handed to the downstream narrative generator.
// CandidateSecondYes is empty when no eligible second watering day exists.
type Hints struct {
	YesDatesNext7      []string          `json:"yesDatesNext7"`
	CandidateSecondYes string            `json:"candidateSecondYes,omitempty"`
	YesCountNext7      int               `json:"yesCountNext7"`
	Labels             map[string]string `json:"labels"`
	Callouts           []Callout         `json:"callouts"`
}

// buildHints derives the human-facing callouts from the finalized plan over
// the 7-day window starting at the first date at or after today.
func buildHints(weather []DayFeatures, decisions []Decision, p Policy, today string) Hints {
	start, _ := windowStart(weather, today)
	end := min(start+hintWindowDays, len(weather))

	hints := Hints{
		YesDatesNext7: []string{},
		Labels:        make(map[string]string, len(weather)),
		Callouts:      []Callout{},
	}
	for _, d := range weather {
		hints.Labels[d.Date] = dayLabel(d.Date)
	}

	firstYes := ""
	lastYes := ""
	firstYesIdx := -1
	for i := start; i < end; i++ {
		if decisions[i].Status == StatusYes {
			hints.YesDatesNext7 = append(hints.YesDatesNext7, decisions[i].Date)
			if firstYes == "" {
				firstYes = decisions[i].Date
				firstYesIdx = i
			}
			lastYes = decisions[i].Date
		}
	}
	hints.YesCountNext7 = len(hints.YesDatesNext7)

	if hints.YesCountNext7 < 2 {
		scanFrom := start
		if firstYesIdx >= 0 {
			scanFrom = firstYesIdx + 1
		}
		for i := scanFrom; i < end; i++ {
			if decisions[i].Status == StatusNo {
				continue
			}
			if lastYes != "" && daysBetween(decisions[i].Date, lastYes) <= p.MinGapDays {
				continue
			}
			hints.CandidateSecondYes = decisions[i].Date
			break
		}
	}

	heatPeakIdx := -1
	for i := start; i < end; i++ {
		if heatPeakIdx < 0 || weather[i].Hi > weather[heatPeakIdx].Hi {
			heatPeakIdx = i
		}
	}

	if firstYes != "" {
		hints.Callouts = append(hints.Callouts, Callout{Date: firstYes, Reason: ReasonPlannedSoak})
	}
	if hints.CandidateSecondYes != "" {
		hints.Callouts = append(hints.Callouts, Callout{Date: hints.CandidateSecondYes, Reason: ReasonSecondSoak})
	}
	if heatPeakIdx >= 0 && weather[heatPeakIdx].Hi >= heatPeakCalloutHi {
		hints.Callouts = append(hints.Callouts, Callout{Date: weather[heatPeakIdx].Date, Reason: ReasonHeatPeak})
	}
	if start < end && weather[start].Humidity >= humidCalloutPct {
		hints.Callouts = append(hints.Callouts, Callout{Date: weather[start].Date, Reason: ReasonHumidStretch})
	}
	for i := start; i < end; i++ {
		if weather[i].Wind >= p.WindyMph {
			hints.Callouts = append(hints.Callouts, Callout{Date: weather[i].Date, Reason: ReasonBreezy})
			break
		}
	}

	return hints
}

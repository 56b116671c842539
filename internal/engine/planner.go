package engine

// Decision is the finalized recommendation for one day.
type Decision struct {
	Date   string  `json:"date"`
	Status Status  `json:"status"`
	Score  float64 `json:"score"` // 0-1, 2 decimals
}

// Plan pairs the enriched weather with its decisions, same length and date
// order. This is the snapshot callers persist and feed back for stabilization.
type Plan struct {
	Weather   []DayFeatures `json:"weather"`
	Decisions []Decision    `json:"decisions"`
}

// Fixed planner thresholds that are not part of the caller policy.
const (
	rainNext3Skip    = 0.30 // forward 3-day rain (in) that alone cancels watering
	heatWaveRainCap  = 0.20 // forward rain allowed during a heat-wave override
	convectivePopMin = 40   // pop (%) floor for the convective-risk predicate
	softenBelowHi    = 92   // soak before a likely storm only when hotter than this
	nudgeWindowRain  = 0.25 // dry-week threshold for the coverage nudge
	nudgeWindowAvgHi = 84   // hot-week threshold for the coverage nudge
	nudgeWindowDays  = 7
)

// convectiveRisk marks a day with moderate-to-high precipitation probability
// but only trace forecast amounts: likely a brief thunderstorm burst, not
// sustained rain worth counting on.
func convectiveRisk(d DayFeatures, p Policy) bool {
	return float64(d.Pop) >= convectivePopMin &&
		d.Rain < p.QPFTinyToday &&
		d.RainNext3 < p.QPFTinyNext3
}

// plannerState is the fold accumulator for the left-to-right traversal.
type plannerState struct {
	lastYesDate string // empty until the first committed yes
	weekYes     int
	weekYear    int
	weekNum     int
}

// plan runs the rule cascade over the sorted day sequence and enforces the
// global constraints: weekly quota, minimum spacing, no adjacent waterings.
func plan(days []DayFeatures, p Policy, today string) []Decision {
	decisions := make([]Decision, 0, len(days))
	var st plannerState

	for i, d := range days {
		year, week := isoWeek(d.Date)
		if i > 0 && (year != st.weekYear || week != st.weekNum) {
			st.weekYes = 0
		}
		st.weekYear, st.weekNum = year, week

		score := scoreDay(d)
		status := tentativeStatus(d, p, st)

		if status == StatusMaybe {
			if positiveOverride(d, p) {
				status = StatusYes
			} else {
				status = statusFromScore(score)
			}
		}

		// Re-check the quota and spacing before committing: the override and
		// the score fallback can both produce a yes the cascade never vetted.
		if status == StatusYes && yesBlocked(d.Date, p, st) {
			status = StatusNo
		}

		if status == StatusYes {
			st.lastYesDate = d.Date
			st.weekYes++
		}

		if status == StatusYes && convectiveRisk(d, p) && d.Hi < softenBelowHi {
			status = StatusMaybe
		}

		decisions = append(decisions, Decision{Date: d.Date, Status: status, Score: round2(score)})
	}

	dropAdjacentYes(days, decisions)
	nudgeForwardCoverage(days, decisions, p, today)
	softenConvective(days, decisions, p)
	dropAdjacentYes(days, decisions)

	return decisions
}

// tentativeStatus is the first-match-wins rule cascade.
func tentativeStatus(d DayFeatures, p Policy, st plannerState) Status {
	switch {
	case d.Rain >= p.RainSkip,
		d.RainPast3 >= p.RainSkip3,
		d.RainNext3 >= rainNext3Skip,
		float64(d.Humidity) >= p.HumidHigh && d.HiNext3 < p.WarmDay,
		yesBlocked(d.Date, p, st):
		return StatusNo
	case float64(d.Pop) >= p.PopCaution && d.Rain < p.QPFTinyToday && d.RainNext3 < p.QPFTinyNext3:
		// High chance of rain but guidance shows only trace amounts; likely a
		// brief convective burst, so defer rather than water into it.
		return StatusNo
	case convectiveRisk(d, p) && float64(d.Pop) < p.PopCaution:
		return StatusMaybe
	default:
		return StatusMaybe
	}
}

// positiveOverride upgrades a still-undecided day when either a multi-day
// heat wave or a single hot dry day warrants watering.
func positiveOverride(d DayFeatures, p Policy) bool {
	heatWave := d.HiNext3 >= p.HotWave &&
		d.RainNext3 < heatWaveRainCap &&
		d.RainPast3 < p.DryTrigger3 &&
		float64(d.Humidity) < p.HumidMod
	hotDry := float64(d.Hi) >= p.HotDay &&
		d.RainPast3 < p.DryTrigger3 &&
		float64(d.Humidity) < p.HumidHigh
	return heatWave || hotDry
}

// yesBlocked reports whether the weekly quota or minimum spacing forbids a
// yes on the given date.
func yesBlocked(date string, p Policy, st plannerState) bool {
	if st.weekYes >= p.MaxYesPerWeek {
		return true
	}
	return st.lastYesDate != "" && daysBetween(date, st.lastYesDate) <= p.MinGapDays
}

// dropAdjacentYes demotes the later of any two calendar-adjacent yes days.
// The earlier one is never touched.
func dropAdjacentYes(days []DayFeatures, decisions []Decision) {
	for i := 1; i < len(decisions); i++ {
		if decisions[i-1].Status == StatusYes && decisions[i].Status == StatusYes &&
			daysBetween(days[i].Date, days[i-1].Date) == 1 {
			decisions[i].Status = StatusNo
		}
	}
}

// softenConvective demotes any yes that falls on a convective-risk day unless
// the heat is extreme.
func softenConvective(days []DayFeatures, decisions []Decision, p Policy) {
	for i, d := range days {
		if decisions[i].Status == StatusYes && convectiveRisk(d, p) && d.Hi < softenBelowHi {
			decisions[i].Status = StatusMaybe
		}
	}
}

// nudgeForwardCoverage upgrades at most one eligible maybe to yes when the
// week ahead is hot, dry, and underwatered.
func nudgeForwardCoverage(days []DayFeatures, decisions []Decision, p Policy, today string) {
	start, found := windowStart(days, today)
	end := min(start+nudgeWindowDays, len(days))
	if !found {
		// Whole window precedes today: consider the full array instead.
		end = len(days)
	}
	if start >= end {
		return
	}

	var totalRain, hiSum float64
	var windowYes int
	for i := start; i < end; i++ {
		totalRain += days[i].Rain
		hiSum += float64(days[i].Hi)
		if decisions[i].Status == StatusYes {
			windowYes++
		}
	}
	avgHi := hiSum / float64(end-start)

	if totalRain >= nudgeWindowRain || avgHi < nudgeWindowAvgHi || windowYes >= 2 {
		return
	}

	// Spacing is checked against every committed yes, not just the window,
	// so the upgrade can never violate the global gap constraint.
	var yesIdx []int
	for i := range decisions {
		if decisions[i].Status == StatusYes {
			yesIdx = append(yesIdx, i)
		}
	}

	for i := start; i < end; i++ {
		if decisions[i].Status != StatusMaybe || convectiveRisk(days[i], p) {
			continue
		}
		spaced := true
		for _, j := range yesIdx {
			gap := daysBetween(days[i].Date, days[j].Date)
			if gap < 0 {
				gap = -gap
			}
			if gap <= p.MinGapDays {
				spaced = false
				break
			}
		}
		if !spaced {
			continue
		}
		// The upgrade must also respect the weekly quota.
		year, week := isoWeek(days[i].Date)
		weekYes := 0
		for _, j := range yesIdx {
			if y, w := isoWeek(days[j].Date); y == year && w == week {
				weekYes++
			}
		}
		if weekYes < p.MaxYesPerWeek {
			decisions[i].Status = StatusYes
			return
		}
	}
}

// windowStart locates the first index at or after today. When every date
// precedes today it falls back to the start of the array, reporting the miss.
func windowStart(days []DayFeatures, today string) (int, bool) {
	for i, d := range days {
		if d.Date >= today {
			return i, true
		}
	}
	return 0, false
}

package engine

import "math"

// Material-change thresholds. A pinned recommendation only flips when one of
// these crossings shows the forecast genuinely moved, not just wobbled.
const (
	popWasBelow       = 50
	popNowAtLeast     = 60
	rainSoonWasBelow  = 0.20
	rainSoonNowAt     = 0.30
	rainPastWasBelow  = 0.50
	rainPastNowAt     = 0.60
	scoreShiftAtLeast = 0.15
)

// stabilize pins today's freshly computed status to the previous plan's
// status unless a material change occurred. Only today is ever pinned; every
// other day always reflects fresh computation, and the fresh score is kept
// even when the status is pinned.
func stabilize(today string, weather []DayFeatures, decisions []Decision, prev *Plan) {
	if prev == nil || len(decisions) == 0 {
		return
	}

	idx, _ := windowStart(weather, today)
	date := decisions[idx].Date

	prevDecision, okD := findDecision(prev.Decisions, date)
	prevWeather, okW := findWeather(prev.Weather, date)
	if !okD || !okW {
		return
	}
	if prevDecision.Status == decisions[idx].Status {
		return
	}

	if materialChange(prevWeather, weather[idx], prevDecision.Score, decisions[idx].Score) {
		return
	}
	decisions[idx].Status = prevDecision.Status
}

func materialChange(prev, next DayFeatures, prevScore, nextScore float64) bool {
	if float64(prev.Pop) < popWasBelow && float64(next.Pop) >= popNowAtLeast {
		return true
	}
	if prev.RainNext3 < rainSoonWasBelow && next.RainNext3 >= rainSoonNowAt {
		return true
	}
	if prev.RainPast3 < rainPastWasBelow && next.RainPast3 >= rainPastNowAt {
		return true
	}
	return math.Abs(prevScore-nextScore) >= scoreShiftAtLeast
}

func findDecision(decisions []Decision, date string) (Decision, bool) {
	for _, d := range decisions {
		if d.Date == date {
			return d, true
		}
	}
	return Decision{}, false
}

func findWeather(days []DayFeatures, date string) (DayFeatures, bool) {
	for _, d := range days {
		if d.Date == date {
			return d, true
		}
	}
	return DayFeatures{}, false
}

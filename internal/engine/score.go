package engine

import "math"

// Scoring weights and thresholds for the continuous watering-need model.
// Heat and accumulated dryness push toward watering; recent or imminent
// rain, ambient humidity, and precipitation probability push away. Wind is
// an evaporation proxy and pushes toward.
const (
	weightHeat     = 0.52
	weightDryness  = 0.42
	weightHumidity = 0.18
	weightRainSoon = 0.25
	weightWind     = 0.18
	weightPop      = 0.20

	scoreYes   = 0.60
	scoreMaybe = 0.40
)

// scoreDay computes the watering-need score for one day, in [0,1].
// Pure and deterministic: the same record always yields the same score.
func scoreDay(d DayFeatures) float64 {
	heat := math.Max(0, (float64(d.Hi)-80)/12)
	dryness := 1 - math.Min(1, d.RainPast3/0.6)
	humidityBrake := math.Min(1, float64(d.Humidity)/100)
	rainSoon := math.Min(1, d.RainNext3/0.25)
	windTerm := clamp((d.Wind-6)/14, 0, 1)
	popTerm := float64(d.Pop) / 100

	score := weightHeat*heat +
		weightDryness*dryness -
		weightHumidity*humidityBrake -
		weightRainSoon*rainSoon +
		weightWind*windTerm -
		weightPop*popTerm

	return clamp(score, 0, 1)
}

// statusFromScore classifies a score into the tri-state signal.
func statusFromScore(score float64) Status {
	switch {
	case score >= scoreYes:
		return StatusYes
	case score >= scoreMaybe:
		return StatusMaybe
	default:
		return StatusNo
	}
}

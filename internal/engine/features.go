package engine

import (
	"math"
	"sort"
	"strings"
)

// DayFeatures is one enriched, windowed weather record. The trailing and
// forward windows cover the day itself plus up to two neighbours, clipped at
// the array edges; they never wrap.
type DayFeatures struct {
	Date      string  `json:"date"`
	Hi        int     `json:"hi"`
	Lo        int     `json:"lo"`
	Rain      float64 `json:"rain"`     // inches, 2 decimals
	Humidity  int     `json:"humidity"` // percent
	Wind      float64 `json:"wind"`     // mph, 1 decimal
	Pop       int     `json:"pop"`      // percent
	Desc      string  `json:"desc"`
	RainPast3 float64 `json:"rainPast3"`
	HiNext3   float64 `json:"hiNext3"`
	RainNext3 float64 `json:"rainNext3"`
}

// buildFeatures sorts observations by date and derives the windowed records.
// Out-of-range numerics (negative rain, humidity or pop outside 0-100) are
// clamped so downstream scores stay finite and in range.
func buildFeatures(obs []Observation) []DayFeatures {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	days := make([]DayFeatures, len(sorted))
	for i, o := range sorted {
		days[i] = DayFeatures{
			Date:     o.Date,
			Hi:       int(math.Round(o.TempMax)),
			Lo:       int(math.Round(o.TempMin)),
			Rain:     round2(math.Max(0, o.Rain)),
			Humidity: int(math.Round(clamp(o.Humidity, 0, 100))),
			Wind:     round1(math.Max(0, o.WindSpeed)),
			Pop:      int(math.Round(clamp(o.PrecipProb, 0, 100))),
			Desc:     strings.ToLower(o.Description),
		}
	}

	n := len(days)
	for i := range days {
		for j := max(0, i-2); j <= i; j++ {
			days[i].RainPast3 += days[j].Rain
		}
		days[i].RainPast3 = round2(days[i].RainPast3)

		var hiSum float64
		var count int
		for j := i; j <= min(n-1, i+2); j++ {
			hiSum += float64(days[j].Hi)
			days[i].RainNext3 += days[j].Rain
			count++
		}
		// Average over the actual clipped window, not a fixed divisor.
		days[i].HiNext3 = hiSum / float64(count)
		days[i].RainNext3 = round2(days[i].RainNext3)
	}

	return days
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

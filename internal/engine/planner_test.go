package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampObservations builds a 10-day rain-free ramp from 78°F to 96°F.
func rampObservations() []Observation {
	obs := make([]Observation, 10)
	for i := range obs {
		obs[i] = Observation{
			Date:     fmt.Sprintf("2025-07-%02d", i+1),
			TempMax:  float64(78 + 2*i),
			TempMin:  65,
			Humidity: 30,
		}
	}
	return obs
}

func TestPlanHeatRamp(t *testing.T) {
	days := buildFeatures(rampObservations())
	decisions := plan(days, testPolicy(), "2025-07-01")

	want := []Status{
		StatusNo,    // 78°F, too mild
		StatusNo,    // 80°F
		StatusMaybe, // 82°F
		StatusMaybe, // 84°F
		StatusYes,   // 86°F, heat-wave override (forward avg 88°F)
		StatusNo,    // 88°F, spacing from the 5th
		StatusNo,    // 90°F, still within the gap
		StatusYes,   // 92°F, hot and dry
		StatusNo,    // spacing again
		StatusNo,
	}
	require.Len(t, decisions, len(want))
	for i, s := range want {
		assert.Equal(t, s, decisions[i].Status, "day %s", decisions[i].Date)
	}

	// Every 90°F+ day is either watered or blocked by spacing, never skipped
	// outright while dry.
	for i, d := range days {
		if d.Hi >= 90 && d.RainPast3 < 0.3 {
			assert.NotEqual(t, StatusMaybe, decisions[i].Status, "day %s left undecided", d.Date)
		}
	}
}

func TestPlanHeavyRainSkipsRegardlessOfHeat(t *testing.T) {
	obs := []Observation{
		{Date: "2025-08-10", TempMax: 95, TempMin: 75, Humidity: 20, Rain: 1.0},
		{Date: "2025-08-11", TempMax: 95, TempMin: 75, Humidity: 20},
		{Date: "2025-08-12", TempMax: 95, TempMin: 75, Humidity: 20},
	}

	decisions := plan(buildFeatures(obs), testPolicy(), "2025-08-10")

	assert.Equal(t, StatusNo, decisions[0].Status)
	// The inch of rain also saturates the trailing window of the next days.
	assert.Equal(t, StatusNo, decisions[1].Status)
	assert.Equal(t, StatusNo, decisions[2].Status)
}

func TestPlanWeeklyQuotaAndSpacing(t *testing.T) {
	p := testPolicy()
	p.MinGapDays = 1

	// One full ISO week (Mon-Sun) of hot dry days.
	obs := make([]Observation, 7)
	for i := range obs {
		obs[i] = Observation{
			Date:     fmt.Sprintf("2025-07-%02d", i+7),
			TempMax:  95,
			TempMin:  72,
			Humidity: 20,
		}
	}

	decisions := plan(buildFeatures(obs), p, "2025-07-07")

	want := []Status{StatusYes, StatusNo, StatusYes, StatusNo, StatusNo, StatusNo, StatusNo}
	for i, s := range want {
		assert.Equal(t, s, decisions[i].Status, "day %s", decisions[i].Date)
	}
}

func TestPlanConvectiveSoftening(t *testing.T) {
	base := Observation{Date: "2025-08-10", TempMin: 72, Humidity: 30, PrecipProb: 50}

	// Hot but not extreme: the likely thunderstorm wins.
	warm := base
	warm.TempMax = 90
	decisions := plan(buildFeatures([]Observation{warm}), testPolicy(), "2025-08-10")
	assert.Equal(t, StatusMaybe, decisions[0].Status)

	// Extreme heat keeps the watering despite the storm risk.
	hot := base
	hot.TempMax = 94
	decisions = plan(buildFeatures([]Observation{hot}), testPolicy(), "2025-08-10")
	assert.Equal(t, StatusYes, decisions[0].Status)
}

func TestPlanHighPopWithTraceAmountsDefers(t *testing.T) {
	obs := []Observation{
		{Date: "2025-08-10", TempMax: 95, TempMin: 75, Humidity: 20, PrecipProb: 70},
	}

	decisions := plan(buildFeatures(obs), testPolicy(), "2025-08-10")

	// pop >= popCaution with only trace QPF: defer rather than water into a
	// likely convective burst.
	assert.Equal(t, StatusNo, decisions[0].Status)
}

func TestPlanForwardCoverageNudge(t *testing.T) {
	// A hot, bone-dry week where every day scores just under the yes line.
	obs := make([]Observation, 7)
	for i := range obs {
		obs[i] = Observation{
			Date:     fmt.Sprintf("2025-07-%02d", i+7),
			TempMax:  86,
			TempMin:  70,
			Humidity: 50,
		}
	}

	decisions := plan(buildFeatures(obs), testPolicy(), "2025-07-07")

	// Exactly one maybe is upgraded, earliest first.
	assert.Equal(t, StatusYes, decisions[0].Status)
	for i := 1; i < len(decisions); i++ {
		assert.Equal(t, StatusMaybe, decisions[i].Status, "day %s", decisions[i].Date)
	}
}

func TestPlanInvariantsOnMixedFortnight(t *testing.T) {
	rain := []float64{0, 0, 0.4, 0, 0.1, 0, 0, 0.6, 0, 0, 0.05, 0, 0.2, 0}
	obs := make([]Observation, 14)
	for i := range obs {
		obs[i] = Observation{
			Date:       fmt.Sprintf("2025-07-%02d", i+1),
			TempMax:    float64(75 + (i*7)%25),
			TempMin:    62,
			Humidity:   float64(30 + (i*13)%60),
			Rain:       rain[i],
			PrecipProb: float64((i * 29) % 100),
			WindSpeed:  float64((i * 5) % 20),
		}
	}

	for _, p := range []Policy{testPolicy(), func() Policy {
		p := testPolicy()
		p.MaxYesPerWeek = 1
		p.MinGapDays = 3
		return p
	}()} {
		res, err := Run(Input{Observations: obs, Policy: p, Today: "2025-07-01"})
		require.NoError(t, err)
		requireInvariants(t, res.Plan, p)
	}
}

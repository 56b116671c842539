package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testPolicy returns the threshold set used across the engine tests; values
// mirror a typical warm-climate lawn configuration.
func testPolicy() Policy {
	return Policy{
		RainSkip:      0.3,
		RainSkip3:     0.6,
		HumidHigh:     70,
		WarmDay:       80,
		MaxYesPerWeek: 2,
		MinGapDays:    2,
		PopCaution:    60,
		QPFTinyToday:  0.08,
		QPFTinyNext3:  0.12,
		HotWave:       88,
		DryTrigger3:   0.3,
		HumidMod:      55,
		HotDay:        90,
		WindyMph:      14,
	}
}

// requireInvariants asserts the global plan constraints: matched lengths and
// dates, no adjacent waterings, weekly quota, and minimum spacing.
func requireInvariants(t *testing.T, plan Plan, p Policy) {
	t.Helper()

	require.Len(t, plan.Decisions, len(plan.Weather))

	var yesDates []string
	for i, d := range plan.Decisions {
		require.Equal(t, plan.Weather[i].Date, d.Date)
		require.True(t, d.Status.Valid(), "decision %s has status %q", d.Date, d.Status)
		require.GreaterOrEqual(t, d.Score, 0.0)
		require.LessOrEqual(t, d.Score, 1.0)
		if d.Status == StatusYes {
			yesDates = append(yesDates, d.Date)
		}
	}

	for i := 1; i < len(plan.Decisions); i++ {
		if plan.Decisions[i-1].Status == StatusYes && plan.Decisions[i].Status == StatusYes {
			require.NotEqual(t, 1, daysBetween(plan.Decisions[i].Date, plan.Decisions[i-1].Date),
				"adjacent waterings on %s and %s", plan.Decisions[i-1].Date, plan.Decisions[i].Date)
		}
	}

	perWeek := make(map[[2]int]int)
	for _, date := range yesDates {
		year, week := isoWeek(date)
		perWeek[[2]int{year, week}]++
	}
	for week, count := range perWeek {
		require.LessOrEqual(t, count, p.MaxYesPerWeek, "week %v over quota", week)
	}

	for i := 1; i < len(yesDates); i++ {
		require.Greater(t, daysBetween(yesDates[i], yesDates[i-1]), p.MinGapDays,
			"waterings %s and %s too close", yesDates[i-1], yesDates[i])
	}
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDayKnownValues(t *testing.T) {
	tests := []struct {
		name string
		day  DayFeatures
		want float64
	}{
		{
			name: "mild dry day",
			day:  DayFeatures{Hi: 78, Humidity: 30},
			want: 0.366, // dryness 0.42 minus humidity brake 0.054
		},
		{
			name: "hot dry day",
			day:  DayFeatures{Hi: 92, Humidity: 30},
			want: 0.886,
		},
		{
			name: "extreme heat clamps to one",
			day:  DayFeatures{Hi: 110, Humidity: 0},
			want: 1.0,
		},
		{
			name: "soaked and stormy floors at zero",
			day:  DayFeatures{Hi: 70, Humidity: 100, RainPast3: 1.0, RainNext3: 1.0, Pop: 100},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreDay(tt.day), 1e-9)
		})
	}
}

func TestScoreDayDeterministicAndBounded(t *testing.T) {
	day := DayFeatures{Hi: 85, Humidity: 45, RainPast3: 0.2, RainNext3: 0.1, Wind: 12, Pop: 30}

	first := scoreDay(day)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, scoreDay(day))
	}

	// Sweep the corners of the input space.
	for _, hi := range []int{-20, 0, 60, 80, 95, 120} {
		for _, rain := range []float64{0, 0.3, 2.0} {
			for _, hum := range []int{0, 50, 100} {
				s := scoreDay(DayFeatures{Hi: hi, Humidity: hum, RainPast3: rain, RainNext3: rain, Pop: hum, Wind: float64(hi)})
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 1.0)
			}
		}
	}
}

func TestStatusFromScoreThresholds(t *testing.T) {
	assert.Equal(t, StatusYes, statusFromScore(0.60))
	assert.Equal(t, StatusYes, statusFromScore(0.95))
	assert.Equal(t, StatusMaybe, statusFromScore(0.59))
	assert.Equal(t, StatusMaybe, statusFromScore(0.40))
	assert.Equal(t, StatusNo, statusFromScore(0.39))
	assert.Equal(t, StatusNo, statusFromScore(0.0))
}

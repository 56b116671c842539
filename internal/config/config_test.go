package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ForecastDays)
	assert.Equal(t, "8080", cfg.Port)
	assert.NoError(t, cfg.Policy.Validate())
	assert.InDelta(t, 0.3, cfg.Policy.RainSkip, 1e-9)
	assert.Equal(t, 2, cfg.Policy.MaxYesPerWeek)
}

func TestLoadPolicyOverrides(t *testing.T) {
	t.Setenv("POLICY_HOT_DAY", "95")
	t.Setenv("POLICY_MIN_GAP_DAYS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 95, cfg.Policy.HotDay, 1e-9)
	assert.Equal(t, 3, cfg.Policy.MinGapDays)
}

func TestLoadLocations(t *testing.T) {
	t.Setenv("ADVISOR_LOCATIONS", "austin:30.27:-97.74, dallas:32.78:-96.80")

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Locations, 2)
	assert.Equal(t, "austin", cfg.Locations[0].Name)
	assert.InDelta(t, 30.27, cfg.Locations[0].Lat, 1e-9)
	assert.Equal(t, "dallas", cfg.Locations[1].Name)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("FORECAST_DAYS", "20")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedLocation(t *testing.T) {
	t.Setenv("ADVISOR_LOCATIONS", "austin:30.27")
	_, err := Load()
	assert.Error(t, err)
}

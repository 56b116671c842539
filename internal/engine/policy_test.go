package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyUnmarshalRequiresEveryKey(t *testing.T) {
	payload := []byte(`{
		"rainSkip": 0.3, "rainSkip3": 0.6, "humidHigh": 70, "warmDay": 80,
		"maxYesPerWeek": 2, "minGapDays": 2, "popCaution": 60,
		"qpfTinyToday": 0.08, "qpfTinyNext3": 0.12, "hotWave": 88,
		"dryTrigger3": 0.3, "humidMod": 55, "hotDay": 90, "windyMph": 14
	}`)

	var p Policy
	require.NoError(t, json.Unmarshal(payload, &p))
	assert.Equal(t, testPolicy(), p)
}

func TestPolicyUnmarshalNamesMissingKeys(t *testing.T) {
	payload := []byte(`{"rainSkip": 0.3, "humidHigh": 70}`)

	var p Policy
	err := json.Unmarshal(payload, &p)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "rainSkip3")
	assert.Contains(t, cfgErr.Missing, "windyMph")
	assert.NotContains(t, cfgErr.Missing, "rainSkip")
	assert.NotContains(t, cfgErr.Missing, "humidHigh")
}

func TestPolicyValidateCatchesUnsetThresholds(t *testing.T) {
	assert.NoError(t, testPolicy().Validate())

	p := testPolicy()
	p.HotDay = 0
	p.MaxYesPerWeek = 0

	err := p.Validate()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ElementsMatch(t, []string{"hotDay", "maxYesPerWeek"}, cfgErr.Missing)
}

func TestPolicyValidateAllowsZeroGap(t *testing.T) {
	p := testPolicy()
	p.MinGapDays = 0
	assert.NoError(t, p.Validate())
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsEmptyInput(t *testing.T) {
	_, err := Run(Input{Policy: testPolicy(), Today: "2025-08-10"})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRunRejectsBadDates(t *testing.T) {
	obs := []Observation{
		{Date: "2025-08-10", TempMax: 85},
		{Date: "10/11/2025", TempMax: 85},
	}

	_, err := Run(Input{Observations: obs, Policy: testPolicy(), Today: "2025-08-10"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 1, vErr.Index)
	assert.Equal(t, "date", vErr.Field)
}

func TestRunRejectsBadToday(t *testing.T) {
	obs := []Observation{{Date: "2025-08-10", TempMax: 85}}

	_, err := Run(Input{Observations: obs, Policy: testPolicy(), Today: "today"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "today", vErr.Field)
}

func TestRunRejectsIncompletePolicy(t *testing.T) {
	obs := []Observation{{Date: "2025-08-10", TempMax: 85}}

	_, err := Run(Input{Observations: obs, Today: "2025-08-10"})

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunEndToEnd(t *testing.T) {
	res, err := Run(Input{
		Observations: rampObservations(),
		Policy:       testPolicy(),
		Today:        "2025-07-01",
	})
	require.NoError(t, err)

	requireInvariants(t, res.Plan, testPolicy())
	assert.Len(t, res.Hints.Labels, 10)
	assert.Contains(t, res.Hints.YesDatesNext7, "2025-07-05")
	for _, c := range res.Hints.Callouts {
		assert.NotEmpty(t, c.Date)
		assert.NotEmpty(t, c.Reason)
	}
}

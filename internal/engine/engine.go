// Package engine implements the weather-to-watering decision engine: a
// deterministic rule-and-score scheduler that converts a short daily weather
// outlook into a day-by-day watering plan under spacing and quota
// constraints, with a hysteresis layer that keeps today's recommendation
// stable across recomputations.
//
// The engine performs no I/O and holds no state between calls; the only
// cross-call input is the optional previous Plan the caller persisted.
package engine

// Input bundles everything one engine run consumes.
type Input struct {
	Observations []Observation `json:"observations"`
	Policy       Policy        `json:"policy"`
	Previous     *Plan         `json:"previous,omitempty"`
	Today        string        `json:"today"` // ISO YYYY-MM-DD
}

// Result is the finalized plan plus the narrative hints derived from it.
type Result struct {
	Plan  Plan  `json:"plan"`
	Hints Hints `json:"hints"`
}

// Run executes the full pipeline: feature building, planning, stabilization
// against the optional previous plan, and hint derivation. It is pure and
// synchronous; concurrent runs for different inputs need no coordination.
func Run(in Input) (*Result, error) {
	if err := in.Policy.Validate(); err != nil {
		return nil, err
	}
	if len(in.Observations) == 0 {
		return nil, ErrEmptyInput
	}
	for i, o := range in.Observations {
		if _, err := parseDate(o.Date); err != nil {
			return nil, &ValidationError{Index: i, Field: "date", Value: o.Date}
		}
	}
	if _, err := parseDate(in.Today); err != nil {
		return nil, &ValidationError{Index: -1, Field: "today", Value: in.Today}
	}

	weather := buildFeatures(in.Observations)
	decisions := plan(weather, in.Policy, in.Today)
	stabilize(in.Today, weather, decisions, in.Previous)
	hints := buildHints(weather, decisions, in.Policy, in.Today)

	return &Result{
		Plan:  Plan{Weather: weather, Decisions: decisions},
		Hints: hints,
	}, nil
}

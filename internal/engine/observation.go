package engine

// Observation is one normalized daily weather record as supplied by a
// forecast source. Dates are ISO YYYY-MM-DD and unique per array; order is
// not guaranteed. PrecipProb and WindSpeed are optional and default to 0.
type Observation struct {
	Date        string  `json:"date" validate:"required"`
	TempMax     float64 `json:"temp_max"` // °F
	TempMin     float64 `json:"temp_min"` // °F
	Humidity    float64 `json:"humidity"` // percent, 0-100
	Description string  `json:"description"`
	Rain        float64 `json:"rain"`                  // inches, >= 0
	PrecipProb  float64 `json:"precip_prob,omitempty"` // percent, 0-100
	WindSpeed   float64 `json:"wind_speed,omitempty"`  // mph
}

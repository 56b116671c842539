// Package weather defines the normalized forecast contract the advisor
// consumes: a location plus a source capable of producing daily observations
// in the engine's units (°F, inches, mph).
package weather

import (
	"context"
	"fmt"

	"github.com/verdantly/watering-advisor/internal/engine"
)

// Location is a logical place for which we compute watering plans.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%s@%.4f,%.4f", l.Name, l.Lat, l.Lon)
}

// ForecastSource abstracts a daily-forecast provider (Open-Meteo,
// OpenWeatherMap, WeatherAPI). Implementations normalize provider payloads
// and units; they never interpret the weather.
type ForecastSource interface {
	Name() string
	FetchDaily(ctx context.Context, loc Location, days int) ([]engine.Observation, error)
}

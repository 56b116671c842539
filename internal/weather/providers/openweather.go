package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/weather"
)

const mmPerInch = 25.4

// OpenWeatherSource implements weather.ForecastSource against the
// OpenWeatherMap One Call daily forecast.
type OpenWeatherSource struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherSource(client *http.Client, apiKey string) *OpenWeatherSource {
	return &OpenWeatherSource{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		httpCfg: HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit: newCircuit("openweather"),
	}
}

func (s *OpenWeatherSource) Name() string {
	return s.name
}

func (s *OpenWeatherSource) FetchDaily(ctx context.Context, loc weather.Location, days int) ([]engine.Observation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", s.apiKey)
		values.Set("lat", fmt.Sprintf("%f", loc.Lat))
		values.Set("lon", fmt.Sprintf("%f", loc.Lon))
		values.Set("units", "imperial")
		values.Set("exclude", "current,minutely,hourly,alerts")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := fetchWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Max float64 `json:"max"`
				Min float64 `json:"min"`
			} `json:"temp"`
			Humidity  float64 `json:"humidity"`
			WindSpeed float64 `json:"wind_speed"`
			Pop       float64 `json:"pop"`  // 0-1
			Rain      float64 `json:"rain"` // mm even with imperial units
			Weather   []struct {
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	obs := make([]engine.Observation, 0, days)
	for _, d := range payload.Daily {
		if len(obs) >= days {
			break
		}
		o := engine.Observation{
			Date:       time.Unix(d.Dt, 0).UTC().Format("2006-01-02"),
			TempMax:    d.Temp.Max,
			TempMin:    d.Temp.Min,
			Humidity:   d.Humidity,
			WindSpeed:  d.WindSpeed,
			Rain:       d.Rain / mmPerInch,
			PrecipProb: d.Pop * 100,
		}
		if len(d.Weather) > 0 {
			o.Description = d.Weather[0].Description
		}
		obs = append(obs, o)
	}

	return obs, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/weather"
)

// WeatherAPISource implements weather.ForecastSource for WeatherAPI.com's
// forecast endpoint.
type WeatherAPISource struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPISource(client *http.Client, apiKey string) *WeatherAPISource {
	return &WeatherAPISource{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		httpCfg: HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit: newCircuit("weatherapi"),
	}
}

func (s *WeatherAPISource) Name() string {
	return s.name
}

func (s *WeatherAPISource) FetchDaily(ctx context.Context, loc weather.Location, days int) ([]engine.Observation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", s.apiKey)
		values.Set("q", fmt.Sprintf("%f,%f", loc.Lat, loc.Lon))
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := fetchWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempF      float64 `json:"maxtemp_f"`
					MinTempF      float64 `json:"mintemp_f"`
					TotalPrecipIn float64 `json:"totalprecip_in"`
					AvgHumidity   float64 `json:"avghumidity"`
					MaxWindMph    float64 `json:"maxwind_mph"`
					ChanceOfRain  string  `json:"daily_chance_of_rain"`
					Condition     struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	obs := make([]engine.Observation, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		pop, _ := strconv.ParseFloat(fd.Day.ChanceOfRain, 64)
		obs = append(obs, engine.Observation{
			Date:        fd.Date,
			TempMax:     fd.Day.MaxTempF,
			TempMin:     fd.Day.MinTempF,
			Humidity:    fd.Day.AvgHumidity,
			Rain:        fd.Day.TotalPrecipIn,
			PrecipProb:  pop,
			WindSpeed:   fd.Day.MaxWindMph,
			Description: fd.Day.Condition.Text,
		})
	}

	return obs, nil
}

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

// OpenMeteoSource implements weather.ForecastSource for Open-Meteo's daily
// forecast API. No API key is required.
type OpenMeteoSource struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoSource(client *http.Client) *OpenMeteoSource {
	return &OpenMeteoSource{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{Client: client, Backoff: defaultBackoff()},
		circuit: newCircuit("openmeteo"),
	}
}

func (s *OpenMeteoSource) Name() string {
	return s.name
}

func (s *OpenMeteoSource) FetchDaily(ctx context.Context, loc weather.Location, days int) ([]engine.Observation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", loc.Lon))
		values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,"+
			"precipitation_probability_max,windspeed_10m_max,relative_humidity_2m_mean,weathercode")
		// Ask for the engine's units directly so no conversion is needed.
		values.Set("temperature_unit", "fahrenheit")
		values.Set("windspeed_unit", "mph")
		values.Set("precipitation_unit", "inch")
		values.Set("timezone", "UTC")
		values.Set("forecast_days", strconv.Itoa(days))

		u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := fetchWithResilience(ctx, s.httpCfg, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time          []string  `json:"time"`
			TempMax       []float64 `json:"temperature_2m_max"`
			TempMin       []float64 `json:"temperature_2m_min"`
			PrecipSum     []float64 `json:"precipitation_sum"`
			PrecipProbMax []float64 `json:"precipitation_probability_max"`
			WindMax       []float64 `json:"windspeed_10m_max"`
			HumidityMean  []float64 `json:"relative_humidity_2m_mean"`
			WeatherCode   []int     `json:"weathercode"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	obs := make([]engine.Observation, 0, len(d.Time))
	for i, date := range d.Time {
		o := engine.Observation{Date: date}
		if i < len(d.TempMax) {
			o.TempMax = d.TempMax[i]
		}
		if i < len(d.TempMin) {
			o.TempMin = d.TempMin[i]
		}
		if i < len(d.PrecipSum) {
			o.Rain = d.PrecipSum[i]
		}
		if i < len(d.PrecipProbMax) {
			o.PrecipProb = d.PrecipProbMax[i]
		}
		if i < len(d.WindMax) {
			o.WindSpeed = d.WindMax[i]
		}
		if i < len(d.HumidityMean) {
			o.Humidity = d.HumidityMean[i]
		}
		if i < len(d.WeatherCode) {
			o.Description = describeWeatherCode(d.WeatherCode[i])
		}
		obs = append(obs, o)
	}

	return obs, nil
}

// describeWeatherCode maps Open-Meteo WMO weather codes to short free-text
// descriptions (simplified).
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code >= 1 && code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "rain showers"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "mixed conditions"
	}
}

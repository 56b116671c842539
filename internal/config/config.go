package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/weather"
)

// AppConfig is the full service configuration, read from the environment.
type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// RefreshInterval controls how often plans are recomputed per location.
	RefreshInterval time.Duration

	// ForecastDays is the horizon requested from forecast sources.
	ForecastDays int

	// Locations to plan for, parsed from ADVISOR_LOCATIONS.
	Locations []weather.Location

	// Snapshot store retention.
	StoreMaxHistory int           // max snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max snapshot age (0 = unlimited)

	// Policy holds the watering thresholds. The service supplies defaults for
	// every key; the engine itself never defaults.
	Policy engine.Policy

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from the environment with service-level defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")

	interval, err := getenvDuration("REFRESH_INTERVAL", "6h")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 10)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 14 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 14, got %d", cfg.ForecastDays)
	}

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 30)

	maxAge, err := getenvDuration("STORE_MAX_AGE", "168h")
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxAge = maxAge

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	cfg.Policy = loadPolicy()
	if err := cfg.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watering policy: %w", err)
	}

	return cfg, nil
}

// loadPolicy materializes a complete engine policy from the environment.
// Defaults correspond to a warm-climate lawn watered at most twice a week.
func loadPolicy() engine.Policy {
	return engine.Policy{
		RainSkip:      getenvFloat("POLICY_RAIN_SKIP", 0.3),
		RainSkip3:     getenvFloat("POLICY_RAIN_SKIP_3", 0.6),
		HumidHigh:     getenvFloat("POLICY_HUMID_HIGH", 70),
		WarmDay:       getenvFloat("POLICY_WARM_DAY", 80),
		MaxYesPerWeek: getenvInt("POLICY_MAX_YES_PER_WEEK", 2),
		MinGapDays:    getenvInt("POLICY_MIN_GAP_DAYS", 2),
		PopCaution:    getenvFloat("POLICY_POP_CAUTION", 60),
		QPFTinyToday:  getenvFloat("POLICY_QPF_TINY_TODAY", 0.08),
		QPFTinyNext3:  getenvFloat("POLICY_QPF_TINY_NEXT_3", 0.12),
		HotWave:       getenvFloat("POLICY_HOT_WAVE", 88),
		DryTrigger3:   getenvFloat("POLICY_DRY_TRIGGER_3", 0.3),
		HumidMod:      getenvFloat("POLICY_HUMID_MOD", 55),
		HotDay:        getenvFloat("POLICY_HOT_DAY", 90),
		WindyMph:      getenvFloat("POLICY_WINDY_MPH", 14),
	}
}

// loadLocations parses ADVISOR_LOCATIONS, a comma-separated list of
// name:lat:lon entries, e.g. "austin:30.27:-97.74,dallas:32.78:-96.80".
func loadLocations() ([]weather.Location, error) {
	raw := os.Getenv("ADVISOR_LOCATIONS")
	if raw == "" {
		return nil, nil
	}

	var locs []weather.Location
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid location entry %q, want name:lat:lon", entry)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", entry, err)
		}
		locs = append(locs, weather.Location{Name: parts[0], Lat: lat, Lon: lon})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

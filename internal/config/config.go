package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"skylink/internal/classifier"
	"skylink/internal/models"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort         string
	AircraftCSVPath string
	DroneCSVPath    string
	OutputDir       string
	DefaultMode     models.DataMode

	// Tier configuration; loaded from TIER_CONFIG_PATH when set,
	// otherwise the built-in defaults.
	Tiers []classifier.Tier

	// Snapshot filtering (applied when loading real data)
	AltitudeFilterEnabled bool
	MinAltitudeM          float64
	MaxAltitudeM          float64
	GeoFilterEnabled      bool
	GeoMinLat             float64
	GeoMaxLat             float64
	GeoMinLon             float64
	GeoMaxLon             float64

	// Refresh settings
	RefreshPerSecond float64 // on-demand refresh rate limit
	RefreshBurst     int
}

// tierFile is the YAML shape of a tier override file.
type tierFile struct {
	Tiers []classifier.Tier `yaml:"tiers"`
}

// LoadConfig loads configuration from environment variables. Tier
// misconfiguration is rejected here so the classifier never sees an
// invalid tier list at pass time.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppPort:          getEnv("SKYLINK_PORT", "8080"),
		AircraftCSVPath:  getEnv("AIRCRAFT_CSV_PATH", "plane_data/opensky_live_states.csv"),
		DroneCSVPath:     getEnv("DRONE_CSV_PATH", "drone_data/drone_dataset.csv"),
		OutputDir:        getEnv("OUTPUT_DIR", "outputs"),
		DefaultMode:      models.DataMode(getEnv("DATA_MODE", string(models.ModeTest))),
		MinAltitudeM:     0,
		MaxAltitudeM:     15000,
		GeoMinLat:        -90,
		GeoMaxLat:        90,
		GeoMinLon:        -180,
		GeoMaxLon:        180,
		RefreshPerSecond: 1,
		RefreshBurst:     2,
	}

	if !cfg.DefaultMode.Valid() {
		return nil, fmt.Errorf("invalid DATA_MODE value: %q", cfg.DefaultMode)
	}

	if v := os.Getenv("ALTITUDE_FILTER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ALTITUDE_FILTER_ENABLED value: %v", err)
		}
		cfg.AltitudeFilterEnabled = enabled
	}
	if err := parseFloatEnv("MIN_ALTITUDE_M", &cfg.MinAltitudeM); err != nil {
		return nil, err
	}
	if err := parseFloatEnv("MAX_ALTITUDE_M", &cfg.MaxAltitudeM); err != nil {
		return nil, err
	}
	if cfg.AltitudeFilterEnabled && cfg.MinAltitudeM > cfg.MaxAltitudeM {
		return nil, fmt.Errorf("MIN_ALTITUDE_M must not exceed MAX_ALTITUDE_M")
	}

	if v := os.Getenv("GEO_FILTER_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GEO_FILTER_ENABLED value: %v", err)
		}
		cfg.GeoFilterEnabled = enabled
	}
	for env, dst := range map[string]*float64{
		"GEO_MIN_LAT": &cfg.GeoMinLat,
		"GEO_MAX_LAT": &cfg.GeoMaxLat,
		"GEO_MIN_LON": &cfg.GeoMinLon,
		"GEO_MAX_LON": &cfg.GeoMaxLon,
	} {
		if err := parseFloatEnv(env, dst); err != nil {
			return nil, err
		}
	}
	if cfg.GeoFilterEnabled && (cfg.GeoMinLat > cfg.GeoMaxLat || cfg.GeoMinLon > cfg.GeoMaxLon) {
		return nil, fmt.Errorf("geographic filter bounds are inverted")
	}

	if err := parseFloatEnv("REFRESH_PER_SECOND", &cfg.RefreshPerSecond); err != nil {
		return nil, err
	}
	if v := os.Getenv("REFRESH_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REFRESH_BURST value: %v", err)
		}
		cfg.RefreshBurst = burst
	}
	if cfg.RefreshPerSecond <= 0 || cfg.RefreshBurst < 1 {
		return nil, fmt.Errorf("refresh rate limit must be positive")
	}

	tiers, err := loadTiers(os.Getenv("TIER_CONFIG_PATH"))
	if err != nil {
		return nil, err
	}
	cfg.Tiers = tiers

	return cfg, nil
}

// loadTiers reads the tier override file when a path is given, otherwise
// falls back to the defaults. Either way the result is validated.
func loadTiers(path string) ([]classifier.Tier, error) {
	tiers := classifier.DefaultTiers()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tier config file: %w", err)
		}
		var tf tierFile
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return nil, fmt.Errorf("failed to parse tier config file: %w", err)
		}
		tiers = tf.Tiers
	}
	if err := classifier.ValidateTiers(tiers); err != nil {
		return nil, fmt.Errorf("invalid tier configuration: %w", err)
	}
	return tiers, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFloatEnv(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value: %v", key, err)
	}
	*dst = f
	return nil
}

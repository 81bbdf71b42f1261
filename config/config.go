// Package config loads the module's configuration from the environment,
// honoring a .env file in the working directory if one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
)

// Defaults match the original deployment's constants.
const (
	defaultPort      = "/dev/cu.usbserial-31310"
	defaultBaud      = 9600
	defaultLogPath   = "TemHumi.log"
	defaultChartPath = "temhumi_plot.png"

	defaultHumidityOffset    = -4.0
	defaultTemperatureOffset = -0.5

	defaultRecordInterval = 10 * time.Minute
	defaultRetention      = 24 * time.Hour
	defaultPollInterval   = 100 * time.Millisecond

	defaultHumidityThreshold    = 0.5
	defaultTemperatureThreshold = 0.5
)

// Config holds everything the two entry points need.
type Config struct {
	Port string
	Baud int

	LogPath   string
	ChartPath string

	HumidityOffset    float64
	TemperatureOffset float64

	RecordInterval time.Duration
	Retention      time.Duration
	PollInterval   time.Duration

	// The change thresholds are accepted for compatibility with the
	// original configuration, but recording is gated on elapsed time only.
	HumidityThreshold    float64
	TemperatureThreshold float64
}

// Load reads configuration from the environment. A leading ~ in the log
// path is expanded to the user's home directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      envString("TEMHUMI_PORT", defaultPort),
		LogPath:   envString("TEMHUMI_LOG", defaultLogPath),
		ChartPath: envString("TEMHUMI_CHART", defaultChartPath),
	}

	var err error
	if cfg.Baud, err = envInt("TEMHUMI_BAUD", defaultBaud); err != nil {
		return nil, err
	}
	if cfg.HumidityOffset, err = envFloat("TEMHUMI_HUMIDITY_OFFSET", defaultHumidityOffset); err != nil {
		return nil, err
	}
	if cfg.TemperatureOffset, err = envFloat("TEMHUMI_TEMPERATURE_OFFSET", defaultTemperatureOffset); err != nil {
		return nil, err
	}
	if cfg.RecordInterval, err = envDuration("TEMHUMI_RECORD_INTERVAL", defaultRecordInterval); err != nil {
		return nil, err
	}
	if cfg.Retention, err = envDuration("TEMHUMI_RETENTION", defaultRetention); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = envDuration("TEMHUMI_POLL_INTERVAL", defaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.HumidityThreshold, err = envFloat("TEMHUMI_HUMIDITY_THRESHOLD", defaultHumidityThreshold); err != nil {
		return nil, err
	}
	if cfg.TemperatureThreshold, err = envFloat("TEMHUMI_TEMPERATURE_THRESHOLD", defaultTemperatureThreshold); err != nil {
		return nil, err
	}

	if cfg.LogPath, err = homedir.Expand(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("config: expanding TEMHUMI_LOG: %v", err)
	}

	if cfg.RecordInterval <= 0 {
		return nil, fmt.Errorf("config: TEMHUMI_RECORD_INTERVAL must be positive, got %v", cfg.RecordInterval)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("config: TEMHUMI_POLL_INTERVAL must be positive, got %v", cfg.PollInterval)
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %v", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %v", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s: %v", key, err)
	}
	return d, nil
}

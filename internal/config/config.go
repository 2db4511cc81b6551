package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	GinMode       string        `mapstructure:"GIN_MODE"`
	BaseURL       string        `mapstructure:"BASE_URL"`
	UserAgent     string        `mapstructure:"USER_AGENT"`
	HTTPTimeout   time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CourtesyDelay time.Duration `mapstructure:"COURTESY_DELAY"`
	ChunkSize     int           `mapstructure:"CHUNK_SIZE"`
	MaxBatchSize  int           `mapstructure:"MAX_BATCH_SIZE"`
	RateLimit     float64       `mapstructure:"RATE_LIMIT"`
	RateBurst     int           `mapstructure:"RATE_BURST"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	LogFormat     string        `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS": ":8080",
	"GIN_MODE":       "release",
	"BASE_URL":       "https://api-adresse.data.gouv.fr",
	"USER_AGENT":     "adresse-geocoder/1.0",
	"HTTP_TIMEOUT":   "10s",
	"COURTESY_DELAY": "100ms",
	"CHUNK_SIZE":     5,
	"MAX_BATCH_SIZE": 1000,
	"RATE_LIMIT":     10.0,
	"RATE_BURST":     20,
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "console",
}

// LoadConfig reads configuration from app.env in path, then overrides it with
// GEOCODER_ prefixed environment variables. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("GEOCODER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the geocoding client cannot run with.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("config: BASE_URL cannot be empty")
	case c.ChunkSize < 1:
		return fmt.Errorf("config: CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	case c.CourtesyDelay < 0:
		return fmt.Errorf("config: COURTESY_DELAY cannot be negative, got %s", c.CourtesyDelay)
	case c.HTTPTimeout <= 0:
		return fmt.Errorf("config: HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("config: MAX_BATCH_SIZE must be positive, got %d", c.MaxBatchSize)
	}
	return nil
}

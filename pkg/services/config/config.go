package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the runtime configuration shared by the CLI and the web
// server.
type AppConfig struct {
	APIBaseURL     string   `mapstructure:"api_base_url"`
	Timezone       string   `mapstructure:"timezone"`
	DBPath         string   `mapstructure:"db_path"`
	DefaultColumns []string `mapstructure:"default_columns"`
}

// LoadConfig reads the app config file and applies defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("timezone", "Australia/Sydney")
	v.SetDefault("db_path", "pulse.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	return &cfg, nil
}

// Location resolves the configured report timezone.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

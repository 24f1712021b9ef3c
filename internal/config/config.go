package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
	Landing   LandingConfig   `mapstructure:"landing"`
	RefData   RefDataConfig   `mapstructure:"refdata"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type WarehouseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// LandingConfig holds the per-entity landing locations the ingestion
// adapter reads from.
type LandingConfig struct {
	Dir        string `mapstructure:"dir"`
	Brands     string `mapstructure:"brands"`
	Categories string `mapstructure:"categories"`
	Products   string `mapstructure:"products"`
	Customers  string `mapstructure:"customers"`
	OrderItems string `mapstructure:"order_items"`
}

type RefDataConfig struct {
	Path string `mapstructure:"path"`
}

// CalendarConfig bounds the reporting horizon the date dimension is
// pre-populated for.
type CalendarConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Horizon parses the configured reporting horizon.
func (c CalendarConfig) Horizon() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid calendar start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid calendar end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("calendar end %s is before start %s", c.End, c.Start)
	}
	return start, end, nil
}

// LoadConfig loads configuration from config.yaml and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.medallion/")
	v.AddConfigPath("/etc/medallion/")

	// Enable environment variable override with MEDALLION_ prefix
	v.SetEnvPrefix("MEDALLION")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

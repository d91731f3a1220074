// Package config provides configuration management for the Turf Advisor application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Weather   WeatherConfig   `mapstructure:"weather" validate:"required"`
	Narrative NarrativeConfig `mapstructure:"narrative" validate:"required"`
	Batch     BatchConfig     `mapstructure:"batch" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	Timezone    string `mapstructure:"timezone" validate:"required,timezone"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// WeatherConfig represents the external weather source and its quota
type WeatherConfig struct {
	APIURL           string `mapstructure:"api_url" validate:"required,url"`
	APIKey           string `mapstructure:"api_key"`
	DailyCallCeiling int    `mapstructure:"daily_call_ceiling" validate:"required,gt=0"`
	CacheTTLHours    int    `mapstructure:"cache_ttl_hours" validate:"required,gt=0"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// NarrativeConfig represents the text-generation collaborator
type NarrativeConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	APIURL         string `mapstructure:"api_url" validate:"omitempty,url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// BatchConfig represents the daily analysis batch
type BatchConfig struct {
	Schedule         string  `mapstructure:"schedule" validate:"required,cronexpr"`
	QualityThreshold float64 `mapstructure:"quality_threshold" validate:"gte=0,lte=100"`
	InterRaceDelayMS int     `mapstructure:"inter_race_delay_ms" validate:"gte=0"`
}

// MetricsConfig represents metrics and health endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the operator timezone. Falls back to UTC when the
// configured zone cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CacheTTL returns the weather cache freshness window as a duration
func (c *WeatherConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// Timeout returns the weather call timeout as a duration
func (c *WeatherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the completion call timeout as a duration
func (c *NarrativeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// InterRaceDelay returns the pause applied between race analyses
func (c *BatchConfig) InterRaceDelay() time.Duration {
	return time.Duration(c.InterRaceDelayMS) * time.Millisecond
}

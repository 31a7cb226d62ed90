package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Export sink kinds
const (
	SinkLocal = "local"
	SinkS3    = "s3"
)

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Autosave     AutosaveConfig   `mapstructure:"autosave"`
	Export       ExportConfig     `mapstructure:"export"`
	Catalog      CatalogConfig    `mapstructure:"catalog"`
	Processing   ProcessingConfig `mapstructure:"processing"`
	Watch        WatchConfig      `mapstructure:"watch"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Security     SecurityConfig   `mapstructure:"security"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Monitoring   MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Validate validates the server configuration
func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxBodyBytes, validation.Min(int64(0))),
	)
}

// DatabaseConfig contains video registry database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	Verbose               bool          `mapstructure:"verbose"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
}

// AutosaveConfig contains autosave snapshot settings. Dir is a directory
// name under the OS temp dir, or an absolute path.
type AutosaveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Dir      string        `mapstructure:"dir"`
	Interval time.Duration `mapstructure:"interval"`
	// MaxAge is how long an untouched snapshot is kept; 0 keeps them forever
	MaxAge time.Duration `mapstructure:"max_age"`
}

// Validate validates the autosave configuration
func (c AutosaveConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Interval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.MaxAge, validation.Min(time.Duration(0))),
	)
}

// ExportConfig contains export sink settings
type ExportConfig struct {
	Sink      string   `mapstructure:"sink"`
	OutputDir string   `mapstructure:"output_dir"`
	S3        S3Config `mapstructure:"s3"`
}

// Validate validates the export configuration
func (c ExportConfig) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.Sink, validation.Required, validation.In(SinkLocal, SinkS3)),
	); err != nil {
		return err
	}
	if c.Sink == SinkS3 {
		return c.S3.Validate()
	}
	return nil
}

// S3Config contains S3 export sink settings
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// Validate validates the S3 configuration
func (c S3Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Bucket, validation.Required),
		validation.Field(&c.Region, validation.Required),
	)
}

// CatalogConfig contains category catalog settings. An empty path uses the
// built-in catalog.
type CatalogConfig struct {
	Path          string `mapstructure:"path"`
	DisableAlerts bool   `mapstructure:"disable_alerts"`
}

// ProcessingConfig contains media probing settings
type ProcessingConfig struct {
	FFprobePath    string        `mapstructure:"ffprobe_path"`
	FFprobeTimeout time.Duration `mapstructure:"ffprobe_timeout"`
}

// WatchConfig contains video file watcher settings
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}

// Validate validates the rate limit configuration
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.RequestsPerSecond, validation.Required, validation.Min(1)),
		validation.Field(&c.Burst, validation.Required, validation.Min(1)),
	)
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate validates the logging configuration
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In("text", "json")),
	)
}

// MonitoringConfig contains metrics and health endpoint settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
	HealthPath  string `mapstructure:"health_path"`
}

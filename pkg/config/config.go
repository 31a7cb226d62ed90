package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override
const EnvPrefix = "LABELER"

var (
	once        sync.Once
	initErr     error
	initialized bool
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file is fine; defaults and env vars apply
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}
		initialized = true
	})

	return initErr
}

// IsInitialized reports whether Init completed successfully
func IsInitialized() bool {
	return initialized
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate checks the values currently held by viper
func validate() error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Path == "" {
		log.Printf("[WARN] No database path configured, video registry disabled")
	}
	return cfg.Validate()
}

// Validate validates a Config struct
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Autosave),
		validation.Field(&c.Export),
		validation.Field(&c.RateLimiting),
		validation.Field(&c.Logging),
	)
}

// ResolvedDir resolves the autosave directory: absolute paths are used as is,
// anything else is placed under the OS temp dir
func (c AutosaveConfig) ResolvedDir() string {
	if filepath.IsAbs(c.Dir) {
		return c.Dir
	}
	return filepath.Join(os.TempDir(), c.Dir)
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 10485760)

	// Database defaults
	viper.SetDefault("database.path", "./data/labeler.db")
	viper.SetDefault("database.verbose", false)
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", time.Hour)

	// Autosave defaults
	viper.SetDefault("autosave.enabled", true)
	viper.SetDefault("autosave.dir", "labeler_autosave")
	viper.SetDefault("autosave.interval", time.Minute)
	viper.SetDefault("autosave.max_age", 30*24*time.Hour)

	// Export defaults
	viper.SetDefault("export.sink", SinkLocal)
	viper.SetDefault("export.output_dir", "./exports")
	viper.SetDefault("export.s3.bucket", "")
	viper.SetDefault("export.s3.prefix", "labels/")
	viper.SetDefault("export.s3.region", "us-east-1")
	viper.SetDefault("export.s3.endpoint", "")
	viper.SetDefault("export.s3.access_key_id", "")
	viper.SetDefault("export.s3.secret_access_key", "")
	viper.SetDefault("export.s3.use_path_style", false)

	// Catalog defaults
	viper.SetDefault("catalog.path", "")
	viper.SetDefault("catalog.disable_alerts", false)

	// Processing defaults
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.ffprobe_timeout", 30*time.Second)

	// Watch defaults
	viper.SetDefault("watch.enabled", true)
	viper.SetDefault("watch.debounce", 500*time.Millisecond)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 50)
	viper.SetDefault("rate_limiting.burst", 100)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
	viper.SetDefault("monitoring.health_path", "/health")
}

package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Extract  ExtractConfig
	Ingest   IngestConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
	HealthTimeout   time.Duration `mapstructure:"health_timeout"`
}

// StorageConfig holds object-storage configuration
type StorageConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Bucket       string        `mapstructure:"bucket"`
	APIKey       string        `mapstructure:"api_key"`
	SignedURLTTL time.Duration `mapstructure:"signed_url_ttl"`
}

// WorkerConfig holds background worker-pool configuration
type WorkerConfig struct {
	Count      int           `mapstructure:"count"`
	QueueSize  int           `mapstructure:"queue_size"`
	JobTimeout time.Duration `mapstructure:"job_timeout"`
}

// ExtractConfig holds page-text extraction configuration
type ExtractConfig struct {
	PdftotextBin string `mapstructure:"pdftotext_bin"`
	MaxPages     int    `mapstructure:"max_pages"`
}

// IngestConfig holds drop-folder ingestion configuration
type IngestConfig struct {
	WatchDir    string        `mapstructure:"watch_dir"`
	Debounce    time.Duration `mapstructure:"debounce"`
	InitialScan bool          `mapstructure:"initial_scan"`
}

// LoadConfig loads configuration from defaults, an optional YAML config
// file, and RACETRACKER_-prefixed environment variables (highest priority).
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", 30*time.Minute)
	v.SetDefault("database.max_conn_idle_time", 5*time.Minute)
	v.SetDefault("database.dial_timeout", 3*time.Second)
	v.SetDefault("database.health_timeout", 3*time.Second)
	v.SetDefault("storage.base_url", "")
	v.SetDefault("storage.bucket", "horse-racing-files")
	v.SetDefault("storage.api_key", "")
	v.SetDefault("storage.signed_url_ttl", 72*time.Hour)
	v.SetDefault("worker.count", 4)
	v.SetDefault("worker.queue_size", 256)
	v.SetDefault("worker.job_timeout", 3*time.Minute)
	v.SetDefault("extract.pdftotext_bin", "pdftotext")
	v.SetDefault("extract.max_pages", 0)
	v.SetDefault("ingest.watch_dir", "")
	v.SetDefault("ingest.debounce", 500*time.Millisecond)
	v.SetDefault("ingest.initial_scan", false)

	v.SetEnvPrefix("RACETRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.racetracker")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration needed to run the service.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "database.dsn is required", ErrInvalidInput)
	}
	if c.Storage.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "storage.base_url is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "server.addr is required", ErrInvalidInput)
	}
	return nil
}

package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SUPPLIER_IMPORT_IMPORT_WORKERS
const EnvPrefix = "SUPPLIER_IMPORT"

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Import    ImportConfig    `mapstructure:"import"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	APIKey          string        `mapstructure:"api_key"`
}

// DatabaseConfig holds database connection configuration. An empty URL
// means supplier settings come from the suppliers file only.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// ImportConfig tunes import runs
type ImportConfig struct {
	Workers         int    `mapstructure:"workers"`
	ErrorDisplayCap int    `mapstructure:"error_display_cap"`
	PreviewLines    int    `mapstructure:"preview_lines"`
	SuppliersFile   string `mapstructure:"suppliers_file"`
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
	ServiceRPS        float64 `mapstructure:"service_requests_per_second"`
	ServiceBurst      int     `mapstructure:"service_burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// TelemetryConfig holds OpenTelemetry export settings
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath == "" && os.IsNotExist(err)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	if c.Import.Workers < 1 {
		return fmt.Errorf("import.workers must be at least 1, got %d", c.Import.Workers)
	}
	if c.Import.ErrorDisplayCap < 1 {
		return fmt.Errorf("import.error_display_cap must be at least 1, got %d", c.Import.ErrorDisplayCap)
	}
	if c.Import.PreviewLines < 1 {
		return fmt.Errorf("import.preview_lines must be at least 1, got %d", c.Import.PreviewLines)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// loadEnvFile loads the first .env file found. Variables already set in the
// environment win.
func loadEnvFile() error {
	for _, dir := range []string{".", "./config"} {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err == nil {
			return loadDotEnvFile(envFile)
		}
	}
	return fmt.Errorf("no .env file found")
}

func loadDotEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		value = strings.Trim(strings.TrimSpace(value), "\"'")
		if _, set := os.LookupEnv(key); !set {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// bindEnvVars binds the unprefixed variables deployments commonly set
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	v.BindEnv("server.api_key", EnvPrefix+"_SERVER_API_KEY", "INTERNAL_API_KEY")
	v.BindEnv("logging.level", EnvPrefix+"_LOGGING_LEVEL", "LOG_LEVEL")
	v.BindEnv("import.suppliers_file", EnvPrefix+"_IMPORT_SUPPLIERS_FILE", "SUPPLIERS_FILE")
	v.BindEnv("telemetry.endpoint", EnvPrefix+"_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 1)
	v.SetDefault("database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	v.SetDefault("import.workers", 1)
	v.SetDefault("import.error_display_cap", 50)
	v.SetDefault("import.preview_lines", 20)
	v.SetDefault("import.suppliers_file", "")
	v.SetDefault("import.max_upload_bytes", 32<<20)

	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.service_requests_per_second", 50)
	v.SetDefault("rate_limit.service_burst", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "supplier-import")
}

// Get returns the configuration of the last successful Load
func Get() *Config {
	return globalConfig
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// GeocoderConfig configures the Nominatim client used by the importer.
// DelayMs is the minimum spacing between rows to respect the provider's
// usage policy (1 request per second, with margin).
type GeocoderConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	BaseURL      string `mapstructure:"base_url"`
	UserAgent    string `mapstructure:"user_agent"`
	CountryCodes string `mapstructure:"country_codes"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
	DelayMs      int    `mapstructure:"delay_ms"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "hyfac")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "hyfac_catalog")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("geocoder.enabled", true)
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocoder.user_agent", "HyfacApp/1.0 (contact@hyfac.dz)")
	v.SetDefault("geocoder.country_codes", "dz")
	v.SetDefault("geocoder.timeout_sec", 10)
	v.SetDefault("geocoder.delay_ms", 1100)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: HYFAC_DATABASE_HOST → database.host
	v.SetEnvPrefix("HYFAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Geocoder.Enabled {
		if c.Geocoder.BaseURL == "" {
			errs = append(errs, "geocoder.base_url is required when geocoder is enabled")
		}
		if c.Geocoder.UserAgent == "" {
			errs = append(errs, "geocoder.user_agent is required when geocoder is enabled")
		}
		if c.Geocoder.DelayMs < 1000 {
			errs = append(errs, "geocoder.delay_ms must be at least 1000 (provider rate limit)")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

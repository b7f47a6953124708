package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Matching  MatchingConfig  `mapstructure:"matching"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LookupConfig holds barcode provider configuration
type LookupConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Burst             int           `mapstructure:"burst"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// MatchingConfig holds match engine configuration
type MatchingConfig struct {
	MinScore           float64 `mapstructure:"min_score"`
	HighScore          float64 `mapstructure:"high_score"`
	MediumScore        float64 `mapstructure:"medium_score"`
	Workers            int     `mapstructure:"workers"`
	ParallelThreshold  int     `mapstructure:"parallel_threshold"`
	EnableDebugLogging bool    `mapstructure:"debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stocklens/")

	// STOCKLENS_MATCHING_MIN_SCORE maps to matching.min_score
	v.SetEnvPrefix("STOCKLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile exports the variables in ./.env without overriding variables already set
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	// viper lowercases keys; environment names are upper case by convention
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, v.GetString(key)); err != nil {
			return fmt.Errorf("error setting %s: %w", name, err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Every key needs a default for AutomaticEnv to see it during Unmarshal
	v.SetDefault("lookup.api_key", "")
	v.SetDefault("lookup.base_url", "https://api.upcitemdb.com/prod/trial")
	v.SetDefault("lookup.requests_per_minute", 6)
	v.SetDefault("lookup.burst", 2)
	v.SetDefault("lookup.timeout", "10s")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("matching.min_score", 60.0)
	v.SetDefault("matching.high_score", 85.0)
	v.SetDefault("matching.medium_score", 70.0)
	v.SetDefault("matching.workers", 0)
	v.SetDefault("matching.parallel_threshold", 64)
	v.SetDefault("matching.debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Lookup.BaseURL == "" {
		return fmt.Errorf("lookup base URL is required (set STOCKLENS_LOOKUP_BASE_URL)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	m := config.Matching
	if m.MinScore < 0 || m.HighScore > 100 {
		return fmt.Errorf("matching scores must lie within 0-100")
	}
	if !(m.MinScore <= m.MediumScore && m.MediumScore <= m.HighScore) {
		return fmt.Errorf("matching scores must satisfy min_score <= medium_score <= high_score, got %.1f/%.1f/%.1f",
			m.MinScore, m.MediumScore, m.HighScore)
	}
	if m.Workers < 0 {
		return fmt.Errorf("matching workers must not be negative, got: %d", m.Workers)
	}

	return nil
}
